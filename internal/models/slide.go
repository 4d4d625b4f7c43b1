package models

// Slide is one extracted still image.
type Slide struct {
	Timestamp   float64 `json:"timestamp"`
	ImagePath   string  `json:"image_path"`
	FrameNumber int     `json:"frame_number"`
	VideoID     string  `json:"video_id"`
	ImageHash   string  `json:"image_hash,omitempty"`
}

// AlignedSlide is a Slide enriched with the speech spoken while it was on screen.
type AlignedSlide struct {
	Slide
	SlideNumber     int               `json:"slide_number"`
	TranscriptChunk []TranscriptEntry `json:"transcript_chunk"`
	TranscriptText  string            `json:"transcript_text"`
	Duration        float64           `json:"duration"`
	WordCount       int               `json:"word_count"`

	OCRText       string  `json:"ocr_text,omitempty"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
}

// SlideContext is a slide with its neighbours.
type SlideContext struct {
	Current  AlignedSlide   `json:"current"`
	Previous []AlignedSlide `json:"previous"`
	Next     []AlignedSlide `json:"next"`
}

// AlignmentStats aggregates a list of aligned slides.
type AlignmentStats struct {
	TotalSlides   int     `json:"total_slides"`
	TotalWords    int     `json:"total_words"`
	TotalDuration float64 `json:"total_duration"`
	AvgDuration   float64 `json:"avg_duration_per_slide"`
	MinDuration   float64 `json:"min_duration"`
	MaxDuration   float64 `json:"max_duration"`
	AvgWords      float64 `json:"avg_words_per_slide"`
	MinWords      int     `json:"min_words"`
	MaxWords      int     `json:"max_words"`
}
