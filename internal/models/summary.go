package models

import "time"

// SlideSummary is what the summarization collaborator returns for one slide.
type SlideSummary struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Topics    []string `json:"topics"`
}

// SummarizedSlide pairs an aligned slide with its summary.
// Error is set when summarization failed and the summary is a placeholder.
type SummarizedSlide struct {
	AlignedSlide
	SlideSummary
	Error string `json:"error,omitempty"`
}

// BatchSummary aggregates summaries across a whole video.
type BatchSummary struct {
	TotalSlides       int      `json:"total_slides"`
	MainTopics        []string `json:"main_topics"`
	TotalKeyPoints    int      `json:"total_key_points"`
	SlidesWithContent int      `json:"slides_with_content"`
}

// Report is the full processing result handed to the writers.
type Report struct {
	VideoID     string            `json:"video_id"`
	VideoURL    string            `json:"video_url,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Stats       AlignmentStats    `json:"stats"`
	Batch       BatchSummary      `json:"batch_summary"`
	Slides      []SummarizedSlide `json:"slides"`
	Metadata    ReportMetadata    `json:"metadata"`
}

// ReportMetadata records the settings a report was produced with.
type ReportMetadata struct {
	ToolVersion      string  `json:"tool_version"`
	SceneThreshold   float64 `json:"scene_threshold"`
	MaxSlides        int     `json:"max_slides"`
	MinSlideDuration float64 `json:"min_slide_duration"`
	RunID            string  `json:"run_id"`
}
