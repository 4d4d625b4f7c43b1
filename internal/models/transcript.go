package models

// TranscriptEntry is one timed caption line. End is never before Start.
type TranscriptEntry struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// VideoRef identifies a video either remotely or on disk.
type VideoRef struct {
	ID        string `json:"video_id"`
	URL       string `json:"video_url,omitempty"`
	LocalPath string `json:"local_path,omitempty"`
}

// IsLocal reports whether the video is already a file on disk.
func (r VideoRef) IsLocal() bool {
	return r.LocalPath != ""
}
