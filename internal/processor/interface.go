// Package processor runs one video through the whole slide pipeline:
// transcript, scene detection, curation, extraction, alignment, OCR,
// summarization and report writing.
package processor

import "context"

// ToolVersion is stamped into every report.
const ToolVersion = "1.0.0"

// Result describes a finished run.
type Result struct {
	RunID      string
	VideoID    string
	ReportPath string
	IndexPath  string
	Slides     int
}

// Processor defines the interface for video processing operations
type Processor interface {
	// Process accepts a YouTube URL, an 11 character video id or a local file path.
	Process(ctx context.Context, input string) (Result, error)
}
