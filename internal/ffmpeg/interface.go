// Package ffmpeg drives the external decoder and prober: scene-change
// detection, single-frame extraction, duration probing and audio extraction.
package ffmpeg

import "context"

// Frame is one still written to disk.
type Frame struct {
	Timestamp   float64
	ImagePath   string
	FrameNumber int
}

// Tool is the decoder boundary used by the pipeline.
type Tool interface {
	// CheckAvailable fails with ToolUnavailable when ffmpeg or ffprobe cannot run.
	CheckAvailable(ctx context.Context) error
	// Duration returns the video length in seconds.
	Duration(ctx context.Context, videoPath string) (float64, error)
	// DetectScenes returns ascending timestamps whose scene score exceeds threshold.
	DetectScenes(ctx context.Context, videoPath string, threshold float64) ([]float64, error)
	// ExtractAt writes one frame per timestamp into outDir. Failed timestamps are skipped.
	ExtractAt(ctx context.Context, videoPath string, timestamps []float64, outDir string) ([]Frame, error)
	// ExtractAudio writes a 16kHz mono WAV suitable for speech recognition.
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}
