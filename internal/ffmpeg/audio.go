package ffmpeg

import (
	"context"
	"fmt"
)

// ExtractAudio extracts audio from video file and converts to 16kHz mono WAV
// This format is optimal for Whisper processing
func (t *implTool) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	ctx, cancel := withTimeout(ctx, t.audioTimeout)
	defer cancel()

	t.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: No video (audio only)
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: PCM 16-bit little-endian
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", classify("extract audio", err))
	}

	t.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return nil
}
