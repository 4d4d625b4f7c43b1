package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ExtractAt seeks to every timestamp and writes a single PNG frame.
// Extraction is best-effort per timestamp and preserves input order.
func (t *implTool) ExtractAt(ctx context.Context, videoPath string, timestamps []float64, outDir string) ([]Frame, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create slides dir: %w", err)
	}

	results := make([]*Frame, len(timestamps))
	sem := newSemaphore(t.workers)
	var wg sync.WaitGroup

	for i, ts := range timestamps {
		if err := sem.acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, ts float64) {
			defer wg.Done()
			defer sem.release()

			frame, err := t.extractOne(ctx, videoPath, i, ts, outDir)
			if err != nil {
				t.logger.Warn(ctx, "Failed to extract frame at %.2fs: %v", ts, err)
				return
			}
			results[i] = frame
		}(i, ts)
	}
	wg.Wait()

	frames := make([]Frame, 0, len(timestamps))
	for _, f := range results {
		if f != nil {
			frames = append(frames, *f)
		}
	}

	t.logger.Info(ctx, "Successfully extracted %d/%d frames", len(frames), len(timestamps))
	if err := ctx.Err(); err != nil {
		return frames, err
	}
	return frames, nil
}

func (t *implTool) extractOne(ctx context.Context, videoPath string, index int, ts float64, outDir string) (*Frame, error) {
	outputPath := filepath.Join(outDir, SlideFilename(index, ts))
	frame := &Frame{Timestamp: ts, ImagePath: outputPath, FrameNumber: index}

	if t.reuseExisting && nonEmptyFile(outputPath) {
		t.logger.Debug(ctx, "Reusing existing frame: %s", outputPath)
		return frame, nil
	}

	ctx, cancel := withTimeout(ctx, t.frameTimeout)
	defer cancel()

	// -ss before -i seeks on keyframes and is fast enough for slides
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(ts, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-y",
		outputPath,
	}
	if _, err := t.executor.Execute(ctx, t.ffmpegPath, args...); err != nil {
		return nil, classify("extract frame", err)
	}
	if !nonEmptyFile(outputPath) {
		return nil, errors.New("ffmpeg produced no image")
	}

	t.logger.Debug(ctx, "Extracted frame at %.2fs", ts)
	return frame, nil
}

func nonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
