package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var rePtsTime = regexp.MustCompile(`pts_time:\s*(\d+(?:\.\d+)?)`)

// DetectScenes runs the select/showinfo filter and parses pts_time from stderr
func (t *implTool) DetectScenes(ctx context.Context, videoPath string, threshold float64) ([]float64, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("scene threshold must be in (0, 1], got %v", threshold)
	}

	ctx, cancel := withTimeout(ctx, t.sceneTimeout)
	defer cancel()

	args := []string{
		"-hide_banner",
		"-nostats",
		"-i", videoPath,
		"-vf", fmt.Sprintf("select='gt(scene,%s)',showinfo", strconv.FormatFloat(threshold, 'f', -1, 64)),
		"-fps_mode", "vfr",
		"-f", "null",
		"-",
	}

	t.logger.Info(ctx, "Detecting scene changes (threshold %.2f): %s", threshold, videoPath)
	res, err := t.executor.Run(ctx, t.ffmpegPath, args...)
	if err != nil {
		return nil, classify("scene detection", err)
	}

	timestamps := parseSceneLog(res.Stderr)
	t.logger.Info(ctx, "Detected %d scene changes", len(timestamps))
	return timestamps, nil
}

// parseSceneLog extracts showinfo pts_time values in ascending order
func parseSceneLog(log string) []float64 {
	var timestamps []float64
	for _, line := range strings.Split(log, "\n") {
		if !strings.Contains(line, "showinfo") {
			continue
		}
		m := rePtsTime.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ts, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	sort.Float64s(timestamps)
	return timestamps
}

// UniformTimestamps returns 0, interval, 2*interval, ... strictly below duration
func UniformTimestamps(duration, interval float64) []float64 {
	if duration <= 0 || interval <= 0 {
		return nil
	}
	var timestamps []float64
	for i := 0; ; i++ {
		ts := float64(i) * interval
		if ts >= duration {
			break
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps
}
