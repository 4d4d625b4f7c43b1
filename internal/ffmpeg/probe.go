package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
)

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// CheckAvailable verifies that both ffmpeg and ffprobe answer -version
func (t *implTool) CheckAvailable(ctx context.Context) error {
	for _, bin := range []string{t.ffmpegPath, t.probePath} {
		cctx, cancel := withTimeout(ctx, t.probeTimeout)
		_, err := t.executor.Execute(cctx, bin, "-version")
		cancel()
		if err != nil {
			return apperrors.New(apperrors.KindToolUnavailable, fmt.Sprintf("%s is not usable", bin), err)
		}
	}
	t.logger.Debug(ctx, "FFmpeg available and working: %s, %s", t.ffmpegPath, t.probePath)
	return nil
}

// Duration reads the video stream duration, falling back to the container duration
func (t *implTool) Duration(ctx context.Context, videoPath string) (float64, error) {
	ctx, cancel := withTimeout(ctx, t.probeTimeout)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	}
	out, err := t.executor.Execute(ctx, t.probePath, args...)
	if err != nil {
		return 0, classify("ffprobe", err)
	}

	return parseDuration(out)
}

func parseDuration(out string) (float64, error) {
	var info probeOutput
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0, apperrors.New(apperrors.KindDurationUnknown, "parse ffprobe output", err)
	}

	for _, s := range info.Streams {
		if s.CodecType != "video" {
			continue
		}
		if d, ok := positiveFloat(s.Duration); ok {
			return d, nil
		}
	}
	if d, ok := positiveFloat(info.Format.Duration); ok {
		return d, nil
	}

	return 0, apperrors.Newf(apperrors.KindDurationUnknown, "could not determine video duration")
}

func positiveFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}
