package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor/executortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(t *testing.T, workers int, handler executortest.HandlerFunc) (Tool, *executortest.Fake) {
	t.Helper()
	cfg := config.Config{FFmpeg: config.FFmpegConfig{ExtractWorkers: workers}}
	require.NoError(t, cfg.Validate())
	fake := executortest.New(handler)
	return New(cfg.FFmpeg, fake, logger.NewNop()), fake
}

const sceneLog = `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'talk.mp4':
[Parsed_showinfo_1 @ 0x600] n:   0 pts:  153600 pts_time:12.5    duration:512 fmt:yuv420p
[Parsed_showinfo_1 @ 0x600] n:   1 pts:  460800 pts_time:37.04   duration:512 fmt:yuv420p
frame=    2 fps=0.0 q=-0.0 Lsize=N/A time=00:01:10.00
[Parsed_showinfo_1 @ 0x600] n:   2 pts:  716800 pts_time:58      duration:512 fmt:yuv420p
`

func TestParseSceneLog(t *testing.T) {
	got := parseSceneLog(sceneLog)
	assert.Equal(t, []float64{12.5, 37.04, 58}, got)
	assert.Empty(t, parseSceneLog("no scene lines here"))
}

func TestDetectScenes(t *testing.T) {
	tool, fake := newTestTool(t, 1, func(ctx context.Context, name string, args []string) (executor.Result, error) {
		return executor.Result{Stderr: sceneLog}, nil
	})

	got, err := tool.DetectScenes(context.Background(), "talk.mp4", 0.3)
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 37.04, 58}, got)

	calls := fake.CallsTo("ffmpeg")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "select='gt(scene,0.3)',showinfo")
}

func TestDetectScenesRejectsThreshold(t *testing.T) {
	tool, _ := newTestTool(t, 1, nil)
	for _, th := range []float64{0, -0.1, 1.5} {
		_, err := tool.DetectScenes(context.Background(), "talk.mp4", th)
		assert.Error(t, err, "threshold %v", th)
	}
}

func TestDetectScenesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing binary", fmt.Errorf("command 'ffmpeg' failed: %w", executor.ErrCommandNotFound), apperrors.ErrToolUnavailable},
		{"timeout", fmt.Errorf("command 'ffmpeg' failed: %w", executor.ErrTimeout), apperrors.ErrProcessTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, _ := newTestTool(t, 1, func(ctx context.Context, name string, args []string) (executor.Result, error) {
				return executor.Result{}, tt.err
			})
			_, err := tool.DetectScenes(context.Background(), "talk.mp4", 0.3)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{
			name: "video stream duration",
			out:  `{"streams":[{"codec_type":"audio","duration":"91.2"},{"codec_type":"video","duration":"90.0"}],"format":{"duration":"91.3"}}`,
			want: 90,
		},
		{
			name: "container fallback",
			out:  `{"streams":[{"codec_type":"video"}],"format":{"duration":"125.5"}}`,
			want: 125.5,
		},
		{
			name:    "no duration",
			out:     `{"streams":[{"codec_type":"video","duration":"N/A"}],"format":{}}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			out:     `not json`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.out)
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrDurationUnknown), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationUsesProbe(t *testing.T) {
	tool, fake := newTestTool(t, 1, func(ctx context.Context, name string, args []string) (executor.Result, error) {
		return executor.Result{Stdout: `{"format":{"duration":"90"}}`}, nil
	})
	d, err := tool.Duration(context.Background(), "talk.mp4")
	require.NoError(t, err)
	assert.Equal(t, 90.0, d)
	assert.Len(t, fake.CallsTo("ffprobe"), 1)
}

func TestUniformTimestamps(t *testing.T) {
	assert.Equal(t, []float64{0, 30, 60}, UniformTimestamps(90, 30))
	assert.Equal(t, []float64{0, 30, 60, 90}, UniformTimestamps(95, 30))
	assert.Equal(t, []float64{0}, UniformTimestamps(10, 30))
	assert.Nil(t, UniformTimestamps(0, 30))
	assert.Nil(t, UniformTimestamps(90, 0))
}

// writeFrame mimics ffmpeg by writing the output file named by the last argument.
func writeFrame(failAt string) executortest.HandlerFunc {
	return func(ctx context.Context, name string, args []string) (executor.Result, error) {
		for i, a := range args {
			if a == "-ss" && args[i+1] == failAt {
				return executor.Result{Stderr: "seek failed", ExitCode: 1}, nil
			}
		}
		out := args[len(args)-1]
		return executor.Result{}, os.WriteFile(out, []byte("png"), 0644)
	}
}

func TestExtractAtBestEffort(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			dir := t.TempDir()
			tool, _ := newTestTool(t, workers, writeFrame("5.000"))

			frames, err := tool.ExtractAt(context.Background(), "talk.mp4", []float64{0, 5, 12.5, 40}, dir)
			require.NoError(t, err)
			require.Len(t, frames, 3)

			assert.Equal(t, []float64{0, 12.5, 40}, []float64{frames[0].Timestamp, frames[1].Timestamp, frames[2].Timestamp})
			assert.Equal(t, []int{0, 2, 3}, []int{frames[0].FrameNumber, frames[1].FrameNumber, frames[2].FrameNumber})
			assert.Equal(t, filepath.Join(dir, "slide_0002_12.50s.png"), frames[1].ImagePath)
		})
	}
}

func TestExtractAtSkipsTimedOutFrame(t *testing.T) {
	for _, workers := range []int{1, 2} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			cfg := config.Config{FFmpeg: config.FFmpegConfig{FrameTimeoutSeconds: 1, ExtractWorkers: workers}}
			require.NoError(t, cfg.Validate())

			write := writeFrame("")
			fake := executortest.New(func(ctx context.Context, name string, args []string) (executor.Result, error) {
				for i, a := range args {
					if a == "-ss" && args[i+1] == "5.000" {
						<-ctx.Done()
						return executor.Result{}, ctx.Err()
					}
				}
				return write(ctx, name, args)
			})
			tool := New(cfg.FFmpeg, fake, logger.NewNop())

			start := time.Now()
			frames, err := tool.ExtractAt(context.Background(), "talk.mp4", []float64{0, 5, 12.5}, t.TempDir())
			require.NoError(t, err)
			assert.Less(t, time.Since(start), 5*time.Second)

			require.Len(t, frames, 2)
			assert.Equal(t, 0.0, frames[0].Timestamp)
			assert.Equal(t, 12.5, frames[1].Timestamp)
			assert.Equal(t, 2, frames[1].FrameNumber)
		})
	}
}

func TestExtractAtReusesExistingFrames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SlideFilename(0, 0)), []byte("png"), 0644))

	cfg := config.Config{FFmpeg: config.FFmpegConfig{ReuseExistingFrames: true}}
	require.NoError(t, cfg.Validate())
	fake := executortest.New(writeFrame(""))
	tool := New(cfg.FFmpeg, fake, logger.NewNop())

	frames, err := tool.ExtractAt(context.Background(), "talk.mp4", []float64{0, 30}, dir)
	require.NoError(t, err)
	assert.Len(t, frames, 2)
	assert.Len(t, fake.CallsTo("ffmpeg"), 1)
}

func TestSlideFilename(t *testing.T) {
	name := SlideFilename(3, 12.5)
	assert.Equal(t, "slide_0003_12.50s.png", name)

	index, ts, ok := ParseSlideFilename(name)
	require.True(t, ok)
	assert.Equal(t, 3, index)
	assert.Equal(t, 12.5, ts)

	for _, bad := range []string{"scenes.txt", "slide_x_1.00s.png", "slide_0001.png"} {
		_, _, ok := ParseSlideFilename(bad)
		assert.False(t, ok, bad)
	}
}

func TestLoadSlides(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"slide_0001_30.00s.png", "slide_0000_0.00s.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	slides, err := LoadSlides(dir, "vid")
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, 0, slides[0].FrameNumber)
	assert.Equal(t, 30.0, slides[1].Timestamp)
	assert.Equal(t, "vid", slides[1].VideoID)

	missing, err := LoadSlides(filepath.Join(dir, "nope"), "vid")
	assert.NoError(t, err)
	assert.Empty(t, missing)
}

func TestExtractAudioArgs(t *testing.T) {
	tool, fake := newTestTool(t, 1, nil)
	require.NoError(t, tool.ExtractAudio(context.Background(), "talk.mp4", "talk.wav"))
	calls := fake.CallsTo("ffmpeg")
	require.Len(t, calls, 1)
	assert.True(t, strings.HasSuffix(calls[0], "-y talk.wav"))
	assert.Contains(t, calls[0], "-ar 16000 -ac 1")
}
