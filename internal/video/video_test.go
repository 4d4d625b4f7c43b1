package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor/executortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"watch url with other params first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"padded", "  dQw4w9WgXcQ \n", "dQw4w9WgXcQ", false},
		{"too short", "abc", "", true},
		{"other site", "https://vimeo.com/123456", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseRef(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidVideoRef))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ref.ID)
			assert.Equal(t, WatchURL(tt.wantID), ref.URL)
			assert.False(t, ref.IsLocal())
		})
	}
}

func TestParseRefLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "My Talk (2024).mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	ref, err := ParseRef(path)

	require.NoError(t, err)
	assert.True(t, ref.IsLocal())
	assert.Equal(t, "My_Talk_2024", ref.ID)
	assert.Equal(t, path, ref.LocalPath)
	assert.Empty(t, ref.URL)
}

func TestParseRefDirectoryIsNotLocal(t *testing.T) {
	_, err := ParseRef(t.TempDir())
	assert.Error(t, err)
}

func TestLocalID(t *testing.T) {
	assert.Equal(t, "lecture-01", LocalID("/tmp/lecture-01.mkv"))
	assert.Equal(t, "video", LocalID("/tmp/!!!.mp4"))
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("a/b/talk.MP4"))
	assert.True(t, IsVideoFile("talk.webm"))
	assert.False(t, IsVideoFile("talk.part"))
	assert.False(t, IsVideoFile("notes.txt"))
}

func TestFetchDownloads(t *testing.T) {
	dir := t.TempDir()
	fake := executortest.New(func(ctx context.Context, name string, args []string) (executor.Result, error) {
		var tmpl string
		for i, a := range args {
			if a == "-o" {
				tmpl = args[i+1]
			}
		}
		out := strings.Replace(tmpl, "%(ext)s", "mp4", 1)
		if err := os.WriteFile(out, []byte("video"), 0644); err != nil {
			return executor.Result{}, err
		}
		return executor.Result{Stdout: "[download] 100%\n" + out + "\n"}, nil
	})
	src := New(config.DownloaderConfig{BinaryPath: "yt-dlp", Format: "best[height<=720]/best"}, fake, logger.NewNop())
	ref := models.VideoRef{ID: "dQw4w9WgXcQ", URL: WatchURL("dQw4w9WgXcQ")}

	path, err := src.Fetch(context.Background(), ref, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dQw4w9WgXcQ.mp4"), path)
	calls := fake.CallsTo("yt-dlp")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "-f best[height<=720]/best")

	// A second fetch reuses the file.
	_, err = src.Fetch(context.Background(), ref, dir)
	require.NoError(t, err)
	assert.Len(t, fake.CallsTo("yt-dlp"), 1)
}

func TestFetchErrors(t *testing.T) {
	ref := models.VideoRef{ID: "dQw4w9WgXcQ", URL: WatchURL("dQw4w9WgXcQ")}

	tests := []struct {
		name    string
		handler executortest.HandlerFunc
		want    error
	}{
		{
			name: "missing binary",
			handler: func(ctx context.Context, name string, args []string) (executor.Result, error) {
				return executor.Result{}, executor.ErrCommandNotFound
			},
			want: apperrors.ErrToolUnavailable,
		},
		{
			name: "download failure",
			handler: func(ctx context.Context, name string, args []string) (executor.Result, error) {
				return executor.Result{Stderr: "Video unavailable", ExitCode: 1}, nil
			},
			want: apperrors.ErrVideoFetchFailed,
		},
		{
			name: "no file produced",
			handler: func(ctx context.Context, name string, args []string) (executor.Result, error) {
				return executor.Result{Stdout: "/nowhere/x.mp4"}, nil
			},
			want: apperrors.ErrVideoFetchFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New(config.DownloaderConfig{BinaryPath: "yt-dlp"}, executortest.New(tt.handler), logger.NewNop())
			_, err := src.Fetch(context.Background(), ref, t.TempDir())
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFetchLocalPassthrough(t *testing.T) {
	fake := executortest.New(nil)
	src := New(config.DownloaderConfig{BinaryPath: "yt-dlp"}, fake, logger.NewNop())

	path, err := src.Fetch(context.Background(), models.VideoRef{ID: "talk", LocalPath: "/videos/talk.mp4"}, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "/videos/talk.mp4", path)
	assert.Empty(t, fake.Calls())
}
