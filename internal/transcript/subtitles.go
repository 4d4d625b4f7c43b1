package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type subtitleSource struct {
	binaryPath string
	timeout    time.Duration
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// NewSubtitleSource downloads published captions with yt-dlp. Manual
// captions are preferred over automatic ones.
func NewSubtitleSource(cfg config.DownloaderConfig, tempDir string, exec executor.Executor, log logger.Logger) Source {
	return &subtitleSource{
		binaryPath: cfg.BinaryPath,
		timeout:    config.Seconds(cfg.TimeoutSeconds),
		tempDir:    tempDir,
		executor:   exec,
		logger:     log,
	}
}

func (s *subtitleSource) Name() string { return "yt-dlp-subtitles" }

func (s *subtitleSource) Fetch(ctx context.Context, ref models.VideoRef, language string) ([]models.TranscriptEntry, error) {
	if ref.IsLocal() {
		return nil, fmt.Errorf("subtitles: %s is a local file", ref.ID)
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := os.MkdirTemp(s.tempDir, "subs-*")
	if err != nil {
		return nil, fmt.Errorf("create subtitle dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for _, flag := range []string{"--write-subs", "--write-auto-subs"} {
		args := []string{
			"--skip-download",
			flag,
			"--sub-langs", language,
			"--sub-format", "vtt",
			"--no-warnings",
			"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
			ref.URL,
		}
		if _, err := s.executor.Execute(ctx, s.binaryPath, args...); err != nil {
			return nil, fmt.Errorf("yt-dlp subtitles: %w", err)
		}

		path, ok := findVTT(dir)
		if !ok {
			s.logger.Debug(ctx, "No %s captions for %s with %s", language, ref.ID, flag)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read subtitles: %w", err)
		}
		return ParseVTT(string(data)), nil
	}
	return nil, nil
}

func findVTT(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var matches []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".vtt") {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}
