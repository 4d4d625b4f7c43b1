package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type ytdlpSource struct {
	binaryPath string
	format     string
	timeout    time.Duration
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Source backed by yt-dlp
func New(cfg config.DownloaderConfig, exec executor.Executor, log logger.Logger) Source {
	return &ytdlpSource{
		binaryPath: cfg.BinaryPath,
		format:     cfg.Format,
		timeout:    config.Seconds(cfg.TimeoutSeconds),
		executor:   exec,
		logger:     log,
	}
}

func (s *ytdlpSource) Fetch(ctx context.Context, ref models.VideoRef, destDir string) (string, error) {
	if ref.IsLocal() {
		return ref.LocalPath, nil
	}

	if existing, ok := findDownload(destDir, ref.ID); ok {
		s.logger.Info(ctx, "Reusing downloaded video: %s", existing)
		return existing, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := []string{
		"-f", s.format,
		"--no-playlist",
		"--no-warnings",
		"-o", filepath.Join(destDir, ref.ID+".%(ext)s"),
		"--print", "after_move:filepath",
		ref.URL,
	}

	s.logger.Info(ctx, "Downloading video %s", ref.URL)
	out, err := s.executor.Execute(ctx, s.binaryPath, args...)
	if err != nil {
		if errors.Is(err, executor.ErrCommandNotFound) {
			return "", apperrors.New(apperrors.KindToolUnavailable, "yt-dlp", err)
		}
		return "", apperrors.New(apperrors.KindVideoFetchFailed, fmt.Sprintf("download %s", ref.ID), err)
	}

	if path := lastLine(out); path != "" {
		if _, err := os.Stat(path); err == nil {
			s.logger.Info(ctx, "Downloaded video: %s", path)
			return path, nil
		}
	}
	if path, ok := findDownload(destDir, ref.ID); ok {
		s.logger.Info(ctx, "Found downloaded video: %s", path)
		return path, nil
	}
	return "", apperrors.Newf(apperrors.KindVideoFetchFailed, "could not find downloaded video file for %s", ref.ID)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// findDownload looks for a finished <id>.<ext> file in dir.
func findDownload(dir, id string) (string, bool) {
	matches, _ := filepath.Glob(filepath.Join(dir, id+".*"))
	for _, m := range matches {
		if !IsVideoFile(m) {
			continue
		}
		if info, err := os.Stat(m); err == nil && info.Size() > 0 {
			return m, true
		}
	}
	return "", false
}
