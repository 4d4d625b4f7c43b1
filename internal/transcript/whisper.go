package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/ffmpeg"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type whisperSource struct {
	cfg      config.WhisperConfig
	tempDir  string
	ffmpeg   ffmpeg.Tool
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperSource transcribes local video files with whisper.cpp.
func NewWhisperSource(cfg config.WhisperConfig, tempDir string, tool ffmpeg.Tool, exec executor.Executor, log logger.Logger) Source {
	return &whisperSource{cfg: cfg, tempDir: tempDir, ffmpeg: tool, executor: exec, logger: log}
}

func (s *whisperSource) Name() string { return "whisper" }

func (s *whisperSource) Fetch(ctx context.Context, ref models.VideoRef, language string) ([]models.TranscriptEntry, error) {
	if !ref.IsLocal() {
		return nil, fmt.Errorf("whisper: %s is not a local file", ref.ID)
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := os.MkdirTemp(s.tempDir, "whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create whisper dir: %w", err)
	}
	defer os.RemoveAll(dir)

	audioPath := filepath.Join(dir, ref.ID+".wav")
	if err := s.ffmpeg.ExtractAudio(ctx, ref.LocalPath, audioPath); err != nil {
		return nil, err
	}

	if language == "" {
		language = s.cfg.Language
	}

	// Whisper appends .srt to the output prefix.
	outputPrefix := filepath.Join(dir, ref.ID)
	args := []string{
		"-m", s.cfg.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", language,
		"-t", strconv.Itoa(s.cfg.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if s.cfg.Prompt != "" {
		args = append(args, "--prompt", s.cfg.Prompt)
	}

	s.logger.Info(ctx, "Starting transcription with %d threads: %s", s.cfg.Threads, audioPath)
	if _, err := s.executor.ExecuteInDir(ctx, dir, s.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".srt")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	entries := ParseSRT(string(data))
	s.logger.Info(ctx, "Transcription completed: %d entries", len(entries))
	return entries, nil
}
