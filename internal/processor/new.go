package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/slide-flow/internal/aligner"
	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/curator"
	"github.com/nguyentantai21042004/slide-flow/internal/ffmpeg"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/ocr"
	"github.com/nguyentantai21042004/slide-flow/internal/ratelimit"
	"github.com/nguyentantai21042004/slide-flow/internal/report"
	"github.com/nguyentantai21042004/slide-flow/internal/summarizer"
	"github.com/nguyentantai21042004/slide-flow/internal/transcript"
	"github.com/nguyentantai21042004/slide-flow/internal/video"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "slide-flow/processor"

// Deps are the collaborators of a Processor. OCR may be nil to skip text reading.
type Deps struct {
	Video       video.Source
	Transcripts transcript.Source
	Store       transcript.Store
	FFmpeg      ffmpeg.Tool
	Curator     curator.Curator
	Aligner     aligner.Aligner
	OCR         ocr.Reader
	Summarizer  summarizer.Summarizer
	Report      report.Writer

	// Now and NewRunID default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewRunID func() string
}

type implProcessor struct {
	cfg    *config.Config
	deps   Deps
	tracer trace.Tracer
	logger logger.Logger
}

// New creates a Processor from explicit collaborators
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		tracer: otel.Tracer(tracerName),
		logger: log,
	}
}

// NewDefault wires the production collaborators: yt-dlp, whisper, ffmpeg,
// tesseract and Gemini (or the dry-run summarizer).
func NewDefault(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Processor, error) {
	tempDir := filepath.Join(cfg.Paths.Temp, "slide-flow")
	tool := ffmpeg.New(cfg.FFmpeg, exec, log)

	sources := []transcript.Source{transcript.NewSubtitleSource(cfg.Downloader, tempDir, exec, log)}
	if cfg.Whisper.Enabled {
		sources = append(sources, transcript.NewWhisperSource(cfg.Whisper, tempDir, tool, exec, log))
	}

	writer, err := report.New(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	var sum summarizer.Summarizer
	if cfg.Gemini.DryRun {
		sum = summarizer.NewDryRun(log)
	} else {
		gen, err := summarizer.NewGemini(cfg.Gemini, log)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		sum = summarizer.New(cfg.Gemini, gen, ratelimit.New(*cfg.Gemini.Tier, log), log)
	}

	var reader ocr.Reader
	if cfg.OCR.Enabled {
		reader = ocr.New(cfg.OCR, exec, log)
		if err := reader.CheckAvailable(ctx); err != nil {
			log.Warn(ctx, "OCR disabled: %v", err)
			reader = nil
		}
	}

	return New(cfg, Deps{
		Video:       video.New(cfg.Downloader, exec, log),
		Transcripts: transcript.NewChain(log, sources...),
		Store:       transcript.NewFileStore(cfg.TranscriptPath),
		FFmpeg:      tool,
		Curator:     curator.New(cfg.Slides, log),
		Aligner:     aligner.New(log),
		OCR:         reader,
		Summarizer:  sum,
		Report:      writer,
	}, log), nil
}
