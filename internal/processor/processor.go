package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/nguyentantai21042004/slide-flow/internal/aligner"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/ffmpeg"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/internal/report"
	"github.com/nguyentantai21042004/slide-flow/internal/summarizer"
	"github.com/nguyentantai21042004/slide-flow/internal/video"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Process orchestrates the entire video processing pipeline
func (p *implProcessor) Process(ctx context.Context, input string) (Result, error) {
	startTime := p.deps.Now()

	ref, err := video.ParseRef(input)
	if err != nil {
		metrics.VideosProcessedTotal.WithLabelValues("failed").Inc()
		return Result{}, err
	}

	runID := p.deps.NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	ctx, span := p.tracer.Start(ctx, "Process", trace.WithAttributes(
		attribute.String("video.id", ref.ID),
		attribute.String("run.id", runID),
	))
	defer span.End()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", ref.ID)
	p.logger.Info(ctx, "========================================")

	res, err := p.run(ctx, ref, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.VideosProcessedTotal.WithLabelValues("failed").Inc()
		return res, err
	}
	metrics.VideosProcessedTotal.WithLabelValues("completed").Inc()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Slides: %d", res.Slides)
	p.logger.Info(ctx, "Report: %s", res.ReportPath)
	p.logger.Info(ctx, "Processing time: %s", p.deps.Now().Sub(startTime))
	p.logger.Info(ctx, "========================================")
	return res, nil
}

func (p *implProcessor) run(ctx context.Context, ref models.VideoRef, runID string) (Result, error) {
	res := Result{RunID: runID, VideoID: ref.ID}

	videoDir := p.cfg.VideoDir(ref.ID)
	if err := os.MkdirAll(videoDir, 0755); err != nil {
		return res, fmt.Errorf("create video dir: %w", err)
	}

	lock := flock.New(filepath.Join(videoDir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return res, fmt.Errorf("lock video dir: %w", err)
	}
	if !locked {
		return res, apperrors.Newf(apperrors.KindLocked, "video %s is already being processed", ref.ID)
	}
	defer lock.Unlock()

	var entries []models.TranscriptEntry
	err = p.stage(ctx, "transcript", func(ctx context.Context) error {
		entries, err = p.loadTranscript(ctx, ref)
		return err
	})
	if err != nil {
		return res, err
	}

	slides, err := p.reuseSlides(ctx, ref)
	if err != nil {
		return res, err
	}
	if len(slides) == 0 {
		workDir := filepath.Join(p.cfg.Paths.Temp, "slide-flow", ref.ID)
		defer p.cleanupWorkDir(ctx, workDir)

		var videoPath string
		err = p.stage(ctx, "fetch", func(ctx context.Context) error {
			videoPath, err = p.deps.Video.Fetch(ctx, ref, workDir)
			return err
		})
		if err != nil {
			return res, err
		}

		err = p.stage(ctx, "slides", func(ctx context.Context) error {
			slides, err = p.extractSlides(ctx, ref, videoPath)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	var aligned []models.AlignedSlide
	err = p.stage(ctx, "align", func(ctx context.Context) error {
		aligned, err = p.align(ctx, entries, slides)
		return err
	})
	if err != nil {
		return res, err
	}

	if p.deps.OCR != nil {
		_ = p.stage(ctx, "ocr", func(ctx context.Context) error {
			aligned = p.deps.OCR.Annotate(ctx, aligned)
			return nil
		})
	}

	var summarized []models.SummarizedSlide
	err = p.stage(ctx, "summarize", func(ctx context.Context) error {
		summarized, err = p.deps.Summarizer.SummarizeSlides(ctx, aligned)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("summarize: %w", err)
	}

	err = p.stage(ctx, "report", func(ctx context.Context) error {
		return p.writeReport(ctx, ref, runID, aligned, summarized, &res)
	})
	if err != nil {
		return res, err
	}

	res.Slides = len(summarized)
	return res, nil
}

// loadTranscript prefers the cached transcript.json of a previous run.
func (p *implProcessor) loadTranscript(ctx context.Context, ref models.VideoRef) ([]models.TranscriptEntry, error) {
	cached, ok, err := p.deps.Store.Load(ref.ID)
	if err != nil {
		p.logger.Warn(ctx, "Ignoring unreadable cached transcript for %s: %v", ref.ID, err)
	}
	if ok && len(cached) > 0 {
		p.logger.Info(ctx, "Using cached transcript: %d entries", len(cached))
		return cached, nil
	}

	entries, err := p.deps.Transcripts.Fetch(ctx, ref, p.cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	if path, err := p.deps.Store.Save(ref.ID, entries); err != nil {
		p.logger.Warn(ctx, "Failed to cache transcript: %v", err)
	} else {
		p.logger.Debug(ctx, "Transcript cached: %s", path)
	}
	return entries, nil
}

// reuseSlides reloads the slides of a previous run when slides.reuse_existing is set.
// It returns nothing when reuse is off or no usable slide is on disk.
func (p *implProcessor) reuseSlides(ctx context.Context, ref models.VideoRef) ([]models.Slide, error) {
	if !p.cfg.Slides.ReuseExisting {
		return nil, nil
	}
	slides, err := ffmpeg.LoadSlides(p.cfg.SlidesDir(ref.ID), ref.ID)
	if err != nil {
		return nil, err
	}
	slides = p.deps.Curator.Validate(ctx, slides)
	if len(slides) > 0 {
		p.logger.Info(ctx, "Reusing %d slides from %s", len(slides), p.cfg.SlidesDir(ref.ID))
	}
	return slides, nil
}

// extractSlides runs detection, curation, extraction, dedupe and validation.
func (p *implProcessor) extractSlides(ctx context.Context, ref models.VideoRef, videoPath string) ([]models.Slide, error) {
	timestamps, err := p.candidateTimestamps(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	timestamps = p.deps.Curator.Curate(ctx, timestamps)

	frames, err := p.deps.FFmpeg.ExtractAt(ctx, videoPath, timestamps, p.cfg.SlidesDir(ref.ID))
	if err != nil {
		return nil, err
	}
	metrics.FramesExtractedTotal.Add(float64(len(frames)))

	slides := make([]models.Slide, len(frames))
	for i, f := range frames {
		slides[i] = models.Slide{
			Timestamp:   f.Timestamp,
			ImagePath:   f.ImagePath,
			FrameNumber: f.FrameNumber,
			VideoID:     ref.ID,
		}
	}

	slides = p.deps.Curator.Dedupe(ctx, slides)
	slides = p.deps.Curator.Validate(ctx, slides)
	if len(slides) == 0 {
		return nil, apperrors.Newf(apperrors.KindNoSlidesExtracted, "no usable slides extracted from %s", ref.ID)
	}
	p.logger.Info(ctx, "Extracted %d slides", len(slides))
	return slides, nil
}

// candidateTimestamps falls back to uniform sampling when detection fails or finds nothing.
func (p *implProcessor) candidateTimestamps(ctx context.Context, videoPath string) ([]float64, error) {
	timestamps, err := p.deps.FFmpeg.DetectScenes(ctx, videoPath, p.cfg.Slides.SceneThreshold)
	switch {
	case err != nil && apperrors.KindOf(err) == apperrors.KindToolUnavailable:
		return nil, err
	case err != nil:
		p.logger.Warn(ctx, "Scene detection failed, using uniform sampling: %v", err)
	case len(timestamps) == 0:
		p.logger.Warn(ctx, "No scene changes detected, using uniform sampling")
	default:
		p.logger.Info(ctx, "Detected %d scene changes", len(timestamps))
		return timestamps, nil
	}

	duration, err := p.deps.FFmpeg.Duration(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	return ffmpeg.UniformTimestamps(duration, p.cfg.Slides.UniformInterval), nil
}

func (p *implProcessor) align(ctx context.Context, entries []models.TranscriptEntry, slides []models.Slide) ([]models.AlignedSlide, error) {
	aligned := p.deps.Aligner.Align(ctx, entries, slides)

	kept := p.deps.Aligner.FilterByContent(ctx, aligned, *p.cfg.Alignment.MinWords, p.cfg.Alignment.MinDuration)
	metrics.SlidesDroppedTotal.WithLabelValues("no_content").Add(float64(len(aligned) - len(kept)))

	if p.cfg.Alignment.MergeShort {
		kept = p.deps.Aligner.MergeShortSegments(ctx, kept, p.cfg.Alignment.MergeMinDuration)
	}
	if len(kept) == 0 {
		return nil, apperrors.Newf(apperrors.KindNoContentfulSlides, "none of %d slides has enough spoken content", len(aligned))
	}
	return aligner.Renumber(kept), nil
}

func (p *implProcessor) writeReport(ctx context.Context, ref models.VideoRef, runID string,
	aligned []models.AlignedSlide, summarized []models.SummarizedSlide, res *Result) error {
	now := p.deps.Now()
	r := models.Report{
		VideoID:     ref.ID,
		VideoURL:    ref.URL,
		GeneratedAt: now,
		Stats:       aligner.Stats(aligned),
		Batch:       summarizer.Batch(summarized),
		Slides:      summarized,
		Metadata: models.ReportMetadata{
			ToolVersion:      ToolVersion,
			SceneThreshold:   p.cfg.Slides.SceneThreshold,
			MaxSlides:        p.cfg.Slides.MaxSlides,
			MinSlideDuration: *p.cfg.Slides.MinSlideDuration,
			RunID:            runID,
		},
	}

	res.ReportPath = p.cfg.ReportPath(ref.ID)
	if err := p.deps.Report.Write(r, res.ReportPath); err != nil {
		return fmt.Errorf("write %s report: %w", p.deps.Report.Format(), err)
	}

	index, err := report.WriteIndex(p.cfg.Paths.Output, now)
	if err != nil {
		p.logger.Warn(ctx, "Failed to update index: %v", err)
		return nil
	}
	res.IndexPath = index
	return nil
}
