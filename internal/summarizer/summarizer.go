package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/internal/ratelimit"
)

func (s *implSummarizer) SummarizeSlides(ctx context.Context, slides []models.AlignedSlide) ([]models.SummarizedSlide, error) {
	limits := s.scheduler.Limits()
	s.logger.Info(ctx, "Starting summarization of %d slides (vision=%t)", len(slides), s.useVision)
	s.logger.Info(ctx, "Rate limits: %d req/min, %d tokens/min", limits.RequestsPerMinute, limits.TokensPerMinute)

	out := make([]models.SummarizedSlide, 0, len(slides))
	for i, slide := range slides {
		s.logger.Info(ctx, "[%d/%d] Summarizing slide %d", i+1, len(slides), slide.SlideNumber)

		summary, err := s.summarizeOne(ctx, slide)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			s.logger.Error(ctx, "Failed to summarize slide %d: %v", slide.SlideNumber, err)
			metrics.SummarizerRequestsTotal.WithLabelValues("failed").Inc()
			out = append(out, placeholder(slide, err))
			continue
		}

		metrics.SummarizerRequestsTotal.WithLabelValues("ok").Inc()
		out = append(out, models.SummarizedSlide{AlignedSlide: slide, SlideSummary: summary})
	}

	s.logger.Info(ctx, "Completed summarization for %d slides", len(out))
	return out, nil
}

// summarizeOne retries transient failures with exponential backoff. Every
// attempt goes through the scheduler first.
func (s *implSummarizer) summarizeOne(ctx context.Context, slide models.AlignedSlide) (models.SlideSummary, error) {
	prompt, image := s.buildRequest(ctx, slide)
	tokens := ratelimit.EstimateTokens(slide.TranscriptText + " " + slide.OCRText)

	var reply string
	op := func() error {
		if err := s.scheduler.Acquire(ctx, tokens); err != nil {
			return backoff.Permanent(err)
		}

		callCtx, cancel := s.callContext(ctx)
		defer cancel()

		text, err := s.generator.Generate(callCtx, prompt, image)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if !isTransient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		reply = text
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.maxRetries-1)), ctx)
	notify := func(err error, wait time.Duration) {
		metrics.SummarizerRequestsTotal.WithLabelValues("retried").Inc()
		s.logger.Warn(ctx, "Slide %d: transient error, retrying in %s: %v", slide.SlideNumber, wait, err)
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return models.SlideSummary{}, err
	}

	return ParseResponse(reply), nil
}

func (s *implSummarizer) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// buildRequest picks the vision prompt when the slide image is readable.
func (s *implSummarizer) buildRequest(ctx context.Context, slide models.AlignedSlide) (string, *Image) {
	if s.useVision {
		data, err := os.ReadFile(slide.ImagePath)
		if err == nil {
			return visionPrompt(slide.TranscriptText, slide.OCRText), &Image{Data: data, MIMEType: "image/png"}
		}
		s.logger.Warn(ctx, "Slide %d: image unreadable, using text only: %v", slide.SlideNumber, err)
	}
	return textPrompt(slideContent(slide)), nil
}

// isTransient reports rate limiting, overload and per-call timeouts.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"429", "quota", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "503", "deadline exceeded", "timeout"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func placeholder(slide models.AlignedSlide, err error) models.SummarizedSlide {
	return models.SummarizedSlide{
		AlignedSlide: slide,
		SlideSummary: models.SlideSummary{
			Title:     fmt.Sprintf("Slide %d", slide.SlideNumber),
			Summary:   fmt.Sprintf("[Error: Could not generate summary - %v]", err),
			KeyPoints: []string{},
			Topics:    []string{},
		},
		Error: err.Error(),
	}
}
