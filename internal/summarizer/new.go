package summarizer

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/ratelimit"
)

type implSummarizer struct {
	generator  Generator
	scheduler  ratelimit.Scheduler
	useVision  bool
	maxRetries int
	timeout    time.Duration
	logger     logger.Logger
	newBackOff func() backoff.BackOff
}

// New creates a Summarizer that gates every call to gen through sched.
func New(cfg config.GeminiConfig, gen Generator, sched ratelimit.Scheduler, log logger.Logger) Summarizer {
	useVision := true
	if cfg.UseVision != nil {
		useVision = *cfg.UseVision
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &implSummarizer{
		generator:  gen,
		scheduler:  sched,
		useVision:  useVision,
		maxRetries: maxRetries,
		timeout:    config.Seconds(cfg.TimeoutSeconds),
		logger:     log,
		newBackOff: defaultBackOff,
	}
}

// defaultBackOff waits 4s, 8s, 16s... capped at 60s.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 4 * time.Second
	b.Multiplier = 2
	b.MaxInterval = 60 * time.Second
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return b
}
