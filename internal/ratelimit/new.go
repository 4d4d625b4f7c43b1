package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"golang.org/x/time/rate"
)

type implScheduler struct {
	limits  Limits
	clock   Clock
	logger  logger.Logger
	limiter *rate.Limiter

	// gate serialises Acquire callers while still honouring ctx.
	gate chan struct{}

	mu          sync.Mutex
	windowStart time.Time
	requests    int
	tokens      int
}

// New creates a Scheduler for tier using the wall clock.
func New(tier int, log logger.Logger) Scheduler {
	return NewWithClock(tier, log, realClock{})
}

// NewWithClock creates a Scheduler for tier driven by clock.
func NewWithClock(tier int, log logger.Logger, clock Clock) Scheduler {
	limits := LimitsFor(tier)
	perSecond := SafetyFactor * float64(limits.RequestsPerMinute) / Window.Seconds()
	return &implScheduler{
		limits:      limits,
		clock:       clock,
		logger:      log,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), 1),
		gate:        make(chan struct{}, 1),
		windowStart: clock.Now(),
	}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
