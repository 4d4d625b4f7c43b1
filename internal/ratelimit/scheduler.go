package ratelimit

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
)

func (s *implScheduler) Acquire(ctx context.Context, tokens int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.gate <- struct{}{}:
	}
	defer func() { <-s.gate }()

	began := s.clock.Now()
	defer func() {
		metrics.RateLimitWait.Observe(s.clock.Now().Sub(began).Seconds())
	}()

	if err := s.waitForQuota(ctx, tokens); err != nil {
		return err
	}

	now := s.clock.Now()
	r := s.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		if err := s.clock.Wait(ctx, delay); err != nil {
			r.CancelAt(s.clock.Now())
			return err
		}
	}

	s.mu.Lock()
	s.rollWindow(s.clock.Now())
	s.requests++
	s.tokens += tokens
	s.mu.Unlock()
	return nil
}

// waitForQuota blocks until the window has room for one more request of the
// given size.
func (s *implScheduler) waitForQuota(ctx context.Context, tokens int) error {
	// Compared unrounded: tier 0 allows 2.4, so a third call still fits.
	maxRequests := SafetyFactor * float64(s.limits.RequestsPerMinute)
	maxTokens := SafetyFactor * float64(s.limits.TokensPerMinute)

	for {
		s.mu.Lock()
		now := s.clock.Now()
		s.rollWindow(now)
		var reason string
		switch {
		case float64(s.requests) >= maxRequests:
			reason = "request"
		case s.tokens > 0 && float64(s.tokens+tokens) > maxTokens:
			reason = "token"
		}
		reset := s.windowStart.Add(Window).Sub(now)
		s.mu.Unlock()

		if reason == "" {
			return nil
		}

		s.logger.Info(ctx, "Approaching %s limit, waiting %.1fs for the window to reset", reason, reset.Seconds())
		if err := s.clock.Wait(ctx, reset); err != nil {
			return err
		}
	}
}

// rollWindow starts a new window once the current one is a full minute old.
// Callers hold s.mu.
func (s *implScheduler) rollWindow(now time.Time) {
	if now.Sub(s.windowStart) >= Window {
		s.windowStart = now
		s.requests = 0
		s.tokens = 0
	}
}

func (s *implScheduler) Usage() Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Usage{WindowStart: s.windowStart, Requests: s.requests, Tokens: s.tokens}
}

func (s *implScheduler) Limits() Limits {
	return s.limits
}

// MinInterval is the even spacing between requests at the safe rate.
func MinInterval(l Limits) time.Duration {
	perMinute := SafetyFactor * float64(l.RequestsPerMinute)
	if perMinute <= 0 {
		return 0
	}
	return time.Duration(float64(Window) / perMinute)
}
