package ratelimit

import (
	"context"
	"time"
)

// Window is the length of the quota window.
const Window = time.Minute

// SafetyFactor is the share of the published quota the scheduler lets through.
const SafetyFactor = 0.8

// Limits is the published per-minute quota of one account tier.
type Limits struct {
	RequestsPerMinute int
	TokensPerMinute   int
}

// Tiers maps an account tier to its quota.
var Tiers = map[int]Limits{
	0: {RequestsPerMinute: 3, TokensPerMinute: 40000},
	1: {RequestsPerMinute: 500, TokensPerMinute: 30000},
	2: {RequestsPerMinute: 5000, TokensPerMinute: 450000},
	3: {RequestsPerMinute: 5000, TokensPerMinute: 800000},
	4: {RequestsPerMinute: 10000, TokensPerMinute: 2000000},
	5: {RequestsPerMinute: 10000, TokensPerMinute: 30000000},
}

// LimitsFor returns the quota of tier. Unknown tiers get tier 1.
func LimitsFor(tier int) Limits {
	if l, ok := Tiers[tier]; ok {
		return l
	}
	return Tiers[1]
}

// Clock supplies time and a cancellable wait.
type Clock interface {
	Now() time.Time
	Wait(ctx context.Context, d time.Duration) error
}

// Usage is a snapshot of the current window.
type Usage struct {
	WindowStart time.Time
	Requests    int
	Tokens      int
}

// Scheduler gates outbound requests against a tier quota.
// It is local to the process.
type Scheduler interface {
	// Acquire blocks until a request estimated at tokens is permitted, then
	// records it. A cancelled Acquire records nothing.
	Acquire(ctx context.Context, tokens int) error
	Usage() Usage
	Limits() Limits
}

// EstimateTokens is a rough token count for text.
func EstimateTokens(text string) int {
	return len(text)/4 + 1
}
