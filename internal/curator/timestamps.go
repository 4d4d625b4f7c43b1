package curator

import (
	"context"
	"sort"
)

func (c *implCurator) Curate(ctx context.Context, timestamps []float64) []float64 {
	filtered := FilterSpacing(timestamps, c.minSlideDuration)
	if len(filtered) > c.maxSlides {
		// Earlier slides win: the cap keeps the first maxSlides in time order.
		c.logger.Warn(ctx, "Too many slides detected (%d), limiting to %d", len(filtered), c.maxSlides)
	}
	capped := Cap(filtered, c.maxSlides)
	c.logger.Info(ctx, "Candidate timestamps: %d -> %d", len(timestamps), len(capped))
	return capped
}

// FilterSpacing keeps a timestamp only when it is at least minGap seconds
// after the previously kept one. The earliest timestamp is always kept.
func FilterSpacing(timestamps []float64, minGap float64) []float64 {
	if len(timestamps) == 0 {
		return nil
	}

	sorted := make([]float64, len(timestamps))
	copy(sorted, timestamps)
	sort.Float64s(sorted)

	filtered := []float64{sorted[0]}
	for _, ts := range sorted[1:] {
		if ts-filtered[len(filtered)-1] >= minGap {
			filtered = append(filtered, ts)
		}
	}
	return filtered
}

// Cap truncates to the first max timestamps.
func Cap(timestamps []float64, max int) []float64 {
	if max <= 0 || len(timestamps) <= max {
		return timestamps
	}
	return timestamps[:max]
}
