package aligner

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Thresholds of the stricter content policy.
const (
	StrictMinWords    = 5
	StrictMinDuration = 3.0
)

// Aligner maps a timed transcript onto slide windows.
type Aligner interface {
	// Align assigns every transcript entry to each slide window it overlaps.
	// Window i is [timestamp_i, timestamp_i+1); the last window is unbounded.
	Align(ctx context.Context, transcript []models.TranscriptEntry, slides []models.Slide) []models.AlignedSlide

	// FilterByContent keeps slides with at least minWords words and minDuration seconds.
	FilterByContent(ctx context.Context, slides []models.AlignedSlide, minWords int, minDuration float64) []models.AlignedSlide

	// MergeShortSegments folds short slides into the following ones.
	MergeShortSegments(ctx context.Context, slides []models.AlignedSlide, minDuration float64) []models.AlignedSlide
}
