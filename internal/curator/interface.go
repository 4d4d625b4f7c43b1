// Package curator narrows scene candidates down to distinct, usable slides.
package curator

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

const (
	// DuplicateDistance is the Hamming distance below which two hashes are the same slide.
	DuplicateDistance = 5

	MinWidth  = 320
	MinHeight = 240

	// DarkLuma and BrightLuma bound the near-black and near-white pixel classes.
	DarkLuma   = 30
	BrightLuma = 225
	// MaxSolidFraction is the share of dark or bright pixels above which a frame is blank.
	MaxSolidFraction = 0.9
)

// Curator filters candidate timestamps before extraction and images after it.
type Curator interface {
	// Curate applies the minimum spacing and then the slide cap.
	Curate(ctx context.Context, timestamps []float64) []float64
	// Dedupe drops slides whose perceptual hash is near an already kept one.
	Dedupe(ctx context.Context, slides []models.Slide) []models.Slide
	// Validate drops images that are too small or almost a solid colour.
	Validate(ctx context.Context, slides []models.Slide) []models.Slide
}
