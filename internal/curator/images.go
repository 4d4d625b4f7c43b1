package curator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Dedupe is a greedy first-seen pass: each slide is compared against every
// hash kept so far, never against discarded ones.
func (c *implCurator) Dedupe(ctx context.Context, slides []models.Slide) []models.Slide {
	if len(slides) == 0 {
		return slides
	}

	unique := make([]models.Slide, 0, len(slides))
	var kept []*goimagehash.ImageHash

	for _, slide := range slides {
		img, err := decodeImage(slide.ImagePath)
		if err != nil {
			c.logger.Warn(ctx, "Skipping slide at %.2fs: %v", slide.Timestamp, err)
			metrics.SlidesDroppedTotal.WithLabelValues("image_io").Inc()
			continue
		}

		hash, err := goimagehash.AverageHash(img)
		if err != nil {
			c.logger.Warn(ctx, "Skipping slide at %.2fs: hash: %v", slide.Timestamp, err)
			metrics.SlidesDroppedTotal.WithLabelValues("image_io").Inc()
			continue
		}

		if isDuplicate(hash, kept) {
			c.removeImage(ctx, slide.ImagePath)
			c.logger.Debug(ctx, "Removed duplicate slide at %.2fs: %s", slide.Timestamp, slide.ImagePath)
			metrics.SlidesDroppedTotal.WithLabelValues("duplicate").Inc()
			continue
		}

		kept = append(kept, hash)
		slide.ImageHash = hash.ToString()
		unique = append(unique, slide)
	}

	c.logger.Info(ctx, "Removed %d duplicate slides", len(slides)-len(unique))
	return unique
}

func isDuplicate(hash *goimagehash.ImageHash, kept []*goimagehash.ImageHash) bool {
	for _, h := range kept {
		d, err := hash.Distance(h)
		if err == nil && d < DuplicateDistance {
			return true
		}
	}
	return false
}

func (c *implCurator) Validate(ctx context.Context, slides []models.Slide) []models.Slide {
	valid := make([]models.Slide, 0, len(slides))

	for _, slide := range slides {
		img, err := decodeImage(slide.ImagePath)
		if err != nil {
			c.logger.Warn(ctx, "Skipping slide at %.2fs: %v", slide.Timestamp, err)
			metrics.SlidesDroppedTotal.WithLabelValues("image_io").Inc()
			continue
		}

		if reason := invalidReason(img); reason != "" {
			c.removeImage(ctx, slide.ImagePath)
			c.logger.Debug(ctx, "Filtered out slide at %.2fs (%s): %s", slide.Timestamp, reason, slide.ImagePath)
			metrics.SlidesDroppedTotal.WithLabelValues(reason).Inc()
			continue
		}
		valid = append(valid, slide)
	}

	c.logger.Info(ctx, "Filtered slides: %d -> %d", len(slides), len(valid))
	return valid
}

// invalidReason returns "" for a usable slide, otherwise why it is rejected.
func invalidReason(img image.Image) string {
	b := img.Bounds()
	if b.Dx() < MinWidth || b.Dy() < MinHeight {
		return "too_small"
	}

	var dark, bright int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			luma := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			switch {
			case luma < DarkLuma:
				dark++
			case luma > BrightLuma:
				bright++
			}
		}
	}

	total := float64(b.Dx() * b.Dy())
	if float64(dark)/total > MaxSolidFraction {
		return "mostly_black"
	}
	if float64(bright)/total > MaxSolidFraction {
		return "mostly_white"
	}
	return ""
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.New(apperrors.KindImageIO, "open image", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.New(apperrors.KindImageIO, fmt.Sprintf("decode %s", path), err)
	}
	return img, nil
}

func (c *implCurator) removeImage(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
	}
}
