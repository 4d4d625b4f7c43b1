package aligner

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

func (a *implAligner) FilterByContent(ctx context.Context, slides []models.AlignedSlide, minWords int, minDuration float64) []models.AlignedSlide {
	kept := make([]models.AlignedSlide, 0, len(slides))
	for _, s := range slides {
		if s.WordCount < minWords || s.Duration < minDuration {
			a.logger.Debug(ctx, "Dropped slide %d at %.2fs: %d words, %.1fs", s.SlideNumber, s.Timestamp, s.WordCount, s.Duration)
			continue
		}
		kept = append(kept, s)
	}
	a.logger.Info(ctx, "Content filter: %d -> %d slides", len(slides), len(kept))
	return kept
}

// MergeShortSegments makes one greedy left-to-right pass. A trailing short
// slide is emitted as-is. Slide numbers are renumbered from 1.
func (a *implAligner) MergeShortSegments(ctx context.Context, slides []models.AlignedSlide, minDuration float64) []models.AlignedSlide {
	if len(slides) == 0 {
		return []models.AlignedSlide{}
	}

	merged := make([]models.AlignedSlide, 0, len(slides))
	acc := cloneSlide(slides[0])
	for _, next := range slides[1:] {
		if acc.Duration < minDuration {
			chunk := append(append([]models.TranscriptEntry{}, acc.TranscriptChunk...), next.TranscriptChunk...)
			setChunk(&acc, chunk)
			continue
		}
		merged = append(merged, acc)
		acc = cloneSlide(next)
	}
	merged = append(merged, acc)

	for i := range merged {
		merged[i].SlideNumber = i + 1
	}
	a.logger.Info(ctx, "Merged short segments: %d -> %d slides", len(slides), len(merged))
	return merged
}

func cloneSlide(s models.AlignedSlide) models.AlignedSlide {
	s.TranscriptChunk = append([]models.TranscriptEntry{}, s.TranscriptChunk...)
	return s
}

// Context returns the slide at index with up to window neighbours on each side.
func Context(slides []models.AlignedSlide, index, window int) (models.SlideContext, bool) {
	if index < 0 || index >= len(slides) {
		return models.SlideContext{}, false
	}
	if window < 0 {
		window = 0
	}
	lo := max(0, index-window)
	hi := min(len(slides), index+window+1)
	return models.SlideContext{
		Current:  slides[index],
		Previous: append([]models.AlignedSlide{}, slides[lo:index]...),
		Next:     append([]models.AlignedSlide{}, slides[index+1:hi]...),
	}, true
}

// Stats aggregates durations and word counts. It is zero for an empty list.
func Stats(slides []models.AlignedSlide) models.AlignmentStats {
	if len(slides) == 0 {
		return models.AlignmentStats{}
	}

	st := models.AlignmentStats{
		TotalSlides: len(slides),
		MinDuration: slides[0].Duration,
		MaxDuration: slides[0].Duration,
		MinWords:    slides[0].WordCount,
		MaxWords:    slides[0].WordCount,
	}
	for _, s := range slides {
		st.TotalWords += s.WordCount
		st.TotalDuration += s.Duration
		st.MinDuration = min(st.MinDuration, s.Duration)
		st.MaxDuration = max(st.MaxDuration, s.Duration)
		st.MinWords = min(st.MinWords, s.WordCount)
		st.MaxWords = max(st.MaxWords, s.WordCount)
	}
	n := float64(len(slides))
	st.AvgDuration = st.TotalDuration / n
	st.AvgWords = float64(st.TotalWords) / n
	return st
}

// Renumber assigns slide numbers 1..n in order, in place.
func Renumber(slides []models.AlignedSlide) []models.AlignedSlide {
	for i := range slides {
		slides[i].SlideNumber = i + 1
	}
	return slides
}
