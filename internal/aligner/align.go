package aligner

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

func (a *implAligner) Align(ctx context.Context, transcript []models.TranscriptEntry, slides []models.Slide) []models.AlignedSlide {
	if len(transcript) == 0 || len(slides) == 0 {
		a.logger.Warn(ctx, "Nothing to align: %d transcript entries, %d slides", len(transcript), len(slides))
		return []models.AlignedSlide{}
	}

	ordered := make([]models.Slide, len(slides))
	copy(ordered, slides)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	entries := make([]models.TranscriptEntry, len(transcript))
	copy(entries, transcript)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})

	aligned := make([]models.AlignedSlide, 0, len(ordered))
	for i, slide := range ordered {
		start := slide.Timestamp
		end := math.Inf(1)
		if i+1 < len(ordered) {
			end = ordered[i+1].Timestamp
		}

		var chunk []models.TranscriptEntry
		for _, e := range entries {
			if overlaps(e, start, end) {
				chunk = append(chunk, e)
			}
		}

		as := models.AlignedSlide{Slide: slide, SlideNumber: i + 1}
		setChunk(&as, chunk)
		if as.WordCount == 0 {
			a.logger.Debug(ctx, "Slide %d at %.2fs has no transcript coverage", as.SlideNumber, slide.Timestamp)
		}
		aligned = append(aligned, as)
	}

	a.logger.Info(ctx, "Aligned %d transcript entries onto %d slides", len(entries), len(aligned))
	return aligned
}

// overlaps is half-open interval overlap between [e.Start, e.End) and [start, end).
func overlaps(e models.TranscriptEntry, start, end float64) bool {
	return !(e.End <= start || e.Start >= end)
}

// setChunk stores chunk on s and recomputes the derived text, duration and word count.
func setChunk(s *models.AlignedSlide, chunk []models.TranscriptEntry) {
	s.TranscriptChunk = chunk
	if s.TranscriptChunk == nil {
		s.TranscriptChunk = []models.TranscriptEntry{}
	}
	s.TranscriptText = joinText(chunk)
	s.Duration = chunkDuration(chunk)
	s.WordCount = len(strings.Fields(s.TranscriptText))
}

func joinText(chunk []models.TranscriptEntry) string {
	parts := make([]string, 0, len(chunk))
	for _, e := range chunk {
		if t := strings.TrimSpace(e.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func chunkDuration(chunk []models.TranscriptEntry) float64 {
	if len(chunk) == 0 {
		return 0
	}
	minStart, maxEnd := chunk[0].Start, chunk[0].End
	for _, e := range chunk[1:] {
		minStart = math.Min(minStart, e.Start)
		maxEnd = math.Max(maxEnd, e.End)
	}
	return math.Max(0, maxEnd-minStart)
}
