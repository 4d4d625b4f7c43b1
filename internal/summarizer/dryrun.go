package summarizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

type dryRun struct {
	logger logger.Logger
}

// NewDryRun creates a Summarizer that fills in canned summaries without any API call.
func NewDryRun(log logger.Logger) Summarizer {
	return &dryRun{logger: log}
}

func (d *dryRun) SummarizeSlides(ctx context.Context, slides []models.AlignedSlide) ([]models.SummarizedSlide, error) {
	d.logger.Info(ctx, "Running in dry-run mode - no API calls will be made")

	out := make([]models.SummarizedSlide, len(slides))
	for i, s := range slides {
		out[i] = models.SummarizedSlide{
			AlignedSlide: s,
			SlideSummary: models.SlideSummary{
				Title: fmt.Sprintf("[DRY RUN] Slide %d", s.SlideNumber),
				Summary: fmt.Sprintf("[DRY RUN] This would be a summary of slide %d with %d words from transcript.",
					s.SlideNumber, s.WordCount),
				KeyPoints: []string{"[DRY RUN] Key point 1", "[DRY RUN] Key point 2", "[DRY RUN] Key point 3"},
				Topics:    []string{"topic1", "topic2", "topic3"},
			},
		}
	}
	return out, nil
}
