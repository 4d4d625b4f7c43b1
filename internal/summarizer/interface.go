package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Default field values when a model reply omits them.
const (
	DefaultTitle   = "Slide Summary"
	DefaultSummary = "No summary available."
)

// Summarizer produces a structured summary for each aligned slide. A slide
// that cannot be summarized gets a placeholder; only cancellation aborts.
type Summarizer interface {
	SummarizeSlides(ctx context.Context, slides []models.AlignedSlide) ([]models.SummarizedSlide, error)
}

// Image is an inline picture sent alongside a prompt.
type Image struct {
	Data     []byte
	MIMEType string
}

// Generator sends one prompt to a language model and returns the reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string, image *Image) (string, error)
}
