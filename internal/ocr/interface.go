package ocr

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// MinUsefulConfidence is the confidence above which OCR text is worth
// showing to the summarizer.
const MinUsefulConfidence = 0.3

// Reader extracts visible text from slide images.
type Reader interface {
	CheckAvailable(ctx context.Context) error
	ReadText(ctx context.Context, imagePath string) (string, error)
	// Annotate fills OCRText and OCRConfidence. A failing slide gets empty
	// text and zero confidence.
	Annotate(ctx context.Context, slides []models.AlignedSlide) []models.AlignedSlide
}
