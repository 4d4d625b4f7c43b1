package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

func (r *implReader) CheckAvailable(ctx context.Context) error {
	if _, err := r.executor.Execute(ctx, r.binaryPath, "--version"); err != nil {
		if errors.Is(err, executor.ErrCommandNotFound) {
			return apperrors.New(apperrors.KindToolUnavailable, "tesseract", err)
		}
		return fmt.Errorf("tesseract version: %w", err)
	}
	return nil
}

func (r *implReader) ReadText(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", apperrors.New(apperrors.KindImageIO, "image not found", err)
	}

	// --psm 6 assumes a single uniform block of text, which suits slides.
	out, err := r.executor.Execute(ctx, r.binaryPath, imagePath, "stdout", "-l", r.language, "--oem", "3", "--psm", "6")
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return CleanText(out), nil
}

func (r *implReader) Annotate(ctx context.Context, slides []models.AlignedSlide) []models.AlignedSlide {
	out := make([]models.AlignedSlide, len(slides))
	for i, s := range slides {
		text, err := r.ReadText(ctx, s.ImagePath)
		if err != nil {
			r.logger.Warn(ctx, "OCR failed for slide %d: %v", s.SlideNumber, err)
			text = ""
		}
		s.OCRText = text
		s.OCRConfidence = Confidence(text)
		r.logger.Debug(ctx, "OCR extracted %d characters from slide %d", len(text), s.SlideNumber)
		out[i] = s
	}
	r.logger.Info(ctx, "Completed OCR processing for %d slides", len(out))
	return out
}

// CleanText drops OCR noise: lines shorter than two characters, long runs
// without spaces and lines with no letters or digits.
func CleanText(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := len([]rune(line))
		if n < 2 {
			continue
		}
		if !strings.Contains(line, " ") && n > 20 {
			continue
		}
		if strings.IndexFunc(line, isAlnum) >= 0 {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Confidence is the share of letters and digits in text.
func Confidence(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	var alnum int
	for _, c := range runes {
		if isAlnum(c) {
			alnum++
		}
	}
	return min(1.0, float64(alnum)/float64(len(runes)))
}

// FilterByText keeps slides whose OCR text is long and confident enough.
func FilterByText(slides []models.AlignedSlide, minLength int, minConfidence float64) []models.AlignedSlide {
	kept := make([]models.AlignedSlide, 0, len(slides))
	for _, s := range slides {
		if len([]rune(s.OCRText)) >= minLength && s.OCRConfidence >= minConfidence {
			kept = append(kept, s)
		}
	}
	return kept
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
