package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

type jsonWriter struct{}

func (jsonWriter) Format() string { return "json" }

func (jsonWriter) Write(r models.Report, path string) error {
	if r.Slides == nil {
		r.Slides = []models.SummarizedSlide{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
