package report

import (
	"fmt"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Writer renders a processing report to a file.
type Writer interface {
	Format() string
	Write(r models.Report, path string) error
}

// New returns the writer for format: markdown, json or docx.
func New(format string) (Writer, error) {
	switch format {
	case "markdown", "md", "":
		return markdownWriter{}, nil
	case "json":
		return jsonWriter{}, nil
	case "docx":
		return docxWriter{}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
