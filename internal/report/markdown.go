package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

type markdownWriter struct{}

func (markdownWriter) Format() string { return "markdown" }

func (markdownWriter) Write(r models.Report, path string) error {
	content := RenderMarkdown(r, filepath.Dir(path))
	if err := writeFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// RenderMarkdown renders r with slide images linked relative to baseDir.
func RenderMarkdown(r models.Report, baseDir string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# Video Analysis Report: %s", r.VideoID)
	line("")
	line("*Slide screenshots with the text visible on them, what was said while they were shown, and a summary of each.*")
	line("")
	if r.VideoURL != "" {
		line("**Video URL:** %s", r.VideoURL)
		line("")
	}
	line("**Generated:** %s", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	line("**Total Slides:** %d", len(r.Slides))
	line("")

	line("## Overview")
	line("")
	line("- **Total slides processed:** %d", r.Batch.TotalSlides)
	line("- **Slides with content:** %d", r.Batch.SlidesWithContent)
	if len(r.Batch.MainTopics) > 0 {
		line("- **Main topics:** %s", strings.Join(r.Batch.MainTopics[:min(5, len(r.Batch.MainTopics))], ", "))
	}
	if r.Stats.TotalSlides > 0 {
		line("- **Spoken words:** %d (%.1f per slide)", r.Stats.TotalWords, r.Stats.AvgWords)
	}
	line("")

	line("## Table of Contents")
	line("")
	for _, s := range r.Slides {
		line("- [Slide %d: %s](#slide-%d) (%s)", s.SlideNumber, s.Title, s.SlideNumber, FormatTimestamp(s.Timestamp))
	}
	line("")
	line("---")
	line("")

	for _, s := range r.Slides {
		writeSlide(&b, s, baseDir)
		line("")
	}

	line("---")
	line("")
	line("**Legend:**")
	line("- OCR text shows the text that appears on each slide")
	line("- Transcript shows what was spoken during each slide segment")
	line("- Low confidence OCR may contain transcription errors")
	return b.String()
}

func writeSlide(b *strings.Builder, s models.SummarizedSlide, baseDir string) {
	line := func(format string, args ...any) {
		fmt.Fprintf(b, format, args...)
		b.WriteByte('\n')
	}

	line("<a id=\"slide-%d\"></a>", s.SlideNumber)
	line("## Slide %d: %s", s.SlideNumber, s.Title)
	line("")
	line("**Timestamp:** %s", FormatTimestamp(s.Timestamp))
	if s.Duration > 0 {
		line("**Duration:** %.1fs", s.Duration)
	}
	if s.WordCount > 0 {
		line("**Word count:** %d", s.WordCount)
	}
	line("")

	if s.ImagePath != "" {
		if _, err := os.Stat(s.ImagePath); err == nil {
			line("![Slide %d](%s)", s.SlideNumber, relativePath(baseDir, s.ImagePath))
			line("")
		}
	}

	if text := strings.TrimSpace(s.OCRText); text != "" {
		line("### Text Visible on Slide")
		line("")
		line("```")
		line("%s", text)
		line("```")
		line("")
		if s.OCRConfidence > 0 {
			note := fmt.Sprintf("*OCR Confidence: %.2f*", s.OCRConfidence)
			if s.OCRConfidence < 0.5 {
				note += " *Low confidence - text may be inaccurate*"
			}
			line("%s", note)
			line("")
		}
	}

	if text := strings.TrimSpace(s.TranscriptText); text != "" {
		line("### Spoken Content (Transcript)")
		line("")
		line("```")
		line("%s", text)
		line("```")
		line("")
	}

	if s.Summary != "" {
		line("### Summary")
		line("")
		line("%s", s.Summary)
		line("")
	}

	if len(s.KeyPoints) > 0 {
		line("### Key Points")
		line("")
		for _, p := range s.KeyPoints {
			line("- %s", p)
		}
		line("")
	}

	if len(s.Topics) > 0 {
		line("### Topics")
		line("")
		line("**Tags:** %s", strings.Join(s.Topics, ", "))
		line("")
	}
	line("---")
}

// FormatTimestamp renders seconds as MM:SS.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func relativePath(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
