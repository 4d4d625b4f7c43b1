package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T, videoDir string) models.Report {
	t.Helper()
	slidesDir := filepath.Join(videoDir, "slides")
	require.NoError(t, os.MkdirAll(slidesDir, 0755))
	img := filepath.Join(slidesDir, "slide_0000_75.40s.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0644))

	return models.Report{
		VideoID:     "dQw4w9WgXcQ",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Stats:       models.AlignmentStats{TotalSlides: 1, TotalWords: 3, AvgWords: 3},
		Batch:       models.BatchSummary{TotalSlides: 1, MainTopics: []string{"go", "channels"}, SlidesWithContent: 1},
		Slides: []models.SummarizedSlide{{
			AlignedSlide: models.AlignedSlide{
				Slide:          models.Slide{Timestamp: 75.4, ImagePath: img, VideoID: "dQw4w9WgXcQ"},
				SlideNumber:    1,
				TranscriptText: "hello <world> & co",
				Duration:       12.5,
				WordCount:      3,
				OCRText:        "Intro",
				OCRConfidence:  0.4,
			},
			SlideSummary: models.SlideSummary{
				Title:     "Intro",
				Summary:   "A **short** opener.",
				KeyPoints: []string{"first"},
				Topics:    []string{"go"},
			},
		}},
		Metadata: models.ReportMetadata{ToolVersion: "1.0.0", RunID: "run-1"},
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{75.4, "01:15"},
		{3725, "62:05"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.in))
	}
}

func TestMarkdownWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dQw4w9WgXcQ")
	r := sampleReport(t, dir)
	w, err := New("markdown")
	require.NoError(t, err)

	path := filepath.Join(dir, "summary.md")
	require.NoError(t, w.Write(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Video Analysis Report: dQw4w9WgXcQ")
	assert.Contains(t, md, "**Generated:** 2024-03-01 09:30:00")
	assert.Contains(t, md, "- [Slide 1: Intro](#slide-1) (01:15)")
	assert.Contains(t, md, "![Slide 1](slides/slide_0000_75.40s.png)")
	assert.Contains(t, md, "**Duration:** 12.5s")
	assert.Contains(t, md, "Low confidence")
	assert.Contains(t, md, "- **Main topics:** go, channels")
	assert.Contains(t, md, "**Tags:** go")
}

func TestMarkdownSkipsMissingImage(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	r.Slides[0].ImagePath = filepath.Join(dir, "nope.png")
	md := RenderMarkdown(r, dir)
	assert.NotContains(t, md, "![Slide 1]")
}

func TestJSONWriter(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	w, err := New("json")
	require.NoError(t, err)

	path := filepath.Join(dir, "summary.json")
	require.NoError(t, w.Write(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello <world> & co", "HTML must not be escaped")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "dQw4w9WgXcQ", decoded["video_id"])
	slides := decoded["slides"].([]any)
	require.Len(t, slides, 1)
	first := slides[0].(map[string]any)
	assert.Equal(t, "Intro", first["title"])
	assert.Equal(t, float64(1), first["slide_number"])
	assert.Contains(t, decoded, "batch_summary")
}

func TestJSONWriterEmptySlides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, jsonWriter{}.Write(models.Report{VideoID: "x"}, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"slides": []`)
}

func TestDocxWriter(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	w, err := New("docx")
	require.NoError(t, err)

	path := filepath.Join(dir, "summary.docx")
	require.NoError(t, w.Write(r, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("pdf")
	assert.Error(t, err)
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "Slide 1: Intro", cleanMarkdownInline("[Slide 1: Intro](#slide-1)"))
	assert.Equal(t, "note", cleanMarkdownInline("*note*"))
	assert.Equal(t, "code", cleanMarkdownInline("`code`"))
}

func TestWriteIndex(t *testing.T) {
	out := t.TempDir()
	done := filepath.Join(out, "abc")
	sampleReport(t, done)
	require.NoError(t, os.WriteFile(filepath.Join(done, "summary.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(out, "pending"), 0755))

	path, err := WriteIndex(out, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	index := string(data)
	assert.Contains(t, index, "**Total videos processed:** 1")
	assert.Contains(t, index, "- [MD](abc/summary.md)")
	assert.Contains(t, index, "- Slides extracted: 1")
	assert.False(t, strings.Contains(index, "pending"))
}
