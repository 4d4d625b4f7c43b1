package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// WriteIndex lists every processed video under outputDir in index.md and
// returns its path. A video directory counts once it holds a summary file.
func WriteIndex(outputDir string, now time.Time) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("read output dir: %w", err)
	}

	var b strings.Builder
	var videos []string
	for _, e := range entries {
		if e.IsDir() && len(summaryFiles(filepath.Join(outputDir, e.Name()))) > 0 {
			videos = append(videos, e.Name())
		}
	}
	sort.Strings(videos)

	fmt.Fprintf(&b, "# Slide Summaries Index\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total videos processed:** %d\n\n", len(videos))
	fmt.Fprintf(&b, "## Processed Videos\n\n")

	for _, id := range videos {
		dir := filepath.Join(outputDir, id)
		fmt.Fprintf(&b, "### %s\n", id)
		for _, f := range summaryFiles(dir) {
			fmt.Fprintf(&b, "- [%s](%s)\n", strings.ToUpper(strings.TrimPrefix(filepath.Ext(f), ".")), filepath.ToSlash(filepath.Join(id, f)))
		}
		if n := countSlides(filepath.Join(dir, "slides")); n > 0 {
			fmt.Fprintf(&b, "- Slides extracted: %d\n", n)
		}
		b.WriteString("\n")
	}

	path := filepath.Join(outputDir, "index.md")
	if err := writeFile(path, []byte(b.String())); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return path, nil
}

func summaryFiles(dir string) []string {
	var out []string
	for _, ext := range []string{"md", "json", "docx"} {
		name := "summary." + ext
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			out = append(out, name)
		}
	}
	return out
}

func countSlides(dir string) int {
	matches, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	return len(matches)
}
