package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reImage    = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	reLink     = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reAnchor   = regexp.MustCompile(`^<a id="[^"]*"></a>$`)
)

type docxWriter struct{}

func (docxWriter) Format() string { return "docx" }

// Write renders the markdown report and converts it paragraph by paragraph.
func (docxWriter) Write(r models.Report, path string) error {
	md := RenderMarkdown(r, filepath.Dir(path))
	if err := markdownToDocx(fmt.Sprintf("Video Analysis Report: %s", r.VideoID), md, path); err != nil {
		return fmt.Errorf("write docx report: %w", err)
	}
	return nil
}

// markdownToDocx converts markdown text to a styled docx file. The first
// heading is replaced by title.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	skippedTitle := false
	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "```" {
			inCode = !inCode
			continue
		}
		if inCode {
			if trimmed != "" {
				doc.AddParagraph("").AddText(trimmed).Font("Courier New").Size(11).Color("333333")
			}
			continue
		}

		if trimmed == "" || trimmed == "---" || reAnchor.MatchString(trimmed) {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			if len(m[1]) == 1 && !skippedTitle {
				skippedTitle = true
				continue
			}
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reImage.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), fmt.Sprintf("[%s: %s]", m[1], m[2]))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = reLink.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	// Single-asterisk emphasis.
	if strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*") && len(s) > 1 {
		s = strings.Trim(s, "*")
	}
	return s
}
