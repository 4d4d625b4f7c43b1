package summarizer

import (
	"strings"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
	"github.com/nguyentantai21042004/slide-flow/internal/ocr"
)

const responseFormat = `

Please provide a structured analysis in the following format:

TITLE: [A clear, descriptive title for this slide]

SUMMARY: [A concise 2-3 sentence summary of the main content and message]

KEY POINTS:
- [Main point 1]
- [Main point 2]
- [Main point 3, if applicable]

TOPICS: [List of 2-4 main topics/themes covered, separated by commas]

Focus on the most important information and ensure the summary is useful for someone who hasn't seen the original content.`

func visionPrompt(transcript, ocrText string) string {
	var b strings.Builder
	b.WriteString("Analyze this slide image and the associated content to create a comprehensive summary.\n\nSLIDE CONTENT:\n")
	if transcript != "" {
		b.WriteString("\nTranscript (what was said): " + transcript)
	}
	if ocrText != "" {
		b.WriteString("\nText detected on slide: " + ocrText)
	}
	b.WriteString(responseFormat)
	return b.String()
}

func textPrompt(content string) string {
	return "Analyze the following slide content and create a comprehensive summary:\n\nCONTENT:\n" + content + responseFormat
}

// slideContent combines speech with on-slide text when OCR is confident enough.
func slideContent(s models.AlignedSlide) string {
	var parts []string
	if s.TranscriptText != "" {
		parts = append(parts, "Spoken: "+s.TranscriptText)
	}
	if s.OCRText != "" && s.OCRConfidence > ocr.MinUsefulConfidence {
		parts = append(parts, "Text on slide: "+s.OCRText)
	}
	return strings.Join(parts, "\n\n")
}
