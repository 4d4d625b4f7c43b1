package summarizer

import (
	"sort"
	"strings"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// ParseResponse reads the TITLE / SUMMARY / KEY POINTS / TOPICS layout.
// Missing title and summary get defaults.
func ParseResponse(text string) models.SlideSummary {
	out := models.SlideSummary{KeyPoints: []string{}, Topics: []string{}}
	section := ""

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		switch {
		case strings.HasPrefix(line, "TITLE:"):
			out.Title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
			section = "title"
		case strings.HasPrefix(line, "SUMMARY:"):
			out.Summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
			section = "summary"
		case strings.HasPrefix(line, "KEY POINTS:"):
			section = "key_points"
		case strings.HasPrefix(line, "TOPICS:"):
			out.Topics = splitTopics(strings.TrimPrefix(line, "TOPICS:"))
			section = "topics"
		case section == "summary" && line != "" && !strings.HasPrefix(line, "-"):
			if out.Summary != "" {
				out.Summary += " "
			}
			out.Summary += line
		case section == "key_points" && isBullet(line):
			if point := strings.TrimSpace(strings.TrimLeft(line, "-•* ")); point != "" {
				out.KeyPoints = append(out.KeyPoints, point)
			}
		}
	}

	if out.Title == "" {
		out.Title = DefaultTitle
	}
	if out.Summary == "" {
		out.Summary = DefaultSummary
	}
	return out
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "* ")
}

func splitTopics(s string) []string {
	topics := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// MaxMainTopics bounds BatchSummary.MainTopics.
const MaxMainTopics = 10

// Batch aggregates topics and key points across slides. Topics are ordered
// by frequency, ties by first appearance.
func Batch(slides []models.SummarizedSlide) models.BatchSummary {
	counts := map[string]int{}
	var order []string
	var keyPoints, withContent int

	for _, s := range slides {
		for _, t := range s.Topics {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
		keyPoints += len(s.KeyPoints)
		if s.Summary != "" && s.Summary != DefaultSummary {
			withContent++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > MaxMainTopics {
		order = order[:MaxMainTopics]
	}
	if order == nil {
		order = []string{}
	}

	return models.BatchSummary{
		TotalSlides:       len(slides),
		MainTopics:        order,
		TotalKeyPoints:    keyPoints,
		SlidesWithContent: withContent,
	}
}
