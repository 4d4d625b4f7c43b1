package transcript

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	vttTimestamp     = regexp.MustCompile(`^(?:(\d+):)?(\d{2}):(\d{2})[.,](\d{3})$`)
	whitespaceRunsRe = regexp.MustCompile(`\s+`)
)

// ParseVTT parses WebVTT captions. Inline markup and cue settings are dropped;
// cues without text are skipped.
func ParseVTT(content string) []models.TranscriptEntry {
	return parseCues(content)
}

// ParseSRT parses SubRip captions.
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	I'm happy to
//	have you here today.
func ParseSRT(content string) []models.TranscriptEntry {
	return parseCues(content)
}

// parseCues handles both formats: a cue is a timing line followed by text
// lines up to the next blank line.
func parseCues(content string) []models.TranscriptEntry {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	entries := []models.TranscriptEntry{}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			continue
		}

		start, end, err := parseTiming(line)
		if err != nil {
			continue
		}

		var text []string
		for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			i++
			text = append(text, strings.TrimSpace(lines[i]))
		}

		cleaned := cleanCueText(strings.Join(text, " "))
		if cleaned == "" {
			continue
		}
		if end < start {
			end = start
		}
		entries = append(entries, models.TranscriptEntry{Start: start, End: end, Text: cleaned})
	}
	return entries
}

func parseTiming(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed timing line %q", line)
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	// The end timestamp may be followed by cue settings.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp in %q", line)
	}
	end, err := parseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp accepts HH:MM:SS.mmm, MM:SS.mmm and the SRT comma variant.
func parseTimestamp(s string) (float64, error) {
	m := vttTimestamp.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	var hours int
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	millis, _ := strconv.Atoi(m[4])
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

func cleanCueText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespaceRunsRe.ReplaceAllString(s, " "))
}
