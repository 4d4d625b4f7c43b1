package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

var reSlideFile = regexp.MustCompile(`^slide_(\d{4,})_(\d+(?:\.\d+)?)s\.png$`)

// SlideFilename encodes frame index and timestamp, e.g. slide_0003_12.50s.png
func SlideFilename(index int, ts float64) string {
	return fmt.Sprintf("slide_%04d_%.2fs.png", index, ts)
}

// ParseSlideFilename reverses SlideFilename.
func ParseSlideFilename(name string) (index int, ts float64, ok bool) {
	m := reSlideFile.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	ts, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return index, ts, true
}

// LoadSlides rebuilds the slide list from a slides directory without
// re-running detection. Files that do not follow the naming scheme are skipped.
func LoadSlides(dir, videoID string) ([]models.Slide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slides dir: %w", err)
	}

	var slides []models.Slide
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		index, ts, ok := ParseSlideFilename(e.Name())
		if !ok {
			continue
		}
		slides = append(slides, models.Slide{
			Timestamp:   ts,
			ImagePath:   filepath.Join(dir, e.Name()),
			FrameNumber: index,
			VideoID:     videoID,
		})
	}

	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].FrameNumber < slides[j].FrameNumber
	})
	return slides, nil
}
