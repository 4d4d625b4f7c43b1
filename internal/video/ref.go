package video

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

var (
	idPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#/]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

// WatchURL is the canonical page of a YouTube video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ParseRef resolves a CLI argument. Existing files win over id-shaped names.
func ParseRef(input string) (models.VideoRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.VideoRef{}, apperrors.Newf(apperrors.KindInvalidVideoRef, "empty video reference")
	}

	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(input)
		if err != nil {
			abs = input
		}
		return models.VideoRef{ID: LocalID(input), LocalPath: abs}, nil
	}

	if idPattern.MatchString(input) {
		return models.VideoRef{ID: input, URL: WatchURL(input)}, nil
	}

	for _, p := range urlPatterns {
		if m := p.FindStringSubmatch(input); m != nil && idPattern.MatchString(m[1]) {
			return models.VideoRef{ID: m[1], URL: WatchURL(m[1])}, nil
		}
	}

	return models.VideoRef{}, apperrors.Newf(apperrors.KindInvalidVideoRef, "could not extract video id from %q", input)
}

// LocalID derives a directory-safe id from a file name.
func LocalID(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if id == "" {
		return "video"
	}
	return id
}

// IsVideoFile reports whether path has a container extension ffmpeg reads.
func IsVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".mov", ".webm", ".avi", ".m4v":
		return true
	}
	return false
}
