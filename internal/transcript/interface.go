package transcript

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Source supplies a timed transcript for a video.
type Source interface {
	Name() string
	Fetch(ctx context.Context, ref models.VideoRef, language string) ([]models.TranscriptEntry, error)
}

// Store caches a transcript next to the other per-video artifacts.
type Store interface {
	// Load reports false when no cached transcript exists.
	Load(videoID string) ([]models.TranscriptEntry, bool, error)
	Save(videoID string, entries []models.TranscriptEntry) (string, error)
}
