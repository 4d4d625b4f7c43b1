package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

type fileStore struct {
	pathFor func(videoID string) string
}

// NewFileStore creates a Store writing JSON to the path pathFor returns.
func NewFileStore(pathFor func(videoID string) string) Store {
	return &fileStore{pathFor: pathFor}
}

func (s *fileStore) Load(videoID string) ([]models.TranscriptEntry, bool, error) {
	data, err := os.ReadFile(s.pathFor(videoID))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read transcript: %w", err)
	}

	var entries []models.TranscriptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("decode transcript: %w", err)
	}
	return entries, len(entries) > 0, nil
}

func (s *fileStore) Save(videoID string, entries []models.TranscriptEntry) (string, error) {
	path := s.pathFor(videoID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}
