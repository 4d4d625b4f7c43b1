package video

import (
	"context"

	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Source materialises a video as a local file.
type Source interface {
	// Fetch returns a decodable local file for ref. Local refs are returned as-is.
	Fetch(ctx context.Context, ref models.VideoRef, destDir string) (string, error)
}
