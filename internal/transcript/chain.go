package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/models"
)

// Chain tries each source in order and returns the first non-empty transcript.
type Chain struct {
	sources []Source
	logger  logger.Logger
}

// NewChain creates a Chain over sources
func NewChain(log logger.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, logger: log}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *Chain) Fetch(ctx context.Context, ref models.VideoRef, language string) ([]models.TranscriptEntry, error) {
	var errs []error
	for _, s := range c.sources {
		entries, err := s.Fetch(ctx, ref, language)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug(ctx, "Transcript source %s failed for %s: %v", s.Name(), ref.ID, err)
			errs = append(errs, err)
			continue
		}
		if len(entries) == 0 {
			c.logger.Debug(ctx, "Transcript source %s returned nothing for %s", s.Name(), ref.ID)
			continue
		}
		c.logger.Info(ctx, "Got %d transcript entries for %s from %s", len(entries), ref.ID, s.Name())
		return entries, nil
	}
	return nil, apperrors.New(apperrors.KindNoTranscriptAvailable,
		fmt.Sprintf("could not retrieve %s transcript for video %s", language, ref.ID), errors.Join(errs...))
}
