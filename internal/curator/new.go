package curator

import (
	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
)

type implCurator struct {
	minSlideDuration float64
	maxSlides        int
	logger           logger.Logger
}

// New creates a Curator from the slides section of the configuration
func New(cfg config.SlidesConfig, log logger.Logger) Curator {
	var minGap float64
	if cfg.MinSlideDuration != nil {
		minGap = *cfg.MinSlideDuration
	}
	return &implCurator{
		minSlideDuration: minGap,
		maxSlides:        cfg.MaxSlides,
		logger:           log,
	}
}
