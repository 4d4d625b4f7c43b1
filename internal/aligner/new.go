package aligner

import "github.com/nguyentantai21042004/slide-flow/internal/logger"

type implAligner struct {
	logger logger.Logger
}

// New creates a new Aligner instance
func New(log logger.Logger) Aligner {
	return &implAligner{logger: log}
}
