package ocr

import (
	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type implReader struct {
	binaryPath string
	language   string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a tesseract-backed Reader
func New(cfg config.OCRConfig, exec executor.Executor, log logger.Logger) Reader {
	return &implReader{
		binaryPath: cfg.BinaryPath,
		language:   cfg.Language,
		executor:   exec,
		logger:     log,
	}
}
