package ffmpeg

import (
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type implTool struct {
	ffmpegPath    string
	probePath     string
	sceneTimeout  time.Duration
	frameTimeout  time.Duration
	probeTimeout  time.Duration
	audioTimeout  time.Duration
	workers       int
	reuseExisting bool
	executor      executor.Executor
	logger        logger.Logger
}

// New creates a Tool from the ffmpeg section of the configuration
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Tool {
	workers := cfg.ExtractWorkers
	if workers <= 0 {
		workers = 1
	}
	return &implTool{
		ffmpegPath:    cfg.BinaryPath,
		probePath:     cfg.ProbePath,
		sceneTimeout:  config.Seconds(cfg.SceneTimeoutSeconds),
		frameTimeout:  config.Seconds(cfg.FrameTimeoutSeconds),
		probeTimeout:  config.Seconds(cfg.ProbeTimeoutSeconds),
		audioTimeout:  config.Seconds(cfg.AudioExtractTimeout),
		workers:       workers,
		reuseExisting: cfg.ReuseExistingFrames,
		executor:      exec,
		logger:        log,
	}
}
