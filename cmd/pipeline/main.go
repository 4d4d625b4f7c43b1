package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/internal/ffmpeg"
	"github.com/nguyentantai21042004/slide-flow/internal/logger"
	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
	"github.com/nguyentantai21042004/slide-flow/internal/processor"
	"github.com/nguyentantai21042004/slide-flow/internal/watcher"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

type options struct {
	configPath     string
	format         string
	sceneThreshold float64
	language       string
	maxSlides      int
	tier           int
	dryRun         bool
	noOCR          bool
	noVision       bool
	keepTemp       bool
	logLevel       string
	outputDir      string
	watch          bool
	verbose        bool
}

func parseFlags(args []string) (*options, []string, error) {
	fsFlags := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	fsFlags.Usage = func() {
		fmt.Fprintf(fsFlags.Output(), "Usage: pipeline [flags] <youtube-url | video-id | video-file>\n       pipeline -watch [flags]\n\n")
		fsFlags.PrintDefaults()
	}

	o := &options{}
	fsFlags.StringVar(&o.configPath, "config", "config.yaml", "path to the YAML configuration")
	fsFlags.StringVar(&o.format, "format", "", "report format: markdown, json or docx")
	fsFlags.Float64Var(&o.sceneThreshold, "scene-threshold", 0, "scene change threshold (0.1-1.0)")
	fsFlags.StringVar(&o.language, "language", "", "transcript language code")
	fsFlags.IntVar(&o.maxSlides, "max-slides", 0, "maximum number of slides to extract")
	fsFlags.IntVar(&o.tier, "tier", -1, "Gemini API tier (0-5)")
	fsFlags.BoolVar(&o.dryRun, "dry-run", false, "process slides without calling the summarization API")
	fsFlags.BoolVar(&o.noOCR, "no-ocr", false, "skip OCR text extraction")
	fsFlags.BoolVar(&o.noVision, "no-vision", false, "use text-only summarization")
	fsFlags.BoolVar(&o.keepTemp, "keep-temp", false, "keep the downloaded video")
	fsFlags.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	fsFlags.StringVar(&o.outputDir, "output-dir", "", "output directory for reports")
	fsFlags.BoolVar(&o.watch, "watch", false, "process every video dropped into paths.input")
	fsFlags.BoolVar(&o.verbose, "verbose", false, "print the full error chain on failure")

	if err := fsFlags.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fsFlags.Args(), nil
}

// apply layers the command line over the loaded configuration.
func (o *options) apply(cfg *config.Config) error {
	if o.sceneThreshold != 0 {
		if o.sceneThreshold < 0.1 || o.sceneThreshold > 1.0 {
			return fmt.Errorf("scene threshold must be between 0.1 and 1.0")
		}
		cfg.Slides.SceneThreshold = o.sceneThreshold
	}
	if o.maxSlides != 0 {
		if o.maxSlides < 1 {
			return fmt.Errorf("max slides must be at least 1")
		}
		cfg.Slides.MaxSlides = o.maxSlides
	}
	if o.tier >= 0 {
		tier := o.tier
		cfg.Gemini.Tier = &tier
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.language != "" {
		cfg.DefaultLanguage = o.language
		cfg.Whisper.Language = o.language
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.outputDir != "" {
		cfg.Paths.Output = o.outputDir
	}
	if o.dryRun {
		cfg.Gemini.DryRun = true
	}
	if o.noOCR {
		cfg.OCR.Enabled = false
	}
	if o.noVision {
		v := false
		cfg.Gemini.UseVision = &v
	}
	if o.keepTemp {
		cfg.Output.KeepTemp = true
	}
	return cfg.Validate()
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.FromEnv()
	}
	return cfg, err
}

func main() {
	opts, args, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(opts, args); err != nil {
		if opts.verbose {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.Diagnose(err))
		}
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	if !opts.watch && len(args) != 1 {
		return fmt.Errorf("expected exactly one YouTube URL, video id or file, got %d arguments", len(args))
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := opts.apply(cfg); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Slide Flow %s", processor.ToolVersion)
	log.Info(ctx, "========================================")
	log.Debug(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	exec := executor.New()
	if err := ffmpeg.New(cfg.FFmpeg, exec, log).CheckAvailable(ctx); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		srv := metrics.StartMetricsServer(ctx, cfg.Metrics.Addr, log)
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			srv.Shutdown(shutdownCtx)
		}()
	}

	proc, err := processor.NewDefault(ctx, cfg, exec, log)
	if err != nil {
		return err
	}

	if opts.watch {
		return watch(ctx, cfg, proc, log)
	}

	res, err := proc.Process(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s (%d slides)\n", res.ReportPath, res.Slides)
	return nil
}

func watch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	handle := func(ctx context.Context, path string) error {
		_, err := proc.Process(ctx, path)
		return err
	}
	w, err := watcher.New(cfg.Paths.Input, handle, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "Slide Flow stopped")
	return nil
}
