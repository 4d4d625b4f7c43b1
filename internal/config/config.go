package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	FFmpeg          FFmpegConfig      `yaml:"ffmpeg"`
	Whisper         WhisperConfig     `yaml:"whisper"`
	Downloader      DownloaderConfig  `yaml:"downloader"`
	Slides          SlidesConfig      `yaml:"slides"`
	Alignment       AlignmentConfig   `yaml:"alignment"`
	Gemini          GeminiConfig      `yaml:"gemini"`
	OCR             OCRConfig         `yaml:"ocr"`
	Output          OutputConfig      `yaml:"output"`
	Paths           PathsConfig       `yaml:"paths"`
	Logging         LoggingConfig     `yaml:"logging"`
	Performance     PerformanceConfig `yaml:"performance"`
	Metrics         MetricsConfig     `yaml:"metrics"`
	DefaultLanguage string            `yaml:"default_language" env:"DEFAULT_LANGUAGE"`
}

type FFmpegConfig struct {
	BinaryPath          string `yaml:"binary_path" env:"FFMPEG_PATH"`
	ProbePath           string `yaml:"probe_path" env:"FFPROBE_PATH"`
	SceneTimeoutSeconds int    `yaml:"scene_timeout_seconds" env:"FFMPEG_SCENE_TIMEOUT"`
	FrameTimeoutSeconds int    `yaml:"frame_timeout_seconds" env:"FFMPEG_FRAME_TIMEOUT"`
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds" env:"FFMPEG_PROBE_TIMEOUT"`
	ExtractWorkers      int    `yaml:"extract_workers" env:"FFMPEG_EXTRACT_WORKERS"`
	ReuseExistingFrames bool   `yaml:"reuse_existing_frames" env:"FFMPEG_REUSE_FRAMES"`
	AudioExtractTimeout int    `yaml:"audio_timeout_seconds" env:"FFMPEG_AUDIO_TIMEOUT"`
}

type WhisperConfig struct {
	Enabled    bool   `yaml:"enabled" env:"WHISPER_ENABLED"`
	ModelPath  string `yaml:"model_path" env:"WHISPER_MODEL_PATH"`
	BinaryPath string `yaml:"binary_path" env:"WHISPER_BINARY_PATH"`
	Language   string `yaml:"language" env:"WHISPER_LANGUAGE"`
	Prompt     string `yaml:"prompt" env:"WHISPER_PROMPT"`
	Threads    int    `yaml:"threads" env:"WHISPER_THREADS"`
}

type DownloaderConfig struct {
	BinaryPath     string `yaml:"binary_path" env:"YTDLP_PATH"`
	Format         string `yaml:"format" env:"YTDLP_FORMAT"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"YTDLP_TIMEOUT"`
}

type SlidesConfig struct {
	SceneThreshold   float64  `yaml:"scene_threshold" env:"SCENE_THRESHOLD"`
	MaxSlides        int      `yaml:"max_slides" env:"MAX_SLIDES"`
	MinSlideDuration *float64 `yaml:"min_slide_duration" env:"MIN_SLIDE_DURATION"`
	UniformInterval  float64  `yaml:"uniform_interval" env:"UNIFORM_INTERVAL"`
	// ReuseExisting skips download and detection when slides of an earlier run exist.
	ReuseExisting bool `yaml:"reuse_existing" env:"REUSE_SLIDES"`
}

type AlignmentConfig struct {
	MinWords         *int    `yaml:"min_words" env:"ALIGN_MIN_WORDS"`
	MinDuration      float64 `yaml:"min_duration" env:"ALIGN_MIN_DURATION"`
	MergeShort       bool    `yaml:"merge_short" env:"ALIGN_MERGE_SHORT"`
	MergeMinDuration float64 `yaml:"merge_min_duration" env:"ALIGN_MERGE_MIN_DURATION"`
}

type GeminiConfig struct {
	Model          string   `yaml:"model" env:"GEMINI_MODEL"`
	APIKeys        []string `yaml:"api_keys" env:"GEMINI_API_KEYS" envSeparator:","`
	MaxTokens      int      `yaml:"max_tokens" env:"GEMINI_MAX_TOKENS"`
	TimeoutSeconds int      `yaml:"timeout_seconds" env:"GEMINI_TIMEOUT"`
	Tier           *int     `yaml:"tier" env:"GEMINI_TIER"`
	MaxRetries     int      `yaml:"max_retries" env:"RETRY_MAX_ATTEMPTS"`
	DryRun         bool     `yaml:"dry_run" env:"DRY_RUN"`
	UseVision      *bool    `yaml:"use_vision" env:"USE_VISION"`
}

type OCRConfig struct {
	Enabled    bool   `yaml:"enabled" env:"OCR_ENABLED"`
	BinaryPath string `yaml:"binary_path" env:"TESSERACT_CMD"`
	Language   string `yaml:"language" env:"OCR_LANGUAGE"`
}

type OutputConfig struct {
	Format   string `yaml:"format" env:"OUTPUT_FORMAT"`
	KeepTemp bool   `yaml:"keep_temp" env:"KEEP_TEMP"`
}

type PathsConfig struct {
	Input  string `yaml:"input" env:"INPUT_DIR"`
	Output string `yaml:"output" env:"OUTPUT_DIR"`
	Temp   string `yaml:"temp" env:"TEMP_DIR"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" env:"MAX_CONCURRENT"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

// Load reads the YAML file at path, applies a .env file next to the working
// directory when present, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from defaults and the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		c.Paths.Output = "videos"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}

	if c.Slides.SceneThreshold == 0 {
		c.Slides.SceneThreshold = 0.3
	}
	if c.Slides.SceneThreshold < 0 || c.Slides.SceneThreshold > 1 {
		return fmt.Errorf("slides.scene_threshold must be in (0, 1], got %v", c.Slides.SceneThreshold)
	}
	if c.Slides.MaxSlides == 0 {
		c.Slides.MaxSlides = 100
	}
	if c.Slides.MaxSlides < 1 {
		return fmt.Errorf("slides.max_slides must be at least 1")
	}
	if c.Slides.MinSlideDuration == nil {
		d := 2.0
		c.Slides.MinSlideDuration = &d
	}
	if *c.Slides.MinSlideDuration < 0 {
		return fmt.Errorf("slides.min_slide_duration must not be negative")
	}
	if c.Slides.UniformInterval <= 0 {
		c.Slides.UniformInterval = 30.0
	}

	if c.Alignment.MinWords == nil {
		n := 3
		c.Alignment.MinWords = &n
	}
	if *c.Alignment.MinWords < 0 || c.Alignment.MinDuration < 0 {
		return fmt.Errorf("alignment thresholds must not be negative")
	}
	if c.Alignment.MergeMinDuration == 0 {
		c.Alignment.MergeMinDuration = 10.0
	}

	if c.Gemini.Tier == nil {
		tier := 1
		c.Gemini.Tier = &tier
	}
	if *c.Gemini.Tier < 0 || *c.Gemini.Tier > 5 {
		return fmt.Errorf("gemini.tier must be between 0 and 5, got %d", *c.Gemini.Tier)
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxTokens == 0 {
		c.Gemini.MaxTokens = 1000
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = 30
	}
	if c.Gemini.MaxRetries == 0 {
		c.Gemini.MaxRetries = 6
	}
	if c.Gemini.UseVision == nil {
		v := true
		c.Gemini.UseVision = &v
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = siblingTool(c.FFmpeg.BinaryPath, "ffprobe")
	}
	if c.FFmpeg.SceneTimeoutSeconds == 0 {
		c.FFmpeg.SceneTimeoutSeconds = 300
	}
	if c.FFmpeg.FrameTimeoutSeconds == 0 {
		c.FFmpeg.FrameTimeoutSeconds = 30
	}
	if c.FFmpeg.ProbeTimeoutSeconds == 0 {
		c.FFmpeg.ProbeTimeoutSeconds = 30
	}
	if c.FFmpeg.AudioExtractTimeout == 0 {
		c.FFmpeg.AudioExtractTimeout = 600
	}
	if c.FFmpeg.ExtractWorkers <= 0 {
		c.FFmpeg.ExtractWorkers = 1
	}

	if c.Downloader.BinaryPath == "" {
		c.Downloader.BinaryPath = "yt-dlp"
	}
	if c.Downloader.Format == "" {
		c.Downloader.Format = "best[height<=720]/best"
	}
	if c.Downloader.TimeoutSeconds == 0 {
		c.Downloader.TimeoutSeconds = 900
	}

	if c.Whisper.Enabled {
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}

	if c.OCR.BinaryPath == "" {
		c.OCR.BinaryPath = "tesseract"
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}

	switch c.Output.Format {
	case "":
		c.Output.Format = "markdown"
	case "markdown", "json", "docx":
	default:
		return fmt.Errorf("output.format must be markdown, json or docx, got %q", c.Output.Format)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = c.DefaultLanguage
	}

	return nil
}

// Seconds converts a timeout field to a duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// VideoDir is the per-video directory holding slides, transcript and report.
func (c *Config) VideoDir(videoID string) string {
	return filepath.Join(c.Paths.Output, videoID)
}

// SlidesDir is where the slide images of a video live.
func (c *Config) SlidesDir(videoID string) string {
	return filepath.Join(c.VideoDir(videoID), "slides")
}

// TranscriptPath is the cached transcript of a video.
func (c *Config) TranscriptPath(videoID string) string {
	return filepath.Join(c.VideoDir(videoID), "transcript.json")
}

// ReportPath is the report file for the configured output format.
func (c *Config) ReportPath(videoID string) string {
	ext := map[string]string{"markdown": "md", "json": "json", "docx": "docx"}[c.Output.Format]
	return filepath.Join(c.VideoDir(videoID), "summary."+ext)
}

// siblingTool places name next to an explicitly pathed ffmpeg binary.
func siblingTool(ffmpegPath, name string) string {
	dir := filepath.Dir(ffmpegPath)
	if dir == "." && filepath.Base(ffmpegPath) == ffmpegPath {
		return name
	}
	return filepath.Join(dir, name)
}
