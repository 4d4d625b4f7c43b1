package main

import (
	"testing"

	"github.com/nguyentantai21042004/slide-flow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, args, err := parseFlags([]string{
		"-format", "json", "-scene-threshold", "0.2", "-max-slides", "20",
		"-tier", "0", "-language", "es", "-dry-run", "-no-vision", "-no-ocr",
		"https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtu.be/dQw4w9WgXcQ"}, args)

	cfg := defaults(t)
	cfg.OCR.Enabled = true
	require.NoError(t, opts.apply(cfg))

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 0.2, cfg.Slides.SceneThreshold)
	assert.Equal(t, 20, cfg.Slides.MaxSlides)
	assert.Equal(t, 0, *cfg.Gemini.Tier)
	assert.Equal(t, "es", cfg.DefaultLanguage)
	assert.True(t, cfg.Gemini.DryRun)
	assert.False(t, *cfg.Gemini.UseVision)
	assert.False(t, cfg.OCR.Enabled)
}

func TestApplyKeepsConfigWhenFlagsUnset(t *testing.T) {
	opts, _, err := parseFlags([]string{"abc"})
	require.NoError(t, err)

	cfg := defaults(t)
	require.NoError(t, opts.apply(cfg))
	assert.Equal(t, 1, *cfg.Gemini.Tier)
	assert.Equal(t, 0.3, cfg.Slides.SceneThreshold)
	assert.Equal(t, "markdown", cfg.Output.Format)
}

func TestApplyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"threshold too low", []string{"-scene-threshold", "0.05"}},
		{"threshold too high", []string{"-scene-threshold", "1.5"}},
		{"negative slide cap", []string{"-max-slides", "-3"}},
		{"unknown tier", []string{"-tier", "7"}},
		{"unknown format", []string{"-format", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, err := parseFlags(tt.args)
			require.NoError(t, err)
			assert.Error(t, opts.apply(defaults(t)))
		})
	}
}

func TestRunRequiresOneInput(t *testing.T) {
	opts, args, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Error(t, run(opts, args))
}
