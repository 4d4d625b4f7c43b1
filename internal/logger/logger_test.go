package logger

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	for _, format := range []string{"text", "json"} {
		log := NewWithFormat("info", format)

		// These should not panic
		log.Debug(ctx, "debug message")
		log.Info(ctx, "info message")
		log.Warn(ctx, "warn message")
		log.Error(ctx, "error message")

		// Test with formatting
		log.Info(ctx, "formatted message: %s %d", "test", 123)
	}

	NewNop().Error(context.Background(), "discarded")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		want        []string
	}{
		{"debug level logs everything", "debug", []string{"debug", "info", "warn", "error"}},
		{"info level drops debug", "info", []string{"info", "warn", "error"}},
		{"error level keeps only errors", "error", []string{"error"}},
		{"invalid config level defaults to info", "bogus", []string{"info", "warn", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(parseLevel(tt.configLevel))
			log := newFromCore(core)
			ctx := WithRunID(context.Background(), "run-1")

			log.Debug(ctx, "debug")
			log.Info(ctx, "info")
			log.Warn(ctx, "warn")
			log.Error(ctx, "error")

			var got []string
			for _, e := range logs.All() {
				got = append(got, e.Message)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("logged %v, want %v", got, tt.want)
			}
			if n := logs.FilterField(zap.String("run_id", "run-1")).Len(); n != len(tt.want) {
				t.Errorf("%d entries carry run_id, want %d", n, len(tt.want))
			}
		})
	}
}
