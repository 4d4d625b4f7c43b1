package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("stage: %w", New(KindNoTranscriptAvailable, "no captions for abc", nil))

	if !errors.Is(err, ErrNoTranscriptAvailable) {
		t.Error("errors.Is() should match sentinel of the same kind")
	}
	if errors.Is(err, ErrNoSlidesExtracted) {
		t.Error("errors.Is() should not match a different kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := New(KindToolUnavailable, "ffmpeg", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should reach the cause")
	}
	if err.Error() != "ffmpeg: exit status 1" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"tool unavailable", ErrToolUnavailable, true},
		{"no slides", fmt.Errorf("wrap: %w", ErrNoSlidesExtracted), true},
		{"timeout", ErrProcessTimeout, false},
		{"image io", ErrImageIO, false},
		{"plain error", errors.New("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	err := fmt.Errorf("process: %w", Newf(KindLocked, "video %s is busy", "abc"))
	want := "video abc is busy (another run is processing this video)"
	if got := Diagnose(err); got != want {
		t.Errorf("Diagnose() = %q, want %q", got, want)
	}
	if got := Diagnose(errors.New("plain")); got != "plain" {
		t.Errorf("Diagnose() = %q, want %q", got, "plain")
	}
}
