// Package errors defines the failure taxonomy shared by every pipeline stage.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindToolUnavailable       Kind = "tool_unavailable"
	KindProcessTimeout        Kind = "process_timeout"
	KindDurationUnknown       Kind = "duration_unknown"
	KindNoTranscriptAvailable Kind = "no_transcript_available"
	KindImageIO               Kind = "image_io_error"
	KindNoSlidesExtracted     Kind = "no_slides_extracted"
	KindNoContentfulSlides    Kind = "no_contentful_slides"
	KindInvalidVideoRef       Kind = "invalid_video_ref"
	KindVideoFetchFailed      Kind = "video_fetch_failed"
	KindLocked                Kind = "locked"
)

// Sentinels for errors.Is. An AppError matches the sentinel of its Kind.
var (
	ErrToolUnavailable       = &AppError{Kind: KindToolUnavailable}
	ErrProcessTimeout        = &AppError{Kind: KindProcessTimeout}
	ErrDurationUnknown       = &AppError{Kind: KindDurationUnknown}
	ErrNoTranscriptAvailable = &AppError{Kind: KindNoTranscriptAvailable}
	ErrImageIO               = &AppError{Kind: KindImageIO}
	ErrNoSlidesExtracted     = &AppError{Kind: KindNoSlidesExtracted}
	ErrNoContentfulSlides    = &AppError{Kind: KindNoContentfulSlides}
	ErrInvalidVideoRef       = &AppError{Kind: KindInvalidVideoRef}
	ErrVideoFetchFailed      = &AppError{Kind: KindVideoFetchFailed}
	ErrLocked                = &AppError{Kind: KindLocked}
)

// AppError is a classified failure with an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same Kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a classified error.
func New(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

// Newf creates a classified error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first AppError in the chain, or "".
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsFatal reports whether err makes the rest of a run meaningless.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindToolUnavailable, KindNoTranscriptAvailable, KindNoSlidesExtracted,
		KindNoContentfulSlides, KindInvalidVideoRef, KindVideoFetchFailed, KindLocked:
		return true
	}
	return false
}

// Diagnose renders a short, user-facing explanation of err.
func Diagnose(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	hint := hints[appErr.Kind]
	msg := appErr.Message
	if msg == "" {
		msg = string(appErr.Kind)
	}
	if hint == "" {
		return msg
	}
	return msg + " (" + hint + ")"
}

var hints = map[Kind]string{
	KindToolUnavailable:       "check that ffmpeg/ffprobe are installed and configured",
	KindNoTranscriptAvailable: "the video has no captions in the requested language",
	KindNoSlidesExtracted:     "no usable frames could be extracted",
	KindNoContentfulSlides:    "no slide had enough spoken content",
	KindInvalidVideoRef:       "pass a YouTube URL, an 11 character video id or a local file",
	KindLocked:                "another run is processing this video",
}
