package ffmpeg

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/nguyentantai21042004/slide-flow/internal/errors"
	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

// classify turns an executor failure into the pipeline taxonomy.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, executor.ErrCommandNotFound):
		return apperrors.New(apperrors.KindToolUnavailable, op, err)
	case errors.Is(err, executor.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.KindProcessTimeout, op, err)
	}
	return err
}

// withTimeout bounds a context; zero keeps the parent deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
