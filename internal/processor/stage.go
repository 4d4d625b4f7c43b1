package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/slide-flow/internal/metrics"
	"go.opentelemetry.io/otel/codes"
)

// stage runs fn inside its own span and records its duration.
func (p *implProcessor) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Debug(ctx, "Stage %s failed after %s", name, time.Since(start))
		return err
	}
	p.logger.Debug(ctx, "Stage %s done in %s", name, time.Since(start))
	return nil
}
