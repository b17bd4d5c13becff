package telemetry

import (
	"context"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pkgr/internal/core/ports"
)

// TimingProcessor implements sdktrace.SpanProcessor and reports span durations as debug lines.
type TimingProcessor struct {
	logger ports.Logger
}

// NewTimingProcessor returns a new TimingProcessor.
func NewTimingProcessor(logger ports.Logger) *TimingProcessor {
	return &TimingProcessor{logger: logger}
}

// OnStart does nothing.
func (p *TimingProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs how long the span took.
func (p *TimingProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	elapsed := s.EndTime().Sub(s.StartTime())
	p.logger.Debug(fmt.Sprintf("Executed '%s' in %.3f seconds", s.Name(), elapsed.Seconds()))
}

// ForceFlush does nothing.
func (p *TimingProcessor) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *TimingProcessor) Shutdown(_ context.Context) error {
	return nil
}

// NewTracerProvider builds a provider that reports every finished span through logger.
func NewTracerProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewTimingProcessor(logger)),
	)
}
