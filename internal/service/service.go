package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("asset identifier already exists")
	ErrNotFound   = errors.New("asset not found")
)

var tracer = otel.Tracer("assetqr/service")

// Artifacts renders and removes QR artifacts. *qrcode.Generator satisfies it.
type Artifacts interface {
	Generate(ctx context.Context, identifier string) (string, error)
	Remove(ctx context.Context, identifier string) error
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
