package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RunContext holds observability context for one pipeline run.
type RunContext struct {
	OperationName string
	RunID         string
	InputFiles    []string
	StartTime     time.Time
}

// NewRunContext creates a run context starting now.
func NewRunContext(operationName, runID string, inputFiles []string) *RunContext {
	return &RunContext{
		OperationName: operationName,
		RunID:         runID,
		InputFiles:    inputFiles,
		StartTime:     time.Now(),
	}
}

// runContextKey is the context key for RunContext.
type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartSpan starts the span covering the run.
func (rc *RunContext) StartSpan(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanPipelineRun)
	span.SetAttributes(
		attribute.String(AttrOperationName, rc.OperationName),
		attribute.String(AttrRunID, rc.RunID),
	)
	if len(rc.InputFiles) > 0 {
		span.SetAttributes(attribute.StringSlice(AttrInputFiles, rc.InputFiles))
	}
	return WithRunContext(ctx, rc), span
}

// End records the outcome on span and ends it.
func (rc *RunContext) End(span trace.Span, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, rc.Duration().Milliseconds()),
	)
	span.End()
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
