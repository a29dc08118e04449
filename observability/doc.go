// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	rc := observability.NewRunContext("sort", runID, nil)
//	ctx, span := rc.StartSpan(ctx)
//	defer rc.End(span, err)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	s = observability.Instrument("sort", s) // counts entries in and out
//
// Without Init calls the global no-op providers are used and every call is
// cheap.
package observability
