package logger

import "time"

// Field keys shared by every recs component.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldTraceID   = "trace_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are dropped.
//
//	log.Debug("spawned", logger.Fields("pid", pid, "binary", "jq"))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields describes a failed step.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{FieldOperation: op, FieldError: err.Error()}
}

// DurationFields describes a finished step.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{FieldOperation: op, FieldDuration: d.Milliseconds()}
}

// MergeWithError adds err to fields, allocating the map if needed.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields[FieldError] = err.Error()
	return fields
}
