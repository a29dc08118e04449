package process

import (
	"io"
	"time"
)

// Command describes the child a shell stage runs.
type Command struct {
	Binary string
	Args   []string
	// Dir defaults to the current directory.
	Dir string
	// Env entries (KEY=value) are appended to the parent environment.
	Env []string
	// Stderr receives the child's standard error. Nil discards it.
	Stderr io.Writer
	// GracePeriod separates SIGTERM and SIGKILL on cancellation, 5s if zero.
	GracePeriod time.Duration
}

// Result is how a child ended.
type Result struct {
	// ExitCode is -1 when the child was killed by a signal.
	ExitCode int
	Duration time.Duration
}
