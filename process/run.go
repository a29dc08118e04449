package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/kbukum/recskit/errors"
)

// Child is a started process with piped standard input and output.
type Child struct {
	// Stdin feeds the child. Close it to signal end of input.
	Stdin io.WriteCloser
	// Stdout is the child's output. It must be read to EOF before Wait.
	Stdout io.ReadCloser

	ctx    context.Context
	c      *exec.Cmd
	binary string
	start  time.Time
}

// Start launches cmd. If ctx is canceled, SIGTERM is sent to the process
// group first, then SIGKILL after GracePeriod.
func Start(ctx context.Context, cmd Command) (*Child, error) {
	if cmd.Binary == "" {
		return nil, errors.InvalidInput("process: binary is required")
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stderr = cmd.Stderr

	stdin, err := c.StdinPipe()
	if err != nil {
		return nil, errors.ProcessFailed(cmd.Binary, err)
	}
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, errors.ProcessFailed(cmd.Binary, err)
	}

	// Use process group so we can kill the entire tree
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Don't let exec.CommandContext kill with SIGKILL immediately
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, errors.ProcessFailed(cmd.Binary, err)
	}
	return &Child{
		Stdin:  stdin,
		Stdout: stdout,
		ctx:    ctx,
		c:      c,
		binary: cmd.Binary,
		start:  start,
	}, nil
}

// Pid returns the child's process id.
func (ch *Child) Pid() int { return ch.c.Process.Pid }

// Wait waits for the child to exit. A non-zero exit status is an error
// carrying the exit code; the Result is returned either way.
func (ch *Child) Wait() (*Result, error) {
	err := ch.c.Wait()
	result := &Result{
		ExitCode: ch.c.ProcessState.ExitCode(),
		Duration: time.Since(ch.start),
	}

	if err != nil {
		// Context cancellation is the expected way to kill a process
		if ch.ctx.Err() != nil {
			return result, errors.ProcessFailed(ch.binary, fmt.Errorf("killed by context: %w", ch.ctx.Err())).
				WithDetail("exit_code", result.ExitCode)
		}
		return result, errors.ProcessFailed(ch.binary, err).WithDetail("exit_code", result.ExitCode)
	}

	return result, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
