package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/recskit/config"
	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/logger"
	"github.com/kbukum/recskit/observability"
	"github.com/kbukum/recskit/operation"
	"github.com/kbukum/recskit/stream"
)

// maxLine is the longest input line accepted.
const maxLine = 64 << 20

// app runs one operation invocation.
type app struct {
	ctx      context.Context
	cfg      config.Config
	set      *operation.Settings
	stdin    io.Reader
	stdout   io.Writer
	closers  []func(context.Context) error
	stopSigs context.CancelFunc
}

func newApp(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a := &app{stdin: stdin, stdout: stdout}
	if err := config.Load("recs", &a.cfg); err != nil {
		return nil, err
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(&a.cfg.Logging)
	logger.RegisterDefaults("recs", "shell", "registry", "config")

	a.ctx, a.stopSigs = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	a.set = &operation.Settings{
		Context:            a.ctx,
		ShellGracePeriod:   a.cfg.Shell.GracePeriod,
		ShellQueueCapacity: a.cfg.Shell.QueueCapacity,
		ShellStderr:        stderr,
	}
	a.initTelemetry()
	return a, nil
}

// initTelemetry starts the exporters enabled in the config. A failing
// exporter is logged and skipped.
func (a *app) initTelemetry() {
	log := logger.Get("recs")
	if a.cfg.Tracing.Enabled {
		tc := observability.DefaultTracerConfig(a.cfg.Name)
		tc.Environment = a.cfg.Environment
		tc.Endpoint = a.cfg.Tracing.Endpoint
		tc.Insecure = a.cfg.Tracing.Insecure
		tc.SampleRate = a.cfg.Tracing.SampleRate
		tp, err := observability.InitTracer(a.ctx, &tc)
		if err != nil {
			log.Warn("tracing disabled", logger.ErrorFields("init_tracer", err))
		} else {
			a.closers = append(a.closers, tp.Shutdown)
		}
	}
	if a.cfg.Metrics.Enabled {
		mc := observability.DefaultMeterConfig(a.cfg.Name)
		mc.Environment = a.cfg.Environment
		mc.Endpoint = a.cfg.Metrics.Endpoint
		mc.Insecure = a.cfg.Metrics.Insecure
		mc.Interval = a.cfg.Metrics.Interval
		mp, err := observability.InitMeter(a.ctx, &mc)
		if err != nil {
			log.Warn("metrics disabled", logger.ErrorFields("init_meter", err))
		} else {
			a.closers = append(a.closers, mp.Shutdown)
		}
	}
}

// shutdown flushes telemetry and releases the signal handler.
func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			logger.Get("recs").Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
	a.stopSigs()
}

// run parses args (operation name first) and streams the input through it.
// A help request prints the help text and succeeds.
func (a *app) run(args []string) error {
	parsed, err := operation.Parse(a.set, args)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeHelp {
			_, werr := io.WriteString(a.stdout, appErr.Message+"\n")
			return werr
		}
		return err
	}

	rc := observability.NewRunContext(args[0], uuid.NewString(), parsed.Extra)
	ctx, span := rc.StartSpan(a.ctx)
	ctx = logger.ContextWithRunID(ctx, rc.RunID)
	a.set.Context = ctx
	log := logger.Get("recs").WithContext(ctx)
	log.Debug("run started", logger.Fields(logger.FieldOperation, rc.OperationName, "inputs", len(parsed.Extra)))

	err = pump(parsed.Factory(), a.inputs(parsed.Extra), a.stdout)
	rc.End(span, err)
	if err != nil {
		log.Debug("run failed", logger.MergeWithError(logger.DurationFields(rc.OperationName, rc.Duration()), err))
		return err
	}
	log.Debug("run finished", logger.DurationFields(rc.OperationName, rc.Duration()))
	return nil
}

// input is one source of lines.
type input struct {
	name string
	open func() (io.ReadCloser, error)
}

func (a *app) inputs(files []string) []input {
	if len(files) == 0 {
		return []input{{name: "-", open: func() (io.ReadCloser, error) { return io.NopCloser(a.stdin), nil }}}
	}
	out := make([]input, len(files))
	for i, f := range files {
		out[i] = input{name: f, open: func() (io.ReadCloser, error) { return os.Open(f) }}
	}
	return out
}

// pump writes every input line to s in order until s asks to stop, then
// closes s. Output entries are written to out one per line. A closed
// output pipe ends the run quietly.
func pump(s stream.Stream, inputs []input, out io.Writer) error {
	bw := bufio.NewWriter(out)
	var writeErr error
	w := func(e stream.Entry) bool {
		if writeErr != nil {
			return false
		}
		if _, err := bw.WriteString(e.Deparse() + "\n"); err != nil {
			writeErr = err
			return false
		}
		return true
	}

	readErr := feed(s, inputs, w)
	closeErr := s.Close(w)
	if err := bw.Flush(); err != nil && writeErr == nil {
		writeErr = err
	}

	switch {
	case readErr != nil:
		return readErr
	case closeErr != nil:
		return closeErr
	case writeErr != nil && !stderrors.Is(writeErr, syscall.EPIPE):
		return errors.IOError("stdout", writeErr)
	}
	return nil
}

func feed(s stream.Stream, inputs []input, w stream.Writer) error {
	for _, in := range inputs {
		rc, err := in.open()
		if err != nil {
			return errors.IOError(in.name, err)
		}
		sc := bufio.NewScanner(rc)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		more := true
		for more && sc.Scan() {
			more = s.Write(stream.LineEntry(sc.Text()), w)
		}
		err = sc.Err()
		rc.Close()
		if err != nil {
			return errors.IOError(in.name, err)
		}
		if !more {
			return nil
		}
	}
	return nil
}
