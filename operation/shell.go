package operation

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/recskit/bridge"
	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/logger"
	"github.com/kbukum/recskit/process"
	"github.com/kbukum/recskit/stream"
)

type shellOptions struct {
	Command []string `json:"command" validate:"min=1"`
}

var shellBe = &Be[shellOptions]{
	Names: []string{"shell"},
	Help:  "run an external process",
	Usage: "COMMAND [ARGS...]",
	Rest: func(_ *Settings, o *shellOptions, args []string) ([]string, error) {
		o.Command = args
		return nil, nil
	},
	Stream: shellStream,
}

// shellStream pipes entries through a child process, one line each. One
// worker writes queued entries to the child's stdin, another reads its
// stdout back into the bridge; the stage forwards that output downstream
// from its own Write and Close calls.
func shellStream(set *Settings, o *shellOptions) stream.Stream {
	log := logger.Get("shell")
	ctx := set.Context
	if ctx == nil {
		ctx = context.Background()
	}
	child, err := process.Start(ctx, process.Command{
		Binary:      o.Command[0],
		Args:        o.Command[1:],
		Stderr:      set.ShellStderr,
		GracePeriod: set.ShellGracePeriod,
	})
	if err != nil {
		return stream.Failed(err)
	}
	log.Debug("spawned", logger.Fields("binary", o.Command[0], "pid", child.Pid()))

	front, in, out := bridge.New(bridge.WithCapacity(set.ShellQueueCapacity))
	var (
		workers      errgroup.Group
		stoppedEarly atomic.Bool
	)

	workers.Go(func() error {
		defer child.Stdin.Close()
		bw := bufio.NewWriter(child.Stdin)
		for e, ok := in.Read(); ok; e, ok = in.Read() {
			_, err := io.WriteString(bw, e.Deparse()+"\n")
			if err == nil {
				err = bw.Flush()
			}
			if err != nil {
				log.Debug("child closed its input", logger.ErrorFields("write_stdin", err))
				in.RClose()
				return nil
			}
		}
		return nil
	})

	workers.Go(func() error {
		defer out.Close()
		scanner := bufio.NewScanner(child.Stdout)
		scanner.Buffer(make([]byte, 64*1024), maxLine)
		for scanner.Scan() {
			if !out.Write(stream.LineEntry(scanner.Text())) {
				stoppedEarly.Store(true)
				child.Stdout.Close()
				return nil
			}
		}
		if err := scanner.Err(); err != nil {
			return errors.IOError("output of "+o.Command[0], err)
		}
		return nil
	})

	return stream.Closures(front,
		func(f **bridge.Front, e stream.Entry, w stream.Writer) bool {
			return (*f).Write(e, w)
		},
		func(f **bridge.Front, w stream.Writer) error {
			ferr := (*f).Close(w)
			rerr := workers.Wait()
			res, err := child.Wait()
			if err != nil && stoppedEarly.Load() {
				// the child was cut off by a closed output pipe
				log.Debug("output closed early", logger.ErrorFields("wait", err))
				err = nil
			}
			if res != nil {
				log.Debug("exited", logger.Fields(
					"binary", o.Command[0],
					"exit_code", res.ExitCode,
					"duration", res.Duration.String(),
				))
			}
			if err != nil {
				return err
			}
			if rerr != nil {
				return rerr
			}
			return ferr
		},
	)
}
