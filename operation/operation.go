package operation

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/observability"
	"github.com/kbukum/recskit/registry"
	"github.com/kbukum/recskit/stream"
	"github.com/kbukum/recskit/validation"
)

// Settings are shared, read-only inputs every stage may consult.
type Settings struct {
	// Context bounds child processes started by shell stages.
	Context context.Context
	// ShellGracePeriod is how long a canceled child gets between SIGTERM
	// and SIGKILL.
	ShellGracePeriod time.Duration
	// ShellQueueCapacity bounds input queued for a child. Zero is unbounded.
	ShellQueueCapacity int
	// ShellStderr receives the children's standard error. Nil discards it.
	ShellStderr io.Writer
}

// DefaultSettings returns settings with a background context.
func DefaultSettings() *Settings {
	return &Settings{
		Context:          context.Background(),
		ShellGracePeriod: 5 * time.Second,
	}
}

// Operation parses command-line arguments into a stream factory.
type Operation interface {
	// Help returns the usage text, one line per element.
	Help() []string
	// Parse consumes args. Arguments the operation does not claim are
	// returned in Parsed.Extra.
	Parse(set *Settings, args []string) (*Parsed, error)
}

// Parsed is a fully configured operation.
type Parsed struct {
	// Factory builds a fresh stage for each call.
	Factory stream.Factory
	// Extra holds the leftover arguments, read as input file names.
	Extra []string
}

// Be declares one operation over its options type O.
type Be[O any] struct {
	Names []string
	Help  string
	// Usage describes the positional arguments, e.g. "[files...]".
	Usage string
	// Flags binds the options to fs and sets their defaults.
	Flags func(fs *pflag.FlagSet, o *O)
	// Rest consumes the positional arguments and returns the extras. When
	// set, flag parsing stops at the first positional argument so that
	// flags after it belong to the sub-operation or command. Nil makes
	// every positional argument an extra.
	Rest func(set *Settings, o *O, args []string) ([]string, error)
	// Stream builds one stage. o is shared by every stage the factory
	// builds and must not be modified.
	Stream func(set *Settings, o *O) stream.Stream
}

func (b *Be[O]) flagSet(o *O) *pflag.FlagSet {
	fs := pflag.NewFlagSet(b.Names[0], pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if b.Rest != nil {
		fs.SetInterspersed(false)
	}
	if b.Flags != nil {
		b.Flags(fs, o)
	}
	return fs
}

// HelpLines renders the usage text.
func (b *Be[O]) HelpLines() []string {
	lines := []string{
		fmt.Sprintf("%s - %s", b.Names[0], b.Help),
		fmt.Sprintf("usage: %s [flags] %s", b.Names[0], b.Usage),
	}
	if len(b.Names) > 1 {
		lines = append(lines, "aliases: "+strings.Join(b.Names[1:], ", "))
	}
	usages := strings.TrimRight(b.flagSet(new(O)).FlagUsages(), "\n")
	if usages != "" {
		lines = append(lines, strings.Split(usages, "\n")...)
	}
	return append(lines, "      --help   show help")
}

type inbox[O any] struct {
	be *Be[O]
}

func (i inbox[O]) Help() []string { return i.be.HelpLines() }

func (i inbox[O]) Parse(set *Settings, args []string) (*Parsed, error) {
	b := i.be
	o := new(O)
	fs := b.flagSet(o)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil, errors.Help(b.HelpLines())
		}
		return nil, errors.Label(flagError(err, args), "While parsing arguments")
	}

	extra := fs.Args()
	if b.Rest != nil {
		var err error
		if extra, err = b.Rest(set, o, extra); err != nil {
			return nil, errors.Label(err, "While parsing arguments")
		}
	}

	if err := validation.Validate(o); err != nil {
		return nil, errors.Label(err, "While validating arguments")
	}

	name := b.Names[0]
	return &Parsed{
		Factory: func() stream.Stream {
			return observability.Instrument(name, b.Stream(set, o))
		},
		Extra: extra,
	}, nil
}

// flagError keeps a registry error raised inside a flag value, and turns
// any other pflag failure into an argument error.
func flagError(err error, args []string) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.InvalidInput(err.Error(), args...)
}

func register[O any](be *Be[O]) *registry.Entry[Operation] {
	return registry.Register(be.Names, be.Help, registry.ZeroArgs{}, func(struct{}) Operation {
		return inbox[O]{be: be}
	})
}

// Registry is the operation catalog. It is assigned in init because the
// operations taking a sub-operation parse it through Registry.
var Registry *registry.Registry[Operation]

func init() {
	Registry = registry.MustNew("operation",
		register(chainBe),
		register(collateBe),
		register(expandFilesBe),
		register(headBe),
		register(multiplexBe),
		register(shellBe),
		register(sortBe),
		register(tailBe),
	)
}

// Parse builds the operation named by args[0] from the remaining
// arguments. Errors are labelled with the operation name.
func Parse(set *Settings, args []string) (*Parsed, error) {
	if len(args) == 0 {
		return nil, errors.InvalidInput("missing operation name")
	}
	op, err := Registry.Init(args[0], nil)
	if err != nil {
		return nil, err
	}
	p, err := op.Parse(set, args[1:])
	if err != nil {
		return nil, errors.Label(err, args[0])
	}
	return p, nil
}
