package operation

import (
	"bufio"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/stream"
)

// maxLine is the longest input line a stage will read.
const maxLine = 64 << 20

type expandFilesOptions struct {
	FileKey string `json:"file_key" validate:"required"`
	Union   union
	Sub     *Parsed `json:"operation" validate:"required"`
}

var expandFilesBe = &Be[expandFilesOptions]{
	Names: []string{"expand-files"},
	Help:  "run an operation on multiple files, themselves listed in input record values",
	Usage: "OP [ARGS...]",
	Flags: func(fs *pflag.FlagSet, o *expandFilesOptions) {
		fs.StringVar(&o.FileKey, "fk", "FILE", "key to read file names from")
		o.Union.flags(fs)
	},
	Rest: func(set *Settings, o *expandFilesOptions, args []string) ([]string, error) {
		sub, err := Parse(set, args)
		if err != nil {
			return nil, err
		}
		o.Sub = sub
		return sub.Extra, nil
	},
	Stream: func(_ *Settings, o *expandFilesOptions) stream.Stream {
		return stream.Closures(expandState{},
			func(s *expandState, e stream.Entry, w stream.Writer) bool {
				r, err := e.Parse()
				if err != nil {
					s.err = err
					return false
				}
				return s.expand(o, r, w)
			},
			func(s *expandState, _ stream.Writer) error {
				return s.err
			},
		)
	},
}

type expandState struct {
	stream.Refusals
	err error
}

// expand drives a fresh sub-operation over the lines of the file named in
// r. The sub-operation stopping early only ends this file.
func (s *expandState) expand(o *expandFilesOptions, r record.Record, w stream.Writer) bool {
	path := r.Get(o.FileKey).CoerceString()
	f, err := os.Open(path)
	if err != nil {
		s.err = errors.IOError(path, err)
		return false
	}
	defer f.Close()

	sub := stream.Compound(o.Sub.Factory(), stream.TransformRecords(func(line record.Record) record.Record {
		return o.Union.merge(r, line)
	}))
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		if !sub.Write(stream.LineEntry(scanner.Text()), s.Wrap(w)) {
			break
		}
	}
	readErr := scanner.Err()
	if err := sub.Close(s.Wrap(w)); err != nil {
		s.err = errors.Label(err, path)
		return false
	}
	if readErr != nil {
		s.err = errors.IOError(path, readErr)
		return false
	}
	return !s.Refused
}
