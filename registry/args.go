package registry

import (
	"strconv"

	"github.com/kbukum/recskit/errors"
)

// ArgParser declares how many raw tokens an entry consumes and converts
// them into a typed value.
type ArgParser[A any] interface {
	// Count is the exact number of tokens expected.
	Count() int
	// Meta names the tokens for help output, e.g. "KEY,COUNT".
	Meta() string
	// Parse converts exactly Count tokens.
	Parse(args []string) (A, error)
}

// ZeroArgs is the parser for entries taking no arguments.
type ZeroArgs struct{}

func (ZeroArgs) Count() int                       { return 0 }
func (ZeroArgs) Meta() string                     { return "" }
func (ZeroArgs) Parse([]string) (struct{}, error) { return struct{}{}, nil }

// OneKey takes a single field path.
type OneKey struct{}

func (OneKey) Count() int   { return 1 }
func (OneKey) Meta() string { return "KEY" }
func (OneKey) Parse(args []string) (string, error) {
	if args[0] == "" {
		return "", errors.InvalidInput("empty key", args...)
	}
	return args[0], nil
}

// OneCount takes a single non-negative integer.
type OneCount struct{}

func (OneCount) Count() int   { return 1 }
func (OneCount) Meta() string { return "COUNT" }
func (OneCount) Parse(args []string) (int, error) {
	return parseCount(args[0])
}

// KeyCount is the value produced by KeyAndCount.
type KeyCount struct {
	Key   string
	Count int
}

// KeyAndCount takes a field path followed by a non-negative integer.
type KeyAndCount struct{}

func (KeyAndCount) Count() int   { return 2 }
func (KeyAndCount) Meta() string { return "KEY,COUNT" }
func (KeyAndCount) Parse(args []string) (KeyCount, error) {
	key, err := OneKey{}.Parse(args[:1])
	if err != nil {
		return KeyCount{}, err
	}
	n, err := parseCount(args[1])
	if err != nil {
		return KeyCount{}, err
	}
	return KeyCount{Key: key, Count: n}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput("not a non-negative integer", s)
	}
	return n, nil
}
