// Package operation holds the operation family: the named pipeline stages a
// command line is built from.
//
// Each operation is declared as a Be over its own options struct. The
// options are bound to a pflag.FlagSet, parsed, then validated with
// struct tags before a stream factory is handed back:
//
//	p, err := operation.Parse(operation.DefaultSettings(), []string{"head", "-n", "3", "in.json"})
//	// p.Factory() builds a fresh head stage, p.Extra == []string{"in.json"}
//
// Operations that take a sub-operation (chain, expand-files, multiplex)
// parse the rest of their arguments with Parse recursively.
package operation
