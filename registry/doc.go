// Package registry maps names typed on a command line to constructors.
//
// Each plugin family (aggregators, clumpers, operations, sort keys) owns one
// Registry built once from a static catalog. A catalog entry declares its
// aliases, a one-line help string, an argument parser and a constructor;
// Register erases the typed argument so entries of one family share a type.
//
// Lookup is by exact alias. Two entries declaring the same alias make New
// fail, since that is a mistake in the catalog rather than in user input.
//
//	var Aggregators = registry.MustNew("aggregator",
//	    registry.Register([]string{"count", "ct"}, "counts records", registry.ZeroArgs{}, newCount),
//	    registry.Register([]string{"sum"}, "sums a field", registry.OneKey{}, newSum),
//	)
//
//	agg, err := Aggregators.Parse("sum,price")
package registry
