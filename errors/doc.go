// Package errors provides unified error handling for the recs toolkit.
// It implements a structured error type with machine-readable codes and a
// trail of labels describing which configuration layer produced the error
// (for example "While parsing arguments" around "While handling [-n x]").
//
// Flow control inside a pipeline (a stage returning false from Write) is
// never expressed with these errors.
package errors
