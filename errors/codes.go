package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors (reported while a pipeline is being built)
const (
	// ErrCodeNotFound indicates an unknown operation, aggregator, clumper or sort name.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates wrong arity or an unparsable argument.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeHelp indicates the user asked for help; Message holds the text.
	ErrCodeHelp ErrorCode = "HELP"
	// ErrCodeCatalogCollision indicates two registry aliases resolve to the same name.
	ErrCodeCatalogCollision ErrorCode = "CATALOG_COLLISION"
)

// Runtime errors (reported by Stream.Close)
const (
	// ErrCodeIO indicates a file could not be opened or read.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeProcessFailed indicates a child process could not start or exited non-zero.
	ErrCodeProcessFailed ErrorCode = "PROCESS_FAILED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var userFacingCodes = map[ErrorCode]bool{
	ErrCodeNotFound:     true,
	ErrCodeInvalidInput: true,
	ErrCodeHelp:         true,
}

// IsUserFacing returns true if the code describes a mistake in the command
// line rather than a failure of the toolkit or its environment.
func IsUserFacing(code ErrorCode) bool {
	return userFacingCodes[code]
}
