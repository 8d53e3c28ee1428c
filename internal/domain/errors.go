package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// TransportError represents a network or exchange-protocol failure on the
// discovery endpoint or a stream. Always resolved by a delayed retry.
type TransportError struct {
	Op  string // operation that failed (e.g., "dial", "read", "fetch")
	Err error  // underlying error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) IsRetriable() bool { return true }

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err as a retriable transport failure.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// EmptyResultError is returned when instrument discovery succeeds at the
// transport level but the exchange reports zero instruments.
type EmptyResultError struct {
	Endpoint string
}

func (e *EmptyResultError) Error() string {
	return "empty result from " + e.Endpoint
}

func (e *EmptyResultError) IsRetriable() bool { return true }

// ParseError represents a malformed symbol or a non-numeric field. The
// offending record is dropped; a ParseError never aborts a pass.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return "parse " + e.Field + " [" + e.Value + "]: " + e.Err.Error()
}

func (e *ParseError) IsRetriable() bool { return false }

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError represents a storage write or query failure. Non-fatal
// per snapshot pass; the in-memory index must not advance past a failed write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) IsRetriable() bool { return true }

func (e *PersistenceError) Unwrap() error { return e.Err }

var (
	// ErrInvalidSymbol is returned when a symbol does not decompose into
	// exactly four delimiter-separated parts. Not retriable.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
