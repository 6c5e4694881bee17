package sqlutil

import (
	"errors"
	"fmt"
)

var (
	// ErrStatementClosed is returned when a statement is used after it was closed.
	ErrStatementClosed = errors.New("sqlutil: statement is closed")

	// ErrInvalidRoutineName is returned when a stored routine name is not a SQL identifier.
	ErrInvalidRoutineName = errors.New("sqlutil: invalid routine name")

	// ErrCallUnsupported is returned when the dialect has no stored routines.
	ErrCallUnsupported = errors.New("sqlutil: dialect does not support stored routine calls")
)

// PrepareError indicates a statement could not be prepared.
// No statement handle is produced when it is returned.
type PrepareError struct {
	Query string
	Err   error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("preparing statement %q: %v", e.Query, e.Err)
}
func (e *PrepareError) Unwrap() error { return e.Err }

// ExecError indicates a failure while executing a statement or script.
// The statement involved has been closed by the time it is returned.
type ExecError struct {
	Query string
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing statement %q: %v", e.Query, e.Err)
}
func (e *ExecError) Unwrap() error { return e.Err }

// BindError indicates an invalid or missing positional parameter.
type BindError struct {
	Position int
	Err      error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("binding parameter %d: %v", e.Position, e.Err)
}
func (e *BindError) Unwrap() error { return e.Err }

// CleanupError indicates a failure while releasing a handle during guaranteed cleanup.
// Op is one of "closing statement", "closing rows", "rolling back transaction"
// or "closing connection".
type CleanupError struct {
	Op  string
	Err error
}

func (e *CleanupError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *CleanupError) Unwrap() error { return e.Err }

// withCleanup combines the outcome of an operation with the outcome of the
// cleanup that followed it. The primary error always stays visible; a cleanup
// failure is attached to it, or returned on its own when the operation succeeded.
func withCleanup(primary error, op string, cleanupErr error) error {
	if cleanupErr == nil {
		return primary
	}
	cerr := &CleanupError{Op: op, Err: cleanupErr}
	if primary == nil {
		return cerr
	}
	return errors.Join(primary, cerr)
}
