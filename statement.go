package sqlutil

import (
	"errors"
	"fmt"
	"slices"
)

var errUnbound = errors.New("no value bound")

// MaxBindPosition is the highest placeholder position Bind accepts. It matches
// the largest parameter count any supported driver allows in one statement.
const MaxBindPosition = 65535

// Statement is a prepared statement together with its bound parameters.
//
// A Statement is single-use: once handed to one of the execute-and-close
// helpers it is closed on every exit path and must not be used again.
type Statement struct {
	binder *Binder
	stmt   Stmt
	query  string
	args   []any
	bound  []bool
	closed bool
}

func newStatement(b *Binder, stmt Stmt, query string, n int) *Statement {
	return &Statement{
		binder: b,
		stmt:   stmt,
		query:  query,
		args:   make([]any, 0, n),
		bound:  make([]bool, 0, n),
	}
}

// Bind binds v to the 1-based placeholder position pos, replacing any value
// already bound there. Binding past the last bound position extends the
// parameter list; every position in between must be bound before execution.
func (s *Statement) Bind(pos int, v Value) error {
	if s.closed {
		return ErrStatementClosed
	}
	if pos < 1 {
		return &BindError{Position: pos, Err: errors.New("positions start at 1")}
	}
	if pos > MaxBindPosition {
		return &BindError{Position: pos, Err: fmt.Errorf("positions end at %d", MaxBindPosition)}
	}

	arg, err := s.binder.bindValue(v)
	if err != nil {
		return &BindError{Position: pos, Err: err}
	}

	for len(s.args) < pos {
		s.args = append(s.args, nil)
		s.bound = append(s.bound, false)
	}
	s.args[pos-1] = arg
	s.bound[pos-1] = true
	return nil
}

// Query returns the statement text the handle was prepared with.
func (s *Statement) Query() string { return s.query }

// Args returns a copy of the driver arguments bound so far, in position order.
func (s *Statement) Args() []any { return slices.Clone(s.args) }

// Closed reports whether the statement has been closed.
func (s *Statement) Closed() bool { return s.closed }

// Close releases the underlying handle. Closing an already closed statement is a no-op.
func (s *Statement) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stmt.Close()
}

func (s *Statement) checkBound() error {
	for i, ok := range s.bound {
		if !ok {
			return &BindError{Position: i + 1, Err: errUnbound}
		}
	}
	return nil
}

// CallableStatement is a prepared invocation of a stored procedure or function.
type CallableStatement struct {
	*Statement
	routine string
}

// Routine returns the name of the stored routine the statement calls.
func (c *CallableStatement) Routine() string { return c.routine }

// ScriptStatement is a parameterless statement used to run raw SQL scripts.
// It holds no driver handle until a script is executed through it.
type ScriptStatement struct {
	q      Queryer
	closed bool
}

// CreateStatement returns a ScriptStatement running scripts on q.
func CreateStatement(q Queryer) *ScriptStatement {
	return &ScriptStatement{q: q}
}

// Closed reports whether the statement has been closed.
func (s *ScriptStatement) Closed() bool { return s.closed }

// Close marks the statement as closed. Closing twice is a no-op.
func (s *ScriptStatement) Close() error {
	s.closed = true
	return nil
}
