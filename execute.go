package sqlutil

import (
	"context"
	"database/sql"
)

// RowsFunc consumes the rows produced by a query. The rows are closed as soon
// as the function returns and must not be retained.
type RowsFunc[T any] func(rows *sql.Rows) (T, error)

// ExecuteUpdateAndClose executes an INSERT, UPDATE, DELETE or DDL statement and
// returns the number of affected rows. The statement is closed on every exit path.
//
// Example:
//
//	stmt, err := sqlutil.Prepare(ctx, tx, "UPDATE account SET balance = balance - ? WHERE id = ?",
//	    sqlutil.Int(amount), sqlutil.Int(accountID))
//	if err != nil {
//	    return err
//	}
//	n, err := sqlutil.ExecuteUpdateAndClose(ctx, stmt)
func ExecuteUpdateAndClose(ctx context.Context, s *Statement) (n int64, err error) {
	if s.closed {
		return 0, ErrStatementClosed
	}
	defer func() {
		err = withCleanup(err, "closing statement", s.Close())
	}()

	if err := s.checkBound(); err != nil {
		return 0, err
	}

	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return 0, &ExecError{Query: s.query, Err: err}
	}

	n, err = res.RowsAffected()
	if err != nil {
		return 0, &ExecError{Query: s.query, Err: err}
	}
	return n, nil
}

// ExecuteQueryAndClose executes a query and hands the resulting rows, positioned
// before the first row, to fn. The value returned by fn is returned to the caller.
//
// Both the rows and the statement are closed before ExecuteQueryAndClose returns,
// whether fn succeeds, fails or the query itself fails. Errors returned by fn are
// passed through unchanged.
func ExecuteQueryAndClose[T any](ctx context.Context, s *Statement, fn RowsFunc[T]) (result T, err error) {
	if s.closed {
		return result, ErrStatementClosed
	}
	defer func() {
		err = withCleanup(err, "closing statement", s.Close())
	}()

	if err := s.checkBound(); err != nil {
		return result, err
	}

	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return result, &ExecError{Query: s.query, Err: err}
	}
	defer func() {
		err = withCleanup(err, "closing rows", rows.Close())
	}()

	v, err := fn(rows)
	if err != nil {
		return result, err
	}
	if err := rows.Err(); err != nil {
		return result, &ExecError{Query: s.query, Err: err}
	}
	return v, nil
}

// ExecuteAndClose executes a stored routine call and reports whether its first
// result is a row set (true) or an update count or no result at all (false).
// The statement is closed on every exit path.
func ExecuteAndClose(ctx context.Context, c *CallableStatement) (hasRows bool, err error) {
	if c.closed {
		return false, ErrStatementClosed
	}
	defer func() {
		err = withCleanup(err, "closing statement", c.Close())
	}()

	if err := c.checkBound(); err != nil {
		return false, err
	}

	rows, err := c.stmt.QueryContext(ctx, c.args...)
	if err != nil {
		return false, &ExecError{Query: c.query, Err: err}
	}
	return firstResultIsRowSet(c.query, rows)
}

// ExecuteScriptAndClose runs a raw SQL script through s and reports whether its
// first statement produces a row set. Scripts take no parameters and every
// statement of the script is executed; whether several statements are accepted
// in one call is up to the driver. Rows produced by the script are discarded.
// s is closed on every exit path.
func ExecuteScriptAndClose(ctx context.Context, s *ScriptStatement, script string) (hasRows bool, err error) {
	if s.closed {
		return false, ErrStatementClosed
	}
	defer func() {
		err = withCleanup(err, "closing statement", s.Close())
	}()

	if _, err := s.q.ExecContext(ctx, script); err != nil {
		return false, &ExecError{Query: script, Err: err}
	}
	return firstStatementReturnsRows(script), nil
}

// firstResultIsRowSet reports whether the first result of rows has columns and
// closes rows. Every row of every result set is stepped first: some drivers only
// run a statement, RETURNING clauses included, when its rows are read.
func firstResultIsRowSet(query string, rows *sql.Rows) (hasRows bool, err error) {
	defer func() {
		err = withCleanup(err, "closing rows", rows.Close())
	}()

	cols, err := rows.Columns()
	if err != nil {
		return false, &ExecError{Query: query, Err: err}
	}
	hasRows = len(cols) > 0

	for {
		for rows.Next() {
		}
		if !rows.NextResultSet() {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return false, &ExecError{Query: query, Err: err}
	}
	return hasRows, nil
}
