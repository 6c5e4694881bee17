package sqlutil

import (
	"context"
	"database/sql"
)

// Queryer represents a query executor.
// It is compatible with the standard sql.DB, sql.Conn and sql.Tx types.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Preparer creates prepared statements.
// It is compatible with the standard sql.DB, sql.Conn and sql.Tx types.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Stmt represents a prepared statement handle.
// It is compatible with the standard sql.Stmt type.
type Stmt interface {
	ExecContext(ctx context.Context, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, args ...any) (*sql.Rows, error)
	Close() error
}

// Tx represents a database transaction.
// It is compatible with the standard sql.Tx type.
type Tx interface {
	Commit() error
	Rollback() error
	Queryer
	Preparer
}

// Conn represents a single database session.
// Beginning a transaction turns auto-commit off for the session until the
// transaction is committed or rolled back.
type Conn interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
	Close() error
	Queryer
	Preparer
}

// NewConn creates a Conn from a standard sql.Conn.
// Closing the returned Conn returns the session to the pool it came from.
func NewConn(conn *sql.Conn) Conn {
	return &connAdapter{conn: conn}
}

// AcquireConn reserves a dedicated session from db.
func AcquireConn(ctx context.Context, db *sql.DB) (Conn, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return NewConn(conn), nil
}

// connAdapter is a wrapper around a sql.Conn that implements the Conn interface.
type connAdapter struct {
	conn *sql.Conn
}

func (a *connAdapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	tx, err := a.conn.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (a *connAdapter) Close() error {
	return a.conn.Close()
}

func (a *connAdapter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.conn.ExecContext(ctx, query, args...)
}

func (a *connAdapter) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return a.conn.QueryContext(ctx, query, args...)
}

func (a *connAdapter) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return a.conn.PrepareContext(ctx, query)
}
