package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// WorkFunc is the user supplied unit of work for [RunAtomic].
// Statements must be prepared on tx so they take part in the transaction.
type WorkFunc[T any] func(ctx context.Context, tx Tx) (T, error)

// TxOption is a function that configures a managed transaction.
type TxOption func(*txConfig)

type txConfig struct {
	txOpts *sql.TxOptions
	logger *slog.Logger
}

// WithTxOptions sets the isolation level and read-only flag of the transaction.
// Default is the driver's default isolation level, read-write.
func WithTxOptions(opts *sql.TxOptions) TxOption {
	return func(c *txConfig) {
		c.txOpts = opts
	}
}

// WithLogger sets the logger used to report transaction outcomes and cleanup failures.
// Default discards all records.
func WithLogger(logger *slog.Logger) TxOption {
	return func(c *txConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newTxConfig(opts []TxOption) *txConfig {
	c := &txConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAtomic executes fn within a transaction on conn and returns its result.
//
// The transaction commits if fn returns nil, or rolls back if it returns an
// error or panics. The error returned by fn is handed back to the caller as is.
// Whatever the outcome, the transaction is ended before conn is closed, which
// leaves the session in auto-commit mode. conn must not be used afterwards.
//
// If a cleanup step (rollback or close) fails as well, its *CleanupError is
// joined to the primary error so both can be found with errors.Is / errors.As.
//
// Example:
//
//	conn, err := sqlutil.AcquireConn(ctx, db)
//	if err != nil {
//	    return err
//	}
//	id, err := sqlutil.RunAtomic(ctx, conn, func(ctx context.Context, tx sqlutil.Tx) (int64, error) {
//	    stmt, err := sqlutil.Prepare(ctx, tx, "INSERT INTO orders (customer_id) VALUES (?)", sqlutil.Int(customerID))
//	    if err != nil {
//	        return 0, err
//	    }
//	    return sqlutil.ExecuteUpdateAndClose(ctx, stmt)
//	})
func RunAtomic[T any](ctx context.Context, conn Conn, fn WorkFunc[T], opts ...TxOption) (result T, err error) {
	cfg := newTxConfig(opts)

	defer func() {
		if cerr := conn.Close(); cerr != nil {
			cfg.logger.Warn("failed to close connection", "error", cerr.Error())
			err = withCleanup(err, "closing connection", cerr)
		}
	}()

	tx, err := conn.BeginTx(ctx, cfg.txOpts)
	if err != nil {
		return result, fmt.Errorf("beginning transaction: %w", err)
	}

	var txDone bool
	defer func() {
		if !txDone {
			// fn panicked
			if rerr := rollback(tx); rerr != nil {
				cfg.logger.Warn("failed to roll back transaction after panic", "error", rerr.Error())
			}
		}
	}()

	v, err := fn(ctx, tx)
	if err != nil {
		txDone = true
		rerr := rollback(tx)
		if rerr != nil {
			cfg.logger.Warn("failed to roll back transaction", "error", rerr.Error())
		} else {
			cfg.logger.Debug("transaction rolled back", "error", err.Error())
		}
		return result, withCleanup(err, "rolling back transaction", rerr)
	}

	err = tx.Commit()
	txDone = true
	if err != nil {
		if rerr := rollback(tx); rerr != nil {
			cfg.logger.Warn("failed to roll back transaction after commit failure", "error", rerr.Error())
		}
		return result, fmt.Errorf("committing transaction: %w", err)
	}

	cfg.logger.Debug("transaction committed")
	return v, nil
}

// Run is the value-less form of [RunAtomic].
func Run(ctx context.Context, conn Conn, fn func(ctx context.Context, tx Tx) error, opts ...TxOption) error {
	_, err := RunAtomic(ctx, conn, func(ctx context.Context, tx Tx) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	}, opts...)
	return err
}

// rollback rolls tx back. A transaction already ended by the driver is not a failure.
func rollback(tx Tx) error {
	err := tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
