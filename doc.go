// Package sqlutil removes the boilerplate around database/sql statements and transactions.
//
// It provides three small pieces that can be used together or on their own:
//
//  1. Managed transactions: [RunAtomic] runs a unit of work inside a transaction,
//     commits or rolls it back, and always closes the connection afterwards.
//
//  2. Parameter binding: [Prepare] and [PrepareCall] prepare a statement (or a
//     stored routine call) and bind positional parameters given as [Value]s,
//     without naming SQL types.
//
//  3. Execute-and-close helpers: [ExecuteUpdateAndClose], [ExecuteQueryAndClose],
//     [ExecuteAndClose] and [ExecuteScriptAndClose] execute a statement and close
//     every handle involved on every exit path.
//
// Example:
//
//	conn, err := sqlutil.AcquireConn(ctx, db)
//	if err != nil {
//	    return err
//	}
//	err = sqlutil.Run(ctx, conn, func(ctx context.Context, tx sqlutil.Tx) error {
//	    stmt, err := sqlutil.Prepare(ctx, tx, "INSERT INTO t (id) VALUES (?)", sqlutil.Int(1))
//	    if err != nil {
//	        return err
//	    }
//	    _, err = sqlutil.ExecuteUpdateAndClose(ctx, stmt)
//	    return err
//	})
//
// The package speaks whatever protocol the underlying driver speaks. It does not
// pool connections, retry, or rewrite SQL.
package sqlutil
