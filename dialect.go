package sqlutil

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// SQLDialect represents a SQL database dialect.
type SQLDialect string

// Supported database dialects.
const (
	SQLDialectODBC      SQLDialect = "odbc"
	SQLDialectPostgres  SQLDialect = "postgres"
	SQLDialectMySQL     SQLDialect = "mysql"
	SQLDialectMariaDB   SQLDialect = "mariadb"
	SQLDialectSQLite    SQLDialect = "sqlite"
	SQLDialectOracle    SQLDialect = "oracle"
	SQLDialectSQLServer SQLDialect = "sqlserver"
)

// Binder prepares statements and binds positional parameters to them.
// The dialect decides how stored routine calls are rendered and how UUID
// values are sent to the driver. The zero value is not usable, use NewBinder.
type Binder struct {
	dialect SQLDialect
}

// NewBinder creates a Binder for the given dialect.
func NewBinder(dialect SQLDialect) *Binder {
	return &Binder{dialect: dialect}
}

// Dialect returns the dialect the Binder was created with.
func (b *Binder) Dialect() SQLDialect {
	return b.dialect
}

var defaultBinder = NewBinder(SQLDialectODBC)

// Prepare creates a prepared statement for query and binds params to it in order,
// the first value to placeholder 1, the second to placeholder 2 and so on.
//
// No handle is returned when preparing fails. The returned statement is owned by
// the caller until it is handed to one of the execute-and-close helpers.
func (b *Binder) Prepare(ctx context.Context, p Preparer, query string, params ...Value) (*Statement, error) {
	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return nil, &PrepareError{Query: query, Err: err}
	}

	return b.bindAll(stmt, query, params)
}

// PrepareCall creates a callable statement invoking the stored routine with one
// placeholder per parameter and binds params to it in order.
//
// With the default ODBC dialect the call text is
//
//	{ call routine(?, ?) }
//
// Routine names must be SQL identifiers, optionally qualified with dots
// (e.g. "billing.close_period").
func (b *Binder) PrepareCall(ctx context.Context, p Preparer, routine string, params ...Value) (*CallableStatement, error) {
	query, err := b.callSyntax(routine, len(params))
	if err != nil {
		return nil, &PrepareError{Query: routine, Err: err}
	}

	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return nil, &PrepareError{Query: query, Err: err}
	}

	s, err := b.bindAll(stmt, query, params)
	if err != nil {
		return nil, err
	}
	return &CallableStatement{Statement: s, routine: routine}, nil
}

func (b *Binder) bindAll(stmt Stmt, query string, params []Value) (*Statement, error) {
	s := newStatement(b, stmt, query, len(params))
	for i, v := range params {
		if err := s.Bind(i+1, v); err != nil {
			_ = stmt.Close()
			return nil, err
		}
	}
	return s, nil
}

// Prepare creates a prepared statement using the default ODBC dialect.
// See [Binder.Prepare].
func Prepare(ctx context.Context, p Preparer, query string, params ...Value) (*Statement, error) {
	return defaultBinder.Prepare(ctx, p, query, params...)
}

// PrepareCall creates a callable statement using the default ODBC call escape.
// See [Binder.PrepareCall].
func PrepareCall(ctx context.Context, p Preparer, routine string, params ...Value) (*CallableStatement, error) {
	return defaultBinder.PrepareCall(ctx, p, routine, params...)
}

var routineNameRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

func validateRoutineName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: routine name cannot be empty", ErrInvalidRoutineName)
	}
	if !routineNameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q must match [a-zA-Z_][a-zA-Z0-9_]*", ErrInvalidRoutineName, name)
	}
	return nil
}

// CallSyntax renders the statement text calling routine with n positional parameters.
func (b *Binder) CallSyntax(routine string, n int) (string, error) {
	return b.callSyntax(routine, n)
}

func (b *Binder) callSyntax(routine string, n int) (string, error) {
	if err := validateRoutineName(routine); err != nil {
		return "", err
	}

	placeholders := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		placeholders = append(placeholders, b.getSQLPlaceholder(i))
	}
	args := strings.Join(placeholders, ", ")

	switch b.dialect {
	case SQLDialectPostgres, SQLDialectMySQL, SQLDialectMariaDB:
		return fmt.Sprintf("CALL %s(%s)", routine, args), nil

	case SQLDialectOracle:
		return fmt.Sprintf("BEGIN %s(%s); END;", routine, args), nil

	case SQLDialectSQLServer:
		if n == 0 {
			return "EXEC " + routine, nil
		}
		return fmt.Sprintf("EXEC %s %s", routine, args), nil

	case SQLDialectSQLite:
		return "", ErrCallUnsupported

	default:
		return fmt.Sprintf("{ call %s(%s) }", routine, args), nil
	}
}

// getSQLPlaceholder returns the appropriate SQL placeholder for the given index.
func (b *Binder) getSQLPlaceholder(index int) string {
	switch b.dialect {
	case SQLDialectPostgres:
		return fmt.Sprintf("$%d", index)

	case SQLDialectOracle:
		return fmt.Sprintf(":%d", index)

	case SQLDialectSQLServer:
		return fmt.Sprintf("@p%d", index)

	default:
		return "?"
	}
}

// formatUUIDForDB formats a UUID based on the SQL dialect.
func (b *Binder) formatUUIDForDB(id uuid.UUID) any {
	switch b.dialect {
	case SQLDialectMySQL, SQLDialectOracle, SQLDialectSQLServer:
		bytes, _ := id.MarshalBinary() // BINARY(16) / RAW(16) / BINARY columns
		return bytes
	case SQLDialectPostgres, SQLDialectMariaDB:
		return id // Native support
	default:
		return id.String()
	}
}

// bindValue converts v to the argument handed to the driver.
func (b *Binder) bindValue(v Value) (any, error) {
	switch v.kind {
	case KindUUID:
		return b.formatUUIDForDB(v.u), nil
	default:
		return v.Value()
	}
}
