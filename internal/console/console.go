// Package console runs ad-hoc read-only queries for administrators.
package console

import (
	"context"
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/ccmadmin/ccm-admin/internal/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	DefaultMaxRows = 200
	DefaultTimeout = 5 * time.Second
)

// Beginner opens transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type Result struct {
	Query     string
	Columns   []string
	Rows      [][]string
	Truncated bool
	Elapsed   time.Duration
}

type Console struct {
	db      Beginner
	maxRows int
	timeout time.Duration
}

func New(db Beginner, maxRows int, timeout time.Duration) *Console {
	if maxRows < 1 {
		maxRows = DefaultMaxRows
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Console{db: db, maxRows: maxRows, timeout: timeout}
}

func (c *Console) MaxRows() int {
	return c.maxRows
}

// IsUserError reports whether err should be shown next to the query rather
// than treated as a server failure.
func IsUserError(err error) bool {
	if errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrNotReadOnly) || errors.Is(err, ErrUnterminated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

// Run executes query inside a read-only transaction that is always rolled back.
func (c *Console) Run(ctx context.Context, query string) (Result, error) {
	stmt, err := Validate(query)
	if err != nil {
		metrics.ConsoleQueriesTotal.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	res, err := c.run(ctx, stmt)
	if err != nil {
		metrics.ConsoleQueriesTotal.WithLabelValues("error").Inc()
		return Result{}, err
	}
	metrics.ConsoleQueriesTotal.WithLabelValues("ok").Inc()
	return res, nil
}

func (c *Console) run(ctx context.Context, stmt string) (Result, error) {
	started := time.Now()
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return Result{}, fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	timeoutMillis := strconv.FormatInt(c.timeout.Milliseconds(), 10)
	if _, err := tx.Exec(ctx, "SET LOCAL statement_timeout = "+timeoutMillis); err != nil {
		return Result{}, fmt.Errorf("set statement timeout: %w", err)
	}

	rows, err := tx.Query(ctx, stmt)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	res := Result{Query: stmt}
	for _, fd := range rows.FieldDescriptions() {
		res.Columns = append(res.Columns, fd.Name)
	}
	for rows.Next() {
		if len(res.Rows) == c.maxRows {
			res.Truncated = true
			break
		}
		values, err := rows.Values()
		if err != nil {
			return Result{}, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	res.Elapsed = time.Since(started)
	return res, nil
}

// FormatValue renders a decoded column value for the result grid.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		if utf8.Valid(val) {
			return string(val)
		}
		return `\x` + hex.EncodeToString(val)
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	case driver.Valuer:
		dv, err := val.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		return FormatValue(dv)
	default:
		return fmt.Sprint(v)
	}
}
