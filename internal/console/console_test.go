package console

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: "NULL"},
		{in: "text", want: "text"},
		{in: []byte("abc"), want: "abc"},
		{in: []byte{0xff, 0x00}, want: `\xff00`},
		{in: [16]byte{0x12, 0x34, 0x56, 0x78}, want: "12345678-0000-0000-0000-000000000000"},
		{in: ts, want: "2024-03-01T12:00:00Z"},
		{in: true, want: "true"},
		{in: int64(42), want: "42"},
	}
	for _, tc := range tests {
		if got := FormatValue(tc.in); got != tc.want {
			t.Fatalf("FormatValue(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("CCM_ADMIN_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CCM_ADMIN_TEST_DATABASE_URL is not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("pgxpool.New() error = %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestRunTruncatesRows(t *testing.T) {
	pool := testPool(t)
	c := New(pool, 3, time.Second)

	res, err := c.Run(context.Background(), "SELECT g AS n FROM generate_series(1, 10) AS g")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Columns) != 1 || res.Columns[0] != "n" {
		t.Fatalf("columns = %v, want [n]", res.Columns)
	}
	if len(res.Rows) != 3 || !res.Truncated {
		t.Fatalf("rows = %d truncated = %v, want 3 and true", len(res.Rows), res.Truncated)
	}
	if res.Rows[0][0] != "1" {
		t.Fatalf("first value = %q, want 1", res.Rows[0][0])
	}
}

func TestRunIsReadOnly(t *testing.T) {
	pool := testPool(t)
	c := New(pool, 10, time.Second)

	_, err := c.Run(context.Background(), "WITH d AS (DELETE FROM users RETURNING id) SELECT count(*) FROM d")
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "25006" {
		t.Fatalf("Run(modifying CTE) error = %v, want read_only_sql_transaction", err)
	}
	if !IsUserError(err) {
		t.Fatal("database errors should be shown inline")
	}
}

func TestRunHonoursStatementTimeout(t *testing.T) {
	pool := testPool(t)
	c := New(pool, 10, 50*time.Millisecond)

	_, err := c.Run(context.Background(), "SELECT pg_sleep(1)")
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "57014" {
		t.Fatalf("Run(pg_sleep) error = %v, want query_canceled", err)
	}
}
