package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	// sqlite driver for evaluating rendered SQL.
	_ "modernc.org/sqlite"
)

// NewSQLite opens an in-memory SQLite database, runs the setup statements and
// closes it when the test ends.
func NewSQLite(t testing.TB, setup ...string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, stmt := range setup {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "setup: %s", stmt)
	}
	return db
}

// Column runs query and returns the first column of every row.
// Values are int64, float64, string, []byte or nil as the driver reports them.
func Column(t testing.TB, db *sql.DB, query string, args ...any) []any {
	t.Helper()

	rows, err := db.QueryContext(context.Background(), query, args...)
	require.NoError(t, err, "query: %s", query)
	defer func() { _ = rows.Close() }()

	var out []any
	for rows.Next() {
		var v any
		require.NoError(t, rows.Scan(&v))
		out = append(out, v)
	}
	require.NoError(t, rows.Err())
	return out
}

// Scalar runs query and returns the single value it produces.
func Scalar(t testing.TB, db *sql.DB, query string, args ...any) any {
	t.Helper()

	values := Column(t, db, query, args...)
	require.Len(t, values, 1, "query: %s", query)
	return values[0]
}
