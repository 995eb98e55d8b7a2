package database

import "testing"

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	if got := dialect.DriverName(); got != "sqlite3" {
		t.Errorf("DriverName() = %v, want sqlite3", got)
	}
	if !dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return true for SQLite")
	}
	if got := dialect.MigrationsSubdir(); got != "sqlite" {
		t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
	}
	query := "SELECT * FROM bookings WHERE id = ?"
	if got := dialect.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery() = %v, want query unchanged", got)
	}
}

func TestDialectPostgres(t *testing.T) {
	dialect := NewPostgresDialect()

	if got := dialect.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %v, want postgres", got)
	}
	if dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return false for PostgreSQL")
	}
	if got := dialect.MigrationsSubdir(); got != "postgres" {
		t.Errorf("MigrationsSubdir() = %v, want postgres", got)
	}
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	if got := dialect.DriverName(); got != "mysql" {
		t.Errorf("DriverName() = %v, want mysql", got)
	}
	if !dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return true for MySQL")
	}
	if got := dialect.MigrationsSubdir(); got != "mysql" {
		t.Errorf("MigrationsSubdir() = %v, want mysql", got)
	}
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM events WHERE id = ?",
			want:  "SELECT * FROM events WHERE id = $1",
		},
		{
			name:  "multiple placeholders numbered in order",
			query: "INSERT INTO bookings (reference, service) VALUES (?, ?)",
			want:  "INSERT INTO bookings (reference, service) VALUES ($1, $2)",
		},
		{
			name:  "question mark inside string literal untouched",
			query: "UPDATE pages SET body = 'what?' WHERE id = ?",
			want:  "UPDATE pages SET body = 'what?' WHERE id = $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
