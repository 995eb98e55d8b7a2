package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect captures the differences between the supported database engines
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string
}

// DialectConfig holds connection parameters for a dialect
type DialectConfig struct {
	Path string // file path for sqlite
	URL  string // connection URL for postgres/mysql
}

var stringLiteralOrPlaceholder = regexp.MustCompile(`'[^']*'|\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
// Question marks inside single-quoted string literals are left untouched.
func rewritePlaceholdersToNumbered(query string) string {
	n := 0
	return stringLiteralOrPlaceholder.ReplaceAllStringFunc(query, func(match string) string {
		if match != "?" {
			return match
		}
		n++
		return "$" + strconv.Itoa(n)
	})
}
