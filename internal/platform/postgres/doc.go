// Package postgres provides the PostgreSQL implementation of store.TaskStore
// and the embedded goose migrations that create its schema. Tasks are stored
// as rows in a single table; the driver is pgx through database/sql.
package postgres
