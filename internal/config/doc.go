// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, an optional config file, an optional .env
// file, environment variables). Environment variables use the TASKS_ prefix,
// e.g. TASKS_SERVER_PORT or TASKS_DATABASE_URL.
package config
