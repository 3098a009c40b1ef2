// Package memory provides an in-process implementation of store.TaskStore.
// It backs the "memory" storage driver for local development and the HTTP
// tests; data does not survive a restart.
package memory
