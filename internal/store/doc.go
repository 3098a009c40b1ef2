// Package store defines the persistence contract for tasks. Backends in
// internal/platform implement TaskStore; the service and HTTP layers only
// ever see this interface and the sentinel errors declared here.
package store
