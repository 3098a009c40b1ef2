// Package service contains the application use cases for tasks. It applies
// the domain validation rules and orchestrates calls to the store.TaskStore
// it is constructed with, translating store failures into service errors that
// the API layer maps to HTTP responses.
//
// The service layer depends on domain entities and the store interface, never
// on a specific storage backend.
package service
