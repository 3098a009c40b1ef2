// Package domain contains the task record model: the Task entity, its status
// values, and the validation rules applied before anything reaches storage.
// It has no knowledge of HTTP or of any particular database.
package domain
