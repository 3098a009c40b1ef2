// Package api handles incoming HTTP requests, request decoding and
// validation, and response formatting for the task endpoints. Handlers return
// errors instead of writing failure responses themselves; Handle turns those
// errors into JSON error bodies with a status derived from the error kind.
package api
