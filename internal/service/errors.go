package service

import "errors"

// ErrTaskStoreUnavailable is returned by health checks when the store does
// not answer a ping.
var ErrTaskStoreUnavailable = errors.New("task store unavailable")
