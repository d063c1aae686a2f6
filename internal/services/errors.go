package services

import "errors"

// ErrNotFound signals that a requested record does not exist. Callers branch
// on it with errors.Is; every other error from this package is a store fault
// and propagates as-is.
var ErrNotFound = errors.New("not found")
