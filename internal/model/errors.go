package model

import "errors"

// ErrNotFound is returned when a requested entity or storage key is absent.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned for operations that require a logged-in user.
var ErrUnauthorized = errors.New("unauthorized")
