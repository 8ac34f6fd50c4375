package domain

import "errors"

// ErrNotConnected is returned when no usable connection to the row store
// exists (credential resolution or the remote handshake failed).
// Handlers should map this to HTTP 503 and tell the user to refresh.
var ErrNotConnected = errors.New("row store not connected")

// ErrValidation is returned when a submission is rejected before reaching
// the row store (e.g. a bulk submit with nobody marked present).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
