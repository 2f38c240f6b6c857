package model

import "errors"

// Sentinels for failures raised by the HTTP layer itself, before a service is
// involved. Everything originating in services or repositories carries its own
// apierror with code and status.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
