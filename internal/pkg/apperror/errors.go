package apperror

import "errors"

// Error kinds surfaced by the HTTP layer. The messages are part of the API
// contract and are written verbatim into response bodies.
var (
	ErrValidation    = errors.New("title & body required")
	ErrMalformedBody = errors.New("invalid request body")
	ErrNotFound      = errors.New("not found")
)
