package client

import "errors"

var (
	// ErrUnavailable indicates the server could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized indicates the server rejected the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyRequests indicates the server throttled the request.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrLocalDataNotAvailable indicates no remembered sign-in data exists locally.
	ErrLocalDataNotAvailable = errors.New("local data not available")
)
