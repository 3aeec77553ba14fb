package eschool

import "errors"

var (
	// ErrNotAuthenticated indicates there is no session or the portal
	// rejected it (401/403).
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials indicates the portal refused the username or
	// password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrServiceUnavailable indicates the portal is unreachable or answered
	// 503.
	ErrServiceUnavailable = errors.New("eschool service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("eschool request timed out")

	// ErrUnexpectedStatus indicates any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidResponse indicates a 2xx body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response body")
)
