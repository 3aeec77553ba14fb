package directory

import "errors"

var (
	// ErrMalformedInput indicates the payload is not JSON, or a node has
	// none of the fields that identify an organization, category, group or
	// user.
	ErrMalformedInput = errors.New("malformed directory payload")

	// ErrIndexOutOfRange indicates a selection outside the current view.
	ErrIndexOutOfRange = errors.New("selection out of range")
)
