package service

import "errors"

// ErrInvalidStatus is returned when a status outside pending/in_progress/resolved is requested
var ErrInvalidStatus = errors.New("invalid complaint status")

// ValidationError reports rejected user input. It is the only domain error surfaced to callers.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Messages shown to users
const (
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgInvalidCredentials = "Invalid email or password"
)
