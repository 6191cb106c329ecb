package plugin

import (
	"errors"
	"fmt"
)

// Plugin errors.
var (
	// ErrStateClosed is returned after Close.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidCommand is returned for a declaration missing required fields.
	ErrInvalidCommand = errors.New("invalid command declaration")

	// ErrUnknownAction is raised in Lua when ctx.dispatch names no reducer.
	ErrUnknownAction = errors.New("unknown action")
)

// LoadError reports a script that failed to load.
type LoadError struct {
	// Path is the script file.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
