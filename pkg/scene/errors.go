package scene

import (
	"errors"
	"fmt"
)

// ErrDepthLimit is the cause recorded when a build exceeds the configured
// nesting limit.
var ErrDepthLimit = errors.New("depth limit exceeded")

// ElementCreationFailedError is returned by [Builder.Build] when the
// environment cannot allocate a visual primitive. The failure is fatal to the
// subtree being built but not to sibling subtrees that were already attached;
// the builder performs no rollback.
//
// Path locates the failing node as an index chain from the build root, using
// the same JSON-pointer style as document parse errors ("/children/2").
type ElementCreationFailedError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ElementCreationFailedError) Error() string {
	return fmt.Sprintf("element creation failed at %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying environment error.
func (e *ElementCreationFailedError) Unwrap() error { return e.Cause }
