package document

import "fmt"

// MalformedDocumentError is returned by [Parse] when a design document cannot
// be converted into a node tree. Parsing is all-or-nothing: the first
// malformed node aborts the whole parse and no partial tree is returned.
//
// Path locates the offending value as a JSON-pointer style index chain from
// the document root (for example "/children/0/width"). The root itself is "/".
type MalformedDocumentError struct {
	Path   string // location of the offending value
	Reason string // human-readable description of the problem
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at %s: %s", e.Path, e.Reason)
}

// malformed constructs a MalformedDocumentError for path with a formatted reason.
func malformed(path, format string, args ...any) error {
	return &MalformedDocumentError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
