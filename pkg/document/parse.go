package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/mlorenz/scenetree/pkg/observability"
)

// DefaultMaxDepth is the default nesting limit for parsed documents.
// Documents nested deeper than this fail with a MalformedDocumentError
// rather than risking stack exhaustion on hostile input.
const DefaultMaxDepth = 4096

// ParseOptions configures document parsing.
type ParseOptions struct {
	// MaxDepth bounds the nesting depth of the node tree.
	// Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

// Parse converts a raw JSON design export into a node tree using default
// options. See [ParseWithOptions] for the parsing contract.
func Parse(data []byte) (*Node, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseReader reads all of r and parses it as a design document.
func ParseReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data)
}

// ParseWithOptions converts a raw JSON design export into a node tree.
//
// Each node must carry the required fields name (string), type (string),
// x, y, width and height (numbers). A missing or mistyped required field on
// any node aborts the parse with a [MalformedDocumentError] identifying the
// offending value; no partial tree is ever returned. The optional fields
// source and text must be strings when present; a present-but-mistyped
// optional field is also a parse error rather than being silently dropped.
//
// The type string dispatches to [KindImage] or [KindText]; anything else,
// including unknown strings, falls back to [KindGroup]. A children field, when
// present, must be an array and is parsed recursively in document order.
// Absent children yield an empty slice. Fields outside the schema are ignored,
// keeping the parser forward compatible with richer exports.
func ParseWithOptions(data []byte, opts ParseOptions) (*Node, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{maxDepth: maxDepth}

	ctx := context.Background()
	start := time.Now()
	observability.Document().OnParseStart(ctx, len(data))
	root, err := p.node(data, "/", 1)
	observability.Document().OnParseComplete(ctx, root.Count(), time.Since(start), err)
	return root, err
}

// parser carries parse state shared across the recursive descent.
type parser struct {
	maxDepth int
}

// node parses one document object and its descendants. path locates the node
// for error reporting; depth is the 1-based nesting level.
func (p *parser) node(raw json.RawMessage, path string, depth int) (*Node, error) {
	if depth > p.maxDepth {
		return nil, malformed(path, "depth limit %d exceeded", p.maxDepth)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		if path == "/" {
			return nil, malformed(path, "document root must be a JSON object")
		}
		return nil, malformed(path, "node must be a JSON object")
	}

	n := &Node{}
	name, err := requireString(fields, "name", path)
	if err != nil {
		return nil, err
	}
	n.Name = name

	typ, err := requireString(fields, "type", path)
	if err != nil {
		return nil, err
	}
	n.Kind = KindFromString(typ)

	for _, f := range [...]struct {
		key string
		dst *float64
	}{
		{"x", &n.X},
		{"y", &n.Y},
		{"width", &n.Width},
		{"height", &n.Height},
	} {
		v, err := requireNumber(fields, f.key, path)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	if n.Width < 0 {
		return nil, malformed(fieldPath(path, "width"), "extent must not be negative")
	}
	if n.Height < 0 {
		return nil, malformed(fieldPath(path, "height"), "extent must not be negative")
	}

	if n.Source, err = optionalString(fields, "source", path); err != nil {
		return nil, err
	}
	if n.Text, err = optionalString(fields, "text", path); err != nil {
		return nil, err
	}

	rawChildren, ok := fields["children"]
	if !ok {
		return n, nil
	}
	var children []json.RawMessage
	if isNull(rawChildren) {
		return nil, malformed(fieldPath(path, "children"), "children must be an array")
	}
	if err := json.Unmarshal(rawChildren, &children); err != nil {
		return nil, malformed(fieldPath(path, "children"), "children must be an array")
	}
	for i, rawChild := range children {
		childPath := fmt.Sprintf("%s/%d", fieldPath(path, "children"), i)
		child, err := p.node(rawChild, childPath, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// requireString reads a mandatory string field.
func requireString(fields map[string]json.RawMessage, key, path string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", malformed(fieldPath(path, key), "missing required field")
	}
	s, err := asString(raw)
	if err != nil {
		return "", malformed(fieldPath(path, key), "expected a string")
	}
	return s, nil
}

// requireNumber reads a mandatory numeric field.
func requireNumber(fields map[string]json.RawMessage, key, path string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, malformed(fieldPath(path, key), "missing required field")
	}
	if isNull(raw) {
		return 0, malformed(fieldPath(path, key), "expected a number")
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, malformed(fieldPath(path, key), "expected a number")
	}
	return v, nil
}

// optionalString reads an optional string field. Absence yields the empty
// string; a present value of any other type is a parse error.
func optionalString(fields map[string]json.RawMessage, key, path string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", nil
	}
	s, err := asString(raw)
	if err != nil {
		return "", malformed(fieldPath(path, key), "expected a string")
	}
	return s, nil
}

// asString decodes raw as a JSON string, rejecting null explicitly.
// encoding/json treats null as a no-op for string targets, which would let
// mistyped fields slip through the strict-typing contract.
func asString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", fmt.Errorf("null is not a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// isNull reports whether raw is the JSON null literal.
func isNull(raw json.RawMessage) bool {
	return len(raw) > 0 && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// fieldPath joins a node path with a field name in JSON-pointer style.
func fieldPath(base, key string) string {
	if base == "/" {
		return "/" + key
	}
	return base + "/" + key
}
