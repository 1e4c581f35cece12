package io

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/mlorenz/scenetree/pkg/document"
)

// docNode is the wire shape of one document node.
type docNode struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Source   string    `json:"source,omitempty"`
	Text     string    `json:"text,omitempty"`
	Children []docNode `json:"children,omitempty"`
}

func toDocNode(n *document.Node) docNode {
	out := docNode{
		Name:   n.Name,
		Type:   n.Kind.String(),
		X:      n.X,
		Y:      n.Y,
		Width:  n.Width,
		Height: n.Height,
		Source: n.Source,
		Text:   n.Text,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toDocNode(c))
	}
	return out
}

// WriteDocument encodes a parsed tree back to the document format and writes
// it to w. The output re-imports identically through [ImportDocument].
func WriteDocument(n *document.Node, w io.Writer) error {
	if n == nil {
		return fmt.Errorf("write document: nil node")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocNode(n)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDocument writes a parsed tree to a JSON file at path.
// This is a convenience wrapper around [WriteDocument] for file-based output.
func ExportDocument(n *document.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(n, f)
}
