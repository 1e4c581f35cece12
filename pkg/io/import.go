package io

import (
	"fmt"
	"os"

	"github.com/mlorenz/scenetree/pkg/document"
)

// ImportDocument reads a design export at path and returns the parsed tree.
// A path of "-" reads from stdin.
//
// File errors are wrapped with the path for context; parse errors surface
// unchanged so callers can inspect document.MalformedDocumentError.
func ImportDocument(path string) (*document.Node, error) {
	if path == "-" {
		return document.ParseReader(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return document.Parse(data)
}
