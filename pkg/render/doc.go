// Package render produces structural diagrams of parsed design trees.
//
// # Overview
//
// This package turns a document tree into a Graphviz node-link diagram:
// one box per node, parent-to-child arrows following document order. It is a
// diagnostic view of the design's structure, not a rendering of the design
// itself — sizes and positions appear as labels, never as layout.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG or PNG:
//
//	dot := render.ToDOT(root, render.Options{Detailed: true})
//	svg, err := render.SVG(dot)
//	png, err := render.PNG(dot)
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes; image nodes are shaded and text nodes carry their content in the
// label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package render
