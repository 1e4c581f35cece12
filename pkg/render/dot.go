package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mlorenz/scenetree/pkg/document"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes geometry (position and size) in node labels.
	// When false, only the node name and kind are shown.
	Detailed bool
}

// ToDOT converts a document tree to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [SVG] or
// [PNG].
//
// Nodes are identified by their tree path ("/", "/children/0", ...) so names
// never have to be unique. Image nodes are shaded and text nodes show their
// content.
func ToDOT(root *document.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root != nil {
		writeNodes(&buf, root, "/", opts)
		buf.WriteString("\n")
		writeEdges(&buf, root, "/")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, n *document.Node, path string, opts Options) {
	label := fmtLabel(n, opts.Detailed)
	attrs := fmtAttrs(n, label)
	fmt.Fprintf(buf, "  %q [%s];\n", path, strings.Join(attrs, ", "))

	for i, c := range n.Children {
		writeNodes(buf, c, childPath(path, i), opts)
	}
}

func writeEdges(buf *bytes.Buffer, n *document.Node, path string) {
	for i, c := range n.Children {
		cp := childPath(path, i)
		fmt.Fprintf(buf, "  %q -> %q;\n", path, cp)
		writeEdges(buf, c, cp)
	}
}

func childPath(base string, i int) string {
	if base == "/" {
		return fmt.Sprintf("/children/%d", i)
	}
	return fmt.Sprintf("%s/children/%d", base, i)
}

func fmtLabel(n *document.Node, detailed bool) string {
	parts := []string{n.Name, fmt.Sprintf("(%s)", n.Kind)}
	if n.Kind == document.KindText && n.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", n.Text))
	}
	if detailed {
		parts = append(parts,
			fmt.Sprintf("at: %g, %g", n.X, n.Y),
			fmt.Sprintf("size: %g x %g", n.Width, n.Height))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *document.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Kind == document.KindImage {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderFormat(dot string, format graphviz.Format, buf *bytes.Buffer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
