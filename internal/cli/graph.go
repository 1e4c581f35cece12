package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/mlorenz/scenetree/pkg/io"
	"github.com/mlorenz/scenetree/pkg/render"
)

// Supported graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphCommand creates the graph command for structural diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Generate a structural diagram of a design export",
		Long: `Generate a Graphviz node-link diagram of a document tree.

One box per node, parent-to-child arrows in document order. The diagram
shows structure, not layout; with --detailed each box also carries the
node's position and size.

Examples:
  scenetree graph design.json
  scenetree graph design.json --format svg -o design.svg
  scenetree graph design.json --format png --detailed -o design.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include geometry in node labels")

	return cmd
}

func (c *CLI) runGraph(path, format, output string, detailed bool) error {
	root, err := pkgio.ImportDocument(path)
	if err != nil {
		return describeParseError(err)
	}

	dot := render.ToDOT(root, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		if data, err = render.SVG(dot); err != nil {
			return err
		}
	case formatPNG:
		if data, err = render.PNG(dot); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (use dot, svg or png)", format)
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if output != "" && output != "-" {
		printFile(output)
	}
	return nil
}
