package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlorenz/scenetree/pkg/document"
	pkgio "github.com/mlorenz/scenetree/pkg/io"
)

// parseCommand creates the parse command for validating design exports.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a design export and print its statistics",
		Long: `Parse a JSON design document export into a node tree.

Parsing is strict and fail-fast: the first missing or mistyped field aborts
with the path of the offending node. Use "-" to read from stdin.

Examples:
  scenetree parse design.json
  scenetree parse design.json -o normalized.json
  cat design.json | scenetree parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the normalized document to a file")

	return cmd
}

func (c *CLI) runParse(path, output string) error {
	prog := newProgress(c.Logger)
	root, err := pkgio.ImportDocument(path)
	if err != nil {
		return describeParseError(err)
	}
	prog.done(fmt.Sprintf("Parsed %d nodes", root.Count()))

	printKeyValue("Name", root.Name)
	printKeyValue("Nodes", fmt.Sprintf("%d", root.Count()))
	printKeyValue("Depth", fmt.Sprintf("%d", root.Depth()))

	groups, images, texts := countKinds(root)
	printDetail("%d groups · %d images · %d texts", groups, images, texts)

	if output != "" {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := pkgio.WriteDocument(root, out); err != nil {
			return err
		}
		if output != "-" {
			printFile(output)
		}
	}
	return nil
}

// countKinds tallies node kinds across the tree.
func countKinds(root *document.Node) (groups, images, texts int) {
	root.Walk(func(n *document.Node) bool {
		switch n.Kind {
		case document.KindImage:
			images++
		case document.KindText:
			texts++
		default:
			groups++
		}
		return true
	})
	return groups, images, texts
}

// describeParseError surfaces the node path of a malformed document on its
// own line so it stands out in terminal output.
func describeParseError(err error) error {
	var malformed *document.MalformedDocumentError
	if errors.As(err, &malformed) {
		printError("Malformed document at %s", malformed.Path)
		printDetail("%s", malformed.Reason)
	}
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
