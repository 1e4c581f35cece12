package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	pkgio "github.com/mlorenz/scenetree/pkg/io"
	"github.com/mlorenz/scenetree/pkg/scene"
	"github.com/mlorenz/scenetree/pkg/scene/memory"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	convention string // coordinate convention override
	fetchFills bool   // actually fetch image content
	noCache    bool   // bypass the image byte cache
	asJSON     bool   // print the element snapshot as JSON
}

// buildCommand creates the build command for dry-run hierarchy building.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build the element hierarchy through the in-memory environment",
		Long: `Build a design export into an element hierarchy.

The build runs against an in-memory environment: every element the builder
would create is recorded with its converted position and exact size, then
printed as a tree. With --fetch, image fills actually run and their payload
sizes are reported.

Examples:
  scenetree build design.json
  scenetree build design.json --convention y-down-top-left
  scenetree build design.json --fetch --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.convention, "convention", "", "coordinate convention (overrides config)")
	cmd.Flags().BoolVar(&opts.fetchFills, "fetch", false, "fetch image content for fills")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the image cache")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the element snapshot as JSON")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, path string, opts buildOpts) error {
	ctx := cmd.Context()

	conv, convName, err := c.convention(opts.convention)
	if err != nil {
		return err
	}

	root, err := pkgio.ImportDocument(path)
	if err != nil {
		return describeParseError(err)
	}

	dispatcher, err := c.newDispatcher(ctx, opts.fetchFills, opts.noCache)
	if err != nil {
		return err
	}
	env := memory.New()
	if dispatcher != nil {
		env = memory.NewWithDispatcher(dispatcher)
	}

	prog := newProgress(c.Logger)
	builder := scene.NewBuilder(env,
		scene.WithConvention(conv),
		scene.WithMaxDepth(c.Config.Build.MaxDepth))
	if _, err := builder.Build(ctx, root, nil); err != nil {
		return describeBuildError(err)
	}
	if dispatcher != nil {
		dispatcher.Wait()
	}
	prog.done(fmt.Sprintf("Built %d elements", env.Len()))

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env.Snapshot())
	}

	printKeyValue("Convention", convName)
	printKeyValue("Elements", fmt.Sprintf("%d", env.Len()))
	fmt.Println()
	for _, view := range env.Snapshot() {
		printElement(view, 0)
	}
	return nil
}

// printElement prints one element line and recurses into its children.
func printElement(v memory.ElementView, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %s %s",
		indent,
		styleKind(v.Kind).Render(v.Kind),
		StyleValue.Render(v.Name),
		StyleDim.Render(fmt.Sprintf("(%g, %g) %gx%g", v.Position.X, v.Position.Y, v.Size.Width, v.Size.Height)),
	)
	if v.Source != "" {
		line += " " + StyleDim.Render(iconArrow+" "+v.Source)
	}
	fmt.Println(line)
	for _, child := range v.Children {
		printElement(child, depth+1)
	}
}

// describeBuildError surfaces the node path of a failed element creation.
func describeBuildError(err error) error {
	var failed *scene.ElementCreationFailedError
	if errors.As(err, &failed) {
		printError("Element creation failed at %s", failed.Path)
		printDetail("%v", failed.Cause)
	}
	return err
}
