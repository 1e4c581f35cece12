package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlorenz/scenetree/pkg/cache"
	pkgio "github.com/mlorenz/scenetree/pkg/io"
)

// docsCommand creates the document store command group.
// All subcommands require store.mongo_uri in the configuration.
func (c *CLI) docsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Save, list and retrieve documents from the store",
	}

	cmd.AddCommand(c.docsSaveCommand())
	cmd.AddCommand(c.docsListCommand())
	cmd.AddCommand(c.docsExportCommand())
	cmd.AddCommand(c.docsDeleteCommand())

	return cmd
}

// docsSaveCommand creates the "docs save" subcommand.
func (c *CLI) docsSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Parse a design export and save it to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			root, err := pkgio.ImportDocument(args[0])
			if err != nil {
				return describeParseError(err)
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if name == "" {
				name = root.Name
			}
			rec, err := st.Save(ctx, name, cache.Hash(data), root)
			if err != nil {
				return err
			}
			printSuccess("Saved %q (%d nodes)", rec.Name, rec.NodeCount)
			printKeyValue("ID", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (defaults to the root node's name)")

	return cmd
}

// docsListCommand creates the "docs list" subcommand.
func (c *CLI) docsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			records, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No stored documents")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  %s  %s\n",
					StyleValue.Render(rec.ID),
					rec.CreatedAt.Format("2006-01-02 15:04"),
					rec.Name)
				printDetail("%d nodes · %s", rec.NodeCount, rec.Hash[:12])
			}
			return nil
		},
	}
}

// docsExportCommand creates the "docs export" subcommand.
func (c *CLI) docsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a stored document back to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			root, rec, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := pkgio.WriteDocument(root, out); err != nil {
				return err
			}
			if output != "" && output != "-" {
				printSuccess("Exported %q", rec.Name)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// docsDeleteCommand creates the "docs delete" subcommand.
func (c *CLI) docsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
