package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/albumgrid/pkg/io"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "edit [items-file]",
		Short: "Reorder and remove items interactively",
		Long: `Reorder and remove items interactively.

Items are shown grouped as they will be laid out, next to a preview of the
group under the cursor. Moving an item across a group boundary shifts the
following items so that every group but the last stays full. Press w to
write the edited item list (default: <input>.edited.json).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.edited.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input, output string, noCache bool) error {
	items, err := readItems(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Grouping %d items...", len(items)))
	p, err := runner.Partitioner(ctx, items, c.options())
	if err != nil {
		spin.Fail("Grouping failed")
		return fmt.Errorf("build groups: %w", err)
	}
	spin.Stop()

	final, err := tea.NewProgram(NewEditModel(p, c.Config.Layout.MaxHeight), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	m := final.(EditModel)
	if !m.Saved {
		printInfo("Discarded changes")
		return nil
	}

	if output == "" {
		output = defaultOutput(input, "edited")
	}
	if err := io.ExportItems(p.Items(), output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Saved %d items", p.Len())
	printFile(output)
	printStats(p.Len(), p.GroupCount(), false)
	return nil
}
