package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/io"
	"github.com/matzehuels/albumgrid/pkg/media"
)

// layoutCommand creates the layout command for a single group.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [items-file]",
		Short: "Compute the collage layout of one group of items",
		Long: `Compute the collage layout of one group of items.

The items file lists at most max_group_size items (JSON, YAML or TOML; "-"
reads JSON from stdin). The command prints the chosen plan, a block preview
and the position of every tile. With -o the layout document is written as
JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the preview and position table")

	return cmd
}

// runLayout loads the items, computes the layout, and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh, quiet bool) error {
	items, err := readItems(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options()
	opts.Refresh = refresh

	prog := newProgress(c.Logger)
	l, cacheHit, err := runner.Layout(ctx, items, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Laid out %d items", l.Len())

	if output != "" {
		if err := io.ExportLayout(l, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
	}

	printSuccess("Layout complete")
	printKeyValue("Plan", l.Plan().String())
	printKeyValue("Size", fmt.Sprintf("%d × %.3f", l.Width, l.Height))
	if output != "" {
		printFile(output)
	}
	printStats(len(items), 1, cacheHit)
	if !quiet && !l.Empty() {
		printNewline()
		fmt.Println(renderPreview(l, c.Config.Layout.MaxHeight))
		fmt.Println(renderPositions(l))
	}
	return nil
}

// readItems reads an item file, or JSON from stdin for "-".
func readItems(input string) ([]media.Item, error) {
	var (
		items []media.Item
		err   error
	)
	if input == "-" {
		items, err = io.ReadItems(os.Stdin, io.FormatJSON)
	} else {
		items, err = io.ImportItems(input)
	}
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s holds no items", input)
	}
	return items, nil
}

// defaultOutput derives "<input>.<suffix>.json" from the input path.
func defaultOutput(input, suffix string) string {
	if input == "-" {
		return suffix + ".json"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix + ".json"
}

// planSummary lists how many groups used each plan.
func planSummary(plans map[string]int) string {
	keys := slices.Sorted(maps.Keys(plans))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d× %s", plans[k], k)
	}
	return strings.Join(parts, ", ")
}
