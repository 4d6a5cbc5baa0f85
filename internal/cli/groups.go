package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/albumgrid/pkg/io"
	"github.com/matzehuels/albumgrid/pkg/pipeline"
)

// groupsCommand creates the groups command for whole item lists.
func (c *CLI) groupsCommand() *cobra.Command {
	var (
		output       string
		noCache      bool
		refresh      bool
		maxGroupSize int
	)

	cmd := &cobra.Command{
		Use:   "groups [items-file]",
		Short: "Pack items into groups and lay out every group",
		Long: `Pack an ordered item list into groups and lay out every group.

Every group except the last holds exactly max_group_size items (10 by
default). The groups and their layouts are written as JSON to
<input>.groups.json unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			opts.Refresh = refresh
			if maxGroupSize > 0 {
				opts.MaxGroupSize = maxGroupSize
			}
			return c.runGroups(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.groups.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached layouts exist")
	cmd.Flags().IntVar(&maxGroupSize, "max-group-size", 0, "items per group (default from config)")

	return cmd
}

func (c *CLI) runGroups(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	items, err := readItems(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Laying out %d items...", len(items)))
	res, err := runner.Execute(ctx, items, opts)
	if err != nil {
		spin.Fail("Layout failed")
		return fmt.Errorf("compute groups: %w", err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = defaultOutput(input, "groups")
	}
	if err := io.ExportGroups(res.Groups, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Groups complete")
	printFile(output)
	printStats(res.Stats.ItemCount, res.Stats.GroupCount, res.CacheInfo.GroupsHit)
	printDetail("Plans: %s", planSummary(res.Stats.Plans))
	if !res.CacheInfo.GroupsHit {
		printDetail("Layouts: %d cached, %d computed", res.CacheInfo.LayoutHits, res.CacheInfo.LayoutMisses)
	}
	printNewline()
	printNextStep("Edit", appName+" edit "+input)

	return nil
}
