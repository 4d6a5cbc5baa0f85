package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/albumgrid/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command loads the configuration file before any subcommand runs:
// --config, then $ALBUMGRID_CONFIG, then ~/.config/albumgrid/config.toml if
// it exists. Without a file the built-in defaults apply.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Albumgrid lays out groups of photos and videos as collages",
		Long:         `Albumgrid computes compact collage layouts for ordered media items and keeps them packed in groups of at most ten items as items are added, removed or reordered.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ~/.config/albumgrid/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.groupsCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
