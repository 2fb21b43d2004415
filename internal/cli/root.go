package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockdiag/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Blockdiag lays out and drives block diagrams on a snapping canvas",
		Long: `Blockdiag is the geometry and interaction core of a block diagram editor:
blocks with input and output sockets, wires that follow them, connectors that
route wires around bends, and a canvas that snaps everything to a grid.

The CLI computes block geometry, replays recorded interaction fixtures,
exports wire topologies and offers a small terminal viewer.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML; defaults to $"+envConfig+")")
	if c.getenv == nil {
		c.getenv = os.Getenv
	}

	// Register all subcommands
	root.AddCommand(c.geometryCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.completionCommand())

	return root
}
