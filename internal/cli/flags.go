package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/kubesplit/internal/config"
)

// registerSplitFlags adds the output and grouping flags to the root command.
// Their values are read back through config.Load, so environment variables
// and the config file can set them too.
func registerSplitFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output-dir", "o", ".", "directory to write the split files to")
	f.String("format", config.OutputFormatYAML, "output format: yaml, json")
	f.String("on-collision", config.OnCollisionLastWins,
		"when documents share a file name: last-wins, first-wins, error")
	f.StringSlice("exclude-kinds", nil, "skip resources of these kinds (case-insensitive)")
	f.Bool("dry-run", false, "print the files that would be written without writing them")
}
