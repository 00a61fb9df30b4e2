package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/domain"
)

var mappingsManualFlags []string
var mappingsYAMLFlags []string

// mappingsCmd represents the mappings command.
var mappingsCmd = newMappingsCmd()

func newMappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Show the effective mapping table",
		Long: `Load every mapping file and print the resulting table. When two mappings
target the same declaration the later one wins. Files that fail to load are
reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return workflow.Mappings(domain.MappingArgs{
				Manual: parsePaths(pickValues(cmd, "manual", mappingsManualFlags, cfg.Manual)),
				YAML:   parsePaths(pickValues(cmd, "yaml", mappingsYAMLFlags, cfg.YAML)),
			})
		},
	}
	cmd.Flags().StringArrayVarP(&mappingsManualFlags, "manual", "m", nil, "manual mapping file (can be repeated)")
	cmd.Flags().StringArrayVarP(&mappingsYAMLFlags, "yaml", "y", nil, "YAML mapping file (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
}
