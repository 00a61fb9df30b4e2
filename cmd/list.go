package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/domain"
)

const listLongDescription = `List the class files a run would visit. Without inputs the current
directory is listed.

Class files of the inputs are marked "rewrite"; class files found only on
the classpath (-c) are marked "classpath".`

var listClasspathFlags []string
var listExcludeFlags []string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [inputs...]",
		Short: "List class files of the inputs and classpath",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return workflow.List(domain.ListArgs{
				Inputs:    parsePaths(resolveInputs(args, cfg)),
				Classpath: parsePaths(pickValues(cmd, "classpath", listClasspathFlags, cfg.Classpath)),
				Exclude:   pickValues(cmd, "exclude", listExcludeFlags, cfg.Exclude),
			})
		},
	}
	cmd.Flags().StringArrayVarP(&listClasspathFlags, "classpath", "c", nil, "class file, directory or archive to list as classpath (can be repeated)")
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude class files whose origin matches regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
