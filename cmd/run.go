package cmd

import (
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/adapter"
	"github.com/mouse-blink/hendrix/internal/domain"
	m "github.com/mouse-blink/hendrix/internal/model"
)

const runLongDescription = `Rewrite the generic signatures of every class file found in the inputs.
Without inputs the current directory is used.

Mappings come from manual mapping files (-m) and YAML mapping files (-y).
Classpath entries (-c) are enumerated but never modified. A declaration that
already carries a different signature is reported as a conflict and the
mapping wins.

Use --shard INDEX/TOTAL to split the class files across several processes.`

var runClasspathFlags []string
var runExcludeFlags []string
var runManualFlags []string
var runYAMLFlags []string
var runParallelFlag int
var runShardFlag string
var runDryRunFlag bool
var runReportFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [inputs...]",
		Short: "Rewrite generic signatures of class files",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runArgs, err := newRunArgs(cmd, args, cfg)
			if err != nil {
				return err
			}

			err = workflow.Run(cmd.Context(), runArgs)
			ui.Wait()

			return err
		},
	}
	cmd.Flags().StringArrayVarP(&runClasspathFlags, "classpath", "c", nil, "class file, directory or archive to read but never modify (can be repeated)")
	cmd.Flags().StringArrayVarP(&runExcludeFlags, "exclude", "x", nil, "exclude class files whose origin matches regex (can be repeated)")
	cmd.Flags().StringArrayVarP(&runManualFlags, "manual", "m", nil, "manual mapping file (can be repeated)")
	cmd.Flags().StringArrayVarP(&runYAMLFlags, "yaml", "y", nil, "YAML mapping file (can be repeated)")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", runtime.NumCPU(), "number of parallel workers")
	cmd.Flags().StringVarP(&runShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().BoolVar(&runDryRunFlag, "dry-run", false, "transform without writing any file")
	cmd.Flags().StringVar(&runReportFlag, "report", "", "write a YAML report of the run to this file")

	return cmd
}

func newRunArgs(cmd *cobra.Command, args []string, cfg adapter.Config) (domain.RunArgs, error) {
	shardIndex, shardCount, err := parseShardFlag(runShardFlag)
	if err != nil {
		return domain.RunArgs{}, err
	}

	inputs := resolveInputs(args, cfg)

	threads := runParallelFlag
	if !cmd.Flags().Changed("parallel") && cfg.Parallel > 0 {
		threads = cfg.Parallel
	}

	if threads < 1 {
		return domain.RunArgs{}, errors.New("parallel must be at least 1")
	}

	dryRun := runDryRunFlag
	if !cmd.Flags().Changed("dry-run") {
		dryRun = dryRun || cfg.DryRun
	}

	report := runReportFlag
	if !cmd.Flags().Changed("report") && cfg.Report != "" {
		report = cfg.Report
	}

	return domain.RunArgs{
		ListArgs: domain.ListArgs{
			Inputs:    parsePaths(inputs),
			Classpath: parsePaths(pickValues(cmd, "classpath", runClasspathFlags, cfg.Classpath)),
			Exclude:   pickValues(cmd, "exclude", runExcludeFlags, cfg.Exclude),
		},
		MappingArgs: domain.MappingArgs{
			Manual: parsePaths(pickValues(cmd, "manual", runManualFlags, cfg.Manual)),
			YAML:   parsePaths(pickValues(cmd, "yaml", runYAMLFlags, cfg.YAML)),
		},
		Threads:    threads,
		DryRun:     dryRun,
		Report:     m.Path(report),
		ShardIndex: shardIndex,
		ShardCount: shardCount,
	}, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
