// Package cmd provides the root command and CLI setup for hendrix.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/adapter"
	"github.com/mouse-blink/hendrix/internal/archive"
	"github.com/mouse-blink/hendrix/internal/controller"
	"github.com/mouse-blink/hendrix/internal/domain"
	m "github.com/mouse-blink/hendrix/internal/model"
)

var injector *do.Injector
var workflow domain.Workflow
var ui controller.UI

func init() {
	injector = newInjector(rootCmd)
	ui = do.MustInvoke[controller.UI](injector)
	workflow = do.MustInvoke[domain.Workflow](injector)
}

var configFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hendrix",
		Short: "Restore generic signatures in compiled Java class files",
		Long: `Hendrix rewrites the Signature attributes of compiled JVM class files so that
classes, fields and methods carry the generic types named in mapping files.

Inputs may be class files, directories (scanned recursively) or jar/zip
archives, which are updated in place. A trailing "/..." on a directory is
accepted and means the same as the directory itself.

Settings can be kept in .hendrix.yaml or .hendrix.toml in the working
directory; command line flags win over config values.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default .hendrix.yaml, .hendrix.yml or .hendrix.toml in the working directory)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if cleanupErr := archive.CleanupPending(); cleanupErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "cleanup: %v\n", cleanupErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the file named by --config, or the default config file
// of the working directory when there is one.
func loadConfig() (adapter.Config, error) {
	path := configFlag
	if path == "" {
		found, ok, err := adapter.FindConfig(".")
		if err != nil {
			return adapter.Config{}, err
		}

		if !ok {
			return adapter.Config{}, nil
		}

		path = found
	}

	return adapter.LoadConfig(path)
}

func parsePaths(values []string) []m.Path {
	paths := make([]m.Path, 0, len(values))
	for _, v := range values {
		paths = append(paths, m.Path(v))
	}

	return paths
}

// resolveInputs returns the positional inputs, the config inputs when none
// were given, and the current directory when neither names any.
func resolveInputs(args []string, cfg adapter.Config) []string {
	switch {
	case len(args) > 0:
		return args
	case len(cfg.Inputs) > 0:
		return cfg.Inputs
	default:
		return []string{"."}
	}
}

// pickValues returns the flag values when the flag was given on the command
// line, the config values otherwise.
func pickValues(cmd *cobra.Command, flag string, values, fromConfig []string) []string {
	if cmd.Flags().Changed(flag) || len(fromConfig) == 0 {
		return values
	}

	return fromConfig
}

func parseShardFlag(shard string) (int, int, error) {
	if shard == "" {
		return 0, 1, nil
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1, fmt.Errorf("invalid shard %q: want INDEX/TOTAL with 0 <= INDEX < TOTAL", shard)
	}

	return index, total, nil
}
