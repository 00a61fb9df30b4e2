package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/domain"
	m "github.com/mouse-blink/hendrix/internal/model"
)

var dumpSignaturesFlag bool

// dumpCmd represents the dump command.
var dumpCmd = newDumpCmd()

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file.class|dir|archive.jar>",
		Short: "Print the decoded structure of class files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dumps, err := workflow.Dump(m.Path(args[0]))
			if err != nil {
				return err
			}

			printDumps(cmd.OutOrStdout(), dumps, dumpSignaturesFlag)

			return nil
		},
	}
	cmd.Flags().BoolVar(&dumpSignaturesFlag, "signatures", false, "print only the Signature attributes")

	return cmd
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func printDumps(w io.Writer, dumps []domain.ClassDump, signaturesOnly bool) {
	for _, d := range dumps {
		_, _ = fmt.Fprintf(w, "== %s ==\n", d.Origin)

		if !signaturesOnly {
			dumpConfig.Fdump(w, d.Class)
		}

		keys := make([]string, 0, len(d.Signatures))
		for k := range d.Signatures {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", k, d.Signatures[k])
		}
	}
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
