package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/hendrix/internal/archive"
)

// entryCmd groups the single entry archive operations.
var entryCmd = newEntryCmd()

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Inspect or edit single entries of jar and zip archives",
	}
	cmd.AddCommand(newEntryListCmd(), newEntryReplaceCmd(), newEntryRemoveCmd())

	return cmd
}

func newEntryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List entry names in archive order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := archive.ListEntries(args[0])
			if err != nil {
				return err
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func newEntryReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <archive> <entry> <file>",
		Short: "Replace the content of one entry with a file",
		Long: `Replace the content of one archive entry with the bytes of a file. The entry
keeps its position, name and compression method; every other entry is copied
unchanged. Nothing happens when the archive has no such entry.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}

			if found, err := reportMissingEntry(cmd, args[0], args[1]); err != nil || !found {
				return err
			}

			if err := archive.ReplaceEntry(args[0], args[1], data); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "replaced %s in %s\n", args[1], args[0])

			return nil
		},
	}
}

func newEntryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <archive> <entry>",
		Short: "Remove one entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if found, err := reportMissingEntry(cmd, args[0], args[1]); err != nil || !found {
				return err
			}

			if err := archive.RemoveEntry(args[0], args[1]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[1], args[0])

			return nil
		},
	}
}

// reportMissingEntry prints a notice when the archive has no entry name.
func reportMissingEntry(cmd *cobra.Command, path, name string) (bool, error) {
	names, err := archive.ListEntries(path)
	if err != nil {
		return false, err
	}

	if slices.Contains(names, name) {
		return true, nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no such entry %s in %s\n", name, path)

	return false, nil
}

func init() {
	rootCmd.AddCommand(entryCmd)
}
