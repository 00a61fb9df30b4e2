package controller

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hendrix/internal/model"
)

// SimpleUI implements UI with plain text and tables on the command's
// writers. Calls are serialized so output of concurrent workers never
// interleaves.
type SimpleUI struct {
	mu  sync.Mutex
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; there is nothing to close interactively.
func (s *SimpleUI) Wait() {}

// DisplayInputs prints one row per class file.
func (s *SimpleUI) DisplayInputs(suppliers []m.BytecodeSupplier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(suppliers) == 0 {
		s.printf("No class files found\n")
		return
	}

	rewrite := 0
	rows := make([][]string, 0, len(suppliers))

	for _, supplier := range suppliers {
		role := "classpath"
		if supplier.ShouldBeProcessed() {
			role = "rewrite"
			rewrite++
		}

		rows = append(rows, []string{supplier.Origin().String(), role})
	}

	s.table([]string{"Class file", "Role"}, rows,
		[]string{fmt.Sprintf("Total %d", len(suppliers)), fmt.Sprintf("%d rewrite", rewrite)})
}

// DisplayMappings prints the effective mapping table.
func (s *SimpleUI) DisplayMappings(mappings []m.GenericMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(mappings) == 0 {
		s.printf("No mappings found\n")
		return
	}

	rows := make([][]string, 0, len(mappings))
	for _, mapping := range mappings {
		rows = append(rows, []string{mapping.Kind().String(), mapping.Key(), mapping.Generic().SourceRef()})
	}

	s.table([]string{"Kind", "Target", "Generic"}, rows,
		[]string{"", fmt.Sprintf("Total %d", len(mappings)), ""})
}

// DisplayProviderError reports a mapping source that was skipped.
func (s *SimpleUI) DisplayProviderError(provider string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorf("mapping provider %s skipped: %v\n", provider, err)
}

// DisplayRunInfo prints the run parameters.
func (s *SimpleUI) DisplayRunInfo(info RunInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("Transforming %d class file(s) with %d worker(s) and %d mapping(s)", info.Files, max(info.Threads, 1), info.Mappings)

	if info.ShardCount > 1 {
		s.printf(", shard %d/%d", info.ShardIndex, info.ShardCount)
	}

	if info.DryRun {
		s.printf(" (dry run)")
	}

	s.printf("\n")
}

// DisplayFileStarted is silent in plain text mode.
func (s *SimpleUI) DisplayFileStarted(_ m.Origin, _ int) {}

// DisplayFileCompleted reports conflicts and failures of one file.
func (s *SimpleUI) DisplayFileCompleted(result m.FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range result.Conflicts {
		s.errorf("warning: %s\n", c)
	}

	if result.Err != nil {
		s.errorf("error: %v\n", result.Err)
	}
}

// DisplaySummary prints the outcome counts.
func (s *SimpleUI) DisplaySummary(summary m.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := "Changed"
	if summary.DryRun {
		changed = "Would change"
	}

	s.table([]string{"Status", "Files"}, [][]string{
		{changed, fmt.Sprintf("%d", summary.Changed)},
		{"Unchanged", fmt.Sprintf("%d", summary.Unchanged)},
		{"Skipped", fmt.Sprintf("%d", summary.Skipped)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
	}, []string{"Total", fmt.Sprintf("%d", summary.Total)})

	s.printf("%d override(s) applied, %d conflict(s), %s\n",
		summary.Applied, summary.Conflicts, summary.Duration.Round(time.Millisecond))
}

func (s *SimpleUI) table(header []string, rows [][]string, footer []string) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
