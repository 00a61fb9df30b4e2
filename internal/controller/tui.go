package controller

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/hendrix/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display. In run mode a
// program shows live progress; in list mode output is rendered once.
type TUI struct {
	output  io.Writer
	input   io.Reader
	mu      sync.Mutex
	mode    StartMode
	program *tea.Program
	done    chan struct{}
	err     error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = cfg.mode
	if cfg.mode != ModeRun {
		return nil
	}

	if t.program != nil {
		return fmt.Errorf("ui already started")
	}

	programOptions := []tea.ProgramOption{tea.WithOutput(t.output)}
	if t.input != nil {
		programOptions = append(programOptions, tea.WithInput(t.input))
	}

	t.program = tea.NewProgram(newRunModel(cfg.cancel), programOptions...)
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
		}
	}(t.program, t.done)

	return nil
}

// Close tells the run view that no more results will arrive.
func (t *TUI) Close() {
	t.send(finishedMsg{})
}

// Wait blocks until the user leaves the run view.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = nil
	t.done = nil

	if t.err != nil {
		_, _ = fmt.Fprintf(t.output, "ui error: %v\n", t.err)
		t.err = nil
	}
}

// DisplayInputs renders the class files as a styled list.
func (t *TUI) DisplayInputs(suppliers []m.BytecodeSupplier) {
	lines := make([]string, 0, len(suppliers))
	rewrite := 0

	for _, s := range suppliers {
		role := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10).Render("classpath")
		if s.ShouldBeProcessed() {
			role = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Width(10).Render("rewrite")
			rewrite++
		}

		lines = append(lines, role+" "+originStyle.Render(s.Origin().String()))
	}

	summary := fmt.Sprintf("Class files: %s  •  Rewrite: %s", accent(len(suppliers)), accent(rewrite))
	t.render("Hendrix inputs", summary, lines)
}

// DisplayMappings renders the mapping table as a styled list.
func (t *TUI) DisplayMappings(mappings []m.GenericMapping) {
	lines := make([]string, 0, len(mappings))
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(8)

	for _, mapping := range mappings {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			kindStyle.Render(mapping.Kind().String()),
			originStyle.Render(mapping.Key()),
			accentStyle.Render(mapping.Generic().SourceRef()),
		))
	}

	t.render("Hendrix mappings", fmt.Sprintf("Mappings: %s", accent(len(mappings))), lines)
}

// DisplayProviderError reports a mapping source that was skipped.
func (t *TUI) DisplayProviderError(provider string, err error) {
	if t.send(providerErrorMsg{provider: provider, err: err}) {
		return
	}

	warning := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render("skipped")
	_, _ = fmt.Fprintf(t.output, "%s mapping provider %s: %v\n", warning, provider, err)
}

// DisplayRunInfo forwards run parameters to the run view.
func (t *TUI) DisplayRunInfo(info RunInfo) {
	t.send(runInfoMsg{info: info})
}

// DisplayFileStarted forwards a started file to the run view.
func (t *TUI) DisplayFileStarted(origin m.Origin, worker int) {
	t.send(fileStartedMsg{origin: origin.String(), worker: worker})
}

// DisplayFileCompleted forwards a file result to the run view.
func (t *TUI) DisplayFileCompleted(result m.FileResult) {
	t.send(fileCompletedMsg{result: result})
}

// DisplaySummary forwards the final counts to the run view.
func (t *TUI) DisplaySummary(summary m.Summary) {
	t.send(summaryMsg{summary: summary})
}

// send delivers msg to the running program. It reports false when no
// program is running.
func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

var originStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

func (t *TUI) render(title, summary string, lines []string) {
	body := "nothing found"
	if len(lines) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1)

	_, _ = fmt.Fprintln(t.output, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		summaryStyle.Render(summary),
		box.Render(body),
	))
}
