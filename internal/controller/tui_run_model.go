package controller

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/hendrix/internal/model"
)

var statusColors = map[string]lipgloss.Color{
	"changed":  lipgloss.Color("2"),
	"conflict": lipgloss.Color("3"),
	"failed":   lipgloss.Color("1"),
	"provider": lipgloss.Color("1"),
}

// resultDelegate renders one result per line.
type resultDelegate struct{}

func (d resultDelegate) Height() int  { return 1 }
func (d resultDelegate) Spacing() int { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d resultDelegate) Render(w io.Writer, model list.Model, index int, item list.Item) {
	result, ok := item.(resultItem)
	if !ok {
		return
	}

	color, ok := statusColors[result.status]
	if !ok {
		color = lipgloss.Color("8")
	}

	statusStyle := lipgloss.NewStyle().Foreground(color).Bold(true).Width(10)
	originStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	if index == model.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
		statusStyle = selected.Bold(true).Width(10)
		originStyle = selected
		detailStyle = selected
	}

	width := max(model.Width()-12, 20)
	origin := truncatePath(result.origin, width/2)
	detail := truncatePath(result.detail, width-len([]rune(origin))-2)

	_, _ = fmt.Fprintf(w, "%s  %s  %s",
		statusStyle.Render(result.status),
		originStyle.Render(origin),
		detailStyle.Render(detail),
	)
}

// runModel shows live progress of a transform run and, once the run ends,
// a browsable list of notable results.
type runModel struct {
	width     int
	height    int
	progress  progress.Model
	info      RunInfo
	completed int
	changed   int
	failed    int
	conflicts int
	workers   map[int]string
	summary   *m.Summary
	results   list.Model
	finished  bool
	aborted   bool
	cancel    func()
}

func newRunModel(cancel func()) runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	results := list.New([]list.Item{}, resultDelegate{}, 80, 20)
	results.SetShowPagination(false)
	results.SetShowHelp(false)
	results.SetShowTitle(false)
	results.SetShowStatusBar(false)
	results.FilterInput.Placeholder = "Filter results…"

	return runModel{
		width:    80,
		progress: prog,
		workers:  make(map[int]string),
		results:  results,
		cancel:   cancel,
	}
}

func (r runModel) Init() tea.Cmd {
	return nil
}

func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.progress.Width = min(max(msg.Width-8, 10), 60)
		r.results.SetSize(msg.Width-4, max(msg.Height-8, 5))

	case tea.KeyMsg:
		return r.handleKey(msg)

	case runInfoMsg:
		r.info = msg.info

	case fileStartedMsg:
		r.workers[msg.worker] = msg.origin

	case fileCompletedMsg:
		r = r.handleCompleted(msg.result)

	case providerErrorMsg:
		r.appendItems(resultItem{status: "provider", origin: msg.provider, detail: msg.err.Error()})

	case summaryMsg:
		summary := msg.summary
		r.summary = &summary

	case finishedMsg:
		r.finished = true
		r.workers = make(map[int]string)

		if len(r.results.Items()) == 0 {
			return r, tea.Quit
		}
	}

	return r, nil
}

func (r runModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return r.quit()
	case "q", "esc":
		if !r.finished || r.results.FilterState() != list.Filtering {
			return r.quit()
		}
	}

	if !r.finished {
		return r, nil
	}

	var cmd tea.Cmd

	r.results, cmd = r.results.Update(msg)

	return r, cmd
}

// quit leaves the program. A run still in progress is cancelled first.
func (r runModel) quit() (tea.Model, tea.Cmd) {
	if !r.finished {
		r.aborted = true

		if r.cancel != nil {
			r.cancel()
		}
	}

	return r, tea.Quit
}

func (r runModel) handleCompleted(result m.FileResult) runModel {
	r.completed++

	origin := result.Origin.String()
	for worker, current := range r.workers {
		if current == origin {
			delete(r.workers, worker)
		}
	}

	switch {
	case result.Failed():
		r.failed++
	case result.Changed:
		r.changed++
	}

	r.conflicts += len(result.Conflicts)
	r.appendItems(itemsForResult(result)...)

	return r
}

func (r *runModel) appendItems(items ...resultItem) {
	if len(items) == 0 {
		return
	}

	all := r.results.Items()
	for _, item := range items {
		all = append(all, item)
	}

	r.results.SetItems(all)
}

func (r runModel) percent() float64 {
	if r.info.Files == 0 {
		return 0
	}

	return float64(r.completed) / float64(r.info.Files)
}

func (r runModel) View() string {
	if r.finished {
		return r.viewResults()
	}

	return r.viewProgress()
}

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(1, 0, 0, 2)

var summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 0, 1, 2)

var accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(1, 0, 0, 2)

func accent(n int) string {
	return accentStyle.Render(fmt.Sprintf("%d", n))
}

func (r runModel) viewProgress() string {
	title := "Hendrix"
	if r.info.DryRun {
		title += " (dry run)"
	}

	line := fmt.Sprintf("Files: %s / %s  •  Workers: %s  •  Mappings: %s",
		accent(r.completed), accent(r.info.Files), accent(max(r.info.Threads, 1)), accent(r.info.Mappings))

	if r.info.ShardCount > 1 {
		line += fmt.Sprintf("  •  Shard: %s / %s", accent(r.info.ShardIndex), accent(r.info.ShardCount))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		summaryStyle.Render(line),
		lipgloss.NewStyle().Padding(0, 2).Render(r.progress.ViewAs(r.percent())),
		r.renderWorkers(),
		footerStyle.Render("Press q to abort"),
	)
}

func (r runModel) renderWorkers() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(1, 1, 0, 0).
		Width(max(r.width-4, 20))

	ids := make([]int, 0, len(r.workers))
	for id := range r.workers {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	lines := make([]string, 0, max(len(ids), 1))
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("Worker %d: %s", id, fileStyle.Render(truncatePath(r.workers[id], max(r.width-20, 10)))))
	}

	if len(lines) == 0 {
		lines = append(lines, "idle")
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r runModel) viewResults() string {
	line := fmt.Sprintf("Files: %s  •  Changed: %s  •  Failed: %s  •  Conflicts: %s",
		accent(r.completed), accent(r.changed), accent(r.failed), accent(r.conflicts))

	if r.summary != nil {
		line += fmt.Sprintf("  •  %s", r.summary.Duration.Round(time.Millisecond))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Hendrix results"),
		summaryStyle.Render(line),
		lipgloss.NewStyle().Padding(0, 2).Render(r.results.View()),
		footerStyle.Render("↑/k up • ↓/j down • / filter • q quit"),
	)
}

// truncatePath shortens s to width runes, keeping the tail which carries the
// class name.
func truncatePath(s string, width int) string {
	runes := []rune(s)

	switch {
	case width <= 0:
		return ""
	case len(runes) <= width:
		return s
	case width == 1:
		return "…"
	default:
		return "…" + string(runes[len(runes)-width+1:])
	}
}
