package controller

import (
	"fmt"

	m "github.com/mouse-blink/hendrix/internal/model"
)

// Message types sent from the workflow to the Bubble Tea program.
type runInfoMsg struct {
	info RunInfo
}

type fileStartedMsg struct {
	origin string
	worker int
}

type fileCompletedMsg struct {
	result m.FileResult
}

type providerErrorMsg struct {
	provider string
	err      error
}

type summaryMsg struct {
	summary m.Summary
}

type finishedMsg struct{}

// resultItem is one row of the results list.
type resultItem struct {
	status string
	origin string
	detail string
}

func (r resultItem) FilterValue() string {
	return r.status + " " + r.origin + " " + r.detail
}

func itemsForResult(result m.FileResult) []resultItem {
	origin := result.Origin.String()

	if result.Err != nil {
		return []resultItem{{status: "failed", origin: origin, detail: result.Err.Error()}}
	}

	items := make([]resultItem, 0, len(result.Conflicts)+1)

	for _, c := range result.Conflicts {
		items = append(items, resultItem{
			status: "conflict",
			origin: origin,
			detail: fmt.Sprintf("%s %s: %s -> %s", c.Element, c.Name, c.Existing, c.Override),
		})
	}

	if result.Changed {
		items = append(items, resultItem{
			status: "changed",
			origin: origin,
			detail: fmt.Sprintf("%d override(s)", result.Applied),
		})
	}

	return items
}
