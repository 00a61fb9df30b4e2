package model

import (
	"fmt"
	"time"
)

// Conflict is reported when a declaration already carries a signature that
// differs from the override. The override is applied regardless.
type Conflict struct {
	Origin   Origin
	Element  MappingKind
	Name     string // class internal name, "Class/field" or method key
	Existing string
	Override string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s %s: existing signature %q replaced by %q",
		c.Origin, c.Element, c.Name, c.Existing, c.Override)
}

// FileResult holds the outcome of transforming a single class file.
type FileResult struct {
	Origin    Origin
	Class     string // internal name, empty when decoding failed
	Applied   int    // number of overrides written
	Conflicts []Conflict
	Changed   bool // output bytes differ from input
	Skipped   bool // classpath-only input
	Err       error
}

// Failed reports whether the file could not be transformed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the results of a run.
type Summary struct {
	Total     int
	Changed   int
	Unchanged int
	Skipped   int
	Failed    int
	Applied   int
	Conflicts int
	DryRun    bool
	Duration  time.Duration
}

// Summarize folds file results into a Summary.
func Summarize(results []FileResult, dryRun bool, elapsed time.Duration) Summary {
	s := Summary{Total: len(results), DryRun: dryRun, Duration: elapsed}

	for _, r := range results {
		switch {
		case r.Failed():
			s.Failed++
		case r.Skipped:
			s.Skipped++
		case r.Changed:
			s.Changed++
		default:
			s.Unchanged++
		}

		s.Applied += r.Applied
		s.Conflicts += len(r.Conflicts)
	}

	return s
}
