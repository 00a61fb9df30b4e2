package adapter

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/hendrix/internal/model"
)

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(path m.Path, summary m.Summary, results []m.FileResult) error
	LoadReport(path m.Path) (Report, error)
}

// Report is the YAML document written after a run.
type Report struct {
	Summary ReportSummary `yaml:"summary"`
	Files   []ReportFile  `yaml:"files"`
}

// ReportSummary is the serialized form of model.Summary.
type ReportSummary struct {
	Total     int    `yaml:"total"`
	Changed   int    `yaml:"changed"`
	Unchanged int    `yaml:"unchanged"`
	Skipped   int    `yaml:"skipped"`
	Failed    int    `yaml:"failed"`
	Applied   int    `yaml:"applied"`
	Conflicts int    `yaml:"conflicts"`
	DryRun    bool   `yaml:"dry_run"`
	Duration  string `yaml:"duration"`
}

// ReportFile is the serialized form of model.FileResult.
type ReportFile struct {
	Origin    string           `yaml:"origin"`
	Class     string           `yaml:"class,omitempty"`
	Status    string           `yaml:"status"`
	Applied   int              `yaml:"applied,omitempty"`
	Conflicts []ReportConflict `yaml:"conflicts,omitempty"`
	Error     string           `yaml:"error,omitempty"`
}

// ReportConflict is the serialized form of model.Conflict.
type ReportConflict struct {
	Element  string `yaml:"element"`
	Name     string `yaml:"name"`
	Existing string `yaml:"existing"`
	Override string `yaml:"override"`
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveReport(path m.Path, summary m.Summary, results []m.FileResult) error {
	report := Report{
		Summary: ReportSummary{
			Total:     summary.Total,
			Changed:   summary.Changed,
			Unchanged: summary.Unchanged,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
			Applied:   summary.Applied,
			Conflicts: summary.Conflicts,
			DryRun:    summary.DryRun,
			Duration:  summary.Duration.Round(time.Millisecond).String(),
		},
		Files: make([]ReportFile, 0, len(results)),
	}

	for _, r := range results {
		file := ReportFile{
			Origin:  r.Origin.String(),
			Class:   r.Class,
			Status:  fileStatus(r),
			Applied: r.Applied,
		}

		if r.Err != nil {
			file.Error = r.Err.Error()
		}

		for _, c := range r.Conflicts {
			file.Conflicts = append(file.Conflicts, ReportConflict{
				Element:  c.Element.String(),
				Name:     c.Name,
				Existing: c.Existing,
				Override: c.Override,
			})
		}

		report.Files = append(report.Files, file)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (rs *reportStore) LoadReport(path m.Path) (Report, error) {
	var report Report

	data, err := os.ReadFile(string(path))
	if err != nil {
		return report, fmt.Errorf("read report: %w", err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

func fileStatus(r m.FileResult) string {
	switch {
	case r.Failed():
		return "failed"
	case r.Skipped:
		return "skipped"
	case r.Changed:
		return "changed"
	default:
		return "unchanged"
	}
}
