// Package controller renders hendrix progress and results, either as plain
// text tables or as an interactive terminal UI.
package controller

import (
	m "github.com/mouse-blink/hendrix/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode   StartMode
	cancel func()
}

// WithListMode sets the UI to listing mode: inputs or mappings are shown
// once and the UI ends.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to transform mode with live progress.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithCancel registers a function the UI calls when the user aborts a run.
func WithCancel(cancel func()) StartOption {
	return func(c *StartConfig) {
		c.cancel = cancel
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeList}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// RunInfo describes a run before the first file starts.
type RunInfo struct {
	Files      int
	Threads    int
	Mappings   int
	DryRun     bool
	ShardIndex int
	ShardCount int
}

// UI defines the interface for displaying hendrix output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayInputs(suppliers []m.BytecodeSupplier)
	DisplayMappings(mappings []m.GenericMapping)
	DisplayProviderError(provider string, err error)
	DisplayRunInfo(info RunInfo)
	DisplayFileStarted(origin m.Origin, worker int)
	DisplayFileCompleted(result m.FileResult)
	DisplaySummary(summary m.Summary)
}
