// Package domain holds the hendrix core: the mapping table, the class file
// transformer, the worker pipeline and the workflows driving them.
package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/mouse-blink/hendrix/internal/adapter"
	"github.com/mouse-blink/hendrix/internal/classfile"
	"github.com/mouse-blink/hendrix/internal/controller"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// ErrFilesFailed is returned by Run when at least one file could not be
// transformed. The remaining files are still processed.
var ErrFilesFailed = errors.New("some class files failed")

// MappingArgs names the mapping sources.
type MappingArgs struct {
	Manual []m.Path
	YAML   []m.Path
}

// ListArgs names the inputs to enumerate.
type ListArgs struct {
	Inputs    []m.Path
	Classpath []m.Path
	// Exclude holds regular expressions matched against origins such as
	// "lib.jar!/com/example/Box.class". Matching class files are dropped.
	Exclude   []string
}

// RunArgs contains the arguments for a transform run.
type RunArgs struct {
	ListArgs
	MappingArgs
	Threads    int
	DryRun     bool
	Report     m.Path
	ShardIndex int
	ShardCount int
}

// ClassDump is the decoded form of one class file.
type ClassDump struct {
	Origin     m.Origin
	Class      *classfile.ClassFile
	Signatures map[string]string
}

// Workflow defines the hendrix operations.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(args ListArgs) error
	Mappings(args MappingArgs) error
	Dump(path m.Path) ([]ClassDump, error)
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	pipeline    Pipeline
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	pipeline Pipeline,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		pipeline:    pipeline,
	}
}

// Run builds the mapping table, enumerates the inputs and transforms them.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.ui.Start(controller.WithRunMode(), controller.WithCancel(cancel)); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	defer w.ui.Close()

	table := w.buildTable(args.MappingArgs)

	suppliers, err := w.suppliers(args.ListArgs)
	if err != nil {
		return err
	}

	suppliers = shardSuppliers(suppliers, args.ShardIndex, args.ShardCount)

	w.ui.DisplayRunInfo(controller.RunInfo{
		Files:      len(suppliers),
		Threads:    args.Threads,
		Mappings:   table.Len(),
		DryRun:     args.DryRun,
		ShardIndex: args.ShardIndex,
		ShardCount: args.ShardCount,
	})

	start := time.Now()

	results, runErr := w.pipeline.Process(ctx, suppliers, table, PipelineOptions{
		Threads: args.Threads,
		DryRun:  args.DryRun,
	}, w.ui)

	summary := m.Summarize(results, args.DryRun, time.Since(start))
	w.ui.DisplaySummary(summary)

	if args.Report != "" {
		if err := w.reportStore.SaveReport(args.Report, summary, results); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("run interrupted after %d of %d files: %w", len(results), len(suppliers), runErr)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Total)
	}

	return nil
}

// List shows the inputs a run would visit.
func (w *workflow) List(args ListArgs) error {
	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	defer w.ui.Close()

	suppliers, err := w.suppliers(args)
	if err != nil {
		return err
	}

	w.ui.DisplayInputs(suppliers)

	return nil
}

// Mappings shows the effective mapping table.
func (w *workflow) Mappings(args MappingArgs) error {
	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}

	defer w.ui.Close()

	w.ui.DisplayMappings(w.buildTable(args).Mappings())

	return nil
}

// Dump decodes every class file under path.
func (w *workflow) Dump(path m.Path) ([]ClassDump, error) {
	suppliers, err := w.fsAdapter.Get([]m.Path{path}, true)
	if err != nil {
		return nil, err
	}

	dumps := make([]ClassDump, 0, len(suppliers))

	for _, s := range suppliers {
		data, err := s.Bytecode()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Origin(), err)
		}

		unit, err := DecodeUnit(s, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Origin(), err)
		}

		signatures, err := collectSignatures(unit)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Origin(), err)
		}

		dumps = append(dumps, ClassDump{Origin: s.Origin(), Class: unit.Class, Signatures: signatures})
	}

	return dumps, nil
}

// buildTable loads every provider. A failing provider is reported and
// contributes no mappings.
func (w *workflow) buildTable(args MappingArgs) *MappingTable {
	providers := make([]adapter.MappingProvider, 0, len(args.Manual)+len(args.YAML))

	for _, path := range args.Manual {
		providers = append(providers, adapter.NewManualMappingProvider(path))
	}

	for _, path := range args.YAML {
		providers = append(providers, adapter.NewYAMLMappingProvider(path))
	}

	var all []m.GenericMapping

	for _, p := range providers {
		mappings, err := p.Mappings()
		if err != nil {
			w.ui.DisplayProviderError(p.Name(), err)
			continue
		}

		all = append(all, mappings...)
	}

	return NewMappingTable(all)
}

// suppliers enumerates inputs, then classpath entries not already listed as
// inputs.
func (w *workflow) suppliers(args ListArgs) ([]m.BytecodeSupplier, error) {
	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	inputs, err := w.fsAdapter.Get(args.Inputs, true)
	if err != nil {
		return nil, err
	}

	inputs = filterExcluded(inputs, exclude)

	if len(args.Classpath) == 0 {
		return inputs, nil
	}

	classpath, err := w.fsAdapter.Get(args.Classpath, false)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, s := range inputs {
		seen[s.Origin().String()] = struct{}{}
	}

	for _, s := range filterExcluded(classpath, exclude) {
		if _, ok := seen[s.Origin().String()]; !ok {
			inputs = append(inputs, s)
		}
	}

	return inputs, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	exclude := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		exclude = append(exclude, re)
	}

	return exclude, nil
}

func filterExcluded(suppliers []m.BytecodeSupplier, exclude []*regexp.Regexp) []m.BytecodeSupplier {
	if len(exclude) == 0 {
		return suppliers
	}

	kept := suppliers[:0]

	for _, s := range suppliers {
		origin := s.Origin().String()

		excluded := false
		for _, re := range exclude {
			if re.MatchString(origin) {
				excluded = true
				break
			}
		}

		if !excluded {
			kept = append(kept, s)
		}
	}

	return kept
}

// shardSuppliers keeps every count-th supplier starting at index.
func shardSuppliers(suppliers []m.BytecodeSupplier, index, count int) []m.BytecodeSupplier {
	if count <= 1 {
		return suppliers
	}

	var out []m.BytecodeSupplier

	for i, s := range suppliers {
		if i%count == index {
			out = append(out, s)
		}
	}

	return out
}

func collectSignatures(unit *ClassFileUnit) (map[string]string, error) {
	cf := unit.Class
	signatures := make(map[string]string)

	if sig, ok, err := cf.ClassSignature(); err != nil {
		return nil, err
	} else if ok {
		signatures[unit.Name] = sig
	}

	for _, kind := range []struct {
		members []classfile.Member
		method  bool
	}{{cf.Fields, false}, {cf.Methods, true}} {
		for i := range kind.members {
			member := &kind.members[i]

			sig, ok, err := cf.MemberSignature(member)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}

			name, err := cf.MemberName(*member)
			if err != nil {
				return nil, err
			}

			key := unit.Name + "/" + name
			if kind.method {
				desc, err := cf.MemberDescriptor(*member)
				if err != nil {
					return nil, err
				}

				key += desc
			}

			signatures[key] = sig
		}
	}

	return signatures, nil
}
