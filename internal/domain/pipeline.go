package domain

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	m "github.com/mouse-blink/hendrix/internal/model"
)

// Observer is notified as files move through the pipeline. Calls may come
// from several workers at once.
type Observer interface {
	DisplayFileStarted(origin m.Origin, worker int)
	DisplayFileCompleted(result m.FileResult)
}

// PipelineOptions tune a pipeline run.
type PipelineOptions struct {
	Threads int
	// DryRun computes results without handing bytes to consumers.
	DryRun bool
}

// Pipeline decodes, transforms and re-encodes class files.
type Pipeline interface {
	Process(ctx context.Context, suppliers []m.BytecodeSupplier, table *MappingTable, opts PipelineOptions, observer Observer) ([]m.FileResult, error)
}

type pipeline struct{}

// NewPipeline creates a Pipeline.
func NewPipeline() Pipeline {
	return &pipeline{}
}

// Process runs every supplier through the transformer on a pool of
// opts.Threads workers. A failing file is recorded in its FileResult and
// does not stop the others. When ctx is cancelled no further files are
// started; the results of started files are returned with ctx.Err().
// Batched suppliers are committed once all started files are done.
func (p *pipeline) Process(
	ctx context.Context,
	suppliers []m.BytecodeSupplier,
	table *MappingTable,
	opts PipelineOptions,
	observer Observer,
) ([]m.FileResult, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}

	transformer := NewTransformer(table)

	workers := make(chan int, threads)
	for i := range threads {
		workers <- i
	}

	results := make([]m.FileResult, len(suppliers))
	started := make([]bool, len(suppliers))

	var g errgroup.Group

	g.SetLimit(threads)

	for i, supplier := range suppliers {
		if ctx.Err() != nil {
			break
		}

		started[i] = true

		g.Go(func() error {
			worker := <-workers
			defer func() { workers <- worker }()

			if observer != nil {
				observer.DisplayFileStarted(supplier.Origin(), worker)
			}

			results[i] = processOne(transformer, supplier, opts.DryRun)

			if observer != nil {
				observer.DisplayFileCompleted(results[i])
			}

			return nil
		})
	}

	_ = g.Wait()

	if !opts.DryRun {
		commitBatches(suppliers, started, results)
	}

	done := make([]m.FileResult, 0, len(results))

	for i, r := range results {
		if started[i] {
			done = append(done, r)
		}
	}

	return done, ctx.Err()
}

// commitBatches flushes every batch touched by a started supplier once. When
// a commit fails, each changed file of that batch is marked failed.
func commitBatches(suppliers []m.BytecodeSupplier, started []bool, results []m.FileResult) {
	var order []m.BytecodeBatch

	members := make(map[m.BytecodeBatch][]int)

	for i, supplier := range suppliers {
		batched, ok := supplier.(m.BatchedSupplier)
		if !ok || !started[i] || !supplier.ShouldBeProcessed() {
			continue
		}

		batch := batched.Batch()
		if _, seen := members[batch]; !seen {
			order = append(order, batch)
		}

		members[batch] = append(members[batch], i)
	}

	for _, batch := range order {
		err := batch.Commit()
		if err == nil {
			continue
		}

		for _, i := range members[batch] {
			if results[i].Err == nil && results[i].Changed {
				results[i].Err = fmt.Errorf("write %s: %w", results[i].Origin, err)
			}
		}
	}
}

func processOne(transformer *Transformer, supplier m.BytecodeSupplier, dryRun bool) m.FileResult {
	result := m.FileResult{Origin: supplier.Origin()}

	if !supplier.ShouldBeProcessed() {
		result.Skipped = true
		return result
	}

	data, err := supplier.Bytecode()
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", result.Origin, err)
		return result
	}

	unit, err := DecodeUnit(supplier, data)
	if err != nil {
		result.Err = fmt.Errorf("decode %s: %w", result.Origin, err)
		return result
	}

	result.Class = unit.Name

	transformation, err := transformer.Apply(unit)
	if err != nil {
		result.Err = fmt.Errorf("transform %s: %w", result.Origin, err)
		return result
	}

	result.Applied = transformation.Applied
	result.Conflicts = transformation.Conflicts

	out, err := unit.Class.Encode()
	if err != nil {
		result.Err = fmt.Errorf("encode %s: %w", result.Origin, err)
		return result
	}

	result.Changed = !bytes.Equal(data, out)

	if dryRun {
		return result
	}

	if err := supplier.Consumer().Accept(out); err != nil {
		result.Err = fmt.Errorf("write %s: %w", result.Origin, err)
	}

	return result
}
