package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/hendrix/internal/classfile"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// memSupplier keeps class bytes in memory and records every write.
type memSupplier struct {
	origin  m.Origin
	process bool

	mu      sync.Mutex
	data    []byte
	writes  int
	readErr error
}

func newMemSupplier(name string, data []byte) *memSupplier {
	return &memSupplier{origin: m.Origin{Path: m.Path(name)}, data: data, process: true}
}

func (s *memSupplier) Origin() m.Origin { return s.origin }

func (s *memSupplier) Bytecode() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr != nil {
		return nil, s.readErr
	}

	return append([]byte(nil), s.data...), nil
}

func (s *memSupplier) ShouldBeProcessed() bool { return s.process }

func (s *memSupplier) Consumer() m.BytecodeConsumer { return memConsumer{s} }

func (s *memSupplier) bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data
}

func (s *memSupplier) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writes
}

type memConsumer struct{ s *memSupplier }

func (c memConsumer) Accept(data []byte) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.writes++
	c.s.data = append([]byte(nil), data...)

	return nil
}

// memBatch counts commits of the writes buffered by its batchedSupplier members.
type memBatch struct {
	mu      sync.Mutex
	commits int
	err     error
}

func (b *memBatch) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.commits++

	return b.err
}

type batchedSupplier struct {
	*memSupplier
	batch *memBatch
}

func (s batchedSupplier) Batch() m.BytecodeBatch { return s.batch }

var errRead = errors.New("disk on fire")

type classSpec struct {
	name      string
	signature string
	fields    []string
	methods   [][2]string // name, descriptor
}

func buildClass(t *testing.T, spec classSpec) []byte {
	t.Helper()

	cf, err := classfile.New(spec.name, "java/lang/Object")
	require.NoError(t, err)

	if spec.signature != "" {
		require.NoError(t, cf.SetClassSignature(spec.signature))
	}

	for _, f := range spec.fields {
		_, err := cf.AddField(classfile.AccPublic, f, "Ljava/lang/Object;")
		require.NoError(t, err)
	}

	for _, mm := range spec.methods {
		_, err := cf.AddMethod(classfile.AccPublic, mm[0], mm[1])
		require.NoError(t, err)
	}

	data, err := cf.Encode()
	require.NoError(t, err)

	return data
}

func decodeClass(t *testing.T, data []byte) *classfile.ClassFile {
	t.Helper()

	cf, err := classfile.Decode(data)
	require.NoError(t, err)

	return cf
}

// recordingObserver counts pipeline notifications.
type recordingObserver struct {
	mu        sync.Mutex
	started   []m.Origin
	completed []m.FileResult
	workers   map[int]bool
}

func (o *recordingObserver) DisplayFileStarted(origin m.Origin, worker int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.workers == nil {
		o.workers = make(map[int]bool)
	}

	o.workers[worker] = true
	o.started = append(o.started, origin)
}

func (o *recordingObserver) DisplayFileCompleted(result m.FileResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.completed = append(o.completed, result)
}
