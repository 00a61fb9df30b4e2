package adapter

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/mouse-blink/hendrix/internal/archive"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// snapshot remembers the bytes handed to the pipeline so consumers can skip
// writes that would not change anything.
type snapshot struct {
	mu   sync.Mutex
	data []byte
	read bool
}

func (s *snapshot) remember(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.read = true
}

func (s *snapshot) unchanged(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read && bytes.Equal(s.data, data)
}

// FileBytecode is a loose .class file on disk.
type FileBytecode struct {
	path    m.Path
	process bool
	seen    snapshot
}

// NewFileBytecode creates a supplier for the class file at path.
func NewFileBytecode(path m.Path, process bool) *FileBytecode {
	return &FileBytecode{path: path, process: process}
}

// Origin returns the file path.
func (f *FileBytecode) Origin() m.Origin {
	return m.Origin{Path: f.path}
}

// Bytecode reads the file.
func (f *FileBytecode) Bytecode() ([]byte, error) {
	data, err := os.ReadFile(string(f.path))
	if err != nil {
		return nil, err
	}

	f.seen.remember(data)

	return data, nil
}

// ShouldBeProcessed is false for classpath inputs.
func (f *FileBytecode) ShouldBeProcessed() bool {
	return f.process
}

// Consumer overwrites the file in place.
func (f *FileBytecode) Consumer() m.BytecodeConsumer {
	return fileConsumer{f}
}

type fileConsumer struct {
	f *FileBytecode
}

func (c fileConsumer) Accept(data []byte) error {
	if c.f.seen.unchanged(data) {
		return nil
	}

	info, err := os.Stat(string(c.f.path))
	if err != nil {
		return err
	}

	return os.WriteFile(string(c.f.path), data, info.Mode().Perm())
}

// replaceEntries rewrites an archive with a set of replaced members.
var replaceEntries = archive.ReplaceEntries

// ArchiveBatch collects the rewritten members of one archive so the archive
// is copied once per run instead of once per member.
type ArchiveBatch struct {
	path m.Path

	mu      sync.Mutex
	pending map[string][]byte
}

// NewArchiveBatch creates an empty batch for the archive at path.
func NewArchiveBatch(path m.Path) *ArchiveBatch {
	return &ArchiveBatch{path: path, pending: make(map[string][]byte)}
}

// Entry creates a supplier for a member of the batch's archive.
func (b *ArchiveBatch) Entry(entry string, process bool) *EntryBytecode {
	return &EntryBytecode{archive: b.path, entry: entry, process: process, batch: b}
}

func (b *ArchiveBatch) put(entry string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending[entry] = data
}

// Commit writes every buffered member with a single archive rewrite. A batch
// with nothing pending leaves the archive untouched.
func (b *ArchiveBatch) Commit() error {
	b.mu.Lock()
	pending := b.pending
	b.pending = make(map[string][]byte)
	b.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	return replaceEntries(string(b.path), pending)
}

// EntryBytecode is a .class member of a jar or zip archive.
type EntryBytecode struct {
	archive m.Path
	entry   string
	process bool
	seen    snapshot
	batch   *ArchiveBatch
}

// NewEntryBytecode creates a supplier for entry inside the archive at path,
// with a batch of its own.
func NewEntryBytecode(path m.Path, entry string, process bool) *EntryBytecode {
	return NewArchiveBatch(path).Entry(entry, process)
}

// Origin returns the archive path and entry name.
func (e *EntryBytecode) Origin() m.Origin {
	return m.Origin{Path: e.archive, Entry: e.entry}
}

// Bytecode reads the entry from the archive.
func (e *EntryBytecode) Bytecode() ([]byte, error) {
	data, ok, err := archive.ReadEntry(string(e.archive), e.entry)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("entry %s not found in %s", e.entry, e.archive)
	}

	e.seen.remember(data)

	return data, nil
}

// ShouldBeProcessed is false for classpath inputs.
func (e *EntryBytecode) ShouldBeProcessed() bool {
	return e.process
}

// Consumer buffers the entry in the archive's batch.
func (e *EntryBytecode) Consumer() m.BytecodeConsumer {
	return entryConsumer{e}
}

// Batch returns the batch that writes the entry back.
func (e *EntryBytecode) Batch() m.BytecodeBatch {
	return e.batch
}

type entryConsumer struct {
	e *EntryBytecode
}

func (c entryConsumer) Accept(data []byte) error {
	if c.e.seen.unchanged(data) {
		return nil
	}

	c.e.batch.put(c.e.entry, data)

	return nil
}
