// Package model defines the records shared by the hendrix layers: where
// class bytes come from and go to, the generic overrides to apply, and the
// per-file outcome of a run.
package model

// Path represents a file system path.
type Path string

// Origin names a unit of class bytes. Entry is empty for loose .class files
// and holds the member name for archive entries.
type Origin struct {
	Path  Path
	Entry string
}

// InArchive reports whether the origin is an archive member.
func (o Origin) InArchive() bool {
	return o.Entry != ""
}

// String renders the origin as "lib.jar!/com/example/Box.class" for archive
// members and as the plain path otherwise.
func (o Origin) String() string {
	if o.Entry == "" {
		return string(o.Path)
	}

	return string(o.Path) + "!/" + o.Entry
}

// BytecodeSupplier yields the bytes of one class file and the consumer its
// rewritten bytes go to.
type BytecodeSupplier interface {
	Origin() Origin
	Bytecode() ([]byte, error)
	// ShouldBeProcessed is false for classpath-only inputs that are read
	// but never rewritten.
	ShouldBeProcessed() bool
	Consumer() BytecodeConsumer
}

// BytecodeConsumer stores rewritten class bytes.
type BytecodeConsumer interface {
	Accept(data []byte) error
}

// BytecodeBatch holds writes buffered by several consumers until Commit.
type BytecodeBatch interface {
	Commit() error
}

// BatchedSupplier is a BytecodeSupplier whose consumer buffers into a batch
// shared with other suppliers, such as the members of one archive. The
// pipeline commits every batch once after the last file is processed.
type BatchedSupplier interface {
	BytecodeSupplier
	Batch() BytecodeBatch
}
