package classfile

import (
	"bytes"
	"fmt"
	"math"
)

// Constant pool tags.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// payloadSizes holds the fixed payload length of every tag except Utf8.
var payloadSizes = map[uint8]int{
	TagInteger:            4,
	TagFloat:              4,
	TagLong:               8,
	TagDouble:             8,
	TagClass:              2,
	TagString:             2,
	TagFieldref:           4,
	TagMethodref:          4,
	TagInterfaceMethodref: 4,
	TagNameAndType:        4,
	TagMethodHandle:       3,
	TagMethodType:         2,
	TagDynamic:            4,
	TagInvokeDynamic:      4,
	TagModule:             2,
	TagPackage:            2,
}

// Constant is one constant pool entry. Data is the raw payload following the
// tag; for Utf8 entries it is the modified UTF-8 bytes without their length
// prefix.
type Constant struct {
	Tag  uint8
	Data []byte
}

// ConstantPool is the 1-based constant pool of a class file. Long and Double
// entries occupy two slots; the second slot is a zero Constant.
type ConstantPool struct {
	entries []Constant
}

// NewConstantPool returns an empty pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{entries: make([]Constant, 1)}
}

// Count is the constant_pool_count value: number of slots plus one.
func (p *ConstantPool) Count() int {
	return len(p.entries)
}

// Entry returns the constant at index.
func (p *ConstantPool) Entry(index uint16) (Constant, error) {
	if index == 0 || int(index) >= len(p.entries) || p.entries[index].Tag == 0 {
		return Constant{}, fmt.Errorf("constant pool index %d out of range", index)
	}

	return p.entries[index], nil
}

// Utf8 resolves a Utf8 entry to a Go string.
func (p *ConstantPool) Utf8(index uint16) (string, error) {
	c, err := p.Entry(index)
	if err != nil {
		return "", err
	}

	if c.Tag != TagUtf8 {
		return "", fmt.Errorf("constant pool index %d: expected Utf8, got tag %d", index, c.Tag)
	}

	return decodeModifiedUTF8(c.Data), nil
}

// ClassName resolves a Class entry to its internal name.
func (p *ConstantPool) ClassName(index uint16) (string, error) {
	c, err := p.Entry(index)
	if err != nil {
		return "", err
	}

	if c.Tag != TagClass {
		return "", fmt.Errorf("constant pool index %d: expected Class, got tag %d", index, c.Tag)
	}

	return p.Utf8(be16(c.Data))
}

// FindUtf8 returns the index of an existing Utf8 entry equal to s.
func (p *ConstantPool) FindUtf8(s string) (uint16, bool) {
	encoded := encodeModifiedUTF8(s)

	for i, c := range p.entries {
		if c.Tag == TagUtf8 && bytes.Equal(c.Data, encoded) {
			return uint16(i), true
		}
	}

	return 0, false
}

// AddUtf8 appends a Utf8 entry and returns its index.
func (p *ConstantPool) AddUtf8(s string) (uint16, error) {
	encoded := encodeModifiedUTF8(s)
	if len(encoded) > math.MaxUint16 {
		return 0, fmt.Errorf("utf8 constant of %d bytes exceeds the class file limit", len(encoded))
	}

	return p.add(Constant{Tag: TagUtf8, Data: encoded})
}

// EnsureUtf8 returns the index of a Utf8 entry equal to s, appending one
// only when none exists.
func (p *ConstantPool) EnsureUtf8(s string) (uint16, error) {
	if index, ok := p.FindUtf8(s); ok {
		return index, nil
	}

	return p.AddUtf8(s)
}

// AddClass appends a Class entry naming internalName.
func (p *ConstantPool) AddClass(internalName string) (uint16, error) {
	nameIndex, err := p.EnsureUtf8(internalName)
	if err != nil {
		return 0, err
	}

	return p.add(Constant{Tag: TagClass, Data: u16(nameIndex)})
}

func (p *ConstantPool) add(c Constant) (uint16, error) {
	if len(p.entries) >= math.MaxUint16 {
		return 0, fmt.Errorf("constant pool is full")
	}

	p.entries = append(p.entries, c)

	return uint16(len(p.entries) - 1), nil
}

func (p *ConstantPool) decode(r *reader) {
	count := int(r.u16())
	if count == 0 {
		r.fail(fmt.Errorf("constant pool count must be at least 1"))
		return
	}

	p.entries = make([]Constant, 1, count)

	for len(p.entries) < count && r.err == nil {
		tag := r.u8()

		var data []byte

		switch {
		case tag == TagUtf8:
			data = r.bytes(int(r.u16()))
		case payloadSizes[tag] > 0:
			data = r.bytes(payloadSizes[tag])
		default:
			r.fail(fmt.Errorf("constant pool index %d: unknown tag %d", len(p.entries), tag))
			return
		}

		p.entries = append(p.entries, Constant{Tag: tag, Data: data})

		if tag == TagLong || tag == TagDouble {
			p.entries = append(p.entries, Constant{})
		}
	}

	if len(p.entries) != count {
		r.fail(fmt.Errorf("constant pool: wide entry overruns count %d", count))
	}
}

func (p *ConstantPool) encode(w *writer) {
	w.u16(uint16(len(p.entries)))

	for _, c := range p.entries[1:] {
		if c.Tag == 0 {
			continue
		}

		w.u8(c.Tag)

		if c.Tag == TagUtf8 {
			w.u16(uint16(len(c.Data)))
		}

		w.bytes(c.Data)
	}
}
