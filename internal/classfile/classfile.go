// Package classfile decodes and re-encodes JVM class files losslessly. Only
// the pieces needed to inspect names and rewrite Signature attributes are
// interpreted; everything else is carried as raw bytes.
package classfile

import (
	"errors"
	"fmt"
)

// Magic is the class file magic number.
const Magic = 0xCAFEBABE

const signatureAttribute = "Signature"

// ErrBadMagic is returned by Decode for input that is not a class file.
var ErrBadMagic = errors.New("not a class file: bad magic")

// ClassFile is the structural form of a .class file.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         *ConstantPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []Member
	Methods      []Member
	Attributes   []Attribute
}

// Member is a field_info or method_info structure.
type Member struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Attribute is a raw attribute_info structure.
type Attribute struct {
	NameIndex uint16
	Data      []byte
}

// Decode parses class file bytes.
func Decode(data []byte) (*ClassFile, error) {
	r := &reader{buf: data}

	if r.u32() != Magic {
		if r.err != nil {
			return nil, fmt.Errorf("decode class file: %w", r.err)
		}

		return nil, ErrBadMagic
	}

	cf := &ClassFile{Pool: NewConstantPool()}
	cf.MinorVersion = r.u16()
	cf.MajorVersion = r.u16()
	cf.Pool.decode(r)
	cf.AccessFlags = r.u16()
	cf.ThisClass = r.u16()
	cf.SuperClass = r.u16()

	interfaceCount := int(r.u16())
	for i := 0; i < interfaceCount && r.err == nil; i++ {
		cf.Interfaces = append(cf.Interfaces, r.u16())
	}

	cf.Fields = decodeMembers(r)
	cf.Methods = decodeMembers(r)
	cf.Attributes = decodeAttributes(r)

	if r.err != nil {
		return nil, fmt.Errorf("decode class file: %w", r.err)
	}

	if r.pos != len(data) {
		return nil, fmt.Errorf("decode class file: %d trailing bytes", len(data)-r.pos)
	}

	return cf, nil
}

func decodeMembers(r *reader) []Member {
	count := int(r.u16())
	members := make([]Member, 0, count)

	for i := 0; i < count && r.err == nil; i++ {
		members = append(members, Member{
			AccessFlags:     r.u16(),
			NameIndex:       r.u16(),
			DescriptorIndex: r.u16(),
			Attributes:      decodeAttributes(r),
		})
	}

	return members
}

func decodeAttributes(r *reader) []Attribute {
	count := int(r.u16())
	attrs := make([]Attribute, 0, count)

	for i := 0; i < count && r.err == nil; i++ {
		nameIndex := r.u16()
		length := r.u32()
		attrs = append(attrs, Attribute{NameIndex: nameIndex, Data: r.bytes(int(length))})
	}

	return attrs
}

// Encode serializes the class file. Decoding and encoding an untouched class
// yields the original bytes.
func (cf *ClassFile) Encode() ([]byte, error) {
	if len(cf.Interfaces) > 0xFFFF || len(cf.Fields) > 0xFFFF || len(cf.Methods) > 0xFFFF {
		return nil, fmt.Errorf("encode class file: table exceeds 65535 entries")
	}

	w := &writer{}
	w.u32(Magic)
	w.u16(cf.MinorVersion)
	w.u16(cf.MajorVersion)
	cf.Pool.encode(w)
	w.u16(cf.AccessFlags)
	w.u16(cf.ThisClass)
	w.u16(cf.SuperClass)

	w.u16(uint16(len(cf.Interfaces)))
	for _, iface := range cf.Interfaces {
		w.u16(iface)
	}

	encodeMembers(w, cf.Fields)
	encodeMembers(w, cf.Methods)
	encodeAttributes(w, cf.Attributes)

	return w.buf, nil
}

func encodeMembers(w *writer, members []Member) {
	w.u16(uint16(len(members)))

	for _, m := range members {
		w.u16(m.AccessFlags)
		w.u16(m.NameIndex)
		w.u16(m.DescriptorIndex)
		encodeAttributes(w, m.Attributes)
	}
}

func encodeAttributes(w *writer, attrs []Attribute) {
	w.u16(uint16(len(attrs)))

	for _, a := range attrs {
		w.u16(a.NameIndex)
		w.u32(uint32(len(a.Data)))
		w.bytes(a.Data)
	}
}

// Name returns the internal name of the class, e.g. "com/example/Box".
func (cf *ClassFile) Name() (string, error) {
	return cf.Pool.ClassName(cf.ThisClass)
}

// MemberName resolves the name of a field or method.
func (cf *ClassFile) MemberName(m Member) (string, error) {
	return cf.Pool.Utf8(m.NameIndex)
}

// MemberDescriptor resolves the raw descriptor of a field or method.
func (cf *ClassFile) MemberDescriptor(m Member) (string, error) {
	return cf.Pool.Utf8(m.DescriptorIndex)
}

// ClassSignature returns the class-level Signature attribute, if present.
func (cf *ClassFile) ClassSignature() (string, bool, error) {
	return cf.signatureOf(cf.Attributes)
}

// SetClassSignature sets or adds the class-level Signature attribute.
func (cf *ClassFile) SetClassSignature(sig string) error {
	attrs, err := cf.withSignature(cf.Attributes, sig)
	if err != nil {
		return err
	}

	cf.Attributes = attrs

	return nil
}

// MemberSignature returns the Signature attribute of a field or method.
func (cf *ClassFile) MemberSignature(m *Member) (string, bool, error) {
	return cf.signatureOf(m.Attributes)
}

// SetMemberSignature sets or adds the Signature attribute of a field or
// method.
func (cf *ClassFile) SetMemberSignature(m *Member, sig string) error {
	attrs, err := cf.withSignature(m.Attributes, sig)
	if err != nil {
		return err
	}

	m.Attributes = attrs

	return nil
}

// isSignature compares the resolved attribute name, since a constant pool
// may hold more than one "Signature" entry.
func (cf *ClassFile) isSignature(a Attribute) bool {
	name, err := cf.Pool.Utf8(a.NameIndex)
	return err == nil && name == signatureAttribute
}

func (cf *ClassFile) signatureOf(attrs []Attribute) (string, bool, error) {
	for _, a := range attrs {
		if !cf.isSignature(a) {
			continue
		}

		if len(a.Data) != 2 {
			return "", false, fmt.Errorf("signature attribute has length %d, want 2", len(a.Data))
		}

		sig, err := cf.Pool.Utf8(be16(a.Data))
		if err != nil {
			return "", false, fmt.Errorf("signature attribute: %w", err)
		}

		return sig, true, nil
	}

	return "", false, nil
}

// withSignature points an existing Signature attribute at sig, or appends a
// new one. Constant pool entries are reused when they already exist.
func (cf *ClassFile) withSignature(attrs []Attribute, sig string) ([]Attribute, error) {
	sigIndex, err := cf.Pool.EnsureUtf8(sig)
	if err != nil {
		return nil, fmt.Errorf("set signature: %w", err)
	}

	for i := range attrs {
		if cf.isSignature(attrs[i]) {
			attrs[i].Data = u16(sigIndex)
			return attrs, nil
		}
	}

	nameIndex, err := cf.Pool.EnsureUtf8(signatureAttribute)
	if err != nil {
		return nil, fmt.Errorf("set signature: %w", err)
	}

	return append(attrs, Attribute{NameIndex: nameIndex, Data: u16(sigIndex)}), nil
}
