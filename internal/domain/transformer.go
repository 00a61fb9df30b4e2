package domain

import (
	"fmt"

	"github.com/mouse-blink/hendrix/internal/classfile"
	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// ClassFileUnit is a decoded class file paired with the supplier it came
// from. It lives for the duration of one file's transform.
type ClassFileUnit struct {
	Supplier m.BytecodeSupplier
	Class    *classfile.ClassFile
	Name     string
}

// DecodeUnit decodes data read from supplier.
func DecodeUnit(supplier m.BytecodeSupplier, data []byte) (*ClassFileUnit, error) {
	cf, err := classfile.Decode(data)
	if err != nil {
		return nil, err
	}

	name, err := cf.Name()
	if err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}

	return &ClassFileUnit{Supplier: supplier, Class: cf, Name: name}, nil
}

// Transformer applies a MappingTable to class files.
type Transformer struct {
	table *MappingTable
}

// NewTransformer creates a Transformer reading table.
func NewTransformer(table *MappingTable) *Transformer {
	return &Transformer{table: table}
}

// Transformation is what Apply did to a unit.
type Transformation struct {
	Applied   int
	Conflicts []m.Conflict
}

// Apply overrides the signatures of the class header, then each field, then
// each method, in declaration order.
func (t *Transformer) Apply(unit *ClassFileUnit) (Transformation, error) {
	var out Transformation

	cf := unit.Class
	origin := unit.Supplier.Origin()

	if mapping, ok := t.table.Class(unit.Name); ok {
		existing, _, err := cf.ClassSignature()
		if err != nil {
			return out, fmt.Errorf("class %s: %w", unit.Name, err)
		}

		if err := cf.SetClassSignature(mapping.Generic().String()); err != nil {
			return out, fmt.Errorf("class %s: %w", unit.Name, err)
		}

		out.record(origin, m.KindClass, unit.Name, existing, mapping.Generic())
	}

	for i := range cf.Fields {
		field := &cf.Fields[i]

		name, err := cf.MemberName(*field)
		if err != nil {
			return out, fmt.Errorf("field %d: %w", i, err)
		}

		mapping, ok := t.table.Field(unit.Name, name)
		if !ok {
			continue
		}

		if err := t.override(cf, field, &out, origin, m.KindField, unit.Name+"/"+name, mapping.Generic()); err != nil {
			return out, err
		}
	}

	for i := range cf.Methods {
		method := &cf.Methods[i]

		key, ok, err := methodKey(cf, unit.Name, *method)
		if err != nil {
			return out, fmt.Errorf("method %d: %w", i, err)
		}

		if !ok {
			continue
		}

		mapping, found := t.table.Method(key)
		if !found {
			continue
		}

		if err := t.override(cf, method, &out, origin, m.KindMethod, key.String(), mapping.Generic()); err != nil {
			return out, err
		}
	}

	return out, nil
}

func (t *Transformer) override(
	cf *classfile.ClassFile,
	member *classfile.Member,
	out *Transformation,
	origin m.Origin,
	kind m.MappingKind,
	name string,
	generic descriptor.Type,
) error {
	existing, _, err := cf.MemberSignature(member)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, name, err)
	}

	if err := cf.SetMemberSignature(member, generic.String()); err != nil {
		return fmt.Errorf("%s %s: %w", kind, name, err)
	}

	out.record(origin, kind, name, existing, generic)

	return nil
}

func (out *Transformation) record(origin m.Origin, kind m.MappingKind, name, existing string, generic descriptor.Type) {
	out.Applied++

	if !conflicts(existing, generic) {
		return
	}

	out.Conflicts = append(out.Conflicts, m.Conflict{
		Origin:   origin,
		Element:  kind,
		Name:     name,
		Existing: existing,
		Override: generic.String(),
	})
}

// conflicts reports whether an existing signature disagrees with the
// override. Signatures outside the descriptor grammar always disagree.
func conflicts(existing string, generic descriptor.Type) bool {
	if existing == "" {
		return false
	}

	parsed, err := descriptor.Parse(existing)
	if err != nil {
		return true
	}

	return !parsed.Equal(generic)
}

// methodKey builds the lookup key of a declared method. ok is false when the
// raw descriptor is outside the grammar; such methods cannot be mapped.
func methodKey(cf *classfile.ClassFile, owner string, method classfile.Member) (descriptor.Method, bool, error) {
	name, err := cf.MemberName(method)
	if err != nil {
		return descriptor.Method{}, false, err
	}

	raw, err := cf.MemberDescriptor(method)
	if err != nil {
		return descriptor.Method{}, false, err
	}

	key, err := descriptor.MethodFromClassFile(owner, name, raw)
	if err != nil {
		return descriptor.Method{}, false, nil
	}

	return key, true, nil
}
