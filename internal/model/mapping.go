package model

import (
	"fmt"

	"github.com/mouse-blink/hendrix/internal/descriptor"
)

// MappingKind is the single character tag of a mapping in the manual format.
type MappingKind byte

const (
	// KindClass marks a class header override.
	KindClass MappingKind = 'c'
	// KindField marks a field override.
	KindField MappingKind = 'f'
	// KindMethod marks a method override.
	KindMethod MappingKind = 'm'
)

func (k MappingKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	default:
		return fmt.Sprintf("kind(%c)", byte(k))
	}
}

// GenericMapping is a generic type override for one declaration. The set of
// implementations is closed: ClassMapping, FieldMapping and MethodMapping.
type GenericMapping interface {
	Kind() MappingKind
	// Generic is the override type written into the Signature attribute.
	Generic() descriptor.Type
	// Key is the lookup key of the declaration the mapping targets.
	Key() string
	Equal(other GenericMapping) bool
	// String renders the mapping as a line of the manual mapping format.
	String() string

	sealed()
}

// ClassMapping overrides the signature of a class header.
type ClassMapping struct {
	GenericType descriptor.Type
	ClassName   descriptor.Type
}

// NewClassMapping creates a ClassMapping for className.
func NewClassMapping(className, generic descriptor.Type) ClassMapping {
	return ClassMapping{GenericType: generic, ClassName: className}
}

func (m ClassMapping) Kind() MappingKind        { return KindClass }
func (m ClassMapping) Generic() descriptor.Type { return m.GenericType }
func (m ClassMapping) Key() string              { return m.ClassName.InternalName() }
func (ClassMapping) sealed()                    {}

func (m ClassMapping) Equal(other GenericMapping) bool {
	o, ok := other.(ClassMapping)

	return ok && m.ClassName.Equal(o.ClassName) && m.GenericType.Equal(o.GenericType)
}

func (m ClassMapping) String() string {
	return fmt.Sprintf("c %s %s", m.ClassName.SourceRef(), m.GenericType.SourceRef())
}

// FieldMapping overrides the signature of a field.
type FieldMapping struct {
	GenericType descriptor.Type
	Owner       descriptor.Type
	FieldName   string
}

// NewFieldMapping creates a FieldMapping for field name of owner.
func NewFieldMapping(owner descriptor.Type, name string, generic descriptor.Type) FieldMapping {
	return FieldMapping{GenericType: generic, Owner: owner, FieldName: name}
}

func (m FieldMapping) Kind() MappingKind        { return KindField }
func (m FieldMapping) Generic() descriptor.Type { return m.GenericType }
func (m FieldMapping) Key() string              { return m.Owner.InternalName() + "/" + m.FieldName }
func (FieldMapping) sealed()                    {}

func (m FieldMapping) Equal(other GenericMapping) bool {
	o, ok := other.(FieldMapping)

	return ok && m.FieldName == o.FieldName && m.Owner.Equal(o.Owner) && m.GenericType.Equal(o.GenericType)
}

func (m FieldMapping) String() string {
	return fmt.Sprintf("f %s %s", m.Key(), m.GenericType.SourceRef())
}

// MethodMapping overrides the signature of a method. The key embeds owner,
// name, argument and return types.
type MethodMapping struct {
	GenericType descriptor.Type
	Method      descriptor.Method
}

// NewMethodMapping creates a MethodMapping for method.
func NewMethodMapping(method descriptor.Method, generic descriptor.Type) MethodMapping {
	return MethodMapping{GenericType: generic, Method: method}
}

func (m MethodMapping) Kind() MappingKind        { return KindMethod }
func (m MethodMapping) Generic() descriptor.Type { return m.GenericType }
func (m MethodMapping) Key() string              { return m.Method.String() }
func (MethodMapping) sealed()                    {}

func (m MethodMapping) Equal(other GenericMapping) bool {
	o, ok := other.(MethodMapping)

	return ok && m.Method.Equal(o.Method) && m.GenericType.Equal(o.GenericType)
}

func (m MethodMapping) String() string {
	return fmt.Sprintf("m %s %s", m.Key(), m.GenericType.SourceRef())
}
