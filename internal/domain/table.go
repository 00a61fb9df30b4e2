package domain

import (
	"sort"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

type fieldKey struct {
	class string
	field string
}

// MappingTable indexes mappings by the declaration they target. It is built
// once per run and only read afterwards, so concurrent lookups need no
// locking.
type MappingTable struct {
	classes map[string]m.ClassMapping
	fields  map[fieldKey]m.FieldMapping
	methods map[string]m.MethodMapping
}

// NewMappingTable indexes mappings. A later mapping for the same declaration
// replaces an earlier one.
func NewMappingTable(mappings []m.GenericMapping) *MappingTable {
	t := &MappingTable{
		classes: make(map[string]m.ClassMapping),
		fields:  make(map[fieldKey]m.FieldMapping),
		methods: make(map[string]m.MethodMapping),
	}

	for _, mapping := range mappings {
		switch mm := mapping.(type) {
		case m.ClassMapping:
			t.classes[mm.Key()] = mm
		case m.FieldMapping:
			t.fields[fieldKey{class: mm.Owner.InternalName(), field: mm.FieldName}] = mm
		case m.MethodMapping:
			t.methods[mm.Key()] = mm
		}
	}

	return t
}

// Class looks up the mapping for a class by internal name.
func (t *MappingTable) Class(internalName string) (m.ClassMapping, bool) {
	mapping, ok := t.classes[internalName]

	return mapping, ok
}

// Field looks up the mapping for field of class.
func (t *MappingTable) Field(class, field string) (m.FieldMapping, bool) {
	mapping, ok := t.fields[fieldKey{class: class, field: field}]

	return mapping, ok
}

// Method looks up the mapping for method.
func (t *MappingTable) Method(method descriptor.Method) (m.MethodMapping, bool) {
	mapping, ok := t.methods[method.String()]

	return mapping, ok
}

// Len returns the number of distinct declarations with a mapping.
func (t *MappingTable) Len() int {
	return len(t.classes) + len(t.fields) + len(t.methods)
}

// Mappings lists the effective mappings: classes, then fields, then methods,
// each sorted by key.
func (t *MappingTable) Mappings() []m.GenericMapping {
	out := make([]m.GenericMapping, 0, t.Len())

	start := len(out)
	for _, mapping := range t.classes {
		out = append(out, mapping)
	}

	sortByKey(out[start:])

	start = len(out)
	for _, mapping := range t.fields {
		out = append(out, mapping)
	}

	sortByKey(out[start:])

	start = len(out)
	for _, mapping := range t.methods {
		out = append(out, mapping)
	}

	sortByKey(out[start:])

	return out
}

func sortByKey(mappings []m.GenericMapping) {
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].Key() < mappings[j].Key()
	})
}
