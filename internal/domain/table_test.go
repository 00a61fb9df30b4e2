package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

func TestMappingTable(t *testing.T) {
	box := descriptor.ObjectType("com/example/Box")
	str := descriptor.MustParseSourceRef("java.lang.String")
	num := descriptor.MustParseSourceRef("java.lang.Integer")
	get := descriptor.NewMethod(box, "get", nil, descriptor.ObjectType("java/lang/Object"))

	table := NewMappingTable([]m.GenericMapping{
		m.NewClassMapping(box, str),
		m.NewFieldMapping(box, "value", str),
		m.NewMethodMapping(get, str),
		m.NewClassMapping(descriptor.ObjectType("a/A"), num),
	})

	t.Run("dispatches each kind to its own index", func(t *testing.T) {
		assert.Equal(t, 4, table.Len())

		class, ok := table.Class("com/example/Box")
		require.True(t, ok)
		assert.True(t, class.Generic().Equal(str))

		field, ok := table.Field("com/example/Box", "value")
		require.True(t, ok)
		assert.Equal(t, "value", field.FieldName)

		method, ok := table.Method(get)
		require.True(t, ok)
		assert.Equal(t, get.String(), method.Key())

		_, ok = table.Field("com/example/Box", "other")
		assert.False(t, ok)

		_, ok = table.Class("com/example/Missing")
		assert.False(t, ok)
	})

	t.Run("method lookup uses the full descriptor", func(t *testing.T) {
		overload := descriptor.NewMethod(box, "get", []descriptor.Type{descriptor.MustParse("I")}, descriptor.ObjectType("java/lang/Object"))

		_, ok := table.Method(overload)
		assert.False(t, ok)
	})

	t.Run("later mappings win", func(t *testing.T) {
		table := NewMappingTable([]m.GenericMapping{
			m.NewClassMapping(box, str),
			m.NewClassMapping(box, num),
		})

		assert.Equal(t, 1, table.Len())

		class, ok := table.Class("com/example/Box")
		require.True(t, ok)
		assert.True(t, class.Generic().Equal(num))
	})

	t.Run("lists mappings by kind then key", func(t *testing.T) {
		var kinds []m.MappingKind

		var keys []string

		for _, mapping := range table.Mappings() {
			kinds = append(kinds, mapping.Kind())
			keys = append(keys, mapping.Key())
		}

		assert.Equal(t, []m.MappingKind{m.KindClass, m.KindClass, m.KindField, m.KindMethod}, kinds)
		assert.Equal(t, []string{
			"a/A",
			"com/example/Box",
			"com/example/Box/value",
			"com/example/Box/get()Ljava/lang/Object;",
		}, keys)
	})

	t.Run("empty", func(t *testing.T) {
		empty := NewMappingTable(nil)
		assert.Equal(t, 0, empty.Len())
		assert.Empty(t, empty.Mappings())
	})
}
