package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mouse-blink/hendrix/internal/descriptor"
)

func TestOrigin_String(t *testing.T) {
	assert.Equal(t, "out/Box.class", Origin{Path: "out/Box.class"}.String())
	assert.Equal(t, "lib.jar!/com/example/Box.class", Origin{Path: "lib.jar", Entry: "com/example/Box.class"}.String())
	assert.True(t, Origin{Path: "lib.jar", Entry: "A.class"}.InArchive())
	assert.False(t, Origin{Path: "A.class"}.InArchive())
}

func TestMappings(t *testing.T) {
	box := descriptor.ObjectType("com/example/Box")
	str := descriptor.MustParseSourceRef("java.lang.String")
	method := descriptor.NewMethod(box, "get", nil, descriptor.ObjectType("java/lang/Object"))

	t.Run("class", func(t *testing.T) {
		m := NewClassMapping(box, str)
		assert.Equal(t, KindClass, m.Kind())
		assert.Equal(t, "com/example/Box", m.Key())
		assert.Equal(t, "c com.example.Box java.lang.String", m.String())
		assert.True(t, m.Equal(NewClassMapping(descriptor.MustParseSourceRef("com.example.Box"), str)))
		assert.False(t, m.Equal(NewFieldMapping(box, "value", str)))
	})

	t.Run("field", func(t *testing.T) {
		m := NewFieldMapping(box, "value", str)
		assert.Equal(t, KindField, m.Kind())
		assert.Equal(t, "com/example/Box/value", m.Key())
		assert.Equal(t, "f com/example/Box/value java.lang.String", m.String())
		assert.False(t, m.Equal(NewFieldMapping(box, "other", str)))
	})

	t.Run("method", func(t *testing.T) {
		m := NewMethodMapping(method, str)
		assert.Equal(t, KindMethod, m.Kind())
		assert.Equal(t, "com/example/Box/get()Ljava/lang/Object;", m.Key())
		assert.Equal(t, "m com/example/Box/get()Ljava/lang/Object; java.lang.String", m.String())
		assert.True(t, m.Equal(NewMethodMapping(method, str)))
		assert.False(t, m.Equal(NewMethodMapping(method, descriptor.MustParseSourceRef("java.lang.Integer"))))
	})

	assert.Equal(t, "method", KindMethod.String())
}

func TestSummarize(t *testing.T) {
	results := []FileResult{
		{Changed: true, Applied: 2, Conflicts: []Conflict{{}}},
		{},
		{Skipped: true},
		{Err: errors.New("boom")},
	}

	s := Summarize(results, true, time.Second)
	assert.Equal(t, Summary{
		Total: 4, Changed: 1, Unchanged: 1, Skipped: 1, Failed: 1,
		Applied: 2, Conflicts: 1, DryRun: true, Duration: time.Second,
	}, s)
}
