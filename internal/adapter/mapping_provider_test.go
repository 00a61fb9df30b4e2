package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

func TestParseManualMappings(t *testing.T) {
	input := `# generic overrides
c com.example.Box java.lang.String

f com/example/Box/value   java.lang.Integer
m com/example/Box/get()Ljava/lang/Object; java.util.List<java.lang.String>
`

	mappings, err := ParseManualMappings("mappings.txt", []byte(input))
	require.NoError(t, err)
	require.Len(t, mappings, 3)

	box := descriptor.ObjectType("com/example/Box")

	assert.True(t, mappings[0].Equal(m.NewClassMapping(box, descriptor.MustParseSourceRef("java.lang.String"))))
	assert.True(t, mappings[1].Equal(m.NewFieldMapping(box, "value", descriptor.MustParseSourceRef("java.lang.Integer"))))

	method, err := descriptor.ParseMethod("com/example/Box/get()Ljava/lang/Object;")
	require.NoError(t, err)
	assert.True(t, mappings[2].Equal(m.NewMethodMapping(method, descriptor.MustParseSourceRef("java.util.List<java.lang.String>"))))
}

func TestParseManualMappings_CRLF(t *testing.T) {
	mappings, err := ParseManualMappings("crlf.txt", []byte("c a.B java.lang.String\r\nc a.C java.lang.Long\r\n"))
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "a/C", mappings[1].Key())
}

func TestParseManualMappings_SyntheticClassNames(t *testing.T) {
	input := "c com.example.package-info java.lang.String\nm com/example/1Foo/test-name()V java.lang.Object\n"

	mappings, err := ParseManualMappings("synthetic.txt", []byte(input))
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "com/example/package-info", mappings[0].Key())
	assert.Equal(t, "com/example/1Foo/test-name()V", mappings[1].Key())
}

func TestParseManualMappings_InvalidLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
		text  string
	}{
		{name: "two tokens", input: "c com.example.Box\n", line: 1, text: "c com.example.Box"},
		{name: "four tokens", input: "c a.B java.lang.String extra\n", line: 1, text: "c a.B java.lang.String extra"},
		{name: "multi char kind", input: "\n\ncls a.B java.lang.String\n", line: 3, text: "cls a.B java.lang.String"},
		{name: "unknown kind", input: "c a.B java.lang.String\nx a.B java.lang.String", line: 2, text: "x a.B java.lang.String"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManualMappings("bad.txt", []byte(tc.input))
			require.Error(t, err)

			var lineErr *InvalidMappingLineError
			require.ErrorAs(t, err, &lineErr)
			assert.Equal(t, "bad.txt", lineErr.File)
			assert.Equal(t, tc.line, lineErr.Line)
			assert.Equal(t, tc.text, lineErr.Text)
		})
	}
}

func TestParseManualMappings_MalformedDescriptor(t *testing.T) {
	_, err := ParseManualMappings("bad.txt", []byte("m com/example/Box/get(Q)V java.lang.String\n"))
	require.Error(t, err)
	assert.True(t, descriptor.IsMalformed(err))
	assert.Contains(t, err.Error(), "bad.txt:1")

	_, err = ParseManualMappings("bad.txt", []byte("f Box java.lang.String\n"))
	require.Error(t, err)
	assert.True(t, descriptor.IsMalformed(err))
}

func TestManualMappingProvider(t *testing.T) {
	t.Run("loads once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mappings.txt")
		require.NoError(t, os.WriteFile(path, []byte("c a.B java.lang.String\n"), 0o644))

		p := NewManualMappingProvider(m.Path(path))
		assert.Equal(t, path, p.Name())

		first, err := p.Mappings()
		require.NoError(t, err)
		require.Len(t, first, 1)

		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		second, err := p.Mappings()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing file", func(t *testing.T) {
		p := NewManualMappingProvider(m.Path(filepath.Join(t.TempDir(), "absent.txt")))

		_, err := p.Mappings()
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
