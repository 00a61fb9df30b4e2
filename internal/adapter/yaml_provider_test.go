package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/hendrix/internal/model"
)

const yamlMappings = `classes:
  - name: com.example.Box
    generic: java.lang.String
fields:
  - class: com.example.Box
    name: value
    generic: java.lang.Integer
methods:
  - descriptor: "com/example/Box/get()Ljava/lang/Object;"
    generic: java.lang.String
`

func TestParseYAMLMappings(t *testing.T) {
	mappings, err := ParseYAMLMappings([]byte(yamlMappings))
	require.NoError(t, err)
	require.Len(t, mappings, 3)

	assert.Equal(t, m.KindClass, mappings[0].Kind())
	assert.Equal(t, "com/example/Box", mappings[0].Key())
	assert.Equal(t, m.KindField, mappings[1].Kind())
	assert.Equal(t, "com/example/Box/value", mappings[1].Key())
	assert.Equal(t, m.KindMethod, mappings[2].Kind())
	assert.Equal(t, "Ljava/lang/String;", mappings[2].Generic().String())

	manual, err := ParseManualMappings("same.txt", []byte(
		"c com.example.Box java.lang.String\n"+
			"f com/example/Box/value java.lang.Integer\n"+
			"m com/example/Box/get()Ljava/lang/Object; java.lang.String\n"))
	require.NoError(t, err)

	for i := range manual {
		assert.Truef(t, manual[i].Equal(mappings[i]), "mapping %d differs between formats", i)
	}
}

func TestParseYAMLMappings_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":      "classes: [",
		"bad class":     "classes: [{name: 'a..b', generic: java.lang.String}]",
		"missing field": "fields: [{class: a.B, generic: java.lang.String}]",
		"bad method":    "methods: [{descriptor: 'nope', generic: java.lang.String}]",
		"bad generic":   "classes: [{name: a.B, generic: 'java.lang.<'}]",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAMLMappings([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestYAMLMappingProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlMappings), 0o644))

	p := NewYAMLMappingProvider(m.Path(path))
	assert.Equal(t, path, p.Name())

	mappings, err := p.Mappings()
	require.NoError(t, err)
	assert.Len(t, mappings, 3)
}
