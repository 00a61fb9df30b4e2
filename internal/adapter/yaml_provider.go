package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// mappingDocument is the YAML form of a mapping file.
type mappingDocument struct {
	Classes []struct {
		Name    string `yaml:"name"`
		Generic string `yaml:"generic"`
	} `yaml:"classes"`
	Fields []struct {
		Class   string `yaml:"class"`
		Name    string `yaml:"name"`
		Generic string `yaml:"generic"`
	} `yaml:"fields"`
	Methods []struct {
		Descriptor string `yaml:"descriptor"`
		Generic    string `yaml:"generic"`
	} `yaml:"methods"`
}

// YAMLMappingProvider reads mappings from a YAML document with classes,
// fields and methods lists.
type YAMLMappingProvider struct {
	path m.Path
	lazy lazyMappings
}

// NewYAMLMappingProvider creates a provider reading path.
func NewYAMLMappingProvider(path m.Path) *YAMLMappingProvider {
	return &YAMLMappingProvider{path: path}
}

// Name returns the file the provider reads.
func (p *YAMLMappingProvider) Name() string {
	return string(p.path)
}

// Mappings decodes the file on first use.
func (p *YAMLMappingProvider) Mappings() ([]m.GenericMapping, error) {
	return p.lazy.get(func() ([]m.GenericMapping, error) {
		data, err := os.ReadFile(string(p.path))
		if err != nil {
			return nil, fmt.Errorf("read mapping file: %w", err)
		}

		return ParseYAMLMappings(data)
	})
}

// ParseYAMLMappings decodes a YAML mapping document. Classes come first, then
// fields, then methods, each in document order.
func ParseYAMLMappings(data []byte) ([]m.GenericMapping, error) {
	var doc mappingDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode mapping yaml: %w", err)
	}

	var mappings []m.GenericMapping

	for i, c := range doc.Classes {
		class, err := descriptor.ParseSourceRef(c.Name)
		if err != nil {
			return nil, fmt.Errorf("classes[%d]: %w", i, err)
		}

		generic, err := descriptor.ParseSourceRef(c.Generic)
		if err != nil {
			return nil, fmt.Errorf("classes[%d]: %w", i, err)
		}

		mappings = append(mappings, m.NewClassMapping(class, generic))
	}

	for i, f := range doc.Fields {
		owner, err := descriptor.ParseSourceRef(f.Class)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}

		if f.Name == "" {
			return nil, fmt.Errorf("fields[%d]: missing field name", i)
		}

		generic, err := descriptor.ParseSourceRef(f.Generic)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}

		mappings = append(mappings, m.NewFieldMapping(owner, f.Name, generic))
	}

	for i, mm := range doc.Methods {
		method, err := descriptor.ParseMethod(mm.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("methods[%d]: %w", i, err)
		}

		generic, err := descriptor.ParseSourceRef(mm.Generic)
		if err != nil {
			return nil, fmt.Errorf("methods[%d]: %w", i, err)
		}

		mappings = append(mappings, m.NewMethodMapping(method, generic))
	}

	return mappings, nil
}
