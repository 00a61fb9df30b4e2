package adapter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// MappingProvider produces generic mappings from some source. Providers load
// lazily on the first call to Mappings and return the cached result after.
type MappingProvider interface {
	Name() string
	Mappings() ([]m.GenericMapping, error)
}

// InvalidMappingLineError reports a manual mapping line that is not
// "<kind> <key> <generic>" with a single character kind.
type InvalidMappingLineError struct {
	File string
	Line int
	Text string
}

func (e *InvalidMappingLineError) Error() string {
	return fmt.Sprintf("%s:%d: invalid mapping line %q: want \"<c|f|m> <key> <generic>\"", e.File, e.Line, e.Text)
}

type lazyMappings struct {
	once     sync.Once
	mappings []m.GenericMapping
	err      error
}

func (l *lazyMappings) get(load func() ([]m.GenericMapping, error)) ([]m.GenericMapping, error) {
	l.once.Do(func() {
		l.mappings, l.err = load()
	})

	return l.mappings, l.err
}

// ManualMappingProvider reads the line oriented manual mapping format:
//
//	c com.example.Box java.lang.String
//	f com/example/Box/value java.lang.Integer
//	m com/example/Box/get()Ljava/lang/Object; java.lang.String
//
// Blank lines and lines starting with '#' are ignored.
type ManualMappingProvider struct {
	path m.Path
	lazy lazyMappings
}

// NewManualMappingProvider creates a provider reading path.
func NewManualMappingProvider(path m.Path) *ManualMappingProvider {
	return &ManualMappingProvider{path: path}
}

// Name returns the file the provider reads.
func (p *ManualMappingProvider) Name() string {
	return string(p.path)
}

// Mappings parses the file on first use.
func (p *ManualMappingProvider) Mappings() ([]m.GenericMapping, error) {
	return p.lazy.get(func() ([]m.GenericMapping, error) {
		data, err := os.ReadFile(string(p.path))
		if err != nil {
			return nil, fmt.Errorf("read mapping file: %w", err)
		}

		return ParseManualMappings(string(p.path), data)
	})
}

var manualLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Word", Pattern: `[^\s]+`},
})

// ParseManualMappings parses manual mapping text. The first bad line stops
// parsing and is returned as the error.
func ParseManualMappings(file string, data []byte) ([]m.GenericMapping, error) {
	lex, err := manualLexer.LexString(file, string(data))
	if err != nil {
		return nil, err
	}

	symbols := manualLexer.Symbols()
	lines := strings.Split(string(data), "\n")

	var (
		mappings []m.GenericMapping
		words    []string
		line     = 1
	)

	flush := func() error {
		defer func() { words = words[:0] }()

		if len(words) == 0 {
			return nil
		}

		mapping, err := parseManualLine(words)
		if err == nil {
			mappings = append(mappings, mapping)
			return nil
		}

		if _, ok := err.(*InvalidMappingLineError); ok {
			return &InvalidMappingLineError{File: file, Line: line, Text: strings.TrimRight(lines[line-1], "\r")}
		}

		return fmt.Errorf("%s:%d: %w", file, line, err)
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}

		if tok.EOF() {
			break
		}

		switch tok.Type {
		case symbols["Word"]:
			words = append(words, tok.Value)
		case symbols["Newline"]:
			if err := flush(); err != nil {
				return nil, err
			}

			line = tok.Pos.Line + 1
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return mappings, nil
}

func parseManualLine(words []string) (m.GenericMapping, error) {
	if len(words) != 3 || len(words[0]) != 1 {
		return nil, &InvalidMappingLineError{}
	}

	generic, err := descriptor.ParseSourceRef(words[2])
	if err != nil {
		return nil, err
	}

	switch m.MappingKind(words[0][0]) {
	case m.KindClass:
		class, err := descriptor.ParseSourceRef(words[1])
		if err != nil {
			return nil, err
		}

		return m.NewClassMapping(class, generic), nil
	case m.KindField:
		owner, name, err := parseFieldKey(words[1])
		if err != nil {
			return nil, err
		}

		return m.NewFieldMapping(owner, name, generic), nil
	case m.KindMethod:
		method, err := descriptor.ParseMethod(words[1])
		if err != nil {
			return nil, err
		}

		return m.NewMethodMapping(method, generic), nil
	default:
		return nil, &InvalidMappingLineError{}
	}
}

// parseFieldKey splits "path/to/Class/field" into the owner type and field
// name.
func parseFieldKey(key string) (descriptor.Type, string, error) {
	slash := strings.LastIndexByte(key, '/')
	if slash <= 0 || slash == len(key)-1 {
		return descriptor.Type{}, "", &descriptor.MalformedError{Input: key, Reason: "want path/to/Class/field"}
	}

	owner, err := descriptor.Parse("L" + key[:slash] + ";")
	if err != nil {
		return descriptor.Type{}, "", &descriptor.MalformedError{Input: key, Reason: "invalid owner class"}
	}

	return owner, key[slash+1:], nil
}
