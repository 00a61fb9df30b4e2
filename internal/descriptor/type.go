// Package descriptor parses and prints JVM type and method descriptors in
// both the binary descriptor notation (Ljava/lang/Object;) and the source
// reference notation (java.lang.Object).
package descriptor

import (
	"slices"
	"strings"
)

// KindObject is the Kind of every non-primitive type.
const KindObject byte = 'L'

// nameStructure lists characters that delimit names in either notation and
// so cannot appear inside a single name segment.
const nameStructure = "/.;[]<>() \t\r\n"

// primitiveNames maps primitive descriptor codes to their source keywords.
var primitiveNames = map[byte]string{
	'I': "int",
	'V': "void",
	'Z': "boolean",
	'B': "byte",
	'C': "char",
	'S': "short",
	'D': "double",
	'F': "float",
	'J': "long",
}

// primitiveCodes is the inverse of primitiveNames.
var primitiveCodes = func() map[string]byte {
	codes := make(map[string]byte, len(primitiveNames))
	for code, name := range primitiveNames {
		codes[name] = code
	}

	return codes
}()

// Type describes a reference to a type: a primitive, an object, or an array
// of either. Only a single generic argument is modeled.
type Type struct {
	// ArrayDepth is 0 when the type is not an array.
	ArrayDepth int
	// Kind is the descriptor type character: one of IJDFZBCSV, or 'L'.
	Kind byte
	// Path holds the fully qualified name split on the package separator.
	// It is empty for primitives.
	Path []string
	// Generic is the single type argument, if any.
	Generic *Type
}

// ObjectType builds an object type from a slash separated internal name such
// as "java/lang/Object".
func ObjectType(internalName string) Type {
	return Type{Kind: KindObject, Path: strings.Split(internalName, "/")}
}

// IsPrimitive reports whether t is a primitive (or an array of primitives).
func (t Type) IsPrimitive() bool {
	return t.Kind != KindObject
}

// InternalName joins the path with slashes, e.g. "java/lang/Object".
func (t Type) InternalName() string {
	return strings.Join(t.Path, "/")
}

// Equal reports structural equality.
func (t Type) Equal(other Type) bool {
	if t.ArrayDepth != other.ArrayDepth || t.Kind != other.Kind || !slices.Equal(t.Path, other.Path) {
		return false
	}

	if t.Generic == nil || other.Generic == nil {
		return t.Generic == nil && other.Generic == nil
	}

	return t.Generic.Equal(*other.Generic)
}

// String prints t in the binary descriptor notation.
func (t Type) String() string {
	var b strings.Builder

	t.writeDescriptor(&b)

	return b.String()
}

func (t Type) writeDescriptor(b *strings.Builder) {
	for range t.ArrayDepth {
		b.WriteByte('[')
	}

	b.WriteByte(t.Kind)

	if t.IsPrimitive() {
		return
	}

	b.WriteString(t.InternalName())

	if t.Generic != nil {
		b.WriteByte('<')
		t.Generic.writeDescriptor(b)
		b.WriteByte('>')
	}

	b.WriteByte(';')
}

// SourceRef prints t in the source reference notation.
func (t Type) SourceRef() string {
	var b strings.Builder

	t.writeSourceRef(&b)

	return b.String()
}

func (t Type) writeSourceRef(b *strings.Builder) {
	if name, ok := primitiveNames[t.Kind]; ok {
		b.WriteString(name)
	} else {
		b.WriteString(strings.Join(t.Path, "."))
	}

	if t.Generic != nil {
		b.WriteByte('<')
		t.Generic.writeSourceRef(b)
		b.WriteByte('>')
	}

	for range t.ArrayDepth {
		b.WriteString("[]")
	}
}

// Parse parses a binary descriptor such as "[Ljava/util/List<Ljava/lang/Object;>;".
func Parse(desc string) (Type, error) {
	ts, err := lex(binaryLexer, desc)
	if err != nil {
		return Type{}, malformed(desc, err.Error())
	}

	t, err := parseDescriptor(ts)
	if err != nil {
		return Type{}, malformed(desc, err.Error())
	}

	if !ts.done() {
		return Type{}, malformed(desc, "trailing characters after descriptor")
	}

	return t, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// fixed literals.
func MustParse(desc string) Type {
	t, err := Parse(desc)
	if err != nil {
		panic(err)
	}

	return t
}

// parseDescriptor reads one self-delimiting descriptor from ts.
func parseDescriptor(ts *tokens) (Type, error) {
	var t Type

	for ts.is(ts.peek(), "Array") {
		t.ArrayDepth++
		ts.next()
	}

	tok := ts.next()

	switch {
	case tok.EOF():
		return Type{}, errorf("missing type character")
	case ts.is(tok, "Primitive"):
		t.Kind = tok.Value[0]
		return t, nil
	case !ts.is(tok, "Object"):
		return Type{}, errorf("unexpected %q", tok.Value)
	}

	path, err := splitPath(tok.Value[1:], "/")
	if err != nil {
		return Type{}, err
	}

	t.Kind = KindObject
	t.Path = path

	if ts.accept("<") {
		generic, err := parseDescriptor(ts)
		if err != nil {
			return Type{}, err
		}

		if !ts.accept(">") {
			return Type{}, errorf("unterminated generic argument")
		}

		t.Generic = &generic
	}

	if !ts.accept(";") {
		return Type{}, errorf("object type is missing terminating ';'")
	}

	return t, nil
}

func splitPath(raw, sep string) ([]string, error) {
	if raw == "" {
		return nil, errorf("empty class name")
	}

	segments := strings.Split(raw, sep)
	for _, segment := range segments {
		if segment == "" {
			return nil, errorf("empty segment in %q", raw)
		}

		if err := checkSegment(segment); err != nil {
			return nil, err
		}
	}

	return segments, nil
}

// checkSegment accepts any non-empty name free of structural characters, so
// names such as "package-info" or "1Foo" survive both notations.
func checkSegment(segment string) error {
	if strings.ContainsAny(segment, nameStructure) {
		return errorf("illegal character in segment %q", segment)
	}

	return nil
}

// ParseSourceRef parses a source reference such as "java.util.List<java.lang.Object>[]".
// Primitive keywords map to their descriptor codes; anything else is an
// object path.
func ParseSourceRef(ref string) (Type, error) {
	ts, err := lex(sourceLexer, ref)
	if err != nil {
		return Type{}, malformed(ref, err.Error())
	}

	t, err := parseSourceRef(ts)
	if err != nil {
		return Type{}, malformed(ref, err.Error())
	}

	if !ts.done() {
		return Type{}, malformed(ref, "trailing characters after source reference")
	}

	return t, nil
}

// MustParseSourceRef is like ParseSourceRef but panics on malformed input.
func MustParseSourceRef(ref string) Type {
	t, err := ParseSourceRef(ref)
	if err != nil {
		panic(err)
	}

	return t
}

func parseSourceRef(ts *tokens) (Type, error) {
	var t Type

	tok := ts.next()
	if !ts.is(tok, "Name") {
		return Type{}, errorf("empty type name")
	}

	if code, ok := primitiveCodes[tok.Value]; ok {
		t.Kind = code
	} else {
		path, err := splitPath(tok.Value, ".")
		if err != nil {
			return Type{}, err
		}

		t.Kind = KindObject
		t.Path = path
	}

	if ts.accept("<") {
		if t.IsPrimitive() {
			return Type{}, errorf("primitive %q cannot carry a generic argument", tok.Value)
		}

		generic, err := parseSourceRef(ts)
		if err != nil {
			return Type{}, err
		}

		if !ts.accept(">") {
			return Type{}, errorf("unterminated generic argument")
		}

		t.Generic = &generic
	}

	for ts.is(ts.peek(), "Dims") {
		t.ArrayDepth++
		ts.next()
	}

	return t, nil
}
