package descriptor

import (
	"strings"
)

// Method describes a reference to a method: its owning class, name,
// argument types and return type.
type Method struct {
	Owner  Type
	Name   string
	Args   []Type
	Return Type
}

// NewMethod assembles a Method from its parts.
func NewMethod(owner Type, name string, args []Type, ret Type) Method {
	return Method{
		Owner:  owner,
		Name:   name,
		Args:   append([]Type(nil), args...),
		Return: ret,
	}
}

// ParseMethod parses "path/to/Class/name(args)return", for example
// "java/util/List/get(I)Ljava/lang/Object;".
func ParseMethod(desc string) (Method, error) {
	open := strings.IndexByte(desc, '(')
	closing := strings.LastIndexByte(desc, ')')

	if open < 0 || closing < open {
		return Method{}, malformed(desc, "missing argument list")
	}

	owner, name, err := splitOwnerAndName(desc[:open])
	if err != nil {
		return Method{}, malformed(desc, err.Error())
	}

	args, err := parseArguments(desc[open+1 : closing])
	if err != nil {
		return Method{}, malformed(desc, err.Error())
	}

	ret, err := parseReturn(desc[closing+1:])
	if err != nil {
		return Method{}, malformed(desc, err.Error())
	}

	return Method{Owner: owner, Name: name, Args: args, Return: ret}, nil
}

// MethodFromClassFile builds the lookup key for a method declared in a class
// file, given the owner's internal name, the method name and its raw
// descriptor "(args)return".
func MethodFromClassFile(owner, name, rawDesc string) (Method, error) {
	return ParseMethod(owner + "/" + name + rawDesc)
}

func splitOwnerAndName(prefix string) (Type, string, error) {
	slash := strings.LastIndexByte(prefix, '/')
	if slash <= 0 || slash == len(prefix)-1 {
		return Type{}, "", errorf("expected class/path/name before argument list")
	}

	name := prefix[slash+1:]
	if name != "<init>" && name != "<clinit>" {
		if err := checkSegment(name); err != nil {
			return Type{}, "", errorf("%q is not a valid method name", name)
		}
	}

	path, err := splitPath(prefix[:slash], "/")
	if err != nil {
		return Type{}, "", err
	}

	return Type{Kind: KindObject, Path: path}, name, nil
}

func parseArguments(run string) ([]Type, error) {
	ts, err := lex(binaryLexer, run)
	if err != nil {
		return nil, errorf("arguments: %v", err)
	}

	var args []Type

	for !ts.done() {
		arg, err := parseDescriptor(ts)
		if err != nil {
			return nil, errorf("argument %d: %v", len(args), err)
		}

		args = append(args, arg)
	}

	return args, nil
}

func parseReturn(s string) (Type, error) {
	ts, err := lex(binaryLexer, s)
	if err != nil {
		return Type{}, errorf("return type: %v", err)
	}

	ret, err := parseDescriptor(ts)
	if err != nil {
		return Type{}, errorf("return type: %v", err)
	}

	if !ts.done() {
		return Type{}, errorf("trailing characters after return type")
	}

	return ret, nil
}

// Equal reports structural equality.
func (m Method) Equal(other Method) bool {
	if m.Name != other.Name || len(m.Args) != len(other.Args) {
		return false
	}

	if !m.Owner.Equal(other.Owner) || !m.Return.Equal(other.Return) {
		return false
	}

	for i := range m.Args {
		if !m.Args[i].Equal(other.Args[i]) {
			return false
		}
	}

	return true
}

// String prints "path/name(arg-descriptors)return-descriptor".
func (m Method) String() string {
	var b strings.Builder

	b.WriteString(m.Owner.InternalName())
	b.WriteByte('/')
	b.WriteString(m.Name)
	b.WriteByte('(')

	for _, arg := range m.Args {
		arg.writeDescriptor(&b)
	}

	b.WriteByte(')')
	m.Return.writeDescriptor(&b)

	return b.String()
}
