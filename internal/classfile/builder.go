package classfile

// Access flags used by the builder.
const (
	AccPublic = 0x0001
	AccStatic = 0x0008
	AccSuper  = 0x0020
)

// Java 8 class file version.
const (
	defaultMajorVersion = 52
	defaultMinorVersion = 0
)

// New builds a minimal public class named internalName extending super.
// Methods added with AddMethod carry no Code attribute; the result is
// structurally valid but not meant to be loaded by a JVM.
func New(internalName, super string) (*ClassFile, error) {
	cf := &ClassFile{
		MajorVersion: defaultMajorVersion,
		MinorVersion: defaultMinorVersion,
		Pool:         NewConstantPool(),
		AccessFlags:  AccPublic | AccSuper,
	}

	var err error

	if cf.ThisClass, err = cf.Pool.AddClass(internalName); err != nil {
		return nil, err
	}

	if cf.SuperClass, err = cf.Pool.AddClass(super); err != nil {
		return nil, err
	}

	return cf, nil
}

// AddField appends a field and returns its index in Fields.
func (cf *ClassFile) AddField(access uint16, name, desc string) (int, error) {
	m, err := cf.newMember(access, name, desc)
	if err != nil {
		return 0, err
	}

	cf.Fields = append(cf.Fields, m)

	return len(cf.Fields) - 1, nil
}

// AddMethod appends a method and returns its index in Methods.
func (cf *ClassFile) AddMethod(access uint16, name, desc string) (int, error) {
	m, err := cf.newMember(access, name, desc)
	if err != nil {
		return 0, err
	}

	cf.Methods = append(cf.Methods, m)

	return len(cf.Methods) - 1, nil
}

func (cf *ClassFile) newMember(access uint16, name, desc string) (Member, error) {
	nameIndex, err := cf.Pool.EnsureUtf8(name)
	if err != nil {
		return Member{}, err
	}

	descIndex, err := cf.Pool.EnsureUtf8(desc)
	if err != nil {
		return Member{}, err
	}

	return Member{AccessFlags: access, NameIndex: nameIndex, DescriptorIndex: descIndex}, nil
}
