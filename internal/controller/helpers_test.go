package controller

import (
	"errors"

	"github.com/mouse-blink/hendrix/internal/descriptor"
	m "github.com/mouse-blink/hendrix/internal/model"
)

type stubSupplier struct {
	origin  m.Origin
	process bool
}

func (s stubSupplier) Origin() m.Origin             { return s.origin }
func (s stubSupplier) Bytecode() ([]byte, error)    { return nil, errors.New("not readable") }
func (s stubSupplier) ShouldBeProcessed() bool      { return s.process }
func (s stubSupplier) Consumer() m.BytecodeConsumer { return nil }

func testSuppliers() []m.BytecodeSupplier {
	return []m.BytecodeSupplier{
		stubSupplier{origin: m.Origin{Path: "classes/com/example/Box.class"}, process: true},
		stubSupplier{origin: m.Origin{Path: "lib/rt.jar", Entry: "java/util/List.class"}},
	}
}

func testMappings() []m.GenericMapping {
	box := descriptor.ObjectType("com/example/Box")

	return []m.GenericMapping{
		m.NewClassMapping(box, descriptor.MustParseSourceRef("java.util.List<java.lang.String>")),
		m.NewFieldMapping(box, "items", descriptor.MustParseSourceRef("java.util.List<java.lang.Integer>")),
	}
}
