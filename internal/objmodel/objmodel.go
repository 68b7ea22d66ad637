// Package objmodel implements the Binary Builder (spec.md §4.4): it holds a
// mutable tree of assemblies -> namespaces -> classes -> (nested classes |
// fields | methods), plus a types pool backed by the Signature Resolver,
// and can dump that tree as either textual assembly or a bytecode-bearing
// module file.
package objmodel

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"sort"

	"github.com/seanpm2001/Oberon/internal/il"
	"github.com/seanpm2001/Oberon/internal/sigres"
)

// Format selects DumpOutputFile's output shape.
type Format int

const (
	FormatText Format = iota
	FormatDLL
	FormatEXE
)

// Assembly is the root of the object model's tree: one compiled program
// unit, holding every module's classes plus the shared type pool.
type Assembly struct {
	Name    string
	GUI     bool
	Classes []*ObjClass

	resolver *sigres.Resolver
}

// ObjClass mirrors il.Class but additionally carries the resolver node for
// its own type identity, so the builder can deduplicate references to it.
type ObjClass struct {
	Name    string
	Public  bool
	Super   string
	Fields  []*il.Field
	Methods []*ObjMethod
	Nested  []*ObjClass

	node *sigres.Node
}

// ObjMethod mirrors il.Method after peephole optimization.
type ObjMethod struct {
	Name       string
	Public     bool
	Kind       il.MethodKind
	Runtime    bool
	Args       []il.Param
	ReturnType string
	Locals     []il.Local
	Body       []il.Instr
	MaxStack   int
}

// Builder implements emitter.Backend, accumulating modules into an
// Assembly and resolving the type references of their classes, fields,
// method signatures and locals through a shared Resolver (spec.md §4.4).
// Instruction operands are not resolved.
type Builder struct {
	asm *Assembly
}

// New returns a Builder targeting a fresh assembly named name.
func New(name string, gui bool) *Builder {
	return &Builder{asm: &Assembly{Name: name, GUI: gui, resolver: sigres.New()}}
}

// Assembly exposes the accumulated tree, e.g. for DumpOutputFile.
func (b *Builder) Assembly() *Assembly {
	return b.asm
}

// EmitModule absorbs mod's classes into the assembly, resolving their
// superclass, field, return, argument and local type references (to
// deduplicate primitive/class/array type instances, spec.md §4.4) and
// optimizing each method's body. Instruction operands are not resolved.
func (b *Builder) EmitModule(mod *il.Module) error {
	for _, cls := range mod.Classes {
		oc, err := b.convertClass(cls)
		if err != nil {
			return err
		}
		b.asm.Classes = append(b.asm.Classes, oc)
	}
	return nil
}

func (b *Builder) convertClass(cls *il.Class) (*ObjClass, error) {
	oc := &ObjClass{Name: cls.Name, Public: cls.Public, Super: cls.Super, Fields: cls.Fields}

	if cls.Super != "" {
		if _, err := b.asm.resolver.Parse(cls.Super); err != nil {
			return nil, err
		}
	}
	for _, f := range cls.Fields {
		if _, err := b.asm.resolver.Parse(f.TypeRef); err != nil {
			return nil, err
		}
	}

	for _, m := range cls.Methods {
		om, err := b.convertMethod(m)
		if err != nil {
			return nil, err
		}
		oc.Methods = append(oc.Methods, om)
	}
	for _, nested := range cls.Nested {
		n, err := b.convertClass(nested)
		if err != nil {
			return nil, err
		}
		oc.Nested = append(oc.Nested, n)
	}
	return oc, nil
}

func (b *Builder) convertMethod(m *il.Method) (*ObjMethod, error) {
	if m.ReturnType != "" {
		if _, err := b.asm.resolver.Parse(m.ReturnType); err != nil {
			return nil, err
		}
	}
	for _, a := range m.Args {
		if _, err := b.asm.resolver.Parse(a.TypeRef); err != nil {
			return nil, err
		}
	}
	for _, l := range m.Locals {
		if _, err := b.asm.resolver.Parse(l.TypeRef); err != nil {
			return nil, err
		}
	}

	om := &ObjMethod{
		Name: m.Name, Public: m.Public, Kind: m.Kind, Runtime: m.Runtime,
		Args: m.Args, ReturnType: m.ReturnType, Locals: m.Locals,
		Body: optimize(m.Body), MaxStack: m.MaxStack,
	}
	return om, nil
}

// DumpOutputFile serializes the assembly to path in the requested format.
func (b *Builder) DumpOutputFile(path string, format Format, gui bool) error {
	b.asm.GUI = gui

	var data []byte
	switch format {
	case FormatText:
		data = []byte(renderText(b.asm))
	case FormatDLL, FormatEXE:
		data = encodeModuleFile(b.asm, format)
	default:
		return fmt.Errorf("objmodel: unknown output format %d", format)
	}
	return os.WriteFile(path, data, 0644)
}

// encodeModuleFile produces a small, self-describing bytecode container:
// a fixed header (magic, format byte, GUI byte, CRC32 of the payload) over
// the textual rendering, which follows the header unprefixed and runs to
// the end of the file. This stands in for a full
// portable-executable-like layout while keeping the module file format
// internal and stable across the two run paths (spec.md §6).
func encodeModuleFile(asm *Assembly, format Format) []byte {
	payload := []byte(renderText(asm))

	header := make([]byte, 10)
	copy(header[0:4], []byte("OBXM"))
	header[4] = byte(format)
	if asm.GUI {
		header[5] = 1
	}
	binary.LittleEndian.PutUint32(header[6:10], crc32.ChecksumIEEE(payload))

	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out
}

// sortedClassNames returns cls in a stable, name-sorted order so repeated
// runs on the same input produce byte-identical output (spec.md §8).
func sortedClassNames(classes []*ObjClass) []*ObjClass {
	out := append([]*ObjClass(nil), classes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
