// Package textasm implements the Text Renderer back-end (spec.md §4.3): an
// ILASM-style textual rendering of an il.Module, useful for debugging and
// for the --text-asm driver mode that skips the Binary Builder entirely.
package textasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanpm2001/Oberon/internal/il"
)

// Renderer implements emitter.Backend by appending each module's rendering
// to an internal buffer, in the order EmitModule is called.
type Renderer struct {
	sb strings.Builder
}

// New returns an empty Renderer.
func New() *Renderer {
	return &Renderer{}
}

// EmitModule renders mod and appends it to the accumulated output.
func (r *Renderer) EmitModule(mod *il.Module) error {
	r.sb.WriteString(".assembly ")
	r.sb.WriteString(mod.Name)
	r.sb.WriteString("\n{\n")
	if mod.Kind == il.EntryPointModule {
		r.sb.WriteString("  .entrypoint\n")
	}
	for _, imp := range mod.Imports {
		r.sb.WriteString("  .import ")
		r.sb.WriteString(imp)
		r.sb.WriteRune('\n')
	}
	r.sb.WriteString("}\n\n")

	for _, cls := range mod.Classes {
		r.renderClass(cls, 0)
	}
	return nil
}

// String returns everything rendered so far.
func (r *Renderer) String() string {
	return r.sb.String()
}

func (r *Renderer) indent(depth int) {
	r.sb.WriteString(strings.Repeat("  ", depth))
}

func (r *Renderer) renderClass(cls *il.Class, depth int) {
	r.indent(depth)
	r.sb.WriteString(".class ")
	if cls.Public {
		r.sb.WriteString("public ")
	} else {
		r.sb.WriteString("private ")
	}
	r.sb.WriteString(cls.Name)
	if cls.Super != "" {
		r.sb.WriteString(" extends ")
		r.sb.WriteString(cls.Super)
	}
	r.sb.WriteString("\n")
	r.indent(depth)
	r.sb.WriteString("{\n")

	for _, f := range cls.Fields {
		r.indent(depth + 1)
		r.sb.WriteString(".field ")
		if f.Public {
			r.sb.WriteString("public ")
		} else {
			r.sb.WriteString("private ")
		}
		if f.Static {
			r.sb.WriteString("static ")
		}
		r.sb.WriteString(f.TypeRef)
		r.sb.WriteRune(' ')
		r.sb.WriteString(f.Name)
		r.sb.WriteString("\n")
	}

	for _, m := range cls.Methods {
		r.renderMethod(m, depth+1)
	}

	for _, nested := range cls.Nested {
		r.renderClass(nested, depth+1)
	}

	r.indent(depth)
	r.sb.WriteString("}\n\n")
}

func (r *Renderer) renderMethod(m *il.Method, depth int) {
	r.indent(depth)
	r.sb.WriteString(".method ")
	if m.Public {
		r.sb.WriteString("public ")
	} else {
		r.sb.WriteString("private ")
	}
	switch m.Kind {
	case il.Static:
		r.sb.WriteString("static ")
	case il.Virtual:
		r.sb.WriteString("virtual ")
	case il.Primary:
		r.sb.WriteString("specialname rtspecialname ")
	}
	if m.Runtime {
		r.sb.WriteString("runtime ")
	}

	ret := m.ReturnType
	if ret == "" {
		ret = "void"
	}
	r.sb.WriteString(ret)
	r.sb.WriteRune(' ')
	r.sb.WriteString(m.Name)
	r.sb.WriteRune('(')
	for i, p := range m.Args {
		if i > 0 {
			r.sb.WriteString(", ")
		}
		r.sb.WriteString(p.TypeRef)
		r.sb.WriteRune(' ')
		r.sb.WriteString(p.Name)
	}
	r.sb.WriteString(")\n")
	r.indent(depth)
	r.sb.WriteString("{\n")

	if m.Runtime {
		r.indent(depth)
		r.sb.WriteString("}\n\n")
		return
	}

	r.indent(depth + 1)
	r.sb.WriteString(".maxstack ")
	r.sb.WriteString(strconv.Itoa(m.MaxStack))
	r.sb.WriteString("\n")

	if len(m.Locals) > 0 {
		r.indent(depth + 1)
		r.sb.WriteString(".locals init (")
		for i, l := range m.Locals {
			if i > 0 {
				r.sb.WriteString(", ")
			}
			r.sb.WriteString(fmt.Sprintf("[%d] %s %s", i, l.TypeRef, l.Name))
		}
		r.sb.WriteString(")\n")
	}

	for _, instr := range m.Body {
		r.renderInstr(instr, depth+1)
	}

	r.indent(depth)
	r.sb.WriteString("}\n\n")
}

func (r *Renderer) renderInstr(instr il.Instr, depth int) {
	if instr.Op == il.OpLine {
		r.indent(depth)
		r.sb.WriteString(fmt.Sprintf(".line %d:%d\n", instr.Line, instr.Col))
		return
	}
	if instr.Op == il.OpLabel {
		r.sb.WriteString(instr.Operand)
		r.sb.WriteString(":\n")
		return
	}
	r.indent(depth)
	r.sb.WriteString("  ")
	r.sb.WriteString(instr.String())
	r.sb.WriteRune('\n')
}
