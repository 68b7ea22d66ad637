package objmodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanpm2001/Oberon/internal/il"
)

// renderInstr renders instr as ILASM text, splicing in the ".s" short-form
// mnemonic the peephole pass selected (spec.md §4.4).
func renderInstr(instr il.Instr) string {
	text := instr.String()
	if instr.Flags&FlagShortForm == 0 || instr.Operand == "" {
		return text
	}
	space := strings.IndexByte(text, ' ')
	if space < 0 {
		return text
	}
	return fmt.Sprintf("%s.s %s", text[:space], text[space+1:])
}

// renderText formats the assembly tree as ILASM-style text, the same
// dialect the Text Renderer uses directly on the emitter's output (spec.md
// §4.3, §6). Classes are emitted in a stable, name-sorted order so two
// builds of the same input are byte-identical (spec.md §8).
func renderText(asm *Assembly) string {
	var sb strings.Builder
	sb.WriteString(".assembly ")
	sb.WriteString(asm.Name)
	sb.WriteString("\n{\n")
	if asm.GUI {
		sb.WriteString("  .subsystem gui\n")
	}
	sb.WriteString("}\n\n")

	for _, cls := range sortedClassNames(asm.Classes) {
		renderClass(&sb, cls, 0)
	}
	return sb.String()
}

func renderClass(sb *strings.Builder, cls *ObjClass, depth int) {
	ind := strings.Repeat("  ", depth)
	sb.WriteString(ind)
	sb.WriteString(".class ")
	if cls.Public {
		sb.WriteString("public ")
	} else {
		sb.WriteString("private ")
	}
	sb.WriteString(cls.Name)
	if cls.Super != "" {
		sb.WriteString(" extends ")
		sb.WriteString(cls.Super)
	}
	sb.WriteString("\n")
	sb.WriteString(ind)
	sb.WriteString("{\n")

	for _, f := range cls.Fields {
		sb.WriteString(ind)
		sb.WriteString("  .field ")
		if f.Public {
			sb.WriteString("public ")
		} else {
			sb.WriteString("private ")
		}
		if f.Static {
			sb.WriteString("static ")
		}
		sb.WriteString(f.TypeRef)
		sb.WriteRune(' ')
		sb.WriteString(f.Name)
		sb.WriteString("\n")
	}

	for _, m := range cls.Methods {
		renderMethod(sb, m, depth+1)
	}
	for _, nested := range cls.Nested {
		renderClass(sb, nested, depth+1)
	}

	sb.WriteString(ind)
	sb.WriteString("}\n\n")
}

func renderMethod(sb *strings.Builder, m *ObjMethod, depth int) {
	ind := strings.Repeat("  ", depth)
	sb.WriteString(ind)
	sb.WriteString(".method ")
	if m.Public {
		sb.WriteString("public ")
	} else {
		sb.WriteString("private ")
	}

	ret := m.ReturnType
	if ret == "" {
		ret = "void"
	}
	sb.WriteString(ret)
	sb.WriteRune(' ')
	sb.WriteString(m.Name)
	sb.WriteRune('(')
	for i, p := range m.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.TypeRef)
		sb.WriteRune(' ')
		sb.WriteString(p.Name)
	}
	sb.WriteString(")\n")
	sb.WriteString(ind)
	sb.WriteString("{\n")

	if m.Runtime {
		sb.WriteString(ind)
		sb.WriteString("}\n\n")
		return
	}

	sb.WriteString(ind)
	sb.WriteString("  .maxstack ")
	sb.WriteString(strconv.Itoa(m.MaxStack))
	sb.WriteString("\n")

	for _, instr := range m.Body {
		sb.WriteString(ind)
		sb.WriteString("  ")
		sb.WriteString(renderInstr(instr))
		sb.WriteRune('\n')
	}

	sb.WriteString(ind)
	sb.WriteString("}\n\n")
}
