package codegen

import (
	"strings"

	"github.com/seanpm2001/Oberon/internal/ast"
)

// typeRef renders t as the textual reference the Signature Resolver grammar
// understands (spec.md §4.5), resolving record class names through the
// per-module table assigned during the declaration pre-pass.
func (g *Generator) typeRef(t ast.Type) string {
	t = ast.Deref(t)
	switch n := t.(type) {
	case *ast.BaseType:
		return primitiveSpelling(n.Tag)
	case *ast.EnumType:
		return "int32"
	case *ast.ArrayType:
		return g.typeRef(n.Elem) + "[]"
	case *ast.RecordType:
		return g.className(n)
	case *ast.PointerType:
		return g.typeRef(n.To)
	case *ast.ProcType:
		sig := normalizeProcSignature(n)
		if name, ok := g.delegateTable[sig]; ok {
			return name
		}
		return delegateClassName(sig)
	case *ast.Placeholder:
		return "object"
	default:
		return "object"
	}
}

func primitiveSpelling(tag ast.Primitive) string {
	switch tag {
	case ast.BOOLEAN:
		return "bool"
	case ast.CHAR:
		return "char"
	case ast.WCHAR:
		return "char16"
	case ast.BYTE:
		return "uint8"
	case ast.SHORTINT:
		return "int16"
	case ast.INTEGER:
		return "int32"
	case ast.LONGINT:
		return "int64"
	case ast.REAL:
		return "float32"
	case ast.LONGREAL:
		return "float64"
	case ast.SET:
		return "int32"
	case ast.NIL:
		return "object"
	case ast.STRING:
		return "char[]"
	case ast.WSTRING:
		return "char16[]"
	case ast.BYTEARRAY:
		return "uint8[]"
	case ast.ENUMINT:
		return "int32"
	case ast.ANY:
		return "object"
	default:
		return "object"
	}
}

// normalizeProcSignature renders a stable, whitespace-normalized signature
// string for delegate-class naming (spec.md §4.6.4: "named by the MD5 of
// its normalized textual signature").
func normalizeProcSignature(pt *ast.ProcType) string {
	var sb strings.Builder
	if pt.TypeBound {
		sb.WriteString("bound ")
	}
	sb.WriteRune('(')
	for i, p := range pt.Params {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(typeRefStatic(p.Type))
		if p.ByRef {
			sb.WriteString("&")
		}
	}
	sb.WriteString(")")
	if pt.Return != nil {
		sb.WriteString(":")
		sb.WriteString(typeRefStatic(pt.Return))
	}
	return sb.String()
}

// typeRefStatic renders a type for signature-normalization purposes only,
// without needing the per-module record-naming state (records contribute
// their declared name or "#anon", which is sufficiently stable within one
// generation run since signature text is only used as a dedup key here).
func typeRefStatic(t ast.Type) string {
	t = ast.Deref(t)
	switch n := t.(type) {
	case *ast.BaseType:
		return primitiveSpelling(n.Tag)
	case *ast.ArrayType:
		return typeRefStatic(n.Elem) + "[]"
	case *ast.RecordType:
		if n.Name != "" {
			return n.Name
		}
		return "#anon"
	case *ast.PointerType:
		return typeRefStatic(n.To)
	case *ast.ProcType:
		return normalizeProcSignature(n)
	default:
		return "object"
	}
}

// isStructured reports whether t has heap/value copy semantics (records and
// arrays), per spec.md §4.6.7's by-reference passing rule.
func isStructured(t ast.Type) bool {
	switch ast.Deref(t).(type) {
	case *ast.RecordType, *ast.ArrayType:
		return true
	default:
		return false
	}
}
