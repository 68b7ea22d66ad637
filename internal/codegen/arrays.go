package codegen

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/il"
)

// requestArrayCopier returns the method reference for at's copier,
// enqueueing its generation if this is the first request for that array
// type signature (spec.md §4.6.3: "generated on demand and memoized").
func (g *Generator) requestArrayCopier(at *ast.ArrayType) string {
	sig := g.typeRef(at)
	name := copierClassName(sig)
	ref := "void " + name + "::#copy(" + sig + ", " + sig + ")"
	if g.copierMemo[sig] {
		return ref
	}
	g.copierMemo[sig] = true
	g.copierWork = append(g.copierWork, at)
	return ref
}

func copierClassName(sig string) string {
	return "ArrCopy$" + sanitize(sig)
}

func sanitize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// emitArrayCopier emits the static #copy(a, b) method for at (spec.md
// §4.6.3): n = min(len(a), len(b)); for i in 0..n-1, copy element i by its
// type's own copy discipline.
func (g *Generator) emitArrayCopier(at *ast.ArrayType) {
	sig := g.typeRef(at)
	cls := copierClassName(sig)

	g.e.BeginClass(cls, false, "System.Object")
	g.e.BeginMethod("#copy", true, il.Static, false)
	g.e.AddArgument(sig, "a")
	g.e.AddArgument(sig, "b")
	g.e.SetReturnType("")

	nSlot := g.e.AllocLocal("int32")
	iSlot := g.e.AllocLocal("int32")

	g.e.LoadArg(0, "a")
	g.e.LoadLen()
	g.e.LoadArg(1, "b")
	g.e.LoadLen()
	g.e.Clt()
	lenA, lenB, done := g.e.NewLabel(), g.e.NewLabel(), g.e.NewLabel()
	g.e.BrTrue(lenA)
	g.e.Br(lenB)

	g.e.PlaceLabel(lenA)
	g.e.LoadArg(0, "a")
	g.e.LoadLen()
	g.e.StoreLocal(nSlot, "$tmp")
	g.e.Br(done)

	g.e.PlaceLabel(lenB)
	g.e.LoadArg(1, "b")
	g.e.LoadLen()
	g.e.StoreLocal(nSlot, "$tmp")

	g.e.PlaceLabel(done)
	g.e.LoadInt32(0)
	g.e.StoreLocal(iSlot, "$tmp")

	loop, test := g.e.NewLabel(), g.e.NewLabel()
	g.e.Br(test)
	g.e.PlaceLabel(loop)
	g.copyArrayElem(at.Elem, iSlot)
	g.e.LoadLocal(iSlot, "$tmp")
	g.e.LoadInt32(1)
	g.e.Add()
	g.e.StoreLocal(iSlot, "$tmp")

	g.e.PlaceLabel(test)
	g.e.LoadLocal(iSlot, "$tmp")
	g.e.LoadLocal(nSlot, "$tmp")
	g.e.Clt()
	g.e.BrTrue(loop)

	g.e.FreeLocal(nSlot)
	g.e.FreeLocal(iSlot)
	g.e.Ret()
	g.e.EndMethod()
	g.e.EndClass()
}

func (g *Generator) copyArrayElem(elem ast.Type, iSlot int) {
	elem = ast.Deref(elem)
	switch n := elem.(type) {
	case *ast.ArrayType:
		sub := g.requestArrayCopier(n)
		g.e.LoadArg(0, "a")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadElem(g.typeRef(n))
		g.e.LoadArg(1, "b")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadElem(g.typeRef(n))
		g.e.Call(sub, 2, false)
	case *ast.RecordType:
		g.e.LoadArg(0, "a")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadElem(g.className(n))
		g.e.LoadArg(1, "b")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadElem(g.className(n))
		g.e.CallVirt("void "+g.className(n)+"::#copy("+g.className(n)+")", 2, false)
	default:
		g.e.LoadArg(0, "a")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadArg(1, "b")
		g.e.LoadLocal(iSlot, "$tmp")
		g.e.LoadElem(g.typeRef(elem))
		g.e.StoreElem(g.typeRef(elem))
	}
}
