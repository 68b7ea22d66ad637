package codegen

import "github.com/seanpm2001/Oberon/internal/ast"

// pushInitializer pushes the default value for t (spec.md §4.6.6).
func (g *Generator) pushInitializer(t ast.Type) {
	t = ast.Deref(t)
	switch n := t.(type) {
	case *ast.BaseType:
		g.pushPrimitiveZero(n.Tag)
	case *ast.EnumType:
		g.e.LoadInt32(0)
	case *ast.PointerType:
		g.e.LoadNull()
	case *ast.ProcType:
		g.e.LoadNull()
	case *ast.RecordType:
		g.e.NewObj(g.className(n)+"::.ctor()", 0)
	case *ast.ArrayType:
		g.pushArrayInitializer(n)
	default:
		g.e.LoadNull()
	}
}

func (g *Generator) pushPrimitiveZero(tag ast.Primitive) {
	switch tag {
	case ast.REAL:
		g.e.LoadFloat32("0.0")
	case ast.LONGREAL:
		g.e.LoadFloat64("0.0")
	case ast.LONGINT:
		g.e.LoadInt64(0)
	case ast.STRING, ast.WSTRING, ast.BYTEARRAY:
		g.e.LoadNull()
	default:
		g.e.LoadInt32(0)
	}
}

// pushArrayInitializer implements the static-length branch of spec.md
// §4.6.6: newarr of the constant length, then, for a structured element
// type, a per-element initializer loop. Open-array and multi-dimensional
// initializers (the "lengths already on locals" branch) are driven by the
// procedure prologue (§4.6.8) instead, since they need the actual argument
// array's measured lengths, not a constant.
func (g *Generator) pushArrayInitializer(at *ast.ArrayType) {
	if at.Length == nil {
		// Open array with no actual to measure from (e.g. a record field):
		// treated as an empty, zero-length array of the element type.
		g.e.LoadInt32(0)
		g.e.NewArr(g.typeRef(at.Elem))
		return
	}

	g.e.LoadInt32(int32(*at.Length))
	g.e.NewArr(g.typeRef(at.Elem))

	if !isStructured(at.Elem) {
		return
	}

	idx := g.e.AllocLocal("int32")
	g.e.LoadInt32(0)
	g.e.StoreLocal(idx, "$tmp")

	loop := g.e.NewLabel()
	test := g.e.NewLabel()
	arrSlot := g.e.AllocLocal(g.typeRef(at))
	g.e.StoreLocal(arrSlot, "$tmp")

	g.e.Br(test)
	g.e.PlaceLabel(loop)
	g.e.LoadLocal(arrSlot, "$tmp")
	g.e.LoadLocal(idx, "$tmp")
	g.pushInitializer(at.Elem)
	g.e.StoreElem(g.typeRef(at.Elem))
	g.e.LoadLocal(idx, "$tmp")
	g.e.LoadInt32(1)
	g.e.Add()
	g.e.StoreLocal(idx, "$tmp")

	g.e.PlaceLabel(test)
	g.e.LoadLocal(idx, "$tmp")
	g.e.LoadInt32(int32(*at.Length))
	g.e.Clt()
	g.e.BrTrue(loop)

	g.e.LoadLocal(arrSlot, "$tmp")
	g.e.FreeLocal(idx)
	g.e.FreeLocal(arrSlot)
}
