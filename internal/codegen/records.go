package codegen

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/il"
)

// emitRecordClass emits rt's class: fields in source order, bound methods,
// a synthesized parameterless .ctor, and a synthesized #copy (spec.md
// §4.6.2). The value-record optimization is gated by g.opts.EmitValueRecords
// (default off, per SPEC_FULL.md's resolution of the §9 open question); when
// off a record extends its base record's class, or "System.Object" when it
// has no base record.
func (g *Generator) emitRecordClass(rt *ast.RecordType) {
	super := "System.Object"
	switch {
	case rt.BaseRecord != nil:
		super = g.className(rt.BaseRecord)
	case g.opts.EmitValueRecords && rt.ByValue:
		super = "System.ValueType"
	}

	public := rt.Public && rt.EnclosingProc == nil
	g.e.BeginClass(g.className(rt), public, super)

	for _, f := range rt.Fields {
		g.e.AddField(f.Name, g.typeRef(f.Type), f.Public, false)
	}

	for _, m := range rt.Methods {
		g.emitProcedure(m)
	}

	g.emitCtor(rt)
	g.emitCopy(rt)

	g.e.EndClass()
}

func (g *Generator) emitCtor(rt *ast.RecordType) {
	g.e.BeginMethod(".ctor", true, il.Primary, false)
	g.e.SetReturnType("")

	g.e.LoadArg(0, "this")
	if rt.BaseRecord != nil {
		g.e.Call("void "+g.className(rt.BaseRecord)+"::.ctor()", 1, false)
	} else {
		g.e.Call("void System.Object::.ctor()", 1, false)
	}

	for _, f := range rt.Fields {
		g.e.LoadArg(0, "this")
		g.pushInitializer(f.Type)
		g.e.StoreField(g.className(rt) + "::" + f.Name)
	}

	g.e.Ret()
	g.e.EndMethod()
}

// emitCopy synthesizes #copy(a, b): calls the base #copy first (its first
// non-trivial opcode is that call, per spec.md §8), then copies each field
// by its type's copy discipline.
func (g *Generator) emitCopy(rt *ast.RecordType) {
	cn := g.className(rt)
	g.e.BeginMethod("#copy", true, il.Virtual, false)
	g.e.AddArgument(cn, "b")
	g.e.SetReturnType("")

	g.e.LoadArg(0, "this")
	g.e.LoadArg(1, "b")
	if rt.BaseRecord != nil {
		g.e.Call("void "+g.className(rt.BaseRecord)+"::#copy("+g.className(rt.BaseRecord)+")", 2, false)
	} else {
		g.e.Pop()
		g.e.Pop()
	}

	for _, f := range rt.Fields {
		g.copyField(cn, f)
	}

	g.e.Ret()
	g.e.EndMethod()
}

func (g *Generator) copyField(cn string, f *ast.Field) {
	t := ast.Deref(f.Type)
	switch n := t.(type) {
	case *ast.RecordType:
		g.e.LoadArg(0, "this")
		g.e.LoadField(cn + "::" + f.Name)
		g.e.LoadArg(1, "b")
		g.e.LoadField(cn + "::" + f.Name)
		g.e.CallVirt("void "+g.className(n)+"::#copy("+g.className(n)+")", 2, false)
	case *ast.ArrayType:
		copierRef := g.requestArrayCopier(n)
		g.e.LoadArg(0, "this")
		g.e.LoadField(cn + "::" + f.Name)
		g.e.LoadArg(1, "b")
		g.e.LoadField(cn + "::" + f.Name)
		g.e.Call(copierRef, 2, false)
	default:
		g.e.LoadArg(0, "this")
		g.e.LoadArg(1, "b")
		g.e.LoadField(cn + "::" + f.Name)
		g.e.StoreField(cn + "::" + f.Name) // stack: [this, b.field] -> this.field = b.field
	}
}
