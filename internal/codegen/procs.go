package codegen

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/il"
)

// locals tracks the slot assignment for the procedure currently being
// lowered: parameters and local variables each get a stable IL argument/
// local index (spec.md §3: "assigned once per procedure and remain
// stable").
type locals struct {
	params map[*ast.Param]int
	vars   map[*ast.LocalVar]int
}

// emitProcedure emits one procedure (free or type-bound) including its
// prologue (§4.6.8), lowered body, and a synthesized trailing return if the
// body falls off the end (§4.6.9).
func (g *Generator) emitProcedure(p *ast.Procedure) {
	kind := il.Static
	if p.Receiver != nil {
		kind = il.Virtual
	}
	g.e.BeginMethod(p.Name, p.Public, kind, p.External)

	loc := &locals{params: make(map[*ast.Param]int), vars: make(map[*ast.LocalVar]int)}
	argIdx := 0
	if p.Receiver != nil {
		g.e.AddArgument(g.typeRef(p.Receiver.Type), "this")
		loc.params[p.Receiver] = argIdx
		argIdx++
	}
	for _, param := range p.Params {
		ref := g.typeRef(param.Type)
		if param.ByRef && !isStructured(param.Type) {
			ref += "&"
		}
		g.e.AddArgument(ref, param.Name)
		loc.params[param] = argIdx
		argIdx++
	}
	if p.Return != nil {
		g.e.SetReturnType(g.typeRef(p.Return))
	}
	for _, l := range p.Locals {
		g.e.AddLocal(g.typeRef(l.Type), l.Name)
		loc.vars[l] = len(loc.vars) + argIdx
	}

	if p.External {
		g.e.EndMethod()
		return
	}

	st := &stmtLowerer{g: g, loc: loc, proc: p}
	st.prologue()
	st.lowerBlock(p.Body)

	if !endsInReturn(p.Body) {
		if p.Return != nil {
			g.pushInitializer(p.Return)
		}
		g.e.Ret()
	}

	g.e.EndMethod()
}

func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}

// emitModuleClass emits this module's class: module-level variables as
// static fields, its free procedures, a .cctor initializing every
// module-level variable and then the lowered module body, and a ping#
// method (spec.md §4.6.10).
func (g *Generator) emitModuleClass() {
	g.e.BeginClass(g.moduleCN, true, "System.Object")

	for _, v := range g.mod.Variables() {
		g.e.AddField(v.Name, g.typeRef(v.Type), v.Public, true)
	}
	for _, p := range g.mod.Procedures() {
		g.emitProcedure(p)
	}

	g.emitCctor()
	g.emitPing()

	g.e.EndClass()
}

func (g *Generator) emitCctor() {
	g.e.BeginMethod(".cctor", false, il.Static, false)
	g.e.SetReturnType("")

	for _, v := range g.mod.Variables() {
		g.pushInitializer(v.Type)
		g.e.StoreStaticField(g.moduleCN + "::" + v.Name)
	}

	st := &stmtLowerer{g: g, loc: &locals{params: map[*ast.Param]int{}, vars: map[*ast.LocalVar]int{}}}
	st.lowerBlock(g.mod.Body)

	g.e.Ret()
	g.e.EndMethod()
}

// emitPing emits the no-op static method used to force this module's
// static initialization in dependency order (spec.md §8: "every non-root
// module generated... contains a static ping#").
func (g *Generator) emitPing() {
	g.e.BeginMethod("ping#", true, il.Static, false)
	g.e.SetReturnType("")
	g.e.Ret()
	g.e.EndMethod()
}
