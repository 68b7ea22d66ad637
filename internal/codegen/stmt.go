package codegen

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/report"
)

// stmtLowerer holds the per-procedure context statement/expression lowering
// needs: the generator, this procedure's slot assignment, and (nested in
// Generator) the LOOP exit-label stack.
type stmtLowerer struct {
	g    *Generator
	loc  *locals
	proc *ast.Procedure
}

// prologue implements spec.md §4.6.8: for every by-value structured
// parameter, materialize a fresh instance and copy the caller's value in,
// then rebind the parameter slot to it. Structured locals are initialized
// the same way.
func (s *stmtLowerer) prologue() {
	if s.proc == nil {
		return
	}
	g := s.g
	for _, p := range s.proc.Params {
		if p.ByRef || !isStructured(p.Type) {
			continue
		}
		idx := s.loc.params[p]
		g.pushArgCopy(idx, p.Type)
		g.e.StoreArg(idx, p.Name)
	}
	for _, l := range s.proc.Locals {
		if !isStructured(l.Type) {
			continue
		}
		idx := s.loc.vars[l]
		g.pushInitializer(l.Type)
		g.e.StoreLocal(idx, l.Name)
	}
}

// pushArgCopy materializes a fresh structured instance and copies the
// actual argument at idx into it, leaving the new instance on the stack.
func (g *Generator) pushArgCopy(idx int, t ast.Type) {
	switch n := ast.Deref(t).(type) {
	case *ast.RecordType:
		g.e.NewObj(g.className(n)+"::.ctor()", 0)
		tmp := g.e.AllocLocal(g.typeRef(t))
		g.e.StoreLocal(tmp, "$tmp")
		g.e.LoadLocal(tmp, "$tmp")
		g.e.LoadArg(idx, "")
		g.e.CallVirt("void "+g.className(n)+"::#copy("+g.className(n)+")", 2, false)
		g.e.LoadLocal(tmp, "$tmp")
		g.e.FreeLocal(tmp)
	case *ast.ArrayType:
		g.e.LoadArg(idx, "")
		g.e.LoadLen()
		g.e.NewArr(g.typeRef(n.Elem))
		tmp := g.e.AllocLocal(g.typeRef(t))
		g.e.StoreLocal(tmp, "$tmp")
		ref := g.requestArrayCopier(n)
		g.e.LoadLocal(tmp, "$tmp")
		g.e.LoadArg(idx, "")
		g.e.Call(ref, 2, false)
		g.e.LoadLocal(tmp, "$tmp")
		g.e.FreeLocal(tmp)
	default:
		g.e.LoadArg(idx, "")
	}
}

func (s *stmtLowerer) lowerBlock(body []ast.Stmt) {
	for _, st := range body {
		s.lower(st)
	}
}

func (s *stmtLowerer) lower(stmt ast.Stmt) {
	g := s.g
	switch n := stmt.(type) {
	case *ast.Assign:
		s.lowerAssign(n)
	case *ast.CallStmt:
		s.lowerCall(n.Call, false)
	case *ast.IfStmt:
		s.lowerIf(n)
	case *ast.WhileStmt:
		s.lowerWhile(n)
	case *ast.RepeatStmt:
		s.lowerRepeat(n)
	case *ast.LoopStmt:
		s.lowerLoop(n)
	case *ast.ForStmt:
		s.lowerFor(n)
	case *ast.CaseStmt:
		s.lowerCase(n)
	case *ast.WithStmt:
		s.lowerWith(n)
	case *ast.ExitStmt:
		if len(g.exitLabels) == 0 {
			g.errs.Error(report.GeneratorError, g.mod.Name, nil, "EXIT outside of a LOOP")
			return
		}
		g.e.Br(g.exitLabels[len(g.exitLabels)-1])
	case *ast.ReturnStmt:
		s.lowerReturn(n)
	}
}

func (s *stmtLowerer) lowerAssign(n *ast.Assign) {
	g := s.g
	if isStructured(n.Target.ExprType()) {
		s.pushExpr(n.Target)
		g.copyInto(n.Target.ExprType(), func() { s.pushExpr(n.Value) })
		return
	}
	s.storeDesignator(n.Target, func() { s.pushExpr(n.Value) })
}

// lowerIf implements the IF/ELSIF/ELSE chain of spec.md §4.6.9: each arm
// tests its condition with a brfalse to the next arm, falls through to its
// body, then jumps to the end.
func (s *stmtLowerer) lowerIf(n *ast.IfStmt) {
	g := s.g
	end := g.e.NewLabel()
	for _, arm := range n.Arms {
		next := g.e.NewLabel()
		s.pushExpr(arm.Cond)
		g.e.BrFalse(next)
		s.lowerBlock(arm.Body)
		g.e.Br(end)
		g.e.PlaceLabel(next)
	}
	if n.Else != nil {
		s.lowerBlock(n.Else)
	}
	g.e.PlaceLabel(end)
}

// lowerWhile rewrites to LOOP { IF NOT cond THEN EXIT END; body } per
// spec.md §4.6.9, implemented directly rather than through an AST rewrite.
func (s *stmtLowerer) lowerWhile(n *ast.WhileStmt) {
	g := s.g
	top := g.e.NewLabel()
	exit := g.e.NewLabel()
	g.exitLabels = append(g.exitLabels, exit)

	g.e.PlaceLabel(top)
	s.pushExpr(n.Cond)
	g.e.BrFalse(exit)
	s.lowerBlock(n.Body)
	g.e.Br(top)
	g.e.PlaceLabel(exit)

	g.exitLabels = g.exitLabels[:len(g.exitLabels)-1]
}

func (s *stmtLowerer) lowerRepeat(n *ast.RepeatStmt) {
	g := s.g
	top := g.e.NewLabel()
	g.e.PlaceLabel(top)
	s.lowerBlock(n.Body)
	s.pushExpr(n.Cond)
	g.e.BrFalse(top)
}

// lowerLoop pushes a fresh exit label per LOOP nesting level, fixing the
// source's single-slot exit-label bug the spec documents as an open
// question (spec.md §9): nested LOOPs now EXIT to their own innermost
// label instead of sharing one.
func (s *stmtLowerer) lowerLoop(n *ast.LoopStmt) {
	g := s.g
	top := g.e.NewLabel()
	exit := g.e.NewLabel()
	g.exitLabels = append(g.exitLabels, exit)

	g.e.PlaceLabel(top)
	s.lowerBlock(n.Body)
	g.e.Br(top)
	g.e.PlaceLabel(exit)

	g.exitLabels = g.exitLabels[:len(g.exitLabels)-1]
}

// lowerFor rewrites to assign-then-WHILE with a step test (spec.md §4.6.9).
func (s *stmtLowerer) lowerFor(n *ast.ForStmt) {
	g := s.g
	idx := s.loc.vars[n.Var]

	s.pushExpr(n.Start)
	g.e.StoreLocal(idx, n.Var.Name)

	top := g.e.NewLabel()
	exit := g.e.NewLabel()
	g.exitLabels = append(g.exitLabels, exit)

	g.e.PlaceLabel(top)
	g.e.LoadLocal(idx, n.Var.Name)
	s.pushExpr(n.End)
	if n.Step >= 0 {
		g.e.Cle()
	} else {
		g.e.Cge()
	}
	g.e.BrFalse(exit)

	s.lowerBlock(n.Body)

	g.e.LoadLocal(idx, n.Var.Name)
	g.e.LoadInt64(n.Step)
	g.e.Add()
	g.e.StoreLocal(idx, n.Var.Name)
	g.e.Br(top)
	g.e.PlaceLabel(exit)

	g.exitLabels = g.exitLabels[:len(g.exitLabels)-1]
}

// lowerCase rewrites a value-CASE into an IF-chain (ranges expand to
// GEQ-AND-LEQ, multiple labels OR together) or, for a type-CASE, an
// IF-chain of IS tests (spec.md §4.6.9).
func (s *stmtLowerer) lowerCase(n *ast.CaseStmt) {
	g := s.g
	end := g.e.NewLabel()

	for _, arm := range n.Arms {
		next := g.e.NewLabel()
		if arm.TypeLabel != nil {
			s.pushExpr(n.Subject)
			g.e.IsInst(g.typeRef(arm.TypeLabel))
			g.e.LoadNull()
			g.e.Ceq()
			g.e.LoadInt32(0)
			g.e.Ceq()
			g.e.BrFalse(next)
		} else {
			s.pushCaseLabelTest(n.Subject, arm.Labels)
			g.e.BrFalse(next)
		}
		s.lowerBlock(arm.Body)
		g.e.Br(end)
		g.e.PlaceLabel(next)
	}
	if n.Else != nil {
		s.lowerBlock(n.Else)
	}
	g.e.PlaceLabel(end)
}

func (s *stmtLowerer) pushCaseLabelTest(subject ast.Expr, labels []ast.CaseLabel) {
	g := s.g
	for i, lbl := range labels {
		if lbl.High == nil {
			s.pushExpr(subject)
			s.pushExpr(lbl.Low)
			g.e.Ceq()
		} else {
			s.pushExpr(subject)
			s.pushExpr(lbl.Low)
			g.e.Cge()
			s.pushExpr(subject)
			s.pushExpr(lbl.High)
			g.e.Cle()
			g.e.And()
		}
		if i > 0 {
			g.e.Or()
		}
	}
}

// lowerWith lowers each type-guard arm the same way as a type-CASE arm.
func (s *stmtLowerer) lowerWith(n *ast.WithStmt) {
	g := s.g
	end := g.e.NewLabel()
	for _, arm := range n.Arms {
		next := g.e.NewLabel()
		s.pushExpr(arm.Subject)
		g.e.IsInst(g.typeRef(arm.Type))
		g.e.LoadNull()
		g.e.Ceq()
		g.e.LoadInt32(0)
		g.e.Ceq()
		g.e.BrFalse(next)
		s.lowerBlock(arm.Body)
		g.e.Br(end)
		g.e.PlaceLabel(next)
	}
	if n.Else != nil {
		s.lowerBlock(n.Else)
	}
	g.e.PlaceLabel(end)
}

// lowerReturn implements spec.md §4.6.9: a structured return value is
// copied into a fresh instance via #copy/the array copier before ret.
func (s *stmtLowerer) lowerReturn(n *ast.ReturnStmt) {
	g := s.g
	if n.Value == nil {
		g.e.Ret()
		return
	}
	t := n.Value.ExprType()
	if !isStructured(t) {
		s.pushExpr(n.Value)
		g.e.Ret()
		return
	}

	switch rt := ast.Deref(t).(type) {
	case *ast.RecordType:
		g.e.NewObj(g.className(rt)+"::.ctor()", 0)
		tmp := g.e.AllocLocal(g.typeRef(t))
		g.e.StoreLocal(tmp, "$tmp")
		g.e.LoadLocal(tmp, "$tmp")
		s.pushExpr(n.Value)
		g.e.CallVirt("void "+g.className(rt)+"::#copy("+g.className(rt)+")", 2, false)
		g.e.LoadLocal(tmp, "$tmp")
		g.e.FreeLocal(tmp)
	case *ast.ArrayType:
		s.pushExpr(n.Value)
		g.e.LoadLen()
		g.e.NewArr(g.typeRef(rt.Elem))
		tmp := g.e.AllocLocal(g.typeRef(t))
		g.e.StoreLocal(tmp, "$tmp")
		ref := g.requestArrayCopier(rt)
		g.e.LoadLocal(tmp, "$tmp")
		s.pushExpr(n.Value)
		g.e.Call(ref, 2, false)
		g.e.LoadLocal(tmp, "$tmp")
		g.e.FreeLocal(tmp)
	}
	g.e.Ret()
}

// copyInto assigns a structured value to an already-addressed designator
// via #copy/the array copier (used by lowerAssign for record/array
// targets): pushValue leaves the source value on the stack.
func (g *Generator) copyInto(t ast.Type, pushValue func()) {
	switch n := ast.Deref(t).(type) {
	case *ast.RecordType:
		pushValue()
		g.e.CallVirt("void "+g.className(n)+"::#copy("+g.className(n)+")", 2, false)
	case *ast.ArrayType:
		ref := g.requestArrayCopier(n)
		pushValue()
		g.e.Call(ref, 2, false)
	}
}
