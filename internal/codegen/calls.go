package codegen

import "github.com/seanpm2001/Oberon/internal/ast"

// lowerCall lowers a call expression (spec.md §4.6.5): prepare the receiver
// (if type-bound), push each argument with reference/value discipline
// (§4.6.7), then call or callvirt. wantResult is false when the call is
// used as a statement and its value, if any, should be discarded.
func (s *stmtLowerer) lowerCall(n *ast.Call, wantResult bool) {
	g := s.g
	if n.Builtin != nil {
		s.lowerBuiltin(n, wantResult)
		return
	}

	sel, isSel := n.Callee.(*ast.IdentSel)
	var proc *ast.Procedure
	switch {
	case isSel:
		if p, ok := sel.Decl.(*ast.Procedure); ok {
			proc = p
		}
	default:
		if leaf, ok := n.Callee.(*ast.IdentLeaf); ok {
			if p, ok := leaf.Decl.(*ast.Procedure); ok {
				proc = p
			}
		}
	}

	if proc == nil {
		s.lowerIndirectCall(n, wantResult)
		return
	}

	argCount := 0
	boundCall := proc.Receiver != nil
	if boundCall {
		if isSel {
			s.pushExpr(sel.Subject)
		} else {
			g.e.LoadArg(0, "this")
		}
		argCount++
	}
	for i, arg := range n.Args {
		s.pushArgument(proc.Params[i], arg.Value)
		argCount++
	}

	ref := g.procRef(proc)
	hasResult := proc.Return != nil
	if boundCall && !n.Super {
		g.e.CallVirt(ref, argCount, hasResult)
	} else {
		g.e.Call(ref, argCount, hasResult)
	}
	if hasResult && !wantResult {
		g.e.Pop()
	}
}

// procRef renders the textual member reference for calling proc, prefixed
// with its return type (spec.md §4.6.7's call/callvirt convention).
func (g *Generator) procRef(proc *ast.Procedure) string {
	owner := g.moduleCN
	if proc.Receiver != nil {
		if rt, ok := ast.Deref(proc.Receiver.Type).(*ast.RecordType); ok {
			owner = g.className(rt)
		}
	}
	ret := "void"
	if proc.Return != nil {
		ret = g.typeRef(proc.Return)
	}
	return ret + " " + owner + "::" + proc.Name
}

// pushArgument implements spec.md §4.6.7's by-reference/by-value discipline.
func (s *stmtLowerer) pushArgument(formal *ast.Param, actual ast.Expr) {
	if formal.ByRef && !isStructured(formal.Type) {
		s.pushDesignatorAddr(actual)
		return
	}
	if _, ok := ast.Deref(formal.Type).(*ast.ProcType); ok {
		s.pushProcValue(actual)
		return
	}
	s.pushExpr(actual)
}

// pushProcValue materializes a delegate for a procedure-value argument
// (spec.md §4.6.7): bound procedures duplicate the receiver then
// ldvirtftn; plain procedures push null then ldftn; both then newobj the
// delegate constructor.
func (s *stmtLowerer) pushProcValue(actual ast.Expr) {
	g := s.g
	pt, _ := ast.Deref(actual.ExprType()).(*ast.ProcType)
	delegateCls := ""
	if pt != nil {
		delegateCls = g.typeRef(pt)
	}

	sel, isSel := actual.(*ast.IdentSel)
	if isSel {
		if proc, ok := sel.Decl.(*ast.Procedure); ok && proc.Receiver != nil {
			s.pushExpr(sel.Subject)
			g.e.Dup()
			g.e.LdVirtFtn(g.procRef(proc))
			g.e.NewObj(delegateCls+"::.ctor(object, native unsigned int)", 2)
			return
		}
	}
	if leaf, ok := actual.(*ast.IdentLeaf); ok {
		if proc, ok := leaf.Decl.(*ast.Procedure); ok {
			g.e.LoadNull()
			g.e.LdFtn(g.procRef(proc))
			g.e.NewObj(delegateCls+"::.ctor(object, native unsigned int)", 2)
			return
		}
	}
	// actual is already a delegate-typed value (e.g. a variable/field).
	s.pushExpr(actual)
}

// lowerIndirectCall lowers a call through a delegate value: callvirt Invoke.
func (s *stmtLowerer) lowerIndirectCall(n *ast.Call, wantResult bool) {
	g := s.g
	s.pushExpr(n.Callee)
	argCount := 1
	for _, arg := range n.Args {
		s.pushExpr(arg.Value)
		argCount++
	}
	pt, _ := ast.Deref(n.Callee.ExprType()).(*ast.ProcType)
	hasResult := pt != nil && pt.Return != nil
	ref := "void Invoke"
	if pt != nil {
		ret := "void"
		if pt.Return != nil {
			ret = g.typeRef(pt.Return)
		}
		ref = ret + " " + g.typeRef(pt) + "::Invoke"
	}
	g.e.CallVirt(ref, argCount, hasResult)
	if hasResult && !wantResult {
		g.e.Pop()
	}
}
