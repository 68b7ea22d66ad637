package codegen

import "github.com/seanpm2001/Oberon/internal/ast"

// pushExpr lowers n, leaving its value on the stack (spec.md §4.6.5).
func (s *stmtLowerer) pushExpr(n ast.Expr) {
	g := s.g
	switch e := n.(type) {
	case *ast.Literal:
		s.pushLiteral(e)
	case *ast.IdentLeaf:
		s.pushIdent(e)
	case *ast.IdentSel:
		s.pushSel(e)
	case *ast.Unary:
		s.pushUnary(e)
	case *ast.Binary:
		s.pushBinary(e)
	case *ast.SetCtor:
		s.pushSetCtor(e)
	case *ast.Call:
		s.lowerCall(e, true)
	default:
		g.e.LoadNull()
	}
}

func (s *stmtLowerer) pushLiteral(n *ast.Literal) {
	g := s.g
	v := n.Value
	switch {
	case v.Str != "":
		g.e.LoadString("\"" + v.Str + "\"\x00")
	default:
		switch ast.Deref(n.Typ).(type) {
		case *ast.BaseType:
			bt := ast.Deref(n.Typ).(*ast.BaseType)
			switch bt.Tag {
			case ast.REAL:
				g.e.LoadFloat32(formatFloat(v.Float))
			case ast.LONGREAL:
				g.e.LoadFloat64(formatFloat(v.Float))
			case ast.LONGINT:
				g.e.LoadInt64(v.Int)
			case ast.BOOLEAN:
				if v.Bool {
					g.e.LoadInt32(1)
				} else {
					g.e.LoadInt32(0)
				}
			case ast.CHAR, ast.WCHAR:
				g.e.LoadInt32(int32(v.Ch))
			default:
				g.e.LoadInt32(int32(v.Int))
			}
		default:
			g.e.LoadInt32(int32(v.Int))
		}
	}
}

func formatFloat(f float64) string {
	return floatLiteral(f)
}

func (s *stmtLowerer) pushIdent(n *ast.IdentLeaf) {
	g := s.g
	switch d := n.Decl.(type) {
	case *ast.Variable:
		g.e.LoadStaticField(g.moduleCN + "::" + d.Name)
	case *ast.Param:
		idx, ok := s.loc.params[d]
		if !ok {
			g.e.LoadNull()
			return
		}
		if d.ByRef && !isStructured(d.Type) {
			g.e.LoadArg(idx, d.Name)
			g.e.LoadIndirect(g.typeRef(d.Type))
			return
		}
		g.e.LoadArg(idx, d.Name)
	case *ast.LocalVar:
		idx, ok := s.loc.vars[d]
		if !ok {
			g.e.LoadNull()
			return
		}
		g.e.LoadLocal(idx, d.Name)
	case *ast.Const:
		s.pushConst(d)
	default:
		g.e.LoadNull()
	}
}

func (s *stmtLowerer) pushConst(c *ast.Const) {
	g := s.g
	v := c.Value
	switch ast.Deref(v.Type).(type) {
	case *ast.BaseType:
		bt := ast.Deref(v.Type).(*ast.BaseType)
		switch bt.Tag {
		case ast.REAL:
			g.e.LoadFloat32(formatFloat(v.Float))
		case ast.LONGREAL:
			g.e.LoadFloat64(formatFloat(v.Float))
		case ast.LONGINT:
			g.e.LoadInt64(v.Int)
		case ast.BOOLEAN:
			if v.Bool {
				g.e.LoadInt32(1)
			} else {
				g.e.LoadInt32(0)
			}
		default:
			g.e.LoadInt32(int32(v.Int))
		}
	default:
		g.e.LoadInt32(int32(v.Int))
	}
}

// pushSel lowers a dotted selection: descend into the subject, then load
// the field or module-level member (spec.md §4.6.5).
func (s *stmtLowerer) pushSel(n *ast.IdentSel) {
	g := s.g
	if imp, ok := n.Subject.(*ast.IdentLeaf); ok {
		if importDecl, ok := imp.Decl.(*ast.Import); ok {
			switch d := n.Decl.(type) {
			case *ast.Variable:
				g.e.LoadStaticField(importDecl.ModuleName + "::" + d.Name)
				return
			}
		}
	}
	s.pushExpr(n.Subject)
	if f, ok := n.Decl.(*ast.Field); ok {
		g.e.LoadField(g.className(f.Owner) + "::" + f.Name)
	}
}

func (s *stmtLowerer) pushUnary(n *ast.Unary) {
	g := s.g
	switch n.Op {
	case ast.UNeg:
		s.pushExpr(n.Operand)
		g.e.Neg()
	case ast.UNot:
		s.pushExpr(n.Operand)
		g.e.Not()
		g.e.LoadInt32(1)
		g.e.Xor()
	case ast.UDeref:
		s.pushExpr(n.Operand)
		g.e.LoadIndirect(g.typeRef(n.Typ))
	case ast.UAddrOf:
		s.pushDesignatorAddr(n.Operand)
	case ast.UIdx:
		s.pushExpr(n.Operand)
		s.pushExpr(n.Index)
		g.e.LoadElem(g.typeRef(n.Typ))
	case ast.UCast:
		s.pushExpr(n.Operand)
		g.e.IsInst(g.typeRef(n.CastType))
	default:
		s.pushExpr(n.Operand)
	}
}

func (s *stmtLowerer) pushBinary(n *ast.Binary) {
	g := s.g
	switch n.Op {
	case ast.BAnd:
		s.pushShortCircuit(n, false)
		return
	case ast.BOr:
		s.pushShortCircuit(n, true)
		return
	case ast.BDivOp:
		s.pushExpr(n.Left)
		s.pushExpr(n.Right)
		g.e.Call("int32 OBX.Runtime::DIV(int32, int32)", 2, true)
		return
	case ast.BMod:
		s.pushExpr(n.Left)
		s.pushExpr(n.Right)
		g.e.Call("int32 OBX.Runtime::MOD(int32, int32)", 2, true)
		return
	case ast.BIn:
		s.pushExpr(n.Left)
		s.pushExpr(n.Right)
		g.e.Call("bool OBX.Runtime::IN(int32, int32)", 2, true)
		return
	case ast.BIs:
		s.pushExpr(n.Left)
		g.e.IsInst(g.typeRef(n.Right.ExprType()))
		g.e.LoadNull()
		g.e.Ceq()
		g.e.LoadInt32(0)
		g.e.Ceq()
		return
	}

	s.pushExpr(n.Left)
	s.pushExpr(n.Right)
	switch n.Op {
	case ast.BAdd:
		g.e.Add()
	case ast.BSub:
		g.e.Sub()
	case ast.BMul:
		g.e.Mul()
	case ast.BDiv:
		g.e.DivF()
	case ast.BFDiv:
		g.e.Xor()
	case ast.BEq:
		g.e.Ceq()
	case ast.BNeq:
		g.e.Ceq()
		g.e.LoadInt32(1)
		g.e.Xor()
	case ast.BLt:
		g.e.Clt()
	case ast.BLeq:
		g.e.Cle()
	case ast.BGt:
		g.e.Cgt()
	case ast.BGeq:
		g.e.Cge()
	case ast.BSetUnion:
		g.e.Or()
	case ast.BSetInter:
		g.e.And()
	case ast.BSetDiff:
		g.e.AndNot()
	case ast.BSetSymDiff:
		g.e.Xor()
	}
}

// pushShortCircuit lowers AND/OR with label-based fall-through (spec.md
// §4.6.5). isOr selects OR's short-circuit-on-true behavior.
func (s *stmtLowerer) pushShortCircuit(n *ast.Binary, isOr bool) {
	g := s.g
	shortcut := g.e.NewLabel()
	end := g.e.NewLabel()

	s.pushExpr(n.Left)
	if isOr {
		g.e.BrTrue(shortcut)
	} else {
		g.e.BrFalse(shortcut)
	}
	s.pushExpr(n.Right)
	g.e.Br(end)
	g.e.PlaceLabel(shortcut)
	if isOr {
		g.e.LoadInt32(1)
	} else {
		g.e.LoadInt32(0)
	}
	g.e.PlaceLabel(end)
}

// pushSetCtor folds a set literal into runtime addElemToSet/addRangeToSet
// calls starting from 0 (spec.md §4.6.5).
func (s *stmtLowerer) pushSetCtor(n *ast.SetCtor) {
	g := s.g
	g.e.LoadInt32(0)
	for _, elem := range n.Elems {
		if elem.Hi == nil {
			s.pushExpr(elem.Lo)
			g.e.Call("int32 OBX.Runtime::addElemToSet(int32, int32)", 2, true)
		} else {
			s.pushExpr(elem.Lo)
			s.pushExpr(elem.Hi)
			g.e.Call("int32 OBX.Runtime::addRangeToSet(int32, int32, int32)", 3, true)
		}
	}
}

// pushDesignatorAddr pushes the address of a mutable storage location
// (spec.md glossary: "Designator").
func (s *stmtLowerer) pushDesignatorAddr(n ast.Expr) {
	g := s.g
	switch e := n.(type) {
	case *ast.IdentLeaf:
		switch d := e.Decl.(type) {
		case *ast.Variable:
			g.e.LoadStaticFieldAddr(g.moduleCN + "::" + d.Name)
		case *ast.Param:
			idx := s.loc.params[d]
			g.e.LoadArgAddr(idx, d.Name)
		case *ast.LocalVar:
			idx := s.loc.vars[d]
			g.e.LoadLocalAddr(idx, d.Name)
		}
	case *ast.IdentSel:
		s.pushExpr(e.Subject)
		if f, ok := e.Decl.(*ast.Field); ok {
			g.e.LoadFieldAddr(g.className(f.Owner) + "::" + f.Name)
		}
	case *ast.Unary:
		if e.Op == ast.UIdx {
			s.pushExpr(e.Operand)
			s.pushExpr(e.Index)
			g.e.LoadElemAddr(g.typeRef(e.Typ))
		} else if e.Op == ast.UDeref {
			s.pushExpr(e.Operand)
		}
	default:
		g.e.LoadNull()
	}
}

// storeDesignator pushes target's addressing components, invokes
// pushValue to produce the value, and emits the matching store opcode.
func (s *stmtLowerer) storeDesignator(target ast.Expr, pushValue func()) {
	g := s.g
	switch e := target.(type) {
	case *ast.IdentLeaf:
		switch d := e.Decl.(type) {
		case *ast.Variable:
			pushValue()
			g.e.StoreStaticField(g.moduleCN + "::" + d.Name)
		case *ast.Param:
			idx := s.loc.params[d]
			pushValue()
			g.e.StoreArg(idx, d.Name)
		case *ast.LocalVar:
			idx := s.loc.vars[d]
			pushValue()
			g.e.StoreLocal(idx, d.Name)
		}
	case *ast.IdentSel:
		s.pushExpr(e.Subject)
		pushValue()
		if f, ok := e.Decl.(*ast.Field); ok {
			g.e.StoreField(g.className(f.Owner) + "::" + f.Name)
		}
	case *ast.Unary:
		if e.Op == ast.UIdx {
			s.pushExpr(e.Operand)
			s.pushExpr(e.Index)
			pushValue()
			g.e.StoreElem(g.typeRef(e.Typ))
		} else if e.Op == ast.UDeref {
			s.pushExpr(e.Operand)
			pushValue()
			g.e.StoreIndirect(g.typeRef(e.Typ))
		}
	}
}
