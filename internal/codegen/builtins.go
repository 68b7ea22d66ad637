package codegen

import "github.com/seanpm2001/Oberon/internal/ast"

// lowerBuiltin dispatches each built-in of spec.md §4.6.5 to its bespoke
// lowering.
func (s *stmtLowerer) lowerBuiltin(n *ast.Call, wantResult bool) {
	g := s.g
	b := n.Builtin
	args := n.Args

	switch b.Tag {
	case ast.BINEW:
		s.lowerNew(args)
	case ast.BIINC, ast.BIDEC:
		s.lowerIncDec(args, b.Tag == ast.BIDEC)
	case ast.BIINCL, ast.BIEXCL:
		s.lowerInclExcl(args, b.Tag == ast.BIEXCL)
	case ast.BILEN:
		s.pushExpr(args[0].Value)
		g.e.LoadLen()
	case ast.BIORD, ast.BICHR, ast.BIFLT, ast.BISHORT, ast.BILONG:
		s.pushExpr(args[0].Value)
		g.e.Conv(g.typeRef(n.Typ))
	case ast.BIFLOOR:
		s.pushExpr(args[0].Value)
		g.e.Conv("int32")
	case ast.BIABS:
		s.pushExpr(args[0].Value)
		g.e.Call("int32 OBX.Runtime::ABS(int32)", 1, true)
	case ast.BIODD:
		s.pushExpr(args[0].Value)
		g.e.LoadInt32(1)
		g.e.And()
		g.e.LoadInt32(1)
		g.e.Ceq()
	case ast.BIMIN:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Call("int32 OBX.Runtime::MIN(int32, int32)", 2, true)
	case ast.BIMAX:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Call("int32 OBX.Runtime::MAX(int32, int32)", 2, true)
	case ast.BILSL:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Shl()
	case ast.BIASR:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Shr()
	case ast.BIROR:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Call("int32 OBX.Runtime::ROR(int32, int32)", 2, true)
	case ast.BIBITAND:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.And()
	case ast.BIBITOR:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Or()
	case ast.BIBITXOR:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Xor()
	case ast.BIBITNOT:
		s.pushExpr(args[0].Value)
		g.e.Not()
	case ast.BIPACK:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Call("void OBX.Runtime::PACK(float64&, int32)", 2, false)
	case ast.BIUNPK:
		s.pushExpr(args[0].Value)
		s.pushExpr(args[1].Value)
		g.e.Call("void OBX.Runtime::UNPK(float64&, int32&)", 2, false)
	case ast.BIASSERT:
		s.pushExpr(args[0].Value)
		g.e.Call("void OBX.Runtime::ASSERT(bool)", 1, false)
	case ast.BITRAP:
		g.e.Call("void OBX.Runtime::TRAP()", 0, false)
	case ast.BITRAPIF:
		s.pushExpr(args[0].Value)
		g.e.Call("void OBX.Runtime::TRAPIF(bool)", 1, false)
	case ast.BIBYTESIZE:
		// spec.md §9: pointers/records/arrays currently return placeholder
		// constants (4 for pointers, 1 otherwise) rather than a real size;
		// preserved here as the documented limitation rather than computed.
		g.e.LoadInt32(byteSizePlaceholder(args[0].Value.ExprType()))
	case ast.BIDEFAULT:
		g.pushInitializer(n.Typ)
	case ast.BIVAL:
		// §9: LEN/VAL-adjacent extensions are narrowed to the single-arg
		// behavior the spec preserves; VAL reinterprets via a checked conv.
		s.pushExpr(args[0].Value)
		g.e.Conv(g.typeRef(n.Typ))
	case ast.BIADR:
		s.pushDesignatorAddr(args[0].Value)
	case ast.BIPRINTLN:
		s.pushExpr(args[0].Value)
		g.e.Call("void OBX.Runtime::PRINTLN("+g.typeRef(args[0].Value.ExprType())+")", 1, false)
	default:
		g.e.LoadNull()
	}

	_ = wantResult
}

func byteSizePlaceholder(t ast.Type) int32 {
	switch ast.Deref(t).(type) {
	case *ast.PointerType:
		return 4
	default:
		return 1
	}
}

// lowerNew implements NEW: address-of the designator, optional length
// expressions, calls the per-type initializer, stores the result.
func (s *stmtLowerer) lowerNew(args []ast.Arg) {
	g := s.g
	target := args[0].Value
	t := ast.Deref(target.ExprType())

	if at, ok := t.(*ast.ArrayType); ok && len(args) > 1 {
		s.storeDesignator(target, func() {
			s.pushExpr(args[1].Value)
			g.e.NewArr(g.typeRef(at.Elem))
		})
		return
	}

	s.storeDesignator(target, func() { g.pushInitializer(t) })
}

// lowerIncDec lowers INC/DEC as ASSIGN(x, ADD(x, step)) (SUB for DEC),
// emitting the load, add/sub and store directly (spec.md §4.6.5). step is 1
// for single-argument form.
func (s *stmtLowerer) lowerIncDec(args []ast.Arg, isDec bool) {
	g := s.g
	target := args[0].Value

	s.storeDesignator(target, func() {
		s.pushExpr(target)
		if len(args) > 1 {
			s.pushExpr(args[1].Value)
		} else {
			g.e.LoadInt32(1)
		}
		if isDec {
			g.e.Sub()
		} else {
			g.e.Add()
		}
	})
}

// lowerInclExcl implements INCL/EXCL as load+mutate+store against a runtime
// helper (spec.md §4.6.5): the target is loaded again rather than dup'd.
func (s *stmtLowerer) lowerInclExcl(args []ast.Arg, isExcl bool) {
	g := s.g
	target := args[0].Value
	helper := "addElemToSet"
	if isExcl {
		helper = "removeElemFromSet"
	}

	s.storeDesignator(target, func() {
		s.pushExpr(target)
		s.pushExpr(args[1].Value)
		g.e.Call("int32 OBX.Runtime::"+helper+"(int32, int32)", 2, true)
	})
}
