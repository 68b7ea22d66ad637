package codegen

import (
	"strings"
	"testing"

	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/emitter"
	"github.com/seanpm2001/Oberon/internal/report"
	"github.com/seanpm2001/Oberon/internal/sigres"
	"github.com/seanpm2001/Oberon/internal/textasm"
)

func generate(t *testing.T, mod *ast.Module) (string, *report.Collector) {
	t.Helper()
	errs := report.NewCollector()
	r := textasm.New()
	e := emitter.New(r)
	g := New(Options{}, sigres.New(), errs)
	if !g.Generate(mod, e) {
		for _, d := range errs.All() {
			t.Logf("diagnostic: %s", d.Message)
		}
	}
	return r.String(), errs
}

func intType() ast.Type {
	return &ast.BaseType{Tag: ast.INTEGER}
}

// TestEmptyModule covers spec.md §8 scenario 1: a module with no
// declarations and no body produces a class with only .cctor and ping#,
// both containing only ret.
func TestEmptyModule(t *testing.T) {
	mod := &ast.Module{Name: "M"}
	out, errs := generate(t, mod)
	if errs.HadErrors() {
		t.Fatalf("unexpected errors: %v", errs.All())
	}
	if !strings.Contains(out, ".class public M") {
		t.Fatalf("missing module class:\n%s", out)
	}
	if !strings.Contains(out, ".method public static void ping#()") {
		t.Fatalf("missing ping#:\n%s", out)
	}
	if !strings.Contains(out, ".method private static void .cctor()") {
		t.Fatalf("missing .cctor:\n%s", out)
	}
}

// TestRecordWithBaseCopyCallsBaseFirst covers spec.md §8 scenario 2: the
// derived record's #copy calls the base's #copy before copying its own
// field.
func TestRecordWithBaseCopyCallsBaseFirst(t *testing.T) {
	base := &ast.RecordType{Name: "Base"}
	base.Fields = []*ast.Field{{Name: "x", Type: intType(), Owner: base}}

	derived := &ast.RecordType{Name: "Derived", BaseRecord: base}
	derived.Fields = []*ast.Field{{Name: "y", Type: intType(), Owner: derived}}
	base.Subs = []*ast.RecordType{derived}

	mod := &ast.Module{
		Name: "M",
		Decls: []ast.Decl{
			&ast.NamedType{Name: "Base", Type: base, Public: true},
			&ast.NamedType{Name: "Derived", Type: derived, Public: true},
		},
	}

	out, errs := generate(t, mod)
	if errs.HadErrors() {
		t.Fatalf("unexpected errors: %v", errs.All())
	}
	if !strings.Contains(out, "call void Base::#copy(Base)") {
		t.Fatalf("expected derived #copy to call base #copy:\n%s", out)
	}
}

// TestDelegateClassNamedByNormalizedSignatureHash covers spec.md §4.6.4.
func TestDelegateClassNamedByNormalizedSignatureHash(t *testing.T) {
	pt := &ast.ProcType{Params: []ast.ProcParam{{Type: intType()}}}
	v := &ast.Variable{Name: "cb", Type: pt, Public: true}
	mod := &ast.Module{Name: "M", Decls: []ast.Decl{v}}

	out, errs := generate(t, mod)
	if errs.HadErrors() {
		t.Fatalf("unexpected errors: %v", errs.All())
	}
	want := delegateClassName(normalizeProcSignature(pt))
	if !strings.Contains(out, ".class public "+want) {
		t.Fatalf("expected delegate class %s:\n%s", want, out)
	}
	if !strings.Contains(out, "extends System.MulticastDelegate") {
		t.Fatalf("expected delegate base class:\n%s", out)
	}
}

// TestDivModLowerToRuntimeHelpers covers spec.md §8 scenario 6: DIV/MOD
// lower to runtime helper calls rather than the native div/rem opcodes.
func TestDivModLowerToRuntimeHelpers(t *testing.T) {
	seven := &ast.Literal{Value: ast.ConstVal{Type: intType(), Int: 7}}
	two := &ast.Literal{Value: ast.ConstVal{Type: intType(), Int: 2}}
	seven.Typ = intType()
	two.Typ = intType()
	div := &ast.Binary{Op: ast.BDivOp, Left: seven, Right: two}
	div.Typ = intType()

	proc := &ast.Procedure{
		Name:   "P",
		Return: intType(),
		Body:   []ast.Stmt{&ast.ReturnStmt{Value: div}},
	}
	mod := &ast.Module{Name: "M", Decls: []ast.Decl{proc}}

	out, errs := generate(t, mod)
	if errs.HadErrors() {
		t.Fatalf("unexpected errors: %v", errs.All())
	}
	if !strings.Contains(out, "OBX.Runtime::DIV(int32, int32)") {
		t.Fatalf("expected DIV runtime helper call:\n%s", out)
	}
}

// TestEveryNonRootModuleHasPing covers spec.md §8's invariant directly.
func TestEveryNonRootModuleHasPing(t *testing.T) {
	mod := &ast.Module{Name: "Lib"}
	out, _ := generate(t, mod)
	if !strings.Contains(out, "ping#") {
		t.Fatalf("expected every generated module to carry a ping# method:\n%s", out)
	}
}

// TestOpenArrayValueParamCopiesInPrologue covers spec.md §8 scenario 3: a
// by-value open-array parameter is copied into a freshly allocated array of
// the caller's length at procedure entry, via the array's copier.
func TestOpenArrayValueParamCopiesInPrologue(t *testing.T) {
	at := &ast.ArrayType{Elem: intType()}
	p := &ast.Param{Name: "xs", Type: at}
	proc := &ast.Procedure{
		Name:   "P",
		Params: []*ast.Param{p},
		Body:   []ast.Stmt{},
	}
	mod := &ast.Module{Name: "M", Decls: []ast.Decl{proc}}

	out, errs := generate(t, mod)
	if errs.HadErrors() {
		t.Fatalf("unexpected errors: %v", errs.All())
	}
	if !strings.Contains(out, "newarr") {
		t.Fatalf("expected prologue to allocate a fresh array for the by-value copy:\n%s", out)
	}
	if !strings.Contains(out, "ArrCopy$") {
		t.Fatalf("expected prologue to call the array's memoized copier:\n%s", out)
	}
}

// TestSetArithmeticLowersToBitwiseOps covers spec.md §8 scenario 4: set
// union/intersection/difference/symmetric-difference lower to the native
// or/and/andnot/xor opcodes over the 32-bit set representation.
func TestSetArithmeticLowersToBitwiseOps(t *testing.T) {
	setType := func() ast.Type { return &ast.BaseType{Tag: ast.SET} }
	lhs := &ast.Literal{Value: ast.ConstVal{Type: setType(), Int: 0x1}}
	rhs := &ast.Literal{Value: ast.ConstVal{Type: setType(), Int: 0x2}}
	lhs.Typ, rhs.Typ = setType(), setType()

	cases := []struct {
		op   ast.BinaryOp
		want string
	}{
		{ast.BSetUnion, " or\n"},
		{ast.BSetInter, " and\n"},
		{ast.BSetDiff, " andnot\n"},
		{ast.BSetSymDiff, " xor\n"},
	}
	for _, c := range cases {
		bin := &ast.Binary{Op: c.op, Left: lhs, Right: rhs}
		bin.Typ = setType()
		proc := &ast.Procedure{
			Name:   "P",
			Return: setType(),
			Body:   []ast.Stmt{&ast.ReturnStmt{Value: bin}},
		}
		mod := &ast.Module{Name: "M", Decls: []ast.Decl{proc}}

		out, errs := generate(t, mod)
		if errs.HadErrors() {
			t.Fatalf("unexpected errors for %v: %v", c.op, errs.All())
		}
		if !strings.Contains(out, c.want) {
			t.Fatalf("expected %q opcode for op %v:\n%s", c.want, c.op, out)
		}
	}
}
