package emitter

import (
	"testing"

	"github.com/seanpm2001/Oberon/internal/il"
)

type captureBackend struct {
	mods []*il.Module
}

func (c *captureBackend) EmitModule(mod *il.Module) error {
	c.mods = append(c.mods, mod)
	return nil
}

func TestLifecycleBracketDiscipline(t *testing.T) {
	be := &captureBackend{}
	e := New(be)

	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("Main", true, il.Static, false)
	e.Ret()
	e.EndMethod()
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	if len(be.mods) != 1 {
		t.Fatalf("expected 1 module forwarded, got %d", len(be.mods))
	}
	mod := be.mods[0]
	if len(mod.Classes) != 1 || len(mod.Classes[0].Methods) != 1 {
		t.Fatalf("unexpected module shape: %+v", mod)
	}
}

func TestEndModuleWithoutBeginPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unbalanced end_module")
		}
	}()
	e := New(&captureBackend{})
	e.EndModule()
}

func TestBeginClassBeforeModulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for begin_class without begin_module")
		}
	}()
	e := New(&captureBackend{})
	e.BeginClass("C", true, "")
}

func TestMaxStackTracksPeakDepth(t *testing.T) {
	e := New(&captureBackend{})
	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("F", true, il.Static, false)

	e.LoadArg(0, "a")
	e.LoadArg(1, "b")
	e.Add()
	e.Dup()
	e.Pop()
	e.Ret()

	if e.CurrentMethod().MaxStack != 2 {
		t.Fatalf("expected MaxStack 2, got %d", e.CurrentMethod().MaxStack)
	}

	e.EndMethod()
	e.EndClass()
	e.EndModule()
}

func TestCallStackEffectAccountsForResult(t *testing.T) {
	e := New(&captureBackend{})
	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("F", true, il.Static, false)

	e.LoadArg(0, "a")
	e.LoadArg(1, "b")
	e.Call("void class M::P(int32, int32)", 2, false)
	if e.CurrentMethod().MaxStack != 2 {
		t.Fatalf("expected MaxStack 2 before call, got %d", e.CurrentMethod().MaxStack)
	}
	if e.depth != 0 {
		t.Fatalf("expected depth 0 after void call, got %d", e.depth)
	}

	e.LoadArg(0, "a")
	e.Call("int32 class M::Q(int32)", 1, true)
	if e.depth != 1 {
		t.Fatalf("expected depth 1 after value-returning call, got %d", e.depth)
	}
	e.Pop()
	e.Ret()

	e.EndMethod()
	e.EndClass()
	e.EndModule()
}

func TestAllocLocalReusesSlotsAndDeclaresOnce(t *testing.T) {
	e := New(&captureBackend{})
	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("F", true, il.Static, false)

	a := e.AllocLocal("int32")
	e.FreeLocal(a)
	b := e.AllocLocal("int32")
	if a != b {
		t.Fatalf("expected slot reuse, got a=%d b=%d", a, b)
	}
	if len(e.CurrentMethod().Locals) != 1 {
		t.Fatalf("expected exactly one declared temp local, got %d", len(e.CurrentMethod().Locals))
	}

	e.Ret()
	e.EndMethod()
	e.EndClass()
	e.EndModule()
}

func TestLabelsAreFreshPerMethod(t *testing.T) {
	e := New(&captureBackend{})
	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")

	e.BeginMethod("F", true, il.Static, false)
	l0 := e.NewLabel()
	l1 := e.NewLabel()
	e.Ret()
	e.EndMethod()

	e.BeginMethod("G", true, il.Static, false)
	l2 := e.NewLabel()
	e.Ret()
	e.EndMethod()

	if l0 != 0 || l1 != 1 || l2 != 0 {
		t.Fatalf("expected fresh label counter per method, got %d %d %d", l0, l1, l2)
	}

	e.EndClass()
	e.EndModule()
}
