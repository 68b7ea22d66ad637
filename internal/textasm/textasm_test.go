package textasm

import (
	"strings"
	"testing"

	"github.com/seanpm2001/Oberon/internal/emitter"
	"github.com/seanpm2001/Oberon/internal/il"
)

func TestEmitModuleRendersAssemblyClassAndMethod(t *testing.T) {
	r := New()
	e := emitter.New(r)

	e.BeginModule("Hello", []string{"In", "Out"}, "hello.ob", il.EntryPointModule)
	e.BeginClass("Hello", true, "")
	e.BeginMethod("Main", true, il.Static, false)
	e.LoadInt32(1)
	e.Ret()
	e.EndMethod()
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	out := r.String()
	for _, want := range []string{
		".assembly Hello",
		".entrypoint",
		".import In",
		".class public Hello",
		".method public static void Main()",
		".maxstack 1",
		"ldc.i4 1",
		"ret",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRuntimeMethodHasEmptyBody(t *testing.T) {
	r := New()
	e := emitter.New(r)

	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("Ext", true, il.Static, true)
	e.AddArgument("int32", "x")
	e.EndMethod()
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	out := r.String()
	if strings.Contains(out, ".maxstack") {
		t.Errorf("runtime stub should not render a body:\n%s", out)
	}
	if !strings.Contains(out, "runtime void Ext(int32 x)") {
		t.Errorf("expected runtime signature line:\n%s", out)
	}
}
