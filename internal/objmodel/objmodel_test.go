package objmodel

import (
	"os"
	"strings"
	"testing"

	"github.com/seanpm2001/Oberon/internal/emitter"
	"github.com/seanpm2001/Oberon/internal/il"
)

func TestEmitModuleResolvesReferencesAndOptimizes(t *testing.T) {
	b := New("Hello", false)
	e := emitter.New(b)

	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("F", true, il.Static, false)
	e.LoadArg(3, "x")
	e.Dup()
	e.Pop()
	e.Ret()
	e.EndMethod()
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	asm := b.Assembly()
	if len(asm.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(asm.Classes))
	}
	body := asm.Classes[0].Methods[0].Body
	if len(body) != 2 {
		t.Fatalf("expected dup/pop removed, leaving ldarg+ret, got %d instrs: %v", len(body), body)
	}
	if body[0].Flags&FlagShortForm == 0 {
		t.Fatalf("expected short-form flag on small-operand ldarg")
	}
}

func TestDumpOutputFileText(t *testing.T) {
	b := New("Hello", false)
	e := emitter.New(b)
	e.BeginModule("M", nil, "m.ob", il.RegularModule)
	e.BeginClass("M", true, "")
	e.BeginMethod("Main", true, il.Static, false)
	e.Ret()
	e.EndMethod()
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	path := t.TempDir() + "/out.il"
	if err := b.DumpOutputFile(path, FormatText, false); err != nil {
		t.Fatalf("DumpOutputFile: %v", err)
	}

	data, err := readFile(path)
	if err != nil {
		t.Fatalf("reading dumped file: %v", err)
	}
	if !strings.Contains(string(data), ".class public M") {
		t.Fatalf("dumped text missing expected class header:\n%s", data)
	}
}

func TestDumpOutputFileBinaryHasMagicHeader(t *testing.T) {
	b := New("Hello", true)
	e := emitter.New(b)
	e.BeginModule("M", nil, "m.ob", il.EntryPointModule)
	e.BeginClass("M", true, "")
	e.EndClass()
	if err := e.EndModule(); err != nil {
		t.Fatalf("EndModule: %v", err)
	}

	path := t.TempDir() + "/out.exe"
	if err := b.DumpOutputFile(path, FormatEXE, true); err != nil {
		t.Fatalf("DumpOutputFile: %v", err)
	}
	data, err := readFile(path)
	if err != nil {
		t.Fatalf("reading dumped file: %v", err)
	}
	if string(data[0:4]) != "OBXM" {
		t.Fatalf("expected OBXM magic header, got %q", data[0:4])
	}
	if data[5] != 1 {
		t.Fatalf("expected GUI byte set, got %d", data[5])
	}
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
