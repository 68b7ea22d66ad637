package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/modfile"
)

func TestBuildProjectOrdersImportsBeforeImporters(t *testing.T) {
	root := t.TempDir()
	lib := filepath.Join(root, "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "Util.obx"), []byte("MODULE Util; END Util."), 0o644); err != nil {
		t.Fatal(err)
	}

	mod := &modfile.Module{Name: "App", RootDir: root, ImportDirs: []string{lib}}

	astByPath := map[string]*ast.Module{
		root:                        {Name: "App", Imports: []*ast.Import{{ModuleName: "Util"}}},
		filepath.Join(lib, "Util"): {Name: "Util"},
	}
	old := LoadModule
	defer func() { LoadModule = old }()
	LoadModule = func(path string) (*ast.Module, error) {
		m, ok := astByPath[path]
		if !ok {
			t.Fatalf("unexpected LoadModule path %q", path)
		}
		return m, nil
	}

	proj, err := buildProject(mod)
	if err != nil {
		t.Fatalf("buildProject: %v", err)
	}
	if len(proj.Modules) != 2 || proj.Modules[0].Name != "Util" || proj.Modules[1].Name != "App" {
		names := []string{}
		for _, m := range proj.Modules {
			names = append(names, m.Name)
		}
		t.Fatalf("wrong module order: %v", names)
	}
}

func TestInitModuleWritesDescriptor(t *testing.T) {
	dir := t.TempDir()
	if err := initModule("App", dir); err != nil {
		t.Fatalf("initModule: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, modfile.FileName))
	if err != nil {
		t.Fatalf("reading oberon.mod: %v", err)
	}
	if _, err := modfile.Load(dir); err != nil {
		t.Fatalf("generated descriptor does not parse: %v\n%s", err, data)
	}
}

func TestInitModuleRejectsInvalidName(t *testing.T) {
	if err := initModule("2bad", t.TempDir()); err == nil {
		t.Fatal("expected an error for an invalid module name")
	}
}

func TestInitModuleRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := initModule("App", dir); err != nil {
		t.Fatalf("initModule: %v", err)
	}
	if err := initModule("App", dir); err == nil {
		t.Fatal("expected an error when oberon.mod already exists")
	}
}
