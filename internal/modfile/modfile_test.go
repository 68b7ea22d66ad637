package modfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModFile(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadParsesNameAndProfiles(t *testing.T) {
	dir := t.TempDir()
	writeModFile(t, dir, `
[module]
name = "App"
import_dirs = ["lib"]

[[module.profile]]
name = "debug"
target_os = "linux"
target_arch = "amd64"
format = "text-asm"

[[module.profile]]
name = "release"
target_os = "linux"
target_arch = "amd64"
format = "binary"
gui = true
primary = true
`)

	mod, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mod.Name != "App" {
		t.Fatalf("Name = %q, want App", mod.Name)
	}
	if len(mod.Profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(mod.Profiles))
	}
	if mod.Profiles[1].OutputFormat != FormatBinary || !mod.Profiles[1].GUI {
		t.Fatalf("release profile not converted correctly: %+v", mod.Profiles[1])
	}
}

func TestLoadRejectsMissingModuleTable(t *testing.T) {
	dir := t.TempDir()
	writeModFile(t, dir, "name = \"App\"\n")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for a missing [module] table")
	}
}

func TestSelectProfilePrefersExplicitName(t *testing.T) {
	m := &Module{Profiles: []*Profile{
		{Name: "debug"},
		{Name: "release", Primary: true},
	}}
	p, err := m.SelectProfile("debug")
	if err != nil || p.Name != "debug" {
		t.Fatalf("SelectProfile(debug) = %v, %v", p, err)
	}
}

func TestSelectProfileFallsBackToPrimary(t *testing.T) {
	m := &Module{Profiles: []*Profile{
		{Name: "debug"},
		{Name: "release", Primary: true},
	}}
	p, err := m.SelectProfile("")
	if err != nil || p.Name != "release" {
		t.Fatalf("SelectProfile(\"\") = %v, %v", p, err)
	}
}

func TestSelectProfileAmbiguousPrimaryErrors(t *testing.T) {
	m := &Module{Profiles: []*Profile{
		{Name: "a", Primary: true},
		{Name: "b", Primary: true},
	}}
	if _, err := m.SelectProfile(""); err == nil {
		t.Fatal("expected an error for two profiles marked primary")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	cases := map[string]bool{
		"App":     true,
		"App_2":   true,
		"2App":    false,
		"_App":    false,
		"":        false,
		"has-dash": false,
	}
	for in, want := range cases {
		if got := IsValidIdentifier(in); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveModulePathFindsRootModule(t *testing.T) {
	dir := t.TempDir()
	m := &Module{Name: "App", RootDir: dir}
	path, ok := m.ResolveModulePath("App")
	if !ok || path != dir {
		t.Fatalf("ResolveModulePath(App) = %q, %v", path, ok)
	}
}

func TestResolveModulePathSearchesImportDirs(t *testing.T) {
	root := t.TempDir()
	lib := filepath.Join(root, "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "Util.obx"), []byte("MODULE Util; END Util."), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &Module{Name: "App", RootDir: root, ImportDirs: []string{lib}}
	path, ok := m.ResolveModulePath("Util")
	if !ok {
		t.Fatal("expected to resolve Util")
	}
	if path != filepath.Join(lib, "Util") {
		t.Fatalf("resolved path = %q", path)
	}
}
