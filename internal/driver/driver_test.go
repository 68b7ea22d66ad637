package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/codegen"
	"github.com/seanpm2001/Oberon/internal/modfile"
	"github.com/seanpm2001/Oberon/internal/report"
)

func TestTranslateAllWritesModuleAndScripts(t *testing.T) {
	errs := report.NewCollector()
	d := New(codegen.Options{}, errs)

	proj := &Project{
		Name:        "App",
		Modules:     []*ast.Module{{Name: "App"}},
		RootModules: []string{"App"},
	}
	outDir := t.TempDir()

	if !d.TranslateAll(proj, &modfile.Profile{OutputFormat: modfile.FormatTextASM}, outDir) {
		t.Fatalf("TranslateAll failed: %v", errs.All())
	}

	il, err := os.ReadFile(filepath.Join(outDir, "App.il"))
	if err != nil {
		t.Fatalf("reading App.il: %v", err)
	}
	if !strings.Contains(string(il), "Main#") {
		t.Fatalf("expected Main# in output:\n%s", il)
	}
	if !strings.Contains(string(il), "call void App::ping#()") {
		t.Fatalf("expected entry point to ping root module App:\n%s", il)
	}

	for _, name := range []string{"run.sh", "build.sh", "clear.sh", "App.runtimeconfig.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}

func TestTranslateAllSkipsBuildScriptForBinaryBackend(t *testing.T) {
	errs := report.NewCollector()
	d := New(codegen.Options{}, errs)

	proj := &Project{Name: "App", Modules: []*ast.Module{{Name: "App"}}, RootModules: []string{"App"}}
	outDir := t.TempDir()

	if !d.TranslateAll(proj, &modfile.Profile{OutputFormat: modfile.FormatBinary}, outDir) {
		t.Fatalf("TranslateAll failed: %v", errs.All())
	}
	if _, err := os.Stat(filepath.Join(outDir, "App.exe")); err != nil {
		t.Errorf("expected App.exe to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "build.sh")); err == nil {
		t.Errorf("did not expect build.sh for a binary-backend run")
	}
}

func TestSplitEntry(t *testing.T) {
	owner, proc := splitEntry("App.Main")
	if owner != "App" || proc != "Main" {
		t.Fatalf("splitEntry(App.Main) = %q, %q", owner, proc)
	}
}
