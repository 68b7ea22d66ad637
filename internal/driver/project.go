package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/il"
	"github.com/seanpm2001/Oberon/internal/modfile"
	"github.com/seanpm2001/Oberon/internal/objmodel"
	"github.com/seanpm2001/Oberon/internal/report"
	"github.com/seanpm2001/Oberon/internal/textasm"

	"github.com/seanpm2001/Oberon/internal/emitter"
)

// entryClass names the synthesized module/class the generated Main# method
// lives in -- never a user module name, so it can't collide.
const entryClass = "Main"

// Project is everything translateAll needs beyond the per-module inputs:
// the modules to generate (already ordered so an import precedes its
// importer), which of them are roots the entry point must ping, and an
// optional explicit entry procedure.
type Project struct {
	Name        string
	Modules     []*ast.Module
	RootModules []string // module names pinged from Main#, in order
	Entry       string   // "Module.Procedure" to call from Main#, or ""
	StdLibDir   string   // directory holding prebuilt standard-library artifacts
}

// TranslateAll implements spec.md §6's translateAll: it drives every module
// in proj through Translate, synthesizes the Main# entry point, writes the
// module file plus its companion shell scripts and runtime-config sidecar,
// and copies the bundled standard-library artifacts into outDir. It returns
// false iff any error was posted to the driver's collector.
func (d *Driver) TranslateAll(proj *Project, profile *modfile.Profile, outDir string) bool {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		d.errs.Error(report.DriverError, "", nil, "creating output directory %s: %v", outDir, err)
		return false
	}

	useText := profile == nil || profile.OutputFormat == modfile.FormatTextASM
	gui := profile != nil && profile.GUI

	var renderer *textasm.Renderer
	var builder *objmodel.Builder
	var backend emitter.Backend
	if useText {
		renderer = textasm.New()
		backend = renderer
	} else {
		builder = objmodel.New(proj.Name, gui)
		backend = builder
	}
	e := emitter.New(backend)

	for _, mod := range proj.Modules {
		d.Translate(mod, e)
	}
	if err := emitEntryPoint(e, proj); err != nil {
		d.errs.Error(report.DriverError, "", nil, "generating entry point: %v", err)
		return false
	}

	if d.errs.HadErrors() {
		return false
	}

	var outPath string
	var ext string
	if useText {
		ext = ".il"
		outPath = filepath.Join(outDir, proj.Name+ext)
		if err := os.WriteFile(outPath, []byte(renderer.String()), 0o644); err != nil {
			d.errs.Error(report.DriverError, "", nil, "writing %s: %v", outPath, err)
			return false
		}
	} else {
		ext = ".exe"
		outPath = filepath.Join(outDir, proj.Name+ext)
		if err := builder.DumpOutputFile(outPath, objmodel.FormatEXE, gui); err != nil {
			d.errs.Error(report.DriverError, "", nil, "writing %s: %v", outPath, err)
			return false
		}
	}

	if err := writeScripts(outDir, proj.Name, useText); err != nil {
		d.errs.Error(report.DriverError, "", nil, "%v", err)
		return false
	}
	libExt := ".dll"
	if useText {
		libExt = ".il"
	}
	if err := copyStdlib(proj.StdLibDir, outDir, libExt); err != nil {
		d.errs.Error(report.DriverError, "", nil, "%v", err)
		return false
	}
	if err := writeRuntimeConfig(outDir, proj.Name); err != nil {
		d.errs.Error(report.DriverError, "", nil, "%v", err)
		return false
	}
	return true
}

// emitEntryPoint synthesizes the Main# method spec.md §6 describes: a
// static method, in its own entry-point module, that pings every root
// module (forcing their .cctors to run in dependency order) and then
// optionally calls a user-chosen Module.Procedure.
func emitEntryPoint(e *emitter.Emitter, proj *Project) error {
	e.BeginModule(entryClass, nil, "", il.EntryPointModule)
	e.BeginClass(entryClass, true, "System.Object")
	e.BeginMethod("Main#", true, il.Static, false)
	e.SetReturnType("")

	for _, name := range proj.RootModules {
		e.Call("void "+name+"::ping#()", 0, false)
	}
	if proj.Entry != "" {
		owner, proc := splitEntry(proj.Entry)
		e.Call("void "+owner+"::"+proc+"()", 0, false)
	}

	e.Ret()
	e.EndMethod()
	e.EndClass()
	return e.EndModule()
}

func splitEntry(entry string) (owner, proc string) {
	if i := strings.LastIndexByte(entry, '.'); i >= 0 {
		return entry[:i], entry[i+1:]
	}
	return entry, entry
}
