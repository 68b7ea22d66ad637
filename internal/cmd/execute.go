// Package cmd implements the CLI (modeled on src/cmd/execute.go): an
// olive-based argument parser exposing a `translate` subcommand (compile one
// or more modules through the driver) and a `mod init` subcommand (scaffold
// an oberon.mod).
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/codegen"
	"github.com/seanpm2001/Oberon/internal/driver"
	"github.com/seanpm2001/Oberon/internal/modfile"
	"github.com/seanpm2001/Oberon/internal/report"
)

// LoadModule produces the validated AST for a single source module. This
// core's Non-goals exclude parsing/lexing/semantic validation (spec.md
// "Input: a validated module AST"), so the front end is injected rather
// than implemented here -- the default returns an explanatory error, and an
// embedding program (or a test) replaces it with its own parser/checker.
var LoadModule = func(path string) (*ast.Module, error) {
	return nil, fmt.Errorf("cmd: no front end configured to parse %s into an AST", path)
}

// Execute runs the oberonc CLI.
func Execute() {
	cli := olive.NewCLI("oberonc", "oberonc generates CIL from Oberon-family module ASTs", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	translateCmd := cli.AddSubcommand("translate", "translate a module's sources to CIL", true)
	translateCmd.AddPrimaryArg("module-path", "the path to the module to translate", true)
	translateCmd.AddStringArg("profile", "p", "the name of the build profile to use", false)
	translateCmd.AddStringArg("out", "o", "the output directory", false)
	translateCmd.AddStringArg("entry", "e", "Module.Procedure to call from the entry point", false)
	translateCmd.AddFlag("text-asm", "t", "emit textual assembly instead of a binary module")

	modCmd := cli.AddSubcommand("mod", "manage oberon.mod descriptors", true)
	modInitCmd := modCmd.AddSubcommand("init", "scaffold an oberon.mod", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the oberonc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintError("CLI Usage Error", err)
		return
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "translate":
		execTranslateCommand(subResult)
	case "mod":
		execModCommand(subResult)
	case "version":
		report.PrintInfo("oberonc Version", Version)
	}
}

// Version is the CLI's self-reported version string.
const Version = "0.1.0"

func execTranslateCommand(result *olive.ArgParseResult) {
	moduleRelPath, _ := result.PrimaryArg()
	modulePath, err := filepath.Abs(moduleRelPath)
	if err != nil {
		report.PrintError("Path Error", err)
		return
	}

	mod, err := modfile.Load(modulePath)
	if err != nil {
		report.PrintError("Module Load Error", err)
		return
	}

	selectedProfile := stringArg(result, "profile")
	profile, err := mod.SelectProfile(selectedProfile)
	if err != nil {
		report.PrintError("Profile Error", err)
		return
	}
	if result.HasFlag("text-asm") {
		profile.OutputFormat = modfile.FormatTextASM
	}

	outDir := stringArg(result, "out")
	if outDir == "" {
		outDir = profile.OutputPath
	}
	if outDir == "" {
		outDir = filepath.Join(modulePath, "out")
	}

	proj, err := buildProject(mod)
	if err != nil {
		report.PrintError("Module Load Error", err)
		return
	}
	if entry := stringArg(result, "entry"); entry != "" {
		proj.Entry = entry
	}

	phase := report.BeginPhase(fmt.Sprintf("translating %s", mod.Name))
	errs := report.NewCollector()
	d := driver.New(codegen.Options{}, errs)
	ok := d.TranslateAll(proj, profile, outDir)
	phase.Done(ok)

	report.DisplayAll(errs)
	if !ok {
		os.Exit(1)
	}
}

// buildProject resolves every module reachable from mod's root (itself plus
// its import closure), loading each through LoadModule exactly once and
// ordering them so an import always precedes its importer (loaded
// breadth-first from the root, then ordered by a post-order walk of the
// imports).
func buildProject(mod *modfile.Module) (*driver.Project, error) {
	loaded := map[string]*ast.Module{}
	order := []string{}
	queue := []string{mod.Name}
	queued := map[string]bool{mod.Name: true}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		path, ok := mod.ResolveModulePath(name)
		if !ok {
			return nil, fmt.Errorf("cannot resolve module %q", name)
		}
		m, err := LoadModule(path)
		if err != nil {
			return nil, fmt.Errorf("loading module %q: %w", name, err)
		}
		loaded[name] = m

		for _, imp := range m.Imports {
			if !queued[imp.ModuleName] {
				queued[imp.ModuleName] = true
				queue = append(queue, imp.ModuleName)
			}
		}
	}

	// post-order: a module is appended only after everything it imports.
	visited := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, imp := range loaded[name].Imports {
			visit(imp.ModuleName)
		}
		order = append(order, name)
	}
	visit(mod.Name)

	modules := make([]*ast.Module, len(order))
	for i, name := range order {
		modules[i] = loaded[name]
	}

	return &driver.Project{
		Name:        mod.Name,
		Modules:     modules,
		RootModules: []string{mod.Name},
		StdLibDir:   mod.StdLibDir,
	}, nil
}

func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		report.PrintError("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		name, _ := subResult.PrimaryArg()
		if err := initModule(name, workDir); err != nil {
			report.PrintError("Module Init Error", err)
		}
	}
}

func initModule(name, dir string) error {
	if !modfile.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}
	path := filepath.Join(dir, modfile.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	contents := fmt.Sprintf(`[module]
name = "%s"
import_dirs = []

[[module.profile]]
name = "debug"
target_os = "linux"
target_arch = "amd64"
format = "text-asm"
primary = true
`, name)
	return os.WriteFile(path, []byte(contents), 0o644)
}

func stringArg(result *olive.ArgParseResult, name string) string {
	v, ok := result.Arguments[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
