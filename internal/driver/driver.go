// Package driver implements the Driver (spec.md §6): it owns the
// per-module translate step and the whole-project translateAll orchestration
// -- choosing a back-end, synthesizing the entry-point module, writing the
// companion shell scripts and runtime-config sidecar, and copying the
// bundled standard-library artifacts into the output directory.
package driver

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/codegen"
	"github.com/seanpm2001/Oberon/internal/emitter"
	"github.com/seanpm2001/Oberon/internal/report"
	"github.com/seanpm2001/Oberon/internal/sigres"
)

// Driver holds the state shared across every module translated in one run:
// generation options, the process-wide signature resolver, and the
// diagnostic collector every module reports into.
type Driver struct {
	opts codegen.Options
	res  *sigres.Resolver
	errs *report.Collector
}

// New returns a Driver posting diagnostics to errs.
func New(opts codegen.Options, errs *report.Collector) *Driver {
	return &Driver{opts: opts, res: sigres.New(), errs: errs}
}

// Translate lowers one module into e, implementing spec.md §6's
// "translate(module, emitter, errors) -> bool". It returns false iff an
// error was posted for this module; generation of other modules continues
// regardless, and TranslateAll writes no output once Errors().HadErrors
// reports any error.
func (d *Driver) Translate(mod *ast.Module, e *emitter.Emitter) bool {
	return codegen.New(d.opts, d.res, d.errs).Generate(mod, e)
}

// Errors exposes the shared collector, e.g. so a caller can inspect
// category-specific failures after a run.
func (d *Driver) Errors() *report.Collector {
	return d.errs
}
