package emitter

import (
	"strconv"

	"github.com/seanpm2001/Oberon/internal/il"
)

// Backend is the single interface the Text Renderer and the Binary Builder
// each implement (spec.md §4.2: "Back-ends plug in behind a single
// interface"). EmitModule receives one finished module at a time, in the
// order the driver generates them.
type Backend interface {
	EmitModule(mod *il.Module) error
}

// Emitter accumulates the opcode stream for the method currently being
// built, issues fresh labels, tracks maximum stack depth, and forwards
// finished methods/classes/modules to a Backend.
type Emitter struct {
	backend Backend

	mod   *il.Module
	class *il.Class
	meth  *il.Method

	open bracket

	labelCounter int
	depth        int // current net stack depth within the open method
	slots        *slotPool
}

// New returns a fresh Emitter writing to backend.
func New(backend Backend) *Emitter {
	return &Emitter{backend: backend}
}

// BeginModule opens a module scope.
func (e *Emitter) BeginModule(name string, imports []string, sourceFile string, kind il.ModuleKind) {
	if e.open != bracketNone {
		panic(ErrUnbalanced{Want: "end_module", Got: "begin_module while " + e.open.String() + " is open"})
	}
	e.mod = &il.Module{Name: name, Imports: imports, SourceFile: sourceFile, Kind: kind}
	e.open = bracketModule
}

// EndModule closes the module scope and forwards it to the backend.
func (e *Emitter) EndModule() error {
	if e.open != bracketModule {
		panic(ErrUnbalanced{Want: e.open.String(), Got: "end_module"})
	}
	mod := e.mod
	e.mod = nil
	e.open = bracketNone
	return e.backend.EmitModule(mod)
}

// BeginClass opens a class scope nested in the current module.
func (e *Emitter) BeginClass(name string, public bool, super string) {
	if e.open != bracketModule {
		panic(ErrUnbalanced{Want: "begin_module first", Got: "begin_class while " + e.open.String() + " is open"})
	}
	e.class = &il.Class{Name: name, Public: public, Super: super}
	e.open = bracketClass
}

// EndClass closes the class scope and appends it to the enclosing module.
func (e *Emitter) EndClass() {
	if e.open != bracketClass {
		panic(ErrUnbalanced{Want: e.open.String(), Got: "end_class"})
	}
	e.mod.Classes = append(e.mod.Classes, e.class)
	e.class = nil
	e.open = bracketModule
}

// AddField appends a field to the class currently open.
func (e *Emitter) AddField(name, typeRef string, public, static bool) {
	if e.open != bracketClass {
		panic(ErrUnbalanced{Want: "begin_class first", Got: "add_field while " + e.open.String() + " is open"})
	}
	e.class.Fields = append(e.class.Fields, &il.Field{Name: name, TypeRef: typeRef, Public: public, Static: static})
}

// BeginMethod opens a method scope nested in the current class. It resets
// the per-method label counter, stack-depth tracker, and local-slot pool
// (spec.md §5: "the pool resets at each method prologue").
func (e *Emitter) BeginMethod(name string, public bool, kind il.MethodKind, runtime bool) {
	if e.open != bracketClass {
		panic(ErrUnbalanced{Want: "begin_class first", Got: "begin_method while " + e.open.String() + " is open"})
	}
	e.meth = &il.Method{Name: name, Public: public, Kind: kind, Runtime: runtime}
	e.open = bracketMethod
	e.labelCounter = 0
	e.depth = 0
	e.slots = newSlotPool()
}

// AddArgument appends a formal argument to the method being built.
func (e *Emitter) AddArgument(typeRef, name string) {
	e.requireMethod("add_argument")
	e.meth.Args = append(e.meth.Args, il.Param{TypeRef: typeRef, Name: name})
}

// SetReturnType sets the method's return type reference ("" means void).
func (e *Emitter) SetReturnType(typeRef string) {
	e.requireMethod("set_return_type")
	e.meth.ReturnType = typeRef
}

// AddLocal declares a named local of the method being built.
func (e *Emitter) AddLocal(typeRef, name string) {
	e.requireMethod("add_local")
	e.meth.Locals = append(e.meth.Locals, il.Local{TypeRef: typeRef, Name: name})
}

// NewLabel issues a fresh, forward-declarable label id, unique within the
// method currently open.
func (e *Emitter) NewLabel() int {
	e.requireMethod("new_label")
	id := e.labelCounter
	e.labelCounter++
	return id
}

// Line records a `.line row:col` marker at the current position in the
// instruction stream.
func (e *Emitter) Line(row, col int) {
	e.requireMethod("line")
	e.meth.Body = append(e.meth.Body, il.Instr{Op: il.OpLine, Line: row, Col: col})
}

// EndMethod closes the method scope and appends it to the enclosing class.
func (e *Emitter) EndMethod() {
	if e.open != bracketMethod {
		panic(ErrUnbalanced{Want: e.open.String(), Got: "end_method"})
	}
	e.class.Methods = append(e.class.Methods, e.meth)
	e.meth = nil
	e.open = bracketClass
}

func (e *Emitter) requireMethod(op string) {
	if e.open != bracketMethod {
		panic(ErrUnbalanced{Want: "begin_method first", Got: op + " while " + e.open.String() + " is open"})
	}
}

// CurrentMethod exposes the method body under construction, for callers
// (the code generator) that need to inspect what has been emitted so far
// (e.g. to detect a missing trailing return).
func (e *Emitter) CurrentMethod() *il.Method {
	return e.meth
}

// AllocLocal reserves a temporary local slot from the fixed-capacity pool
// (spec.md §5, capacity 32) and returns its index, declaring a backing
// local of typeRef if this is the first time that slot depth has been
// reached in this method.
func (e *Emitter) AllocLocal(typeRef string) int {
	e.requireMethod("alloc_local")
	idx, isNew := e.slots.buy()
	if isNew {
		e.AddLocal(typeRef, "$tmp"+strconv.Itoa(idx))
	}
	return idx
}

// FreeLocal returns a temporary local slot to the pool.
func (e *Emitter) FreeLocal(idx int) {
	e.slots.sell(idx)
}
