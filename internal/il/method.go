package il

// MethodKind distinguishes how a method is dispatched.
type MethodKind int

const (
	Static MethodKind = iota
	Instance
	Virtual
	Primary // a class's primary, non-overridable entry (e.g. a synthesized .ctor)
)

// Param is one formal argument of a Method.
type Param struct {
	TypeRef string
	Name    string
}

// Local is one declared local variable of a Method.
type Local struct {
	TypeRef string
	Name    string
}

// Method is the IL record for a single procedure body: signature, locals,
// and the instruction stream the Emitter produced for it.
type Method struct {
	Name       string
	Public     bool
	Kind       MethodKind
	Runtime    bool // external/FFI stub: declared, never given a body
	Args       []Param
	ReturnType string // "" (void) or a Signature Resolver type reference
	Locals     []Local
	Body       []Instr

	// MaxStack is the maximum net stack depth observed across Body,
	// computed by the Emitter as instructions are appended (spec.md §4.2).
	// It must be >= the actual maximum stack effect (spec.md §8 invariant).
	MaxStack int
}

// Field is the IL record for a class field.
type Field struct {
	Name    string
	TypeRef string
	Public  bool
	Static  bool
}

// Class is the IL record for a class: fields, methods, and nested classes
// in source declaration order (spec.md §8 requires deterministic ordering
// for byte-identical textual IL across runs).
type Class struct {
	Name    string
	Public  bool
	Super   string // Signature Resolver reference to the superclass, or ""
	Fields  []*Field
	Methods []*Method
	Nested  []*Class
}

// ModuleKind distinguishes a regular module from the synthesized
// entry-point module (spec.md §6 `Main#`).
type ModuleKind int

const (
	RegularModule ModuleKind = iota
	EntryPointModule
)

// Module is the top-level IL unit the Emitter assembles: one compiled
// source module's classes, ready to hand to a back-end.
type Module struct {
	Name       string
	Imports    []string
	SourceFile string
	Kind       ModuleKind
	Classes    []*Class
}

// Program is a complete set of generated modules, ready for the Driver to
// hand to a back-end for the whole project (spec.md §6 `translateAll`).
type Program struct {
	Modules []*Module
}
