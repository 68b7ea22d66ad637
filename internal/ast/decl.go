package ast

// Named is the common interface of every named declaration.
type Named interface {
	Node
	DeclName() string
}

// Mutability flags carried by variables, locals, and parameters.
const (
	MutVar   = iota // plain VAR/local variable, mutable
	MutConst        // CONST-qualified, immutable
)

// Variable is a module-level variable declaration.
type Variable struct {
	Base
	Name   string
	Type   Type
	Public bool
}

func (v *Variable) DeclName() string { return v.Name }

// LocalVar is a procedure-local variable declaration.
type LocalVar struct {
	Base
	Name string
	Type Type

	// Slot is the stable local-variable index assigned once per procedure
	// (spec.md §3 invariant).
	Slot int
}

func (l *LocalVar) DeclName() string { return l.Name }

// Param is a formal parameter.
type Param struct {
	Base
	Name  string
	Type  Type
	ByRef bool // VAR-qualified
	Const bool // CONST-qualified

	// Slot is the stable parameter index assigned once per procedure.
	Slot int
}

func (p *Param) DeclName() string { return p.Name }

// Field is a record field. Owner always points back to the declaring
// record (spec.md §3 invariant).
type Field struct {
	Base
	Name   string
	Type   Type
	Owner  *RecordType
	Public bool
}

func (f *Field) DeclName() string { return f.Name }

// Procedure is a procedure declaration, optionally bound to a receiver
// record and optionally overriding a super-procedure.
type Procedure struct {
	Base
	Name string

	// Receiver is non-nil for a type-bound procedure.
	Receiver *Param

	// Super is the procedure this one overrides, or nil.
	Super *Procedure

	Params     []*Param
	Return     Type // nil for a proper procedure
	Locals     []*LocalVar
	Body       []Stmt

	Public    bool
	IsMeta    bool // declared inside a generic module
	External  bool // SYS.FFI-style external stub: no body, runtime flag set on the emitted method
	NoReturnFallsThrough bool
}

func (p *Procedure) DeclName() string { return p.Name }

// NamedType is a module-level type declaration (`TYPE Name = ...`).
type NamedType struct {
	Base
	Name   string
	Type   Type
	Public bool
}

func (n *NamedType) DeclName() string { return n.Name }

// ConstVal is the typed literal value of a Const declaration.
type ConstVal struct {
	Type  Type
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Ch    rune
}

// Const is a module-level constant declaration.
type Const struct {
	Base
	Name   string
	Value  ConstVal
	Public bool
}

func (c *Const) DeclName() string { return c.Name }

// Builtin identifies one of the built-in procedures/functions of §4.6.5,
// resolved by the (external) semantic checker to a stable tag so the code
// generator can dispatch on it directly rather than re-deriving it from a
// name string.
type Builtin struct {
	Base
	Name string
	Tag  BuiltinTag
}

func (b *Builtin) DeclName() string { return b.Name }

// BuiltinTag enumerates the built-ins named in spec.md §4.6.5.
type BuiltinTag int

const (
	BINEW BuiltinTag = iota
	BILEN
	BIINC
	BIDEC
	BIINCL
	BIEXCL
	BIORD
	BICHR
	BIFLT
	BIFLOOR
	BIABS
	BIODD
	BIMIN
	BIMAX
	BISHORT
	BILONG
	BILSL
	BIASR
	BIROR
	BIBITAND
	BIBITOR
	BIBITXOR
	BIBITNOT
	BIPACK
	BIUNPK
	BIASSERT
	BITRAP
	BITRAPIF
	BIBYTESIZE
	BIDEFAULT
	BIVAL
	BIADR
	BIPRINTLN
)

// Import is an import declaration.
type Import struct {
	Base
	ModuleName string
	Alias      string

	// Resolved points to the imported module once resolution (external to
	// this core) has completed.
	Resolved *Module
}

func (i *Import) DeclName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.ModuleName
}

// GenericName is a meta-parameter name introduced by a generic module.
type GenericName struct {
	Base
	Name string
}

func (g *GenericName) DeclName() string { return g.Name }

// Decl is the sum type of every top-level declaration a Module can carry.
type Decl interface {
	Named
}
