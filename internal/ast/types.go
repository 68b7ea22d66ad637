package ast

// Type is the common interface of every type entity. Every resolved
// expression has a non-nil derefed type (spec.md §3 invariant); the code
// generator never has to guard against a nil Type on a validated AST.
type Type interface {
	Node
	typeNode()
}

// Primitive enumerates the built-in base types (spec.md §3).
type Primitive int

const (
	BOOLEAN Primitive = iota
	CHAR
	WCHAR
	BYTE
	SHORTINT
	INTEGER
	LONGINT
	REAL
	LONGREAL
	SET
	NIL
	STRING
	WSTRING
	BYTEARRAY
	ENUMINT
	ANY
	NONE
)

// BaseType is a built-in primitive type.
type BaseType struct {
	Base
	Tag Primitive
}

func (*BaseType) typeNode() {}

// EnumItem is one member of an EnumType: a name paired with its integer
// value (the original source's `Enumeration` items carry explicit values,
// not just ordinal position -- see SPEC_FULL.md).
type EnumItem struct {
	Name  string
	Value int64
}

// EnumType is an enumeration type: an ordered list of named integer
// constants.
type EnumType struct {
	Base
	Items []EnumItem
}

func (*EnumType) typeNode() {}

// ArrayType is an array type. Length is nil for an open array (spec.md
// §3/§4.6.6); LengthExpr is set instead of Length when the static length is
// given by a constant expression rather than a literal integer.
type ArrayType struct {
	Base
	Elem       Type
	Length     *int64
	LengthExpr Expr
}

func (*ArrayType) typeNode() {}

// IsOpen reports whether this is an open-array type (no static length).
func (a *ArrayType) IsOpen() bool {
	return a.Length == nil && a.LengthExpr == nil
}

// RecordType is a record type: an ordered field list, an ordered
// type-bound-method list, and an optional base record.
type RecordType struct {
	Base

	// Fields in declaration order. Every field's Owner points back to this
	// record (spec.md §3 invariant).
	Fields []*Field

	// Methods bound to this record, in declaration order.
	Methods []*Procedure

	// BaseRecord is the record this one extends, or nil.
	BaseRecord *RecordType

	// Subs lists every record that directly extends this one.
	Subs []*RecordType

	// ByValue is true only when this record is eligible for value-record
	// optimization: non-public, no base, no subs (spec.md §3). The default
	// generation path ignores this flag and always emits reference-type
	// records with synthesized copiers -- see codegen.Options.EmitValueRecords
	// and SPEC_FULL.md's resolution of the §9 Open Question.
	ByValue bool

	// Public is true when the record is visible outside its declaring
	// module.
	Public bool

	// Name is the declared name, or "" for an anonymous record (spec.md
	// §4.6.1 assigns these a monotonically increasing slot number instead).
	Name string

	// EnclosingProc is set when the record is declared inside a procedure
	// (nested type), used to build a dotted class name.
	EnclosingProc *Procedure
}

func (*RecordType) typeNode() {}

// PointerType points to another type (always a RecordType or ArrayType in
// valid source, but the field is general per spec.md §3).
type PointerType struct {
	Base
	To Type
}

func (*PointerType) typeNode() {}

// ProcParam is one formal parameter of a ProcType.
type ProcParam struct {
	Type  Type
	ByRef bool
	Const bool
}

// ProcType is a procedure type: a formal parameter list, optional return
// type, and a flag marking type-bound procedure types (whose first
// parameter is an implicit receiver).
type ProcType struct {
	Base
	Params     []ProcParam
	Return     Type // nil for a proper procedure
	TypeBound  bool
}

func (*ProcType) typeNode() {}

// QualType is a reference to a type declared in another module (or, when
// SelfRef is true, a forward reference to a type in the same module still
// being processed).
type QualType struct {
	Base
	ModuleName string
	Name       string
	SelfRef    bool

	// Resolved is filled in once the referent is known. The core assumes
	// this is always non-nil on a validated AST.
	Resolved Type
}

func (*QualType) typeNode() {}

// Placeholder is a generic meta-parameter standing in for an actual type
// until module instantiation binds it.
type Placeholder struct {
	Base
	Name string
}

func (*Placeholder) typeNode() {}

// Deref returns the type ultimately referred to, chasing through QualType
// indirection. It never returns nil on a validated AST.
func Deref(t Type) Type {
	for {
		q, ok := t.(*QualType)
		if !ok || q.Resolved == nil {
			return t
		}
		t = q.Resolved
	}
}
