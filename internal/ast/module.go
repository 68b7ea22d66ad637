package ast

// Module is the root of the tree the code generator consumes: one source
// module's ordered declarations, import list, and body statement sequence.
type Module struct {
	Base
	Name string

	Imports []*Import
	Decls   []Decl
	Body    []Stmt

	// MetaParams/MetaActuals carry generic module type parameters/their
	// bound actuals; MetaActuals is empty for a non-generic module and for
	// the generic module's own (un-instantiated) declaration.
	MetaParams  []*GenericName
	MetaActuals []Type

	Synthetic      bool // generated by the compiler itself, not user source
	DefinitionOnly bool // interface-only module, no body to generate
	Validated      bool
	HadErrors      bool

	// SourceFile is the path used for diagnostics and `.line` directives.
	SourceFile string

	// BeginSpan/EndSpan mark the MODULE/BEGIN/END keyword positions.
	BeginSpan, EndSpan Base
}

// IsRoot reports whether this module's name is in rootNames, the set of
// entry-point module names supplied by the caller.
func (m *Module) IsRoot(rootNames map[string]bool) bool {
	return rootNames[m.Name]
}

// Records returns every record type declared at module level, in
// declaration order. It does not descend into procedure bodies -- the
// generator's own collection pass (codegen §4.6.1) walks further to find
// records nested in procedures and anonymous records.
func (m *Module) Records() []*RecordType {
	var out []*RecordType
	for _, d := range m.Decls {
		if nt, ok := d.(*NamedType); ok {
			if rt, ok := nt.Type.(*RecordType); ok {
				out = append(out, rt)
			}
		}
	}
	return out
}

// Procedures returns every non-bound procedure declared at module level.
func (m *Module) Procedures() []*Procedure {
	var out []*Procedure
	for _, d := range m.Decls {
		if p, ok := d.(*Procedure); ok && p.Receiver == nil {
			out = append(out, p)
		}
	}
	return out
}

// Variables returns every module-level variable declaration.
func (m *Module) Variables() []*Variable {
	var out []*Variable
	for _, d := range m.Decls {
		if v, ok := d.(*Variable); ok {
			out = append(out, v)
		}
	}
	return out
}
