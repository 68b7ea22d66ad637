// Package ast defines the data model the code generator consumes: a
// validated, type-annotated module tree (spec.md §3). Building this tree --
// lexing, parsing, and semantic validation -- is an external concern; this
// package only declares the shapes those phases are expected to produce.
package ast

import "github.com/seanpm2001/Oberon/internal/report"

// Node is the common interface of every AST entity that carries a source
// location.
type Node interface {
	Span() report.Span
}

// Base is embedded by every concrete node to provide Span() without
// repeating the field in each type. Cross-references between nodes (a
// record's base record, a procedure's super-procedure, a field's owner) are
// always plain pointers into the same module's arena -- the module owns
// every node it reaches and outlives them all (spec.md §9).
type Base struct {
	span report.Span
}

func (b Base) Span() report.Span { return b.span }

// NewBase constructs the embeddable span holder used by every node
// constructor in this package.
func NewBase(span report.Span) Base {
	return Base{span: span}
}

// NewBaseOver constructs a Base spanning from the start of a to the end of b.
func NewBaseOver(a, b Node) Base {
	return Base{span: report.Over(a.Span(), b.Span())}
}
