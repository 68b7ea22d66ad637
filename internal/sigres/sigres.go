// Package sigres implements the Signature Resolver (spec.md §4.5): a small
// lexer/parser over the textual type/member reference grammar that is the
// lingua franca between the IL Emitter and the Binary Builder. It navigates
// or lazily creates nodes in a symbol tree rooted at the working assembly.
package sigres

import (
	"fmt"
	"strings"
)

// InvalidSignature is returned for any reference string the grammar
// rejects: unbalanced brackets, a missing "::", a field-ref shape used
// where a method name is required (or vice versa), or a member ref on a
// non-class type (spec.md §4.5).
type InvalidSignature struct {
	Text   string
	Reason string
}

func (e *InvalidSignature) Error() string {
	return fmt.Sprintf("invalid signature %q: %s", e.Text, e.Reason)
}

// Kind distinguishes the shape of a resolved Node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindArray
	KindByRef
	KindField
	KindMethod
)

// Node is one handle in the resolver's symbol tree. Two lookups of the
// same reference return the same *Node (spec.md §8: "repeated lookups of
// the same reference return the same node handle").
type Node struct {
	Kind Kind

	// Class/primitive identity.
	Assembly string
	Path     []string // dotted path segments, '/' separated for nested classes
	Name     string    // primitive spelling, or leaf path segment for classes

	// Array/ByRef wrap an element/pointee node.
	Elem *Node

	// Field/Method identity.
	Owner  *Node
	Params []Param // method only

	children map[string]*Node // array/byref singleton children, keyed by kind tag
	members  map[string]*Node // field/method children of a class, keyed by normalized key
}

// Param is one parameter of a normalized method signature.
type Param struct {
	Type  *Node
	ByRef bool
	Name  string
}

// Resolver owns the symbol tree rooted at the working assembly. It is not
// safe for concurrent use. It is process-wide: the Driver creates one
// Resolver and shares it with the generator of every module it translates
// (spec.md §3 Lifecycle).
type Resolver struct {
	primitives map[string]*Node
	classes    map[string]*Node // keyed by "[asm]path"
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{
		primitives: make(map[string]*Node),
		classes:    make(map[string]*Node),
	}
}

// Primitive returns the dedup'd node for a primitive type spelling
// ("int32", "native unsigned int", ...). Primitives live under a sentinel
// sub-node distinct from classes, so "int32" and a hypothetical class
// named "int32" never collide.
func (r *Resolver) Primitive(spelling string) *Node {
	spelling = normalizeSpace(spelling)
	if n, ok := r.primitives[spelling]; ok {
		return n
	}
	n := &Node{Kind: KindPrimitive, Name: spelling, children: make(map[string]*Node)}
	r.primitives[spelling] = n
	return n
}

// Class looks up or creates the class node at assembly/path (path already
// split on '/'). Lookup-or-create lets the emitter name a class before it
// is declared (spec.md §4.5).
func (r *Resolver) Class(assembly string, path []string) *Node {
	key := classKey(assembly, path)
	if n, ok := r.classes[key]; ok {
		return n
	}
	n := &Node{
		Kind:     KindClass,
		Assembly: assembly,
		Path:     append([]string(nil), path...),
		Name:     path[len(path)-1],
		children: make(map[string]*Node),
		members:  make(map[string]*Node),
	}
	r.classes[key] = n
	return n
}

// Array returns (creating if needed) the array-of-t node. Array and
// by-ref suffixing are idempotent child nodes of t (spec.md §4.5).
func (r *Resolver) Array(t *Node) *Node {
	return r.suffix(t, "[]", KindArray)
}

// ByRef returns (creating if needed) the by-reference node over t.
func (r *Resolver) ByRef(t *Node) *Node {
	return r.suffix(t, "&", KindByRef)
}

func (r *Resolver) suffix(t *Node, tag string, kind Kind) *Node {
	if t.children == nil {
		t.children = make(map[string]*Node)
	}
	if n, ok := t.children[tag]; ok {
		return n
	}
	n := &Node{Kind: kind, Elem: t, children: make(map[string]*Node)}
	t.children[tag] = n
	return n
}

// Method looks up or creates a method on owner, keyed by name plus the
// normalized parameter-type list (spec.md §4.5: "Method identity").
func (r *Resolver) Method(owner *Node, name string, params []Param) (*Node, error) {
	if owner.Kind != KindClass {
		return nil, &InvalidSignature{Text: name, Reason: "member ref on a non-class type"}
	}
	key := "M:" + name + "(" + methodParamKey(params) + ")"
	if n, ok := owner.members[key]; ok {
		return n, nil
	}
	n := &Node{Kind: KindMethod, Owner: owner, Name: name, Params: params}
	owner.members[key] = n
	return n, nil
}

// Field looks up or creates a field on owner.
func (r *Resolver) Field(owner *Node, name string) (*Node, error) {
	if owner.Kind != KindClass {
		return nil, &InvalidSignature{Text: name, Reason: "member ref on a non-class type"}
	}
	key := "F:" + name
	if n, ok := owner.members[key]; ok {
		return n, nil
	}
	n := &Node{Kind: KindField, Owner: owner, Name: name}
	owner.members[key] = n
	return n, nil
}

func classKey(assembly string, path []string) string {
	return "[" + assembly + "]" + strings.Join(path, "/")
}

func methodParamKey(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := render(p.Type)
		if p.ByRef {
			s += "&"
		}
		parts[i] = s
	}
	return strings.Join(parts, ",")
}

func normalizeSpace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
