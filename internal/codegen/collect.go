package codegen

import "github.com/seanpm2001/Oberon/internal/ast"

// collectRecords walks every declared type reachable from the module and
// returns the distinct records found -- "all records reachable from declared
// types" (spec.md §4.6.1). A record is appended only after its base record
// and the records its field types reach, so a base precedes its extensions.
func (g *Generator) collectRecords() []*ast.RecordType {
	seen := make(map[*ast.RecordType]bool)
	var out []*ast.RecordType

	var walkType func(ast.Type)
	walkType = func(t ast.Type) {
		if t == nil {
			return
		}
		t = ast.Deref(t)
		switch n := t.(type) {
		case *ast.RecordType:
			if seen[n] {
				return
			}
			seen[n] = true
			if n.BaseRecord != nil {
				walkType(n.BaseRecord)
			}
			for _, f := range n.Fields {
				walkType(f.Type)
			}
			out = append(out, n)
			for _, m := range n.Methods {
				walkProc(m, walkType)
			}
		case *ast.ArrayType:
			walkType(n.Elem)
		case *ast.PointerType:
			walkType(n.To)
		case *ast.ProcType:
			for _, p := range n.Params {
				walkType(p.Type)
			}
			walkType(n.Return)
		}
	}

	for _, d := range g.mod.Decls {
		switch decl := d.(type) {
		case *ast.NamedType:
			walkType(decl.Type)
		case *ast.Variable:
			walkType(decl.Type)
		case *ast.Procedure:
			if decl.Receiver == nil {
				walkProc(decl, walkType)
			}
		}
	}
	return out
}

func walkProc(p *ast.Procedure, walkType func(ast.Type)) {
	if p.Receiver != nil {
		walkType(p.Receiver.Type)
	}
	for _, param := range p.Params {
		walkType(param.Type)
	}
	walkType(p.Return)
	for _, l := range p.Locals {
		walkType(l.Type)
	}
}

// collectProcTypes walks the same surface as collectRecords, gathering
// every distinct procedure type reached, keyed by its normalized signature
// (spec.md §4.6.4: each distinct procedure type yields one delegate class).
func (g *Generator) collectProcTypes() map[string]*ast.ProcType {
	out := make(map[string]*ast.ProcType)
	seenRec := make(map[*ast.RecordType]bool)

	var walkType func(ast.Type)
	walkType = func(t ast.Type) {
		if t == nil {
			return
		}
		t = ast.Deref(t)
		switch n := t.(type) {
		case *ast.ProcType:
			sig := normalizeProcSignature(n)
			if _, ok := out[sig]; !ok {
				out[sig] = n
			}
			for _, p := range n.Params {
				walkType(p.Type)
			}
			walkType(n.Return)
		case *ast.ArrayType:
			walkType(n.Elem)
		case *ast.PointerType:
			walkType(n.To)
		case *ast.RecordType:
			if seenRec[n] {
				return
			}
			seenRec[n] = true
			for _, f := range n.Fields {
				walkType(f.Type)
			}
		}
	}

	for _, d := range g.mod.Decls {
		switch decl := d.(type) {
		case *ast.NamedType:
			walkType(decl.Type)
		case *ast.Variable:
			walkType(decl.Type)
		case *ast.Procedure:
			walkProc(decl, walkType)
		}
	}
	return out
}
