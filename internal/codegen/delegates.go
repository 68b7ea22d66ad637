package codegen

import (
	"github.com/seanpm2001/Oberon/internal/ast"
	"github.com/seanpm2001/Oberon/internal/il"
)

// synthesizeDelegate emits the delegate class for a procedure type (spec.md
// §4.6.4): it extends System.MulticastDelegate, declares the runtime
// (object, native unsigned int) constructor, and an Invoke method mirroring
// pt's signature.
func (g *Generator) synthesizeDelegate(sig string, pt *ast.ProcType) {
	name := delegateClassName(sig)
	g.delegateTable[sig] = name

	g.e.BeginClass(name, true, "System.MulticastDelegate")

	g.e.BeginMethod(".ctor", true, il.Primary, true)
	g.e.AddArgument("object", "object")
	g.e.AddArgument("native unsigned int", "method")
	g.e.SetReturnType("")
	g.e.EndMethod()

	g.e.BeginMethod("Invoke", true, il.Virtual, true)
	for i, p := range pt.Params {
		ref := g.typeRef(p.Type)
		if p.ByRef {
			ref += "&"
		}
		g.e.AddArgument(ref, argName(i))
	}
	if pt.Return != nil {
		g.e.SetReturnType(g.typeRef(pt.Return))
	}
	g.e.EndMethod()

	g.e.EndClass()
}

func argName(i int) string {
	return string(rune('a' + i%26))
}
