package sigres

import "strings"

// Parse parses a reference string against the grammar of spec.md §4.5:
//
//	ref       = typeRef | memberRef
//	typeRef   = ['class' | 'valuetype'] [assembly] path {'[]'} | primType {'[]'}
//	primType  = ['native'] ['unsigned'] ID
//	memberRef = typeRef ['class'|'valuetype'] [assembly] path '::' dottedName [params]
//	assembly  = '[' dottedName ']'
//	path      = dottedName { '/' dottedName }
//	params    = '(' [param {',' param}] ')'
//	param     = ref ['&'] [name]
//	name      = ID | QUOTED
//
// Lookups resolve (or create) nodes against r.
func (r *Resolver) Parse(text string) (*Node, error) {
	p := &parser{r: r, src: text}
	n, err := p.parseRef()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, &InvalidSignature{Text: text, Reason: "trailing input after reference"}
	}
	return n, nil
}

type parser struct {
	r   *Resolver
	src string
	pos int
}

func (p *parser) fail(reason string) error {
	return &InvalidSignature{Text: p.src, Reason: reason}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) eat(b byte) bool {
	p.skipSpace()
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseWord() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '[' || c == ']' || c == '/' || c == '&' || c == '(' || c == ')' || c == ',' || c == ':' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// parseRef parses either a bare typeRef or a memberRef (an optional leading
// member typeRef, such as a method's return type, then the owner typeRef,
// "::" and a dotted name). The leading member type is not kept.
func (p *parser) parseRef() (*Node, error) {
	t, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) && !strings.HasPrefix(p.src[p.pos:], "::") {
		owner, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		t = owner
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "::") {
			return nil, p.fail("missing '::' in member reference")
		}
	}
	if strings.HasPrefix(p.src[p.pos:], "::") {
		p.pos += 2
		name := p.parseWord()
		if name == "" {
			return nil, p.fail("missing member name after '::'")
		}
		if p.eat('(') {
			params, err := p.parseParams()
			if err != nil {
				return nil, err
			}
			return p.r.Method(t, name, params)
		}
		return p.r.Field(t, name)
	}
	return t, nil
}

func (p *parser) parseParams() ([]Param, error) {
	var params []Param
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return params, nil
	}
	for {
		pt, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		byRef := p.eat('&')
		name := ""
		p.skipSpace()
		if p.peek() != ',' && p.peek() != ')' {
			name = p.parseWord()
		}
		params = append(params, Param{Type: pt, ByRef: byRef, Name: name})
		if p.eat(',') {
			continue
		}
		if p.eat(')') {
			break
		}
		return nil, p.fail("unbalanced parameter list")
	}
	return params, nil
}

func (p *parser) parseTypeRef() (*Node, error) {
	p.skipSpace()

	switch {
	case strings.HasPrefix(p.src[p.pos:], "class "):
		p.pos += len("class ")
	case strings.HasPrefix(p.src[p.pos:], "valuetype "):
		p.pos += len("valuetype ")
	}

	var assembly string
	p.skipSpace()
	if p.peek() == '[' {
		close := strings.IndexByte(p.src[p.pos:], ']')
		if close < 0 {
			return nil, p.fail("unbalanced '[' in assembly reference")
		}
		assembly = p.src[p.pos+1 : p.pos+close]
		p.pos += close + 1
	}

	var t *Node
	if isPrimitiveStart(p.src[p.pos:]) {
		spelling := p.parsePrimSpelling()
		t = p.r.Primitive(spelling)
	} else {
		var segs []string
		first := p.parseWord()
		if first == "" {
			return nil, p.fail("expected a type name")
		}
		segs = append(segs, first)
		for p.peek() == '/' {
			p.pos++
			seg := p.parseWord()
			if seg == "" {
				return nil, p.fail("empty path segment after '/'")
			}
			segs = append(segs, seg)
		}
		t = p.r.Class(assembly, segs)
	}

	for strings.HasPrefix(p.src[p.pos:], "[]") {
		p.pos += 2
		t = p.r.Array(t)
	}
	return t, nil
}

func isPrimitiveStart(rest string) bool {
	for _, kw := range primitiveSpellings {
		if strings.HasPrefix(rest, kw) {
			return true
		}
	}
	return false
}

var primitiveSpellings = []string{
	"native unsigned int", "native int",
	"unsigned int8", "unsigned int16", "unsigned int32", "unsigned int64",
	"void", "bool", "char", "int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64", "object", "string",
}

func (p *parser) parsePrimSpelling() string {
	for _, kw := range primitiveSpellings {
		if strings.HasPrefix(p.src[p.pos:], kw) {
			p.pos += len(kw)
			return kw
		}
	}
	return p.parseWord()
}

// Render serializes n back into its canonical textual form (spec.md §8:
// "parsing then re-serializing a reference yields the canonical form").
func Render(n *Node) string {
	return render(n)
}

func render(n *Node) string {
	switch n.Kind {
	case KindPrimitive:
		return n.Name
	case KindArray:
		return render(n.Elem) + "[]"
	case KindByRef:
		return render(n.Elem) + "&"
	case KindClass:
		s := ""
		if n.Assembly != "" {
			s += "[" + n.Assembly + "]"
		}
		s += strings.Join(n.Path, "/")
		return s
	case KindField:
		return render(n.Owner) + "::" + n.Name
	case KindMethod:
		parts := make([]string, len(n.Params))
		for i, p := range n.Params {
			s := render(p.Type)
			if p.ByRef {
				s += "&"
			}
			parts[i] = s
		}
		return render(n.Owner) + "::" + n.Name + "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}
