package sigres

import "testing"

func TestPrimitiveDedup(t *testing.T) {
	r := New()
	a := r.Primitive("int32")
	b := r.Primitive("int32")
	if a != b {
		t.Fatal("expected the same primitive node for repeated lookups")
	}
	if a == r.Primitive("int64") {
		t.Fatal("distinct primitives must not collide")
	}
}

func TestArrayAndByRefSuffixingIdempotent(t *testing.T) {
	r := New()
	t32 := r.Primitive("int32")
	a1 := r.Array(t32)
	a2 := r.Array(t32)
	if a1 != a2 {
		t.Fatal("array suffix must be idempotent")
	}
	ref1 := r.ByRef(t32)
	ref2 := r.ByRef(t32)
	if ref1 != ref2 {
		t.Fatal("by-ref suffix must be idempotent")
	}
	if a1 == ref1 {
		t.Fatal("array and by-ref children must be distinct nodes")
	}
}

func TestClassLookupOrCreate(t *testing.T) {
	r := New()
	c1 := r.Class("OBX.Runtime", []string{"M", "Rec"})
	c2 := r.Class("OBX.Runtime", []string{"M", "Rec"})
	if c1 != c2 {
		t.Fatal("repeated class lookups must return the same node")
	}
}

func TestParseRoundTripsToCanonicalForm(t *testing.T) {
	r := New()
	cases := []string{
		"int32",
		"int32[]",
		"class [OBX.Runtime]M/Rec",
		"class [OBX.Runtime]M/Rec::x",
		"void class [M]M::P(int32, int32&)",
	}
	for _, text := range cases {
		n, err := r.Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		n2, err := r.Parse(Render(n))
		if err != nil {
			t.Fatalf("re-parsing rendered form of %q: %v", text, err)
		}
		if n2 != n {
			t.Fatalf("re-parse of canonical form of %q did not return the same node", text)
		}
	}
}

func TestMethodIdentityBySignature(t *testing.T) {
	r := New()
	cls := r.Class("M", []string{"M"})
	i32 := r.Primitive("int32")
	m1, err := r.Method(cls, "P", []Param{{Type: i32}, {Type: i32, ByRef: true}})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := r.Method(cls, "P", []Param{{Type: i32}, {Type: i32, ByRef: true}})
	if err != nil {
		t.Fatal(err)
	}
	if m1 != m2 {
		t.Fatal("methods with matching normalized signatures must be identical")
	}

	m3, err := r.Method(cls, "P", []Param{{Type: i32}})
	if err != nil {
		t.Fatal(err)
	}
	if m3 == m1 {
		t.Fatal("methods with different signatures must be distinct")
	}
}

func TestMemberRefOnNonClassIsInvalidSignature(t *testing.T) {
	r := New()
	prim := r.Primitive("int32")
	_, err := r.Field(prim, "x")
	if err == nil {
		t.Fatal("expected InvalidSignature for a member ref on a primitive")
	}
	var sigErr *InvalidSignature
	if _, ok := err.(*InvalidSignature); !ok {
		t.Fatalf("expected *InvalidSignature, got %T", err)
	}
	_ = sigErr
}

func TestParseRejectsUnbalancedBrackets(t *testing.T) {
	r := New()
	_, err := r.Parse("class [OBX.RuntimeM/Rec")
	if err == nil {
		t.Fatal("expected InvalidSignature for unbalanced '['")
	}
}

func TestParseRejectsMissingDoubleColon(t *testing.T) {
	r := New()
	// "x" alone parses fine as a bare class reference; "::" is required once
	// a member type is followed by an owner type.
	if _, err := r.Parse("void class [M]M P(int32)"); err == nil {
		t.Fatal("expected InvalidSignature for a member reference without '::'")
	}

	// An unbalanced parameter list is rejected as well.
	_, err := r.Parse("void class [M]M::P(int32")
	if err == nil {
		t.Fatal("expected InvalidSignature for unbalanced parameter list")
	}
}
