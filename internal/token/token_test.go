package token

import "testing"

func TestMatchRoundTripsEverySpelling(t *testing.T) {
	for k, spelling := range spellings {
		if spelling == "" {
			continue
		}
		gotKind, gotEnd := Match([]byte(spelling), 0)
		if gotKind != k || gotEnd != len(spelling) {
			t.Errorf("Match(%q, 0) = (%s, %d), want (%s, %d)", spelling, Name(gotKind), gotEnd, Name(k), len(spelling))
		}
	}
}

func TestSpellingOnlyDefinedForLiteralsAndKeywords(t *testing.T) {
	for k := Kind(0); k < INVALID; k++ {
		s := Spelling(k)
		switch Classify(k) {
		case Special:
			if s != "" {
				t.Errorf("Spelling(%s) = %q, want \"\" for a Special kind", Name(k), s)
			}
		default:
			if s == "" {
				if _, known := names[k]; known {
					t.Errorf("Spelling(%s) = \"\", want a non-empty literal/keyword spelling", Name(k))
				}
			}
		}
	}
}

func TestLongestPrefixWinsOverShorterOperator(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
		end  int
	}{
		{"..", DOTDOT, 2},
		{".x", DOT, 1},
		{":=", COLONEQ, 2},
		{":x", COLON, 1},
		{"<=", LEQ, 2},
		{"<*", LTSTAR, 2},
		{"<x", LT, 1},
		{"*)", STARRPAREN, 2},
		{"*>", STARGT, 2},
		{"*x", STAR, 1},
		{"(*", LPARENSTAR, 2},
		{"(x", LPAREN, 1},
	}

	for _, c := range cases {
		gotKind, gotEnd := Match([]byte(c.src), 0)
		if gotKind != c.kind || gotEnd != c.end {
			t.Errorf("Match(%q, 0) = (%s, %d), want (%s, %d)", c.src, Name(gotKind), gotEnd, Name(c.kind), c.end)
		}
	}
}

func TestKeywordRequiresFullWord(t *testing.T) {
	// "RET" is a prefix of RETURN but is not itself a keyword.
	k, end := Match([]byte("RET"), 0)
	if k != IDENT || end != 3 {
		t.Errorf("Match(\"RET\", 0) = (%s, %d), want (IDENT, 3)", Name(k), end)
	}

	k, end = Match([]byte("RETURN"), 0)
	if k != RETURN || end != 6 {
		t.Errorf("Match(\"RETURN\", 0) = (%s, %d), want (RETURN, 6)", Name(k), end)
	}

	// Keywords in this language are uppercase; a differently-cased spelling
	// is just an identifier.
	k, end = Match([]byte("Return"), 0)
	if k != IDENT || end != 6 {
		t.Errorf("Match(\"Return\", 0) = (%s, %d), want (IDENT, 6)", Name(k), end)
	}
}

func TestMatchAdvancesOnInvalidInput(t *testing.T) {
	k, end := Match([]byte("$"), 0)
	if k != INVALID || end != 1 {
		t.Errorf("Match(\"$\", 0) = (%s, %d), want (INVALID, 1)", Name(k), end)
	}
}

func TestMatchAtEOF(t *testing.T) {
	k, end := Match([]byte("abc"), 3)
	if k != EOF || end != 3 {
		t.Errorf("Match at end of input = (%s, %d), want (EOF, 3)", Name(k), end)
	}
}
