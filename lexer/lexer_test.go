package lexer

import (
	"testing"

	"github.com/basecode-lang/alphac/source"
	"github.com/basecode-lang/alphac/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(source.New(t.Name(), []byte(src)))
	var toks []token.Token
	for l.HasNext() {
		tok, ok := l.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func checkKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got kind %v (%q), want %v", i, toks[i].Kind, toks[i].Value, k)
		}
	}
}

func TestLexerKeywordVsIdentifierPrefix(t *testing.T) {
	// "return" must not be mis-lexed as an identifier prefix of
	// "returning"; the keyword recognizer requires a non-alphanumeric
	// follower.
	toks := scanAll(t, "return returning;")
	checkKinds(t, toks, token.KwReturn, token.Ident, token.Semicolon, token.EOF)
	if toks[1].Value != "returning" {
		t.Errorf("got %q, want returning", toks[1].Value)
	}
}

func TestLexerNumericPrefixes(t *testing.T) {
	toks := scanAll(t, "$ff @17 %101 42 3.14")
	checkKinds(t, toks, token.NumberLiteral, token.NumberLiteral, token.NumberLiteral, token.NumberLiteral, token.NumberLiteral, token.EOF)
	if toks[0].Radix != token.Hex || toks[0].Value != "ff" {
		t.Errorf("hex literal: got %+v", toks[0])
	}
	if toks[1].Radix != token.Octal || toks[1].Value != "17" {
		t.Errorf("octal literal: got %+v", toks[1])
	}
	if toks[2].Radix != token.Binary || toks[2].Value != "101" {
		t.Errorf("binary literal: got %+v", toks[2])
	}
	if toks[3].Number != token.IntegerLiteral {
		t.Errorf("decimal literal should be integer sub-kind, got %+v", toks[3])
	}
	if toks[4].Number != token.FloatLiteral || toks[4].Value != "3.14" {
		t.Errorf("float literal: got %+v", toks[4])
	}
}

func TestLexerUnderscoresElided(t *testing.T) {
	toks := scanAll(t, "1_000_000")
	checkKinds(t, toks, token.NumberLiteral, token.EOF)
	if toks[0].Value != "1000000" {
		t.Errorf("got %q, want 1000000", toks[0].Value)
	}
}

func TestLexerLabel(t *testing.T) {
	toks := scanAll(t, "loop: nop;")
	checkKinds(t, toks, token.Label, token.Ident, token.Semicolon, token.EOF)
	if toks[0].Value != "loop" {
		t.Errorf("got %q, want loop", toks[0].Value)
	}
}

func TestLexerAssignmentOperators(t *testing.T) {
	toks := scanAll(t, "a := b ::= c = d")
	checkKinds(t, toks, token.Ident, token.ColonEquals, token.Ident, token.ColonColonEq, token.Ident, token.Assign, token.Ident, token.EOF)
}

func TestLexerBlockCommentNesting(t *testing.T) {
	toks := scanAll(t, "/* outer /* inner */ still outer */ x")
	checkKinds(t, toks, token.BlockComment, token.Ident, token.EOF)
}

func TestLexerStringNoEscapeProcessing(t *testing.T) {
	toks := scanAll(t, `"ab\ncd"`)
	checkKinds(t, toks, token.StringLiteral, token.EOF)
	if toks[0].Value != `ab\ncd` {
		t.Errorf("got %q, want raw ab\\ncd", toks[0].Value)
	}
}

// TestLexerRoundTrip is testable property 1: concatenating token lexemes
// with a single separating space reproduces a source that re-lexes to the
// same token sequence.
func TestLexerRoundTrip(t *testing.T) {
	src := "a := 5 + 7 * 2 ;"
	first := scanAll(t, src)

	var rebuilt string
	for i, tok := range first {
		if tok.Kind == token.EOF {
			break
		}
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += tok.Value
	}
	second := scanAll(t, rebuilt)
	if len(first) != len(second) {
		t.Fatalf("round-trip token count mismatch: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind {
			t.Errorf("token %d kind mismatch: %v != %v", i, first[i].Kind, second[i].Kind)
		}
	}
}

func TestLexerUnrecognizedCharacterStops(t *testing.T) {
	l := New(source.New(t.Name(), []byte("a \x01 b")))
	tok, ok := l.Next()
	if !ok || tok.Kind != token.Ident {
		t.Fatalf("expected leading identifier, got %+v ok=%v", tok, ok)
	}
	tok, ok = l.Next()
	if !ok || tok.Kind != token.EOF {
		t.Fatalf("expected eof sentinel on unrecognized char, got %+v ok=%v", tok, ok)
	}
	if l.HasNext() {
		t.Fatal("HasNext should be false after unrecognized character")
	}
}
