package deflexer

import (
	"testing"

	"github.com/quaketools/gametext/internal/testutil"
)

// tokenKinds drains the lexer and returns the token kinds, excluding
// the trailing EOF.
func tokenKinds(t *testing.T, source string) []TokenKind {
	t.Helper()
	lex := New([]byte(source), nil)
	var kinds []TokenKind
	for {
		tok := lex.Next()
		if tok.Kind == TokEOF {
			return kinds
		}
		kinds = append(kinds, tok.Kind)
	}
}

// tokenTexts drains the lexer and returns the source text of each
// token, excluding the trailing EOF.
func tokenTexts(t *testing.T, source string) []string {
	t.Helper()
	lex := New([]byte(source), nil)
	var texts []string
	for {
		tok := lex.Next()
		if tok.Kind == TokEOF {
			return texts
		}
		texts = append(texts, string(source[tok.Span.Start:tok.Span.End]))
	}
}

func TestEmptyInput(t *testing.T) {
	lex := New(nil, nil)
	testutil.Equal(t, TokEOF, lex.Next().Kind, "kind")
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds(t, "{ } = ;")
	testutil.SliceEqual(t,
		[]TokenKind{TokLBrace, TokRBrace, TokEquals, TokSemicolon},
		kinds, "kinds")
}

func TestAssignmentStatement(t *testing.T) {
	kinds := tokenKinds(t, `speed = 120;`)
	testutil.SliceEqual(t,
		[]TokenKind{TokIdentifier, TokEquals, TokInteger, TokSemicolon},
		kinds, "kinds")

	texts := tokenTexts(t, `speed = 120;`)
	testutil.SliceEqual(t, []string{"speed", "=", "120", ";"}, texts, "texts")
}

func TestNumbers(t *testing.T) {
	source := "0 -5 0x1A 0X2b 017 1.5 -1.5e-3 2E5"
	kinds := tokenKinds(t, source)
	testutil.SliceEqual(t, []TokenKind{
		TokInteger, TokInteger, TokInteger, TokInteger,
		TokInteger, TokFloat, TokFloat, TokFloat,
	}, kinds, "kinds")

	texts := tokenTexts(t, source)
	testutil.SliceEqual(t,
		[]string{"0", "-5", "0x1A", "0X2b", "017", "1.5", "-1.5e-3", "2E5"},
		texts, "texts")
}

func TestIdentifiers(t *testing.T) {
	kinds := tokenKinds(t, "material _hidden Rough2 true")
	testutil.SliceEqual(t, []TokenKind{
		TokIdentifier, TokIdentifier, TokIdentifier, TokIdentifier,
	}, kinds, "kinds")
}

func TestQuotedStringSpanExcludesQuotes(t *testing.T) {
	lex := New([]byte(`"hello world"`), nil)
	tok := lex.Next()
	testutil.Equal(t, TokQuotedString, tok.Kind, "kind")
	testutil.Equal(t, 1, int(tok.Span.Start), "start")
	testutil.Equal(t, 12, int(tok.Span.End), "end")
}

func TestQuotedStringEscapes(t *testing.T) {
	source := `"say \"hi\" and \\ more"`
	texts := tokenTexts(t, source)
	testutil.SliceEqual(t, []string{`say \"hi\" and \\ more`}, texts, "texts")
}

func TestUnterminatedStringReachesEOF(t *testing.T) {
	lex := New([]byte(`"never closed`), nil)
	tok := lex.Next()
	testutil.Equal(t, TokQuotedString, tok.Kind, "kind")
	testutil.Equal(t, "never closed", string([]byte(`"never closed`)[tok.Span.Start:tok.Span.End]), "text")
	testutil.Equal(t, TokEOF, lex.Next().Kind, "eof follows")
}

func TestLineComments(t *testing.T) {
	source := "// leading\nname = 1; // trailing\n"
	kinds := tokenKinds(t, source)
	testutil.SliceEqual(t,
		[]TokenKind{TokIdentifier, TokEquals, TokInteger, TokSemicolon},
		kinds, "kinds")
}

func TestBlockComments(t *testing.T) {
	source := "a /* one\ntwo */ = /**/ 1;"
	texts := tokenTexts(t, source)
	testutil.SliceEqual(t, []string{"a", "=", "1", ";"}, texts, "texts")
}

func TestUnterminatedBlockComment(t *testing.T) {
	lex := New([]byte("a /* never closed"), nil)
	testutil.Equal(t, TokIdentifier, lex.Next().Kind, "identifier")
	testutil.Equal(t, TokEOF, lex.Next().Kind, "eof")
}

func TestUndetermined(t *testing.T) {
	kinds := tokenKinds(t, "a # b")
	testutil.SliceEqual(t,
		[]TokenKind{TokIdentifier, TokUndetermined, TokIdentifier},
		kinds, "kinds")
}

func TestLoneMinusIsUndetermined(t *testing.T) {
	kinds := tokenKinds(t, "- x")
	testutil.SliceEqual(t, []TokenKind{TokUndetermined, TokIdentifier}, kinds, "kinds")
}

func TestPeekIsIdempotent(t *testing.T) {
	lex := New([]byte("alpha beta"), nil)
	first := lex.Peek()
	second := lex.Peek()
	testutil.Equal(t, first, second, "peeked tokens")
	testutil.Equal(t, first, lex.Next(), "peek then next")
	testutil.Equal(t, TokIdentifier, lex.Next().Kind, "second token")
}

func TestLineAndColumn(t *testing.T) {
	lex := New([]byte("a = 1;\n  nested {\n}"), nil)

	type pos struct{ line, column int }
	want := []pos{
		{1, 1}, {1, 3}, {1, 5}, {1, 6},
		{2, 3}, {2, 10},
		{3, 1},
	}
	for i, w := range want {
		tok := lex.Next()
		testutil.Equal(t, w.line, tok.Line, "token %d line", i)
		testutil.Equal(t, w.column, tok.Column, "token %d column", i)
	}
	testutil.Equal(t, TokEOF, lex.Next().Kind, "eof")
}

func TestNulTerminates(t *testing.T) {
	lex := New([]byte("abc\x00def"), nil)
	tok := lex.Next()
	testutil.Equal(t, TokIdentifier, tok.Kind, "kind")
	testutil.Equal(t, TokEOF, lex.Next().Kind, "nul treated as end of input")
}

func TestEOFIsSticky(t *testing.T) {
	lex := New([]byte("x"), nil)
	testutil.Equal(t, TokIdentifier, lex.Next().Kind, "identifier")
	testutil.Equal(t, TokEOF, lex.Next().Kind, "first eof")
	testutil.Equal(t, TokEOF, lex.Next().Kind, "second eof")
}
