// Package deflexer provides tokenization for definition source text
// (the `key = value ;` / `tag { ... }` block format).
package deflexer

import (
	"github.com/quaketools/gametext/internal/types"
)

// Token is a token with kind, source span, and position. Tokens never
// own character data; the span references the source buffer.
type Token struct {
	Kind   TokenKind
	Span   types.Span
	Line   int // 1-based
	Column int // 1-based
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// TokEOF is end of input. Returned repeatedly once reached.
	TokEOF TokenKind = iota
	// TokUndetermined is a character the scanner cannot classify.
	TokUndetermined
	// TokIdentifier is a bare identifier (letter or underscore start).
	TokIdentifier
	// TokInteger is an integer literal: decimal, hex 0x..., or octal 0...
	TokInteger
	// TokFloat is a float literal with a fraction or exponent.
	TokFloat
	// TokQuotedString is a quoted string literal. The span covers the
	// text between the quotes, exclusive; escape sequences are left
	// unprocessed until the value is materialized.
	TokQuotedString
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokEquals is '='.
	TokEquals
	// TokSemicolon is ';'.
	TokSemicolon
)

// String returns a human-readable name for this token kind, used in
// parse error messages.
func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokUndetermined:
		return "unrecognized character"
	case TokIdentifier:
		return "identifier"
	case TokInteger:
		return "integer"
	case TokFloat:
		return "float"
	case TokQuotedString:
		return "quoted string"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokEquals:
		return "'='"
	case TokSemicolon:
		return "';'"
	default:
		return "unknown"
	}
}

// IsValue returns true for token kinds that may appear on the right
// side of an assignment.
func (k TokenKind) IsValue() bool {
	switch k {
	case TokIdentifier, TokInteger, TokFloat, TokQuotedString:
		return true
	default:
		return false
	}
}
