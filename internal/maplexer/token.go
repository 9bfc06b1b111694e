// Package maplexer provides tokenization for map source text
// (the nested entity/brush/plane format).
package maplexer

import (
	"github.com/quaketools/gametext/internal/types"
)

// Token is a token with kind, source span, and position.
// Tokens never own character data; the span references the source
// buffer for the lifetime of the parse.
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
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokText is a bare word (texture names, flags).
	TokText
	// TokInteger is an integer literal.
	TokInteger
	// TokFloat is a floating-point literal.
	TokFloat
	// TokQuotedString is a quoted string literal. The span covers the
	// text between the quotes, exclusive.
	TokQuotedString
)

// String returns a human-readable name for this token kind, used in
// parse error messages.
func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokUndetermined:
		return "unrecognized character"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokText:
		return "text"
	case TokInteger:
		return "integer"
	case TokFloat:
		return "float"
	case TokQuotedString:
		return "quoted string"
	default:
		return "unknown"
	}
}

// IsNumber returns true for integer and float tokens. Both are accepted
// wherever the map grammar expects a number.
func (k TokenKind) IsNumber() bool {
	return k == TokInteger || k == TokFloat
}
