package maplexer

import (
	"log/slog"

	"github.com/quaketools/gametext/internal/types"
)

// Lexer tokenizes map source text with one token of lookahead.
//
// The lexer borrows the source buffer and guarantees forward progress:
// every call to Next either advances the position or has already
// reached end of input, so malformed input always terminates.
type Lexer struct {
	source    []byte
	pos       int
	line      int // 1-based line of pos
	lineStart int // offset of the first byte of the current line
	peeked    Token
	hasPeeked bool
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		line:   1,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Peek returns the next token without consuming it. Idempotent.
func (l *Lexer) Peek() Token {
	if !l.hasPeeked {
		l.peeked = l.scan()
		l.hasPeeked = true
	}
	return l.peeked
}

// Next returns the next token and advances past it.
func (l *Lexer) Next() Token {
	tok := l.Peek()
	l.hasPeeked = false
	l.traceToken(tok)
	return tok
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.Int("kind", int(tok.Kind)),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)),
			slog.Int("line", tok.Line))
	}
}

func (l *Lexer) isEOF() bool {
	// A NUL byte terminates the buffer like end of input.
	return l.pos >= len(l.source) || l.source[l.pos] == 0
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekByteAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.lineStart = l.pos
	}
	return b, true
}

func (l *Lexer) column() int {
	return l.pos - l.lineStart + 1
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance()
		} else {
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peekByte()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) token(kind TokenKind, start int, line, column int) Token {
	return Token{
		Kind:   kind,
		Span:   types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)),
		Line:   line,
		Column: column,
	}
}

// scan fetches the next token, skipping whitespace and line comments.
func (l *Lexer) scan() Token {
	for {
		l.skipWhitespace()

		start := l.pos
		line := l.line
		column := l.column()

		if l.isEOF() {
			return l.token(TokEOF, start, line, column)
		}

		b, _ := l.peekByte()

		if b == '/' {
			if next, ok := l.peekByteAt(1); ok && next == '/' {
				l.skipLineComment()
				continue
			}
		}

		switch b {
		case '"':
			return l.scanQuotedString(line, column)
		case '{':
			l.advance()
			return l.token(TokLBrace, start, line, column)
		case '}':
			l.advance()
			return l.token(TokRBrace, start, line, column)
		case '(':
			l.advance()
			return l.token(TokLParen, start, line, column)
		case ')':
			l.advance()
			return l.token(TokRParen, start, line, column)
		case '[':
			l.advance()
			return l.token(TokLBracket, start, line, column)
		case ']':
			l.advance()
			return l.token(TokRBracket, start, line, column)
		}

		if b == '-' || isDigit(b) {
			return l.scanNumber(line, column)
		}

		if isTextChar(b) {
			return l.scanText(line, column)
		}

		l.advance()
		return l.token(TokUndetermined, start, line, column)
	}
}

// scanQuotedString scans to the closing quote. The token span excludes
// the quotes. An unterminated string scans to end of input and still
// yields a quoted-string token; the parser reports the problem. This
// format has no escape sequences.
func (l *Lexer) scanQuotedString(line, column int) Token {
	l.advance() // consume opening quote
	start := l.pos

	for {
		b, ok := l.peekByte()
		if !ok {
			return l.token(TokQuotedString, start, line, column)
		}
		if b == '"' {
			tok := l.token(TokQuotedString, start, line, column)
			l.advance() // consume closing quote
			return tok
		}
		l.advance()
	}
}

// scanNumber scans an optional leading '-', digits, at most one '.'
// and an optional exponent. The token is an integer unless a '.' or
// exponent was seen.
func (l *Lexer) scanNumber(line, column int) Token {
	start := l.pos
	isFloat := false

	if b, ok := l.peekByte(); ok && b == '-' {
		l.advance()
	}

	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	if b, ok := l.peekByte(); ok && b == '.' {
		isFloat = true
		l.advance()
		for {
			b, ok := l.peekByte()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
	}

	if b, ok := l.peekByte(); ok && (b == 'e' || b == 'E') {
		isFloat = true
		l.advance()
		if b, ok := l.peekByte(); ok && (b == '+' || b == '-') {
			l.advance()
		}
		for {
			b, ok := l.peekByte()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
	}

	kind := TokInteger
	if isFloat {
		kind = TokFloat
	}
	return l.token(kind, start, line, column)
}

func (l *Lexer) scanText(line, column int) Token {
	start := l.pos
	l.advance()

	for {
		b, ok := l.peekByte()
		if !ok || !isTextChar(b) {
			break
		}
		l.advance()
	}

	return l.token(TokText, start, line, column)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isTextChar reports bytes that may appear in a bare text token
// (texture names and similar).
func isTextChar(b byte) bool {
	if isAlpha(b) || isDigit(b) {
		return true
	}
	switch b {
	case '_', '*', '=', '/', '\\':
		return true
	}
	return false
}
