package deflexer

import (
	"log/slog"

	"github.com/quaketools/gametext/internal/types"
)

// Lexer tokenizes definition source text with one token of lookahead.
//
// The lexer borrows the source buffer and guarantees forward progress:
// every call to Next either advances the position or has already
// reached end of input.
type Lexer struct {
	source    []byte
	pos       int
	line      int
	lineStart int
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
	if l.TraceEnabled() {
		l.Trace("token",
			slog.Int("kind", int(tok.Kind)),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)),
			slog.Int("line", tok.Line))
	}
	return tok
}

func (l *Lexer) isEOF() bool {
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

// skipBlockComment scans until '*/'. Block comments do not nest; an
// unterminated comment runs to end of input.
func (l *Lexer) skipBlockComment() {
	l.advance() // '/'
	l.advance() // '*'
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if b == '*' {
			if next, ok := l.peekByteAt(1); ok && next == '/' {
				l.advance()
				l.advance()
				return
			}
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
			if next, ok := l.peekByteAt(1); ok {
				if next == '/' {
					l.skipLineComment()
					continue
				}
				if next == '*' {
					l.skipBlockComment()
					continue
				}
			}
		}

		switch b {
		case '{':
			l.advance()
			return l.token(TokLBrace, start, line, column)
		case '}':
			l.advance()
			return l.token(TokRBrace, start, line, column)
		case '=':
			l.advance()
			return l.token(TokEquals, start, line, column)
		case ';':
			l.advance()
			return l.token(TokSemicolon, start, line, column)
		case '"':
			return l.scanQuotedString(line, column)
		}

		if b == '-' {
			if next, ok := l.peekByteAt(1); ok && isDigit(next) {
				return l.scanNumber(line, column)
			}
		}
		if isDigit(b) {
			return l.scanNumber(line, column)
		}

		if isAlpha(b) || b == '_' {
			return l.scanIdentifier(line, column)
		}

		l.advance()
		return l.token(TokUndetermined, start, line, column)
	}
}

// scanQuotedString scans to the next unescaped '"'. The token span
// excludes the quotes; escape sequences are preserved verbatim and
// processed when the value is materialized. An unterminated string
// scans to end of input.
func (l *Lexer) scanQuotedString(line, column int) Token {
	l.advance() // consume opening quote
	start := l.pos

	for {
		b, ok := l.peekByte()
		if !ok {
			return l.token(TokQuotedString, start, line, column)
		}
		if b == '\\' {
			l.advance()
			// Skip the escaped character, if any.
			l.advance()
			continue
		}
		if b == '"' {
			tok := l.token(TokQuotedString, start, line, column)
			l.advance() // consume closing quote
			return tok
		}
		l.advance()
	}
}

// scanNumber scans decimal, hex (0x...), and octal (0...) integers,
// and decimal floats with an optional fraction and exponent.
func (l *Lexer) scanNumber(line, column int) Token {
	start := l.pos
	isFloat := false

	if b, ok := l.peekByte(); ok && b == '-' {
		l.advance()
	}

	if b, ok := l.peekByte(); ok && b == '0' {
		if next, ok := l.peekByteAt(1); ok && (next == 'x' || next == 'X') {
			l.advance()
			l.advance()
			for {
				b, ok := l.peekByte()
				if !ok || !isHexDigit(b) {
					break
				}
				l.advance()
			}
			return l.token(TokInteger, start, line, column)
		}
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

func (l *Lexer) scanIdentifier(line, column int) Token {
	start := l.pos
	l.advance()

	for {
		b, ok := l.peekByte()
		if !ok {
			break
		}
		if isAlpha(b) || isDigit(b) || b == '_' {
			l.advance()
		} else {
			break
		}
	}

	return l.token(TokIdentifier, start, line, column)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
