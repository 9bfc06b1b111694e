// Package mapsource parses map source text: the nested `{ }`-delimited
// entity/brush/plane format used by Quake-style level editors.
//
// Parse accumulates positioned errors instead of stopping at the first
// problem. When a construct fails to parse, the parser abandons it,
// resynchronizes to the end of the enclosing top-level entity, and
// continues with the following entities, so independent problems each
// produce their own error. A parse that produced any error returns a
// nil document along with the accumulated errors.
//
// Both the legacy texture projection (bare X/Y offsets) and the
// Valve-220 dialect (two bracketed 4-component axes) are accepted; the
// dialect is detected per plane by the presence of '[' after the
// texture name.
package mapsource

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/quaketools/gametext/internal/maplexer"
	"github.com/quaketools/gametext/internal/types"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Parse parses map source text into a document.
//
// The returned error list is empty exactly when the parse succeeded;
// if any error was produced the document is nil. Source must be
// already-decoded text; Parse never panics on malformed input.
func Parse(source []byte, opts ...Option) (*Document, []ParseError) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var lexLogger *slog.Logger
	if cfg.logger != nil {
		lexLogger = cfg.logger.With(slog.String("component", "lexer"))
	}

	p := &parser{
		source: source,
		lex:    maplexer.New(source, lexLogger),
		Logger: types.Logger{L: cfg.logger},
	}

	doc := p.parseDocument()

	p.Log(slog.LevelDebug, "parse complete",
		slog.Int("entities", len(doc.Entities)),
		slog.Int("errors", len(p.diags)))

	if len(p.diags) > 0 {
		return nil, toParseErrors(p.diags)
	}
	return doc, nil
}

// parser consumes the token stream and builds the document.
type parser struct {
	source []byte
	lex    *maplexer.Lexer
	diags  []types.SpanDiagnostic
	depth  int // brace nesting of consumed tokens, used for recovery
	types.Logger
}

func (p *parser) peek() maplexer.Token {
	return p.lex.Peek()
}

func (p *parser) next() maplexer.Token {
	tok := p.lex.Next()
	switch tok.Kind {
	case maplexer.TokLBrace:
		p.depth++
	case maplexer.TokRBrace:
		if p.depth > 0 {
			p.depth--
		}
	}
	return tok
}

func (p *parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

// tokenLiteral renders a token's text for an error message, with
// embedded newlines stripped.
func (p *parser) tokenLiteral(tok maplexer.Token) string {
	if tok.Kind == maplexer.TokEOF {
		return "end of input"
	}
	text := p.text(tok.Span)
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.ReplaceAll(text, "\r", "")
	return fmt.Sprintf("%q", text)
}

func (p *parser) errorAt(tok maplexer.Token, message string) {
	p.diags = append(p.diags, types.SpanDiagnostic{
		Span:    tok.Span,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
	})
}

func (p *parser) errorExpected(want string, tok maplexer.Token) {
	p.errorAt(tok, fmt.Sprintf("expected %s, found %s", want, p.tokenLiteral(tok)))
}

// expect consumes and returns the next token if it has the wanted
// kind; otherwise it reports an error without consuming.
func (p *parser) expect(kind maplexer.TokenKind, want string) (maplexer.Token, bool) {
	tok := p.peek()
	if tok.Kind != kind {
		p.errorExpected(want, tok)
		return maplexer.Token{}, false
	}
	return p.next(), true
}

// recover skips tokens until brace nesting returns to the top level,
// so parsing can resume with the next sibling entity.
func (p *parser) recover() {
	for p.depth > 0 && p.peek().Kind != maplexer.TokEOF {
		p.next()
	}
}

func (p *parser) parseDocument() *Document {
	doc := &Document{}

	for {
		tok := p.peek()
		if tok.Kind == maplexer.TokEOF {
			break
		}
		if tok.Kind != maplexer.TokLBrace {
			p.errorExpected("'{' to begin an entity", tok)
			p.next()
			p.recover()
			continue
		}

		entity, ok := p.parseEntity()
		if !ok {
			p.recover()
			continue
		}
		doc.Entities = append(doc.Entities, entity)

		if p.Enabled(slog.LevelDebug) {
			p.Log(slog.LevelDebug, "parsed entity",
				slog.String("classname", entity.Classname()),
				slog.Int("brushes", len(entity.Brushes)))
		}
	}

	return doc
}

// parseEntity parses '{' (KeyValue | Brush)* '}'. The opening brace is
// known to be next.
func (p *parser) parseEntity() (Entity, bool) {
	p.next() // consume '{'
	entity := Entity{KeyValues: make(map[string]string)}

	for {
		tok := p.peek()
		switch tok.Kind {
		case maplexer.TokQuotedString:
			key := p.next()
			value, ok := p.expect(maplexer.TokQuotedString, "quoted value")
			if !ok {
				return Entity{}, false
			}
			// Last write wins on duplicate keys.
			entity.KeyValues[p.text(key.Span)] = p.text(value.Span)

		case maplexer.TokLBrace:
			brush, ok := p.parseBrush()
			if !ok {
				return Entity{}, false
			}
			entity.Brushes = append(entity.Brushes, brush)

		case maplexer.TokRBrace:
			p.next()
			return entity, true

		case maplexer.TokEOF:
			p.errorAt(tok, "unexpected end of input inside entity")
			return Entity{}, false

		default:
			p.errorExpected("key, brush, or '}'", tok)
			return Entity{}, false
		}
	}
}

// parseBrush parses '{' Plane* '}'. The opening brace is known to be
// next.
func (p *parser) parseBrush() (Brush, bool) {
	p.next() // consume '{'
	var brush Brush

	for {
		tok := p.peek()
		switch tok.Kind {
		case maplexer.TokLParen:
			plane, ok := p.parsePlane()
			if !ok {
				return Brush{}, false
			}
			brush.Planes = append(brush.Planes, plane)

		case maplexer.TokRBrace:
			p.next()
			return brush, true

		case maplexer.TokEOF:
			p.errorAt(tok, "unexpected end of input inside brush")
			return Brush{}, false

		default:
			p.errorExpected("plane or '}'", tok)
			return Brush{}, false
		}
	}
}

// parsePlane parses three points, the texture name, and either the
// legacy offset pair or two bracketed Valve-220 texture axes, followed
// by rotation and scale. The dialect is decided by a single token of
// lookahead after the texture name.
func (p *parser) parsePlane() (Plane, bool) {
	var plane Plane

	for i := range plane.Points {
		point, ok := p.parsePoint()
		if !ok {
			return Plane{}, false
		}
		plane.Points[i] = point
	}

	texture, ok := p.expect(maplexer.TokText, "texture name")
	if !ok {
		return Plane{}, false
	}
	plane.Texture = p.text(texture.Span)

	if p.peek().Kind == maplexer.TokLBracket {
		plane.Valve220 = true

		axis, offset, ok := p.parseAxis()
		if !ok {
			return Plane{}, false
		}
		plane.UAxis = axis
		plane.Offsets.X = offset

		axis, offset, ok = p.parseAxis()
		if !ok {
			return Plane{}, false
		}
		plane.VAxis = axis
		plane.Offsets.Y = offset
	} else {
		if plane.Offsets.X, ok = p.parseNumber(); !ok {
			return Plane{}, false
		}
		if plane.Offsets.Y, ok = p.parseNumber(); !ok {
			return Plane{}, false
		}
	}

	if plane.Rotation, ok = p.parseNumber(); !ok {
		return Plane{}, false
	}
	if plane.Scale.X, ok = p.parseNumber(); !ok {
		return Plane{}, false
	}
	if plane.Scale.Y, ok = p.parseNumber(); !ok {
		return Plane{}, false
	}

	if p.TraceEnabled() {
		p.Trace("parsed plane",
			slog.String("texture", plane.Texture),
			slog.Bool("valve220", plane.Valve220))
	}

	return plane, true
}

// parsePoint parses '(' x y z ')'.
func (p *parser) parsePoint() (Vec3, bool) {
	if _, ok := p.expect(maplexer.TokLParen, "'('"); !ok {
		return Vec3{}, false
	}

	var point Vec3
	var ok bool
	if point.X, ok = p.parseNumber(); !ok {
		return Vec3{}, false
	}
	if point.Y, ok = p.parseNumber(); !ok {
		return Vec3{}, false
	}
	if point.Z, ok = p.parseNumber(); !ok {
		return Vec3{}, false
	}

	if _, ok := p.expect(maplexer.TokRParen, "')'"); !ok {
		return Vec3{}, false
	}
	return point, true
}

// parseAxis parses '[' x y z offset ']' for the Valve-220 dialect.
func (p *parser) parseAxis() (Vec3, float64, bool) {
	if _, ok := p.expect(maplexer.TokLBracket, "'['"); !ok {
		return Vec3{}, 0, false
	}

	var axis Vec3
	var offset float64
	var ok bool
	if axis.X, ok = p.parseNumber(); !ok {
		return Vec3{}, 0, false
	}
	if axis.Y, ok = p.parseNumber(); !ok {
		return Vec3{}, 0, false
	}
	if axis.Z, ok = p.parseNumber(); !ok {
		return Vec3{}, 0, false
	}
	if offset, ok = p.parseNumber(); !ok {
		return Vec3{}, 0, false
	}

	if _, ok := p.expect(maplexer.TokRBracket, "']'"); !ok {
		return Vec3{}, 0, false
	}
	return axis, offset, true
}

// parseNumber accepts an integer or float token and returns its value.
func (p *parser) parseNumber() (float64, bool) {
	tok := p.peek()
	if !tok.Kind.IsNumber() {
		p.errorExpected("number", tok)
		return 0, false
	}
	p.next()

	text := p.text(tok.Span)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.errorAt(tok, fmt.Sprintf("invalid number %q", text))
		return 0, false
	}
	return v, true
}
