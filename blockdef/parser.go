// Package blockdef parses definition source text, the generic
// `key = value ;` / `tag { ... }` block format, into caller-declared
// struct types.
//
// The schema is declared on the result type itself: scalar fields
// (bool, int32/int64, uint32/uint64, float32/float64, string) become
// recognized keys, and slice-of-struct fields become recognized block
// tags. Key names come from the `def` struct tag, defaulting to the
// lowercased field name; all matching is case-insensitive. Keys and
// block tags the schema does not declare are preserved in an embedded
// Extras rather than discarded.
//
// A schema table is built once per result type and cached for the
// process lifetime, so concurrent parses of the same type share one
// read-only table.
//
// Errors accumulate instead of aborting: a bad value skips to the next
// statement and parsing continues. The result is always populated on a
// best-effort basis, but callers must treat it as unreliable unless
// the returned error list is empty. The PostProcess hook runs only
// after an error-free parse.
package blockdef

import (
	"bytes"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/quaketools/gametext/internal/deflexer"
	"github.com/quaketools/gametext/internal/pool"
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

// Parse parses definition source text into out, which must be a
// non-nil pointer to a struct; anything else is a caller contract
// violation and panics. Malformed input never panics.
//
// The returned error list is empty exactly when the parse succeeded.
func Parse(source []byte, out any, opts ...Option) []ParseError {
	rv := reflect.ValueOf(out)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() ||
		rv.Elem().Kind() != reflect.Struct {
		panic("blockdef: parse target must be a non-nil pointer to a struct")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var lexLogger *slog.Logger
	if cfg.logger != nil {
		lexLogger = cfg.logger.With(slog.String("component", "lexer"))
	}

	sch := schemaFor(rv.Elem().Type())
	p := &parser{
		source: source,
		lex:    deflexer.New(source, lexLogger),
		Logger: types.Logger{L: cfg.logger},
	}

	p.parseDocument(rv.Elem(), sch)

	p.Log(slog.LevelDebug, "parse complete",
		slog.String("type", sch.typ.String()),
		slog.Int("errors", len(p.diags)))

	if len(p.diags) == 0 {
		if pp, ok := out.(PostProcessor); ok {
			pp.PostProcess()
		}
	}

	return toParseErrors(p.diags)
}

// parser consumes the token stream and populates the result struct.
type parser struct {
	source []byte
	lex    *deflexer.Lexer
	diags  []types.SpanDiagnostic
	types.Logger
}

// scope is one assignment namespace: the document's global scope, a
// recognized block instance, or an unknown block.
type scope struct {
	sch    *schema       // nil inside unknown blocks
	target reflect.Value // invalid inside unknown blocks
	extras *Extras       // unknown-capture tables, nil when undeclared
	ub     *UnknownBlock // set inside unknown blocks
	seen   map[string]bool
}

func (p *parser) newScope(sch *schema, target reflect.Value) *scope {
	sc := &scope{
		sch:    sch,
		target: target,
		seen:   make(map[string]bool),
	}
	if sch.extras != nil {
		sc.extras = target.FieldByIndex(sch.extras).Addr().Interface().(*Extras)
	}
	return sc
}

func (p *parser) peek() deflexer.Token {
	return p.lex.Peek()
}

func (p *parser) next() deflexer.Token {
	return p.lex.Next()
}

func (p *parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

func (p *parser) tokenLiteral(tok deflexer.Token) string {
	if tok.Kind == deflexer.TokEOF {
		return "end of input"
	}
	text := p.text(tok.Span)
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.ReplaceAll(text, "\r", "")
	return fmt.Sprintf("%q", text)
}

func (p *parser) errorAt(tok deflexer.Token, code int, message string) {
	p.diags = append(p.diags, types.SpanDiagnostic{
		Code:    code,
		Span:    tok.Span,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
	})
}

func (p *parser) errorExpected(code int, want string, tok deflexer.Token) {
	p.errorAt(tok, code, fmt.Sprintf("expected %s, found %s", want, p.tokenLiteral(tok)))
}

func (p *parser) errorUnexpectedChar(tok deflexer.Token) {
	p.errorAt(tok, CodeLexical,
		fmt.Sprintf("unexpected character %s", p.tokenLiteral(tok)))
}

// recoverStatement skips ahead so parsing can resume at the next
// statement: past the next ';', or up to a '}' or end of input.
func (p *parser) recoverStatement() {
	for {
		tok := p.peek()
		if tok.Kind == deflexer.TokEOF || tok.Kind == deflexer.TokRBrace {
			return
		}
		p.next()
		if tok.Kind == deflexer.TokSemicolon {
			return
		}
	}
}

// parseDocument parses GlobalExpr* at the top level.
func (p *parser) parseDocument(root reflect.Value, sch *schema) {
	gsc := p.newScope(sch, root)

	for {
		tok := p.peek()
		switch tok.Kind {
		case deflexer.TokEOF:
			p.finishLists(root, sch)
			return

		case deflexer.TokIdentifier:
			name := p.next()
			switch p.peek().Kind {
			case deflexer.TokEquals:
				p.parseAssignment(gsc, name)
			case deflexer.TokLBrace:
				p.parseBlock(gsc, name)
			default:
				p.errorAt(p.peek(), CodeSyntax,
					fmt.Sprintf("expected '=' or '{' after %q, found %s",
						p.text(name.Span), p.tokenLiteral(p.peek())))
				p.recoverStatement()
			}

		case deflexer.TokUndetermined:
			p.errorUnexpectedChar(tok)
			p.next()

		default:
			p.errorExpected(CodeSyntax, "identifier", tok)
			p.next()
			p.recoverStatement()
		}
	}
}

// parseAssignment parses `= Value ;` after the key identifier. A bad
// value records an error and skips to the next statement; the caller
// continues with the following key.
func (p *parser) parseAssignment(sc *scope, nameTok deflexer.Token) {
	p.next() // consume '='
	lname := strings.ToLower(p.text(nameTok.Span))

	valTok := p.peek()
	if !valTok.Kind.IsValue() {
		if valTok.Kind == deflexer.TokUndetermined {
			p.errorUnexpectedChar(valTok)
			p.next()
		} else {
			p.errorExpected(CodeSyntax, "value", valTok)
		}
		p.recoverStatement()
		return
	}
	p.next()

	var field *scalarField
	if sc.sch != nil {
		field = sc.sch.scalars[lname]
	}
	if field != nil {
		// Recognized keys overwrite on duplicates: last write wins.
		p.assignScalar(sc.target, field, valTok)
	} else {
		if val, ok := p.rawValue(valTok); ok {
			p.storeUnknown(sc, nameTok, lname, val)
		}
	}

	if p.peek().Kind == deflexer.TokSemicolon {
		p.next()
	} else {
		p.errorExpected(CodeSyntax, "';'", p.peek())
		p.recoverStatement()
	}
}

// storeUnknown records an unrecognized assignment. Duplicate unknown
// keys in one scope are a hard error and the first value is kept;
// recognized keys instead overwrite.
func (p *parser) storeUnknown(sc *scope, nameTok deflexer.Token, lname string, val Value) {
	if sc.seen[lname] {
		p.errorAt(nameTok, CodeDuplicateAssignment,
			fmt.Sprintf("duplicate assignment %q", lname))
		return
	}
	sc.seen[lname] = true

	switch {
	case sc.ub != nil:
		if sc.ub.Assignments == nil {
			sc.ub.Assignments = make(map[string]Value)
		}
		sc.ub.Assignments[lname] = val
	case sc.extras != nil:
		sc.extras.addAssignment(lname, val)
	}
}

// assignScalar coerces the value token to the declared field type and
// writes it. Mismatches are recorded and the field is left unchanged.
func (p *parser) assignScalar(target reflect.Value, field *scalarField, tok deflexer.Token) {
	fv := target.FieldByIndex(field.index)
	text := p.text(tok.Span)

	switch field.kind {
	case scalarBool:
		if tok.Kind != deflexer.TokIdentifier {
			p.typeMismatch(field, tok)
			return
		}
		switch strings.ToLower(text) {
		case "true":
			fv.SetBool(true)
		case "false":
			fv.SetBool(false)
		default:
			p.typeMismatch(field, tok)
		}

	case scalarInt:
		if tok.Kind != deflexer.TokInteger {
			p.typeMismatch(field, tok)
			return
		}
		v, err := parseInt(text, field.bits)
		if err != nil {
			p.errorAt(tok, CodeInvalidNumber,
				fmt.Sprintf("invalid integer %q for key %q", text, field.name))
			return
		}
		fv.SetInt(v)

	case scalarUint:
		if tok.Kind != deflexer.TokInteger {
			p.typeMismatch(field, tok)
			return
		}
		v, err := parseUint(text, field.bits)
		if err != nil {
			p.errorAt(tok, CodeInvalidNumber,
				fmt.Sprintf("invalid unsigned integer %q for key %q", text, field.name))
			return
		}
		fv.SetUint(v)

	case scalarFloat:
		switch tok.Kind {
		case deflexer.TokInteger:
			v, err := parseInt(text, 64)
			if err != nil {
				p.errorAt(tok, CodeInvalidNumber,
					fmt.Sprintf("invalid number %q for key %q", text, field.name))
				return
			}
			fv.SetFloat(float64(v))
		case deflexer.TokFloat:
			v, err := strconv.ParseFloat(text, field.bits)
			if err != nil {
				p.errorAt(tok, CodeInvalidNumber,
					fmt.Sprintf("invalid number %q for key %q", text, field.name))
				return
			}
			fv.SetFloat(v)
		default:
			p.typeMismatch(field, tok)
		}

	case scalarString:
		if tok.Kind != deflexer.TokQuotedString {
			p.typeMismatch(field, tok)
			return
		}
		fv.SetString(p.unescape(tok.Span))
	}
}

func (p *parser) typeMismatch(field *scalarField, tok deflexer.Token) {
	p.errorAt(tok, CodeTypeMismatch,
		fmt.Sprintf("value for key %q must be %s, found %s",
			field.name, field.kind.want(), p.tokenLiteral(tok)))
}

// rawValue parses a value token into the tagged union used for
// unrecognized keys.
func (p *parser) rawValue(tok deflexer.Token) (Value, bool) {
	text := p.text(tok.Span)

	switch tok.Kind {
	case deflexer.TokInteger:
		v, err := parseInt(text, 64)
		if err != nil {
			p.errorAt(tok, CodeInvalidNumber, fmt.Sprintf("invalid integer %q", text))
			return Value{}, false
		}
		return IntValue(v), true

	case deflexer.TokFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.errorAt(tok, CodeInvalidNumber, fmt.Sprintf("invalid number %q", text))
			return Value{}, false
		}
		return FloatValue(v), true

	case deflexer.TokIdentifier:
		switch strings.ToLower(text) {
		case "true":
			return BoolValue(true), true
		case "false":
			return BoolValue(false), true
		default:
			return IdentValue(text), true
		}

	case deflexer.TokQuotedString:
		return StringValue(p.unescape(tok.Span)), true

	default:
		return Value{}, false
	}
}

// parseBlock parses `{ BlockBody }` after the tag identifier.
// Recognized tags construct a new element of the declared list type;
// unrecognized tags accumulate into UnknownBlocks in declaration
// order.
func (p *parser) parseBlock(sc *scope, nameTok deflexer.Token) {
	lname := strings.ToLower(p.text(nameTok.Span))

	var bf *blockField
	if sc.sch != nil {
		bf = sc.sch.blocks[lname]
	}

	if bf != nil {
		elemPtr := reflect.New(bf.elemType)
		child := p.newScope(bf.child, elemPtr.Elem())
		p.parseBlockBody(child)

		sv := sc.target.FieldByIndex(bf.index)
		if bf.ptr {
			sv.Set(reflect.Append(sv, elemPtr))
		} else {
			sv.Set(reflect.Append(sv, elemPtr.Elem()))
		}

		if p.TraceEnabled() {
			p.Trace("parsed block", slog.String("tag", lname))
		}
		return
	}

	ub := &UnknownBlock{}
	usc := &scope{ub: ub, seen: make(map[string]bool)}
	p.parseBlockBody(usc)
	if sc.extras != nil {
		sc.extras.addBlock(lname, ub)
	}
}

// parseBlockBody parses '{' (IDENTIFIER '=' Value ';')* '}'. Bad
// statements are skipped; only end of input aborts the block.
func (p *parser) parseBlockBody(sc *scope) {
	p.next() // consume '{'

	for {
		tok := p.peek()
		switch tok.Kind {
		case deflexer.TokIdentifier:
			name := p.next()
			if p.peek().Kind == deflexer.TokEquals {
				p.parseAssignment(sc, name)
			} else {
				p.errorAt(p.peek(), CodeSyntax,
					fmt.Sprintf("expected '=' after %q, found %s",
						p.text(name.Span), p.tokenLiteral(p.peek())))
				p.recoverStatement()
			}

		case deflexer.TokRBrace:
			p.next()
			return

		case deflexer.TokEOF:
			p.errorAt(tok, CodeSyntax, "unexpected end of input inside block")
			return

		case deflexer.TokUndetermined:
			p.errorUnexpectedChar(tok)
			p.next()

		default:
			p.errorExpected(CodeSyntax, "key or '}'", tok)
			p.next()
			p.recoverStatement()
		}
	}
}

// finishLists replaces nil declared block lists with empty ones, so a
// declared list is never absent just because the document had no such
// blocks.
func (p *parser) finishLists(root reflect.Value, sch *schema) {
	for _, bf := range sch.blocks {
		sv := root.FieldByIndex(bf.index)
		if sv.IsNil() {
			sv.Set(reflect.MakeSlice(sv.Type(), 0, 0))
		}
	}
}

// unescape materializes a quoted-string span, processing \" and \\
// sequences. Strings without escapes are converted directly; escaped
// ones go through a pooled scratch buffer.
func (p *parser) unescape(span types.Span) string {
	raw := p.source[span.Start:span.End]
	if bytes.IndexByte(raw, '\\') < 0 {
		return string(raw)
	}

	buf := pool.Rent(len(raw))
	defer pool.Return(buf)

	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b == '\\' && i+1 < len(raw) {
			next := raw[i+1]
			if next == '"' || next == '\\' {
				i++
				b = next
			}
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// parseInt parses a signed integer: decimal, 0x hex, or 0-prefixed
// octal, with a plain base-16 retry as the fallback.
func parseInt(text string, bits int) (int64, error) {
	v, err := strconv.ParseInt(text, 0, bits)
	if err == nil {
		return v, nil
	}
	return strconv.ParseInt(text, 16, bits)
}

func parseUint(text string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(text, 0, bits)
	if err == nil {
		return v, nil
	}
	return strconv.ParseUint(text, 16, bits)
}
