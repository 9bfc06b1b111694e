package types

// SpanDiagnostic is a parse problem reported by a lexer or parser.
// This is the internal representation; the public packages convert it
// to their ParseError form at the API boundary.
type SpanDiagnostic struct {
	Code    int // parser-specific error code, 0 when the format defines none
	Span    Span
	Line    int // 1-based
	Column  int // 1-based
	Message string
}
