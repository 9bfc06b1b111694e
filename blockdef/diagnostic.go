package blockdef

import (
	"fmt"

	"github.com/quaketools/gametext/internal/types"
)

// Error codes carried in ParseError.Code.
const (
	// CodeNone means no code was assigned.
	CodeNone = iota
	// CodeSyntax is a structural mismatch: a specific token was
	// required and something else was found.
	CodeSyntax
	// CodeLexical is an input character the scanner cannot classify.
	CodeLexical
	// CodeTypeMismatch is a recognized key whose value token does not
	// match the declared field type.
	CodeTypeMismatch
	// CodeInvalidNumber is a numeric literal that cannot be parsed at
	// the declared width.
	CodeInvalidNumber
	// CodeDuplicateAssignment is a duplicate unrecognized key within
	// one scope.
	CodeDuplicateAssignment
)

// ParseError describes one problem found in definition source text.
// Errors accumulate; the result object is always populated on a
// best-effort basis, but callers must treat it as unreliable when any
// error was produced.
type ParseError struct {
	Message string
	Code    int
	Line    int // 1-based
	Column  int // 1-based
	Offset  int // byte offset of the offending token
	Length  int // byte length of the offending token
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return e.String()
}

// String returns "line:col: message".
func (e ParseError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func toParseErrors(diags []types.SpanDiagnostic) []ParseError {
	if len(diags) == 0 {
		return nil
	}
	errs := make([]ParseError, len(diags))
	for i, d := range diags {
		errs[i] = ParseError{
			Message: d.Message,
			Code:    d.Code,
			Line:    d.Line,
			Column:  d.Column,
			Offset:  int(d.Span.Start),
			Length:  int(d.Span.Len()),
		}
	}
	return errs
}
