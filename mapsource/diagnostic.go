package mapsource

import (
	"fmt"

	"github.com/quaketools/gametext/internal/types"
)

// ParseError describes one syntax problem found in map source text.
// Multiple errors accumulate per parse; a parse that produced any
// error yields no document.
type ParseError struct {
	Message string
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
			Line:    d.Line,
			Column:  d.Column,
			Offset:  int(d.Span.Start),
			Length:  int(d.Span.Len()),
		}
	}
	return errs
}
