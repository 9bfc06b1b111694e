package gametext

import (
	"os"
)

// ParseMapFile reads path and parses it as map source. The returned
// error covers I/O only; syntax problems come back as parse errors.
func ParseMapFile(path string, opts ...ParseOption) (*MapDocument, []MapParseError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, errs := ParseMap(data, opts...)
	return doc, errs, nil
}

// ParseDefsFile reads path and parses it as definition source into
// out. The returned error covers I/O only.
func ParseDefsFile(path string, out any, opts ...ParseOption) ([]DefParseError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefs(data, out, opts...), nil
}
