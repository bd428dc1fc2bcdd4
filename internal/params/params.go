// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package params detects the parameters cell of a notebook and parses
// its docstring into the ordered parameter declarations that become the
// generated function's signature.
//
// A cell is a parameters cell iff its source, with all whitespace
// removed, begins with the literal marker "#Parameters". The docstring
// declarations are the sole source of the signature: assignments inside
// the cell only exist so the notebook runs standalone and are discarded.
package params

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/mlvtool/pkg/types"
)

// marker identifies a parameters cell after whitespace stripping.
// Case-sensitive, no space between '#' and the word.
const marker = "#Parameters"

// Convention is one docstring parameter grammar. Only the Sphinx
// ":param <type> <name>:" form exists today; an alternate convention is
// a new implementation, not a change to the extractor.
type Convention interface {
	// ParseLine reports whether line declares a parameter and, if so,
	// returns its declaration.
	ParseLine(line string) (types.ParameterDeclaration, bool)
}

// SphinxConvention parses ":param <type> <name>:" declaration lines.
type SphinxConvention struct{}

var sphinxParam = regexp.MustCompile(`^\s*:param\s+(\S+)\s+([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// ParseLine implements Convention.
func (SphinxConvention) ParseLine(line string) (types.ParameterDeclaration, bool) {
	m := sphinxParam.FindStringSubmatch(line)
	if m == nil {
		return types.ParameterDeclaration{}, false
	}
	return types.ParameterDeclaration{Name: m[2], Type: m[1]}, true
}

// IsParametersCell reports whether cell carries the parameters marker.
func IsParametersCell(cell types.Cell) bool {
	return strings.HasPrefix(stripWhitespace(cell.Source), marker)
}

// Extract parses cell into a parameter spec. It returns (nil, nil) when
// the cell is not a parameters cell. When the marker is present but the
// cell holds no parseable docstring literal, Extract fails with a
// MalformedParametersCellError carrying the notebook path and cell index.
//
// The returned spec's Docstring is the full original literal, triple
// quotes included; Parameters keep docstring declaration order and are
// not deduplicated.
func Extract(path string, cell types.Cell) (*types.ParameterSpec, error) {
	if !IsParametersCell(cell) {
		return nil, nil
	}

	lit, err := docstringLiteral(cell.Source)
	if err != nil {
		return nil, &types.MalformedParametersCellError{
			Path:      path,
			CellIndex: cell.Index,
			Reason:    err.Error(),
		}
	}

	spec := &types.ParameterSpec{Docstring: lit}
	conv := SphinxConvention{}
	for _, line := range strings.Split(lit, "\n") {
		if decl, ok := conv.ParseLine(line); ok {
			spec.Parameters = append(spec.Parameters, decl)
		}
	}
	return spec, nil
}

// docstringLiteral returns the first triple-quoted string literal in
// src, delimiters included.
func docstringLiteral(src string) (string, error) {
	start, delim := -1, ""
	for _, d := range []string{`"""`, "'''"} {
		if i := strings.Index(src, d); i >= 0 && (start < 0 || i < start) {
			start, delim = i, d
		}
	}
	if start < 0 {
		return "", errors.New("no docstring literal found")
	}

	rest := src[start+len(delim):]
	end := strings.Index(rest, delim)
	if end < 0 {
		return "", errors.New("unterminated docstring literal")
	}
	return src[start : start+len(delim)+end+len(delim)], nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
