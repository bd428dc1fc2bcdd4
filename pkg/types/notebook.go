// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared domain types for the conversion pipeline:
// notebook cells, parameter specifications, filter policies, and the typed
// errors the pipeline reports.
package types

// CellKind classifies a notebook cell.
type CellKind string

const (
	CellCode     CellKind = "code"
	CellMarkdown CellKind = "markdown"
	CellOther    CellKind = "other"
)

// Cell is one notebook cell. Index is the cell's position in the source
// notebook (counting all cells, not just code cells), so diagnostics can
// point at the cell the author sees. Cells are immutable once loaded.
type Cell struct {
	Index  int
	Source string
	Kind   CellKind
}

// ParameterDeclaration is one docstring-declared parameter of the entry
// function. Type is carried verbatim; it is never validated against any
// type system.
type ParameterDeclaration struct {
	Name string
	Type string
}

// ParameterSpec is the signature contract extracted from a parameters
// cell. Docstring is the full original string literal, including its
// triple quotes, re-emitted verbatim into the generated function.
// Parameters keep docstring declaration order.
type ParameterSpec struct {
	EntryName  string
	Docstring  string
	Parameters []ParameterDeclaration
}

// FilterPolicy decides which cells survive into the generated body.
//
// When Configured is true the IgnorePatterns are authoritative: a cell is
// dropped iff its source contains at least one pattern as a literal
// substring, and the built-in bare-expression heuristic is suppressed —
// even when IgnorePatterns is empty. When Configured is false the
// heuristic applies instead. The two rules never combine.
type FilterPolicy struct {
	IgnorePatterns []string
	Configured     bool
}

// NewFilterPolicy returns a configured policy with the given patterns.
func NewFilterPolicy(patterns []string) FilterPolicy {
	return FilterPolicy{IgnorePatterns: patterns, Configured: true}
}
