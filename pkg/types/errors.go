// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MalformedNotebookError reports a notebook file that could not be read
// or parsed as notebook JSON. Fatal; the conversion produces no output.
type MalformedNotebookError struct {
	Path string
	Err  error
}

func (e *MalformedNotebookError) Error() string {
	return fmt.Sprintf("malformed notebook %s: %v", e.Path, e.Err)
}

func (e *MalformedNotebookError) Unwrap() error { return e.Err }

// MalformedParametersCellError reports a cell that carries the parameters
// marker but whose docstring cannot be parsed as a string literal.
type MalformedParametersCellError struct {
	Path      string
	CellIndex int
	Reason    string
}

func (e *MalformedParametersCellError) Error() string {
	return fmt.Sprintf("malformed parameters cell %d in %s: %s", e.CellIndex, e.Path, e.Reason)
}

// InvalidIdentifierError reports an entry name that cannot be made into a
// legal Python identifier.
type InvalidIdentifierError struct {
	Name   string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid entry identifier %q: %s", e.Name, e.Reason)
}
