// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook loads Jupyter notebooks (nbformat 4 JSON) into the
// in-memory cell sequence the conversion pipeline works on. Only code
// cells are retained; markdown and raw cells are dropped while the
// relative order of the surviving cells is preserved.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/mlvtool/pkg/types"
)

// rawNotebook mirrors the subset of the nbformat JSON structure the
// pipeline needs.
type rawNotebook struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string     `json:"cell_type"`
	Source   cellSource `json:"source"`
}

// cellSource accepts both source representations nbformat allows: a list
// of lines (with embedded newlines) or a single string.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = cellSource(strings.Join(lines, ""))
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.New("cell source is neither a string list nor a string")
	}
	*s = cellSource(single)
	return nil
}

// Load reads and parses the notebook at path, returning its code cells
// in original order. Each cell keeps the index it had in the full cell
// list so errors can reference the cell the author sees.
func Load(path string) ([]types.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.MalformedNotebookError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes notebook JSON. It is split from Load so callers holding
// notebook content in memory (tests, watch mode digests) can reuse it.
func Parse(path string, data []byte) ([]types.Cell, error) {
	var nb rawNotebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, &types.MalformedNotebookError{Path: path, Err: fmt.Errorf("parsing notebook JSON: %w", err)}
	}
	if nb.Cells == nil {
		return nil, &types.MalformedNotebookError{Path: path, Err: errors.New("notebook has no cells list")}
	}

	var cells []types.Cell
	for i, c := range nb.Cells {
		if kind(c.CellType) != types.CellCode {
			continue
		}
		cells = append(cells, types.Cell{
			Index:  i,
			Source: string(c.Source),
			Kind:   types.CellCode,
		})
	}
	return cells, nil
}

func kind(cellType string) types.CellKind {
	switch cellType {
	case "code":
		return types.CellCode
	case "markdown":
		return types.CellMarkdown
	default:
		return types.CellOther
	}
}
