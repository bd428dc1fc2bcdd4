// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/mlvtool/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []types.Cell
	}{
		{
			name: "keeps code cells in order, drops markdown and raw",
			json: `{
				"cells": [
					{"cell_type": "markdown", "source": ["# Title\n"]},
					{"cell_type": "code", "source": ["import os\n", "import sys\n"]},
					{"cell_type": "raw", "source": ["raw text"]},
					{"cell_type": "code", "source": ["print(os.sep)\n"]}
				],
				"nbformat": 4
			}`,
			want: []types.Cell{
				{Index: 1, Source: "import os\nimport sys\n", Kind: types.CellCode},
				{Index: 3, Source: "print(os.sep)\n", Kind: types.CellCode},
			},
		},
		{
			name: "accepts source as a single string",
			json: `{"cells": [{"cell_type": "code", "source": "x = 1\n"}]}`,
			want: []types.Cell{
				{Index: 0, Source: "x = 1\n", Kind: types.CellCode},
			},
		},
		{
			name: "empty cells list yields no cells",
			json: `{"cells": []}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("nb.ipynb", []byte(tt.json))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d cells, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cell %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "invalid JSON", json: `{"cells": [`},
		{name: "missing cells list", json: `{"nbformat": 4}`},
		{name: "cell source is a number", json: `{"cells": [{"cell_type": "code", "source": 42}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("nb.ipynb", []byte(tt.json))
			var malformed *types.MalformedNotebookError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v, want MalformedNotebookError", err)
			}
			if malformed.Path != "nb.ipynb" {
				t.Errorf("error path = %q, want nb.ipynb", malformed.Path)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nb.ipynb")
	content := `{"cells": [{"cell_type": "code", "source": ["a = 1\n"]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cells, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cells) != 1 || cells[0].Source != "a = 1\n" {
		t.Errorf("cells = %+v", cells)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ipynb"))
	var malformed *types.MalformedNotebookError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedNotebookError", err)
	}
}
