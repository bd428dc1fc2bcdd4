// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gen

import (
	"strings"
	"testing"

	"github.com/pdiddy/mlvtool/pkg/types"
)

func TestEntryName(t *testing.T) {
	tests := []struct {
		name         string
		notebookPath string
		want         string
	}{
		{name: "plain name", notebookPath: "test_nb.ipynb", want: "mlvtool_test_nb"},
		{name: "full path", notebookPath: "/work/dir/test_nb.ipynb", want: "mlvtool_test_nb"},
		{
			name:         "runs of illegal characters collapse to one underscore",
			notebookPath: "01_(test) nb.ipynb",
			want:         "mlvtool_01__test_nb",
		},
		{name: "leading digit is fine behind the prefix", notebookPath: "01-train.ipynb", want: "mlvtool_01_train"},
		{name: "hyphens", notebookPath: "my-analysis.ipynb", want: "mlvtool_my_analysis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntryName(tt.notebookPath)
			if err != nil {
				t.Fatalf("EntryName: %v", err)
			}
			if got != tt.want {
				t.Errorf("EntryName(%q) = %q, want %q", tt.notebookPath, got, tt.want)
			}
		})
	}
}

func TestDefaultScriptName(t *testing.T) {
	got, err := DefaultScriptName("01_(test) nb.ipynb")
	if err != nil {
		t.Fatalf("DefaultScriptName: %v", err)
	}
	if got != "mlvtool_01__test_nb.py" {
		t.Errorf("DefaultScriptName = %q, want mlvtool_01__test_nb.py", got)
	}
}

func TestScript_NoParameters(t *testing.T) {
	cells := []types.Cell{
		{Index: 1, Source: "import os\n"},
		{Index: 2, Source: "print(os.sep)\n"},
	}

	got := Script("mlvtool_test_nb", nil, cells)

	if !strings.Contains(got, "def mlvtool_test_nb():\n") {
		t.Errorf("missing zero-parameter signature:\n%s", got)
	}
	if !strings.Contains(got, "    import os\n") {
		t.Errorf("cell body not indented:\n%s", got)
	}
	if !strings.HasPrefix(got, "#!/usr/bin/env python3\n") {
		t.Errorf("missing script header:\n%s", got)
	}
	// Cell boundary must stay visible as a blank line.
	if !strings.Contains(got, "    import os\n\n    print(os.sep)\n") {
		t.Errorf("cells not separated by a blank line:\n%s", got)
	}
}

func TestScript_Signature(t *testing.T) {
	spec := &types.ParameterSpec{
		EntryName: "mlvtool_test_nb",
		Docstring: "\"\"\"\n:param str subset: The kind of subset to generate.\n:param int rate:\n\"\"\"",
		Parameters: []types.ParameterDeclaration{
			{Name: "subset", Type: "str"},
			{Name: "rate", Type: "int"},
		},
	}
	cells := []types.Cell{{Index: 1, Source: "run(subset, rate)\n"}}

	got := Script("mlvtool_test_nb", spec, cells)

	if !strings.Contains(got, "def mlvtool_test_nb(subset: str, rate: int):\n") {
		t.Errorf("wrong signature:\n%s", got)
	}
	if strings.Contains(got, "=") {
		t.Errorf("signature or body must not carry default values:\n%s", got)
	}
	if !strings.Contains(got, "    \"\"\"\n") {
		t.Errorf("docstring not re-emitted inside the function:\n%s", got)
	}
	if !strings.Contains(got, ":param str subset: The kind of subset to generate.") {
		t.Errorf("docstring text not preserved verbatim:\n%s", got)
	}
}

func TestScript_EmptyBodyGetsPass(t *testing.T) {
	got := Script("mlvtool_empty", nil, nil)
	if !strings.Contains(got, "def mlvtool_empty():\n    pass\n") {
		t.Errorf("empty body must contain a pass placeholder:\n%s", got)
	}
}

func TestScript_StatementlessCellsGetPass(t *testing.T) {
	tests := []struct {
		name  string
		cells []types.Cell
	}{
		{
			name:  "comment-only cell",
			cells: []types.Cell{{Index: 1, Source: "# just a note\n"}},
		},
		{
			name:  "blank cell",
			cells: []types.Cell{{Index: 1, Source: "\n"}},
		},
		{
			name: "comment and blank cells",
			cells: []types.Cell{
				{Index: 1, Source: "# setup notes\n"},
				{Index: 2, Source: "   \n\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Script("mlvtool_x", nil, tt.cells)
			if !strings.Contains(got, "\n    pass\n") {
				t.Errorf("statementless body must contain a pass placeholder:\n%s", got)
			}
		})
	}
}

func TestScript_CommentLinesArePreservedAlongsidePass(t *testing.T) {
	got := Script("mlvtool_x", nil, []types.Cell{{Index: 1, Source: "# just a note\n"}})
	if !strings.Contains(got, "    # just a note\n") {
		t.Errorf("comment line must survive into the body:\n%s", got)
	}
	if !strings.Contains(got, "    pass\n") {
		t.Errorf("comment-only body must still contain a statement:\n%s", got)
	}
}

func TestScript_NoPassWhenAStatementExists(t *testing.T) {
	got := Script("mlvtool_x", nil, []types.Cell{{Index: 1, Source: "# note\nx = 1\n"}})
	if strings.Contains(got, "pass") {
		t.Errorf("a body with statements must not gain a placeholder:\n%s", got)
	}
}

func TestScript_BlankLinesInsideCellsStayBlank(t *testing.T) {
	cells := []types.Cell{{Index: 1, Source: "a = 1\n\nb = 2\n"}}
	got := Script("mlvtool_x", nil, cells)
	if !strings.Contains(got, "    a = 1\n\n    b = 2\n") {
		t.Errorf("internal blank line must not gain indentation:\n%s", got)
	}
}

func TestScript_Deterministic(t *testing.T) {
	spec := &types.ParameterSpec{
		Docstring:  "\"\"\"\n:param str a:\n\"\"\"",
		Parameters: []types.ParameterDeclaration{{Name: "a", Type: "str"}},
	}
	cells := []types.Cell{{Index: 1, Source: "use(a)\n"}}

	first := Script("mlvtool_x", spec, cells)
	second := Script("mlvtool_x", spec, cells)
	if first != second {
		t.Error("generation must be byte-identical across runs")
	}
}
