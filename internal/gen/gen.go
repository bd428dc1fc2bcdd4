// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gen assembles the generated Python script: the synthesized
// entry identifier, the typed function signature, the re-emitted
// docstring, and the surviving cell bodies. It is pure text assembly;
// cell source is reproduced as-is, one indent level deeper.
package gen

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/mlvtool/pkg/types"
)

// namePrefix namespaces every synthesized identifier so the result is
// legal even for notebook names beginning with a digit.
const namePrefix = "mlvtool_"

const indent = "    "

// header opens every generated script.
const header = "#!/usr/bin/env python3\n# -*- coding: utf-8 -*-\n"

// pythonKeywords are the reserved words a synthesized identifier must
// not collide with.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// EntryName derives the entry function identifier from the notebook's
// file name: the extension is stripped, every run of characters that are
// not letters, digits, or underscores collapses to a single underscore,
// and the result is namespaced with the mlvtool_ prefix.
func EntryName(notebookPath string) (string, error) {
	base := filepath.Base(notebookPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := namePrefix + sanitize(stem)

	if err := validIdentifier(name); err != nil {
		return "", err
	}
	return name, nil
}

// DefaultScriptName returns the base name used for the output file when
// no explicit output path is given. It is the entry identifier plus the
// .py extension, so script name and function name always agree.
func DefaultScriptName(notebookPath string) (string, error) {
	name, err := EntryName(notebookPath)
	if err != nil {
		return "", err
	}
	return name + ".py", nil
}

// Script assembles the complete generated script. spec may be nil, in
// which case the entry function takes no arguments and has no docstring.
// cells are the surviving cells, already filtered and in notebook order.
func Script(entryName string, spec *types.ParameterSpec, cells []types.Cell) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("def " + entryName + "(" + signature(spec) + "):\n")

	hasDocstring := spec != nil && spec.Docstring != ""
	if hasDocstring {
		b.WriteString(indentBlock(spec.Docstring))
	}

	if len(cells) == 0 {
		// A body must always hold at least one statement.
		b.WriteString(indent + "pass\n")
		return b.String()
	}

	for i, c := range cells {
		if i > 0 || hasDocstring {
			b.WriteString("\n")
		}
		b.WriteString(indentBlock(c.Source))
	}

	// Surviving cells may be blank or comment-only; those lines are
	// preserved but contribute no statement, so the body still needs a
	// placeholder to stay parseable.
	if !hasStatement(cells) {
		b.WriteString("\n" + indent + "pass\n")
	}
	return b.String()
}

// hasStatement reports whether any cell holds at least one line that is
// neither blank nor a comment.
func hasStatement(cells []types.Cell) bool {
	for _, c := range cells {
		for _, line := range strings.Split(c.Source, "\n") {
			t := strings.TrimSpace(line)
			if t != "" && !strings.HasPrefix(t, "#") {
				return true
			}
		}
	}
	return false
}

// signature renders the parameter list: required positional arguments in
// declaration order, each annotated with its declared type verbatim,
// never with a default value.
func signature(spec *types.ParameterSpec) string {
	if spec == nil {
		return ""
	}
	parts := make([]string, len(spec.Parameters))
	for i, p := range spec.Parameters {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return strings.Join(parts, ", ")
}

// indentBlock shifts every non-blank line of text one indent level and
// guarantees a trailing newline. Blank lines stay blank so the cell text
// round-trips without trailing whitespace.
func indentBlock(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// sanitize collapses every run of non-identifier characters to a single
// underscore.
func sanitize(stem string) string {
	var b strings.Builder
	inRun := false
	for _, r := range stem {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteRune('_')
			inRun = true
		}
	}
	return b.String()
}

// validIdentifier checks name against the identifier grammar and the
// reserved-word table.
func validIdentifier(name string) error {
	if name == "" {
		return &types.InvalidIdentifierError{Name: name, Reason: "empty identifier"}
	}
	if pythonKeywords[name] {
		return &types.InvalidIdentifierError{Name: name, Reason: "reserved keyword"}
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return &types.InvalidIdentifierError{Name: name, Reason: fmt.Sprintf("illegal character %q", r)}
	}
	return nil
}
