// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter decides which notebook cells survive into the generated
// function body.
//
// Two mutually exclusive rules exist. When the caller configured ignore
// patterns, a cell is dropped iff any pattern occurs in its source as a
// literal substring. With no configured policy, a built-in heuristic
// drops "auto-display" cells instead: cells whose code reduces to a
// single bare identifier or attribute expression, the idiom notebooks
// use to print a value. Configured patterns fully replace the heuristic;
// they never merge with it.
package filter

import (
	"strings"
	"unicode"

	"github.com/pdiddy/mlvtool/pkg/types"
)

// Apply returns the cells surviving policy, original order preserved.
func Apply(cells []types.Cell, policy types.FilterPolicy) []types.Cell {
	var kept []types.Cell
	for _, c := range cells {
		if !dropped(c, policy) {
			kept = append(kept, c)
		}
	}
	return kept
}

func dropped(cell types.Cell, policy types.FilterPolicy) bool {
	if policy.Configured {
		for _, p := range policy.IgnorePatterns {
			if strings.Contains(cell.Source, p) {
				return true
			}
		}
		return false
	}
	return IsAutoDisplay(cell.Source)
}

// IsAutoDisplay reports whether source, after stripping leading
// comment-only lines, reduces to a single bare identifier or attribute
// expression. Such a cell relies on the notebook runtime to display its
// value and has no effect in a generated script.
func IsAutoDisplay(source string) bool {
	var code []string
	leading := true
	for _, line := range strings.Split(source, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if leading && strings.HasPrefix(t, "#") {
			continue
		}
		leading = false
		code = append(code, t)
	}
	return len(code) == 1 && isBareExpr(code[0])
}

// isBareExpr scans s as identifier ('.' identifier)*. Anything else — a
// call, index, operator, assignment, or literal — fails the scan, so
// strings that merely contain identifier-like text are never matched.
func isBareExpr(s string) bool {
	inSegment := false
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			inSegment = true
		case unicode.IsDigit(r):
			// Digits may continue a segment but not start one.
			if !inSegment {
				return false
			}
		case r == '.':
			if !inSegment {
				return false
			}
			inSegment = false
		default:
			return false
		}
	}
	return inSegment
}
