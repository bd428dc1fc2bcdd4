// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Conf is the on-disk project configuration (.mlvtool.yaml at the
// repository root). It is resolved entirely by the CLI layer; the
// conversion pipeline only ever sees the values derived from it.
type Conf struct {
	// IgnoreKeys are literal substrings marking cells to exclude from
	// generated scripts. A present conf always yields a configured
	// FilterPolicy, even when this list is empty.
	IgnoreKeys []string `yaml:"ignore_keys"`

	Path PathConf `yaml:"path"`
}

// PathConf holds the output locations derived from the conf.
type PathConf struct {
	// ScriptDir is the directory, relative to the conf file, where
	// generated scripts are written when no explicit output is given.
	ScriptDir string `yaml:"script_dir"`
}

// Validate checks the conf for the fields the pipeline relies on.
func (c *Conf) Validate() error {
	return validation.ValidateStruct(&c.Path,
		validation.Field(&c.Path.ScriptDir, validation.Required),
	)
}

// FilterPolicy returns the configured filter policy carried by the conf.
func (c *Conf) FilterPolicy() FilterPolicy {
	return NewFilterPolicy(c.IgnoreKeys)
}
