// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conf discovers and loads the project configuration file. The
// search walks up from the working directory and stops at the repository
// root (the first directory containing .git) or the filesystem root.
// Discovery lives here, in the CLI layer; the conversion pipeline only
// receives the resolved filter policy and output directory.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mlvtool/pkg/types"
)

// FileName is the conf file looked up at the repository root.
const FileName = ".mlvtool.yaml"

// Project is a discovered configuration and the directory it was found
// in. Relative paths in the conf resolve against Root.
type Project struct {
	Conf types.Conf
	Root string
}

// ScriptDir returns the absolute default output directory for generated
// scripts.
func (p *Project) ScriptDir() string {
	return filepath.Join(p.Root, p.Conf.Path.ScriptDir)
}

// Resolve searches for a conf file starting at workingDir. It returns
// nil when no conf exists between workingDir and the repository root;
// a present but invalid conf is an error.
func Resolve(workingDir string) (*Project, error) {
	dir, err := filepath.Abs(workingDir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	for {
		confPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(confPath); err == nil {
			return Load(confPath)
		}

		// A .git entry marks the repository root; the search never
		// crosses it into enclosing repositories.
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Load reads and validates the conf file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading conf %s: %w", path, err)
	}

	var c types.Conf
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing conf %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid conf %s: %w", path, err)
	}

	return &Project{Conf: c, Root: filepath.Dir(path)}, nil
}
