// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadRequirementFile reads and parses a requirement file.
//
// Files with ".yaml" or ".yml" extension are parsed as YAML documents,
// anything else as expression text.
func LoadRequirementFile(path string) (Requirement, error) {
	return LoadRequirementFiles(path)
}

// LoadRequirementFiles reads requirement files into one root AND group.
//
// Root terms preserve file order and term order inside each file.
// File terms must be unique across all files.
func LoadRequirementFiles(paths ...string) (Requirement, error) {
	b := NewBuilder()
	for _, path := range paths {
		if err := loadRequirementFileInto(b.Group, path); err != nil {
			return Requirement{}, err
		}
	}

	return b.Build(), nil
}

// loadRequirementFileInto parses one file and inserts its root terms into g.
func loadRequirementFileInto(g *Group, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read requirement file: %w", err)
	}

	if isYAMLFile(path) {
		err = decodeYAMLInto(g, content)
	} else {
		err = parseExpressionInto(g, string(content))
	}

	if err != nil {
		return fmt.Errorf("parse requirement file %s: %w", path, err)
	}

	return nil
}

// isYAMLFile reports whether path has a YAML file extension.
func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
