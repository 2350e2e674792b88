// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootProbeOptions configures a RootProbe.
type RootProbeOptions struct {
	// EnableSymlinkEscapeCheck makes an existing file count only when its
	// link target also lies under the root; otherwise the probe fails with
	// ErrPathOutsideRoot. Off by default, which saves one EvalSymlinks per
	// existing file.
	EnableSymlinkEscapeCheck bool `json:"enable_symlink_escape_check,omitempty" yaml:"enable_symlink_escape_check,omitempty"`
}

// RootProbe checks paths relative to a root directory.
//
// Relative paths are resolved under root. Absolute paths are accepted only
// when they are inside root. Any path escaping root is reported as a probe
// error wrapping ErrPathOutsideRoot. RootProbe is safe for concurrent use.
type RootProbe struct {
	// root is absolute probe root directory path.
	root string
	// resolvedRoot is probe root with symlinks/junctions resolved when possible.
	resolvedRoot string
	// enableSymlinkEscapeCheck enables resolved-path root boundary validation.
	enableSymlinkEscapeCheck bool
}

// NewRootProbe creates a probe rooted at rootDir.
func NewRootProbe(rootDir string, opts RootProbeOptions) (*RootProbe, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("abs root: %w", err)
	}

	resolvedRoot := absRoot
	if opts.EnableSymlinkEscapeCheck {
		resolvedRoot, err = resolveRootDir(absRoot)
		if err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
	}

	return &RootProbe{
		root:                     absRoot,
		resolvedRoot:             resolvedRoot,
		enableSymlinkEscapeCheck: opts.EnableSymlinkEscapeCheck,
	}, nil
}

// Root returns absolute probe root directory.
func (p *RootProbe) Root() string {
	return p.root
}

// Exists reports whether path exists under probe root.
func (p *RootProbe) Exists(path string) (bool, error) {
	fullPath, err := p.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	exists, err := statResult(err)
	if err != nil || !exists || !p.enableSymlinkEscapeCheck {
		return exists, err
	}

	// Missing targets cannot escape; existing ones must resolve inside root.
	resolved, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return false, fmt.Errorf("resolve: %w", err)
	}

	if !insideRoot(p.resolvedRoot, resolved) {
		return false, ErrPathOutsideRoot
	}

	return true, nil
}

// resolve maps probe path to absolute filesystem path under root.
func (p *RootProbe) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		cleaned := filepath.Clean(path)
		if !insideRoot(p.root, cleaned) {
			return "", ErrPathOutsideRoot
		}

		return cleaned, nil
	}

	rel, err := cleanRelPath(path)
	if err != nil {
		return "", err
	}

	return filepath.Join(p.root, filepath.FromSlash(rel)), nil
}
