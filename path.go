// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// cleanRelPath cleans one probe path relative to the probe root.
//
// The path is taken literally: surrounding spaces are part of the file name.
// Result is slash-separated and never names the root itself or a parent of it.
func cleanRelPath(probePath string) (string, error) {
	if probePath == "" || filepath.IsAbs(probePath) {
		return "", ErrPathOutsideRoot
	}

	rel := filepath.ToSlash(probePath)
	if strings.HasPrefix(rel, "/") {
		return "", ErrPathOutsideRoot
	}

	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrPathOutsideRoot
	}

	return rel, nil
}

// resolveRootDir returns the probe root with links resolved. A root that does
// not exist yet keeps its absolute form so later probes report files missing.
func resolveRootDir(dir string) (string, error) {
	resolved, linkErr := filepath.EvalSymlinks(dir)
	if linkErr == nil {
		return resolved, nil
	}

	if !os.IsNotExist(linkErr) {
		return "", linkErr
	}

	return filepath.Abs(dir)
}

// insideRoot reports whether candidate names rootDir or a path below it.
func insideRoot(rootDir string, candidate string) bool {
	rel, err := filepath.Rel(rootDir, candidate)
	if err != nil {
		return false
	}

	parent := ".." + string(filepath.Separator)
	return rel != ".." && !strings.HasPrefix(rel, parent)
}
