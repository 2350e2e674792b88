// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Probe answers whether one path exists.
//
// Result states:
//   - (true, nil): path exists
//   - (false, nil): path does not exist
//   - (_, err): existence could not be determined
//
// Implementations used with concurrent checks must be safe for concurrent use.
type Probe interface {
	Exists(path string) (bool, error)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(path string) (bool, error)

// Exists calls f(path).
func (f ProbeFunc) Exists(path string) (bool, error) {
	return f(path)
}

// OSProbe checks paths on the local filesystem with os.Stat.
type OSProbe struct{}

// Exists reports whether path exists. Only fs.ErrNotExist maps to false;
// every other stat failure is returned as error.
func (OSProbe) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	return statResult(err)
}

// FSProbe checks paths inside an fs.FS.
type FSProbe struct {
	// FS is the probed filesystem.
	FS fs.FS
}

// Exists reports whether path exists in p.FS.
//
// Paths are slash-separated; leading "./" and "/" are trimmed.
func (p FSProbe) Exists(name string) (bool, error) {
	cleaned := fsName(name)
	if !fs.ValidPath(cleaned) {
		return false, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	_, err := fs.Stat(p.FS, cleaned)
	return statResult(err)
}

// statResult maps a stat error to probe result.
func statResult(err error) (bool, error) {
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// fsName converts probe path to fs.FS name form.
func fsName(name string) string {
	name = strings.ReplaceAll(name, `\`, `/`)
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "."
	}

	return path.Clean(name)
}

// probeCause renders probe error cause for diagnostics.
//
// *fs.PathError already names the operation and path, so only the
// underlying cause is kept.
func probeCause(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil {
		return pathErr.Err.Error()
	}

	return err.Error()
}
