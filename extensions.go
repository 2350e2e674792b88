// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import "strings"

// RequireExtensions adds "base.ext" file terms to this group in input order.
//
// Accepted extension forms:
//   - "ssi"
//   - ".ssi"
//   - "*.ssi"
//
// Empty values are skipped. Insertion stops at the first failing term;
// terms added before it stay in the group.
func (g *Group) RequireExtensions(base string, exts ...string) error {
	for _, ext := range exts {
		ext = normalizeExtension(ext)
		if ext == "" {
			continue
		}

		if err := g.RequireFile(WithExtension(base, ext)); err != nil {
			return err
		}
	}

	return nil
}

// WithExtension appends extension to base path with one separating dot.
//
// Unlike path replacement helpers it never strips an existing extension,
// so WithExtension("idx", "ssi.mphf") is "idx.ssi.mphf".
func WithExtension(base string, ext string) string {
	ext = normalizeExtension(ext)
	if ext == "" {
		return base
	}

	return strings.TrimSuffix(base, ".") + "." + ext
}

// normalizeExtension trims whitespace, "*." and leading dots.
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, "*.")
	return strings.TrimLeft(ext, ".")
}
