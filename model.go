// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"slices"
	"strconv"
	"strings"
)

// Kind is the variant tag of one requirement node.
type Kind uint8

const (
	// KindInvalid is unset/invalid node placeholder.
	KindInvalid Kind = iota
	// KindFile is a leaf naming one path that must exist.
	KindFile
	// KindAll is a conjunction: every child must be satisfied.
	KindAll
	// KindAny is a disjunction: at least one child must be satisfied.
	KindAny
)

// String returns the group operator for KindAll/KindAny and the kind name otherwise.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "FILE"
	case KindAll:
		return "AND"
	case KindAny:
		return "OR"
	default:
		return "INVALID"
	}
}

// Requirement is an immutable boolean file existence expression.
//
// Values are produced by Builder, ParseRequirement or the file loaders.
// The zero value is invalid.
type Requirement struct {
	// path is set for KindFile leaves only.
	path string
	// children keeps insertion order for KindAll/KindAny nodes.
	children []Requirement
	// kind is the node variant.
	kind Kind
}

// Kind returns node variant.
func (r Requirement) Kind() Kind {
	return r.kind
}

// Path returns leaf path, empty for group nodes.
func (r Requirement) Path() string {
	return r.path
}

// Children returns a copy of group children in insertion order.
func (r Requirement) Children() []Requirement {
	return slices.Clone(r.children)
}

// Files returns every leaf path in depth-first insertion order.
func (r Requirement) Files() []string {
	var out []string
	r.appendFiles(&out)
	return out
}

// String renders canonical expression form.
//
// A leaf renders as its path, groups render as
// "(" + children joined by " AND " / " OR " + ")".
func (r Requirement) String() string {
	var sb strings.Builder
	r.render(&sb, false)
	return sb.String()
}

// Expression renders like String but quotes paths that would not parse back
// as bare words, so ParseRequirement(r.Expression()) rebuilds an equivalent
// tree. A one-child OR group renders like a one-child AND group and parses
// back as AND.
func (r Requirement) Expression() string {
	var sb strings.Builder
	r.render(&sb, true)
	return sb.String()
}

// render writes node rendering into sb.
func (r Requirement) render(sb *strings.Builder, quote bool) {
	switch r.kind {
	case KindFile:
		if quote && needsQuote(r.path) {
			sb.WriteString(strconv.Quote(r.path))
			return
		}

		sb.WriteString(r.path)
	case KindAll, KindAny:
		sep := " " + r.kind.String() + " "
		sb.WriteByte('(')
		for i := range r.children {
			if i > 0 {
				sb.WriteString(sep)
			}

			r.children[i].render(sb, quote)
		}

		sb.WriteByte(')')
	}
}

// appendFiles collects leaf paths into out.
func (r Requirement) appendFiles(out *[]string) {
	if r.kind == KindFile {
		*out = append(*out, r.path)
		return
	}

	for i := range r.children {
		r.children[i].appendFiles(out)
	}
}

// needsQuote reports whether path cannot be written as a bare expression word.
func needsQuote(path string) bool {
	if path == "" || path == "AND" || path == "OR" || strings.HasPrefix(path, "#") {
		return true
	}

	return strings.ContainsFunc(path, func(r rune) bool {
		return r == '(' || r == ')' || r == '"' || r == '`' || isSpace(r)
	})
}

// isSpace reports whether r separates expression tokens.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
