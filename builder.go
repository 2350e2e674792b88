// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import "path/filepath"

// Builder assembles a requirement expression.
//
// The root group is an implicit AND group. Every Group method is available
// on Builder directly. Builder is not safe for concurrent use. The zero
// Builder has no root group; create builders with NewBuilder.
type Builder struct {
	*Group
}

// Group is one AND/OR child list under construction.
//
// Nested groups share the seen-term set of the whole tree, so a path may
// appear at most once anywhere in the expression. A zero Group is a usable
// empty root.
type Group struct {
	// seen holds cleaned paths inserted anywhere in the tree.
	seen map[string]struct{}
	// terms are group children in insertion order.
	terms []Requirement
	// closed is set once the callback that received this group returned.
	closed bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{Group: newRootGroup()}
}

// Build returns the finished expression and resets the builder.
//
// The result is always an AND node wrapping root terms, even when there is
// only one term or none.
func (b *Builder) Build() Requirement {
	req := Requirement{kind: KindAll, children: b.terms}
	b.Group = newRootGroup()
	return req
}

// RequireFile adds a file term to this group.
//
// It fails with *DuplicateFileError when the path was already inserted
// anywhere in the tree; the group is left unchanged in that case.
func (g *Group) RequireFile(path string) error {
	if g.closed {
		return ErrGroupClosed
	}

	g.initSeen()
	key := termKey(path)
	if _, ok := g.seen[key]; ok {
		return &DuplicateFileError{Path: path}
	}

	g.seen[key] = struct{}{}
	g.terms = append(g.terms, Requirement{kind: KindFile, path: path})
	return nil
}

// RequireAll adds a nested AND group populated by fn.
//
// Errors returned by fn propagate unchanged and nothing is appended.
// A group left empty by fn fails with *EmptyGroupError{Group: "AND"}.
func (g *Group) RequireAll(fn func(*Group) error) error {
	return g.requireGroup(KindAll, fn)
}

// RequireAny adds a nested OR group populated by fn.
//
// Children are evaluated in insertion order and the first satisfied child
// wins. A group left empty by fn fails with *EmptyGroupError{Group: "OR"}.
func (g *Group) RequireAny(fn func(*Group) error) error {
	return g.requireGroup(KindAny, fn)
}

// requireGroup opens a nested group, runs fn and appends the closed node.
func (g *Group) requireGroup(kind Kind, fn func(*Group) error) error {
	if g.closed {
		return ErrGroupClosed
	}

	g.initSeen()
	child := &Group{seen: g.seen}
	err := runGroup(child, fn)
	child.closed = true
	if err != nil {
		return err
	}

	if len(child.terms) == 0 {
		return &EmptyGroupError{Group: kind.String()}
	}

	g.terms = append(g.terms, Requirement{kind: kind, children: child.terms})
	return nil
}

// runGroup invokes fn with child, treating nil fn as an empty population.
func runGroup(child *Group, fn func(*Group) error) error {
	if fn == nil {
		return nil
	}

	return fn(child)
}

// initSeen allocates the seen-term set of a zero Group.
func (g *Group) initSeen() {
	if g.seen == nil {
		g.seen = make(map[string]struct{})
	}
}

// newRootGroup creates an empty root group with a fresh seen-term set.
func newRootGroup() *Group {
	return &Group{seen: make(map[string]struct{})}
}

// termKey returns the uniqueness key for one path.
func termKey(path string) string {
	if path == "" {
		return ""
	}

	return filepath.Clean(path)
}
