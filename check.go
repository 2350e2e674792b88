// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"maps"
	"slices"
	"strings"
)

// CheckError is an aggregated report of an unsatisfied requirement.
//
// Every list is sorted and duplicate-free.
type CheckError struct {
	// MissingFiles are leaf paths that do not exist.
	MissingFiles []string `json:"missing_files,omitempty" yaml:"missing_files,omitempty"`
	// PathErrors are "path (cause)" entries for leaves whose probe failed.
	PathErrors []string `json:"path_errors,omitempty" yaml:"path_errors,omitempty"`
	// UnsatisfiedDisjunctions are rendered OR groups with no satisfied branch.
	UnsatisfiedDisjunctions []string `json:"unsatisfied_disjunctions,omitempty" yaml:"unsatisfied_disjunctions,omitempty"`
}

// Error implements error.
func (e *CheckError) Error() string {
	return "required input files were missing or incomplete (" + strings.Join(e.Sections(), "; ") + ")"
}

// Sections returns non-empty report sections in display order.
func (e *CheckError) Sections() []string {
	sections := make([]string, 0, 3)
	if len(e.MissingFiles) > 0 {
		sections = append(sections, "missing files: "+strings.Join(e.MissingFiles, ", "))
	}

	if len(e.PathErrors) > 0 {
		sections = append(sections, "path check errors: "+strings.Join(e.PathErrors, ", "))
	}

	if len(e.UnsatisfiedDisjunctions) > 0 {
		sections = append(sections, "unsatisfied disjunction(s): "+strings.Join(e.UnsatisfiedDisjunctions, ", "))
	}

	return sections
}

// Check validates the requirement against the local filesystem.
//
// It returns nil when satisfied and *CheckError otherwise.
func (r Requirement) Check() error {
	return r.CheckWith(OSProbe{})
}

// CheckWith validates the requirement using probe; nil probe means OSProbe.
//
// AND groups evaluate every child so the report lists all failures.
// OR groups stop at the first satisfied child in insertion order; when no
// child is satisfied the diagnostics of every branch are reported together
// with the group itself.
func (r Requirement) CheckWith(probe Probe) error {
	if r.kind == KindInvalid {
		return ErrInvalidRequirement
	}

	if probe == nil {
		probe = OSProbe{}
	}

	ctx := newCheckContext()
	if r.evaluate(probe, ctx) {
		return nil
	}

	return ctx.report()
}

// evaluate walks one node and records diagnostics into ctx.
func (r Requirement) evaluate(probe Probe, ctx *checkContext) bool {
	switch r.kind {
	case KindFile:
		exists, err := probe.Exists(r.path)
		if err != nil {
			ctx.pathErrors[r.path+" ("+probeCause(err)+")"] = struct{}{}
			return false
		}

		if !exists {
			ctx.missingFiles[r.path] = struct{}{}
			return false
		}

		return true

	case KindAll:
		ok := true
		for i := range r.children {
			if !r.children[i].evaluate(probe, ctx) {
				ok = false
			}
		}

		return ok

	case KindAny:
		branches := make([]*checkContext, 0, len(r.children))
		for i := range r.children {
			branch := newCheckContext()
			if r.children[i].evaluate(probe, branch) {
				return true
			}

			branches = append(branches, branch)
		}

		for _, branch := range branches {
			ctx.merge(branch)
		}

		ctx.unsatisfiedDisjunctions[r.String()] = struct{}{}
		return false

	default:
		return false
	}
}

// checkContext accumulates diagnostics of one evaluation.
type checkContext struct {
	missingFiles            map[string]struct{}
	pathErrors              map[string]struct{}
	unsatisfiedDisjunctions map[string]struct{}
}

// newCheckContext creates empty diagnostics accumulator.
func newCheckContext() *checkContext {
	return &checkContext{
		missingFiles:            make(map[string]struct{}),
		pathErrors:              make(map[string]struct{}),
		unsatisfiedDisjunctions: make(map[string]struct{}),
	}
}

// merge unions other diagnostics into ctx.
func (ctx *checkContext) merge(other *checkContext) {
	maps.Copy(ctx.missingFiles, other.missingFiles)
	maps.Copy(ctx.pathErrors, other.pathErrors)
	maps.Copy(ctx.unsatisfiedDisjunctions, other.unsatisfiedDisjunctions)
}

// report converts accumulated diagnostics into sorted CheckError.
func (ctx *checkContext) report() *CheckError {
	return &CheckError{
		MissingFiles:            sortedKeys(ctx.missingFiles),
		PathErrors:              sortedKeys(ctx.pathErrors),
		UnsatisfiedDisjunctions: sortedKeys(ctx.unsatisfiedDisjunctions),
	}
}

// sortedKeys returns set members in ascending order, nil for empty set.
func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}

	return slices.Sorted(maps.Keys(set))
}
