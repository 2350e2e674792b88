// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"errors"
	"fmt"
)

// Sentinel errors for filereq operations.
var (
	// ErrDuplicateFile indicates a file term inserted more than once anywhere in the tree.
	ErrDuplicateFile = errors.New("duplicate file term")
	// ErrEmptyGroup indicates an AND/OR group closed with zero children.
	ErrEmptyGroup = errors.New("empty group")
	// ErrGroupClosed indicates use of a nested group handle after its callback returned.
	ErrGroupClosed = errors.New("group is closed")
	// ErrInvalidRequirement indicates a zero-value or otherwise malformed requirement.
	ErrInvalidRequirement = errors.New("invalid requirement")
	// ErrInvalidExpression indicates malformed requirement expression text.
	ErrInvalidExpression = errors.New("invalid requirement expression")
	// ErrInvalidRequirementFile indicates malformed requirement file content.
	ErrInvalidRequirementFile = errors.New("invalid requirement file")
	// ErrPathOutsideRoot indicates path traversal or a resolved path outside probe root.
	ErrPathOutsideRoot = errors.New("path is outside probe root")
)

// DuplicateFileError reports a file term that was already present in the tree.
type DuplicateFileError struct {
	// Path is the offending path as passed by the caller.
	Path string
}

// Error implements error.
func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("file term `%s` was inserted more than once; each file can appear in at most one clause", e.Path)
}

// Unwrap returns ErrDuplicateFile.
func (e *DuplicateFileError) Unwrap() error {
	return ErrDuplicateFile
}

// EmptyGroupError reports an AND/OR group closed without children.
type EmptyGroupError struct {
	// Group is "AND" or "OR".
	Group string
}

// Error implements error.
func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("cannot create an empty `%s` group", e.Group)
}

// Unwrap returns ErrEmptyGroup.
func (e *EmptyGroupError) Unwrap() error {
	return ErrEmptyGroup
}
