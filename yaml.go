// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML requirement file keys.
const (
	yamlKeyFile       = "file"
	yamlKeyAll        = "all"
	yamlKeyAny        = "any"
	yamlKeyBase       = "base"
	yamlKeyExtensions = "extensions"
)

// ParseRequirementYAML parses a YAML requirement document.
//
// Node forms:
//   - "path" or {file: path}: one file term
//   - {all: [...]}: AND group
//   - {any: [...]}: OR group
//   - {base: b, extensions: [...]}: "b.ext" file terms inserted into the enclosing group
//
// A top-level sequence or {all: [...]} lists root terms; any other top-level
// node is a single root term. An empty document builds an empty root.
func ParseRequirementYAML(data []byte) (Requirement, error) {
	b := NewBuilder()
	if err := decodeYAMLInto(b.Group, data); err != nil {
		return Requirement{}, err
	}

	return b.Build(), nil
}

// MarshalYAML implements yaml.Marshaler.
//
// Output is accepted by ParseRequirementYAML and rebuilds the same tree.
func (r Requirement) MarshalYAML() (any, error) {
	switch r.kind {
	case KindFile:
		return r.path, nil
	case KindAll, KindAny:
		key := yamlKeyAll
		if r.kind == KindAny {
			key = yamlKeyAny
		}

		children := r.children
		if children == nil {
			children = []Requirement{}
		}

		return map[string][]Requirement{key: children}, nil
	default:
		return nil, ErrInvalidRequirement
	}
}

// decodeYAMLInto decodes a single YAML document and inserts root terms into g.
// A stream with more than one non-empty document is rejected.
func decodeYAMLInto(g *Group, data []byte) error {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%w: %w", ErrInvalidRequirementFile, err)
	}

	var extra yaml.Node
	err := dec.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidRequirementFile, err)
	case len(extra.Content) != 0:
		return yamlNodeError(extra.Content[0], "expected a single document")
	}

	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return decodeYAMLTerms(g, root)
	case yaml.MappingNode:
		if len(root.Content) == 2 && root.Content[0].Value == yamlKeyAll {
			return decodeYAMLTerms(g, root.Content[1])
		}
	}

	return decodeYAMLTerm(g, root)
}

// decodeYAMLTerms inserts every item of a sequence node into g.
func decodeYAMLTerms(g *Group, node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return yamlNodeError(node, "expected a list of terms")
	}

	for _, item := range node.Content {
		if err := decodeYAMLTerm(g, item); err != nil {
			return err
		}
	}

	return nil
}

// decodeYAMLTerm inserts one term node into g.
func decodeYAMLTerm(g *Group, node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		path, err := yamlString(node)
		if err != nil {
			return err
		}

		return yamlBuildError(node, g.RequireFile(path))

	case yaml.MappingNode:
		return decodeYAMLMapping(g, node)

	case yaml.AliasNode:
		return decodeYAMLTerm(g, node.Alias)

	default:
		return yamlNodeError(node, "expected a path or a mapping")
	}
}

// decodeYAMLMapping inserts file/all/any/base terms into g.
func decodeYAMLMapping(g *Group, node *yaml.Node) error {
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := fields[key]; ok {
			return yamlNodeError(node.Content[i], fmt.Sprintf("duplicate key %q", key))
		}

		fields[key] = node.Content[i+1]
	}

	if base, ok := fields[yamlKeyBase]; ok {
		exts, ok := fields[yamlKeyExtensions]
		if !ok || len(fields) != 2 {
			return yamlNodeError(node, "base requires exactly one extensions list")
		}

		return decodeYAMLExtensions(g, base, exts)
	}

	if len(fields) != 1 {
		return yamlNodeError(node, "expected exactly one of file, all, any")
	}

	for key, value := range fields {
		switch key {
		case yamlKeyFile:
			path, err := yamlString(value)
			if err != nil {
				return err
			}

			return yamlBuildError(value, g.RequireFile(path))

		case yamlKeyAll:
			return yamlBuildError(node, g.RequireAll(func(child *Group) error {
				return decodeYAMLTerms(child, value)
			}))

		case yamlKeyAny:
			return yamlBuildError(node, g.RequireAny(func(child *Group) error {
				return decodeYAMLTerms(child, value)
			}))

		default:
			return yamlNodeError(node, fmt.Sprintf("unknown key %q", key))
		}
	}

	return nil
}

// decodeYAMLExtensions inserts "base.ext" terms into g.
func decodeYAMLExtensions(g *Group, baseNode *yaml.Node, extsNode *yaml.Node) error {
	base, err := yamlString(baseNode)
	if err != nil {
		return err
	}

	if extsNode.Kind != yaml.SequenceNode {
		return yamlNodeError(extsNode, "extensions must be a list")
	}

	exts := make([]string, 0, len(extsNode.Content))
	for _, item := range extsNode.Content {
		ext, err := yamlString(item)
		if err != nil {
			return err
		}

		exts = append(exts, ext)
	}

	return yamlBuildError(baseNode, g.RequireExtensions(base, exts...))
}

// yamlString returns the value of a string scalar node.
// Numbers, booleans and nulls must be quoted to be used as paths.
func yamlString(node *yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	if node.Kind != yaml.ScalarNode {
		return "", yamlNodeError(node, "expected a path")
	}

	if tag := node.ShortTag(); tag != "!!str" {
		return "", yamlNodeError(node, fmt.Sprintf("expected a string path, got %s %q", tag, node.Value))
	}

	return node.Value, nil
}

// yamlNodeError builds invalid file error with node position.
func yamlNodeError(node *yaml.Node, msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidRequirementFile, node.Line, msg)
}

// yamlBuildError adds node position to builder errors once.
func yamlBuildError(node *yaml.Node, err error) error {
	if err == nil {
		return nil
	}

	var located *yamlLineError
	if errors.As(err, &located) || errors.Is(err, ErrInvalidRequirementFile) {
		return err
	}

	return &yamlLineError{line: node.Line, err: err}
}

// yamlLineError attaches a YAML line to a builder error.
type yamlLineError struct {
	err  error
	line int
}

// Error implements error.
func (e *yamlLineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.line, e.err)
}

// Unwrap returns wrapped error.
func (e *yamlLineError) Unwrap() error {
	return e.err
}
