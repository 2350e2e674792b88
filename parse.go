// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/filereq

package filereq

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseRequirement parses requirement expression text.
//
// Syntax:
//   - paths are bare words or Go-quoted strings
//   - "AND" / "OR" join terms, one operator kind per parenthesis level
//   - "(...)" opens a nested group, a single parenthesised term is an AND group
//   - lines starting with "#" are comments
//
// The top-level expression is the root AND group: an AND chain contributes
// its terms, an OR chain becomes one OR term. Canonical String/Expression
// output of a built requirement parses back to an equivalent tree.
func ParseRequirement(src string) (Requirement, error) {
	b := NewBuilder()
	if err := parseExpressionInto(b.Group, src); err != nil {
		return Requirement{}, err
	}

	return b.Build(), nil
}

// ParseRequirementReader parses requirement expression text from reader.
func ParseRequirementReader(r io.Reader) (Requirement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Requirement{}, fmt.Errorf("read expression: %w", err)
	}

	return ParseRequirement(string(data))
}

// parseExpressionInto parses src and inserts root terms into g.
func parseExpressionInto(g *Group, src string) error {
	tokens, err := lexExpression(src)
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		return nil
	}

	p := &exprParser{tokens: tokens}
	terms, op, err := p.parseChain()
	if err != nil {
		return err
	}

	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		return fmt.Errorf("%w: unexpected %s at offset %d", ErrInvalidExpression, tok, tok.offset)
	}

	// "(a AND b)" at top level is the rendering of the root group itself.
	if len(terms) == 1 && terms[0].kind == KindAll && terms[0].paren {
		terms = terms[0].kids
	}

	if op == KindAny {
		return emitExpr(g, exprNode{kind: KindAny, kids: terms})
	}

	for _, term := range terms {
		if err := emitExpr(g, term); err != nil {
			return err
		}
	}

	return nil
}

// exprNode is one parsed expression node before validation.
type exprNode struct {
	path   string
	kids   []exprNode
	offset int
	kind   Kind
	// paren reports whether node came from explicit parentheses.
	paren bool
}

// emitExpr inserts node into g through builder validation.
func emitExpr(g *Group, node exprNode) error {
	var err error
	switch node.kind {
	case KindFile:
		err = g.RequireFile(node.path)
	case KindAll, KindAny:
		fill := func(child *Group) error {
			for _, kid := range node.kids {
				if err := emitExpr(child, kid); err != nil {
					return err
				}
			}

			return nil
		}

		if node.kind == KindAll {
			err = g.RequireAll(fill)
		} else {
			err = g.RequireAny(fill)
		}
	default:
		return fmt.Errorf("%w: unsupported node at offset %d", ErrInvalidExpression, node.offset)
	}

	if err != nil {
		return annotateOffset(err, node.offset)
	}

	return nil
}

// annotateOffset prefixes err with expression offset once.
func annotateOffset(err error, offset int) error {
	if _, ok := err.(*offsetError); ok {
		return err
	}

	return &offsetError{offset: offset, err: err}
}

// offsetError attaches expression offset to a builder error.
type offsetError struct {
	err    error
	offset int
}

// Error implements error.
func (e *offsetError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.offset, e.err)
}

// Unwrap returns wrapped error.
func (e *offsetError) Unwrap() error {
	return e.err
}

// exprParser is a recursive-descent parser over lexed tokens.
type exprParser struct {
	tokens []exprToken
	pos    int
}

// parseChain parses "term { op term }" and returns terms with chain operator.
//
// Operator is KindInvalid for a single term.
func (p *exprParser) parseChain() ([]exprNode, Kind, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, KindInvalid, err
	}

	terms := []exprNode{first}
	op := KindInvalid
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		var next Kind
		switch tok.kind {
		case tokenAnd:
			next = KindAll
		case tokenOr:
			next = KindAny
		default:
			return terms, op, nil
		}

		if op != KindInvalid && op != next {
			return nil, KindInvalid, fmt.Errorf(
				"%w: mixed AND/OR at offset %d, use parentheses",
				ErrInvalidExpression, tok.offset,
			)
		}

		op = next
		p.pos++

		term, err := p.parseTerm()
		if err != nil {
			return nil, KindInvalid, err
		}

		terms = append(terms, term)
	}

	return terms, op, nil
}

// parseTerm parses one path or parenthesised group.
func (p *exprParser) parseTerm() (exprNode, error) {
	if p.pos >= len(p.tokens) {
		return exprNode{}, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}

	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenPath:
		p.pos++
		return exprNode{kind: KindFile, path: tok.value, offset: tok.offset}, nil

	case tokenOpen:
		p.pos++
		group := exprNode{kind: KindAll, offset: tok.offset, paren: true}
		if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokenClose {
			p.pos++
			return group, nil
		}

		terms, op, err := p.parseChain()
		if err != nil {
			return exprNode{}, err
		}

		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenClose {
			return exprNode{}, fmt.Errorf("%w: unclosed '(' at offset %d", ErrInvalidExpression, tok.offset)
		}

		p.pos++
		if op == KindAny {
			group.kind = KindAny
		}

		group.kids = terms
		return group, nil

	default:
		return exprNode{}, fmt.Errorf("%w: unexpected %s at offset %d", ErrInvalidExpression, tok, tok.offset)
	}
}

// tokenKind is lexical token type.
type tokenKind uint8

const (
	tokenPath tokenKind = iota + 1
	tokenOpen
	tokenClose
	tokenAnd
	tokenOr
)

// exprToken is one lexed token.
type exprToken struct {
	value  string
	offset int
	kind   tokenKind
}

// String renders token for error messages.
func (t exprToken) String() string {
	switch t.kind {
	case tokenOpen:
		return "'('"
	case tokenClose:
		return "')'"
	case tokenAnd:
		return "AND"
	case tokenOr:
		return "OR"
	default:
		return strconv.Quote(t.value)
	}
}

// lexExpression splits expression text into tokens.
func lexExpression(src string) ([]exprToken, error) {
	tokens := make([]exprToken, 0, 16)
	lineStart := true

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == '\n':
			lineStart = true
			i += size
			continue

		case isSpace(r):
			i += size
			continue

		case r == '#' && lineStart:
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				return tokens, nil
			}

			i += end
			continue
		}

		lineStart = false
		switch r {
		case '(':
			tokens = append(tokens, exprToken{kind: tokenOpen, offset: i})
			i++

		case ')':
			tokens = append(tokens, exprToken{kind: tokenClose, offset: i})
			i++

		case '"', '`':
			end, err := quotedEnd(src, i)
			if err != nil {
				return nil, err
			}

			value, err := strconv.Unquote(src[i:end])
			if err != nil {
				return nil, fmt.Errorf("%w: bad quoted path at offset %d: %v", ErrInvalidExpression, i, err)
			}

			tokens = append(tokens, exprToken{kind: tokenPath, value: value, offset: i})
			i = end

		default:
			end := i
			for end < len(src) {
				c, n := utf8.DecodeRuneInString(src[end:])
				if isSpace(c) || c == '(' || c == ')' {
					break
				}

				end += n
			}

			word := src[i:end]
			tok := exprToken{kind: tokenPath, value: word, offset: i}
			switch word {
			case "AND":
				tok.kind = tokenAnd
			case "OR":
				tok.kind = tokenOr
			}

			tokens = append(tokens, tok)
			i = end
		}
	}

	return tokens, nil
}

// quotedEnd returns index just past the closing quote of string starting at start.
func quotedEnd(src string, start int) (int, error) {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			return i + 1, nil
		}
	}

	return 0, fmt.Errorf("%w: unterminated quoted path at offset %d", ErrInvalidExpression, start)
}
