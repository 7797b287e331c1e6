// Package fstring parses raw string-literal text into its final AST form.
// Plain literals become a single Constant; formatted ("f") literals become
// a JoinedStr holding literal and replacement-field fragments in source
// order. Format specs may themselves contain replacement fields, so the
// same scan runs recursively over them.
//
// The embedded expressions inside replacement fields belong to the full
// expression grammar; the parser for that grammar is injected as an
// ExprFunc rather than owned here.
package fstring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pyrite-lang/pyrite/ast"
	"github.com/pyrite-lang/pyrite/scanner"
	mscanner "modernc.org/scanner"
)

// DefaultMaxDepth bounds the nesting of replacement fields inside format
// specs. Nesting beyond the limit fails with ErrNestingTooDeep instead of
// exhausting the call stack.
const DefaultMaxDepth = 100

// Errors reported by the literal scan. Failures from the injected
// expression parser propagate unchanged.
var (
	// ErrUnterminatedField is returned for an opening '{' with no
	// matching '}' before the end of the literal.
	ErrUnterminatedField = errors.New("unterminated replacement field: missing closing '}'")

	// ErrUnmatchedBrace is returned for a stray unescaped '}' outside a
	// replacement field.
	ErrUnmatchedBrace = errors.New("single '}' is not allowed outside a replacement field")

	// ErrInvalidConversion is returned when the text after '!' is not
	// exactly one of 's', 'r' or 'a'.
	ErrInvalidConversion = errors.New("invalid conversion: expected 's', 'r' or 'a' after '!'")

	// ErrNestingTooDeep is returned when format-spec nesting exceeds the
	// configured depth limit.
	ErrNestingTooDeep = errors.New("replacement fields nested too deeply")

	// ErrNoExprParser is returned when a replacement field is found but
	// no expression parser was injected.
	ErrNoExprParser = errors.New("no expression parser configured")
)

// Literal is a raw string-literal token as produced by the lexer: the
// prefix letters, the quote style (informational) and the text between
// the quotes.
type Literal struct {
	Prefix string
	Quote  string
	Raw    string
}

// Formatted reports whether the literal carries the f prefix.
func (l Literal) Formatted() bool {
	return strings.ContainsAny(l.Prefix, "fF")
}

// ExprFunc parses embedded-expression text into an AST expression. It is
// supplied by the expression grammar parser that produced the enclosing
// tree.
type ExprFunc func(text string) (ast.Expr, error)

// Parser turns raw literals into AST expressions. The zero value needs a
// ParseExpr before it can resolve formatted literals with replacement
// fields; MaxDepth falls back to DefaultMaxDepth when zero.
type Parser struct {
	ParseExpr ExprFunc
	MaxDepth  int
}

// Parse resolves a raw literal. Non-formatted literals yield their raw
// content as a Constant, unchanged. Formatted literals always yield a
// JoinedStr, even when empty or free of replacement fields.
func (p *Parser) Parse(lit Literal) (ast.Expr, error) {
	if !lit.Formatted() {
		return &ast.Constant{Value: ast.Str(lit.Raw)}, nil
	}
	frags, err := p.scan(lit.Raw, 0)
	if err != nil {
		return nil, err
	}
	return &ast.JoinedStr{Values: frags}, nil
}

// scan performs the single left-to-right pass over literal text. The same
// function runs on the top-level literal and, one depth level down, on
// every format-spec sub-text, so escaping and nesting rules are identical
// in both places.
func (p *Parser) scan(src string, depth int) ([]ast.Expr, error) {
	if depth > p.maxDepth() {
		return nil, ErrNestingTooDeep
	}

	frags := []ast.Expr{}
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			frags = append(frags, &ast.Constant{Value: ast.Str(buf.String())})
			buf.Reset()
		}
	}

	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == '{' && i+1 < len(src) && src[i+1] == '{':
			buf.WriteByte('{')
			i += 2

		case ch == '}' && i+1 < len(src) && src[i+1] == '}':
			buf.WriteByte('}')
			i += 2

		case ch == '}':
			return nil, ErrUnmatchedBrace

		case ch == '{':
			flush()
			end := scanner.FindFieldEnd(src, i+1)
			if end < 0 {
				return nil, ErrUnterminatedField
			}
			fv, err := p.parseField(src[i+1:end], depth)
			if err != nil {
				return nil, err
			}
			frags = append(frags, fv)
			i = end + 1

		default:
			buf.WriteByte(ch)
			i++
		}
	}
	flush()
	return frags, nil
}

// parseField splits one replacement field's span (the text between its
// braces) into expression text, an optional conversion and an optional
// format spec, then assembles the FormattedValue.
//
// The conversion split runs first: any top-level '!' marks the
// conversion, even when it comes after a ':'. Spec text therefore cannot
// carry a bare top-level '!'; a field like {x:%H!M} fails with
// ErrInvalidConversion.
func (p *Parser) parseField(field string, depth int) (*ast.FormattedValue, error) {
	exprText := field
	var conv byte
	var specText string
	hasSpec := false

	if bang := scanner.FindTopLevel(field, func(ch byte) bool { return ch == '!' }); bang >= 0 {
		exprText = field[:bang]
		rest := field[bang+1:]
		convText := rest
		if colon := scanner.FindTopLevel(rest, func(ch byte) bool { return ch == ':' }); colon >= 0 {
			convText = rest[:colon]
			specText = rest[colon+1:]
			hasSpec = true
		}
		if len(convText) != 1 || !isConversion(convText[0]) {
			return nil, ErrInvalidConversion
		}
		conv = convText[0]
	} else if colon := scanner.FindTopLevel(field, func(ch byte) bool { return ch == ':' }); colon >= 0 {
		exprText = field[:colon]
		specText = field[colon+1:]
		hasSpec = true
	}

	if p.ParseExpr == nil {
		return nil, ErrNoExprParser
	}
	expr, err := p.ParseExpr(exprText)
	if err != nil {
		return nil, firstExprError(err)
	}

	var spec *ast.JoinedStr
	if hasSpec {
		specFrags, err := p.scan(specText, depth+1)
		if err != nil {
			return nil, err
		}
		spec = &ast.JoinedStr{Values: specFrags}
	}

	return &ast.FormattedValue{Value: expr, Conversion: conv, FormatSpec: spec}, nil
}

func (p *Parser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return DefaultMaxDepth
}

func isConversion(ch byte) bool {
	return ch == 's' || ch == 'r' || ch == 'a'
}

// firstExprError extracts the first error from a parser error list.
func firstExprError(err error) error {
	if el, ok := err.(mscanner.ErrList); ok && len(el) > 0 {
		return fmt.Errorf("%s", el[0])
	}
	return err
}
