package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyrite-lang/pyrite/ast"
)

// parseInspectExpr reads the small expression subset the fstr command
// needs for inspection output: integers, floats, quoted strings and
// dotted identifier paths. A front end embedding the fstring package
// injects its grammar parser here instead.
func parseInspectExpr(text string) (ast.Expr, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, fmt.Errorf("empty expression in replacement field")
	}

	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return &ast.Constant{Value: ast.Int(i)}, nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return &ast.Constant{Value: ast.Float(f)}, nil
	}
	if len(t) >= 2 && (t[0] == '\'' || t[0] == '"') && t[len(t)-1] == t[0] {
		return &ast.Constant{Value: ast.Str(t[1 : len(t)-1])}, nil
	}

	// Dotted identifier path: a.b.c becomes nested Attribute nodes.
	parts := strings.Split(t, ".")
	for _, part := range parts {
		if !isIdent(part) {
			return nil, fmt.Errorf("expression %q is beyond inspection; embed the grammar parser for full parsing", t)
		}
	}
	var expr ast.Expr = &ast.Name{Id: parts[0]}
	for _, part := range parts[1:] {
		expr = &ast.Attribute{Value: expr, Attr: part}
	}
	return expr, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
