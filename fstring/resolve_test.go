package fstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrite-lang/pyrite/ast"
)

func TestResolutionSplicesFormattedLiteral(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Name{Id: "greeting"}},
			Value:   &ast.RawLiteral{Prefix: "f", Quote: "'", Raw: "hello {name}"},
		},
	}}

	resolved, err := Resolution(testParser()).Transform(m)
	require.NoError(t, err)
	require.NotSame(t, m, resolved)

	// Input tree is untouched.
	_, stillRaw := m.Body[0].(*ast.Assign).Value.(*ast.RawLiteral)
	assert.True(t, stillRaw, "input module must not be mutated")

	js := resolved.Body[0].(*ast.Assign).Value.(*ast.JoinedStr)
	require.Len(t, js.Values, 2)
	assert.Equal(t, ast.Str("hello "), js.Values[0].(*ast.Constant).Value)
	assert.Equal(t, "name", js.Values[1].(*ast.FormattedValue).Value.(*ast.Name).Id)
}

func TestResolutionPlainLiteralBecomesConstant(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.Return{Value: &ast.RawLiteral{Prefix: "", Quote: "\"", Raw: "just text"}},
	}}

	resolved, err := Resolution(testParser()).Transform(m)
	require.NoError(t, err)
	c := resolved.Body[0].(*ast.Return).Value.(*ast.Constant)
	assert.Equal(t, ast.Str("just text"), c.Value)
}

func TestResolutionSharesUnchangedSubtrees(t *testing.T) {
	unchanged := &ast.ExprStmt{Value: &ast.Call{Func: &ast.Name{Id: "f"}}}
	m := &ast.Module{Body: []ast.Stmt{
		unchanged,
		&ast.ExprStmt{Value: &ast.RawLiteral{Prefix: "f", Quote: "'", Raw: "{x}"}},
	}}

	resolved, err := Resolution(testParser()).Transform(m)
	require.NoError(t, err)
	assert.Same(t, ast.Stmt(unchanged), resolved.Body[0], "literal-free statements should be shared")
}

func TestResolutionNoLiteralsReturnsSameModule(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.ExprStmt{Value: &ast.BinOp{Left: &ast.Name{Id: "a"}, Op: "+", Right: &ast.Name{Id: "b"}}},
	}}
	resolved, err := Resolution(testParser()).Transform(m)
	require.NoError(t, err)
	assert.Same(t, m, resolved)
}

func TestResolutionReachesNestedPositions(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.FunctionDef{
			Name: "f",
			Args: &ast.Arguments{Args: []*ast.Arg{
				{Name: "msg", Default: &ast.RawLiteral{Prefix: "f", Quote: "'", Raw: "n={n}"}},
			}},
			Body: []ast.Stmt{
				&ast.If{
					Test: &ast.Name{Id: "cond"},
					Body: []ast.Stmt{
						&ast.ExprStmt{Value: &ast.Call{
							Func: &ast.Name{Id: "log"},
							Args: []*ast.PosArg{{Value: &ast.RawLiteral{Prefix: "", Quote: "'", Raw: "plain"}}},
						}},
					},
				},
			},
		},
	}}

	resolved, err := Resolution(testParser()).Transform(m)
	require.NoError(t, err)

	fn := resolved.Body[0].(*ast.FunctionDef)
	def := fn.Args.Args[0].Default.(*ast.JoinedStr)
	require.Len(t, def.Values, 2)

	call := fn.Body[0].(*ast.If).Body[0].(*ast.ExprStmt).Value.(*ast.Call)
	assert.Equal(t, ast.Str("plain"), call.Args[0].Value.(*ast.Constant).Value)
}

func TestResolutionPropagatesScanErrors(t *testing.T) {
	m := &ast.Module{Body: []ast.Stmt{
		&ast.ExprStmt{Value: &ast.RawLiteral{Prefix: "f", Quote: "'", Raw: "{x"}},
	}}
	_, err := Resolution(testParser()).Transform(m)
	require.ErrorIs(t, err, ErrUnterminatedField)
}

func TestResolutionValidatesAfterChain(t *testing.T) {
	// The resolved tree feeds straight into validation.
	m := &ast.Module{Body: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Name{Id: "s"}},
			Value:   &ast.RawLiteral{Prefix: "f", Quote: "'", Raw: "{a}-{b}"},
		},
	}}
	resolved, err := ast.Chain(Resolution(testParser())).Transform(m)
	require.NoError(t, err)
	require.NoError(t, ast.Validate(resolved))
}
