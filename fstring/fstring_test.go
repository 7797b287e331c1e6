package fstring

import (
	"errors"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrite-lang/pyrite/ast"
	mscanner "modernc.org/scanner"
)

// testExprParser stands in for the grammar parser: integers become
// Constant, everything else becomes a Name of the trimmed text.
func testExprParser(text string) (ast.Expr, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, errors.New("empty expression")
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return &ast.Constant{Value: ast.Int(i)}, nil
	}
	return &ast.Name{Id: t}, nil
}

func testParser() *Parser {
	return &Parser{ParseExpr: testExprParser}
}

func formatted(raw string) Literal {
	return Literal{Prefix: "f", Quote: "'", Raw: raw}
}

func TestParsePlainLiteral(t *testing.T) {
	expr, err := testParser().Parse(Literal{Prefix: "", Quote: "'", Raw: "hello {not a field}"})
	require.NoError(t, err)
	c, ok := expr.(*ast.Constant)
	require.True(t, ok, "plain literal should yield Constant, got %T", expr)
	assert.Equal(t, ast.Str("hello {not a field}"), c.Value)
}

func TestParseEmptyFormatted(t *testing.T) {
	expr, err := testParser().Parse(formatted(""))
	require.NoError(t, err)
	js, ok := expr.(*ast.JoinedStr)
	require.True(t, ok, "formatted literal should yield JoinedStr, got %T", expr)
	assert.Empty(t, js.Values)
}

func TestParseFormattedWithoutFields(t *testing.T) {
	expr, err := testParser().Parse(formatted("this is a test"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 1)
	c := js.Values[0].(*ast.Constant)
	assert.Equal(t, ast.Str("this is a test"), c.Value)
}

func TestParseSingleField(t *testing.T) {
	expr, err := testParser().Parse(formatted("this is a test {1}"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 2)

	c := js.Values[0].(*ast.Constant)
	assert.Equal(t, ast.Str("this is a test "), c.Value)

	fv := js.Values[1].(*ast.FormattedValue)
	assert.Equal(t, ast.Int(1), fv.Value.(*ast.Constant).Value)
	assert.Equal(t, byte(0), fv.Conversion)
	assert.Nil(t, fv.FormatSpec)
}

func TestParseConversionAndSpec(t *testing.T) {
	expr, err := testParser().Parse(formatted("this is a test {1!s:2}"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 2)

	fv := js.Values[1].(*ast.FormattedValue)
	assert.Equal(t, ast.Int(1), fv.Value.(*ast.Constant).Value)
	assert.Equal(t, byte('s'), fv.Conversion)
	require.NotNil(t, fv.FormatSpec)
	require.Len(t, fv.FormatSpec.Values, 1)
	assert.Equal(t, ast.Str("2"), fv.FormatSpec.Values[0].(*ast.Constant).Value)
}

func TestParseBraceEscapes(t *testing.T) {
	expr, err := testParser().Parse(formatted("test }}"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 1)
	assert.Equal(t, ast.Str("test }"), js.Values[0].(*ast.Constant).Value)

	expr, err = testParser().Parse(formatted("test {{"))
	require.NoError(t, err)
	js = expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 1)
	assert.Equal(t, ast.Str("test {"), js.Values[0].(*ast.Constant).Value)

	expr, err = testParser().Parse(formatted("{{x}} and {x}"))
	require.NoError(t, err)
	js = expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 2)
	assert.Equal(t, ast.Str("{x} and "), js.Values[0].(*ast.Constant).Value)
	assert.Equal(t, "x", js.Values[1].(*ast.FormattedValue).Value.(*ast.Name).Id)
}

func TestParseInterleavedFragments(t *testing.T) {
	expr, err := testParser().Parse(formatted("a{x}b{y}c"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 5)
	assert.Equal(t, ast.Str("a"), js.Values[0].(*ast.Constant).Value)
	assert.Equal(t, "x", js.Values[1].(*ast.FormattedValue).Value.(*ast.Name).Id)
	assert.Equal(t, ast.Str("b"), js.Values[2].(*ast.Constant).Value)
	assert.Equal(t, "y", js.Values[3].(*ast.FormattedValue).Value.(*ast.Name).Id)
	assert.Equal(t, ast.Str("c"), js.Values[4].(*ast.Constant).Value)
}

func TestParseNestedSpecFields(t *testing.T) {
	expr, err := testParser().Parse(formatted("{value:{width}.{precision}}"))
	require.NoError(t, err)
	js := expr.(*ast.JoinedStr)
	require.Len(t, js.Values, 1)

	fv := js.Values[0].(*ast.FormattedValue)
	assert.Equal(t, "value", fv.Value.(*ast.Name).Id)
	require.NotNil(t, fv.FormatSpec)
	require.Len(t, fv.FormatSpec.Values, 3)

	width := fv.FormatSpec.Values[0].(*ast.FormattedValue)
	assert.Equal(t, "width", width.Value.(*ast.Name).Id)
	dot := fv.FormatSpec.Values[1].(*ast.Constant)
	assert.Equal(t, ast.Str("."), dot.Value)
	precision := fv.FormatSpec.Values[2].(*ast.FormattedValue)
	assert.Equal(t, "precision", precision.Value.(*ast.Name).Id)
}

func TestParseEmptySpec(t *testing.T) {
	expr, err := testParser().Parse(formatted("{x:}"))
	require.NoError(t, err)
	fv := expr.(*ast.JoinedStr).Values[0].(*ast.FormattedValue)
	require.NotNil(t, fv.FormatSpec)
	assert.Empty(t, fv.FormatSpec.Values)
}

func TestParseShieldedSplitPoints(t *testing.T) {
	// ':' inside brackets is not a spec separator.
	expr, err := testParser().Parse(formatted("{a[1:2]}"))
	require.NoError(t, err)
	fv := expr.(*ast.JoinedStr).Values[0].(*ast.FormattedValue)
	assert.Equal(t, "a[1:2]", fv.Value.(*ast.Name).Id)
	assert.Nil(t, fv.FormatSpec)

	// '}' and ':' inside a nested string literal are not terminators.
	expr, err = testParser().Parse(formatted(`{d['}:']}`))
	require.NoError(t, err)
	fv = expr.(*ast.JoinedStr).Values[0].(*ast.FormattedValue)
	assert.Equal(t, `d['}:']`, fv.Value.(*ast.Name).Id)

	// ':' after brackets still splits the spec.
	expr, err = testParser().Parse(formatted("{a[1]:x}"))
	require.NoError(t, err)
	fv = expr.(*ast.JoinedStr).Values[0].(*ast.FormattedValue)
	assert.Equal(t, "a[1]", fv.Value.(*ast.Name).Id)
	require.NotNil(t, fv.FormatSpec)
	require.Len(t, fv.FormatSpec.Values, 1)
	assert.Equal(t, ast.Str("x"), fv.FormatSpec.Values[0].(*ast.Constant).Value)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"unterminated field", "hello {x", ErrUnterminatedField},
		{"unterminated nested", "{x:{y}", ErrUnterminatedField},
		{"stray closing brace", "oops } here", ErrUnmatchedBrace},
		{"leading closing brace", "}", ErrUnmatchedBrace},
		{"multi-char conversion", "{x!rr}", ErrInvalidConversion},
		{"unknown conversion", "{x!q}", ErrInvalidConversion},
		{"missing conversion", "{x!}", ErrInvalidConversion},
		{"missing conversion before spec", "{x!:d}", ErrInvalidConversion},
		{"bang inside spec text", "{x:%H!M}", ErrInvalidConversion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testParser().Parse(formatted(tc.raw))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseConversionVariants(t *testing.T) {
	for _, conv := range []byte{'s', 'r', 'a'} {
		expr, err := testParser().Parse(formatted("{x!" + string(conv) + "}"))
		require.NoError(t, err)
		fv := expr.(*ast.JoinedStr).Values[0].(*ast.FormattedValue)
		assert.Equal(t, conv, fv.Conversion)
		assert.Nil(t, fv.FormatSpec)
	}
}

func TestParseExprErrorPropagates(t *testing.T) {
	wantErr := errors.New("bad expression")
	p := &Parser{ParseExpr: func(string) (ast.Expr, error) { return nil, wantErr }}
	_, err := p.Parse(formatted("{x}"))
	require.ErrorIs(t, err, wantErr)
}

func TestParseExprErrorListUnwrapsFirst(t *testing.T) {
	var list mscanner.ErrList
	list.AddErr(token.Position{Filename: "x.py", Line: 1, Column: 2}, "first failure")
	list.AddErr(token.Position{Filename: "x.py", Line: 1, Column: 5}, "second failure")

	p := &Parser{ParseExpr: func(string) (ast.Expr, error) { return nil, list }}
	_, err := p.Parse(formatted("{x}"))
	require.Error(t, err)
	assert.EqualError(t, err, "x.py:1:2: first failure")
	assert.NotContains(t, err.Error(), "second failure")
}

func TestParseWithoutExprParser(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse(formatted("{x}"))
	require.ErrorIs(t, err, ErrNoExprParser)

	// No replacement fields, no parser needed.
	_, err = p.Parse(formatted("plain"))
	require.NoError(t, err)
}

func TestParseNestingTooDeep(t *testing.T) {
	p := &Parser{ParseExpr: testExprParser, MaxDepth: 2}
	_, err := p.Parse(formatted("{a:{b:{c:{d}}}}"))
	require.ErrorIs(t, err, ErrNestingTooDeep)

	p.MaxDepth = 10
	_, err = p.Parse(formatted("{a:{b:{c:{d}}}}"))
	require.NoError(t, err)
}

func TestParseDeterministic(t *testing.T) {
	lit := formatted("x={x!r:>{width}} y={y}")
	first, err := testParser().Parse(lit)
	require.NoError(t, err)
	second, err := testParser().Parse(lit)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, ast.Dump(first), ast.Dump(second))
}

func TestFormattedPrefixes(t *testing.T) {
	assert.True(t, Literal{Prefix: "f"}.Formatted())
	assert.True(t, Literal{Prefix: "F"}.Formatted())
	assert.True(t, Literal{Prefix: "rf"}.Formatted())
	assert.False(t, Literal{Prefix: ""}.Formatted())
	assert.False(t, Literal{Prefix: "rb"}.Formatted())
}
