package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liagha/axo"
	"github.com/liagha/axo/parse"
	"github.com/liagha/axo/scan"
)

func parseSource(t *testing.T, src string) ([]parse.Element, *axo.Context) {
	t.Helper()
	ctx := axo.NewContext(nil)
	toks := scan.Scan([]byte(src), axo.RawLocation(0, len(src)), ctx)
	require.Empty(t, ctx.ScanErrors)
	els := parse.Parse(toks, ctx)
	return els, ctx
}

func TestParseLiteralExpression(t *testing.T) {
	els, ctx := parseSource(t, "42")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	assert.Equal(t, parse.Literal, els[0].Kind)
	require.NotNil(t, els[0].Token)
	assert.EqualValues(t, 42, els[0].Token.AsInteger)
}

func TestParseBindingWithInitializer(t *testing.T) {
	els, ctx := parseSource(t, "let x = 1 + 2")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.Symbolize, els[0].Kind)
	require.NotNil(t, els[0].Symbol)
	assert.Equal(t, "x", els[0].Symbol.NameString())
	require.NotNil(t, els[0].Value)
	assert.Equal(t, parse.Binary, els[0].Value.Kind)
}

func TestParseBinaryPrecedence(t *testing.T) {
	els, ctx := parseSource(t, "1 + 2 * 3")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	top := els[0]
	require.Equal(t, parse.Binary, top.Kind)
	require.NotNil(t, top.Op)
	assert.Equal(t, scan.OpPlus, top.Op.AsOperator)
	require.NotNil(t, top.Right)
	assert.Equal(t, parse.Binary, top.Right.Kind)
	assert.Equal(t, scan.OpStar, top.Right.Op.AsOperator)
}

func TestParseIfElse(t *testing.T) {
	els, ctx := parseSource(t, "if x { 1 } else { 2 }")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.Conditional, els[0].Kind)
	require.NotNil(t, els[0].Else)
}

func TestParseWhileLoop(t *testing.T) {
	els, ctx := parseSource(t, "while x { break }")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.While, els[0].Kind)
	require.NotNil(t, els[0].Body)
}

func TestParseFunctionCallAndAccess(t *testing.T) {
	els, ctx := parseSource(t, "foo.bar(1, 2)")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.Invoke, els[0].Kind)
	require.NotNil(t, els[0].Target)
	assert.Equal(t, parse.Access, els[0].Target.Kind)
	assert.Len(t, els[0].Items, 2)
}

func TestParseUnclosedParenReportsError(t *testing.T) {
	_, ctx := parseSource(t, "(1 + 2")
	require.NotEmpty(t, ctx.ParseErrors)
}

func TestParseStructureDeclaration(t *testing.T) {
	els, ctx := parseSource(t, "struct Point { x, y }")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.Symbolize, els[0].Kind)
	require.NotNil(t, els[0].Symbol)
	assert.Equal(t, parse.Structure, els[0].Symbol.Kind)
	assert.Len(t, els[0].Symbol.Fields, 2)
}

func TestParseBareIfIsNotMisreadAsIdentifier(t *testing.T) {
	els, ctx := parseSource(t, "if")
	require.NotEmpty(t, ctx.ParseErrors, "a bare 'if' must not silently parse as a plain identifier")
	for _, el := range els {
		if el.Kind == parse.Literal && el.Token != nil {
			assert.NotEqual(t, "if", el.Token.AsString)
		}
	}
}

func TestParseBareLetReportsError(t *testing.T) {
	_, ctx := parseSource(t, "let")
	require.NotEmpty(t, ctx.ParseErrors)
}

func TestParseUseDeclaration(t *testing.T) {
	els, ctx := parseSource(t, "use a.b.c")
	require.Empty(t, ctx.ParseErrors)
	require.Len(t, els, 1)
	require.Equal(t, parse.Symbolize, els[0].Kind)
	require.NotNil(t, els[0].Symbol)
	assert.Equal(t, parse.Inclusion, els[0].Symbol.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, els[0].Symbol.Path)
}
