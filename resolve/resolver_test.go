package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liagha/axo"
	"github.com/liagha/axo/parse"
	"github.com/liagha/axo/resolve"
	"github.com/liagha/axo/scan"
)

func parseAndResolve(t *testing.T, src string) ([]resolve.Analysis, *axo.Context) {
	t.Helper()
	ctx := axo.NewContext(nil)
	toks := scan.Scan([]byte(src), axo.RawLocation(0, len(src)), ctx)
	require.Empty(t, ctx.ScanErrors)
	els := parse.Parse(toks, ctx)
	require.Empty(t, ctx.ParseErrors)
	r := resolve.NewResolver(ctx)
	return r.Resolve(els), ctx
}

func TestResolverScopeEnterExitShadowing(t *testing.T) {
	ctx := axo.NewContext(nil)
	r := resolve.NewResolver(ctx)

	name := scan.Token{Kind: scan.Identifier, AsString: "x"}
	outer := r.Insert(parse.Symbol{Kind: parse.Binding, Name: &name})

	r.Enter()
	inner := r.Insert(parse.Symbol{Kind: parse.Binding, Name: &name})
	assert.NotEqual(t, outer.ID, inner.ID)

	found, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, inner.ID, found.ID)

	r.Exit()
	found, ok = r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, outer.ID, found.ID)
}

func TestResolverBindingThenReferenceResolves(t *testing.T) {
	analyses, ctx := parseAndResolve(t, "let x = 1; x")
	require.Empty(t, ctx.ResolveErrors)
	require.Len(t, analyses, 2)
	assert.Equal(t, resolve.StoreBinding, analyses[0].Instruction.Kind)
	ref := analyses[1].Instruction
	assert.Equal(t, resolve.LoadSymbol, ref.Kind)
	assert.NotZero(t, ref.SymbolID)
	assert.Equal(t, "x", ref.Name)
}

func TestResolverUndefinedSymbolReportsSuggestion(t *testing.T) {
	analyses, ctx := parseAndResolve(t, "let count = 1; counnt")
	require.Len(t, ctx.ResolveErrors, 1)
	diag := ctx.ResolveErrors[0]
	assert.Contains(t, diag.Error(), "undefined symbol")
	assert.Contains(t, diag.Error(), "count")
	require.Len(t, analyses, 2)
	assert.Equal(t, resolve.LoadSymbol, analyses[1].Instruction.Kind)
}

func TestResolverBinaryTypeMismatchReported(t *testing.T) {
	_, ctx := parseAndResolve(t, `1 + "a"`)
	require.Len(t, ctx.ResolveErrors, 1)
	assert.Contains(t, ctx.ResolveErrors[0].Error(), "type mismatch")
}

func TestResolverMethodOpensParamScope(t *testing.T) {
	analyses, ctx := parseAndResolve(t, "fn add(a, b) { a + b }")
	require.Empty(t, ctx.ResolveErrors)
	require.Len(t, analyses, 1)
	decl := analyses[0].Instruction
	assert.Equal(t, resolve.Declare, decl.Kind)
	require.Len(t, decl.Children, 1)
	body := decl.Children[0]
	require.Len(t, body.Children, 1)
	assert.Equal(t, resolve.BinaryOp, body.Children[0].Kind)
}

func TestResolverStructureFieldCountMismatchIsAccessibleViaCheck(t *testing.T) {
	ctx := axo.NewContext(nil)
	toks := scan.Scan([]byte("struct Point { x, y }"), axo.RawLocation(0, 21), ctx)
	els := parse.Parse(toks, ctx)
	require.Empty(t, ctx.ParseErrors)
	r := resolve.NewResolver(ctx)
	r.Resolve(els)

	target := els[0].Symbol.Name
	construct := parse.Element{
		Kind:   parse.Construct,
		Target: &parse.Element{Kind: parse.Literal, Token: target},
		Items:  []parse.Element{{Kind: parse.Literal}},
	}
	typ := r.Check(construct)
	assert.Equal(t, "Point", typ.Name)
	require.Len(t, ctx.ResolveErrors, 1)
	assert.Contains(t, ctx.ResolveErrors[0].Error(), "field count mismatch")
}
