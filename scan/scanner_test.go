package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liagha/axo"
	"github.com/liagha/axo/scan"
)

func scanString(t *testing.T, src string) ([]scan.Token, *axo.Context) {
	t.Helper()
	ctx := axo.NewContext(nil)
	toks := scan.Scan([]byte(src), axo.RawLocation(0, len(src)), ctx)
	return toks, ctx
}

// significant drops layout noise tokens, mirroring what the parser's
// strainer pass does to the scanner's raw output.
func significant(toks []scan.Token) []scan.Token {
	var out []scan.Token
	for _, tok := range toks {
		if !tok.Noise() {
			out = append(out, tok)
		}
	}
	return out
}

func TestScanIdentifiersAndKeywordRewrite(t *testing.T) {
	raw, ctx := scanString(t, "let x = true")
	require.Empty(t, ctx.ScanErrors)
	toks := significant(raw)
	require.Len(t, toks, 4)
	assert.Equal(t, scan.Identifier, toks[0].Kind)
	assert.Equal(t, "let", toks[0].AsString)
	assert.Equal(t, scan.Identifier, toks[1].Kind)
	assert.Equal(t, "x", toks[1].AsString)
	assert.Equal(t, scan.Operator, toks[2].Kind)
	assert.Equal(t, scan.OpAssign, toks[2].AsOperator)
	assert.Equal(t, scan.Boolean, toks[3].Kind)
	assert.True(t, toks[3].AsBoolean)
}

func TestScanIntegerAndFloat(t *testing.T) {
	raw, ctx := scanString(t, "1 + 2.5")
	require.Empty(t, ctx.ScanErrors)
	toks := significant(raw)
	require.Len(t, toks, 3)
	assert.Equal(t, scan.Integer, toks[0].Kind)
	assert.EqualValues(t, 1, toks[0].AsInteger)
	assert.Equal(t, scan.Operator, toks[1].Kind)
	assert.Equal(t, scan.OpPlus, toks[1].AsOperator)
	assert.Equal(t, scan.Float, toks[2].Kind)
	assert.InDelta(t, 2.5, toks[2].AsFloat, 1e-9)
}

func TestScanHexBinOctal(t *testing.T) {
	raw, ctx := scanString(t, "0xFF 0b101 0o17")
	require.Empty(t, ctx.ScanErrors)
	toks := significant(raw)
	require.Len(t, toks, 3)
	assert.EqualValues(t, 255, toks[0].AsInteger)
	assert.EqualValues(t, 5, toks[1].AsInteger)
	assert.EqualValues(t, 15, toks[2].AsInteger)
}

func TestScanStringWithEscapes(t *testing.T) {
	toks, ctx := scanString(t, `"a\nb"`)
	require.Empty(t, ctx.ScanErrors)
	require.Len(t, toks, 1)
	assert.Equal(t, scan.String, toks[0].Kind)
	assert.Equal(t, "a\nb", toks[0].AsString)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	_, ctx := scanString(t, `"abc`)
	require.Len(t, ctx.ScanErrors, 1)
}

func TestScanAdjacentOperatorsSplit(t *testing.T) {
	toks, ctx := scanString(t, "a==-b")
	require.Empty(t, ctx.ScanErrors)
	require.Len(t, toks, 4)
	assert.Equal(t, scan.Identifier, toks[0].Kind)
	assert.Equal(t, scan.OpEqual, toks[1].AsOperator)
	assert.Equal(t, scan.OpMinus, toks[2].AsOperator)
	assert.Equal(t, scan.Identifier, toks[3].Kind)
}

func TestScanCommentsDroppedWhenCaptureDisabled(t *testing.T) {
	ctx := axo.NewContext(nil)
	ctx.Config.SetBool("scanner.capture_comments", false)
	src := "x // trailing\ny"
	toks := scan.Scan([]byte(src), axo.RawLocation(0, len(src)), ctx)
	for _, tok := range toks {
		assert.NotEqual(t, scan.Comment, tok.Kind)
	}
}

func TestScanPunctuationAndDelimiters(t *testing.T) {
	toks, ctx := scanString(t, "(a,b)")
	require.Empty(t, ctx.ScanErrors)
	require.Len(t, toks, 5)
	assert.Equal(t, scan.PunctLParen, toks[0].AsPunctuation)
	assert.Equal(t, scan.PunctComma, toks[2].AsPunctuation)
	assert.Equal(t, scan.PunctRParen, toks[4].AsPunctuation)
}

func TestScanInvalidCharacterReportsError(t *testing.T) {
	_, ctx := scanString(t, "x $ y")
	require.Len(t, ctx.ScanErrors, 1)
	assert.Equal(t, scan.InvalidCharacter, ctx.ScanErrors[0].(scan.Error).Kind)
}

func TestScanClosedBlockCommentProducesNoError(t *testing.T) {
	toks, ctx := scanString(t, "/* a block comment */ x")
	require.Empty(t, ctx.ScanErrors)
	sig := significant(toks)
	require.Len(t, sig, 1)
	assert.Equal(t, scan.Identifier, sig[0].Kind)
}

func TestScanUnterminatedBlockCommentReportsError(t *testing.T) {
	_, ctx := scanString(t, "/* a block comment that never closes")
	require.Len(t, ctx.ScanErrors, 1)
	scanErr := ctx.ScanErrors[0].(scan.Error)
	assert.Equal(t, scan.InvalidEscape, scanErr.Kind)
	assert.Equal(t, scan.Unterminated, scanErr.EscapeProblem)
}
