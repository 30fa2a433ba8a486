package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liagha/axo"
	"github.com/liagha/axo/cursor"
	"github.com/liagha/axo/form"
)

// These tests exercise the form engine directly over a rune alphabet,
// independent of the scanner/parser grammars built on top of it.

func runeAdvance(before axo.Position, r rune) axo.Position {
	return before.Advance(r)
}

func newFormer(t *testing.T, src string) (*form.Former[rune, string, string], *cursor.Cursor[rune]) {
	t.Helper()
	loc := axo.RawLocation(0, len(src))
	cur := cursor.New[rune]([]rune(src), axo.NewPosition(loc), runeAdvance)
	ctx := axo.NewContext(nil)
	return form.New[rune, string, string](cur, ctx), cur
}

func TestLiteralMatch(t *testing.T) {
	f, _ := newFormer(t, "ab")
	out := f.Form(form.Lit[rune, string, string]('a'))
	assert.Equal(t, form.Input, out.Kind)
	assert.Equal(t, 'a', out.Input)
}

func TestLiteralMismatchRestoresCursor(t *testing.T) {
	f, cur := newFormer(t, "ab")
	out := f.Form(form.Lit[rune, string, string]('x'))
	assert.Equal(t, form.Blank, out.Kind)
	assert.Equal(t, 0, cur.Index())
}

func TestSequenceAllOrNothing(t *testing.T) {
	f, cur := newFormer(t, "ab")
	seq := form.Sequence[rune, string, string](
		form.Lit[rune, string, string]('a'),
		form.Lit[rune, string, string]('z'),
	)
	out := f.Form(seq)
	assert.Equal(t, form.Blank, out.Kind)
	assert.Equal(t, 0, cur.Index(), "sequence must rewind fully on partial failure")
}

func TestAlternativePicksFirstMatch(t *testing.T) {
	f, _ := newFormer(t, "b")
	alt := form.Alternative[rune, string, string](
		form.Lit[rune, string, string]('a'),
		form.Lit[rune, string, string]('b'),
	)
	out := f.Form(alt)
	require.Equal(t, form.Input, out.Kind)
	assert.Equal(t, 'b', out.Input)
}

func TestChoicePrefersHigherPriority(t *testing.T) {
	f, _ := newFormer(t, "a")
	low := form.Pred[rune, string, string](func(r rune) bool { return r == 'a' }).With(form.Order[rune, string, string]{
		Kind: form.Transform,
		Transform: func(ctx *axo.Context, in form.Form[rune, string, string]) (form.Form[rune, string, string], string, bool) {
			return form.OutputForm[rune, string, string]("low", in.Span), "", true
		},
	})
	high := form.Pred[rune, string, string](func(r rune) bool { return r == 'a' }).With(form.Order[rune, string, string]{
		Kind: form.Transform,
		Transform: func(ctx *axo.Context, in form.Form[rune, string, string]) (form.Form[rune, string, string], string, bool) {
			return form.OutputForm[rune, string, string]("high", in.Span), "", true
		},
	})
	choice := form.Choice[rune, string, string]([]int{0, 10}, low, high)
	out := f.Form(choice)
	require.Equal(t, form.Output, out.Kind)
	assert.Equal(t, "high", out.Output)
}

func TestOptionalNeverFails(t *testing.T) {
	f, cur := newFormer(t, "z")
	out := f.Form(form.Optional[rune, string, string](form.Lit[rune, string, string]('a')))
	assert.Equal(t, form.Blank, out.Kind)
	assert.Equal(t, 0, cur.Index())
}

func TestRepetitionRespectsMinimum(t *testing.T) {
	f, cur := newFormer(t, "aaab")
	digit := form.Pred[rune, string, string](func(r rune) bool { return r == 'a' })

	out := f.Form(form.Repetition[rune, string, string](digit, 2, -1))
	require.Equal(t, form.Multiple, out.Kind)
	assert.Len(t, out.Children, 3)
	assert.Equal(t, 3, cur.Index())
}

func TestRepetitionFailsBelowMinimum(t *testing.T) {
	f, cur := newFormer(t, "b")
	digit := form.Pred[rune, string, string](func(r rune) bool { return r == 'a' })

	out := f.Form(form.Repetition[rune, string, string](digit, 1, -1))
	assert.Equal(t, form.Blank, out.Kind)
	assert.Equal(t, 0, cur.Index())
}

func TestPersistenceCommitsAfterMinimum(t *testing.T) {
	f, _ := newFormer(t, "aab")
	item := form.Pred[rune, string, string](func(r rune) bool { return r == 'a' })
	out := f.Form(form.Persistence[rune, string, string](item, 0, -1))
	require.Equal(t, form.Multiple, out.Kind)
	assert.Len(t, out.Children, 2)
}

func TestNegateSucceedsWhenChildFails(t *testing.T) {
	f, cur := newFormer(t, "b")
	out := f.Form(form.Negate[rune, string, string](form.Lit[rune, string, string]('a')))
	assert.Equal(t, form.Blank, out.Kind)
	assert.Equal(t, 0, cur.Index(), "negate never consumes input")
}

func TestRequiredRunsFallbackOnFailure(t *testing.T) {
	f, _ := newFormer(t, "z")
	required := form.Required[rune, string, string](
		form.Lit[rune, string, string]('a'),
		form.Order[rune, string, string]{
			Kind: form.Fail,
			FailWith: func(ctx *axo.Context, in form.Form[rune, string, string]) string {
				return "expected 'a'"
			},
		},
	)
	out := f.Form(required)
	require.Equal(t, form.Failure, out.Kind)
	assert.Equal(t, "expected 'a'", out.Error)
}

func TestIgnoreOrderDropsFromSequence(t *testing.T) {
	f, _ := newFormer(t, "a b")
	space := form.Lit[rune, string, string](' ').With(form.Order[rune, string, string]{Kind: form.Ignore})
	seq := form.Sequence[rune, string, string](
		form.Lit[rune, string, string]('a'),
		space,
		form.Lit[rune, string, string]('b'),
	)
	out := f.Form(seq)
	require.Equal(t, form.Multiple, out.Kind)
	assert.Len(t, out.Children, 2, "ignored space must not appear among sequence children")
}

func TestCatchFindsNestedFailure(t *testing.T) {
	span := axo.ZeroSpan()
	tree := form.MultipleForm[rune, string, string]([]form.Form[rune, string, string]{
		form.InputForm[rune, string, string]('a', span),
		form.FailureForm[rune, string, string]("boom", span),
	}, span)
	caught, ok := tree.Catch()
	require.True(t, ok)
	assert.Equal(t, "boom", caught.Error)
}
