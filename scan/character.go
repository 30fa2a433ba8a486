// Package scan implements the scanner stage: a form.Classifier tree
// with I=Character, O=Token, E=Error, driven by a form.Former over a
// cursor.Cursor[Character]. Character-class predicates are
// classifier table entries rather than hand-written recursive-descent
// functions.
package scan

import "github.com/liagha/axo"

// Character is one source-text rune paired with its position, the
// scanner's input alphabet.
type Character struct {
	Value rune
	Span  axo.Span
}

func (c Character) GetSpan() axo.Span { return c.Span }
