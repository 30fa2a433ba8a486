package scan

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/cursor"
	"github.com/liagha/axo/form"
)

func characters(source []byte, loc axo.Location) []Character {
	runes := []rune(string(source))
	pos := axo.NewPosition(loc)
	chars := make([]Character, len(runes))
	for i, r := range runes {
		start := pos
		pos = pos.Advance(r)
		chars[i] = Character{Value: r, Span: axo.NewSpan(start, pos)}
	}
	return chars
}

func advance(before axo.Position, c Character) axo.Position {
	return before.Advance(c.Value)
}

// Scan runs the scanner stage over source, reporting tokens in order
// and recording every ScanError on ctx. It never aborts partway: a bad
// character yields a Failure leaf that becomes a recorded error while
// the grammar keeps consuming the rest of the input.
func Scan(source []byte, loc axo.Location, ctx *axo.Context) []Token {
	chars := characters(source, loc)
	cur := cursor.New[Character](chars, axo.NewPosition(loc), advance)
	former := form.New[Character, Token, Error](cur, ctx)

	result := former.Form(Grammar())

	captureComments := ctx.Config.GetBool("scanner.capture_comments")
	var tokens []Token
	for _, leaf := range result.Expand() {
		switch leaf.Kind {
		case form.Output:
			tok := leaf.Output
			if tok.Kind == Comment && !captureComments {
				continue
			}
			tokens = append(tokens, tok)
		case form.Failure:
			ctx.ScanErrors = append(ctx.ScanErrors, leaf.Error)
		}
	}
	return tokens
}
