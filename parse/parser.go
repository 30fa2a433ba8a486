package parse

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/cursor"
	"github.com/liagha/axo/form"
	"github.com/liagha/axo/scan"
)

// Parse runs the strainer pass then the full expression grammar over
// tokens, returning the program's top-level elements. Parsing stops at
// the first top-level statement that fails to match: the statements
// before it are returned, and one UnexpectedToken error for the first
// unconsumed token is recorded on ctx. Errors built inside the grammar
// (Required fallbacks, transform failures) are not recorded, and no
// statement after the failing one is parsed.
func Parse(tokens []scan.Token, ctx *axo.Context) []Element {
	items := make([]scan.Token, len(tokens))
	copy(items, tokens)

	start := axo.NewPosition(axo.VoidLocation())
	if len(items) > 0 {
		start = items[0].Span.Start
	}
	cur := cursor.New[scan.Token](items, start, func(before axo.Position, t scan.Token) axo.Position {
		return t.Span.End
	})
	strain(cur, ctx)
	cur.Reset(start)

	former := form.New[scan.Token, Element, Error](cur, ctx)
	result := former.Form(Grammar())

	var program []Element
	for _, leaf := range result.Expand() {
		switch leaf.Kind {
		case form.Output:
			program = append(program, leaf.Output.Items...)
		case form.Failure:
			ctx.ParseErrors = append(ctx.ParseErrors, leaf.Error)
		}
	}

	// The top-level Persistence loop stops the moment one statement
	// attempt fails, without rewinding past what it already accumulated:
	// a construct that never recovers (e.g. a delimiter whose Required
	// close never arrives) otherwise leaves tokens unconsumed with no
	// diagnostic at all. Surface that directly rather than silently
	// truncating the program.
	if cur.Remaining() > 0 {
		tok, _ := cur.Peek()
		ctx.ParseErrors = append(ctx.ParseErrors, unexpectedToken(tok, "end of input"))
	}
	return program
}
