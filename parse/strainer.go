package parse

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/cursor"
	"github.com/liagha/axo/form"
	"github.com/liagha/axo/scan"
)

// strain runs a destructive pass over the token cursor that deletes
// every noise token (whitespace, newlines, indentation, semicolons,
// comments) in place via
// Order.Remove, so the main grammar never has to thread layout
// skipping through every rule. This is the one place in the whole
// module that calls Former.AllowRemove.
func strain(cur *cursor.Cursor[scan.Token], ctx *axo.Context) {
	former := form.New[scan.Token, Element, Error](cur, ctx)
	former.AllowRemove()

	noise := form.Pred[scan.Token, Element, Error](scan.Token.Noise).With(order{Kind: form.Remove})
	keep := form.Any[scan.Token, Element, Error]()

	grammar := form.Persistence(form.Alternative(noise, keep), 0, -1)
	former.Form(grammar)
}
