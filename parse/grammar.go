package parse

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/form"
	"github.com/liagha/axo/scan"
)

type classifier = form.Classifier[scan.Token, Element, Error]
type order = form.Order[scan.Token, Element, Error]
type draft = form.Draft[scan.Token, Element, Error]

func transform(fn func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool)) order {
	return order{Kind: form.Transform, Transform: fn}
}

func out(el Element) (form.Form[scan.Token, Element, Error], Error, bool) {
	return form.OutputForm[scan.Token, Element, Error](el, el.Span), Error{}, true
}

func fail(err Error) (form.Form[scan.Token, Element, Error], Error, bool) {
	return form.Form[scan.Token, Element, Error]{}, err, false
}

func ignoreTok() order { return order{Kind: form.Ignore} }

func pred(p func(scan.Token) bool) classifier { return form.Pred[scan.Token, Element, Error](p) }

func punct(k scan.PunctuationKind) classifier {
	return pred(func(t scan.Token) bool { return t.Kind == scan.Punctuation && t.AsPunctuation == k })
}

func op(k scan.OperatorKind) classifier {
	return pred(func(t scan.Token) bool { return t.Kind == scan.Operator && t.AsOperator == k })
}

func kind(k scan.Kind) classifier {
	return pred(func(t scan.Token) bool { return t.Kind == k })
}

func keyword(word string) classifier {
	return pred(func(t scan.Token) bool { return t.Kind == scan.Identifier && t.AsString == word })
}

// reservedWords holds every spelling a keyword() classifier matches
// anywhere in the grammar. identifierRef excludes these so a malformed
// keyword-led construct (e.g. "if" with no condition) fails as itself
// rather than being silently reinterpreted as a bare identifier once
// its own production backtracks.
var reservedWords = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "in": true,
	"fn": true, "let": true, "mut": true, "return": true, "break": true,
	"continue": true, "struct": true, "enum": true, "use": true,
	"impl": true, "trait": true, "macro": true,
}

// outputToken picks the single Token leaf a one-token classifier matched.
func outputToken(f form.Form[scan.Token, Element, Error]) (scan.Token, bool) {
	leaves := f.Inputs()
	if len(leaves) != 1 {
		return scan.Token{}, false
	}
	return leaves[0], true
}

// identifierTokens filters f's Input leaves down to Identifier tokens,
// dropping the delimiter/separator punctuation (parens, commas) that
// Inputs() would otherwise pull in from the same subtree.
func identifierTokens(f form.Form[scan.Token, Element, Error]) []scan.Token {
	var out []scan.Token
	for _, tok := range f.Inputs() {
		if tok.Kind == scan.Identifier {
			out = append(out, tok)
		}
	}
	return out
}

func firstElement(f form.Form[scan.Token, Element, Error]) (Element, bool) {
	for _, leaf := range f.Expand() {
		if leaf.Kind == form.Output {
			return leaf.Output, true
		}
	}
	return Element{}, false
}

// expression is the grammar's recursive entry point, broken into a
// standard precedence ladder (assignment at the loosest binding, then
// logical-or/and, equality, comparison, range, additive, multiplicative,
// unary, postfix, primary), each layer a thin Sequence/Repetition fold
// over the next-tighter layer: the common PEG precedence-climbing shape.
func expression() classifier {
	return form.Deferred(func() classifier { return assignment() })
}

func assignment() classifier {
	return form.Sequence(logicalOr(), form.Optional(form.Sequence(op(scan.OpAssign), expression()))).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		left, ok := firstElement(leaves[0])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "expression"))
		}
		if len(leaves) < 2 || leaves[1].Kind == form.Blank {
			return out(left)
		}
		rhsLeaves := leaves[1].Unwrap()
		eqTok, _ := outputToken(rhsLeaves[0])
		right, _ := firstElement(rhsLeaves[1])
		return out(Element{
			Kind:  Assign,
			Span:  in.Span,
			Op:    &eqTok,
			Value: &right,
			Target: &left,
		})
	}))
}

func binaryLevel(next func() classifier, ops ...scan.OperatorKind) func() classifier {
	return func() classifier {
		var opAlt []classifier
		for _, k := range ops {
			opAlt = append(opAlt, op(k))
		}
		return form.Sequence(next(), form.Repetition(form.Sequence(form.Alternative(opAlt...), next()), 0, -1)).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
			leaves := in.Unwrap()
			left, ok := firstElement(leaves[0])
			if !ok {
				return fail(unexpectedToken(scan.Token{}, "operand"))
			}
			rest := leaves[1].Unwrap()
			for _, pair := range rest {
				pairLeaves := pair.Unwrap()
				opTok, _ := outputToken(pairLeaves[0])
				right, _ := firstElement(pairLeaves[1])
				l := left
				r := right
				left = Element{Kind: Binary, Span: in.Span, Op: &opTok, Left: &l, Right: &r}
			}
			return out(left)
		}))
	}
}

func logicalOr() classifier  { return binaryLevel(logicalAnd, scan.OpOr)() }
func logicalAnd() classifier { return binaryLevel(equality, scan.OpAnd)() }
func equality() classifier {
	return binaryLevel(comparison, scan.OpEqual, scan.OpNotEqual)()
}
func comparison() classifier {
	return binaryLevel(rangeLevel, scan.OpLess, scan.OpLessEqual, scan.OpGreater, scan.OpGreaterEqual)()
}
func rangeLevel() classifier { return binaryLevel(additive, scan.OpRange)() }
func additive() classifier   { return binaryLevel(multiplicative, scan.OpPlus, scan.OpMinus)() }
func multiplicative() classifier {
	return binaryLevel(unary, scan.OpStar, scan.OpSlash, scan.OpPercent)()
}

func unary() classifier {
	return form.Alternative(
		form.Sequence(form.Alternative(op(scan.OpMinus), op(scan.OpBang), op(scan.OpTilde)), form.Deferred(func() classifier { return unary() })).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
			leaves := in.Unwrap()
			opTok, _ := outputToken(leaves[0])
			operand, ok := firstElement(leaves[1])
			if !ok {
				return fail(unexpectedToken(scan.Token{}, "operand"))
			}
			return out(Element{Kind: Unary, Span: in.Span, Op: &opTok, Operand: &operand})
		})),
		postfix(),
	)
}

func postfix() classifier {
	suffix := form.Alternative(
		form.Sequence(punct(scan.PunctLBracket), expression(), punct(scan.PunctRBracket)),
		form.Sequence(punct(scan.PunctLParen), argList(), punct(scan.PunctRParen)),
		form.Sequence(op(scan.OpDot), kind(scan.Identifier)),
	)
	return form.Sequence(primary(), form.Repetition(suffix, 0, -1)).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		target, ok := firstElement(leaves[0])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "primary expression"))
		}
		for _, step := range leaves[1].Unwrap() {
			stepLeaves := step.Unwrap()
			openTok, isOpen := outputToken(stepLeaves[0])
			switch {
			case len(stepLeaves) == 3 && isOpen && openTok.AsPunctuation == scan.PunctLBracket:
				idx, _ := firstElement(stepLeaves[1])
				t := target
				target = Element{Kind: Index, Span: step.Span, Target: &t, Items: []Element{idx}}
			case len(stepLeaves) == 3 && isOpen && openTok.AsPunctuation == scan.PunctLParen:
				t := target
				target = Element{Kind: Invoke, Span: step.Span, Target: &t, Items: stepLeaves[1].Outputs()}
			case len(stepLeaves) == 2:
				// `.` ident — access
				memberTok, _ := outputToken(stepLeaves[1])
				t := target
				target = Element{Kind: Access, Span: step.Span, Target: &t, Member: &memberTok}
			}
		}
		return out(target)
	}))
}

func argList() classifier {
	item := expression()
	return form.Optional(form.Sequence(item, form.Repetition(form.Sequence(punct(scan.PunctComma), item), 0, -1)))
}

func delimited(open, close scan.PunctuationKind, body classifier) classifier {
	return form.Sequence(punct(open), body, form.Required(punct(close), order{
		Kind: form.Fail,
		FailWith: func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) Error {
			return unclosedDelimiter(scan.Token{})
		},
	}))
}

func primary() classifier {
	literalKinds := form.Alternative(
		kind(scan.Integer), kind(scan.Float), kind(scan.Boolean),
		kind(scan.String), kind(scan.CharacterKind),
	).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		tok, ok := outputToken(in)
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "literal"))
		}
		return out(Element{Kind: Literal, Span: tok.Span, Token: &tok})
	}))

	identifierRef := pred(func(t scan.Token) bool {
		return t.Kind == scan.Identifier && !reservedWords[t.AsString]
	}).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		tok, ok := outputToken(in)
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "identifier"))
		}
		return out(Element{Kind: Literal, Span: tok.Span, Token: &tok})
	}))

	grouped := delimited(scan.PunctLParen, scan.PunctRParen, expression()).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		el, ok := firstElement(in)
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "expression"))
		}
		return out(el)
	}))

	return form.Alternative(
		literalKinds,
		ifExpr(),
		whileExpr(),
		cycleExpr(),
		methodDecl(),
		closureExpr(),
		structureDecl(),
		enumerationDecl(),
		inclusionDecl(),
		extensionDecl(),
		preferenceDecl(),
		bindingExpr(),
		returnExpr(),
		breakExpr(),
		continueExpr(),
		block(),
		grouped,
		labelExpr(),
		identifierRef,
	)
}

func block() classifier {
	stmt := form.Deferred(func() classifier { return expression() })
	body := form.Optional(form.Sequence(stmt, form.Repetition(form.Sequence(form.Optional(punct(scan.PunctSemicolon)), stmt), 0, -1)))
	return delimited(scan.PunctLBrace, scan.PunctRBrace, body).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		return out(Element{Kind: Delimited, Span: in.Span, Items: in.Outputs()})
	}))
}

func ifExpr() classifier {
	elseClause := form.Optional(form.Sequence(keyword("else"), form.Alternative(ifExprBody(), block())))
	return form.Sequence(keyword("if"), requiredExpr(expectedCondition), block(), elseClause).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		cond, ok := firstElement(leaves[1])
		if !ok {
			return fail(expectedCondition(in.Span))
		}
		then, ok := firstElement(leaves[2])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		el := Element{Kind: Conditional, Span: in.Span, Condition: &cond, Then: &then}
		if len(leaves) > 3 {
			if elseEl, ok := firstElement(leaves[3]); ok {
				el.Else = &elseEl
			}
		}
		return out(el)
	}))
}

// ifExprBody lets `else if` chain without wrapping every link in its own
// block element.
func ifExprBody() classifier { return form.Deferred(func() classifier { return ifExpr() }) }

func requiredExpr(onMissing func(axo.Span) Error) classifier {
	return form.Required(expression(), order{
		Kind: form.Fail,
		FailWith: func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) Error {
			return onMissing(in.Span)
		},
	})
}

// requiredIdent matches a single Identifier token, failing with a
// genuine UnexpectedToken Error (rather than a bare Blank) when the
// name is missing entirely.
func requiredIdent(want string) classifier {
	return form.Required(kind(scan.Identifier), order{
		Kind: form.Fail,
		FailWith: func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) Error {
			return unexpectedToken(scan.Token{}, want)
		},
	})
}

func whileExpr() classifier {
	return form.Sequence(keyword("while"), requiredExpr(expectedCondition), block()).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		cond, ok := firstElement(leaves[1])
		if !ok {
			return fail(expectedCondition(in.Span))
		}
		body, ok := firstElement(leaves[2])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		return out(Element{Kind: While, Span: in.Span, Condition: &cond, Body: &body})
	}))
}

func cycleExpr() classifier {
	return form.Sequence(keyword("for"), kind(scan.Identifier), op(scan.OpIn), requiredExpr(expectedCondition), block()).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		patTok, _ := outputToken(leaves[1])
		pattern := Element{Kind: Literal, Span: patTok.Span, Token: &patTok}
		iterable, ok := firstElement(leaves[3])
		if !ok {
			return fail(expectedCondition(in.Span))
		}
		body, ok := firstElement(leaves[4])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		return out(Element{Kind: Cycle, Span: in.Span, CycleKind: CycleFor, Pattern: &pattern, Iterable: &iterable, Body: &body})
	}))
}

func paramList() classifier {
	param := kind(scan.Identifier)
	return form.Optional(form.Sequence(param, form.Repetition(form.Sequence(punct(scan.PunctComma), param), 0, -1)))
}

func closureExpr() classifier {
	return form.Sequence(keyword("fn"), delimited(scan.PunctLParen, scan.PunctRParen, paramList()), block()).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		var params []Symbol
		for _, tok := range identifierTokens(leaves[1]) {
			t := tok
			params = append(params, Symbol{Kind: Parameter, Name: &t, Span: tok.Span})
		}
		body, ok := firstElement(leaves[2])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		return out(Element{Kind: Closure, Span: in.Span, Params: params, Body: &body})
	}))
}

func bindingExpr() classifier {
	mut := form.Optional(keyword("mut"))
	return form.Sequence(keyword("let"), mut, requiredIdent("binding name"), form.Optional(form.Sequence(op(scan.OpAssign), expression()))).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[2])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "binding name"))
		}
		sym := Symbol{Kind: Binding, Name: &nameTok, Span: nameTok.Span, Constant: leaves[1].Kind == form.Blank}
		el := Element{Kind: Symbolize, Span: in.Span, Name: &nameTok, Symbol: &sym}
		if len(leaves) > 3 && leaves[3].Kind != form.Blank {
			initLeaves := leaves[3].Unwrap()
			if value, ok := firstElement(initLeaves[1]); ok {
				el.Value = &value
				sym.Value = &value
			}
		}
		return out(el)
	}))
}

func returnExpr() classifier {
	return form.Sequence(keyword("return"), form.Optional(expression())).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		el := Element{Kind: Return, Span: in.Span}
		if value, ok := firstElement(leaves[1]); ok {
			el.Value = &value
		}
		return out(el)
	}))
}

// labelExpr covers `name: expr`, attaching a label a break/continue can
// target — most useful ahead of a while/cycle block.
func labelExpr() classifier {
	return form.Sequence(kind(scan.Identifier), op(scan.OpColon), form.Deferred(func() classifier { return expression() })).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[0])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "label name"))
		}
		target, ok := firstElement(leaves[2])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		return out(Element{Kind: Label, Span: in.Span, Name: &nameTok, Target2: &target})
	}))
}

// typeRef is a bare identifier used as a type annotation. The grammar
// has no structural type syntax (generics, references); a name is
// enough to drive resolve's Named(string) Type case.
func typeRef() classifier {
	return kind(scan.Identifier).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		tok, ok := outputToken(in)
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "type name"))
		}
		return out(Element{Kind: Literal, Span: tok.Span, Token: &tok})
	}))
}

func typeAnnotation() classifier {
	return form.Optional(form.Sequence(op(scan.OpColon), typeRef()))
}

// methodDecl covers a named `fn name(params) [-> Type] { body }`
// declaration, distinct from closureExpr's anonymous `fn(params) {...}`.
func methodDecl() classifier {
	ret := form.Optional(form.Sequence(op(scan.OpArrow), typeRef()))
	return form.Sequence(keyword("fn"), kind(scan.Identifier), delimited(scan.PunctLParen, scan.PunctRParen, paramList()), ret, block()).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[1])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "method name"))
		}
		var params []Symbol
		for _, tok := range identifierTokens(leaves[2]) {
			t := tok
			params = append(params, Symbol{Kind: Parameter, Name: &t, Span: tok.Span})
		}
		body, ok := firstElement(leaves[4])
		if !ok {
			return fail(expectedBody(in.Span))
		}
		sym := Symbol{Kind: Method, Name: &nameTok, Span: in.Span, Params: params, Block: &body}
		if retType, ok := firstElement(leaves[3]); ok {
			sym.Return = &retType
		}
		return out(Element{Kind: Symbolize, Span: in.Span, Name: &nameTok, Symbol: &sym})
	}))
}

func fieldList() classifier {
	field := form.Sequence(kind(scan.Identifier), typeAnnotation())
	return form.Optional(form.Sequence(field, form.Repetition(form.Sequence(punct(scan.PunctComma), field), 0, -1)))
}

// fieldFromForm reads one `identifier [: type]` entry, as produced by
// fieldList's `field := Sequence(kind(Identifier), typeAnnotation())`.
func fieldFromForm(symKind SymbolKind, f form.Form[scan.Token, Element, Error]) (Symbol, bool) {
	fieldLeaves := f.Unwrap()
	if len(fieldLeaves) == 0 {
		return Symbol{}, false
	}
	tok, ok := outputToken(fieldLeaves[0])
	if !ok {
		return Symbol{}, false
	}
	sym := Symbol{Kind: symKind, Name: &tok, Span: tok.Span}
	if len(fieldLeaves) > 1 {
		if typeEl, ok := firstElement(fieldLeaves[1]); ok {
			sym.Type = &typeEl
		}
	}
	return sym, true
}

// fieldsToSymbols reads fieldList()'s `Optional(Sequence(field,
// Repetition(Sequence(comma, field))))` shape: a Blank form means no
// fields; otherwise the first child is the lead field and the second is
// the repeated comma-separated tail.
func fieldsToSymbols(symKind SymbolKind, f form.Form[scan.Token, Element, Error]) []Symbol {
	if f.Kind == form.Blank {
		return nil
	}
	children := f.Unwrap()
	if len(children) < 2 {
		return nil
	}
	var syms []Symbol
	if sym, ok := fieldFromForm(symKind, children[0]); ok {
		syms = append(syms, sym)
	}
	for _, pair := range children[1].Unwrap() {
		pairLeaves := pair.Unwrap()
		if len(pairLeaves) < 2 {
			continue
		}
		if sym, ok := fieldFromForm(symKind, pairLeaves[1]); ok {
			syms = append(syms, sym)
		}
	}
	return syms
}

func structureDecl() classifier {
	return form.Sequence(keyword("struct"), kind(scan.Identifier), delimited(scan.PunctLBrace, scan.PunctRBrace, fieldList())).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[1])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "structure name"))
		}
		fieldsBody := leaves[2].Unwrap()[1]
		sym := Symbol{Kind: Structure, Name: &nameTok, Span: in.Span, Fields: fieldsToSymbols(Binding, fieldsBody)}
		return out(Element{Kind: Symbolize, Span: in.Span, Name: &nameTok, Symbol: &sym})
	}))
}

func variantList() classifier {
	variant := kind(scan.Identifier)
	return form.Optional(form.Sequence(variant, form.Repetition(form.Sequence(punct(scan.PunctComma), variant), 0, -1)))
}

func enumerationDecl() classifier {
	return form.Sequence(keyword("enum"), kind(scan.Identifier), delimited(scan.PunctLBrace, scan.PunctRBrace, variantList())).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[1])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "enumeration name"))
		}
		var variants []Symbol
		for _, tok := range identifierTokens(leaves[2].Unwrap()[1]) {
			t := tok
			variants = append(variants, Symbol{Kind: Enumeration, Name: &t, Span: tok.Span})
		}
		sym := Symbol{Kind: Enumeration, Name: &nameTok, Span: in.Span, Variants: variants}
		return out(Element{Kind: Symbolize, Span: in.Span, Name: &nameTok, Symbol: &sym})
	}))
}

// inclusionDecl parses `use a.b.c`. The scanner already recognizes
// `use` as a plain identifier, so this is the grammar's only place
// treating it specially.
func inclusionDecl() classifier {
	segment := kind(scan.Identifier)
	path := form.Sequence(segment, form.Repetition(form.Sequence(op(scan.OpDot), segment), 0, -1))
	return form.Sequence(keyword("use"), path).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		var segs []string
		pathLeaves := leaves[1].Unwrap()
		first, ok := outputToken(pathLeaves[0])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "module path"))
		}
		segs = append(segs, first.AsString)
		for _, pair := range pathLeaves[1].Unwrap() {
			pairLeaves := pair.Unwrap()
			tok, _ := outputToken(pairLeaves[1])
			segs = append(segs, tok.AsString)
		}
		sym := Symbol{Kind: Inclusion, Span: in.Span, Path: segs}
		return out(Element{Kind: Symbolize, Span: in.Span, Symbol: &sym})
	}))
}

// extensionDecl parses `impl Name { methodDecl* }`, opening a member
// scope over the named target type.
func extensionDecl() classifier {
	members := form.Repetition(methodDecl(), 0, -1)
	return form.Sequence(keyword("impl"), kind(scan.Identifier), delimited(scan.PunctLBrace, scan.PunctRBrace, members)).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		targetTok, ok := outputToken(leaves[1])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "extension target"))
		}
		target := Element{Kind: Literal, Span: targetTok.Span, Token: &targetTok}
		var methods []Symbol
		for _, m := range leaves[2].Unwrap()[1].Outputs() {
			if m.Symbol != nil {
				methods = append(methods, *m.Symbol)
			}
		}
		sym := Symbol{Kind: Extension, Span: in.Span, Target: &target, Body: methods}
		return out(Element{Kind: Symbolize, Span: in.Span, Symbol: &sym})
	}))
}

// preferenceDecl covers `trait`/`macro` declarations: enough to round-
// trip the keyword through scan→parse→resolve without claiming full
// macro expansion (a Non-goal).
func preferenceDecl() classifier {
	head := form.Alternative(keyword("trait"), keyword("macro"))
	members := form.Repetition(methodDecl(), 0, -1)
	return form.Sequence(head, kind(scan.Identifier), delimited(scan.PunctLBrace, scan.PunctRBrace, members)).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		leaves := in.Unwrap()
		nameTok, ok := outputToken(leaves[1])
		if !ok {
			return fail(unexpectedToken(scan.Token{}, "preference name"))
		}
		var methods []Symbol
		for _, m := range leaves[2].Unwrap()[1].Outputs() {
			if m.Symbol != nil {
				methods = append(methods, *m.Symbol)
			}
		}
		sym := Symbol{Kind: Preference, Name: &nameTok, Span: in.Span, Body: methods}
		return out(Element{Kind: Symbolize, Span: in.Span, Name: &nameTok, Symbol: &sym})
	}))
}

func breakExpr() classifier {
	return keyword("break").With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		return out(Element{Kind: Break, Span: in.Span})
	}))
}

func continueExpr() classifier {
	return keyword("continue").With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		return out(Element{Kind: Continue, Span: in.Span})
	}))
}

// Grammar returns the top-level program rule: zero or more expressions,
// loosely separated by semicolons.
func Grammar() classifier {
	stmt := expression()
	return form.Persistence(form.Sequence(stmt, form.Optional(punct(scan.PunctSemicolon))), 0, -1).With(transform(func(ctx *axo.Context, in form.Form[scan.Token, Element, Error]) (form.Form[scan.Token, Element, Error], Error, bool) {
		var items []Element
		for _, step := range in.Unwrap() {
			if el, ok := firstElement(step); ok {
				items = append(items, el)
			}
		}
		return out(Element{Kind: Delimited, Span: in.Span, Items: items})
	}))
}
