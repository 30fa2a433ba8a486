package scan

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/liagha/axo"
	"github.com/liagha/axo/form"
)

type classifier = form.Classifier[Character, Token, Error]
type order = form.Order[Character, Token, Error]
type draft = form.Form[Character, Token, Error]

func char(r rune) classifier {
	return form.Pred[Character, Token, Error](func(c Character) bool { return c.Value == r })
}

func class(pred func(rune) bool) classifier {
	return form.Pred[Character, Token, Error](func(c Character) bool { return pred(c.Value) })
}

func ignore(c classifier) classifier {
	return c.With(order{Kind: form.Ignore})
}

func collectRunes(f draft) string {
	var b strings.Builder
	for _, in := range f.Inputs() {
		b.WriteRune(in.Value)
	}
	return b.String()
}

func transform(fn func(ctx *axo.Context, in draft) (draft, Error, bool)) order {
	return order{Kind: form.Transform, Transform: fn}
}

func ok(out Token, span axo.Span) (draft, Error, bool) {
	return form.OutputForm[Character, Token, Error](out, span), Error{}, true
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
func isHexDigit(r rune) bool {
	return r == '_' || unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isBinDigit(r rune) bool { return r == '_' || r == '0' || r == '1' }
func isOctDigit(r rune) bool { return r == '_' || (r >= '0' && r <= '7') }
func isDecDigit(r rune) bool { return r == '_' || unicode.IsDigit(r) }
func isOperatorRune(r rune) bool {
	switch r {
	case '=', ':', '+', '-', '*', '/', '%', '^', '|', '&', '!', '~', '>', '<', '.':
		return true
	default:
		return false
	}
}
func isPunctuationRune(r rune) bool {
	switch r {
	case '(', ')', '{', '}', '[', ']', ',', ';':
		return true
	default:
		return false
	}
}
func isWhitespaceNonNewline(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func keywordToken(text string, span axo.Span) (Token, bool) {
	switch text {
	case "true":
		return BooleanToken(true, span), true
	case "false":
		return BooleanToken(false, span), true
	case "in":
		return OperatorToken(OpIn, span), true
	default:
		return Token{}, false
	}
}

func whitespaceClassifier() classifier {
	run := form.Persistence[Character, Token, Error](class(isWhitespaceNonNewline), 1, -1)
	return run.With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		width := len(in.Inputs())
		if width > 1 {
			return ok(IndentationToken(width, in.Span), in.Span)
		}
		return ok(PunctuationToken(PunctSpace, in.Span), in.Span)
	}))
}

func lineCommentClassifier() classifier {
	body := form.Repetition[Character, Token, Error](class(func(r rune) bool { return r != '\n' }), 0, -1)
	return form.Sequence[Character, Token, Error](ignore(char('/')), ignore(char('/')), body).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			return ok(CommentToken(collectRunes(in), in.Span), in.Span)
		}))
}

func blockCommentClassifier() classifier {
	closing := form.Sequence[Character, Token, Error](char('*'), char('/'))
	notClosing := form.Sequence[Character, Token, Error](
		ignore(form.Negate[Character, Token, Error](closing)),
		form.Any[Character, Token, Error](),
	)
	body := form.Repetition[Character, Token, Error](notClosing, 0, -1)
	closeSeq := form.Sequence[Character, Token, Error](ignore(char('*')), ignore(char('/'))).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			return ok(BooleanToken(true, in.Span), in.Span)
		}))
	closer := form.Optional[Character, Token, Error](closeSeq)
	return form.Sequence[Character, Token, Error](
		ignore(char('/')), ignore(char('*')), body, closer,
	).With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		if len(in.Children) != 2 || in.Children[1].Kind != form.Output {
			return draft{}, escapeError(Unterminated, "block comment", in.Span), false
		}
		return ok(CommentToken(collectRunes(in), in.Span), in.Span)
	}))
}

func commentClassifier() classifier {
	return form.Alternative[Character, Token, Error](lineCommentClassifier(), blockCommentClassifier())
}

func identifierClassifier() classifier {
	start := class(isIdentStart)
	rest := form.Repetition[Character, Token, Error](class(isIdentCont), 0, -1)
	return form.Sequence[Character, Token, Error](start, rest).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			text := collectRunes(in)
			if kw, matched := keywordToken(text, in.Span); matched {
				return ok(kw, in.Span)
			}
			return ok(IdentifierToken(text, in.Span), in.Span)
		}))
}

func stripUnderscores(s string) string { return strings.ReplaceAll(s, "_", "") }

func hexNumberClassifier() classifier {
	prefix := form.Sequence[Character, Token, Error](ignore(char('0')), ignore(form.Alternative[Character, Token, Error](char('x'), char('X'))))
	digits := form.Repetition[Character, Token, Error](class(isHexDigit), 1, -1)
	return form.Sequence[Character, Token, Error](prefix, digits).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			text := stripUnderscores(collectRunes(in))
			v, err := strconv.ParseInt(text, 16, 64)
			if err != nil {
				return draft{}, numberParseError(err.Error(), in.Span), false
			}
			return ok(IntegerToken(v, in.Span), in.Span)
		}))
}

func binNumberClassifier() classifier {
	prefix := form.Sequence[Character, Token, Error](ignore(char('0')), ignore(form.Alternative[Character, Token, Error](char('b'), char('B'))))
	digits := form.Repetition[Character, Token, Error](class(isBinDigit), 1, -1)
	return form.Sequence[Character, Token, Error](prefix, digits).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			text := stripUnderscores(collectRunes(in))
			v, err := strconv.ParseInt(text, 2, 64)
			if err != nil {
				return draft{}, numberParseError(err.Error(), in.Span), false
			}
			return ok(IntegerToken(v, in.Span), in.Span)
		}))
}

func octNumberClassifier() classifier {
	prefix := form.Sequence[Character, Token, Error](ignore(char('0')), ignore(form.Alternative[Character, Token, Error](char('o'), char('O'))))
	digits := form.Repetition[Character, Token, Error](class(isOctDigit), 1, -1)
	return form.Sequence[Character, Token, Error](prefix, digits).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			text := stripUnderscores(collectRunes(in))
			v, err := strconv.ParseInt(text, 8, 64)
			if err != nil {
				return draft{}, numberParseError(err.Error(), in.Span), false
			}
			return ok(IntegerToken(v, in.Span), in.Span)
		}))
}

func decimalNumberClassifier() classifier {
	digits := form.Repetition[Character, Token, Error](class(isDecDigit), 1, -1)
	fraction := form.Optional[Character, Token, Error](
		form.Sequence[Character, Token, Error](char('.'), digits),
	)
	sign := form.Optional[Character, Token, Error](form.Alternative[Character, Token, Error](char('+'), char('-')))
	exponent := form.Optional[Character, Token, Error](
		form.Sequence[Character, Token, Error](
			form.Alternative[Character, Token, Error](char('e'), char('E')),
			sign,
			digits,
		),
	)
	return form.Sequence[Character, Token, Error](digits, fraction, exponent).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			text := stripUnderscores(collectRunes(in))
			if strings.ContainsAny(text, ".eE") {
				v, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return draft{}, numberParseError(err.Error(), in.Span), false
				}
				return ok(FloatToken(v, in.Span), in.Span)
			}
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return draft{}, numberParseError(err.Error(), in.Span), false
			}
			return ok(IntegerToken(v, in.Span), in.Span)
		}))
}

func numberClassifier() classifier {
	return form.Alternative[Character, Token, Error](
		hexNumberClassifier(), binNumberClassifier(), octNumberClassifier(), decimalNumberClassifier(),
	)
}

// escapeClassifier matches a backslash escape sequence and produces the
// single rune it denotes, or a Failure from the InvalidEscape taxonomy.
func escapeClassifier() classifier {
	backslash := ignore(char('\\'))
	simple := form.Alternative[Character, Token, Error](
		char('\\'), char('"'), char('\''), char('n'), char('r'), char('t'), char('0'),
	)
	hexByte := form.Sequence[Character, Token, Error](
		ignore(char('x')),
		form.Repetition[Character, Token, Error](class(isHexDigit), 2, 2),
	)
	unicodeEscape := form.Sequence[Character, Token, Error](
		ignore(char('u')), ignore(char('{')),
		form.Repetition[Character, Token, Error](class(isHexDigit), 1, 6),
		ignore(char('}')),
	)
	body := form.Alternative[Character, Token, Error](unicodeEscape, hexByte, simple)
	return form.Sequence[Character, Token, Error](backslash, body).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			runes := in.Inputs()
			if len(runes) == 0 {
				return draft{}, escapeError(Empty, "", in.Span), false
			}
			if len(runes) == 1 {
				switch runes[0].Value {
				case '\\':
					return ok(CharacterToken('\\', in.Span), in.Span)
				case '"':
					return ok(CharacterToken('"', in.Span), in.Span)
				case '\'':
					return ok(CharacterToken('\'', in.Span), in.Span)
				case 'n':
					return ok(CharacterToken('\n', in.Span), in.Span)
				case 'r':
					return ok(CharacterToken('\r', in.Span), in.Span)
				case 't':
					return ok(CharacterToken('\t', in.Span), in.Span)
				case '0':
					return ok(CharacterToken(0, in.Span), in.Span)
				}
			}
			hex := collectRunes(in)
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return draft{}, escapeError(Overflow, hex, in.Span), false
			}
			if v > 0x10FFFF {
				return draft{}, escapeError(EscapeOutOfRange, hex, in.Span), false
			}
			if v >= 0xD800 && v <= 0xDFFF {
				return draft{}, escapeError(EscapeOutOfRange, hex, in.Span), false
			}
			return ok(CharacterToken(rune(v), in.Span), in.Span)
		}))
}

// closeMarker matches ch and, on success, rewrites to a sentinel
// Boolean token the caller can spot in the enclosing Sequence's last
// child, distinguishing "closed" from "ran off the end of input"
// (an Optional alone can't tell the two apart, since both leave no
// text behind).
func closeMarker(ch rune) classifier {
	return char(ch).With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		return ok(BooleanToken(true, in.Span), in.Span)
	}))
}

func delimitedTextClassifier(quote rune, produce func(string, axo.Span) Token, kindName string) classifier {
	bodyItem := form.Alternative[Character, Token, Error](
		escapeClassifier(),
		class(func(r rune) bool { return r != quote && r != '\\' }),
	)
	body := form.Repetition[Character, Token, Error](bodyItem, 0, -1)
	open := ignore(char(quote))
	closer := form.Optional[Character, Token, Error](closeMarker(quote))
	return form.Sequence[Character, Token, Error](open, body, closer).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			if len(in.Children) != 2 || in.Children[1].Kind != form.Output {
				return draft{}, escapeError(Unterminated, kindName, in.Span), false
			}
			var b strings.Builder
			for _, leaf := range in.Children[0].Expand() {
				switch leaf.Kind {
				case form.Input:
					b.WriteRune(leaf.Input.Value)
				case form.Output:
					b.WriteRune(leaf.Output.AsCharacter)
				case form.Failure:
					return draft{}, leaf.Error, false
				}
			}
			return ok(produce(b.String(), in.Span), in.Span)
		}))
}

func stringClassifier() classifier {
	return delimitedTextClassifier('"', StringToken, "string literal")
}

func backtickClassifier() classifier {
	return delimitedTextClassifier('`', StringToken, "backtick string")
}

func charLiteralClassifier() classifier {
	inner := form.Alternative[Character, Token, Error](
		escapeClassifier(),
		form.Pred[Character, Token, Error](func(c Character) bool { return c.Value != '\'' && c.Value != '\\' }),
	)
	open := ignore(char('\''))
	closer := form.Optional[Character, Token, Error](closeMarker('\''))
	return form.Sequence[Character, Token, Error](open, inner, closer).
		With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
			if len(in.Children) != 2 || in.Children[1].Kind != form.Output {
				return draft{}, escapeError(Unterminated, "character literal", in.Span), false
			}
			for _, leaf := range in.Children[0].Expand() {
				if leaf.Kind == form.Failure {
					return draft{}, leaf.Error, false
				}
			}
			var r rune
			for _, leaf := range in.Children[0].Expand() {
				if leaf.Kind == form.Input {
					r = leaf.Input.Value
				} else if leaf.Kind == form.Output {
					r = leaf.Output.AsCharacter
				}
			}
			return ok(CharacterToken(r, in.Span), in.Span)
		}))
}

func operatorClassifier() classifier {
	run := form.Persistence[Character, Token, Error](class(isOperatorRune), 1, -1)
	return run.With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		chars := in.Inputs()
		tokens, matched, bad := splitOperators(chars)
		if !matched {
			return draft{}, unexpectedCharacter(bad, in.Span), false
		}
		if len(tokens) == 1 {
			return ok(tokens[0], tokens[0].Span)
		}
		children := make([]draft, len(tokens))
		for i, t := range tokens {
			children[i] = form.OutputForm[Character, Token, Error](t, t.Span)
		}
		return form.MultipleForm[Character, Token, Error](children, in.Span), Error{}, true
	}))
}

// splitOperators walks a greedily-captured run of operator runes and
// re-splits it into the longest matching operator spelling at each
// position, since the captured run may span more than one operator
// when the source has no separating whitespace (e.g. "a==-b").
func splitOperators(chars []Character) (tokens []Token, matched bool, bad rune) {
	i := 0
	for i < len(chars) {
		best := -1
		var kind OperatorKind
		for _, sp := range operatorSpellings {
			n := len(sp.text)
			if i+n > len(chars) {
				continue
			}
			candidate := make([]rune, n)
			for j := 0; j < n; j++ {
				candidate[j] = chars[i+j].Value
			}
			if string(candidate) == sp.text && n > best {
				best = n
				kind = sp.kind
			}
		}
		if best <= 0 {
			return tokens, false, chars[i].Value
		}
		span := axo.FromSpanned(chars[i : i+best])
		tokens = append(tokens, OperatorToken(kind, span))
		i += best
	}
	return tokens, true, 0
}

func punctuationClassifier() classifier {
	return class(isPunctuationRune).With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		r := rune(0)
		if len(in.Inputs()) > 0 {
			r = in.Inputs()[0].Value
		}
		var kind PunctuationKind
		switch r {
		case '(':
			kind = PunctLParen
		case ')':
			kind = PunctRParen
		case '{':
			kind = PunctLBrace
		case '}':
			kind = PunctRBrace
		case '[':
			kind = PunctLBracket
		case ']':
			kind = PunctRBracket
		case ',':
			kind = PunctComma
		case ';':
			kind = PunctSemicolon
		}
		return ok(PunctuationToken(kind, in.Span), in.Span)
	}))
}

func newlineClassifier() classifier {
	return char('\n').With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		return ok(PunctuationToken(PunctNewline, in.Span), in.Span)
	}))
}

func fallbackClassifier() classifier {
	return form.Any[Character, Token, Error]().With(transform(func(ctx *axo.Context, in draft) (draft, Error, bool) {
		r := rune(0)
		if len(in.Inputs()) > 0 {
			r = in.Inputs()[0].Value
		}
		return draft{}, unexpectedCharacter(r, in.Span), false
	}))
}

// Grammar builds the scanner's top-level classifier: a Persistence of
// an Alternative over every token family, min=0 so an unrecognized
// character doesn't abort the whole scan.
func Grammar() classifier {
	return form.Persistence[Character, Token, Error](
		form.Alternative[Character, Token, Error](
			whitespaceClassifier(),
			newlineClassifier(),
			commentClassifier(),
			identifierClassifier(),
			numberClassifier(),
			stringClassifier(),
			backtickClassifier(),
			charLiteralClassifier(),
			operatorClassifier(),
			punctuationClassifier(),
			fallbackClassifier(),
		),
		0, -1,
	)
}
