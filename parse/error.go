package parse

import (
	"fmt"

	"github.com/liagha/axo"
	"github.com/liagha/axo/scan"
)

// ErrorKind enumerates the parser's diagnosable failure shapes. The
// grammar builds them in Required fallbacks (the parser is the first
// stage where Order's Fail kind is exercised on purpose) and in
// transform failures; Parse itself builds the UnexpectedToken it
// reports for leftover tokens. No code path builds a RecursionLimit
// error.
type ErrorKind int

const (
	ExpectedCondition ErrorKind = iota
	ExpectedBody
	MissingSeparator
	UnclosedDelimiter
	UnexpectedPunctuation
	UnexpectedToken
	RecursionLimit
)

func (k ErrorKind) String() string {
	switch k {
	case ExpectedCondition:
		return "expected condition"
	case ExpectedBody:
		return "expected body"
	case MissingSeparator:
		return "missing separator"
	case UnclosedDelimiter:
		return "unclosed delimiter"
	case UnexpectedPunctuation:
		return "unexpected punctuation"
	case UnexpectedToken:
		return "unexpected token"
	default:
		return "recursion limit exceeded"
	}
}

type Error struct {
	Kind  ErrorKind
	Span  axo.Span
	Found *scan.Token
	Want  string
	Hints []string
}

func (e Error) GetSpan() axo.Span { return e.Span }
func (e Error) GetHints() []string { return e.Hints }

func (e Error) Error() string {
	if e.Found == nil {
		return fmt.Sprintf("%s", e.Kind)
	}
	if e.Want != "" {
		return fmt.Sprintf("%s: expected %s, found %s", e.Kind, e.Want, e.Found.Kind)
	}
	return fmt.Sprintf("%s: found %s", e.Kind, e.Found.Kind)
}

func unexpectedToken(tok scan.Token, want string) Error {
	t := tok
	return Error{Kind: UnexpectedToken, Span: tok.Span, Found: &t, Want: want}
}

func unclosedDelimiter(open scan.Token) Error {
	o := open
	return Error{
		Kind:  UnclosedDelimiter,
		Span:  open.Span,
		Found: &o,
		Hints: []string{"delimiter opened here is never closed"},
	}
}

func missingSeparator(span axo.Span, want string) Error {
	return Error{Kind: MissingSeparator, Span: span, Want: want}
}

func expectedCondition(span axo.Span) Error {
	return Error{Kind: ExpectedCondition, Span: span, Want: "condition expression"}
}

func expectedBody(span axo.Span) Error {
	return Error{Kind: ExpectedBody, Span: span, Want: "block body"}
}

func recursionLimit(span axo.Span) Error {
	return Error{Kind: RecursionLimit, Span: span, Hints: []string{"reduce nesting depth"}}
}
