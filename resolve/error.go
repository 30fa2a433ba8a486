package resolve

import (
	"fmt"

	"github.com/liagha/axo"
)

// ErrorKind enumerates the resolver's diagnosable failures.
type ErrorKind int

const (
	UndefinedSymbol ErrorKind = iota
	MissingMember
	UndefinedMember
	TypeMismatch
	ParameterMismatch
	FieldCountMismatch
	AnalyzeError
	CheckError
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "undefined symbol"
	case MissingMember:
		return "missing member"
	case UndefinedMember:
		return "undefined member"
	case TypeMismatch:
		return "type mismatch"
	case ParameterMismatch:
		return "parameter mismatch"
	case FieldCountMismatch:
		return "field count mismatch"
	case AnalyzeError:
		return "analysis error"
	default:
		return "check error"
	}
}

// Error is the resolver's diagnostic type, carrying the query name and
// "did you mean" suggestion undefined-symbol lookups compute.
type Error struct {
	Kind       ErrorKind
	Span       axo.Span
	Query      string
	Suggestion string
	Want, Got  Type
	Hints      []string
}

func (e Error) GetSpan() axo.Span   { return e.Span }
func (e Error) GetHints() []string  { return e.Hints }

func (e Error) Error() string {
	switch e.Kind {
	case UndefinedSymbol:
		if e.Suggestion != "" {
			return fmt.Sprintf("undefined symbol %q (did you mean %q?)", e.Query, e.Suggestion)
		}
		return fmt.Sprintf("undefined symbol %q", e.Query)
	case UndefinedMember, MissingMember:
		return fmt.Sprintf("%s: %q", e.Kind, e.Query)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, found %s", e.Want, e.Got)
	case ParameterMismatch:
		return fmt.Sprintf("parameter mismatch: expected %s, found %s", e.Want, e.Got)
	case FieldCountMismatch:
		return fmt.Sprintf("field count mismatch for %q", e.Query)
	default:
		return e.Kind.String()
	}
}

func undefinedSymbol(query string, suggestion string, span axo.Span) Error {
	hints := []string(nil)
	if suggestion != "" {
		hints = []string{fmt.Sprintf("a similarly named symbol %q is in scope", suggestion)}
	}
	return Error{Kind: UndefinedSymbol, Span: span, Query: query, Suggestion: suggestion, Hints: hints}
}

func undefinedMember(query string, span axo.Span) Error {
	return Error{Kind: UndefinedMember, Span: span, Query: query}
}

func typeMismatch(want, got Type, span axo.Span) Error {
	return Error{Kind: TypeMismatch, Span: span, Want: want, Got: got}
}

func parameterMismatch(want, got Type, span axo.Span) Error {
	return Error{Kind: ParameterMismatch, Span: span, Want: want, Got: got}
}

func fieldCountMismatch(query string, span axo.Span) Error {
	return Error{Kind: FieldCountMismatch, Span: span, Query: query}
}
