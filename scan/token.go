package scan

import (
	"fmt"
	"math"

	"github.com/liagha/axo"
)

// OperatorKind enumerates every operator symbol the scanner recognizes,
// one entry per surface spelling the operator grammar matches.
type OperatorKind int

const (
	OpAssign OperatorKind = iota
	OpColon
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpCaret
	OpPipe
	OpAmp
	OpBang
	OpTilde
	OpGreater
	OpLess
	OpDot
	OpRange
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpAnd
	OpOr
	OpShiftLeft
	OpShiftRight
	OpArrow
	OpIn
)

var operatorSpellings = []struct {
	text string
	kind OperatorKind
}{
	// Longest-match first within each shared prefix.
	{"<<", OpShiftLeft}, {">>", OpShiftRight},
	{"<=", OpLessEqual}, {">=", OpGreaterEqual},
	{"==", OpEqual}, {"!=", OpNotEqual},
	{"&&", OpAnd}, {"||", OpOr},
	{"->", OpArrow}, {"..", OpRange},
	{"=", OpAssign}, {":", OpColon}, {"+", OpPlus}, {"-", OpMinus},
	{"*", OpStar}, {"/", OpSlash}, {"%", OpPercent}, {"^", OpCaret},
	{"|", OpPipe}, {"&", OpAmp}, {"!", OpBang}, {"~", OpTilde},
	{">", OpGreater}, {"<", OpLess}, {".", OpDot},
}

func (k OperatorKind) String() string {
	for _, s := range operatorSpellings {
		if s.kind == k {
			return s.text
		}
	}
	if k == OpIn {
		return "in"
	}
	return "?"
}

// PunctuationKind enumerates delimiter and layout marker tokens.
type PunctuationKind int

const (
	PunctLParen PunctuationKind = iota
	PunctRParen
	PunctLBrace
	PunctRBrace
	PunctLBracket
	PunctRBracket
	PunctComma
	PunctSemicolon
	PunctSpace
	PunctNewline
	PunctIndentation
)

func (k PunctuationKind) String() string {
	switch k {
	case PunctLParen:
		return "("
	case PunctRParen:
		return ")"
	case PunctLBrace:
		return "{"
	case PunctRBrace:
		return "}"
	case PunctLBracket:
		return "["
	case PunctRBracket:
		return "]"
	case PunctComma:
		return ","
	case PunctSemicolon:
		return ";"
	case PunctSpace:
		return " "
	case PunctNewline:
		return "\\n"
	case PunctIndentation:
		return "indent"
	default:
		return "?"
	}
}

// Noise reports whether this punctuation is layout the parser's
// strainer pass discards.
func (k PunctuationKind) Noise() bool {
	switch k {
	case PunctSpace, PunctNewline, PunctIndentation, PunctSemicolon:
		return true
	default:
		return false
	}
}

// Kind tags which of Token's payload fields is live.
type Kind int

const (
	Integer Kind = iota
	Float
	Boolean
	String
	CharacterKind
	Identifier
	Operator
	Punctuation
	Comment
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case CharacterKind:
		return "character"
	case Identifier:
		return "identifier"
	case Operator:
		return "operator"
	case Punctuation:
		return "punctuation"
	case Comment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is the scanner's output alphabet: a closed tagged union over
// the payload Kind names, laid out as one struct (rather than an
// interface per variant) so Token stays comparable and can serve as a
// Classifier literal.
type Token struct {
	Kind Kind
	Span axo.Span

	AsInteger     int64
	AsFloat       float64
	AsBoolean     bool
	AsString      string
	AsCharacter   rune
	AsOperator    OperatorKind
	AsPunctuation PunctuationKind
	Width         int // PunctIndentation's column width
}

func (t Token) GetSpan() axo.Span { return t.Span }

func IntegerToken(v int64, span axo.Span) Token {
	return Token{Kind: Integer, AsInteger: v, Span: span}
}

func FloatToken(v float64, span axo.Span) Token {
	return Token{Kind: Float, AsFloat: v, Span: span}
}

func BooleanToken(v bool, span axo.Span) Token {
	return Token{Kind: Boolean, AsBoolean: v, Span: span}
}

func StringToken(v string, span axo.Span) Token {
	return Token{Kind: String, AsString: v, Span: span}
}

func CharacterToken(v rune, span axo.Span) Token {
	return Token{Kind: CharacterKind, AsCharacter: v, Span: span}
}

func IdentifierToken(v string, span axo.Span) Token {
	return Token{Kind: Identifier, AsString: v, Span: span}
}

func OperatorToken(v OperatorKind, span axo.Span) Token {
	return Token{Kind: Operator, AsOperator: v, Span: span}
}

func PunctuationToken(v PunctuationKind, span axo.Span) Token {
	return Token{Kind: Punctuation, AsPunctuation: v, Span: span}
}

func IndentationToken(width int, span axo.Span) Token {
	return Token{Kind: Punctuation, AsPunctuation: PunctIndentation, Width: width, Span: span}
}

func CommentToken(body string, span axo.Span) Token {
	return Token{Kind: Comment, AsString: body, Span: span}
}

// Noise reports whether the parser's strainer pass discards this token
// (whitespace, indentation, newline-as-punctuation, semicolons, and
// comments).
func (t Token) Noise() bool {
	if t.Kind == Comment {
		return true
	}
	return t.Kind == Punctuation && t.AsPunctuation.Noise()
}

// Equal compares two tokens with NaN-normalizing Float semantics:
// Float(NaN) equals Float(NaN), unlike Go's native == on float64.
// Everything else defers to struct equality.
func Equal(a, b Token) bool {
	if a.Kind == Float && b.Kind == Float {
		if math.IsNaN(a.AsFloat) && math.IsNaN(b.AsFloat) {
			return a.Span == b.Span
		}
	}
	return a == b
}

func (t Token) String() string {
	switch t.Kind {
	case Integer:
		return fmt.Sprintf("%d", t.AsInteger)
	case Float:
		return fmt.Sprintf("%g", t.AsFloat)
	case Boolean:
		return fmt.Sprintf("%t", t.AsBoolean)
	case String:
		return fmt.Sprintf("%q", t.AsString)
	case CharacterKind:
		return fmt.Sprintf("%q", t.AsCharacter)
	case Identifier:
		return t.AsString
	case Operator:
		return t.AsOperator.String()
	case Punctuation:
		return t.AsPunctuation.String()
	case Comment:
		return "//" + t.AsString
	default:
		return "?"
	}
}
