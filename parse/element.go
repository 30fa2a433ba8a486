// Package parse implements the parser stage: a form.Classifier tree
// with I=scan.Token, O=Element, E=Error, driven by a form.Former over
// a cursor.Cursor[scan.Token]. Symbol and Scope live here rather than
// in package resolve, keeping the resolver a consumer of parser-owned
// data rather than a second, competing scope model — this also avoids
// a Go import cycle between parse and resolve. Element is one closed
// tagged union rather than an interface per node kind.
package parse

import "github.com/liagha/axo/scan"
import "github.com/liagha/axo"

// ElementKind tags which of Element's payload fields is live.
type ElementKind int

const (
	Literal ElementKind = iota
	Delimited
	Binary
	Unary
	Closure
	Index
	Invoke
	Access
	Construct
	Conditional
	While
	Cycle
	Label
	Assign
	Symbolize
	Return
	Break
	Continue
	Blank
)

func (k ElementKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Delimited:
		return "delimited"
	case Binary:
		return "binary"
	case Unary:
		return "unary"
	case Closure:
		return "closure"
	case Index:
		return "index"
	case Invoke:
		return "invoke"
	case Access:
		return "access"
	case Construct:
		return "construct"
	case Conditional:
		return "conditional"
	case While:
		return "while"
	case Cycle:
		return "cycle"
	case Label:
		return "label"
	case Assign:
		return "assign"
	case Symbolize:
		return "symbolize"
	case Return:
		return "return"
	case Break:
		return "break"
	case Continue:
		return "continue"
	default:
		return "blank"
	}
}

// CycleKind distinguishes the three loop shapes a Cycle element covers.
type CycleKind int

const (
	CycleWhile CycleKind = iota
	CycleLoop
	CycleFor
)

// Element is the parser's output alphabet: a closed tagged union over
// every syntax shape the grammar builds. Pointer fields stand in for an
// optional or recursive child; the Items slice covers Delimited's body
// and Construct/Invoke/Index's argument lists.
type Element struct {
	Kind ElementKind
	Span axo.Span

	Token *scan.Token // Literal's token

	Start, End *scan.Token // Delimited's bracketing tokens
	Items      []Element   // Delimited body, Invoke/Index/Construct args
	Separator  *scan.Token

	Op                  *scan.Token // Binary/Unary/Assign's operator token
	Left, Right         *Element   // Binary operands
	Operand             *Element   // Unary operand
	Postfix             bool

	Params []Symbol // Closure/Method parameter symbols
	Body   *Element // Closure/Method/Conditional/Cycle body

	Target *Element // Index/Invoke/Access/Construct/Assign target
	Member *scan.Token

	Condition *Element // Conditional/While's test
	Then      *Element
	Else      *Element

	CycleKind CycleKind
	Pattern   *Element // for-loop binding pattern
	Iterable  *Element

	Name   *scan.Token // Label's name; a named Symbolize's declared name
	Target2 *Element   // Label's labeled element (avoids clashing with Target above)

	Value *Element // Assign's rhs, Return's operand

	Symbol *Symbol // Symbolize's installed symbol
}

func (e Element) GetSpan() axo.Span { return e.Span }

func BlankElement(span axo.Span) Element {
	return Element{Kind: Blank, Span: span}
}
