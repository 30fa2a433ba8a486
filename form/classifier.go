package form

import "github.com/liagha/axo"

// ClassifierKind tags the shape of a grammar node.
type ClassifierKind int

const (
	LiteralKind ClassifierKind = iota
	PredicateKind
	AnythingKind
	NegateKind
	SequenceKind
	AlternativeKind
	ChoiceKind
	OptionalKind
	RepetitionKind
	PersistenceKind
	RequiredKind
	DeferredKind
)

// Classifier is the grammar node type the form engine matches against a
// cursor: a closed tagged union (one Kind plus the fields that Kind
// uses) rather than an interface per node shape, so a grammar table can
// be built out of value literals instead of a forest of small types.
type Classifier[I comparable, O, E any] struct {
	Kind ClassifierKind

	// Literal / Predicate: match exactly one item.
	Literal   I
	Predicate func(I) bool

	// Negate / Optional / Repetition / Persistence / Required: single child.
	Child *Classifier[I, O, E]

	// Sequence / Alternative / Choice: many children.
	Children []Classifier[I, O, E]

	// Choice: one priority weight per entry in Children. Every
	// successful child is considered; the highest-priority match wins,
	// ties broken by earliest declaration index.
	Priority []int

	// Repetition / Persistence bounds. Max < 0 means unbounded.
	Min, Max int

	// Required: fallback order run (against a synthesized Blank draft at
	// the current position) when Child fails to match.
	Fallback *Order[I, O, E]

	// Deferred: built lazily, breaking initialization cycles in
	// self-referential grammars (e.g. an expression rule that contains
	// itself).
	Resolve func() Classifier[I, O, E]

	// Order runs against the Draft this node produces, after the match
	// itself is decided.
	Order Order[I, O, E]
}

// Helper constructors. These exist so grammar files (scan, parse) read
// as a declarative table rather than repeated struct literals.

func Lit[I comparable, O, E any](item I) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: LiteralKind, Literal: item}
}

func Pred[I comparable, O, E any](p func(I) bool) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: PredicateKind, Predicate: p}
}

func Any[I comparable, O, E any]() Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: AnythingKind}
}

func Negate[I comparable, O, E any](c Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: NegateKind, Child: &c}
}

func Sequence[I comparable, O, E any](children ...Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: SequenceKind, Children: children}
}

func Alternative[I comparable, O, E any](children ...Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: AlternativeKind, Children: children}
}

func Choice[I comparable, O, E any](priority []int, children ...Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: ChoiceKind, Children: children, Priority: priority}
}

func Optional[I comparable, O, E any](c Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: OptionalKind, Child: &c}
}

func Repetition[I comparable, O, E any](c Classifier[I, O, E], min, max int) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: RepetitionKind, Child: &c, Min: min, Max: max}
}

func Persistence[I comparable, O, E any](c Classifier[I, O, E], min, max int) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: PersistenceKind, Child: &c, Min: min, Max: max}
}

func Required[I comparable, O, E any](c Classifier[I, O, E], fallback Order[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: RequiredKind, Child: &c, Fallback: &fallback}
}

func Deferred[I comparable, O, E any](resolve func() Classifier[I, O, E]) Classifier[I, O, E] {
	return Classifier[I, O, E]{Kind: DeferredKind, Resolve: resolve}
}

// With attaches an Order to a classifier node, returning the modified
// copy (classifiers are small value types, so this reads naturally in a
// table: Lit(x).With(Ignore())).
func (c Classifier[I, O, E]) With(o Order[I, O, E]) Classifier[I, O, E] {
	c.Order = o
	return c
}

// Alignment is the outcome a Draft settles into once its classifier has
// been matched.
type Alignment int

const (
	AlignedAlign Alignment = iota
	FailedAlign
	BlankAlign
	IgnoredAlign
	PanickedAlign
)

func (a Alignment) String() string {
	switch a {
	case FailedAlign:
		return "failed"
	case BlankAlign:
		return "blank"
	case IgnoredAlign:
		return "ignored"
	case PanickedAlign:
		return "panicked"
	default:
		return "aligned"
	}
}

// Succeeded reports whether a is a usable outcome for an enclosing
// combinator (aligned, blank, or ignored all count; failed/panicked do
// not).
func (a Alignment) Succeeded() bool {
	return a == AlignedAlign || a == BlankAlign || a == IgnoredAlign
}

// Draft is the in-progress record the Former threads through a single
// classifier node's match: where it started, what it produced, and how
// it settled.
type Draft[I, O, E any] struct {
	Form      Form[I, O, E]
	Marker    int
	Position  axo.Position
	Alignment Alignment
}
