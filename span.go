package axo

import "fmt"

// Spanned is implemented by anything that occupies a range of source
// positions: characters, tokens, elements, and symbols.
type Spanned interface {
	GetSpan() Span
}

// Span is an ordered pair of positions sharing one Location.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span, panicking if start and end don't share a
// Location or if start sorts after end.
func NewSpan(start, end Position) Span {
	cmp, ok := start.Compare(end)
	if !ok {
		panic("axo: span start and end in different locations")
	}
	if cmp > 0 {
		panic("axo: span start after end")
	}
	return Span{Start: start, End: end}
}

// ZeroSpan is the span used for synthesized, recovered placeholder
// nodes that don't correspond to any source text.
func ZeroSpan() Span {
	p := NewPosition(VoidLocation())
	return Span{Start: p, End: p}
}

func (s Span) GetSpan() Span { return s }

// Contains reports whether pos falls within [Start, End].
func (s Span) Contains(pos Position) bool {
	lo, ok := s.Start.Compare(pos)
	if !ok {
		return false
	}
	hi, ok := pos.Compare(s.End)
	if !ok {
		return false
	}
	return lo <= 0 && hi <= 0
}

// Overlaps reports whether s and o share at least one position.
func (s Span) Overlaps(o Span) bool {
	startCmp, ok := s.Start.Compare(o.End)
	if !ok {
		return false
	}
	endCmp, ok := o.Start.Compare(s.End)
	if !ok {
		return false
	}
	return startCmp <= 0 && endCmp <= 0
}

// Merge returns the smallest span covering both s and o. It panics if
// the two spans belong to different locations.
func (s Span) Merge(o Span) Span {
	if !s.Start.Loc.equal(o.Start.Loc) {
		panic("axo: cannot merge spans across locations")
	}
	start := s.Start
	if cmp, _ := o.Start.Compare(start); cmp < 0 {
		start = o.Start
	}
	end := s.End
	if cmp, _ := o.End.Compare(end); cmp > 0 {
		end = o.End
	}
	return Span{Start: start, End: end}
}

// FromSpanned returns the span covering every item in items, from the
// first item's start to the last item's end. Panics if items is empty.
func FromSpanned[T Spanned](items []T) Span {
	if len(items) == 0 {
		panic("axo: FromSpanned of empty slice")
	}
	span := items[0].GetSpan()
	for _, item := range items[1:] {
		span = span.Merge(item.GetSpan())
	}
	return span
}

// String renders the span the way diagnostics do: collapsing a
// zero-width span to a single point, a same-line range to
// "line:colA..colB", and a cross-line range to the full "l:c..l:c" form.
func (s Span) String() string {
	if s.Start == s.End {
		return s.Start.String()
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d..%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d..%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}
