package form

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/cursor"
)

// Former drives a Classifier tree against a Cursor, producing a Form and
// running every node's attached Order along the way. The scanner builds
// one Former and the parser two (strainer pass, then grammar), each over
// its stage's own item alphabet: a single interpreter over the Classifier data
// tree in place of hand-written recursive-descent functions.
type Former[I comparable, O, E any] struct {
	Cursor  *cursor.Cursor[I]
	Context *axo.Context

	// removeFn is invoked by a Remove order with the index that should
	// be deleted from the cursor's backing slice. Only set by the
	// strainer pass; nil elsewhere, since nothing else is allowed to
	// mutate the cursor's backing slice mid-match.
	removeFn func(index int)
}

// New builds a Former over cur and ctx.
func New[I comparable, O, E any](cur *cursor.Cursor[I], ctx *axo.Context) *Former[I, O, E] {
	return &Former[I, O, E]{Cursor: cur, Context: ctx}
}

// AllowRemove enables Order.Remove for this Former, wiring it to delete
// the just-consumed item from the underlying cursor. Only the strainer
// pass calls this.
func (f *Former[I, O, E]) AllowRemove() {
	f.removeFn = func(index int) { f.Cursor.Remove(index) }
}

// Form matches c against the cursor from its current position and
// returns the resulting Form, after running c's full Order tree.
func (f *Former[I, O, E]) Form(c Classifier[I, O, E]) Form[I, O, E] {
	return f.match(&c).Form
}

func (f *Former[I, O, E]) span(start axo.Position) axo.Span {
	end := f.Cursor.Position()
	if cmp, ok := start.Compare(end); ok && cmp > 0 {
		return axo.NewSpan(start, start)
	}
	return axo.NewSpan(start, end)
}

// match dispatches on c.Kind, builds the Draft for this node, then runs
// c.Order against it before returning.
func (f *Former[I, O, E]) match(c *Classifier[I, O, E]) Draft[I, O, E] {
	start := f.Cursor.Position()
	marker := f.Cursor.Index()

	var draft Draft[I, O, E]
	switch c.Kind {
	case LiteralKind:
		draft = f.matchLiteral(c, start, marker)
	case PredicateKind:
		draft = f.matchPredicate(c, start, marker)
	case AnythingKind:
		draft = f.matchAnything(start, marker)
	case NegateKind:
		draft = f.matchNegate(c, start, marker)
	case SequenceKind:
		draft = f.matchSequence(c, start, marker)
	case AlternativeKind:
		draft = f.matchAlternative(c, start, marker)
	case ChoiceKind:
		draft = f.matchChoice(c, start, marker)
	case OptionalKind:
		draft = f.matchOptional(c, start, marker)
	case RepetitionKind:
		draft = f.matchRepeat(c, start, marker, false)
	case PersistenceKind:
		draft = f.matchRepeat(c, start, marker, true)
	case RequiredKind:
		draft = f.matchRequired(c, start, marker)
	case DeferredKind:
		if f.Context.EnterRecursion() {
			f.Context.ExitRecursion()
			draft = Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: PanickedAlign}
			break
		}
		resolved := c.Resolve()
		draft = f.match(&resolved)
		f.Context.ExitRecursion()
	default:
		draft = Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: BlankAlign}
	}

	var removeAt func()
	if f.removeFn != nil {
		idx := draft.Marker
		removeAt = func() { f.removeFn(idx) }
	}
	c.Order.Apply(f.Context, &draft, removeAt)
	return draft
}

func (f *Former[I, O, E]) matchLiteral(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	item, ok := f.Cursor.Peek()
	if !ok || item != c.Literal {
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	f.Cursor.Advance()
	return Draft[I, O, E]{Form: InputForm[I, O, E](item, f.span(start)), Marker: marker, Position: start, Alignment: AlignedAlign}
}

func (f *Former[I, O, E]) matchPredicate(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	item, ok := f.Cursor.Peek()
	if !ok || c.Predicate == nil || !c.Predicate(item) {
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	f.Cursor.Advance()
	return Draft[I, O, E]{Form: InputForm[I, O, E](item, f.span(start)), Marker: marker, Position: start, Alignment: AlignedAlign}
}

func (f *Former[I, O, E]) matchAnything(start axo.Position, marker int) Draft[I, O, E] {
	item, ok := f.Cursor.Peek()
	if !ok {
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	f.Cursor.Advance()
	return Draft[I, O, E]{Form: InputForm[I, O, E](item, f.span(start)), Marker: marker, Position: start, Alignment: AlignedAlign}
}

func (f *Former[I, O, E]) matchNegate(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	snap := f.Cursor.Mark()
	inner := f.match(c.Child)
	f.Cursor.Restore(snap)
	if inner.Alignment.Succeeded() {
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: BlankAlign}
}

func (f *Former[I, O, E]) matchSequence(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	snap := f.Cursor.Mark()
	children := make([]Form[I, O, E], 0, len(c.Children))
	for i := range c.Children {
		child := f.match(&c.Children[i])
		if !child.Alignment.Succeeded() {
			f.Cursor.Restore(snap)
			failForm := child.Form
			if failForm.Kind != Failure {
				failForm = BlankForm[I, O, E](f.span(start))
			}
			return Draft[I, O, E]{Form: failForm, Marker: marker, Position: start, Alignment: FailedAlign}
		}
		if child.Alignment != IgnoredAlign {
			children = append(children, child.Form)
		}
	}
	return Draft[I, O, E]{Form: MultipleForm[I, O, E](children, f.span(start)), Marker: marker, Position: start, Alignment: AlignedAlign}
}

func (f *Former[I, O, E]) matchAlternative(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	var lastFailure Form[I, O, E]
	sawFailure := false
	for i := range c.Children {
		snap := f.Cursor.Mark()
		child := f.match(&c.Children[i])
		if child.Alignment.Succeeded() {
			return Draft[I, O, E]{Form: child.Form, Marker: marker, Position: start, Alignment: child.Alignment}
		}
		if child.Form.Kind == Failure {
			lastFailure = child.Form
			sawFailure = true
		}
		f.Cursor.Restore(snap)
	}
	if sawFailure {
		return Draft[I, O, E]{Form: lastFailure, Marker: marker, Position: start, Alignment: FailedAlign}
	}
	return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
}

func (f *Former[I, O, E]) matchChoice(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	type candidate struct {
		draft    Draft[I, O, E]
		end      cursor.Snapshot
		priority int
		index    int
	}
	var candidates []candidate
	for i := range c.Children {
		snap := f.Cursor.Mark()
		child := f.match(&c.Children[i])
		end := f.Cursor.Mark()
		f.Cursor.Restore(snap)
		if child.Alignment.Succeeded() {
			weight := 0
			if i < len(c.Priority) {
				weight = c.Priority[i]
			}
			candidates = append(candidates, candidate{draft: child, end: end, priority: weight, index: i})
		}
	}
	if len(candidates) == 0 {
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.priority > best.priority {
			best = cand
		}
	}
	f.Cursor.Restore(best.end)
	return Draft[I, O, E]{Form: best.draft.Form, Marker: marker, Position: start, Alignment: best.draft.Alignment}
}

func (f *Former[I, O, E]) matchOptional(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	snap := f.Cursor.Mark()
	child := f.match(c.Child)
	if child.Alignment.Succeeded() {
		return Draft[I, O, E]{Form: child.Form, Marker: marker, Position: start, Alignment: child.Alignment}
	}
	f.Cursor.Restore(snap)
	return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: BlankAlign}
}

// matchRepeat backs both Repetition and Persistence: the two coincide in
// this driver. Once count reaches min, a later failing attempt simply
// stops the loop and the accumulated matches stand (the failing attempt
// restores only its own, already-failed, consumption) — so nothing
// "behind" the min threshold is ever rewound once reached, which is
// exactly Persistence's commit contract. When fewer than min attempts
// succeed, both Kinds fully rewind to the pre-loop snapshot and fail.
func (f *Former[I, O, E]) matchRepeat(c *Classifier[I, O, E], start axo.Position, marker int, persisting bool) Draft[I, O, E] {
	_ = persisting
	loopStart := f.Cursor.Mark()
	var matches []Form[I, O, E]
	count := 0
	for c.Max < 0 || count < c.Max {
		iterStart := f.Cursor.Mark()
		child := f.match(c.Child)
		if !child.Alignment.Succeeded() {
			f.Cursor.Restore(iterStart)
			break
		}
		if child.Alignment != IgnoredAlign {
			matches = append(matches, child.Form)
		}
		count++
		if f.Cursor.Mark() == iterStart {
			// Zero-width match: stop to guarantee forward progress.
			break
		}
	}
	if count < c.Min {
		f.Cursor.Restore(loopStart)
		return Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	}
	return Draft[I, O, E]{Form: MultipleForm[I, O, E](matches, f.span(start)), Marker: marker, Position: start, Alignment: AlignedAlign}
}

func (f *Former[I, O, E]) matchRequired(c *Classifier[I, O, E], start axo.Position, marker int) Draft[I, O, E] {
	snap := f.Cursor.Mark()
	child := f.match(c.Child)
	if child.Alignment.Succeeded() {
		return Draft[I, O, E]{Form: child.Form, Marker: marker, Position: start, Alignment: child.Alignment}
	}
	f.Cursor.Restore(snap)
	draft := Draft[I, O, E]{Form: BlankForm[I, O, E](f.span(start)), Marker: marker, Position: start, Alignment: FailedAlign}
	if c.Fallback != nil {
		c.Fallback.Apply(f.Context, &draft, nil)
	}
	return draft
}
