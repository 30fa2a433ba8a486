package form

import "github.com/liagha/axo"

// OrderKind tags the effect an Order applies to a freshly matched Draft.
type OrderKind int

const (
	// None is the zero value: no effect, the draft passes through as-is.
	None OrderKind = iota
	Transform
	Capture
	Fail
	Ignore
	Skip
	Remove
	Pardon
	Trigger
	Multi
	Perform
	Tweak
)

// Order is the effect attached to a Classifier node, run against the
// Draft the node just produced. Modeled as a closed tagged union
// (struct + Kind tag) rather than an interface hierarchy, so a Former
// can switch on Kind without a type assertion per case.
type Order[I, O, E any] struct {
	Kind OrderKind

	// Transform remaps a successfully aligned form into another; ok=false
	// turns the draft into a Failure carrying the returned error.
	Transform func(ctx *axo.Context, in Form[I, O, E]) (out Form[I, O, E], failure E, ok bool)

	// CaptureName stashes the draft's form under this name in
	// ctx.Captures, in addition to letting it through unchanged.
	CaptureName string

	// FailWith builds the error value for Fail and for a Required node's
	// fallback.
	FailWith func(ctx *axo.Context, in Form[I, O, E]) E

	// Found and Missing are run depending on whether the node's
	// classifier aligned or not; exactly one fires.
	Found   *Order[I, O, E]
	Missing *Order[I, O, E]

	// Steps runs each sub-order in sequence against the same draft, for
	// Multi.
	Steps []Order[I, O, E]

	// Run is an arbitrary side effect (Perform) that does not touch the
	// draft's shape.
	Run func(ctx *axo.Context, in Form[I, O, E])

	// Adjust rewrites the draft's alignment or span directly (Tweak).
	Adjust func(d *Draft[I, O, E])
}

// Apply runs o against d, mutating d in place. removeAt is called when
// a Remove order fires, so the caller's cursor can delete the consumed
// span; only the strainer pass wires a non-nil removeAt, since deleting
// from the cursor's backing slice mid-match is unsafe anywhere matching
// can still backtrack over the deleted span.
func (o Order[I, O, E]) Apply(ctx *axo.Context, d *Draft[I, O, E], removeAt func()) {
	// Transform/Capture/Ignore/Skip/Remove only make sense on a match that
	// already succeeded: they reshape or silence a real result, they do
	// not rescue a failure into one. Fail and Pardon are the two orders
	// that move a draft between the failed and non-failed states; Trigger
	// branches on whichever state it already finds.
	alreadyFailed := d.Alignment == FailedAlign || d.Alignment == PanickedAlign

	switch o.Kind {
	case None:
		return
	case Transform:
		if alreadyFailed || o.Transform == nil {
			return
		}
		out, failure, ok := o.Transform(ctx, d.Form)
		if !ok {
			// A transform failure is folded into a Failure form but
			// does not flip Alignment, so the surrounding Sequence/
			// Alternative/Repetition still treats this node as a
			// normal successful child rather than backtracking past
			// it. Fail, by contrast, is reserved for grammar-level
			// required-but-missing constructs and does flip Alignment
			// (see the Fail case below).
			d.Form = FailureForm[I, O, E](failure, d.Form.Span)
			return
		}
		d.Form = out
	case Capture:
		if alreadyFailed {
			return
		}
		if o.CaptureName != "" {
			ctx.Capture(o.CaptureName, d.Form)
		}
	case Fail:
		if o.FailWith != nil {
			d.Form = FailureForm[I, O, E](o.FailWith(ctx, d.Form), d.Form.Span)
		}
		d.Alignment = FailedAlign
	case Ignore:
		if alreadyFailed {
			return
		}
		d.Alignment = IgnoredAlign
	case Skip:
		if alreadyFailed {
			return
		}
		d.Alignment = IgnoredAlign
		d.Form = BlankForm[I, O, E](d.Form.Span)
	case Remove:
		if alreadyFailed {
			return
		}
		d.Alignment = IgnoredAlign
		d.Form = BlankForm[I, O, E](d.Form.Span)
		if removeAt != nil {
			removeAt()
		}
	case Pardon:
		if d.Alignment == FailedAlign {
			d.Alignment = BlankAlign
			d.Form = BlankForm[I, O, E](d.Form.Span)
		}
	case Trigger:
		if d.Alignment == FailedAlign || d.Alignment == PanickedAlign {
			if o.Missing != nil {
				o.Missing.Apply(ctx, d, removeAt)
			}
		} else if o.Found != nil {
			o.Found.Apply(ctx, d, removeAt)
		}
	case Multi:
		for _, step := range o.Steps {
			step.Apply(ctx, d, removeAt)
		}
	case Perform:
		if o.Run != nil {
			o.Run(ctx, d.Form)
		}
	case Tweak:
		if o.Adjust != nil {
			o.Adjust(d)
		}
	}
}
