package axo

import "sync/atomic"

// Diagnostic is implemented by every stage's error type (ScanError,
// ParseError, ResolveError) so the CLI can render them uniformly.
type Diagnostic interface {
	error
	GetSpan() Span
	GetHints() []string
}

// Context is the single mutable compilation context threaded through
// scan, parse, and resolve. It owns the only process-wide-per-compilation
// state: the resolver's id counter and the three stage error slices.
// Nothing here is ever reached through a package-level global.
type Context struct {
	Config *Config

	nextID uint64

	ScanErrors    []Diagnostic
	ParseErrors   []Diagnostic
	ResolveErrors []Diagnostic

	// Captures records side-effectful bindings an Order.Capture action
	// stashes while a classifier tree is being formed, keyed by the
	// identifier the grammar author chose.
	Captures map[string][]any

	// Depth counts nested Deferred classifier matches in the form
	// engine. Past the "parser.recursion_limit" config value the
	// Deferred match fails as PanickedAlign instead of recursing
	// further; no RecursionLimit diagnostic is recorded.
	Depth int
}

// NewContext returns a fresh Context with cfg, or default config if cfg
// is nil.
func NewContext(cfg *Config) *Context {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Context{
		Config:   cfg,
		Captures: map[string][]any{},
	}
}

// NextID returns a fresh, monotonically increasing symbol id.
func (c *Context) NextID() uint64 {
	return atomic.AddUint64(&c.nextID, 1)
}

// Capture stashes v under name for later inspection (used by the form
// engine's Order.Capture action).
func (c *Context) Capture(name string, v any) {
	c.Captures[name] = append(c.Captures[name], v)
}

// HasErrors reports whether any stage has accumulated a diagnostic. Per
// the propagation policy, a stage never aborts on error; the driver
// checks this once, after all stages have run, to decide whether to
// proceed to the backend.
func (c *Context) HasErrors() bool {
	return len(c.ScanErrors) > 0 || len(c.ParseErrors) > 0 || len(c.ResolveErrors) > 0
}

// Diagnostics returns every accumulated diagnostic across all three
// stages, in stage order.
func (c *Context) Diagnostics() []Diagnostic {
	all := make([]Diagnostic, 0, len(c.ScanErrors)+len(c.ParseErrors)+len(c.ResolveErrors))
	all = append(all, c.ScanErrors...)
	all = append(all, c.ParseErrors...)
	all = append(all, c.ResolveErrors...)
	return all
}

// EnterRecursion increments the parser recursion depth and reports
// whether the configured limit was exceeded.
func (c *Context) EnterRecursion() (exceeded bool) {
	c.Depth++
	limit := 512
	if c.Config != nil {
		limit = c.Config.GetInt("parser.recursion_limit")
	}
	return c.Depth > limit
}

// ExitRecursion undoes a matching EnterRecursion.
func (c *Context) ExitRecursion() {
	c.Depth--
}
