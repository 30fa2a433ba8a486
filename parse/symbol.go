package parse

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/scan"
)

// SymbolKind tags what a Symbol denotes: a closed union over every
// declaration shape the grammar's keyword-led item productions build.
type SymbolKind int

const (
	Binding SymbolKind = iota
	Parameter
	Method
	Structure
	Enumeration
	Module
	Inclusion  // a `use` declaration
	Extension  // an `impl` block
	Preference // a `trait`/`macro` declaration
)

func (k SymbolKind) String() string {
	switch k {
	case Binding:
		return "binding"
	case Parameter:
		return "parameter"
	case Method:
		return "method"
	case Structure:
		return "structure"
	case Enumeration:
		return "enumeration"
	case Module:
		return "module"
	case Inclusion:
		return "inclusion"
	case Extension:
		return "extension"
	default:
		return "preference"
	}
}

// Symbol is an entry installed into a Scope by Symbolize, a binding, a
// method/structure/enumeration declaration, or a supplemental
// use/impl/trait declaration. Declared here rather than in package
// resolve so the parser can build and query scopes without resolve
// importing parse's Element type back (resolve imports parse, never the
// reverse). Field names are reused across SymbolKinds rather than
// giving each kind its own struct, since the payload shapes overlap
// heavily.
type Symbol struct {
	ID    uint64
	Kind  SymbolKind
	Span  axo.Span
	Scope *Scope

	Name *scan.Token

	// Binding
	Type     *Element
	Value    *Element
	Constant bool

	// Inclusion
	Path []string

	// Extension
	Target *Element

	// Structure / Enumeration / Extension / Module / Preference
	Fields   []Symbol
	Variants []Symbol
	Body     []Symbol

	// Method
	Params []Symbol
	Return *Element
	Block  *Element
}

func (s Symbol) GetSpan() axo.Span { return s.Span }

func (s Symbol) NameString() string {
	if s.Name == nil {
		return ""
	}
	return s.Name.AsString
}

// Scope is a chained lookup table of Symbols, one per lexical block the
// parser or resolver opens. Parent is nil for the root (module) scope.
// Name equality over the declared identifier is enough to disambiguate
// entries, since this grammar has no compound or qualified names.
type Scope struct {
	Parent  *Scope
	symbols map[string]Symbol
}

func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, symbols: make(map[string]Symbol)}
}

// Insert shadows any existing entry with the same name in this scope.
func (s *Scope) Insert(sym Symbol) {
	s.symbols[sym.NameString()] = sym
}

// Lookup walks outward through enclosing scopes, returning the nearest
// match. The bool reports whether any scope in the chain held the name.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal checks only this scope, without walking to parents.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Names returns every name bound directly in this scope, for "did you
// mean" suggestion hinting in package resolve.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	return names
}
