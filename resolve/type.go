// Package resolve implements the resolver stage: scope-tree symbol
// binding, name lookup, a minimal type inference pass, and lowering to
// the opaque Analysis IR an external backend consumes. A second
// front-end pass over an already-built Element tree, producing data
// (Analysis) rather than running a VM.
package resolve

import "fmt"

// Kind tags which of Type's payload fields is live. Closed over the
// small set needed to drive TypeMismatch/ParameterMismatch/
// FieldCountMismatch diagnostics — not a full type system.
type Kind int

const (
	Unknown Kind = iota
	Void
	Bool
	Int
	Float
	Str
	Char
	Named
	Function
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Char:
		return "char"
	case Named:
		return "named"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Type is a closed tagged union over every shape the resolver's minimal
// checker produces.
type Type struct {
	Kind   Kind
	Name   string // Named's type name
	Params []Type // Function's parameter types
	Return *Type  // Function's return type
}

func (t Type) String() string {
	switch t.Kind {
	case Named:
		return t.Name
	case Function:
		parts := "("
		for i, p := range t.Params {
			if i > 0 {
				parts += ", "
			}
			parts += p.String()
		}
		parts += ")"
		ret := "void"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("fn%s -> %s", parts, ret)
	default:
		return t.Kind.String()
	}
}

// Equal compares two types structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Named:
		return t.Name == o.Name
	case Function:
		if len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		if (t.Return == nil) != (o.Return == nil) {
			return false
		}
		if t.Return != nil && !t.Return.Equal(*o.Return) {
			return false
		}
		return true
	default:
		return true
	}
}

// Checkable is implemented by anything the resolver can infer a Type
// for. package parse's Element does not implement this directly (parse
// must not depend on resolve); instead Resolver.Check switches on
// Element.Kind itself, playing the role Checkable.Infer would play in a
// single-package design.
type Checkable interface {
	Infer(r *Resolver) Type
}

func UnknownType() Type    { return Type{Kind: Unknown} }
func VoidType() Type       { return Type{Kind: Void} }
func BoolType() Type       { return Type{Kind: Bool} }
func IntType() Type        { return Type{Kind: Int} }
func FloatType() Type      { return Type{Kind: Float} }
func StrType() Type        { return Type{Kind: Str} }
func CharType() Type       { return Type{Kind: Char} }
func NamedType(n string) Type { return Type{Kind: Named, Name: n} }
