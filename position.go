// Package axo is a compiler front-end for a small statically typed
// language: a source cursor, a pattern-driven form engine, and the
// scanner/parser/resolver stages built on top of it.
package axo

import "fmt"

// LocationKind tags the closed set of places a Position can refer to.
type LocationKind int

const (
	LocationFile LocationKind = iota
	LocationRaw
	LocationFlag
	LocationVoid
)

func (k LocationKind) String() string {
	switch k {
	case LocationFile:
		return "file"
	case LocationRaw:
		return "raw"
	case LocationFlag:
		return "flag"
	default:
		return "void"
	}
}

// Location identifies where a Position's line/column are measured
// against: a source file, a raw in-memory slice, a synthetic "flag"
// position used by recovery, or no location at all.
type Location struct {
	Kind LocationKind
	Path string
	Ptr  int
	Len  int
}

func FileLocation(path string) Location { return Location{Kind: LocationFile, Path: path} }
func RawLocation(ptr, length int) Location {
	return Location{Kind: LocationRaw, Ptr: ptr, Len: length}
}
func FlagLocation() Location { return Location{Kind: LocationFlag} }
func VoidLocation() Location { return Location{Kind: LocationVoid} }

func (l Location) equal(o Location) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LocationFile:
		return l.Path == o.Path
	case LocationRaw:
		return l.Ptr == o.Ptr && l.Len == o.Len
	default:
		return true
	}
}

func (l Location) String() string {
	switch l.Kind {
	case LocationFile:
		return l.Path
	case LocationRaw:
		return fmt.Sprintf("<raw %d..%d>", l.Ptr, l.Ptr+l.Len)
	case LocationFlag:
		return "<flag>"
	default:
		return "<void>"
	}
}

// Position is a 1-indexed line/column pair within a Location.
type Position struct {
	Line   uint32
	Column uint32
	Loc    Location
}

// NewPosition returns the position at the very start of loc.
func NewPosition(loc Location) Position {
	return Position{Line: 1, Column: 1, Loc: loc}
}

// Advance moves the position past c, resetting the column on newlines.
func (p Position) Advance(c rune) Position {
	if c == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// Compare orders p against o. The second return value is false when the
// two positions belong to different locations, in which case ordering
// is undefined and cmp is meaningless.
func (p Position) Compare(o Position) (cmp int, comparable bool) {
	if !p.Loc.equal(o.Loc) {
		return 0, false
	}
	if p.Line != o.Line {
		if p.Line < o.Line {
			return -1, true
		}
		return 1, true
	}
	if p.Column != o.Column {
		if p.Column < o.Column {
			return -1, true
		}
		return 1, true
	}
	return 0, true
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
