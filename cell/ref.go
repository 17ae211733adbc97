package cell

import "fmt"

// RefKind discriminates the CellRef variants.
type RefKind uint8

const (
	RefIndex RefKind = iota
	RefName
	RefGroup
	RefPosition
)

// Ref is a symbolic reference to a palette cell. Exactly the fields relevant
// to Kind are meaningful; the type is comparable so references can be used as
// map keys and compared structurally in tests.
type Ref struct {
	Kind RefKind

	Index    uint32   // RefIndex
	Name     string   // RefName and RefGroup
	GroupIdx uint32   // RefGroup: 0-based position within the group
	Pos      Position // RefPosition
}

// Index constructs an index reference.
func Index(idx uint32) Ref {
	return Ref{Kind: RefIndex, Index: idx}
}

// Name constructs a name reference.
func Name(name string) Ref {
	return Ref{Kind: RefName, Name: name}
}

// Group constructs a group reference.
func Group(name string, idx uint32) Ref {
	return Ref{Kind: RefGroup, Name: name, GroupIdx: idx}
}

// At constructs a position reference.
func At(pos Position) Ref {
	return Ref{Kind: RefPosition, Pos: pos}
}

// String returns the canonical reference form: ":3", "name", "name:2" or ":1.2.3".
func (r Ref) String() string {
	switch r.Kind {
	case RefName:
		return r.Name
	case RefGroup:
		return fmt.Sprintf("%s:%d", r.Name, r.GroupIdx)
	case RefPosition:
		return r.Pos.String()
	default:
		return fmt.Sprintf(":%d", r.Index)
	}
}
