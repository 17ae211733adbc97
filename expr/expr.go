package expr

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/samber/mo"
)

// Resolver evaluates a cell reference to its color within one evaluation
// pass. Implementations perform reference resolution and cycle detection;
// the visit set carries the indices already entered on the current path.
type Resolver interface {
	ColorAt(ref cell.Ref, visited *VisitSet) (mo.Option[color.Color], error)
}

// VisitSet tracks the indices entered during a single evaluation pass,
// preserving entry order so cycle diagnostics can report the full path.
type VisitSet struct {
	seen map[uint32]struct{}
	path []uint32
}

// NewVisitSet constructs an empty visit set.
func NewVisitSet() *VisitSet {
	return &VisitSet{seen: make(map[uint32]struct{})}
}

// Enter records an index on the path. It returns false if the index was
// already present, indicating a reference cycle.
func (v *VisitSet) Enter(idx uint32) bool {
	if _, ok := v.seen[idx]; ok {
		return false
	}
	v.seen[idx] = struct{}{}
	v.path = append(v.path, idx)
	return true
}

// Path returns the indices entered so far, in order.
func (v *VisitSet) Path() []uint32 {
	return v.path
}

// Clone copies the visit set so sibling branches can be checked independently.
func (v *VisitSet) Clone() *VisitSet {
	c := NewVisitSet()
	for idx := range v.seen {
		c.seen[idx] = struct{}{}
	}
	c.path = append(c.path, v.path...)
	return c
}

// Expr is an expression stored in a palette cell. Evaluation yields None for
// valueless expressions and propagates resolution failures.
type Expr interface {
	fmt.Stringer
	Eval(res Resolver, visited *VisitSet) (mo.Option[color.Color], error)
}

// Empty is a reserved cell with no value.
type Empty struct{}

func (Empty) Eval(Resolver, *VisitSet) (mo.Option[color.Color], error) {
	return mo.None[color.Color](), nil
}

func (Empty) String() string { return "empty" }

// Lit is a literal color.
type Lit struct {
	Color color.Color
}

func (l Lit) Eval(Resolver, *VisitSet) (mo.Option[color.Color], error) {
	return mo.Some(l.Color), nil
}

func (l Lit) String() string { return l.Color.Hex() }

// Reference evaluates to the resolved color of another cell.
type Reference struct {
	Target cell.Ref
}

func (r Reference) Eval(res Resolver, visited *VisitSet) (mo.Option[color.Color], error) {
	return res.ColorAt(r.Target, visited)
}

func (r Reference) String() string { return r.Target.String() }

// Unary applies a single-source color modifier, interpolating from the
// source color to the modified color.
type Unary struct {
	Op     color.UnaryMethod
	Arg    cell.Ref
	Value  float64
	Interp Interpolate
}

func (u Unary) Eval(res Resolver, visited *VisitSet) (mo.Option[color.Color], error) {
	src, err := res.ColorAt(u.Arg, visited)
	if err != nil {
		return mo.None[color.Color](), err
	}
	c, ok := src.Get()
	if !ok {
		return mo.None[color.Color](), nil
	}
	return mo.Some(u.Interp.Apply(c, u.Op.Apply(c, u.Value))), nil
}

func (u Unary) String() string {
	if u.Interp == DefaultInterpolate {
		return fmt.Sprintf("%s(%s, %s)", u.Op, u.Arg, formatFloat(u.Value))
	}
	return fmt.Sprintf("%s(%s, %s, %s)", u.Op, u.Arg, formatFloat(u.Value), u.Interp)
}

// Binary blends two source cells channel-wise in a color space,
// interpolating from the first source to the blended result.
type Binary struct {
	Op         color.BinaryMethod
	Arg0, Arg1 cell.Ref
	Interp     Interpolate
	Space      color.Space
}

func (b Binary) Eval(res Resolver, visited *VisitSet) (mo.Option[color.Color], error) {
	// Sibling operands are independent paths; each gets its own visit set.
	second := visited.Clone()
	src0, err := res.ColorAt(b.Arg0, visited)
	if err != nil {
		return mo.None[color.Color](), err
	}
	src1, err := res.ColorAt(b.Arg1, second)
	if err != nil {
		return mo.None[color.Color](), err
	}
	a, okA := src0.Get()
	c, okC := src1.Get()
	if !okA || !okC {
		return mo.None[color.Color](), nil
	}
	blended := b.Space.MapBinary(a, c, b.Op.Apply)
	return mo.Some(b.Interp.Apply(a, blended)), nil
}

func (b Binary) String() string {
	parts := fmt.Sprintf("%s, %s", b.Arg0, b.Arg1)
	if b.Interp != DefaultInterpolate {
		parts += ", " + b.Interp.String()
	}
	if b.Space != color.RGB {
		parts += ", " + b.Space.String()
	}
	return fmt.Sprintf("%s(%s)", b.Op, parts)
}
