package expr

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
)

// InsertExpr is a palette-insertable object. Expansion happens at insertion
// time: most variants insert themselves, Copy snapshots the referenced
// color, and Ramp produces one Binary child per step.
type InsertExpr interface {
	fmt.Stringer

	// Exprs returns the cell expressions to be inserted, in order.
	Exprs(res Resolver) ([]Expr, error)
}

func (e Empty) Exprs(Resolver) ([]Expr, error)     { return []Expr{e}, nil }
func (l Lit) Exprs(Resolver) ([]Expr, error)       { return []Expr{l}, nil }
func (r Reference) Exprs(Resolver) ([]Expr, error) { return []Expr{r}, nil }
func (u Unary) Exprs(Resolver) ([]Expr, error)     { return []Expr{u}, nil }
func (b Binary) Exprs(Resolver) ([]Expr, error)    { return []Expr{b}, nil }

// Copy snapshots the current color of the referenced cell, decoupling the
// inserted cell from later edits of the source.
type Copy struct {
	Target cell.Ref
}

func (c Copy) Exprs(res Resolver) ([]Expr, error) {
	src, err := res.ColorAt(c.Target, NewVisitSet())
	if err != nil {
		return nil, err
	}
	col, ok := src.Get()
	if !ok {
		return nil, fmt.Errorf("copy source %s has no color", c.Target)
	}
	return []Expr{Lit{Color: col}}, nil
}

func (c Copy) String() string { return fmt.Sprintf("copy(%s)", c.Target) }

// Ramp expands into Count sibling Binary blends, child i interpolating at
// the range-remapped parameter i/(n-1). The ramp itself is not retained;
// the expansion is the observable state.
type Ramp struct {
	Count uint8
	Blend Binary // Interp is ignored; each child receives its own.
	Range Range
}

func (r Ramp) Exprs(Resolver) ([]Expr, error) {
	if r.Count == 0 {
		return nil, fmt.Errorf("ramp count must be positive")
	}
	if err := r.Range.Validate(); err != nil {
		return nil, err
	}
	exprs := make([]Expr, 0, r.Count)
	for i := 0; i < int(r.Count); i++ {
		u := 0.0
		if r.Count > 1 {
			u = float64(i) / float64(r.Count-1)
		}
		exprs = append(exprs, Binary{
			Op:     r.Blend.Op,
			Arg0:   r.Blend.Arg0,
			Arg1:   r.Blend.Arg1,
			Interp: r.Range.At(u),
			Space:  r.Blend.Space,
		})
	}
	return exprs, nil
}

func (r Ramp) String() string {
	blend := Binary{Op: r.Blend.Op, Arg0: r.Blend.Arg0, Arg1: r.Blend.Arg1,
		Interp: DefaultInterpolate, Space: r.Blend.Space}
	if r.Range == DefaultRange {
		return fmt.Sprintf("ramp(%d, %s)", r.Count, blend)
	}
	return fmt.Sprintf("ramp(%d, %s, %s)", r.Count, blend, r.Range)
}
