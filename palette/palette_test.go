package palette

import (
	"testing"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
	. "github.com/smartystreets/goconvey/convey"
)

func lit(c color.Color) expr.Expr {
	return expr.Lit{Color: c}
}

var (
	black = color.Color{}
	white = color.Color{R: 255, G: 255, B: 255}
	red   = color.Color{R: 255}
)

func TestPrimitives(t *testing.T) {
	Convey("Insert and remove", t, func() {
		p := New()

		So(p.Apply([]Operation{InsertCell(0, lit(black))}), ShouldBeNil)
		So(p.IsOccupied(0), ShouldBeTrue)
		So(p.Len(), ShouldEqual, 1)

		err := p.Apply([]Operation{InsertCell(0, lit(white))})
		So(err, ShouldHaveSameTypeAs, &AlreadyOccupiedError{})

		So(p.Apply([]Operation{RemoveCell(0)}), ShouldBeNil)
		So(p.IsOccupied(0), ShouldBeFalse)

		err = p.Apply([]Operation{RemoveCell(0)})
		So(err, ShouldHaveSameTypeAs, &NotOccupiedError{})
	})

	Convey("Names are unique and bidirectional", t, func() {
		p := New()
		So(p.Apply([]Operation{InsertCell(0, lit(red)), AssignName(0, "red")}), ShouldBeNil)

		idx, err := p.Resolve(cell.Name("red"))
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, 0)

		name, ok := p.NameOf(0)
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "red")

		err = p.Apply([]Operation{InsertCell(1, lit(white)), AssignName(1, "red")})
		So(err, ShouldHaveSameTypeAs, &NameConflictError{})
		// The failed composite rolled back entirely.
		So(p.IsOccupied(1), ShouldBeFalse)
	})

	Convey("Unknown names suggest near matches", t, func() {
		p := New()
		So(p.Apply([]Operation{InsertCell(0, lit(red)), AssignName(0, "crimson")}), ShouldBeNil)

		_, err := p.Resolve(cell.Name("crimsn"))
		ure, ok := err.(*UnknownRefError)
		So(ok, ShouldBeTrue)
		So(ure.Suggestion, ShouldEqual, "crimson")
	})

	Convey("Positions conflict per slot", t, func() {
		p := New()
		pos := cell.Position{Page: 0, Line: 0, Column: 0}
		So(p.Apply([]Operation{
			InsertCell(0, lit(red)),
			InsertCell(1, lit(white)),
			AssignPosition(0, pos),
		}), ShouldBeNil)

		err := p.Apply([]Operation{AssignPosition(1, pos)})
		So(err, ShouldHaveSameTypeAs, &PositionConflictError{})
	})

	Convey("Groups are ordered and carry insert positions in inverses", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, lit(red)),
			InsertCell(1, lit(white)),
			InsertCell(2, lit(black)),
			AssignGroup(0, "warm"),
			AssignGroup(1, "warm"),
			AssignGroup(2, "warm"),
		}), ShouldBeNil)
		So(p.Group("warm"), ShouldResemble, []uint32{0, 1, 2})

		idx, err := p.Resolve(cell.Group("warm", 1))
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, 1)

		// Remove the middle member, then undo: it returns to position 1.
		So(p.Apply([]Operation{UnassignGroup(1, "warm")}), ShouldBeNil)
		So(p.Group("warm"), ShouldResemble, []uint32{0, 2})
		_, err = p.Undo(1)
		So(err, ShouldBeNil)
		So(p.Group("warm"), ShouldResemble, []uint32{0, 1, 2})
	})

	Convey("Metadata survives cell removal as a reservation", t, func() {
		p := New()
		So(p.Apply([]Operation{InsertCell(0, lit(red)), AssignName(0, "red")}), ShouldBeNil)
		So(p.Apply([]Operation{RemoveCell(0)}), ShouldBeNil)

		idx, err := p.Resolve(cell.Name("red"))
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, 0)
		So(p.IsOccupied(0), ShouldBeFalse)
	})
}

func TestEvaluation(t *testing.T) {
	Convey("References evaluate transitively", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, lit(red)),
			InsertCell(1, expr.Reference{Target: cell.Index(0)}),
			InsertCell(2, expr.Reference{Target: cell.Index(1)}),
		}), ShouldBeNil)

		c, err := p.Color(cell.Index(2))
		So(err, ShouldBeNil)
		So(c.MustGet(), ShouldResemble, red)
	})

	Convey("Self references are cycles", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, expr.Reference{Target: cell.Index(0)}),
		}), ShouldBeNil)

		_, err := p.Color(cell.Index(0))
		ce, ok := err.(*CycleError)
		So(ok, ShouldBeTrue)
		So(ce.Path, ShouldResemble, []uint32{0, 0})
	})

	Convey("Longer cycles report the full path", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, expr.Reference{Target: cell.Index(1)}),
			InsertCell(1, expr.Reference{Target: cell.Index(2)}),
			InsertCell(2, expr.Reference{Target: cell.Index(0)}),
		}), ShouldBeNil)

		_, err := p.Color(cell.Index(0))
		ce, ok := err.(*CycleError)
		So(ok, ShouldBeTrue)
		So(ce.Path, ShouldResemble, []uint32{0, 1, 2, 0})
	})

	Convey("Acyclic palettes evaluate every occupied cell", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, lit(black)),
			InsertCell(1, lit(white)),
			InsertCell(2, expr.Binary{Op: color.Blend, Arg0: cell.Index(0), Arg1: cell.Index(1),
				Interp: expr.ConstantT(0.5), Space: color.RGB}),
		}), ShouldBeNil)

		for _, idx := range p.Indices() {
			_, err := p.Color(cell.Index(idx))
			So(err, ShouldBeNil)
		}
	})
}

func TestSelect(t *testing.T) {
	p := New()

	Convey("Selections resolve to occupied indices", t, func() {
		So(p.Apply([]Operation{
			InsertCell(0, lit(black)),
			InsertCell(1, lit(white)),
			InsertCell(5, lit(red)),
			AssignPosition(0, cell.Position{Page: 0, Line: 0, Column: 0}),
			AssignPosition(5, cell.Position{Page: 1, Line: 0, Column: 0}),
		}), ShouldBeNil)

		all, err := p.Select(cell.All())
		So(err, ShouldBeNil)
		So(all, ShouldResemble, []uint32{0, 1, 5})

		rng, err := p.Select(mustRange(cell.Index(0), cell.Index(4)))
		So(err, ShouldBeNil)
		So(rng, ShouldResemble, []uint32{0, 1})

		pat, err := p.Select(cell.Pattern(cell.Selector{
			Page: cell.AnyComponent, Line: cell.Concrete(0), Column: cell.Concrete(0)}))
		So(err, ShouldBeNil)
		So(pat, ShouldResemble, []uint32{0, 5})
	})
}

func mustRange(low, hi cell.Ref) cell.Selection {
	sel, err := cell.Range(low, hi)
	if err != nil {
		panic(err)
	}
	return sel
}
