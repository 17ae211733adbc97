package palette

import (
	"testing"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUndoRedoIdentity(t *testing.T) {
	Convey("op then undo restores the palette exactly", t, func() {
		p := New()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: red}}, InsertOptions{
			Cursor: CursorToLastNew,
		}), ShouldBeNil)

		before := p.Clone()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: white}}, InsertOptions{
			Cursor: CursorToLastNew,
		}), ShouldBeNil)
		So(p.Equal(before), ShouldBeFalse)

		after := p.Clone()

		_, err := p.Undo(1)
		So(err, ShouldBeNil)
		So(p.Equal(before), ShouldBeTrue)

		_, err = p.Redo(1)
		So(err, ShouldBeNil)
		So(p.Equal(after), ShouldBeTrue)
	})

	Convey("undo restores metadata, groups and cursor", t, func() {
		p := New()
		So(p.Apply([]Operation{
			InsertCell(0, lit(red)),
			AssignName(0, "red"),
			AssignPosition(0, cell.Position{Page: 0, Line: 0, Column: 0}),
			AssignGroup(0, "warm"),
		}), ShouldBeNil)
		p.SetCursor(7)
		before := p.Clone()

		So(p.DeleteRange(cell.Single(cell.Index(0)), true, CursorToFirstNew), ShouldBeNil)
		So(p.Cursor(), ShouldEqual, 0)

		_, err := p.Undo(1)
		So(err, ShouldBeNil)
		So(p.Equal(before), ShouldBeTrue)
		So(p.Cursor(), ShouldEqual, 7)
	})

	Convey("a new composite clears the redo stack", t, func() {
		p := New()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: red}}, InsertOptions{}), ShouldBeNil)
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: white}}, InsertOptions{}), ShouldBeNil)

		_, err := p.Undo(1)
		So(err, ShouldBeNil)
		So(p.History().RedoCount(), ShouldEqual, 1)

		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: black}}, InsertOptions{}), ShouldBeNil)
		So(p.History().RedoCount(), ShouldEqual, 0)
	})

	Convey("undo on empty history reports HistoryEmpty", t, func() {
		p := New()
		_, err := p.Undo(1)
		So(err, ShouldEqual, ErrHistoryEmpty)
		_, err = p.Redo(1)
		So(err, ShouldEqual, ErrHistoryEmpty)
	})

	Convey("undo count larger than the stack undoes what it can", t, func() {
		p := New()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: red}}, InsertOptions{}), ShouldBeNil)
		n, err := p.Undo(5)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 1)
		So(p.Len(), ShouldEqual, 0)
	})

	Convey("disabled history records nothing", t, func() {
		p := New().WithoutHistory()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: red}}, InsertOptions{}), ShouldBeNil)
		So(p.History().UndoCount(), ShouldEqual, 0)
	})

	Convey("scenario: delete then undo restores original indices", t, func() {
		p := New()
		So(p.InsertExprs([]expr.InsertExpr{
			expr.Lit{Color: colorOf(0x11)},
			expr.Lit{Color: colorOf(0x22)},
			expr.Lit{Color: colorOf(0x33)},
		}, InsertOptions{Cursor: CursorToLastNew}), ShouldBeNil)

		So(p.DeleteRange(cell.Single(cell.Index(1)), false, CursorStay), ShouldBeNil)
		So(p.Indices(), ShouldResemble, []uint32{0, 2})

		_, err := p.Undo(1)
		So(err, ShouldBeNil)
		So(p.Indices(), ShouldResemble, []uint32{0, 1, 2})
		for i, want := range []uint8{0x11, 0x22, 0x33} {
			c, err := p.Color(cell.Index(uint32(i)))
			So(err, ShouldBeNil)
			So(c.MustGet(), ShouldResemble, colorOf(want))
		}
	})

	Convey("move positioning is a plain option", t, func() {
		// MoveRange accepts mo.Option positioning; None targets the cursor.
		p := New()
		So(p.InsertExprs([]expr.InsertExpr{expr.Lit{Color: red}}, InsertOptions{}), ShouldBeNil)
		So(p.MoveRange(cell.Single(cell.Index(0)), mo.Some(cell.Index(4)), CursorStay), ShouldBeNil)
		So(p.IsOccupied(4), ShouldBeTrue)
		So(p.IsOccupied(0), ShouldBeFalse)
	})
}

func colorOf(channel uint8) color.Color {
	return color.Color{R: channel, G: channel, B: channel}
}
