package cell

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRefString(t *testing.T) {
	Convey("Canonical reference forms", t, func() {
		So(Index(3).String(), ShouldEqual, ":3")
		So(Name("foo").String(), ShouldEqual, "foo")
		So(Group("foo", 2).String(), ShouldEqual, "foo:2")
		So(At(Position{1, 2, 3}).String(), ShouldEqual, ":1.2.3")
	})
}

func TestSelector(t *testing.T) {
	Convey("Pattern matching", t, func() {
		sel := Selector{Page: AnyComponent, Line: AnyComponent, Column: Concrete(0)}
		So(sel.String(), ShouldEqual, ":*.*.0")
		So(sel.Matches(Position{0, 0, 0}), ShouldBeTrue)
		So(sel.Matches(Position{7, 3, 0}), ShouldBeTrue)
		So(sel.Matches(Position{0, 0, 1}), ShouldBeFalse)
		So(sel.IsConcrete(), ShouldBeFalse)
	})

	Convey("Concrete selectors convert to positions", t, func() {
		sel := Selector{Page: Concrete(1), Line: Concrete(2), Column: Concrete(3)}
		pos, ok := sel.Position()
		So(ok, ShouldBeTrue)
		So(pos, ShouldResemble, Position{1, 2, 3})
	})
}

func TestSelection(t *testing.T) {
	Convey("Range endpoints must agree on kind", t, func() {
		_, err := Range(Index(0), Name("foo"))
		So(err, ShouldNotBeNil)

		sel, err := Range(Index(0), Index(4))
		So(err, ShouldBeNil)
		So(sel.String(), ShouldEqual, ":0-:4")
	})

	Convey("Group ranges must share the group name", t, func() {
		_, err := Range(Group("a", 0), Group("b", 2))
		So(err, ShouldNotBeNil)
	})

	Convey("Canonical forms", t, func() {
		So(All().String(), ShouldEqual, "*")
		So(Single(Name("bg")).String(), ShouldEqual, "bg")
	})
}

func TestPositionOrdering(t *testing.T) {
	Convey("Less orders by page, line, column", t, func() {
		So(Position{0, 0, 1}.Less(Position{0, 1, 0}), ShouldBeTrue)
		So(Position{1, 0, 0}.Less(Position{0, 9, 9}), ShouldBeFalse)
	})
}
