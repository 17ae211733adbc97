package parse

import (
	"testing"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCellRef(t *testing.T) {
	Convey("Reference forms", t, func() {
		cases := map[string]cell.Ref{
			":3":        cell.Index(3),
			":0x10":     cell.Index(16),
			":1.2.3":    cell.At(cell.Position{Page: 1, Line: 2, Column: 3}),
			"red":       cell.Name("red"),
			"warm:2":    cell.Group("warm", 2),
			" red ":     cell.Name("red"),
			"warm:0b10": cell.Group("warm", 2),
		}
		for input, want := range cases {
			got, err := ParseCellRef(input)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, want)
		}
	})

	Convey("Wildcards are rejected outside selections", t, func() {
		_, err := ParseCellRef(":*.0.0")
		So(err, ShouldNotBeNil)
	})

	Convey("Canonical forms round trip", t, func() {
		for _, input := range []string{":3", ":1.2.3", "red", "warm:2"} {
			ref, err := ParseCellRef(input)
			So(err, ShouldBeNil)
			So(ref.String(), ShouldEqual, input)
		}
	})
}

func TestParseSelection(t *testing.T) {
	Convey("Selection forms", t, func() {
		all, err := ParseSelection("*")
		So(err, ShouldBeNil)
		So(all.Kind, ShouldEqual, cell.SelectAll)

		all, err = ParseSelection(":*")
		So(err, ShouldBeNil)
		So(all.Kind, ShouldEqual, cell.SelectAll)

		single, err := ParseSelection(":7")
		So(err, ShouldBeNil)
		So(single, ShouldResemble, cell.Single(cell.Index(7)))

		rng, err := ParseSelection(":0-:4")
		So(err, ShouldBeNil)
		So(rng.Kind, ShouldEqual, cell.SelectRange)
		So(rng.Low, ShouldResemble, cell.Index(0))
		So(rng.Hi, ShouldResemble, cell.Index(4))

		pat, err := ParseSelection(":*.*.0")
		So(err, ShouldBeNil)
		So(pat.Kind, ShouldEqual, cell.SelectPattern)
		So(pat.Selector.Column, ShouldResemble, cell.Concrete(0))
		So(pat.Selector.Page.Any, ShouldBeTrue)
	})

	Convey("Mixed-kind ranges fail", t, func() {
		_, err := ParseSelection(":0-red")
		So(err, ShouldNotBeNil)
	})
}

func TestParseColor(t *testing.T) {
	Convey("Hex literals", t, func() {
		c, err := ParseColor("#FF8080")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{R: 255, G: 128, B: 128})

		c, err = ParseColor("#FFF")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{R: 255, G: 255, B: 255})

		c, err = ParseColor("#1af")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{R: 0x11, G: 0xAA, B: 0xFF})

		_, err = ParseColor("#12345")
		So(err, ShouldNotBeNil)
	})

	Convey("Functional literals", t, func() {
		c, err := ParseColor("rgb(1, 0, 0)")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{R: 255})

		c, err = ParseColor("hsl(0, 1, 0.5)")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{R: 255})

		c, err = ParseColor("cmyk(0, 0, 0, 1)")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, color.Color{})

		_, err = ParseColor("rgb(1, 0)")
		So(err, ShouldNotBeNil)
	})
}

func TestParseInterpolate(t *testing.T) {
	Convey("Interpolate forms", t, func() {
		in, err := ParseInterpolate("0.5")
		So(err, ShouldBeNil)
		So(in, ShouldResemble, expr.ConstantT(0.5))

		in, err = ParseInterpolate("linear(0.25, hsl)")
		So(err, ShouldBeNil)
		So(in, ShouldResemble, expr.Interpolate{Curve: expr.LinearCurve, T: 0.25, Space: color.HSL})

		in, err = ParseInterpolate("cubic(0.5)")
		So(err, ShouldBeNil)
		So(in, ShouldResemble, expr.Interpolate{Curve: expr.DefaultCubic, T: 0.5, Space: color.RGB})

		in, err = ParseInterpolate("cubic(0.1, 0.9)(0.5, hsv)")
		So(err, ShouldBeNil)
		So(in, ShouldResemble, expr.Interpolate{
			Curve: expr.Curve{Kind: expr.Cubic, P1: 0.1, P2: 0.9}, T: 0.5, Space: color.HSV})
	})
}

func TestParseInterpolateRange(t *testing.T) {
	Convey("Range forms", t, func() {
		r, err := ParseInterpolateRange("linear")
		So(err, ShouldBeNil)
		So(r, ShouldResemble, expr.DefaultRange)

		r, err = ParseInterpolateRange("cubic")
		So(err, ShouldBeNil)
		So(r.Curve, ShouldResemble, expr.DefaultCubic)

		r, err = ParseInterpolateRange("linear([0.25,0.75], hsl)")
		So(err, ShouldBeNil)
		So(r, ShouldResemble, expr.Range{Curve: expr.LinearCurve, Start: 0.25, End: 0.75, Space: color.HSL})

		r, err = ParseInterpolateRange("cubic([0,1], [0.2,0.8])")
		So(err, ShouldBeNil)
		So(r, ShouldResemble, expr.Range{
			Curve: expr.Curve{Kind: expr.Cubic, P1: 0.2, P2: 0.8}, Start: 0, End: 1, Space: color.RGB})
	})
}

func TestParseInsertExpr(t *testing.T) {
	Convey("Insertable forms", t, func() {
		e, err := ParseInsertExpr("#FF0000")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Lit{Color: color.Color{R: 255}})

		e, err = ParseInsertExpr(":3")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Reference{Target: cell.Index(3)})

		e, err = ParseInsertExpr("(red)")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Reference{Target: cell.Name("red")})

		e, err = ParseInsertExpr("copy(:0)")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Copy{Target: cell.Index(0)})

		e, err = ParseInsertExpr("empty")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Empty{})

		e, err = ParseInsertExpr("lighten(red, 0.5)")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Unary{
			Op: color.Lighten, Arg: cell.Name("red"), Value: 0.5, Interp: expr.DefaultInterpolate})

		e, err = ParseInsertExpr("blend(:0, :1, 0.5)")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Binary{
			Op: color.Blend, Arg0: cell.Index(0), Arg1: cell.Index(1),
			Interp: expr.ConstantT(0.5), Space: color.RGB})

		e, err = ParseInsertExpr("multiply(:0, :1, hsl)")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Binary{
			Op: color.Multiply, Arg0: cell.Index(0), Arg1: cell.Index(1),
			Interp: expr.DefaultInterpolate, Space: color.HSL})

		e, err = ParseInsertExpr("ramp(3, blend(:0, :1))")
		So(err, ShouldBeNil)
		So(e, ShouldResemble, expr.Ramp{
			Count: 3,
			Blend: expr.Binary{Op: color.Blend, Arg0: cell.Index(0), Arg1: cell.Index(1),
				Interp: expr.DefaultInterpolate, Space: color.RGB},
			Range: expr.DefaultRange})
	})

	Convey("Trailing input is rejected", t, func() {
		_, err := ParseInsertExpr("#FF0000 junk")
		So(err, ShouldNotBeNil)
	})
}

func TestExprRoundTrip(t *testing.T) {
	Convey("parse(format(e)) = e for every insertable variant", t, func() {
		exprs := []expr.InsertExpr{
			expr.Empty{},
			expr.Lit{Color: color.Color{R: 1, G: 2, B: 3}},
			expr.Reference{Target: cell.Group("warm", 4)},
			expr.Copy{Target: cell.At(cell.Position{Page: 1, Line: 2, Column: 3})},
			expr.Unary{Op: color.Darken, Arg: cell.Name("bg"), Value: 0.25, Interp: expr.DefaultInterpolate},
			expr.Unary{Op: color.HueShift, Arg: cell.Index(2), Value: 120,
				Interp: expr.Interpolate{Curve: expr.DefaultCubic, T: 0.5, Space: color.HSV}},
			expr.Binary{Op: color.Screen, Arg0: cell.Index(0), Arg1: cell.Name("fg"),
				Interp: expr.ConstantT(0.75), Space: color.HSL},
			expr.Binary{Op: color.Blend, Arg0: cell.Index(0), Arg1: cell.Index(1),
				Interp: expr.Interpolate{Curve: expr.Curve{Kind: expr.Cubic, P1: 0.25, P2: 0.75}, T: 0.5, Space: color.RGB},
				Space:  color.RGB},
			expr.Ramp{Count: 5,
				Blend: expr.Binary{Op: color.Multiply, Arg0: cell.Index(0), Arg1: cell.Index(1),
					Interp: expr.DefaultInterpolate, Space: color.CMYK},
				Range: expr.Range{Curve: expr.LinearCurve, Start: 0.1, End: 0.9, Space: color.RGB}},
		}
		for _, e := range exprs {
			parsed, err := ParseInsertExpr(e.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, e)
		}
	})
}
