package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnaryMethods(t *testing.T) {
	Convey("Lighten moves lightness toward white", t, func() {
		// #F00 lightened by 0.5: l goes from 0.5 to 0.75.
		So(Lighten.Apply(Color{255, 0, 0}, 0.5), ShouldResemble, Color{255, 128, 128})
		So(Lighten.Apply(Color{255, 0, 0}, 1), ShouldResemble, Color{255, 255, 255})
	})

	Convey("Darken moves lightness toward black", t, func() {
		So(Darken.Apply(Color{255, 0, 0}, 1), ShouldResemble, Color{0, 0, 0})
	})

	Convey("Channel setters", t, func() {
		So(SetRed.Apply(Color{0, 10, 20}, 1), ShouldResemble, Color{255, 10, 20})
		So(SetBlue.Apply(Color{0, 10, 20}, 0), ShouldResemble, Color{0, 10, 0})
	})

	Convey("Hue shift", t, func() {
		So(HueShift.Apply(Color{255, 0, 0}, 120), ShouldResemble, Color{0, 255, 0})
		So(SetHue.Apply(Color{255, 0, 0}, 240), ShouldResemble, Color{0, 0, 255})
	})

	Convey("Method names round trip", t, func() {
		for _, m := range []UnaryMethod{
			SetRed, SetGreen, SetBlue, HueShift, SetHue,
			Saturate, Desaturate, Lighten, Darken,
		} {
			parsed, err := ParseUnaryMethod(m.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, m)
		}
	})
}

func TestBinaryMethods(t *testing.T) {
	Convey("Channel arithmetic", t, func() {
		So(Blend.Apply(0.25, 0.75), ShouldEqual, 0.75)
		So(Multiply.Apply(0.5, 0.5), ShouldEqual, 0.25)
		So(Subtract.Apply(0.25, 0.75), ShouldEqual, 0.0)
		So(Difference.Apply(0.25, 0.75), ShouldEqual, 0.5)
		So(Screen.Apply(0.5, 0.5), ShouldEqual, 0.75)
		So(LinearDodge.Apply(0.75, 0.75), ShouldEqual, 1.0)
	})

	Convey("Degenerate denominators stay finite", t, func() {
		So(Divide.Apply(0.5, 0), ShouldEqual, 1.0)
		So(ColorDodge.Apply(1, 0.5), ShouldEqual, 1.0)
		So(ColorBurn.Apply(0.5, 0), ShouldEqual, 0.0)
	})

	Convey("Method names round trip", t, func() {
		for m := range binaryNames {
			parsed, err := ParseBinaryMethod(m.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, m)
		}
	})
}
