package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHexForms(t *testing.T) {
	Convey("Hex formatting", t, func() {
		So(Color{0, 0, 0}.Hex(), ShouldEqual, "#000000")
		So(Color{255, 255, 255}.Hex(), ShouldEqual, "#FFFFFF")
		So(Color{255, 128, 128}.Hex(), ShouldEqual, "#FF8080")
		So(Color{0x12, 0x34, 0x56}.Hex3(), ShouldEqual, "#135")
	})
}

func TestConversions(t *testing.T) {
	Convey("HSL round trip", t, func() {
		c := FromHSL(0, 1, 0.5)
		So(c, ShouldResemble, Color{255, 0, 0})

		h, s, l := Color{255, 0, 0}.HSL()
		So(h, ShouldEqual, 0)
		So(s, ShouldEqual, 1)
		So(l, ShouldEqual, 0.5)
	})

	Convey("HSV", t, func() {
		So(FromHSV(120, 1, 1), ShouldResemble, Color{0, 255, 0})
	})

	Convey("CMYK", t, func() {
		So(FromCMYK(0, 0, 0, 1), ShouldResemble, Color{0, 0, 0})
		So(FromCMYK(1, 0, 0, 0), ShouldResemble, Color{0, 255, 255})

		cy, m, y, k := Color{0, 255, 255}.CMYK()
		So(cy, ShouldEqual, 1)
		So(m, ShouldEqual, 0)
		So(y, ShouldEqual, 0)
		So(k, ShouldEqual, 0)
	})

	Convey("Hue wraps into [0, 360)", t, func() {
		So(FromHSL(360, 1, 0.5), ShouldResemble, FromHSL(0, 1, 0.5))
		So(FromHSL(-120, 1, 0.5), ShouldResemble, FromHSL(240, 1, 0.5))
	})

	Convey("Out-of-range components clamp", t, func() {
		So(FromRatios(1.5, -0.2, 0.5), ShouldResemble, Color{255, 0, 128})
	})
}

func TestQuantize(t *testing.T) {
	Convey("Channel quantization rounds half to even", t, func() {
		// 0.5 * 255 = 127.5, which rounds to the even neighbor 128.
		So(quantize(0.5), ShouldEqual, uint8(128))
		So(quantize(0), ShouldEqual, uint8(0))
		So(quantize(1), ShouldEqual, uint8(255))
	})
}

func TestLerp(t *testing.T) {
	Convey("RGB lerp", t, func() {
		black, white := Color{0, 0, 0}, Color{255, 255, 255}
		So(RGB.Lerp(black, white, 0), ShouldResemble, black)
		So(RGB.Lerp(black, white, 1), ShouldResemble, white)
		So(RGB.Lerp(black, white, 0.5), ShouldResemble, Color{128, 128, 128})
	})
}
