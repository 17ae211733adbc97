package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/palette"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPNG(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Selections export as a swatch strip", t, func() {
		p := palette.New()
		So(p.Apply([]palette.Operation{
			palette.InsertCell(0, expr.Lit{Color: color.Color{R: 255}}),
			palette.InsertCell(1, expr.Lit{Color: color.Color{G: 255}}),
		}), ShouldBeNil)

		So(PNG(p, []cell.Selection{cell.All()}, "/out.png", 4), ShouldBeNil)

		data, err := filesystem.API().ReadFile("/out.png")
		So(err, ShouldBeNil)

		img, err := png.Decode(bytes.NewReader(data))
		So(err, ShouldBeNil)
		bounds := img.Bounds()
		So(bounds.Dx(), ShouldEqual, 8)
		So(bounds.Dy(), ShouldEqual, 4)

		r, _, _, _ := img.At(0, 0).RGBA()
		So(r>>8, ShouldEqual, 255)
		_, g, _, _ := img.At(4, 0).RGBA()
		So(g>>8, ShouldEqual, 255)
	})

	Convey("Valueless cells refuse to export", t, func() {
		p := palette.New()
		So(p.Apply([]palette.Operation{
			palette.InsertCell(0, expr.Empty{}),
		}), ShouldBeNil)
		So(PNG(p, []cell.Selection{cell.All()}, "/bad.png", 4), ShouldNotBeNil)
	})

	Convey("Empty palettes refuse to export", t, func() {
		p := palette.New()
		So(PNG(p, []cell.Selection{cell.All()}, "/none.png", 4), ShouldNotBeNil)
	})
}
