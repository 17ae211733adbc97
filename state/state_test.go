package state

import (
	"testing"

	"github.com/atma-cli/atma/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActivePalette(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("The active palette pointer persists and feeds the recent list", t, func() {
		active, err := ActivePalette()
		So(err, ShouldBeNil)
		So(active, ShouldEqual, "")

		So(SetActivePalette("/a.atma"), ShouldBeNil)
		So(SetActivePalette("/b.atma"), ShouldBeNil)
		So(SetActivePalette("/a.atma"), ShouldBeNil)

		active, err = ActivePalette()
		So(err, ShouldBeNil)
		So(active, ShouldEqual, "/a.atma")

		recent, err := Recent()
		So(err, ShouldBeNil)
		So(recent, ShouldResemble, []string{"/a.atma", "/b.atma"})
	})
}
