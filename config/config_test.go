package config

import (
	"testing"

	"github.com/atma-cli/atma/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("palette.max_pages"), ShouldEqual, "palette_max_pages")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default["logs.write"]
			So(f.Env(), ShouldEqual, "ATMA_LOGS_WRITE")
		})
	})
}
