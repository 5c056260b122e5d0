package config

import (
	"testing"

	"github.com/pixeltube-cli/pixeltube/filesystem"
	"github.com/pixeltube-cli/pixeltube/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.APIPageSize), ShouldEqual, 20)
			So(viper.GetString(key.PlatformID), ShouldEqual, "pixeltube")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("pixeltube.platform_id"), ShouldEqual, "pixeltube_platform_id")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.Instance]

		Convey("Env should carry the application prefix once", func() {
			So(field.Env(), ShouldEqual, "PIXELTUBE_INSTANCE")
			page := Default[key.APIPageSize]
			So(page.Env(), ShouldEqual, "PIXELTUBE_API_PAGE_SIZE")
		})

		Convey("Type name follows the default value", func() {
			page := Default[key.APIPageSize]
			So(page.typeName(), ShouldEqual, "int")
			So(field.typeName(), ShouldEqual, "string")
		})
	})
}
