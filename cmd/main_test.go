package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	service "github.com/askolte/rubricform/internal/app"
	"github.com/askolte/rubricform/internal/config"
	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/render/report"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigurationLoading(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("RUBRICFORM_LOG_LEVEL", "debug")
			_ = os.Setenv("RUBRICFORM_FILENAME_PREFIX", "Visit")
			defer func() {
				_ = os.Unsetenv("RUBRICFORM_LOG_LEVEL")
				_ = os.Unsetenv("RUBRICFORM_FILENAME_PREFIX")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.FilenamePrefix, convey.ShouldEqual, "Visit")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.So(service.New(), convey.ShouldNotBeNil)
		})
	})
}

func TestRecordRoundTripThroughDisk(t *testing.T) {
	convey.Convey("Given a record file on disk", t, func() {
		cat := rubric.Default()
		rec, err := model.New(cat, []string{"M2"})
		convey.So(err, convey.ShouldBeNil)
		rec.Colleague = "T. Brandt"

		data, err := report.Marshal(cat, rec)
		convey.So(err, convey.ShouldBeNil)

		path := filepath.Join(t.TempDir(), "record.json")
		convey.So(os.WriteFile(path, data, 0o600), convey.ShouldBeNil)

		convey.Convey("When loading it through the CLI loader", func() {
			loaded, err := loadRecord(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(loaded.Colleague, convey.ShouldEqual, "T. Brandt")
			convey.So(loaded.Modules["M2"], convey.ShouldNotBeNil)
		})
	})
}

func TestApplyProfile(t *testing.T) {
	convey.Convey("Given a record and the built-in presets", t, func() {
		cat := rubric.Default()
		rec, err := model.New(cat, []string{"M1", "M4"})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When applying a known preset", func() {
			convey.So(applyProfile(rec, "climate-focus", ""), convey.ShouldBeNil)
			convey.So(rec.Weights["M4"], convey.ShouldEqual, 1.2)
		})

		convey.Convey("When the preset does not exist", func() {
			convey.So(applyProfile(rec, "nope", ""), convey.ShouldNotBeNil)
		})
	})
}

func TestWriteDefaultCatalog(t *testing.T) {
	convey.Convey("Given a target path", t, func() {
		path := filepath.Join(t.TempDir(), "catalog.yaml")

		convey.Convey("When writing the built-in catalog", func() {
			convey.So(writeDefaultCatalog(path), convey.ShouldBeNil)

			cat, err := rubric.Load(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cat.ModuleIDs(), convey.ShouldResemble, []string{"M1", "M2", "M3", "M4"})
		})
	})
}
