package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/askolte/rubricform/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a fresh config", t, func() {
		cfg := config.New()

		So(cfg.LogLevel, ShouldEqual, "info")
		So(cfg.OutputDir, ShouldEqual, ".")
		So(cfg.FilenamePrefix, ShouldEqual, "Observation")
		So(cfg.DefaultWeight, ShouldEqual, 1.0)
		So(cfg.CatalogPath, ShouldBeEmpty)
		So(cfg.FontPath, ShouldBeEmpty)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the environment is clean", t, func() {
		keys := []string{
			"RUBRICFORM_CONFIG",
			"RUBRICFORM_LOG_LEVEL",
			"RUBRICFORM_OUTPUT_DIR",
			"RUBRICFORM_DEFAULT_WEIGHT",
			"RUBRICFORM_FONT_PATH",
		}
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
		Reset(func() {
			for _, k := range keys {
				_ = os.Unsetenv(k)
			}
		})

		Convey("When nothing overrides the defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DefaultWeight, ShouldEqual, 1.0)
		})

		Convey("When env vars override", func() {
			_ = os.Setenv("RUBRICFORM_LOG_LEVEL", "debug")
			_ = os.Setenv("RUBRICFORM_DEFAULT_WEIGHT", "1.5")
			_ = os.Setenv("RUBRICFORM_FONT_PATH", "/fonts/DejaVuSans.ttf")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.DefaultWeight, ShouldEqual, 1.5)
			So(cfg.FontPath, ShouldEqual, "/fonts/DejaVuSans.ttf")
		})

		Convey("When a YAML file layers under env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			data := "log_level: warn\noutput_dir: /tmp/reports\nfilename_prefix: Hospitation\n"
			So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)
			_ = os.Setenv("RUBRICFORM_CONFIG", path)
			_ = os.Setenv("RUBRICFORM_LOG_LEVEL", "error")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.OutputDir, ShouldEqual, "/tmp/reports")
			So(cfg.FilenamePrefix, ShouldEqual, "Hospitation")
			// env wins over file
			So(cfg.LogLevel, ShouldEqual, "error")
		})

		Convey("When the config file is missing", func() {
			_ = os.Setenv("RUBRICFORM_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})

		Convey("When the default weight is negative", func() {
			_ = os.Setenv("RUBRICFORM_DEFAULT_WEIGHT", "-0.5")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
