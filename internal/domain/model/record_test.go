package model_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRecord(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		cat := rubric.Default()

		Convey("When building a record for a focus set", func() {
			rec, err := model.New(cat, []string{"M1", "M3"})
			So(err, ShouldBeNil)

			Convey("Then it carries an id and today's date", func() {
				So(rec.ID, ShouldNotBeEmpty)
				So(rec.Date, ShouldNotBeEmpty)
			})

			Convey("Then every focus module has the full criterion set", func() {
				So(len(rec.Modules), ShouldEqual, 2)
				for _, mk := range []string{"M1", "M3"} {
					mod := rec.Modules[mk]
					So(mod, ShouldNotBeNil)
					So(mod.ModuleKey, ShouldEqual, mk)

					crits, err := cat.Criteria(mk)
					So(err, ShouldBeNil)
					So(len(mod.Criteria), ShouldEqual, len(crits))
					for _, c := range crits {
						cr := mod.Criteria[c.ID]
						So(cr, ShouldNotBeNil)
						So(cr.Rating, ShouldEqual, 0)
						So(cr.Comment, ShouldBeEmpty)
					}
				}
			})

			Convey("Then the focus order is preserved", func() {
				So(rec.ProfileFocus, ShouldResemble, []string{"M1", "M3"})
			})
		})

		Convey("When the focus is empty", func() {
			rec, err := model.New(cat, nil)
			So(err, ShouldBeNil)
			So(len(rec.Modules), ShouldEqual, len(cat.ModuleIDs()))
		})

		Convey("When the focus names an unknown module", func() {
			_, err := model.New(cat, []string{"M1", "M9"})
			So(errors.Is(err, rubric.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestRecordMutation(t *testing.T) {
	Convey("Given a record for M1", t, func() {
		cat := rubric.Default()
		rec, err := model.New(cat, []string{"M1"})
		So(err, ShouldBeNil)

		Convey("When setting a valid rating and comment", func() {
			So(rec.SetRating("M1", "1.2", 3), ShouldBeNil)
			So(rec.SetComment("M1", "1.2", "clear routines"), ShouldBeNil)

			cr := rec.Modules["M1"].Criteria["1.2"]
			So(cr.Rating, ShouldEqual, 3)
			So(cr.Comment, ShouldEqual, "clear routines")
		})

		Convey("When the rating is out of range", func() {
			err := rec.SetRating("M1", "1.2", 5)
			So(errors.Is(err, rubric.ErrInvalidRating), ShouldBeTrue)
		})

		Convey("When the target does not exist", func() {
			So(errors.Is(rec.SetRating("M4", "4.1", 2), rubric.ErrNotFound), ShouldBeTrue)
			So(errors.Is(rec.SetComment("M1", "9.9", "x"), rubric.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestProfiles(t *testing.T) {
	Convey("Given the built-in profiles", t, func() {
		profiles := model.DefaultProfiles()

		Convey("Then the standard preset focuses M1 and M3", func() {
			std, ok := profiles["standard"]
			So(ok, ShouldBeTrue)
			So(std.Focus, ShouldResemble, []string{"M1", "M3"})
			So(std.Weights["M3"], ShouldEqual, 1.2)
		})

		Convey("When applying a preset to a record", func() {
			cat := rubric.Default()
			rec, err := model.New(cat, profiles["climate-focus"].Focus)
			So(err, ShouldBeNil)

			profiles["climate-focus"].Apply(rec)
			So(rec.ProfileFocus, ShouldResemble, []string{"M1", "M4"})
			So(rec.Weights["M4"], ShouldEqual, 1.2)

			Convey("And mutating the record leaves the preset untouched", func() {
				rec.Weights["M4"] = 9
				So(profiles["climate-focus"].Weights["M4"], ShouldEqual, 1.2)
			})
		})
	})
}

func TestLoadProfiles(t *testing.T) {
	Convey("Given a profiles YAML file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "profiles.yaml")
		data := "ms-example:\n  focus: [\"M2\", \"M4\"]\n  weights:\n    M2: 1.3\n    M4: 1.1\n"
		So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			profiles, err := model.LoadProfiles(path)
			So(err, ShouldBeNil)

			p, ok := profiles["ms-example"]
			So(ok, ShouldBeTrue)
			So(p.Focus, ShouldResemble, []string{"M2", "M4"})
			So(p.Weights["M2"], ShouldEqual, 1.3)
		})

		Convey("When the file is missing", func() {
			_, err := model.LoadProfiles(filepath.Join(dir, "nope.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
