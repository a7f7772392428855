package rubric_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/askolte/rubricform/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		cat := rubric.Default()

		Convey("Then it lists the four modules in order", func() {
			So(cat.ModuleIDs(), ShouldResemble, []string{"M1", "M2", "M3", "M4"})
		})

		Convey("Then every module has a title and five criteria", func() {
			for _, id := range cat.ModuleIDs() {
				title, err := cat.Title(id)
				So(err, ShouldBeNil)
				So(title, ShouldNotBeEmpty)

				crits, err := cat.Criteria(id)
				So(err, ShouldBeNil)
				So(len(crits), ShouldEqual, 5)
			}
		})

		Convey("Then criteria come back in catalog order", func() {
			crits, err := cat.Criteria("M1")
			So(err, ShouldBeNil)
			So(crits[0].ID, ShouldEqual, "1.1")
			So(crits[4].ID, ShouldEqual, "1.5")
		})

		Convey("When looking up an unknown module", func() {
			_, err := cat.Title("M9")
			So(errors.Is(err, rubric.ErrNotFound), ShouldBeTrue)

			_, err = cat.Criteria("M9")
			So(errors.Is(err, rubric.ErrNotFound), ShouldBeTrue)
		})

		Convey("When looking up a single criterion", func() {
			text, err := cat.CriterionText("M3", "3.2")
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "purposefully")

			_, err = cat.CriterionText("M3", "9.9")
			So(errors.Is(err, rubric.ErrNotFound), ShouldBeTrue)
		})

		Convey("When requesting suggested comments", func() {
			Convey("Then rating 0 returns the not-observable text", func() {
				text, err := cat.SuggestedComment(0)
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Not observable")
			})

			Convey("Then every step on the scale has a comment", func() {
				for r := rubric.MinRating; r <= rubric.MaxRating; r++ {
					text, err := cat.SuggestedComment(r)
					So(err, ShouldBeNil)
					So(text, ShouldNotBeEmpty)
				}
			})

			Convey("Then out-of-range ratings fail", func() {
				_, err := cat.SuggestedComment(5)
				So(errors.Is(err, rubric.ErrInvalidRating), ShouldBeTrue)

				_, err = cat.SuggestedComment(-1)
				So(errors.Is(err, rubric.ErrInvalidRating), ShouldBeTrue)
			})
		})

		Convey("When requesting rating labels", func() {
			label, err := cat.RatingLabel(4)
			So(err, ShouldBeNil)
			So(label, ShouldContainSubstring, "very strong")

			_, err = cat.RatingLabel(7)
			So(errors.Is(err, rubric.ErrInvalidRating), ShouldBeTrue)
		})

		Convey("Then Has reports catalog membership", func() {
			So(cat.Has("M2"), ShouldBeTrue)
			So(cat.Has("X1"), ShouldBeFalse)
		})
	})
}

func TestNewValidation(t *testing.T) {
	Convey("Given catalog construction", t, func() {
		valid := []rubric.Module{
			{ID: "A", Title: "Alpha", Criteria: []rubric.Criterion{{ID: "a.1", Text: "first"}}},
		}

		Convey("When the name is empty", func() {
			_, err := rubric.New("", valid, nil, nil)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When there are no modules", func() {
			_, err := rubric.New("r", nil, nil, nil)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a module has no criteria", func() {
			_, err := rubric.New("r", []rubric.Module{{ID: "A", Title: "Alpha"}}, nil, nil)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When module ids collide", func() {
			_, err := rubric.New("r", append(valid, valid[0]), nil, nil)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When criterion ids collide", func() {
			mods := []rubric.Module{
				{ID: "A", Title: "Alpha", Criteria: []rubric.Criterion{
					{ID: "a.1", Text: "first"},
					{ID: "a.1", Text: "second"},
				}},
			}
			_, err := rubric.New("r", mods, nil, nil)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the data is valid", func() {
			cat, err := rubric.New("r", valid, nil, nil)
			So(err, ShouldBeNil)
			So(cat.ModuleIDs(), ShouldResemble, []string{"A"})
		})
	})
}

func TestLoadYAML(t *testing.T) {
	Convey("Given a catalog YAML file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.yaml")

		Convey("When it round-trips the built-in catalog", func() {
			data, err := rubric.EncodeYAML(rubric.Default())
			So(err, ShouldBeNil)
			So(os.WriteFile(path, data, 0o600), ShouldBeNil)

			cat, err := rubric.Load(path)
			So(err, ShouldBeNil)
			So(cat.ModuleIDs(), ShouldResemble, rubric.Default().ModuleIDs())

			text, err := cat.SuggestedComment(2)
			So(err, ShouldBeNil)
			want, _ := rubric.Default().SuggestedComment(2)
			So(text, ShouldEqual, want)
		})

		Convey("When the file carries a bad rating key", func() {
			bad := "name: r\nmodules:\n  - id: A\n    title: Alpha\n    criteria:\n      - id: a.1\n        text: first\nsuggested_comments:\n  \"9\": out of scale\n"
			So(os.WriteFile(path, []byte(bad), 0o600), ShouldBeNil)

			_, err := rubric.Load(path)
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the file does not exist", func() {
			_, err := rubric.Load(filepath.Join(dir, "missing.yaml"))
			So(errors.Is(err, rubric.ErrInvalidCatalog), ShouldBeTrue)
		})
	})
}
