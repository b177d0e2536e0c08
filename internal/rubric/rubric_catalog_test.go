package rubric_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"

	. "github.com/smartystreets/goconvey/convey"
)

func fullRubric(t *testing.T, id rubric.PositionID) rubric.PositionRubric {
	t.Helper()
	r, err := rubric.NewPositionRubric(id)
	if err != nil {
		t.Fatal(err)
	}
	fw, _ := rubric.FrameworkByCode(r.Framework)
	for _, letter := range fw.Letters() {
		for lvl := 1; lvl <= rubric.NumLevels; lvl++ {
			r, err = r.WithCriterion(letter, lvl, "text "+letter)
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	return r
}

func TestFramework(t *testing.T) {
	Convey("Given the two framework variants", t, func() {
		ascend := rubric.AscendFramework()
		north := rubric.NorthFramework()

		Convey("Pillars come in canonical order", func() {
			So(ascend.Letters(), ShouldResemble, []string{"A", "S", "C", "E", "N", "D"})
			So(north.Letters(), ShouldResemble, []string{"N", "O", "R", "T", "H"})
		})

		Convey("Score ranges are framework specific", func() {
			So(ascend.InRange(5), ShouldBeFalse)
			So(north.InRange(5), ShouldBeTrue)
			So(north.InRange(11), ShouldBeFalse)
			So(ascend.InRange(0), ShouldBeFalse)
		})

		Convey("NORTH scores map onto rating bands", func() {
			cases := map[int]int{1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 8: 3, 9: 4, 10: 4}
			for score, want := range cases {
				lvl, err := north.Level(score)
				So(err, ShouldBeNil)
				So(lvl, ShouldEqual, want)
			}
		})

		Convey("ASCEND scores map 1:1", func() {
			for score := 1; score <= 4; score++ {
				lvl, err := ascend.Level(score)
				So(err, ShouldBeNil)
				So(lvl, ShouldEqual, score)
			}
			_, err := ascend.Level(5)
			So(errors.Is(err, rubricerrors.ErrScoreOutOfRange), ShouldBeTrue)
		})

		Convey("Pillars returns a copy", func() {
			p := ascend.Pillars()
			p[0].Name = "changed"
			So(rubric.AscendFramework().Pillars()[0].Name, ShouldEqual, "Accountability")
		})

		Convey("Unknown framework codes are rejected", func() {
			_, err := rubric.FrameworkByCode("SOUTH")
			So(errors.Is(err, rubricerrors.ErrUnknownFramework), ShouldBeTrue)
		})
	})
}

func TestPositions(t *testing.T) {
	Convey("Positions resolve to their framework", t, func() {
		for id, want := range map[rubric.PositionID]rubric.FrameworkCode{
			rubric.PositionRA:               rubric.Ascend,
			rubric.PositionCustodian:        rubric.Ascend,
			rubric.PositionAdminSupport:     rubric.Ascend,
			rubric.PositionRD:               rubric.North,
			rubric.PositionAD:               rubric.North,
			rubric.PositionSeniorLeadership: rubric.North,
		} {
			fw, err := rubric.FrameworkFor(id)
			So(err, ShouldBeNil)
			So(fw.Code(), ShouldEqual, want)
		}
		So(rubric.Positions(), ShouldHaveLength, 6)

		_, err := rubric.PositionByID("janitor")
		So(errors.Is(err, rubricerrors.ErrPositionNotFound), ShouldBeTrue)
	})
}

func TestValidateCompleteness(t *testing.T) {
	Convey("Given a position rubric", t, func() {
		Convey("When every pillar x level has text", func() {
			r := fullRubric(t, rubric.PositionRA)

			Convey("Then nothing is missing", func() {
				So(rubric.ValidateCompleteness(r), ShouldBeEmpty)
			})
		})

		Convey("When one level of one pillar is blank", func() {
			r := fullRubric(t, rubric.PositionRD)
			texts := r.Criteria["T"]
			texts[2] = "   "
			r.Criteria["T"] = texts

			Convey("Then exactly that combination is reported", func() {
				So(rubric.ValidateCompleteness(r), ShouldResemble, []rubric.MissingCriterion{
					{Position: rubric.PositionRD, Pillar: "T", Level: 3},
				})
			})
		})

		Convey("When the rubric is empty", func() {
			r, _ := rubric.NewPositionRubric(rubric.PositionCustodian)
			missing := rubric.ValidateCompleteness(r)

			Convey("Then all 24 combinations are reported in canonical order", func() {
				So(missing, ShouldHaveLength, 24)
				So(missing[0], ShouldResemble, rubric.MissingCriterion{Position: rubric.PositionCustodian, Pillar: "A", Level: 1})
				So(missing[4].Pillar, ShouldEqual, "S")
				So(missing[23], ShouldResemble, rubric.MissingCriterion{Position: rubric.PositionCustodian, Pillar: "D", Level: 4})
			})
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given a catalog with one complete rubric", t, func() {
		c := rubric.NewCatalog(fullRubric(t, rubric.PositionRA))

		Convey("GetRubric returns it", func() {
			r, err := c.GetRubric(rubric.PositionRA)
			So(err, ShouldBeNil)
			So(r.Text("A", 4), ShouldEqual, "text A")
		})

		Convey("GetRubric of an unknown position is NotFound", func() {
			_, err := c.GetRubric("dean")
			So(errors.Is(err, rubricerrors.ErrPositionNotFound), ShouldBeTrue)
		})

		Convey("Validate reports every unloaded position in full", func() {
			// 2 ASCEND positions x 24 + 3 NORTH positions x 20
			So(c.Validate(), ShouldHaveLength, 2*24+3*20)
		})

		Convey("WithCriterion rejects invalid input and leaves the original untouched", func() {
			r, _ := c.GetRubric(rubric.PositionRA)
			_, err := r.WithCriterion("O", 1, "x")
			So(errors.Is(err, rubricerrors.ErrUnknownPillar), ShouldBeTrue)
			_, err = r.WithCriterion("A", 5, "x")
			So(errors.Is(err, rubricerrors.ErrInvalidLevel), ShouldBeTrue)
			_, err = r.WithCriterion("A", 1, " ")
			So(errors.Is(err, rubricerrors.ErrEmptyCriterion), ShouldBeTrue)

			updated, err := r.WithCriterion("A", 1, "new")
			So(err, ShouldBeNil)
			So(updated.Text("A", 1), ShouldEqual, "new")
			So(r.Text("A", 1), ShouldEqual, "text A")
		})
	})
}

func TestSeed(t *testing.T) {
	Convey("Given the embedded seed", t, func() {
		res, err := rubric.DefaultSeed()

		Convey("Then every position is complete", func() {
			So(err, ShouldBeNil)
			So(res.Missing, ShouldBeEmpty)
			So(res.Catalog.Rubrics(), ShouldHaveLength, 6)
		})
	})

	Convey("Given a seed with gaps", t, func() {
		data := []byte(`
positions:
  - id: ra
    criteria:
      A:
        1: "one"
        2: ""
`)
		res, err := rubric.ParseSeedYAML(data)

		Convey("Then the gaps are reported, not rejected", func() {
			So(err, ShouldBeNil)
			So(res.Missing, ShouldContain, rubric.MissingCriterion{Position: rubric.PositionRA, Pillar: "A", Level: 2})
			So(res.Missing, ShouldNotContain, rubric.MissingCriterion{Position: rubric.PositionRA, Pillar: "A", Level: 1})
		})
	})

	Convey("Given malformed seeds", t, func() {
		cases := map[string]string{
			"empty":            "   ",
			"unknown position": "positions:\n  - id: dean\n",
			"foreign pillar":   "positions:\n  - id: rd\n    criteria:\n      A:\n        1: x\n",
			"bad level":        "positions:\n  - id: ra\n    criteria:\n      A:\n        7: x\n",
			"duplicate":        "positions:\n  - id: ra\n  - id: ra\n",
			"duplicate pillar": "positions:\n  - id: ra\n    criteria:\n      a:\n        1: x\n      A:\n        2: y\n",
		}
		for name, payload := range cases {
			Convey("Then "+name+" is rejected", func() {
				_, err := rubric.ParseSeedYAML([]byte(payload))
				So(err, ShouldNotBeNil)
			})
		}
	})

	Convey("Given a seed naming one pillar in two cases", t, func() {
		data := []byte("positions:\n  - id: ra\n    criteria:\n      a:\n        1: lower\n      A:\n        1: upper\n")

		res, err := rubric.ParseSeedYAML(data)

		Convey("Then it is rejected instead of keeping either text", func() {
			So(errors.Is(err, rubricerrors.ErrInvalidSeed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `pillar "A" and "a" both name A`)
			So(res.Catalog, ShouldBeNil)
		})
	})

	Convey("Given a seed file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "rubrics.yaml")
		So(os.WriteFile(path, []byte("positions:\n  - id: ad\n"), 0o600), ShouldBeNil)

		res, err := rubric.LoadSeedFile(path)

		So(err, ShouldBeNil)
		r, _ := res.Catalog.GetRubric(rubric.PositionAD)
		So(r.Framework, ShouldEqual, rubric.North)

		_, err = rubric.LoadSeedFile(filepath.Dir(path))
		So(err, ShouldNotBeNil)
	})
}
