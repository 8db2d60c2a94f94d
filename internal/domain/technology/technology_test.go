package technology_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/technology"
	. "github.com/smartystreets/goconvey/convey"
)

func req(name string, v habitability.Value) technology.Requirement {
	return technology.Requirement{Parameter: name, Value: v}
}

func TestAvailable(t *testing.T) {
	Convey("Given a water requirement", t, func() {
		reqs := technology.Requirements{req(habitability.HasWater, habitability.Bool(true))}
		p := habitability.EarthBaseline()

		Convey("Then a dry planet should never qualify", func() {
			p.HasWater = false
			p.OxygenLevel = 100
			p.MagneticField = true
			So(technology.Available(reqs, p), ShouldBeFalse)
		})

		Convey("Then a wet planet should qualify", func() {
			So(technology.Available(reqs, p), ShouldBeTrue)
		})
	})

	Convey("Given a false boolean requirement", t, func() {
		reqs := technology.Requirements{req(habitability.MagneticField, habitability.Bool(false))}

		Convey("Then it should need exact equality", func() {
			p := habitability.EarthBaseline()
			So(technology.Available(reqs, p), ShouldBeFalse)
			p.MagneticField = false
			So(technology.Available(reqs, p), ShouldBeTrue)
		})
	})

	Convey("Given a numeric minimum on carbon dioxide", t, func() {
		reqs := technology.Requirements{req(habitability.CarbonDioxideLevel, habitability.Number(0.5))}
		p := habitability.EarthBaseline()

		Convey("Then values at or above the threshold should qualify", func() {
			p.CarbonDioxideLevel = 0.6
			So(technology.Available(reqs, p), ShouldBeTrue)
			p.CarbonDioxideLevel = 0.5
			So(technology.Available(reqs, p), ShouldBeTrue)
		})

		Convey("Then values below it should not", func() {
			p.CarbonDioxideLevel = 0.4
			So(technology.Available(reqs, p), ShouldBeFalse)
		})
	})

	Convey("Given malformed requirements", t, func() {
		p := habitability.EarthBaseline()

		Convey("Then a kind mismatch should not be satisfied", func() {
			reqs := technology.Requirements{req(habitability.HasWater, habitability.Number(1))}
			So(technology.Available(reqs, p), ShouldBeFalse)
		})

		Convey("Then an unknown parameter should not be satisfied", func() {
			reqs := technology.Requirements{req("albedo", habitability.Number(0))}
			So(technology.Available(reqs, p), ShouldBeFalse)
		})
	})

	Convey("Given no requirements", t, func() {
		Convey("Then the technology should be available", func() {
			So(technology.Available(nil, habitability.ParameterSet{}), ShouldBeTrue)
		})
	})
}

func TestFilterAndExplain(t *testing.T) {
	Convey("Given a small technology list", t, func() {
		techs := []technology.Technology{
			{Name: "Habitat"},
			{Name: "Fuel Plant", Requirements: technology.Requirements{
				req(habitability.CarbonDioxideLevel, habitability.Number(0.3)),
				req(habitability.HasWater, habitability.Bool(true)),
			}},
			{Name: "Ice Extractor", Requirements: technology.Requirements{
				req(habitability.HasWater, habitability.Bool(true)),
			}},
		}
		earth := habitability.EarthBaseline()

		Convey("When filtering for Earth", func() {
			got := technology.Filter(techs, earth)

			Convey("Then catalog order should be preserved", func() {
				So(len(got), ShouldEqual, 2)
				So(got[0].Name, ShouldEqual, "Habitat")
				So(got[1].Name, ShouldEqual, "Ice Extractor")
			})
		})

		Convey("When explaining the fuel plant", func() {
			unmet := technology.Explain(techs[1].Requirements, earth)

			Convey("Then only the carbon dioxide minimum should be listed", func() {
				So(len(unmet), ShouldEqual, 1)
				So(unmet[0].Parameter, ShouldEqual, habitability.CarbonDioxideLevel)
				So(unmet[0].String(), ShouldEqual, "carbonDioxideLevel >= 0.3")
			})
		})

		Convey("When assessing every technology", func() {
			v := technology.Assess(techs, earth)

			Convey("Then verdicts should mirror Filter", func() {
				So(len(v), ShouldEqual, 3)
				So(v[0].Available, ShouldBeTrue)
				So(v[1].Available, ShouldBeFalse)
				So(v[1].Unmet, ShouldResemble, []string{"carbonDioxideLevel >= 0.3"})
				So(v[2].Available, ShouldBeTrue)
			})
		})
	})
}

func TestRequirementsJSON(t *testing.T) {
	Convey("Given a requirements object", t, func() {
		var rs technology.Requirements
		err := json.Unmarshal([]byte(`{"oxygenLevel": 15, "hasWater": true}`), &rs)

		Convey("Then it should decode sorted by parameter name", func() {
			So(err, ShouldBeNil)
			So(rs, ShouldResemble, technology.Requirements{
				req(habitability.HasWater, habitability.Bool(true)),
				req(habitability.OxygenLevel, habitability.Number(15)),
			})
		})

		Convey("And encode back to an object", func() {
			out, err := json.Marshal(rs)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `{"hasWater":true,"oxygenLevel":15}`)
		})
	})
}
