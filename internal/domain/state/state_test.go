package state_test

import (
	"errors"
	"testing"

	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/presentation"
	"github.com/okian/habitat/internal/domain/state"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReducers(t *testing.T) {
	Convey("Given the initial state", t, func() {
		s := state.New()
		before := s

		Convey("Then it should hold Earth on the calculator tab", func() {
			So(s.Parameters, ShouldResemble, habitability.EarthBaseline())
			So(s.Tab, ShouldEqual, state.TabCalculator)
			So(s.SelectedPlanet, ShouldBeEmpty)
		})

		Convey("When setting a parameter", func() {
			next, err := state.SetParameter(s, habitability.Temperature, habitability.Number(-10))

			Convey("Then only the new state should change", func() {
				So(err, ShouldBeNil)
				So(next.Parameters.Temperature, ShouldEqual, -10)
				So(s, ShouldResemble, before)
			})
		})

		Convey("When setting a parameter outside its input range", func() {
			hot, err := state.SetParameter(s, habitability.Temperature, habitability.Number(462))
			So(err, ShouldBeNil)
			slow, err := state.SetParameter(s, habitability.RotationPeriod, habitability.Number(1))
			So(err, ShouldBeNil)

			Convey("Then the value should be clamped", func() {
				So(hot.Parameters.Temperature, ShouldEqual, 50)
				So(slow.Parameters.RotationPeriod, ShouldEqual, 6)
			})
		})

		Convey("When toggling a boolean parameter", func() {
			dry, err := state.SetParameter(s, habitability.HasWater, habitability.Bool(false))
			So(err, ShouldBeNil)
			So(dry.Parameters.HasWater, ShouldBeFalse)
			So(habitability.Score(dry.Parameters), ShouldEqual, 70)
		})

		Convey("When the parameter is unknown or the kind is wrong", func() {
			_, err := state.SetParameter(s, "albedo", habitability.Number(1))
			So(errors.Is(err, habitability.ErrUnknownParameter), ShouldBeTrue)
			same, err := state.SetParameter(s, habitability.HasWater, habitability.Number(1))
			So(errors.Is(err, habitability.ErrKindMismatch), ShouldBeTrue)
			So(same, ShouldResemble, before)
		})

		Convey("When switching tabs", func() {
			next, err := state.SetTab(s, state.TabExoplanets)
			So(err, ShouldBeNil)
			So(next.Tab, ShouldEqual, state.TabExoplanets)
			So(s.Tab, ShouldEqual, state.TabCalculator)

			_, err = state.SetTab(s, state.Tab("settings"))
			So(errors.Is(err, state.ErrUnknownTab), ShouldBeTrue)
		})

		Convey("When selecting and clearing a planet", func() {
			sel := state.SelectPlanet(s, "Mars")
			So(sel.SelectedPlanet, ShouldEqual, "Mars")
			So(sel.Parameters, ShouldResemble, s.Parameters)
			So(state.ClearSelection(sel).SelectedPlanet, ShouldBeEmpty)
			So(s.SelectedPlanet, ShouldBeEmpty)
		})

		Convey("When loading a catalog body", func() {
			c, err := catalog.Default()
			So(err, ShouldBeNil)
			venus, err := c.Planet("Venus")
			So(err, ShouldBeNil)
			onPlanets, _ := state.SetTab(s, state.TabPlanets)
			loaded := state.LoadPlanet(onPlanets, venus.Name, venus.Parameters)

			Convey("Then its raw parameters should be copied in", func() {
				So(loaded.Parameters, ShouldResemble, venus.Parameters)
				So(loaded.Parameters.Temperature, ShouldEqual, 462)
				So(loaded.SelectedPlanet, ShouldEqual, "Venus")
				So(loaded.Tab, ShouldEqual, state.TabCalculator)
			})

			Convey("And Reset should restore the initial state", func() {
				So(state.Reset(loaded), ShouldResemble, state.New())
			})
		})
	})
}

func TestParseTab(t *testing.T) {
	Convey("Given tab names", t, func() {
		tab, err := state.ParseTab("Resources")
		So(err, ShouldBeNil)
		So(tab, ShouldEqual, state.TabResources)
		So(len(state.Tabs()), ShouldEqual, 5)
	})
}

func TestClamp(t *testing.T) {
	Convey("Given a parameter set far outside the input ranges", t, func() {
		p := habitability.ParameterSet{
			Temperature: -300, Gravity: 0, OxygenLevel: -1, CarbonDioxideLevel: 150,
			DistanceToStar: 9, SolarRadiation: 5, VolcanicActivity: 2, StormFrequency: -1,
			AtmosphereDensity: 92, RotationPeriod: 243, HasWater: true,
		}
		c := state.Clamp(p)

		Convey("Then every numeric field should sit on a bound", func() {
			So(c.Temperature, ShouldEqual, -50)
			So(c.Gravity, ShouldEqual, 0.1)
			So(c.OxygenLevel, ShouldEqual, 0)
			So(c.CarbonDioxideLevel, ShouldEqual, 100)
			So(c.DistanceToStar, ShouldEqual, 2)
			So(c.SolarRadiation, ShouldEqual, 2)
			So(c.VolcanicActivity, ShouldEqual, 1)
			So(c.StormFrequency, ShouldEqual, 0)
			So(c.AtmosphereDensity, ShouldEqual, 2)
			So(c.RotationPeriod, ShouldEqual, 48)
		})

		Convey("And booleans should be untouched", func() {
			So(c.HasWater, ShouldBeTrue)
			So(c.MagneticField, ShouldBeFalse)
		})

		Convey("And the Earth baseline should already be in range", func() {
			So(state.Clamp(habitability.EarthBaseline()), ShouldResemble, habitability.EarthBaseline())
		})
	})

	Convey("Given the published ranges", t, func() {
		rs := state.Ranges()
		So(len(rs), ShouldEqual, 10)
		_, ok := state.RangeOf(habitability.HasWater)
		So(ok, ShouldBeFalse)
	})
}

func TestDerive(t *testing.T) {
	Convey("Given the initial state and the embedded catalog", t, func() {
		c, err := catalog.Default()
		So(err, ShouldBeNil)
		v := state.Derive(state.New(), c)

		Convey("Then the view should combine score, tiers and technologies", func() {
			So(v.Assessment.Score, ShouldEqual, 100)
			So(v.ColorTier, ShouldResemble, presentation.HighlyHabitable)
			So(v.MessageTier, ShouldResemble, presentation.PotentiallyHabitable)
			So(v.Rendering.ShowWater, ShouldBeTrue)
			So(len(v.Technologies), ShouldEqual, 6)
		})

		Convey("Then a nil catalog should yield no technologies", func() {
			So(state.Derive(state.New(), nil).Technologies, ShouldBeEmpty)
		})
	})
}
