package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered returns the metric family with the given full name.
func gathered(reg *prometheus.Registry, name string) *dto.MetricFamily {
	families, err := reg.Gather()
	if err != nil {
		return nil
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

// counterValue sums the counters in a family whose labels include want.
func counterValue(f *dto.MetricFamily, want map[string]string) float64 {
	if f == nil {
		return 0
	}
	total := 0.0
	for _, m := range f.GetMetric() {
		match := true
		for k, v := range want {
			found := false
			for _, lp := range m.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
				}
			}
			match = match && found
		}
		if match {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then collectors should use the namespace and subsystem", func() {
			So(manager, ShouldNotBeNil)
			manager.RecordEvaluation("api", 100)
			So(gathered(registry, "test_unit_evaluations_total"), ShouldNotBeNil)
		})

		Convey("Then empty values should keep the defaults", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(reg))
			So(m.namespace, ShouldEqual, "habitat")
			So(m.subsystem, ShouldEqual, "engine")
			So(m.histogramBuckets, ShouldResemble, DefaultLatencyBuckets)
		})
	})
}

func TestScoringMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording evaluations", func() {
			m.RecordEvaluation("api", 100)
			m.RecordEvaluation("api", 0)
			m.RecordEvaluation("batch", 55)

			Convey("Then counts should be split by source", func() {
				f := gathered(registry, "habitat_engine_evaluations_total")
				So(counterValue(f, map[string]string{"source": "api"}), ShouldEqual, 2)
				So(counterValue(f, map[string]string{"source": "batch"}), ShouldEqual, 1)
			})

			Convey("And scores should land in the histogram", func() {
				f := gathered(registry, "habitat_engine_score")
				So(f, ShouldNotBeNil)
				h := f.GetMetric()[0].GetHistogram()
				So(h.GetSampleCount(), ShouldEqual, 3)
				So(h.GetSampleSum(), ShouldEqual, 155)
			})
		})

		Convey("When recording penalties and tiers", func() {
			m.RecordPenalty("water")
			m.RecordPenalty("water")
			m.RecordTier(PolicyColor, "uninhabitable")
			m.RecordTier(PolicyMessage, "not_habitable")

			So(counterValue(gathered(registry, "habitat_engine_penalties_total"), map[string]string{"rule": "water"}), ShouldEqual, 2)
			f := gathered(registry, "habitat_engine_tier_assignments_total")
			So(counterValue(f, map[string]string{"policy": PolicyColor}), ShouldEqual, 1)
			So(counterValue(f, map[string]string{"policy": PolicyMessage, "tier": "not_habitable"}), ShouldEqual, 1)
		})

		Convey("When recording technology checks", func() {
			m.RecordTechnologyCheck("Ice Extractor", true)
			m.RecordTechnologyCheck("Fuel Production Plant", false)

			f := gathered(registry, "habitat_engine_technology_checks_total")
			So(counterValue(f, map[string]string{"available": "true"}), ShouldEqual, 1)
			So(counterValue(f, map[string]string{"available": "false"}), ShouldEqual, 1)
		})

		Convey("When recording latency", func() {
			So(func() { m.RecordEvaluationLatency(0.2) }, ShouldNotPanic)
		})
	})
}

func TestCatalogMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When updating table sizes", func() {
			So(m.UpdateCatalogRecords(TablePlanets, 4), ShouldBeNil)
			So(m.UpdateCatalogRecords(TableExoplanets, 10), ShouldBeNil)
			m.UpdateRankedBodies(14)

			Convey("Then gauges should hold the sizes", func() {
				f := gathered(registry, "habitat_engine_catalog_records")
				So(f, ShouldNotBeNil)
				So(len(f.GetMetric()), ShouldEqual, 2)
				rb := gathered(registry, "habitat_engine_ranked_bodies")
				So(rb.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 14)
			})
		})

		Convey("When the table is unknown", func() {
			err := m.UpdateCatalogRecords("moons", 1)
			So(errors.Is(err, ErrUnknownTable), ShouldBeTrue)
		})

		Convey("When recording lookups", func() {
			m.RecordCatalogLookup(TablePlanets, true)
			m.RecordCatalogLookup(TablePlanets, false)
			f := gathered(registry, "habitat_engine_catalog_lookups_total")
			So(counterValue(f, map[string]string{"found": "false"}), ShouldEqual, 1)
		})
	})
}

func TestHTTPAndErrorMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		m.RecordHTTPRequest("/v1/evaluate", "POST", "200")
		m.RecordHTTPRequestDuration("/v1/evaluate", "POST", "200", 1.5)
		m.RecordErrorByComponent("api", "bad_request")
		m.RecordErrorByEndpoint("/v1/evaluate", "POST", "bad_request")

		So(counterValue(gathered(registry, "habitat_engine_http_requests_total"), map[string]string{"status_code": "200"}), ShouldEqual, 1)
		So(gathered(registry, "habitat_engine_http_request_duration_milliseconds"), ShouldNotBeNil)
		So(counterValue(gathered(registry, "habitat_engine_errors_by_component_total"), map[string]string{"component": "api"}), ShouldEqual, 1)
		So(counterValue(gathered(registry, "habitat_engine_errors_by_endpoint_total"), nil), ShouldEqual, 1)
	})
}

func TestRuntimeMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		m.UpdateMemory(1024, 4096)
		m.UpdateGoroutines(12)
		m.RecordGCPause(0.2)

		Convey("Then the runtime gauges should hold the last sample", func() {
			mem := gathered(registry, "habitat_engine_memory_bytes")
			So(mem, ShouldNotBeNil)
			So(len(mem.GetMetric()), ShouldEqual, 2)
			g := gathered(registry, "habitat_engine_goroutines")
			So(g.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 12)
			pause := gathered(registry, "habitat_engine_gc_pause_milliseconds")
			So(pause.GetMetric()[0].GetHistogram().GetSampleCount(), ShouldEqual, 1)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level helpers should record without panicking", func() {
			So(func() {
				RecordEvaluation("test", 50)
				RecordPenalty("gravity")
				RecordTier(PolicyColor, "moderately_habitable")
				RecordEvaluationLatency(0.1)
				RecordTechnologyCheck("Artificial Habitat", true)
				_ = UpdateCatalogRecords(TableResources, 8)
				UpdateRankedBodies(14)
				RecordCatalogLookup(TableExoplanets, true)
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequestDuration("/healthz", "GET", "200", 0.1)
				RecordErrorByComponent("test", "none")
				RecordErrorByEndpoint("/healthz", "GET", "none")
				UpdateMemory(1, 2)
				UpdateGoroutines(3)
				RecordGCPause(0.01)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should expose the recorded families", func() {
			RecordEvaluation("test", 50)
			So(gathered(GetRegistry(), "habitat_engine_evaluations_total"), ShouldNotBeNil)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager rebuilt with a namespace, subsystem and buckets", t, func() {
		before := GetRegistry()
		Init(WithNamespace("planet"), WithSubsystem("calc"), WithHistogramBuckets([]float64{2, 20, 200}))
		defer Init()

		RecordEvaluation("api", 90)
		RecordEvaluationLatency(3)

		Convey("Then a fresh registry should expose the renamed families", func() {
			So(GetRegistry(), ShouldNotPointTo, before)
			So(gathered(GetRegistry(), "planet_calc_evaluations_total"), ShouldNotBeNil)
			So(gathered(GetRegistry(), "habitat_engine_evaluations_total"), ShouldBeNil)
		})

		Convey("And latency histograms should use the configured buckets", func() {
			f := gathered(GetRegistry(), "planet_calc_evaluation_latency_milliseconds")
			So(f, ShouldNotBeNil)
			buckets := f.GetMetric()[0].GetHistogram().GetBucket()
			So(len(buckets), ShouldEqual, 3)
			So(buckets[0].GetUpperBound(), ShouldEqual, 2)
			So(buckets[1].GetCumulativeCount(), ShouldEqual, 1)
		})
	})

	Convey("Given Init without options", t, func() {
		Init()

		Convey("Then the default names should be restored", func() {
			RecordEvaluation("api", 90)
			So(gathered(GetRegistry(), "habitat_engine_evaluations_total"), ShouldNotBeNil)
		})
	})
}
