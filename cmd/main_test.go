package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/habitat/internal/app"
	"github.com/okian/habitat/internal/config"
	"github.com/okian/habitat/pkg/logger"
	"github.com/okian/habitat/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("HABITAT_ADDR", ":8080")
			_ = os.Setenv("HABITAT_MAX_BATCH_SIZE", "25")
			defer func() {
				_ = os.Unsetenv("HABITAT_ADDR")
				_ = os.Unsetenv("HABITAT_MAX_BATCH_SIZE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("HABITAT_ADDR", "")
			defer func() { _ = os.Unsetenv("HABITAT_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service and the default configuration", t, func() {
		cfg := config.New()
		svc := app.New(app.WithMaxBatchSize(cfg.MaxBatchSize))
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()
		h := newHandler(cfg, svc)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		convey.Convey("Then the API should be mounted", func() {
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/v1/rubric").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the docs should be mounted", func() {
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the calculator page should be served at the root", func() {
			w := get("/")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "Habitability Calculator")
		})

		convey.Convey("And unknown API routes should still 404 as JSON", func() {
			w := get("/v1/unknown")
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"code":"not_found"`)
		})

		convey.Convey("And evaluation should work end to end", func() {
			body := `{"temperature":15,"gravity":1,"hasWater":true,"oxygenLevel":21,` +
				`"carbonDioxideLevel":0.04,"distanceToStar":1,"solarRadiation":1,` +
				`"volcanicActivity":0.5,"stormFrequency":0.3,"atmosphereDensity":1,` +
				`"magneticField":true,"rotationPeriod":24}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(body))
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"score":100`)
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given a configured metrics namespace, subsystem and buckets", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "planets"
		cfg.MetricsSubsystem = "api"
		cfg.LatencyBucketsMS = []float64{1, 10, 100}
		metrics.Init(metricsOptions(cfg)...)
		defer metrics.Init()

		svc := app.New()
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()
		h := newHandler(cfg, svc)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		convey.Convey("Then /metrics should expose the configured names", func() {
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			body := w.Body.String()
			convey.So(body, convey.ShouldContainSubstring, "planets_api_http_requests_total")
			convey.So(body, convey.ShouldContainSubstring, `planets_api_http_request_duration_milliseconds_bucket{endpoint="healthz",method="GET",status_code="200",le="10"}`)
			convey.So(body, convey.ShouldNotContainSubstring, "habitat_engine_")
		})
	})
}

func TestRuntimeMetrics(t *testing.T) {
	convey.Convey("Given the runtime metrics updater", t, func() {
		convey.Convey("When sampling once", func() {
			convey.So(updateRuntimeMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startRuntimeMetricsUpdater(ctx)
				close(done)
			}()

			convey.Convey("Then the updater should return", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("runtime metrics updater did not stop")
				}
			})
		})
	})
}
