package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/habitat/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HABITAT_ADDR", ":8080")
			_ = os.Setenv("HABITAT_MAX_BATCH_SIZE", "25")
			_ = os.Setenv("HABITAT_LOG_FORMAT", "json")
			_ = os.Setenv("HABITAT_COMPRESSION", "false")
			_ = os.Setenv("HABITAT_METRICS_SUBSYSTEM", "api")
			_ = os.Setenv("HABITAT_ALLOWED_ORIGINS", "http://localhost:3000, https://habitat.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 25)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Compression, convey.ShouldBeFalse)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://localhost:3000", "https://habitat.example"})
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "api")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
max_batch_size: 10
max_leaderboard_limit: 5
request_timeout_ms: 250
catalog_path: /etc/habitat/catalog.yaml
metrics_namespace: planets
latency_buckets_ms: [1, 10, 100]
allowed_origins:
  - https://a.example
  - https://b.example
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("HABITAT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 10)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 5)
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 250)
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "/etc/habitat/catalog.yaml")
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "planets")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "engine")
				convey.So(cfg.LatencyBucketsMS, convey.ShouldResemble, []float64{1, 10, 100})
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
max_batch_size: 10
log_level: debug
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("HABITAT_CONFIG", tmpFile)
			_ = os.Setenv("HABITAT_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")    // env
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 10) // file
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 5000) // default
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("HABITAT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HABITAT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HABITAT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive limit", func() {
			_ = os.Setenv("HABITAT_MAX_LEADERBOARD_LIMIT", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"HABITAT_CONFIG", "HABITAT_ADDR", "HABITAT_LOG_LEVEL", "HABITAT_LOG_FORMAT",
		"HABITAT_ALLOWED_ORIGINS", "HABITAT_MAX_BATCH_SIZE", "HABITAT_MAX_LEADERBOARD_LIMIT",
		"HABITAT_REQUEST_TIMEOUT_MS", "HABITAT_COMPRESSION", "HABITAT_CATALOG_PATH",
		"HABITAT_METRICS_NAMESPACE", "HABITAT_METRICS_SUBSYSTEM", "HABITAT_LATENCY_BUCKETS_MS",
	} {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "habitat-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return f.Name()
}
