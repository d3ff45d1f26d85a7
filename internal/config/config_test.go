package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/signup/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFile, convey.ShouldBeEmpty)
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DocsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.ShutdownTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefresh(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Instance, convey.ShouldBeEmpty)
			convey.So(cfg.Activities, convey.ShouldBeEmpty)
		})

		convey.Convey("And the catalog should fall back to the default activities", func() {
			catalog := cfg.Catalog()
			convey.So(len(catalog), convey.ShouldBeGreaterThan, 0)
			convey.So(catalog[0].Name, convey.ShouldEqual, "Chess Club")
		})
	})
}

func TestConfig_Catalog(t *testing.T) {
	convey.Convey("Given a config with configured activities", t, func() {
		cfg := config.New(context.Background())
		cfg.Activities = []config.Activity{
			{Name: "Robotics", Description: "Build robots", Schedule: "Mondays", MaxParticipants: 10, Participants: []string{"a@example.com"}},
			{Name: "Choir", Description: "Sing", Schedule: "Thursdays", MaxParticipants: 40},
		}

		convey.Convey("When building the catalog", func() {
			catalog := cfg.Catalog()

			convey.Convey("Then it should contain exactly the configured activities in order", func() {
				convey.So(catalog, convey.ShouldHaveLength, 2)
				convey.So(catalog[0].Name, convey.ShouldEqual, "Robotics")
				convey.So(catalog[0].MaxParticipants, convey.ShouldEqual, 10)
				convey.So(catalog[0].Participants, convey.ShouldResemble, []string{"a@example.com"})
				convey.So(catalog[1].Name, convey.ShouldEqual, "Choir")
				convey.So(catalog[1].Participants, convey.ShouldNotBeNil)
			})

			convey.Convey("And mutating it should not touch the config", func() {
				catalog[0].Participants[0] = "changed@example.com"
				convey.So(cfg.Activities[0].Participants[0], convey.ShouldEqual, "a@example.com")
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)

		convey.Convey("Then it should be valid", func() {
			convey.So(cfg.Validate(ctx), convey.ShouldBeNil)
		})

		convey.Convey("When the shutdown timeout is zero", func() {
			cfg.ShutdownTimeoutMS = 0

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "shutdown_timeout_ms")
			})
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "log_format")
			})
		})

		convey.Convey("When the metrics refresh period is negative", func() {
			cfg.MetricsRefreshMS = -1

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_refresh_ms")
			})
		})

		convey.Convey("When an activity has no name", func() {
			cfg.Activities = []config.Activity{{Name: "  "}}

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When two activities share a name", func() {
			cfg.Activities = []config.Activity{{Name: "Chess Club"}, {Name: "Chess Club"}}

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "duplicate activity")
			})
		})

		convey.Convey("When an activity seeds the same email twice", func() {
			cfg.Activities = []config.Activity{{Name: "Chess Club", Participants: []string{"a@example.com", "a@example.com"}}}

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "duplicate participant")
			})
		})
	})
}
