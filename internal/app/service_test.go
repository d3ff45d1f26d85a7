package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/okian/signup/internal/adapters/repository"
	service "github.com/okian/signup/internal/app"
	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be created but not started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithLogger(logger.Named("test")),
			service.WithCatalog([]model.Activity{{Name: "Robotics"}}),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["activities"], ShouldEqual, len(model.DefaultCatalog()))
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service with an invalid catalog", t, func() {
		svc := service.New(service.WithCatalog([]model.Activity{{Name: "Dup"}, {Name: "Dup"}}))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should fail with an invalid catalog error", func() {
				So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And operations should report it is not started", func() {
				_, err := svc.ListActivities(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				_, err = svc.Signup(ctx, "Chess Club", "a@example.com")
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				_, err = svc.Unregister(ctx, "Chess Club", "a@example.com")
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("And stopping twice should not panic", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})

		Convey("When a signup happens before a restart", func() {
			_, err := svc.Signup(ctx, "Chess Club", "keep@example.com")
			So(err, ShouldBeNil)
			svc.Stop()
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the registry should keep its state", func() {
				list, err := svc.ListActivities(ctx)
				So(err, ShouldBeNil)
				So(list[0].Participants, ShouldContain, "keep@example.com")
			})
		})
	})
}

func TestService_WithStore(t *testing.T) {
	Convey("Given a service with an injected store", t, func() {
		ctx := context.Background()
		store, err := repository.NewMemoryStore(ctx, []model.Activity{{Name: "Robotics", MaxParticipants: 5}})
		So(err, ShouldBeNil)

		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When signing up through the service", func() {
			_, err := svc.Signup(ctx, "Robotics", "ada@example.com")

			Convey("Then the injected store should see the change", func() {
				So(err, ShouldBeNil)
				a, err := store.Get(ctx, "Robotics")
				So(err, ShouldBeNil)
				So(a.Participants, ShouldResemble, []string{"ada@example.com"})
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithCatalog([]model.Activity{
			{Name: "Chess Club", Participants: []string{"a@example.com", "b@example.com"}},
			{Name: "Art Club"},
		}))

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
				So(stats, ShouldNotContainKey, "activities")
			})
		})

		Convey("When getting stats after starting", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()
			stats := svc.GetStats()

			Convey("Then it should include registry counts", func() {
				So(stats["activities"], ShouldEqual, 2)
				So(stats["participants"], ShouldEqual, 2)
				So(stats["participantsByActivity"], ShouldResemble, map[string]int{"Chess Club": 2, "Art Club": 0})
			})
		})
	})
}
