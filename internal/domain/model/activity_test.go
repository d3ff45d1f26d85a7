package model_test

import (
	"errors"
	"fmt"
	"testing"

	model "github.com/okian/signup/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	convey.Convey("Given an Activity with participants", t, func() {
		a := model.Activity{
			Name:            "Chess Club",
			Description:     "Learn strategies",
			Schedule:        "Fridays",
			MaxParticipants: 12,
			Participants:    []string{"a@example.com", "b@example.com"},
		}

		convey.Convey("When checking membership", func() {
			convey.Convey("Then registered emails should be found", func() {
				convey.So(a.HasParticipant("a@example.com"), convey.ShouldBeTrue)
				convey.So(a.HasParticipant("b@example.com"), convey.ShouldBeTrue)
			})

			convey.Convey("And unknown emails should not be found", func() {
				convey.So(a.HasParticipant("c@example.com"), convey.ShouldBeFalse)
				convey.So(a.HasParticipant(""), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When cloning", func() {
			c := a.Clone()
			c.Participants[0] = "changed@example.com"
			c.Participants = append(c.Participants, "new@example.com")

			convey.Convey("Then the original participants should be untouched", func() {
				convey.So(a.Participants, convey.ShouldResemble, []string{"a@example.com", "b@example.com"})
				convey.So(c.Name, convey.ShouldEqual, a.Name)
				convey.So(c.MaxParticipants, convey.ShouldEqual, a.MaxParticipants)
			})
		})
	})

	convey.Convey("Given an Activity without participants", t, func() {
		a := model.Activity{Name: "Empty"}

		convey.Convey("When cloning", func() {
			c := a.Clone()

			convey.Convey("Then participants should be an empty, non-nil slice", func() {
				convey.So(c.Participants, convey.ShouldNotBeNil)
				convey.So(c.Participants, convey.ShouldHaveLength, 0)
			})
		})
	})
}

func TestDefaultCatalog(t *testing.T) {
	convey.Convey("Given the default catalog", t, func() {
		catalog := model.DefaultCatalog()

		convey.Convey("Then it should contain the well-known activities", func() {
			names := make([]string, 0, len(catalog))
			for _, a := range catalog {
				names = append(names, a.Name)
			}
			convey.So(names, convey.ShouldContain, "Chess Club")
			convey.So(names, convey.ShouldContain, "Programming Class")
			convey.So(names, convey.ShouldContain, "Basketball Club")
		})

		convey.Convey("And names and seeded emails should be unique", func() {
			seen := make(map[string]bool)
			for _, a := range catalog {
				convey.So(seen[a.Name], convey.ShouldBeFalse)
				seen[a.Name] = true

				emails := make(map[string]bool)
				for _, p := range a.Participants {
					convey.So(emails[p], convey.ShouldBeFalse)
					emails[p] = true
				}
				convey.So(a.MaxParticipants, convey.ShouldBeGreaterThan, 0)
			}
		})

		convey.Convey("And each call should return an independent copy", func() {
			catalog[0].Participants[0] = "mutated@example.com"
			fresh := model.DefaultCatalog()
			convey.So(fresh[0].Participants[0], convey.ShouldNotEqual, "mutated@example.com")
		})
	})
}

func TestError(t *testing.T) {
	convey.Convey("Given a registry error", t, func() {
		err := model.NewError(model.ErrNotFound, "Activity not found")

		convey.Convey("Then its message should be the client-facing text", func() {
			convey.So(err.Error(), convey.ShouldEqual, "Activity not found")
		})

		convey.Convey("And it should match its kind, even when wrapped", func() {
			wrapped := fmt.Errorf("signup: %w", err)
			convey.So(errors.Is(wrapped, model.ErrNotFound), convey.ShouldBeTrue)
			convey.So(errors.Is(wrapped, model.ErrConflict), convey.ShouldBeFalse)

			var target *model.Error
			convey.So(errors.As(wrapped, &target), convey.ShouldBeTrue)
			convey.So(target.Msg, convey.ShouldEqual, "Activity not found")
		})
	})
}
