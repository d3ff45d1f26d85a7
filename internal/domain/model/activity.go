// Package model contains domain models passed between layers.
package model

import "slices"

// Activity is a named extracurricular offering and its registered participants.
type Activity struct {
	Name            string   // unique registry key
	Description     string   // free text
	Schedule        string   // free text, e.g. "Fridays, 3:30 PM - 5:00 PM"
	MaxParticipants int      // advisory capacity, not enforced on signup
	Participants    []string // emails in signup order, no duplicates
}

// HasParticipant reports whether email is registered for the activity.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy so callers can hold it without sharing the
// participant slice.
func (a Activity) Clone() Activity {
	a.Participants = slices.Clone(a.Participants)
	if a.Participants == nil {
		a.Participants = []string{}
	}
	return a
}

// DefaultCatalog returns the seed activities the registry starts with.
func DefaultCatalog() []Activity {
	return []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Club",
			Description:     "Practice drills and play friendly basketball matches",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Train with the school team and compete in the district league",
			Schedule:        "Wednesdays and Saturdays, 3:00 PM - 5:00 PM",
			MaxParticipants: 22,
			Participants:    []string{"noah@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and mixed media projects",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"isabella@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Rehearse and perform in the school's seasonal productions",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"amelia@mergington.edu", "ethan@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"harper@mergington.edu", "james@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Build public speaking skills and compete in debate tournaments",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "benjamin@mergington.edu"},
		},
	}
}
