// Package types contains common types used across the application
package types

// Activity is the JSON shape of one registry entry, keyed by name in listings.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivityEntry pairs an activity name with its details, preserving order.
type ActivityEntry struct {
	Name string
	Activity
}

// Message is the confirmation body returned by signup and unregister.
type Message struct {
	Message string `json:"message"`
}
