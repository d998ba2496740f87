package feed

import (
	"time"

	"helmhub/pkg/models"
)

// Event types carried on the live feed.
const (
	EventFleetUpdate   = "fleet.update"
	EventFleetDelete   = "fleet.delete"
	EventVenueVerified = "venue.verified"
	EventWelcome       = "welcome"
)

// FleetEvent announces a change to someone's fleet. Delete events
// carry only the key fields.
type FleetEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	ClassKey    string    `json:"class_key"`
	SailNumber  string    `json:"sail_number,omitempty"`
	BoatName    string    `json:"boat_name,omitempty"`
	HomeVenueID string    `json:"home_venue_id,omitempty"`
	At          time.Time `json:"at"`
}

func NewFleetUpdate(item models.FleetItem) FleetEvent {
	return FleetEvent{
		Type:        EventFleetUpdate,
		UserID:      item.UserID,
		ClassKey:    item.ClassKey,
		SailNumber:  item.SailNumber,
		BoatName:    item.BoatName,
		HomeVenueID: item.HomeVenueID,
		At:          time.Now().UTC(),
	}
}

func NewFleetDelete(userID, classKey string) FleetEvent {
	return FleetEvent{
		Type:     EventFleetDelete,
		UserID:   userID,
		ClassKey: classKey,
		At:       time.Now().UTC(),
	}
}

// VenueEvent announces a venue state change, currently only
// verification.
type VenueEvent struct {
	Type    string    `json:"type"`
	VenueID string    `json:"venue_id"`
	At      time.Time `json:"at"`
}

func NewVenueVerified(venueID string) VenueEvent {
	return VenueEvent{
		Type:    EventVenueVerified,
		VenueID: venueID,
		At:      time.Now().UTC(),
	}
}

// WelcomeEvent is the first frame every feed client receives. It names
// the feed and reports how many clients are on it, so a tailer can
// tell a live helmhub feed from a stray port.
type WelcomeEvent struct {
	Type      string `json:"type"`
	Feed      string `json:"feed"`
	Transport string `json:"transport"` // "tcp" or "websocket"
	Stats     Stats  `json:"stats"`
}

func newWelcome(transport string, stats Stats) WelcomeEvent {
	return WelcomeEvent{
		Type:      EventWelcome,
		Feed:      "helmhub",
		Transport: transport,
		Stats:     stats,
	}
}
