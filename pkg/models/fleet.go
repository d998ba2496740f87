package models

import "time"

// FleetItem is one boat in a user's fleet, keyed by (user, class).
type FleetItem struct {
	UserID      string    `json:"user_id"`
	ClassKey    string    `json:"class_key"`
	SailNumber  string    `json:"sail_number,omitempty"`
	BoatName    string    `json:"boat_name,omitempty"`
	HomeVenueID string    `json:"home_venue_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
