package models

import "time"

// LogEntry is one sailing session in a user's logbook.
type LogEntry struct {
	UserID   string    `json:"user_id"`
	VenueID  string    `json:"venue_id"`
	ClassKey string    `json:"class_key"`
	WindKts  *int      `json:"wind_kts,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	At       time.Time `json:"at"`
}
