package models

import "time"

// Review is one sailor's take on a venue. Username is joined in on
// read; it is not stored on the row.
type Review struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	VenueID   string    `json:"venue_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// VenueRating aggregates a venue's reviews.
type VenueRating struct {
	VenueID   string  `json:"venue_id"`
	Reviews   int     `json:"reviews"`
	AvgRating float64 `json:"avg_rating"`
}
