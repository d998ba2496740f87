package models

import "time"

// Mirror is the offline dataset exchanged between cmd/export-mirror
// and cmd/mirror-server. It bundles the venue directory with the full
// tuning guide library so a client can work without the API.
type Mirror struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Venues      []Venue                  `json:"venues"`
	Tuning      map[string][]TuningGuide `json:"tuning"`
}
