package models

// Venue is a sailing venue (marina, harbour, sailing club) as stored in
// the database. Records originate from external geographic datasets
// (OpenStreetMap extracts) or manual curation, so every source field is
// kept alongside the coordinates.
type Venue struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Country      string  `json:"country,omitempty"`
	Region       string  `json:"region,omitempty"`
	VenueType    string  `json:"venue_type,omitempty"` // "marina", "harbour", "club", "open_water"
	TimeZone     string  `json:"time_zone,omitempty"`
	DataQuality  int     `json:"data_quality"` // 0 = unknown, higher is better
	ExternalID   string  `json:"external_id,omitempty"`
	ExternalType string  `json:"external_type,omitempty"` // e.g. "node", "way"
	DataSource   string  `json:"data_source,omitempty"`   // e.g. "osm", "seed", "manual"
	Verified     bool    `json:"verified"`
}
