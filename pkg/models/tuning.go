package models

// TuningGuide is one published rig tuning reference for a boat class.
// Guides are static data compiled into the binary; a class can carry
// several guides (different sailmakers, different rigs).
type TuningGuide struct {
	Title       string         `json:"title"`
	Source      string         `json:"source"`                // attribution, e.g. "North Sails"
	URL         string         `json:"url,omitempty"`
	Year        int            `json:"year,omitempty"`
	Description string         `json:"description,omitempty"`
	Equipment   GuideEquipment `json:"equipment,omitempty"`
	Sections    []GuideSection `json:"sections"`
}

// GuideEquipment tags a guide with the gear it was written for.
type GuideEquipment struct {
	Hull      string `json:"hull,omitempty"`
	Mast      string `json:"mast,omitempty"`
	Sailmaker string `json:"sailmaker,omitempty"`
	Rig       string `json:"rig,omitempty"`
}

// GuideSection is one block of a tuning guide: free text plus the
// conditions it applies to and the rig settings it recommends. Both
// maps are plain string-to-string dictionaries.
type GuideSection struct {
	Title      string            `json:"title"`
	Content    string            `json:"content,omitempty"`
	Conditions map[string]string `json:"conditions,omitempty"`
	Settings   map[string]string `json:"settings,omitempty"`
}
