package tuning

import "helmhub/pkg/models"

// defaultGuides is the built-in tuning guide library, keyed by
// canonical class key. Compiled into the binary and never mutated
// after init, so concurrent reads need no locking.
//
// The Dragon carries two entries on purpose: the detailed North Sails
// guide first, then the older generic baseline that some fleets still
// sail to. Order matters to callers, so it is kept stable here.
var defaultGuides = map[string][]models.TuningGuide{
	"dragon": {
		{
			Title:       "Dragon Tuning Guide",
			Source:      "North Sails",
			URL:         "https://www.northsails.com/sailing/en/resources/dragon-tuning-guide",
			Year:        2021,
			Description: "Rig setup for the International Dragon with North sails and a Petticrows hull.",
			Equipment: models.GuideEquipment{
				Hull:      "Petticrows",
				Mast:      "Selden D-section",
				Sailmaker: "North Sails",
				Rig:       "fractional",
			},
			Sections: []models.GuideSection{
				{
					Title:   "Base setting",
					Content: "Set the rig on the dock before racing. Rake is measured from the main halyard to the top of the transom. All shroud tensions are Loos PT-2 readings.",
					Conditions: map[string]string{
						"wind":      "0-25 kts",
						"sea_state": "any",
					},
					Settings: map[string]string{
						"mast_rake":       "6.17 m",
						"upper_shrouds":   "28",
						"lower_shrouds":   "18",
						"forestay_length": "max ease",
						"mast_at_deck":    "centered",
					},
				},
				{
					Title:   "Light air (0-7 kts)",
					Content: "Power the rig up. Ease the lowers to let the mast sag to leeward in the middle, keeping the main full. Crew weight to leeward and forward.",
					Conditions: map[string]string{
						"wind":      "0-7 kts",
						"sea_state": "flat to light chop",
					},
					Settings: map[string]string{
						"upper_shrouds": "26",
						"lower_shrouds": "14",
						"jib_halyard":   "just remove wrinkles",
						"outhaul":       "eased 30 mm",
						"backstay":      "slack",
					},
				},
				{
					Title:   "Medium (8-14 kts)",
					Content: "Base setting. Start trimming the backstay as soon as the crew is fully hiked. Jib luff tension comes on with the breeze.",
					Conditions: map[string]string{
						"wind": "8-14 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "28",
						"lower_shrouds": "18",
						"outhaul":       "to band",
						"backstay":      "2-4 cm on",
					},
				},
				{
					Title:   "Heavy (15+ kts)",
					Content: "Depower. Tighten lowers to keep the mast in column, pull the backstay hard and drop the traveller. If still overpowered, ease the jib car aft one hole.",
					Conditions: map[string]string{
						"wind":      "15-25 kts",
						"sea_state": "chop to swell",
					},
					Settings: map[string]string{
						"upper_shrouds": "30",
						"lower_shrouds": "22",
						"backstay":      "max",
						"cunningham":    "firm",
						"traveller":     "down 10-15 cm",
					},
				},
			},
		},
		{
			Title:       "Dragon Baseline Settings",
			Source:      "class association",
			Description: "Generic starting numbers for a club-raced Dragon. Superseded for racing by the sailmaker guides.",
			Sections: []models.GuideSection{
				{
					Title: "All-round",
					Conditions: map[string]string{
						"wind": "5-15 kts",
					},
					Settings: map[string]string{
						"mast_rake":     "6.15 m",
						"upper_shrouds": "27",
						"lower_shrouds": "17",
					},
				},
			},
		},
	},
	"j70": {
		{
			Title:       "J/70 Speed Guide",
			Source:      "North Sails",
			URL:         "https://www.northsails.com/sailing/en/resources/j70-tuning-guide",
			Year:        2022,
			Description: "Shroud settings relative to base for the J/70. Base is uppers 14, lowers 10 on a Loos PT-1M.",
			Equipment: models.GuideEquipment{
				Hull:      "J/70",
				Sailmaker: "North Sails",
				Rig:       "fractional asymmetric",
			},
			Sections: []models.GuideSection{
				{
					Title:   "0-8 kts",
					Content: "Uppers and lowers eased for headstay sag and power. Weight forward, heel to leeward to reduce wetted surface.",
					Conditions: map[string]string{
						"wind": "0-8 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "base -2",
						"lower_shrouds": "base -4",
						"backstay":      "off",
						"jib_lead":      "forward one hole",
					},
				},
				{
					Title:   "9-13 kts",
					Content: "Base on everything. Backstay comes on in the puffs once the crew is on the rail.",
					Conditions: map[string]string{
						"wind": "9-13 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "base",
						"lower_shrouds": "base",
						"backstay":      "puff-on, lull-off",
					},
				},
				{
					Title:   "14-18 kts",
					Content: "Step up both shrouds. Vang sheet upwind, keep the boat flat at all costs.",
					Conditions: map[string]string{
						"wind": "14-18 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "base +4",
						"lower_shrouds": "base +3",
						"backstay":      "heavy",
						"cunningham":    "firm",
					},
				},
				{
					Title:   "19+ kts",
					Content: "Max settings. Jib lead aft one hole, sheet to the spreader tip, survive first and race second.",
					Conditions: map[string]string{
						"wind":      "19-25 kts",
						"sea_state": "waves",
					},
					Settings: map[string]string{
						"upper_shrouds": "base +8",
						"lower_shrouds": "base +6",
						"backstay":      "max",
						"jib_lead":      "aft one hole",
					},
				},
			},
		},
	},
	"etchells": {
		{
			Title:       "Etchells Tuning Guide",
			Source:      "Doyle Sails",
			URL:         "https://www.doylesails.com/resources/etchells-tuning-guide",
			Year:        2020,
			Description: "One-design settings for the Etchells keelboat, measured with a Loos Model A on the uppers.",
			Equipment: models.GuideEquipment{
				Hull:      "Etchells",
				Sailmaker: "Doyle",
				Rig:       "fractional",
			},
			Sections: []models.GuideSection{
				{
					Title:   "Dock setup",
					Content: "Mast butt full forward, rake set with 90 cm of headstay sag sighted upwind. Check spreader sweep of 16.5 cm before stepping.",
					Conditions: map[string]string{
						"wind": "any",
					},
					Settings: map[string]string{
						"mast_rake":      "1.22 m from transom",
						"spreader_sweep": "16.5 cm",
						"upper_shrouds":  "22",
						"lower_shrouds":  "hand tight",
					},
				},
				{
					Title:   "Under 10 kts",
					Content: "Ease uppers two turns, lowers just snug. Traveller above centreline, soft sheet to keep the top telltale flying.",
					Conditions: map[string]string{
						"wind": "0-10 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "20",
						"traveller":     "above centre",
						"backstay":      "off",
					},
				},
				{
					Title:   "Over 10 kts",
					Content: "Return to base and add backstay progressively. Lowers on to hold the mast straight sideways once overpowered.",
					Conditions: map[string]string{
						"wind": "10-22 kts",
					},
					Settings: map[string]string{
						"upper_shrouds": "24",
						"lower_shrouds": "snug +2 turns",
						"backstay":      "progressive",
						"traveller":     "centre to down",
					},
				},
			},
		},
	},
	"ilca7": {
		{
			Title:       "ILCA 7 Tuning Guide",
			Source:      "class coaching",
			Year:        2023,
			Description: "Control settings for the ILCA 7 (formerly Laser Standard). The rig is unstayed, so everything is sail controls and body weight.",
			Equipment: models.GuideEquipment{
				Hull: "ILCA",
				Rig:  "una rig, standard",
			},
			Sections: []models.GuideSection{
				{
					Title:   "Light (0-6 kts)",
					Content: "Everything eased. Outhaul to a fist of depth at the boom, vang just taking up slack, sit forward with the bow knuckle in.",
					Conditions: map[string]string{
						"wind": "0-6 kts",
					},
					Settings: map[string]string{
						"outhaul":    "fist depth",
						"vang":       "slack removed",
						"cunningham": "off",
						"traveller":  "blocks just apart",
					},
				},
				{
					Title:   "Medium (7-14 kts)",
					Content: "Block-to-block sheeting, vang snug at block-to-block. Cunningham on progressively to move wrinkles along the luff.",
					Conditions: map[string]string{
						"wind": "7-14 kts",
					},
					Settings: map[string]string{
						"outhaul":    "palm depth",
						"vang":       "block-to-block snug",
						"cunningham": "wrinkles just gone",
					},
				},
				{
					Title:   "Heavy (15+ kts)",
					Content: "Max cunningham, outhaul tight, vang pulled on hard past block-to-block. Ease sheet in gusts before the boat heels.",
					Conditions: map[string]string{
						"wind":      "15-28 kts",
						"sea_state": "waves",
					},
					Settings: map[string]string{
						"outhaul":    "max",
						"vang":       "hard on",
						"cunningham": "max",
					},
				},
			},
		},
	},
	"optimist": {
		{
			Title:       "Optimist Tuning Guide",
			Source:      "Olimpic Sails",
			Year:        2019,
			Description: "Sprit rig setup by sailor weight and breeze for the Optimist dinghy.",
			Equipment: models.GuideEquipment{
				Hull:      "Optimist",
				Sailmaker: "Olimpic",
				Rig:       "sprit",
			},
			Sections: []models.GuideSection{
				{
					Title:   "Mast rake by weight",
					Content: "Measure from the top of the mast to the top of the transom. Lighter sailors rake further aft to depower early.",
					Conditions: map[string]string{
						"sailor_weight": "30-50 kg",
					},
					Settings: map[string]string{
						"rake_light_sailor": "2.77 m",
						"rake_heavy_sailor": "2.82 m",
					},
				},
				{
					Title:   "Light air",
					Content: "Sprit eased so a small crease runs from throat to clew, ties loose at the luff, sail plenty of twist downwind.",
					Conditions: map[string]string{
						"wind": "0-6 kts",
					},
					Settings: map[string]string{
						"sprit":      "slight crease",
						"outhaul":    "10 cm depth",
						"luff_ties":  "loose",
						"sail_ties":  "2 finger gap",
					},
				},
				{
					Title:   "Breeze",
					Content: "Sprit on until the crease just disappears, outhaul and preventer tight, flatten the sail before the sailor is overpowered.",
					Conditions: map[string]string{
						"wind": "12-20 kts",
					},
					Settings: map[string]string{
						"sprit":     "crease just removed",
						"outhaul":   "tight",
						"preventer": "tight",
					},
				},
			},
		},
	},
}
