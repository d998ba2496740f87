package osm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"helmhub/pkg/models"
)

// Source is implemented by each external venue data source (Overpass
// API, local seed file, hosted mirror). Each source fetches its own
// format and maps it into models.Venue.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.Venue, error)
}

// Aggregator coordinates calls to multiple sources and merges them into
// a single canonical set of venues.
type Aggregator struct {
	Sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// FetchAndMerge fetches venues from all sources and merges duplicates
// using deterministic conflict resolution rules.
func (a *Aggregator) FetchAndMerge(ctx context.Context) ([]models.Venue, error) {
	byKey := make(map[string]models.Venue)

	for _, src := range a.Sources {
		log.Printf("[osm] fetching from %s", src.Name())
		items, err := src.FetchAll(ctx)
		if err != nil {
			log.Printf("[osm] source %s error: %v", src.Name(), err)
			// keep going: one broken source should not kill the import
			continue
		}

		for _, v := range items {
			key := canonicalKey(v)
			if key == "" {
				continue
			}

			if existing, ok := byKey[key]; ok {
				byKey[key] = mergeVenue(existing, v)
			} else {
				byKey[key] = v
			}
		}
	}

	result := make([]models.Venue, 0, len(byKey))
	for _, v := range byKey {
		result = append(result, v)
	}
	return result, nil
}

// canonicalKey groups records that describe the same venue across
// sources. External references win when present (the same OSM node in
// two extracts is always the same venue); otherwise fall back to the
// normalized name plus a coarse coordinate bucket, so two marinas that
// share a name in different harbours stay distinct.
func canonicalKey(v models.Venue) string {
	if v.ExternalID != "" && v.ExternalType != "" {
		return v.ExternalType + ":" + v.ExternalID
	}
	name := normalizeName(v.Name)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s@%.1f,%.1f", name, v.Lat, v.Lng)
}

// normalizeName lowercases a venue name and compresses everything that
// is not a letter or digit into single spaces.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// mergeVenue resolves conflicts between two records of the same venue:
//
//   - The record with higher data_quality supplies the coordinates
//     and the name.
//   - Missing fields are filled from the other record.
//   - verified is sticky: once either source says verified, it stays.
func mergeVenue(base, incoming models.Venue) models.Venue {
	if incoming.DataQuality > base.DataQuality {
		// incoming is the better record; keep what it lacks from base
		base, incoming = incoming, base
	}

	if base.Country == "" {
		base.Country = incoming.Country
	}
	if base.Region == "" {
		base.Region = incoming.Region
	}
	if base.VenueType == "" {
		base.VenueType = incoming.VenueType
	}
	if base.TimeZone == "" {
		base.TimeZone = incoming.TimeZone
	}
	if base.ExternalID == "" {
		base.ExternalID = incoming.ExternalID
		base.ExternalType = incoming.ExternalType
	}
	if base.DataSource == "" {
		base.DataSource = incoming.DataSource
	}
	if incoming.Verified {
		base.Verified = true
	}

	return base
}
