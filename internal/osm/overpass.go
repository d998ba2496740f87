package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"helmhub/pkg/models"
)

// Overpass API base (public)
const overpassBase = "https://overpass-api.de/api/interpreter"

// SourceOverpass fetches marina and harbour points from the Overpass
// API inside a bounding box.
type SourceOverpass struct {
	Client *http.Client
	// bounding box: south, west, north, east
	South, West, North, East float64
}

func NewSourceOverpass(south, west, north, east float64) *SourceOverpass {
	return &SourceOverpass{
		Client: &http.Client{Timeout: 30 * time.Second},
		South:  south,
		West:   west,
		North:  north,
		East:   east,
	}
}

func (s *SourceOverpass) Name() string { return "overpass" }

type overpassResponse struct {
	Elements []struct {
		Type string  `json:"type"` // "node", "way"
		ID   int64   `json:"id"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
		// ways carry a computed center instead of lat/lon
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center,omitempty"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (s *SourceOverpass) FetchAll(ctx context.Context) ([]models.Venue, error) {
	bbox := fmt.Sprintf("%f,%f,%f,%f", s.South, s.West, s.North, s.East)
	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node["leisure"="marina"](%[1]s);
  way["leisure"="marina"](%[1]s);
  node["harbour"="yes"](%[1]s);
  node["club"="sailing"](%[1]s);
);
out center;`, bbox)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, overpassBase, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: request: %w", err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: status %d: %s", resp.StatusCode, string(body))
	}

	var op overpassResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("overpass: decode: %w", err)
	}

	out := make([]models.Venue, 0, len(op.Elements))
	for _, el := range op.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}

		lat, lng := el.Lat, el.Lon
		if el.Center != nil {
			lat, lng = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lng == 0 {
			continue
		}

		externalID := strconv.FormatInt(el.ID, 10)
		out = append(out, models.Venue{
			ID:           "osm-" + el.Type + "-" + externalID,
			Name:         name,
			Lat:          lat,
			Lng:          lng,
			Country:      strings.ToUpper(strings.TrimSpace(el.Tags["addr:country"])),
			Region:       strings.TrimSpace(el.Tags["addr:state"]),
			VenueType:    venueTypeFromTags(el.Tags),
			DataQuality:  qualityFromTags(el.Tags),
			ExternalID:   externalID,
			ExternalType: el.Type,
			DataSource:   "osm",
		})
	}
	return out, nil
}

func venueTypeFromTags(tags map[string]string) string {
	switch {
	case tags["club"] == "sailing":
		return "club"
	case tags["leisure"] == "marina":
		return "marina"
	case tags["harbour"] == "yes":
		return "harbour"
	default:
		return ""
	}
}

// qualityFromTags scores how complete the OSM record is. A bare named
// point is 1; address and website tags each add one.
func qualityFromTags(tags map[string]string) int {
	q := 1
	if tags["addr:country"] != "" {
		q++
	}
	if tags["website"] != "" || tags["contact:website"] != "" {
		q++
	}
	return q
}
