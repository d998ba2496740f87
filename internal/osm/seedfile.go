package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"helmhub/pkg/models"
)

// SourceSeedFile reads venues from a local JSON seed file, the same
// array shape the CLI's export json writes. Lets an instance bootstrap
// without hitting the Overpass API.
type SourceSeedFile struct {
	Path string
}

func NewSourceSeedFile(path string) *SourceSeedFile {
	return &SourceSeedFile{Path: path}
}

func (s *SourceSeedFile) Name() string { return "seedfile" }

func (s *SourceSeedFile) FetchAll(ctx context.Context) ([]models.Venue, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("seedfile: read %s: %w", s.Path, err)
	}

	var out []models.Venue
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("seedfile: decode %s: %w", s.Path, err)
	}

	for i := range out {
		if out[i].DataSource == "" {
			out[i].DataSource = "seed"
		}
	}
	return out, nil
}
