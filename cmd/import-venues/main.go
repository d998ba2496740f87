package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"helmhub/internal/osm"
	"helmhub/internal/venues"
	"helmhub/pkg/database"
	"helmhub/pkg/models"
)

func main() {
	var (
		venuesIn = flag.String("venues", "data/venues.csv", "input CSV path for venues")
		seedIn   = flag.String("seed", "", "optional JSON seed file (same format the scraper emits)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	count, err := importVenues(ctx, db, *venuesIn)
	if err != nil {
		log.Fatalf("import venues failed: %v", err)
	}
	log.Printf("imported %d venues from %s", count, *venuesIn)

	if *seedIn != "" {
		n, err := importSeedFile(ctx, db, *seedIn)
		if err != nil {
			log.Fatalf("import seed file failed: %v", err)
		}
		log.Printf("imported %d venues from seed file %s", n, *seedIn)
	}
}

func importVenues(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	repo := venues.NewRepo(db)

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		name := valueAt(header, row, "name")
		if id == "" || name == "" {
			continue
		}

		lat, err := parseFloat(valueAt(header, row, "lat"))
		if err != nil {
			return count, fmt.Errorf("parse lat for %s: %w", id, err)
		}
		lng, err := parseFloat(valueAt(header, row, "lng"))
		if err != nil {
			return count, fmt.Errorf("parse lng for %s: %w", id, err)
		}
		quality, err := parseIntDefault(valueAt(header, row, "data_quality"), 0)
		if err != nil {
			return count, fmt.Errorf("parse data_quality for %s: %w", id, err)
		}

		v := models.Venue{
			ID:           id,
			Name:         name,
			Lat:          lat,
			Lng:          lng,
			Country:      valueAt(header, row, "country"),
			Region:       valueAt(header, row, "region"),
			VenueType:    valueAt(header, row, "venue_type"),
			TimeZone:     valueAt(header, row, "time_zone"),
			DataQuality:  quality,
			ExternalID:   valueAt(header, row, "external_id"),
			ExternalType: valueAt(header, row, "external_type"),
			DataSource:   valueAt(header, row, "data_source"),
			Verified:     parseBool(valueAt(header, row, "verified")),
		}
		if v.DataSource == "" {
			v.DataSource = "seed"
		}

		if err := repo.Upsert(ctx, v); err != nil {
			return count, fmt.Errorf("upsert %s: %w", id, err)
		}
		count++
	}

	return count, nil
}

func importSeedFile(ctx context.Context, db *sql.DB, path string) (int, error) {
	items, err := osm.NewSourceSeedFile(path).FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := osm.SaveToDatabase(ctx, db, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(raw, 64)
}

func parseIntDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
