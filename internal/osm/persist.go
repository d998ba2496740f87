package osm

import (
	"context"
	"database/sql"
	"fmt"

	"helmhub/pkg/models"
)

// SaveToDatabase upserts the given venues in one transaction. On
// conflict the coordinates and source metadata are refreshed from the
// incoming record; verified stays sticky so a manual verification
// survives re-imports.
func SaveToDatabase(ctx context.Context, db *sql.DB, items []models.Venue) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO venues (id, name, lat, lng, country, region, venue_type, time_zone,
			data_quality, external_id, external_type, data_source, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  lat = excluded.lat,
		  lng = excluded.lng,
		  country = excluded.country,
		  region = excluded.region,
		  venue_type = excluded.venue_type,
		  time_zone = excluded.time_zone,
		  data_quality = excluded.data_quality,
		  external_id = excluded.external_id,
		  external_type = excluded.external_type,
		  data_source = excluded.data_source,
		  verified = MAX(venues.verified, excluded.verified)
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, v := range items {
		verified := 0
		if v.Verified {
			verified = 1
		}
		if _, err := stmt.ExecContext(
			ctx,
			v.ID, v.Name, v.Lat, v.Lng,
			v.Country, v.Region, v.VenueType, v.TimeZone,
			v.DataQuality, v.ExternalID, v.ExternalType, v.DataSource,
			verified,
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
