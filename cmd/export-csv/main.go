package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"helmhub/pkg/database"
)

func main() {
	var (
		venuesOut  = flag.String("venues", "data/venues.csv", "output CSV path for venues")
		logbookOut = flag.String("logbook", "data/logbook.csv", "output CSV path for logbook entries")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportVenues(ctx, db, *venuesOut); err != nil {
		log.Fatalf("export venues failed: %v", err)
	}
	if err := exportLogbook(ctx, db, *logbookOut); err != nil {
		log.Fatalf("export logbook failed: %v", err)
	}

	log.Printf("exported venues to %s and logbook to %s", *venuesOut, *logbookOut)
}

func exportVenues(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "name", "lat", "lng", "country", "region", "venue_type",
		"time_zone", "data_quality", "external_id", "external_type",
		"data_source", "verified",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, name, lat, lng, country, region, venue_type, time_zone,
               data_quality, external_id, external_type, data_source, verified
        FROM venues
        ORDER BY name
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           string
			name         string
			lat          float64
			lng          float64
			country      sql.NullString
			region       sql.NullString
			venueType    sql.NullString
			timeZone     sql.NullString
			dataQuality  int
			externalID   sql.NullString
			externalType sql.NullString
			dataSource   sql.NullString
			verified     bool
		)

		if err := rows.Scan(&id, &name, &lat, &lng, &country, &region, &venueType,
			&timeZone, &dataQuality, &externalID, &externalType, &dataSource, &verified); err != nil {
			return err
		}

		if err := w.Write([]string{
			id,
			name,
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lng, 'f', -1, 64),
			country.String,
			region.String,
			venueType.String,
			timeZone.String,
			strconv.Itoa(dataQuality),
			externalID.String,
			externalType.String,
			dataSource.String,
			strconv.FormatBool(verified),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportLogbook(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "venue_id", "class_key", "wind_kts", "notes", "at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT user_id, venue_id, class_key, wind_kts, notes, at
        FROM logbook
        ORDER BY at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID   string
			venueID  string
			classKey string
			windKts  sql.NullInt64
			notes    sql.NullString
			at       sql.NullTime
		)

		if err := rows.Scan(&userID, &venueID, &classKey, &windKts, &notes, &at); err != nil {
			return err
		}

		wind := ""
		if windKts.Valid {
			wind = strconv.FormatInt(windKts.Int64, 10)
		}

		when := ""
		if at.Valid {
			when = at.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			userID,
			venueID,
			classKey,
			wind,
			notes.String,
			when,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
