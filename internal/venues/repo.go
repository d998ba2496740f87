package venues

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"helmhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q         string // keyword search in name/region
	Country   string
	VenueType string
	// optional bounding box; applied only when Bounded is true
	Bounded        bool
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	VerifiedOnly   bool
	Limit          int
	Offset         int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const venueColumns = `id, name, lat, lng, country, region, venue_type, time_zone,
		data_quality, external_id, external_type, data_source, verified`

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE id = ?
	`, id)

	v, err := scanVenue(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return v, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Venue, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Venue, 0, q.Limit)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Upsert inserts a venue or, when the id already exists, refreshes the
// coordinates and source metadata from the incoming record. This is the
// idempotent seed semantics: re-importing the same extract is a no-op,
// a newer extract moves the pin. The verified flag is kept sticky so a
// manual verification survives re-imports.
func (r *Repo) Upsert(ctx context.Context, v models.Venue) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO venues (`+venueColumns+`)
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
	`,
		v.ID, v.Name, v.Lat, v.Lng,
		nullString(v.Country), nullString(v.Region), nullString(v.VenueType), nullString(v.TimeZone),
		v.DataQuality, nullString(v.ExternalID), nullString(v.ExternalType), nullString(v.DataSource),
		boolToInt(v.Verified),
	)
	if err != nil {
		return fmt.Errorf("upsert venue %s: %w", v.ID, err)
	}
	return nil
}

func (r *Repo) SetVerified(ctx context.Context, id string, verified bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE venues SET verified = ? WHERE id = ?
	`, boolToInt(verified), id)
	if err != nil {
		return false, fmt.Errorf("set verified: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var (
		v            models.Venue
		country      sql.NullString
		region       sql.NullString
		venueType    sql.NullString
		timeZone     sql.NullString
		externalID   sql.NullString
		externalType sql.NullString
		dataSource   sql.NullString
		verified     int
	)

	if err := row.Scan(
		&v.ID, &v.Name, &v.Lat, &v.Lng,
		&country, &region, &venueType, &timeZone,
		&v.DataQuality, &externalID, &externalType, &dataSource, &verified,
	); err != nil {
		return nil, err
	}

	v.Country = country.String
	v.Region = region.String
	v.VenueType = venueType.String
	v.TimeZone = timeZone.String
	v.ExternalID = externalID.String
	v.ExternalType = externalType.String
	v.DataSource = dataSource.String
	v.Verified = verified != 0
	return &v, nil
}

// buildListSQL builds either COUNT(*) or the SELECT list.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `
		SELECT ` + venueColumns + `
		FROM venues
	`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM venues`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(region) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if strings.TrimSpace(q.Country) != "" {
		where = append(where, "LOWER(country) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Country)))
	}

	if strings.TrimSpace(q.VenueType) != "" {
		where = append(where, "LOWER(venue_type) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.VenueType)))
	}

	if q.Bounded {
		where = append(where, "lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?")
		args = append(args, q.MinLat, q.MaxLat, q.MinLng, q.MaxLng)
	}

	if q.VerifiedOnly {
		where = append(where, "verified = 1")
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY name ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
