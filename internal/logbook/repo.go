package logbook

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"helmhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Add appends one session to the user's logbook. The log is append-only;
// entries are never updated.
func (r *Repo) Add(ctx context.Context, entry models.LogEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	var wind any
	if entry.WindKts != nil {
		wind = *entry.WindKts
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO logbook (user_id, venue_id, class_key, wind_kts, notes, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.VenueID, entry.ClassKey, wind, entry.Notes, entry.At)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID, venueID string, limit, offset int) ([]models.LogEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE user_id = ?`
	args := []any{userID}
	if venueID != "" {
		where += ` AND venue_id = ?`
		args = append(args, venueID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM logbook `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count logbook: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, venue_id, class_key, wind_kts, notes, at
		FROM logbook `+where+`
		ORDER BY at DESC
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list logbook: %w", err)
	}
	defer rows.Close()

	out := make([]models.LogEntry, 0, limit)
	for rows.Next() {
		var entry models.LogEntry
		var wind sql.NullInt64
		var notes sql.NullString
		var at time.Time

		if err := rows.Scan(&entry.UserID, &entry.VenueID, &entry.ClassKey, &wind, &notes, &at); err != nil {
			return nil, 0, fmt.Errorf("scan log entry: %w", err)
		}
		if wind.Valid {
			v := int(wind.Int64)
			entry.WindKts = &v
		}
		entry.Notes = notes.String
		entry.At = at
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows logbook: %w", err)
	}

	return out, total, nil
}
