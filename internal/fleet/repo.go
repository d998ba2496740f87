package fleet

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

// Upsert inserts or updates one boat in a user's fleet.
func (r *Repo) Upsert(ctx context.Context, item models.FleetItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_fleet (user_id, class_key, sail_number, boat_name, home_venue_id, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, class_key) DO UPDATE SET
			sail_number = excluded.sail_number,
			boat_name = excluded.boat_name,
			home_venue_id = excluded.home_venue_id,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, item.ClassKey, item.SailNumber, item.BoatName, item.HomeVenueID)
	if err != nil {
		return fmt.Errorf("upsert fleet item: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, classKey string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_fleet
		WHERE user_id = ? AND class_key = ?
	`, userID, classKey)
	if err != nil {
		return false, fmt.Errorf("delete fleet item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, limit, offset int) ([]models.FleetItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_fleet WHERE user_id = ?
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fleet: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, class_key, sail_number, boat_name, home_venue_id, updated_at
		FROM user_fleet
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list fleet: %w", err)
	}
	defer rows.Close()

	out := make([]models.FleetItem, 0, limit)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan fleet row: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID, classKey string) (*models.FleetItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, class_key, sail_number, boat_name, home_venue_id, updated_at
		FROM user_fleet
		WHERE user_id = ? AND class_key = ?
	`, userID, classKey)

	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get fleet item: %w", err)
	}
	return it, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.FleetItem, error) {
	var (
		it         models.FleetItem
		sailNumber sql.NullString
		boatName   sql.NullString
		homeVenue  sql.NullString
		updated    time.Time
	)
	if err := row.Scan(&it.UserID, &it.ClassKey, &sailNumber, &boatName, &homeVenue, &updated); err != nil {
		return nil, err
	}
	it.SailNumber = sailNumber.String
	it.BoatName = boatName.String
	it.HomeVenueID = homeVenue.String
	it.UpdatedAt = updated
	return &it, nil
}
