package reviews

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

func (r *Repo) Create(ctx context.Context, userID, venueID string, rating int, text string) (*models.Review, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (user_id, venue_id, rating, text)
		VALUES (?, ?, ?, ?)
	`, userID, venueID, rating, text)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT r.id, r.user_id, u.username, r.venue_id, r.rating, r.text, r.timestamp
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = ?
	`, id)

	review, err := scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return review, nil
}

func (r *Repo) ListByVenue(ctx context.Context, venueID string, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.username, r.venue_id, r.rating, r.text, r.timestamp
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.venue_id = ?
		ORDER BY r.timestamp DESC
		LIMIT ? OFFSET ?
	`, venueID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Rating aggregates the venue's reviews; a venue with none comes back
// with zero values, not an error.
func (r *Repo) Rating(ctx context.Context, venueID string) (models.VenueRating, error) {
	rating := models.VenueRating{VenueID: venueID}
	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE venue_id = ?
	`, venueID)
	if err := row.Scan(&rating.Reviews, &rating.AvgRating); err != nil {
		return rating, fmt.Errorf("venue rating: %w", err)
	}
	return rating, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	var username, text sql.NullString
	var ts time.Time
	if err := row.Scan(&review.ID, &review.UserID, &username, &review.VenueID, &review.Rating, &text, &ts); err != nil {
		return nil, err
	}
	review.Username = username.String
	review.Text = text.String
	review.Timestamp = ts
	return &review, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}
