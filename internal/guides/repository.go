// Package guides stores guided-dive requests and their volunteer guides.
package guides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/divebot/internal/models"
)

// ErrRequestNotFound is returned for an unknown request id
var ErrRequestNotFound = errors.New("guide request not found")

// Repository handles persistence for guide requests
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository on an open database (see database.Open)
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert saves a new request
func (r *Repository) Insert(ctx context.Context, req models.GuideRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guide_requests (id, requester, location, dive_date, dive_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.Requester, req.Location, req.Date, req.Time, req.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving guide request: %w", err)
	}
	return nil
}

// Get loads a request with its guides in sign-up order
func (r *Repository) Get(ctx context.Context, id string) (models.GuideRequest, error) {
	return get(ctx, r.db, id)
}

// List returns all requests, newest first
func (r *Repository) List(ctx context.Context) ([]models.GuideRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM guide_requests ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying guide requests: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning guide request: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guide requests: %w", err)
	}

	requests := make([]models.GuideRequest, 0, len(ids))
	for _, id := range ids {
		req, err := get(ctx, r.db, id)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// ToggleGuide adds guide to the request, or removes them if already listed.
// It reports whether the guide was added and returns the updated request.
func (r *Repository) ToggleGuide(ctx context.Context, id, guide string) (models.GuideRequest, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.GuideRequest{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM guide_requests WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return models.GuideRequest{}, false, fmt.Errorf("checking guide request: %w", err)
	}
	if exists == 0 {
		return models.GuideRequest{}, false, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM guide_volunteers WHERE request_id = ? AND guide = ?`, id, guide)
	if err != nil {
		return models.GuideRequest{}, false, fmt.Errorf("removing guide: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return models.GuideRequest{}, false, fmt.Errorf("removing guide: %w", err)
	}

	added := removed == 0
	if added {
		if _, err := tx.ExecContext(ctx, `INSERT INTO guide_volunteers (request_id, guide) VALUES (?, ?)`, id, guide); err != nil {
			return models.GuideRequest{}, false, fmt.Errorf("adding guide: %w", err)
		}
	}

	req, err := get(ctx, tx, id)
	if err != nil {
		return models.GuideRequest{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return models.GuideRequest{}, false, fmt.Errorf("committing guide toggle: %w", err)
	}
	return req, added, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func get(ctx context.Context, q querier, id string) (models.GuideRequest, error) {
	var req models.GuideRequest
	var createdAt time.Time
	err := q.QueryRowContext(ctx, `
		SELECT id, requester, location, dive_date, dive_time, created_at
		FROM guide_requests WHERE id = ?`, id,
	).Scan(&req.ID, &req.Requester, &req.Location, &req.Date, &req.Time, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GuideRequest{}, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	if err != nil {
		return models.GuideRequest{}, fmt.Errorf("loading guide request: %w", err)
	}
	req.CreatedAt = createdAt

	rows, err := q.QueryContext(ctx, `SELECT guide FROM guide_volunteers WHERE request_id = ? ORDER BY id`, id)
	if err != nil {
		return models.GuideRequest{}, fmt.Errorf("querying guides: %w", err)
	}
	defer rows.Close()

	req.Guides = []string{}
	for rows.Next() {
		var guide string
		if err := rows.Scan(&guide); err != nil {
			return models.GuideRequest{}, fmt.Errorf("scanning guide: %w", err)
		}
		req.Guides = append(req.Guides, guide)
	}
	return req, rows.Err()
}
