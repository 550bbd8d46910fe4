package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// RequestRepo stores "find me a tutor" requests.
type RequestRepo struct {
	db *sql.DB
}

// NewRequestRepo returns a new RequestRepo bound to the given database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

// Create inserts req verbatim and populates its ID and CreatedAt.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	req.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO requests (name, phone, goal, weektime, created_at) VALUES (?, ?, ?, ?, ?)`,
		req.Name, req.Phone, req.Goal, req.WeekTime, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return nil
}

// ListAll returns all requests, oldest first.
func (r *RequestRepo) ListAll(ctx context.Context) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone, goal, weektime, created_at FROM requests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var out []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.Name, &req.Phone, &req.Goal, &req.WeekTime, &req.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored requests.
func (r *RequestRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}
