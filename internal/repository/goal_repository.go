package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// GoalRepo provides access to the goals table.
type GoalRepo struct {
	db *sql.DB
}

// NewGoalRepo returns a new GoalRepo bound to the given database.
func NewGoalRepo(db *sql.DB) *GoalRepo { return &GoalRepo{db: db} }

// ListAll returns all goals ordered by id.
func (r *GoalRepo) ListAll(ctx context.Context) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, goal, goal_rus FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Key, &g.Label); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByKey fetches a goal by its short key.  It returns ErrGoalNotFound
// when the key is unknown.
func (r *GoalRepo) GetByKey(ctx context.Context, key string) (*model.Goal, error) {
	var g model.Goal
	err := r.db.QueryRowContext(ctx, `SELECT id, goal, goal_rus FROM goals WHERE goal = ?`, key).
		Scan(&g.ID, &g.Key, &g.Label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("get goal %q: %w", key, err)
	}
	return &g, nil
}

// CreateTx inserts a goal inside tx and populates its ID.
func (r *GoalRepo) CreateTx(ctx context.Context, tx *sql.Tx, g *model.Goal) error {
	res, err := tx.ExecContext(ctx, `INSERT INTO goals (goal, goal_rus) VALUES (?, ?)`, g.Key, g.Label)
	if err != nil {
		return fmt.Errorf("insert goal %q: %w", g.Key, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}
