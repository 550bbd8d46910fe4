package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// TeacherRepo encapsulates all database queries related to teachers and
// their goal associations.  It depends on a sql.DB connection which is
// configured at startup and injected here.
type TeacherRepo struct {
	db *sql.DB
}

// NewTeacherRepo constructs a TeacherRepo with the provided DB handle.
func NewTeacherRepo(db *sql.DB) *TeacherRepo {
	return &TeacherRepo{db: db}
}

const teacherColumns = `t.id, t.name, t.about, t.rating, t.picture, t.price`

// ListAll returns every teacher ordered by id, goals included.
func (r *TeacherRepo) ListAll(ctx context.Context) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers t ORDER BY t.id`)
}

// ListByRating returns every teacher, best rated first.  Unrated
// teachers come last.
func (r *TeacherRepo) ListByRating(ctx context.Context) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers t ORDER BY t.rating IS NULL, t.rating DESC, t.id`)
}

// ListByGoal returns the teachers linked to goalID, best rated first.
func (r *TeacherRepo) ListByGoal(ctx context.Context, goalID uint64) ([]model.Teacher, error) {
	const q = `SELECT ` + teacherColumns + `
	           FROM teachers t
	           JOIN teachers_goals tg ON tg.teacher_id = t.id
	           WHERE tg.goal_id = ?
	           ORDER BY t.rating IS NULL, t.rating DESC, t.id`
	return r.list(ctx, q, goalID)
}

// GetByID fetches a teacher with its goals.  It returns
// ErrTeacherNotFound if no row is found.
func (r *TeacherRepo) GetByID(ctx context.Context, id uint64) (*model.Teacher, error) {
	const q = `SELECT ` + teacherColumns + ` FROM teachers t WHERE t.id = ?`
	t, err := scanTeacher(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("get teacher %d: %w", id, err)
	}
	out := []model.Teacher{t}
	if err := r.attachGoals(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

// CreateTx inserts a teacher inside tx and populates its ID.  Goals on
// the struct are linked as well; their IDs must already be set.
func (r *TeacherRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Teacher) error {
	const q = `INSERT INTO teachers (name, about, rating, picture, price) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.Name, t.About, nullFloat(t.Rating), nullString(t.Picture), t.Price)
	if err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	for _, g := range t.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teachers_goals (teacher_id, goal_id) VALUES (?, ?)`, t.ID, g.ID); err != nil {
			return fmt.Errorf("link teacher %d to goal %d: %w", t.ID, g.ID, err)
		}
	}
	return nil
}

// Count returns the number of teachers.
func (r *TeacherRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return n, nil
}

func (r *TeacherRepo) list(ctx context.Context, q string, args ...any) ([]model.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var out []model.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachGoals(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachGoals loads the goals of all given teachers with a single query.
func (r *TeacherRepo) attachGoals(ctx context.Context, teachers []model.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}
	idx := make(map[uint64]int, len(teachers))
	args := make([]any, 0, len(teachers))
	for i, t := range teachers {
		idx[t.ID] = i
		args = append(args, t.ID)
	}
	q := `SELECT tg.teacher_id, g.id, g.goal, g.goal_rus
	      FROM teachers_goals tg
	      JOIN goals g ON g.id = tg.goal_id
	      WHERE tg.teacher_id IN (?` + strings.Repeat(", ?", len(args)-1) + `)
	      ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("load teacher goals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var teacherID uint64
		var g model.Goal
		if err := rows.Scan(&teacherID, &g.ID, &g.Key, &g.Label); err != nil {
			return err
		}
		if i, ok := idx[teacherID]; ok {
			teachers[i].Goals = append(teachers[i].Goals, g)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeacher(s rowScanner) (model.Teacher, error) {
	var (
		t       model.Teacher
		rating  sql.NullFloat64
		picture sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Name, &t.About, &rating, &picture, &t.Price); err != nil {
		return t, err
	}
	if rating.Valid {
		t.Rating = &rating.Float64
	}
	t.Picture = picture.String
	return t, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
