package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// TimetableRepo provides access to the weekly slots of teachers.
type TimetableRepo struct {
	db *sql.DB
}

// NewTimetableRepo returns a new TimetableRepo bound to the given database.
func NewTimetableRepo(db *sql.DB) *TimetableRepo { return &TimetableRepo{db: db} }

// ListByTeacher returns all slots of a teacher in insertion order.
func (r *TimetableRepo) ListByTeacher(ctx context.Context, teacherID uint64) ([]model.Timetable, error) {
	const q = `SELECT id, teacher_id, day, time, free FROM timetables WHERE teacher_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list timetable of teacher %d: %w", teacherID, err)
	}
	defer rows.Close()
	var out []model.Timetable
	for rows.Next() {
		var t model.Timetable
		if err := rows.Scan(&t.ID, &t.TeacherID, &t.Day, &t.Time, &t.Free); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSlot returns the slot matching (teacher, day, time) exactly.  It
// returns ErrSlotNotFound when no row matches.
func (r *TimetableRepo) GetSlot(ctx context.Context, teacherID uint64, day, tm string) (*model.Timetable, error) {
	const q = `SELECT id, teacher_id, day, time, free FROM timetables WHERE teacher_id = ? AND day = ? AND time = ?`
	var t model.Timetable
	if err := r.db.QueryRowContext(ctx, q, teacherID, day, tm).Scan(&t.ID, &t.TeacherID, &t.Day, &t.Time, &t.Free); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return &t, nil
}

// CreateBulkTx inserts multiple slots in one statement inside tx.
// Passing an empty slice has no effect and returns nil.
func (r *TimetableRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, slots []model.Timetable) error {
	if len(slots) == 0 {
		return nil
	}
	query := `INSERT INTO timetables (teacher_id, day, time, free) VALUES `
	args := make([]any, 0, len(slots)*4)
	for i, s := range slots {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.TeacherID, s.Day, s.Time, s.Free)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert timetable: %w", err)
	}
	return nil
}
