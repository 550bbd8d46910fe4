package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// BookingRepo stores bookings and flips the booked timetable slot in the
// same transaction.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with the teacher's name.  It is used
// by the follow-up export.
type BookingDetail struct {
	model.Booking
	TeacherName string
}

// CreateForSlot books the slot (b.TeacherID, b.Day, b.Time) and inserts b.
//
// When requireFree is true the slot is flipped with a conditional update
// that only matches a free row, so two concurrent bookings cannot both
// succeed; the loser gets ErrSlotTaken.  When requireFree is false an
// already taken slot is accepted and a second booking row is written.
// ErrSlotNotFound is returned when the slot does not exist.  On success
// b.ID and b.CreatedAt are populated.
func (r *BookingRepo) CreateForSlot(ctx context.Context, b *model.Booking, requireFree bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE timetables SET free = ? WHERE teacher_id = ? AND day = ? AND time = ? AND free = ?`,
		false, b.TeacherID, b.Day, b.Time, true)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// nothing flipped: either the slot is missing or it was taken already
		var free bool
		err := tx.QueryRowContext(ctx,
			`SELECT free FROM timetables WHERE teacher_id = ? AND day = ? AND time = ?`,
			b.TeacherID, b.Day, b.Time).Scan(&free)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("check slot: %w", err)
		}
		if requireFree {
			return ErrSlotTaken
		}
	}

	b.CreatedAt = time.Now().UTC().Truncate(time.Second)
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (name, phone, day, time, teacher_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.Name, b.Phone, b.Day, b.Time, b.TeacherID, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	committed = true
	b.ID = uint64(id)
	return nil
}

// ListByTeacher returns the bookings of a teacher, oldest first.
func (r *BookingRepo) ListByTeacher(ctx context.Context, teacherID uint64) ([]model.Booking, error) {
	const q = `SELECT id, name, phone, day, time, teacher_id, created_at
	           FROM bookings WHERE teacher_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Phone, &b.Day, &b.Time, &b.TeacherID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDetailed returns all bookings with teacher names, oldest first.
func (r *BookingRepo) ListDetailed(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.name, b.phone, b.day, b.time, b.teacher_id, b.created_at, t.name
	           FROM bookings b
	           JOIN teachers t ON t.id = b.teacher_id
	           ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Day, &d.Time, &d.TeacherID, &d.CreatedAt, &d.TeacherName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
