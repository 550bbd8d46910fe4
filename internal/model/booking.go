package model

import "time"

// Booking records a trial lesson booked by a visitor for a teacher's
// slot.  Bookings are append-only.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – client name.
//	Phone     – client phone.
//	Day       – weekday key of the booked slot.
//	Time      – time key of the booked slot.
//	TeacherID – teacher that was booked.
//	CreatedAt – when the booking was stored.
type Booking struct {
	ID        uint64    // bookings.id
	Name      string    // bookings.name
	Phone     string    // bookings.phone
	Day       string    // bookings.day
	Time      string    // bookings.time
	TeacherID uint64    // bookings.teacher_id
	CreatedAt time.Time // bookings.created_at
}
