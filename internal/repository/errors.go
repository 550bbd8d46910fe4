// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. Not-found errors translate into HTTP 404, while
// ErrSlotTaken signals that a booking lost the race for a slot and
// should become an HTTP 409.
package repository

import "errors"

// ErrTeacherNotFound is returned when a teacher id does not exist.
var ErrTeacherNotFound = errors.New("teacher not found")

// ErrGoalNotFound is returned when a goal key does not exist.
var ErrGoalNotFound = errors.New("goal not found")

// ErrSlotNotFound is returned when no timetable row matches the
// requested (teacher, day, time).
var ErrSlotNotFound = errors.New("timetable slot not found")

// ErrSlotTaken is returned when the requested slot exists but has
// already been booked.
var ErrSlotTaken = errors.New("timetable slot already taken")
