// Package queue defines the follow-up events exchanged over the message
// broker, the publisher used by the web server and the consumer run by
// cmd/notifier.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// FollowupQueue is the durable queue carrying follow-up events.
const FollowupQueue = "tutors.followup"

// Event types.
const (
	TypeBookingCreated = "booking.created"
	TypeRequestCreated = "request.created"
)

// Event is published after a booking or a request is stored.  Exactly one
// of Booking and Request is set, matching Type.  It carries enough data
// for staff to call the client back without querying the database.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt string          `json:"occurred_at"`
	Booking    *BookingCreated `json:"booking,omitempty"`
	Request    *RequestCreated `json:"request,omitempty"`
}

// BookingCreated describes a stored booking.
type BookingCreated struct {
	BookingID   uint64 `json:"booking_id"`
	TeacherID   uint64 `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	Day         string `json:"day"`
	DayLabel    string `json:"day_label"`
	Time        string `json:"time"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

// RequestCreated describes a stored tutor request.
type RequestCreated struct {
	RequestID   uint64 `json:"request_id"`
	Goal        string `json:"goal"`
	WeekTime    string `json:"weektime"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

// NewBookingEvent wraps b in an Event with a fresh id.
func NewBookingEvent(b BookingCreated) Event {
	return Event{ID: uuid.NewString(), Type: TypeBookingCreated, OccurredAt: now(), Booking: &b}
}

// NewRequestEvent wraps r in an Event with a fresh id.
func NewRequestEvent(r RequestCreated) Event {
	return Event{ID: uuid.NewString(), Type: TypeRequestCreated, OccurredAt: now(), Request: &r}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
