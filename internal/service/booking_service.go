package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/form"
	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/queue"
)

// BookingStore persists bookings together with the slot flip.
type BookingStore interface {
	CreateForSlot(ctx context.Context, b *model.Booking, requireFree bool) error
}

// SlotStore looks up one timetable slot.
type SlotStore interface {
	GetSlot(ctx context.Context, teacherID uint64, day, tm string) (*model.Timetable, error)
}

// BookingService books teacher slots.
type BookingService struct {
	bookings      BookingStore
	teachers      TeacherStore
	slots         SlotStore
	publisher     queue.Publisher
	allowOverbook bool
	log           *zap.Logger
}

// NewBookingService wires a BookingService.  With allowOverbook set, an
// already taken slot can be booked again.
func NewBookingService(bookings BookingStore, teachers TeacherStore, slots SlotStore, publisher queue.Publisher, allowOverbook bool, log *zap.Logger) *BookingService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &BookingService{
		bookings:      bookings,
		teachers:      teachers,
		slots:         slots,
		publisher:     publisher,
		allowOverbook: allowOverbook,
		log:           log,
	}
}

// Draft is what the booking form shows before submission.
type Draft struct {
	Teacher model.Teacher
	Slot    model.Timetable
	// Taken is set when the slot is no longer free and a submission
	// would be refused.
	Taken bool
}

// Prepare loads the teacher and slot named by a booking URL.  It returns
// repository.ErrTeacherNotFound or repository.ErrSlotNotFound.
func (s *BookingService) Prepare(ctx context.Context, teacherID uint64, day, tm string) (*Draft, error) {
	t, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	slot, err := s.slots.GetSlot(ctx, teacherID, day, tm)
	if err != nil {
		return nil, err
	}
	return &Draft{Teacher: *t, Slot: *slot, Taken: !slot.Free && !s.allowOverbook}, nil
}

// Confirmation is what the booking confirmation page shows.
type Confirmation struct {
	Booking model.Booking
	Teacher model.Teacher
}

// Book stores a validated booking.  Slot errors from the store
// (repository.ErrSlotNotFound, repository.ErrSlotTaken) are returned
// unchanged.
func (s *BookingService) Book(ctx context.Context, in form.Booking) (*Confirmation, error) {
	b := model.Booking{
		Name:      in.Name,
		Phone:     in.Phone,
		Day:       in.Day,
		Time:      in.Time,
		TeacherID: in.TeacherID,
	}
	if err := s.bookings.CreateForSlot(ctx, &b, !s.allowOverbook); err != nil {
		return nil, err
	}
	t, err := s.teachers.GetByID(ctx, b.TeacherID)
	if err != nil {
		return nil, err
	}
	s.log.Info("booking created",
		zap.Uint64("booking_id", b.ID),
		zap.Uint64("teacher_id", b.TeacherID),
		zap.String("day", b.Day),
		zap.String("time", b.Time))

	ev := queue.NewBookingEvent(queue.BookingCreated{
		BookingID:   b.ID,
		TeacherID:   t.ID,
		TeacherName: t.Name,
		Day:         b.Day,
		DayLabel:    model.WeekdayLabel(b.Day),
		Time:        b.Time,
		ClientName:  b.Name,
		ClientPhone: b.Phone,
	})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("booking event not published", zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
	return &Confirmation{Booking: b, Teacher: *t}, nil
}
