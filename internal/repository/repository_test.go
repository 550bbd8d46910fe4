package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/tutor-booking/internal/database"
	"github.com/iliyamo/tutor-booking/internal/database/dbtest"
	"github.com/iliyamo/tutor-booking/internal/model"
)

type fixture struct {
	db       *database.DB
	teachers *TeacherRepo
	goals    *GoalRepo
	slots    *TimetableRepo
	bookings *BookingRepo
	requests *RequestRepo
	travel   model.Goal
	work     model.Goal
}

// newFixture stores two goals and three teachers:
// Anna (4.9, travel), Boris (unrated, travel+work), Clara (4.2, travel).
// Anna has slots tue 10:00 (free) and tue 12:00 (taken).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &fixture{
		db:       db,
		teachers: NewTeacherRepo(db.DB),
		goals:    NewGoalRepo(db.DB),
		slots:    NewTimetableRepo(db.DB),
		bookings: NewBookingRepo(db.DB),
		requests: NewRequestRepo(db.DB),
		travel:   model.Goal{Key: "travel", Label: "Для путешествий"},
		work:     model.Goal{Key: "work", Label: "Для работы"},
	}
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	for _, g := range []*model.Goal{&f.travel, &f.work} {
		if err := f.goals.CreateTx(ctx, tx, g); err != nil {
			t.Fatalf("create goal: %v", err)
		}
	}
	teachers := []model.Teacher{
		{Name: "Anna", About: "a", Rating: ptr(4.9), Price: 900, Goals: []model.Goal{f.travel}},
		{Name: "Boris", About: "b", Price: 700, Goals: []model.Goal{f.travel, f.work}},
		{Name: "Clara", About: "c", Rating: ptr(4.2), Picture: "https://example.com/c.png", Price: 1200, Goals: []model.Goal{f.travel}},
	}
	for i := range teachers {
		if err := f.teachers.CreateTx(ctx, tx, &teachers[i]); err != nil {
			t.Fatalf("create teacher: %v", err)
		}
	}
	if err := f.slots.CreateBulkTx(ctx, tx, []model.Timetable{
		{TeacherID: teachers[0].ID, Day: "tue", Time: "10:00", Free: true},
		{TeacherID: teachers[0].ID, Day: "tue", Time: "12:00", Free: false},
	}); err != nil {
		t.Fatalf("create slots: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return f
}

func ptr(f float64) *float64 { return &f }

func names(ts []model.Teacher) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTeacherListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.teachers.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if got := names(all); !equal(got, []string{"Anna", "Boris", "Clara"}) {
		t.Fatalf("ListAll = %v", got)
	}
	if len(all[1].Goals) != 2 {
		t.Fatalf("Boris must have two goals, got %+v", all[1].Goals)
	}

	byRating, err := f.teachers.ListByRating(ctx)
	if err != nil {
		t.Fatalf("ListByRating: %v", err)
	}
	if got := names(byRating); !equal(got, []string{"Anna", "Clara", "Boris"}) {
		t.Fatalf("ListByRating = %v", got)
	}

	work, err := f.teachers.ListByGoal(ctx, f.work.ID)
	if err != nil {
		t.Fatalf("ListByGoal: %v", err)
	}
	if got := names(work); !equal(got, []string{"Boris"}) {
		t.Fatalf("ListByGoal(work) = %v", got)
	}
}

func TestTeacherGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.teachers.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if c.Name != "Clara" || c.Picture == "" || c.Rating == nil || *c.Rating != 4.2 || !c.HasGoal("travel") {
		t.Fatalf("unexpected teacher: %+v", c)
	}
	if _, err := f.teachers.GetByID(ctx, 999); !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("expected ErrTeacherNotFound, got %v", err)
	}
}

func TestTeacherRatingZeroIsNotUnrated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	zero := model.Teacher{Name: "Dora", About: "d", Rating: ptr(0), Price: 500}
	if err := f.teachers.CreateTx(ctx, tx, &zero); err != nil {
		t.Fatalf("CreateTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := f.teachers.GetByID(ctx, zero.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Rating == nil || *got.Rating != 0 {
		t.Fatalf("rating 0 must round trip, got %v", got.Rating)
	}
	boris, err := f.teachers.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if boris.Rating != nil {
		t.Fatalf("unrated teacher must have nil rating, got %v", *boris.Rating)
	}

	byRating, err := f.teachers.ListByRating(ctx)
	if err != nil {
		t.Fatalf("ListByRating: %v", err)
	}
	if got := names(byRating); !equal(got, []string{"Anna", "Clara", "Dora", "Boris"}) {
		t.Fatalf("rated 0 must sort before unrated: %v", got)
	}
}

func TestGoalGetByKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g, err := f.goals.GetByKey(ctx, "work")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if g.Label != "Для работы" {
		t.Fatalf("unexpected goal: %+v", g)
	}
	if _, err := f.goals.GetByKey(ctx, "cooking"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestCreateForSlotStrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := model.Booking{Name: "Ivan", Phone: "555", Day: "tue", Time: "10:00", TeacherID: 1}
	if err := f.bookings.CreateForSlot(ctx, &b, true); err != nil {
		t.Fatalf("CreateForSlot: %v", err)
	}
	if b.ID == 0 || b.CreatedAt.IsZero() {
		t.Fatalf("booking not populated: %+v", b)
	}
	slot, err := f.slots.GetSlot(ctx, 1, "tue", "10:00")
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if slot.Free {
		t.Fatalf("slot must be taken after booking")
	}

	again := model.Booking{Name: "Olga", Phone: "777", Day: "tue", Time: "10:00", TeacherID: 1}
	if err := f.bookings.CreateForSlot(ctx, &again, true); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if n, _ := f.bookings.Count(ctx); n != 1 {
		t.Fatalf("expected 1 booking, got %d", n)
	}
}

func TestCreateForSlotOverbook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		b := model.Booking{Name: "Ivan", Phone: "555", Day: "tue", Time: "12:00", TeacherID: 1}
		if err := f.bookings.CreateForSlot(ctx, &b, false); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}
	list, err := f.bookings.ListByTeacher(ctx, 1)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list))
	}
}

func TestCreateForSlotUnknownSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, requireFree := range []bool{true, false} {
		b := model.Booking{Name: "Ivan", Phone: "555", Day: "wed", Time: "10:00", TeacherID: 1}
		if err := f.bookings.CreateForSlot(ctx, &b, requireFree); !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("requireFree=%v: expected ErrSlotNotFound, got %v", requireFree, err)
		}
	}
	if n, _ := f.bookings.Count(ctx); n != 0 {
		t.Fatalf("no booking expected, got %d", n)
	}
}

func TestListDetailed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := model.Booking{Name: "Ivan", Phone: "555", Day: "tue", Time: "10:00", TeacherID: 1}
	if err := f.bookings.CreateForSlot(ctx, &b, true); err != nil {
		t.Fatalf("CreateForSlot: %v", err)
	}
	list, err := f.bookings.ListDetailed(ctx)
	if err != nil {
		t.Fatalf("ListDetailed: %v", err)
	}
	if len(list) != 1 || list[0].TeacherName != "Anna" || list[0].Name != "Ivan" {
		t.Fatalf("unexpected detail: %+v", list)
	}
}

func TestTimetableListByTeacher(t *testing.T) {
	f := newFixture(t)
	slots, err := f.slots.ListByTeacher(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(slots) != 2 || slots[0].Time != "10:00" || !slots[0].Free || slots[1].Free {
		t.Fatalf("unexpected slots: %+v", slots)
	}
}

func TestRequestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := model.Request{Name: "Anna", Phone: "12345", Goal: "Для путешествий", WeekTime: "1-2 часа в неделю"}
	if err := f.requests.Create(ctx, &r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, err := f.requests.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 request, got %d", len(list))
	}
	got := list[0]
	if got.ID != r.ID || got.Goal != r.Goal || got.WeekTime != r.WeekTime || got.Name != "Anna" || got.Phone != "12345" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Fatalf("created_at round trip: %v != %v", got.CreatedAt, r.CreatedAt)
	}
}
