package form

import "testing"

func TestValidateRequest(t *testing.T) {
	valid := RequestInput{
		ClientGoal:     "Для путешествий",
		ClientWeektime: "1-2 часа в неделю",
		ClientName:     "Anna",
		ClientPhone:    "12345",
	}

	r, errs := ValidateRequest(valid)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if r.Goal != valid.ClientGoal || r.WeekTime != valid.ClientWeektime || r.Name != "Anna" || r.Phone != "12345" {
		t.Fatalf("unexpected request: %+v", r)
	}

	cases := []struct {
		name  string
		edit  func(*RequestInput)
		field string
		msg   string
	}{
		{"empty name", func(in *RequestInput) { in.ClientName = "" }, "clientName", MsgRequired},
		{"blank phone", func(in *RequestInput) { in.ClientPhone = "   " }, "clientPhone", MsgRequired},
		{"unknown goal", func(in *RequestInput) { in.ClientGoal = "Для души" }, "clientGoal", MsgInvalidValue},
		{"unknown weektime", func(in *RequestInput) { in.ClientWeektime = "24/7" }, "clientWeektime", MsgInvalidValue},
		{"missing goal", func(in *RequestInput) { in.ClientGoal = "" }, "clientGoal", MsgRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.edit(&in)
			_, errs := ValidateRequest(in)
			if got := errs.Get(tc.field); got != tc.msg {
				t.Fatalf("error for %s = %q, want %q (all: %v)", tc.field, got, tc.msg, errs)
			}
		})
	}
}

func TestValidateRequestTrims(t *testing.T) {
	in := DefaultRequestInput()
	in.ClientName = "  Anna "
	in.ClientPhone = " 12345"
	r, errs := ValidateRequest(in)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if r.Name != "Anna" || r.Phone != "12345" {
		t.Fatalf("fields not trimmed: %+v", r)
	}
}

func TestValidateBooking(t *testing.T) {
	valid := BookingInput{
		ClientName:    "Ivan",
		ClientPhone:   "555",
		ClientWeekday: "tue",
		ClientTime:    "10:00",
		ClientTeacher: "7",
	}
	b, errs := ValidateBooking(valid)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if b.TeacherID != 7 || b.Day != "tue" || b.Time != "10:00" || b.Name != "Ivan" {
		t.Fatalf("unexpected booking: %+v", b)
	}

	cases := []struct {
		name  string
		edit  func(*BookingInput)
		field string
	}{
		{"empty name", func(in *BookingInput) { in.ClientName = "" }, "clientName"},
		{"empty phone", func(in *BookingInput) { in.ClientPhone = "" }, "clientPhone"},
		{"bad weekday", func(in *BookingInput) { in.ClientWeekday = "monday" }, "clientWeekday"},
		{"empty time", func(in *BookingInput) { in.ClientTime = "" }, "clientTime"},
		{"teacher not a number", func(in *BookingInput) { in.ClientTeacher = "seven" }, "clientTeacher"},
		{"teacher zero", func(in *BookingInput) { in.ClientTeacher = "0" }, "clientTeacher"},
		{"teacher negative", func(in *BookingInput) { in.ClientTeacher = "-1" }, "clientTeacher"},
		{"teacher above int64", func(in *BookingInput) { in.ClientTeacher = "9223372036854775808" }, "clientTeacher"},
		{"teacher max uint64", func(in *BookingInput) { in.ClientTeacher = "18446744073709551615" }, "clientTeacher"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.edit(&in)
			_, errs := ValidateBooking(in)
			if !errs.Has(tc.field) {
				t.Fatalf("expected error on %s, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateBookingLargestTeacherID(t *testing.T) {
	b, errs := ValidateBooking(BookingInput{
		ClientName:    "Ivan",
		ClientPhone:   "555",
		ClientWeekday: "mon",
		ClientTime:    "8:00",
		ClientTeacher: "9223372036854775807",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if b.TeacherID != 1<<63-1 {
		t.Fatalf("TeacherID = %d", b.TeacherID)
	}
}

func TestErrorsNilSafe(t *testing.T) {
	var errs Errors
	if errs.Has("clientName") || errs.Get("clientName") != "" {
		t.Fatalf("nil Errors must be empty")
	}
}
