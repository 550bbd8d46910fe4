package service

import "github.com/iliyamo/tutor-booking/internal/model"

// FullDays returns, in week order, the keys of the days on which none of
// slots is free.  A day without any slot counts as full.
func FullDays(slots []model.Timetable) []string {
	var full []string
	for _, d := range model.Weekdays {
		available := false
		for _, s := range slots {
			if s.Day == d.Key && s.Free {
				available = true
				break
			}
		}
		if !available {
			full = append(full, d.Key)
		}
	}
	return full
}

// DaySchedule is one row of the profile availability grid.
type DaySchedule struct {
	Day   model.Weekday
	Full  bool
	Slots []model.Timetable // free slots, by time of day
}

// BuildSchedule groups the free slots by weekday for the profile page.
// Every weekday is present, full days with no slots.
func BuildSchedule(slots []model.Timetable) []DaySchedule {
	sorted := make([]model.Timetable, len(slots))
	copy(sorted, slots)
	model.SortSlots(sorted)

	full := make(map[string]bool, len(model.Weekdays))
	for _, k := range FullDays(slots) {
		full[k] = true
	}
	out := make([]DaySchedule, 0, len(model.Weekdays))
	for _, d := range model.Weekdays {
		ds := DaySchedule{Day: d, Full: full[d.Key]}
		for _, s := range sorted {
			if s.Day == d.Key && s.Free {
				ds.Slots = append(ds.Slots, s)
			}
		}
		out = append(out, ds)
	}
	return out
}
