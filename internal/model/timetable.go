package model

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Timetable is one weekly slot of a teacher.  There is exactly one
// row per (teacher, day, time).  Free flips to false when the slot is
// booked and is never flipped back.
//
// Fields:
//
//	ID        – primary key identifier.
//	TeacherID – owning teacher.
//	Day       – weekday key (see Weekdays).
//	Time      – time-of-day key such as "10:00".
//	Free      – whether the slot can still be booked.
type Timetable struct {
	ID        uint64 // timetables.id
	TeacherID uint64 // timetables.teacher_id
	Day       string // timetables.day
	Time      string // timetables.time
	Free      bool   // timetables.free
}

// TimeMinutes converts a time key such as "8:00" or "14:30" into minutes
// since midnight.  Malformed keys sort last.
func TimeMinutes(key string) int {
	h, m, ok := strings.Cut(key, ":")
	if !ok {
		return math.MaxInt32
	}
	hh, err1 := strconv.Atoi(h)
	mm, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil {
		return math.MaxInt32
	}
	return hh*60 + mm
}

// SortSlots orders slots by weekday and then by time of day.
func SortSlots(slots []Timetable) {
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := weekdayIndex(slots[i].Day), weekdayIndex(slots[j].Day)
		if di != dj {
			return di < dj
		}
		return TimeMinutes(slots[i].Time) < TimeMinutes(slots[j].Time)
	})
}
