package model

import "time"

// Request is a "find me a tutor" submission kept for manual follow-up.
// It is not linked to any teacher.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – client name.
//	Phone     – client phone.
//	Goal      – chosen goal label (one of RequestGoals).
//	WeekTime  – chosen weekly commitment (one of RequestWeekTimes).
//	CreatedAt – when the request was stored.
type Request struct {
	ID        uint64    // requests.id
	Name      string    // requests.name
	Phone     string    // requests.phone
	Goal      string    // requests.goal
	WeekTime  string    // requests.weektime
	CreatedAt time.Time // requests.created_at
}

// RequestGoals lists the goal choices of the request form in display order.
var RequestGoals = []string{
	"Для путешествий",
	"Для учебы",
	"Для работы",
	"Для переезда",
	"Для программирования",
}

// RequestWeekTimes lists the weekly time choices of the request form.
var RequestWeekTimes = []string{
	"1-2 часа в неделю",
	"3-5 часов в неделю",
	"5-7 часов в неделю",
	"7-10 часов в неделю",
}
