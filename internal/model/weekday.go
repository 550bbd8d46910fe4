package model

// Weekday pairs a weekday key with its display label.
type Weekday struct {
	Key   string
	Label string
}

// Weekdays is the fixed week in display order.
var Weekdays = []Weekday{
	{Key: "mon", Label: "Понедельник"},
	{Key: "tue", Label: "Вторник"},
	{Key: "wed", Label: "Среда"},
	{Key: "thu", Label: "Четверг"},
	{Key: "fri", Label: "Пятница"},
	{Key: "sat", Label: "Суббота"},
	{Key: "sun", Label: "Воскресенье"},
}

// WeekdayLabel returns the label for a weekday key, or the key itself
// when it is unknown.
func WeekdayLabel(key string) string {
	for _, d := range Weekdays {
		if d.Key == key {
			return d.Label
		}
	}
	return key
}

// IsWeekday reports whether key is one of the seven weekday keys.
func IsWeekday(key string) bool {
	for _, d := range Weekdays {
		if d.Key == key {
			return true
		}
	}
	return false
}

func weekdayIndex(key string) int {
	for i, d := range Weekdays {
		if d.Key == key {
			return i
		}
	}
	return len(Weekdays)
}
