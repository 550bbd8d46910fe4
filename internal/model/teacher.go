package model

// Teacher is a tutor listed on the site.  A teacher owns many
// timetable slots and bookings and is linked to goals through the
// teachers_goals join table.
//
// Fields:
//
//	ID      – primary key identifier.
//	Name    – display name.
//	About   – free-text biography.
//	Rating  – average rating, nil when unrated.
//	Picture – avatar URL (empty when unset).
//	Price   – hourly price in roubles.
//	Goals   – goals the teacher works with; only filled by
//	          queries that load the association.
type Teacher struct {
	ID      uint64   // teachers.id
	Name    string   // teachers.name
	About   string   // teachers.about
	Rating  *float64 // teachers.rating (nullable)
	Picture string   // teachers.picture (nullable)
	Price   int      // teachers.price
	Goals   []Goal   // teachers_goals -> goals
}

// HasGoal reports whether the teacher is linked to the goal key.
func (t Teacher) HasGoal(key string) bool {
	for _, g := range t.Goals {
		if g.Key == key {
			return true
		}
	}
	return false
}
