package model

// Goal is a learning goal a visitor can filter tutors by.
//
// Fields:
//
//	ID    – primary key identifier.
//	Key   – short unique key used in URLs (e.g. "travel").
//	Label – localized display label.
type Goal struct {
	ID    uint64 // goals.id
	Key   string // goals.goal
	Label string // goals.goal_rus
}

// Pictogram returns the emoji shown next to the goal.
func (g Goal) Pictogram() string {
	return GoalPictograms[g.Key]
}

// GoalPictograms maps goal keys to the emoji used in listings.
var GoalPictograms = map[string]string{
	"travel":      "⛱",
	"study":       "🏫",
	"work":        "🏢",
	"relocate":    "🚜",
	"programming": "✌",
}
