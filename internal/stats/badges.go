package stats

import "waterbuddy/internal/state"

// Badge is a pure achievement derived from history on every render; there is
// no persisted unlock state.
type Badge struct {
	ID    string
	Title string
}

type badgePredicate func(history map[string]state.DayRecord, s Stats) bool

var badgeRegistry = []struct {
	badge Badge
	pred  badgePredicate
}{
	{Badge{ID: "first_goal", Title: "First goal met"}, func(history map[string]state.DayRecord, _ Stats) bool {
		for _, rec := range history {
			if rec.IntakeML >= rec.GoalML {
				return true
			}
		}
		return false
	}},
	{Badge{ID: "streak_3", Title: "3-day streak"}, func(_ map[string]state.DayRecord, s Stats) bool {
		return s.StreakDays >= 3
	}},
	{Badge{ID: "streak_7", Title: "7-day streak"}, func(_ map[string]state.DayRecord, s Stats) bool {
		return s.StreakDays >= 7
	}},
	{Badge{ID: "double_up", Title: "Doubled a daily goal"}, func(history map[string]state.DayRecord, _ Stats) bool {
		for _, rec := range history {
			if rec.IntakeML >= 2*rec.GoalML {
				return true
			}
		}
		return false
	}},
}

// Badges evaluates every registered predicate and returns the unlocked badges
// in registry order.
func Badges(history map[string]state.DayRecord) []Badge {
	s := Compute(history)
	out := make([]Badge, 0, len(badgeRegistry))
	for _, entry := range badgeRegistry {
		if entry.pred(history, s) {
			out = append(out, entry.badge)
		}
	}
	return out
}
