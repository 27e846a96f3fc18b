// Package stats aggregates the full per-day history into streaks, records and
// weekly summaries.
package stats

import (
	"sort"
	"time"

	"waterbuddy/internal/state"
)

const dayLayout = "2006-01-02"

// Stats is the full-history summary for one profile.
type Stats struct {
	StreakDays        int
	BestDay           string
	BestIntakeML      int
	CompletionRatePct float64
	TotalDays         int
	TotalLitres       float64
}

// Compute scans the whole history once in ascending day order. On a tie for
// best day the earliest day wins because later equal intakes do not exceed
// the running maximum.
func Compute(history map[string]state.DayRecord) Stats {
	if len(history) == 0 {
		return Stats{}
	}

	days := sortedDays(history)
	out := Stats{TotalDays: len(days)}
	completed := 0
	for _, day := range days {
		rec := history[day]
		if rec.IntakeML >= rec.GoalML {
			completed++
		}
		if rec.IntakeML > out.BestIntakeML {
			out.BestIntakeML = rec.IntakeML
			out.BestDay = day
		}
		out.TotalLitres += float64(rec.IntakeML) / 1000
	}
	out.CompletionRatePct = float64(completed) / float64(out.TotalDays) * 100
	out.StreakDays = streak(history, days)
	return out
}

// streak walks backward one calendar day at a time from the most recent
// logged day. A day extends the streak only if it exists and met its goal.
// The anchor is the latest record, not the calendar today: an old streak
// keeps reporting until a failing day is actually logged.
func streak(history map[string]state.DayRecord, days []string) int {
	for i := len(days) - 1; i >= 0; i-- {
		anchor, err := time.Parse(dayLayout, days[i])
		if err != nil {
			continue
		}
		count := 0
		for current := anchor; ; current = current.AddDate(0, 0, -1) {
			rec, ok := history[current.Format(dayLayout)]
			if !ok || rec.IntakeML < rec.GoalML {
				break
			}
			count++
		}
		return count
	}
	return 0
}

// WeekSummary covers the trailing seven calendar days including today. Days
// without a record are excluded from the average's denominator.
type WeekSummary struct {
	DaysLogged      int
	TotalIntakeML   int
	DaysGoalMet     int
	AverageIntakeML float64
}

func Weekly(history map[string]state.DayRecord, today time.Time) WeekSummary {
	var out WeekSummary
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i).Format(dayLayout)
		rec, ok := history[day]
		if !ok {
			continue
		}
		out.DaysLogged++
		out.TotalIntakeML += rec.IntakeML
		if rec.IntakeML >= rec.GoalML {
			out.DaysGoalMet++
		}
	}
	if out.DaysLogged > 0 {
		out.AverageIntakeML = float64(out.TotalIntakeML) / float64(out.DaysLogged)
	}
	return out
}

func sortedDays(history map[string]state.DayRecord) []string {
	days := make([]string, 0, len(history))
	for day := range history {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
