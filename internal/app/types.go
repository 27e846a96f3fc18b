package app

import (
	"waterbuddy/internal/goal"
	"waterbuddy/internal/mascot"
	"waterbuddy/internal/progress"
	"waterbuddy/internal/state"
	"waterbuddy/internal/stats"
	"waterbuddy/internal/xp"
)

// View is everything a render pass needs, recomputed on each request.
type View struct {
	Profile state.ProfileID
	Day     string

	Progress progress.Progress
	Stage    progress.Stage
	Message  string

	Stats  stats.Stats
	Weekly stats.WeekSummary
	Badges []stats.Badge

	XP        int
	Level     int
	QuickAdds [3]int
	DarkMode  bool

	Policy goal.Policy
	Shop   []ShopItem
	Tip    string
	Mascot []mascot.Instruction
}

// ShopItem pairs a catalog entry with this profile's purchase state.
type ShopItem struct {
	xp.Item
	Owned      bool
	Affordable bool
}

// AddResult reports the outcome of logging a drink.
type AddResult struct {
	AmountML  int
	GainedXP  int
	Level     int
	LeveledUp bool
	Progress  progress.Progress
}
