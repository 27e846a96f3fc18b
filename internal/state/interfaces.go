package state

import (
	"context"
	"errors"
	"time"
)

// ErrProfileRequired indicates an operation was attempted without a profile id.
var ErrProfileRequired = errors.New("profile id is required")

// Store persists per-day intake records and profile metadata, namespaced by
// profile id. Implementations must treat a missing record or file the same as
// "nothing logged yet" and return nil rather than an error.
type Store interface {
	LoadDay(ctx context.Context, profile ProfileID, day string) (*DayRecord, error)
	LoadHistory(ctx context.Context, profile ProfileID) (map[string]DayRecord, error)
	SaveDay(ctx context.Context, profile ProfileID, rec DayRecord) error
	LoadProfileMeta(ctx context.Context, profile ProfileID) (*ProfileMeta, error)
	SaveProfileMeta(ctx context.Context, profile ProfileID, meta ProfileMeta) error
	Close() error
}

// ProfileID namespaces all persisted state for one profile.
type ProfileID string

// DayRecord is one day's intake against that day's goal. Day is an ISO
// calendar date (YYYY-MM-DD); there is at most one record per (profile, day).
type DayRecord struct {
	Day      string
	IntakeML int
	GoalML   int
}

// ProfileMeta holds the XP balance, cosmetic ownership and display
// preferences for one profile. Level is cached but always derivable from XP.
type ProfileMeta struct {
	XP        int
	Level     int
	Cosmetics map[string]bool
	LastDrink time.Time
	QuickAdds [3]int
	DarkMode  bool
}
