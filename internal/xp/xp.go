// Package xp converts logged intake into experience points and gates the
// cosmetic shop against the XP balance.
package xp

import (
	"errors"

	"waterbuddy/internal/state"
)

const (
	// MLPerPoint is the intake divisor: 10 ml of water earns 1 XP.
	MLPerPoint = 10
	// PointsPerLevel is the level step: level = 1 + xp/500.
	PointsPerLevel = 500
)

var (
	ErrInsufficientXP = errors.New("insufficient xp")
	ErrAlreadyOwned   = errors.New("cosmetic already owned")
	ErrUnknownItem    = errors.New("unknown cosmetic")
)

func Gained(amountML int) int {
	if amountML <= 0 {
		return 0
	}
	return amountML / MLPerPoint
}

func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return 1 + points/PointsPerLevel
}

// Award credits XP for a drink and refreshes the cached level. It reports
// the points gained and whether the profile crossed a level threshold.
func Award(meta *state.ProfileMeta, amountML int) (gained int, leveledUp bool) {
	gained = Gained(amountML)
	if gained == 0 {
		return 0, false
	}
	oldLevel := LevelFor(meta.XP)
	meta.XP += gained
	meta.Level = LevelFor(meta.XP)
	return gained, meta.Level > oldLevel
}

// Item is a purely decorative unlock. Ownership is permanent and an owned
// item cannot be bought again.
type Item struct {
	ID     string
	Name   string
	CostXP int
}

var catalog = []Item{
	{ID: "bandana", Name: "Bandana", CostXP: 150},
	{ID: "sunglasses", Name: "Sunglasses", CostXP: 250},
	{ID: "party_shell", Name: "Party Shell", CostXP: 400},
	{ID: "crown", Name: "Crown", CostXP: 500},
}

func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

func ItemByID(id string) (Item, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Buy debits the item cost and marks it owned. State is untouched on any
// failure.
func Buy(meta *state.ProfileMeta, itemID string) (Item, error) {
	item, ok := ItemByID(itemID)
	if !ok {
		return Item{}, ErrUnknownItem
	}
	if meta.Cosmetics[item.ID] {
		return Item{}, ErrAlreadyOwned
	}
	if meta.XP < item.CostXP {
		return Item{}, ErrInsufficientXP
	}
	meta.XP -= item.CostXP
	meta.Level = LevelFor(meta.XP)
	if meta.Cosmetics == nil {
		meta.Cosmetics = map[string]bool{}
	}
	meta.Cosmetics[item.ID] = true
	return item, nil
}
