// Package goal resolves the daily intake target from the active policy:
// an age-bracket table, a weight formula, or a manual override.
package goal

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidGoal = errors.New("goal must be a positive integer of millilitres")

type Mode int

const (
	ModeAgeBracket Mode = iota
	ModeWeightBased
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAgeBracket:
		return "age_bracket"
	case ModeWeightBased:
		return "weight_based"
	default:
		return "manual"
	}
}

type AgeBracket int

const (
	BracketChild AgeBracket = iota
	BracketTeen
	BracketAdult
	BracketSenior
)

var bracketGoals = map[AgeBracket]int{
	BracketChild:  1200,
	BracketTeen:   1700,
	BracketAdult:  2200,
	BracketSenior: 1800,
}

func (b AgeBracket) Label() string {
	switch b {
	case BracketChild:
		return "Child (4-8)"
	case BracketTeen:
		return "Teen (9-13)"
	case BracketAdult:
		return "Adult (14-64)"
	default:
		return "Senior (65+)"
	}
}

func (b AgeBracket) GoalML() int {
	if ml, ok := bracketGoals[b]; ok {
		return ml
	}
	return bracketGoals[BracketAdult]
}

// Brackets lists every bracket in display order.
func Brackets() []AgeBracket {
	return []AgeBracket{BracketChild, BracketTeen, BracketAdult, BracketSenior}
}

func BracketByLabel(label string) (AgeBracket, bool) {
	for _, b := range Brackets() {
		if b.Label() == label {
			return b, true
		}
	}
	return BracketAdult, false
}

// mlPerKG is the weight formula multiplier: 35 ml per kilogram per day.
const mlPerKG = 35

// Policy is the active goal rule set. Exactly one mode is authoritative at a
// time.
type Policy struct {
	Mode     Mode
	Bracket  AgeBracket
	WeightKG float64
	ManualML int
}

// Resolve derives goal_ml from the policy. An invalid weight falls back to
// the bracket value; an invalid manual goal is an error and the caller keeps
// the prior goal.
func (p Policy) Resolve() (int, error) {
	switch p.Mode {
	case ModeWeightBased:
		if p.WeightKG <= 0 {
			return p.Bracket.GoalML(), nil
		}
		return int(p.WeightKG * mlPerKG), nil
	case ModeManual:
		if p.ManualML <= 0 {
			return 0, ErrInvalidGoal
		}
		return p.ManualML, nil
	default:
		return p.Bracket.GoalML(), nil
	}
}

// ParseManual validates a user-entered goal string.
func ParseManual(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, ErrInvalidGoal
	}
	return v, nil
}
