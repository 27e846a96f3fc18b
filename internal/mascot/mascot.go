// Package mascot translates progress into drawing instructions for the
// renderer. It is a pure projection: no state, no drawing.
package mascot

import (
	"sort"

	"waterbuddy/internal/progress"
)

type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Instruction is one layer of the mascot drawing, applied in order.
type Instruction struct {
	Op  string
	Arg string
}

// Render produces the instruction list for the given stage: palette first,
// then the pose, then owned accessories sorted by id so output is stable.
func Render(stage progress.Stage, cosmetics map[string]bool, theme Theme) []Instruction {
	out := []Instruction{
		{Op: "palette", Arg: theme.String()},
		{Op: "pose", Arg: stage.Pose().String()},
	}
	owned := make([]string, 0, len(cosmetics))
	for id, has := range cosmetics {
		if has {
			owned = append(owned, id)
		}
	}
	sort.Strings(owned)
	for _, id := range owned {
		out = append(out, Instruction{Op: "accessory", Arg: id})
	}
	return out
}
