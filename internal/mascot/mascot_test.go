package mascot

import (
	"testing"

	"waterbuddy/internal/progress"
)

func TestRenderOrderIsStable(t *testing.T) {
	cosmetics := map[string]bool{
		"sunglasses": true,
		"bandana":    true,
		"crown":      false,
	}
	got := Render(progress.StageGoalDone, cosmetics, ThemeDark)
	want := []Instruction{
		{Op: "palette", Arg: "dark"},
		{Op: "pose", Arg: "celebrate"},
		{Op: "accessory", Arg: "bandana"},
		{Op: "accessory", Arg: "sunglasses"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d instructions, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("instruction %d: expected %#v, got %#v", i, want[i], got[i])
		}
	}
}

func TestRenderNoCosmetics(t *testing.T) {
	got := Render(progress.StageStart, nil, ThemeLight)
	if len(got) != 2 {
		t.Fatalf("expected palette+pose only, got %#v", got)
	}
	if got[1] != (Instruction{Op: "pose", Arg: "neutral"}) {
		t.Fatalf("expected neutral pose, got %#v", got[1])
	}
}
