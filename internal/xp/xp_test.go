package xp

import (
	"testing"

	"waterbuddy/internal/state"
)

func TestGained(t *testing.T) {
	cases := []struct {
		amount int
		want   int
	}{
		{0, 0},
		{-250, 0},
		{9, 0},
		{10, 1},
		{250, 25},
		{999, 99},
	}
	for _, tc := range cases {
		if got := Gained(tc.amount); got != tc.want {
			t.Fatalf("Gained(%d): expected %d, got %d", tc.amount, tc.want, got)
		}
	}
}

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.points); got != tc.level {
			t.Fatalf("LevelFor(%d): expected %d, got %d", tc.points, tc.level, got)
		}
	}
}

func TestAwardReportsLevelUp(t *testing.T) {
	meta := state.DefaultMeta()
	meta.XP = 480
	meta.Level = LevelFor(meta.XP)

	gained, leveled := Award(&meta, 300)
	if gained != 30 {
		t.Fatalf("expected 30 xp gained, got %d", gained)
	}
	if !leveled {
		t.Fatalf("expected level-up crossing 500")
	}
	if meta.XP != 510 || meta.Level != 2 {
		t.Fatalf("unexpected meta after award: xp=%d level=%d", meta.XP, meta.Level)
	}

	gained, leveled = Award(&meta, 5)
	if gained != 0 || leveled {
		t.Fatalf("expected no-op award for sub-divisor amount")
	}
}

func TestBuySpendsAndMarksOwned(t *testing.T) {
	meta := state.DefaultMeta()
	meta.XP = 150

	item, err := Buy(&meta, "bandana")
	if err != nil {
		t.Fatalf("buy bandana: %v", err)
	}
	if item.CostXP != 150 {
		t.Fatalf("unexpected cost: %d", item.CostXP)
	}
	if meta.XP != 0 {
		t.Fatalf("expected xp 0 after purchase, got %d", meta.XP)
	}
	if !meta.Cosmetics["bandana"] {
		t.Fatalf("expected bandana owned")
	}

	if _, err := Buy(&meta, "sunglasses"); err != ErrInsufficientXP {
		t.Fatalf("expected ErrInsufficientXP, got %v", err)
	}
	if meta.XP != 0 || meta.Cosmetics["sunglasses"] {
		t.Fatalf("failed purchase must not change state: %#v", meta)
	}

	if _, err := Buy(&meta, "bandana"); err != ErrAlreadyOwned {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if _, err := Buy(&meta, "monocle"); err != ErrUnknownItem {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}
