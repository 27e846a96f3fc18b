package app

import (
	"context"
	"io"
	"testing"
	"time"

	"waterbuddy/internal/goal"
	"waterbuddy/internal/state"
	"waterbuddy/internal/tips"
	"waterbuddy/internal/xp"

	"github.com/charmbracelet/log"
)

func newTestSession(t *testing.T, dir string) *Session {
	t.Helper()
	store, err := state.NewFlatFile(dir)
	if err != nil {
		t.Fatalf("new flat file store: %v", err)
	}
	s := &Session{
		cfg:       DefaultConfig(),
		logger:    log.New(io.Discard),
		store:     store,
		tips:      tips.Default(),
		sessionID: "test-session",
		now: func() time.Time {
			return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
		},
		profile: "default",
		policy:  goal.Policy{Mode: goal.ModeAgeBracket, Bracket: goal.BracketAdult},
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddWaterAccumulatesAndAwardsXP(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	res, err := s.AddWater(ctx, 500)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if res.GainedXP != 50 {
		t.Fatalf("expected 50 xp, got %d", res.GainedXP)
	}
	if res.Progress.TotalML != 500 {
		t.Fatalf("expected total 500, got %d", res.Progress.TotalML)
	}

	res, err = s.AddWater(ctx, 700)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if res.Progress.TotalML != 1200 {
		t.Fatalf("expected total 1200, got %d", res.Progress.TotalML)
	}

	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.XP != 120 {
		t.Fatalf("expected xp 120, got %d", view.XP)
	}
	if view.Progress.GoalML != 2200 {
		t.Fatalf("expected adult default goal 2200, got %d", view.Progress.GoalML)
	}
}

func TestAddWaterNonPositiveIsNoOp(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	for _, amount := range []int{0, -250} {
		res, err := s.AddWater(ctx, amount)
		if err != nil {
			t.Fatalf("add %d: %v", amount, err)
		}
		if res != (AddResult{}) {
			t.Fatalf("expected zero result for amount %d, got %#v", amount, res)
		}
	}
}

func TestAddWaterPersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	s := newTestSession(t, dir)
	ctx := context.Background()

	if _, err := s.AddWater(ctx, 800); err != nil {
		t.Fatalf("add water: %v", err)
	}

	reloaded := newTestSession(t, dir)
	view, err := reloaded.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Progress.TotalML != 800 {
		t.Fatalf("expected persisted total 800, got %d", view.Progress.TotalML)
	}
	if view.XP != 80 {
		t.Fatalf("expected persisted xp 80, got %d", view.XP)
	}
}

func TestResetDayKeepsXPAndHistory(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	if _, err := s.AddWater(ctx, 1000); err != nil {
		t.Fatalf("add water: %v", err)
	}
	if err := s.ResetDay(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Progress.TotalML != 0 {
		t.Fatalf("expected intake reset to 0, got %d", view.Progress.TotalML)
	}
	// XP already earned is not rolled back by a reset.
	if view.XP != 100 {
		t.Fatalf("expected xp to survive reset, got %d", view.XP)
	}
	if !s.meta.LastDrink.IsZero() {
		t.Fatalf("expected last-drink timestamp cleared")
	}
}

func TestManualGoalValidationRetainsPrior(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	if _, err := s.SetManualGoal(ctx, "2600"); err != nil {
		t.Fatalf("set manual goal: %v", err)
	}
	if _, err := s.SetManualGoal(ctx, "-12"); err != goal.ErrInvalidGoal {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
	if _, err := s.SetManualGoal(ctx, "lots"); err != goal.ErrInvalidGoal {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}

	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Progress.GoalML != 2600 {
		t.Fatalf("expected prior goal 2600 retained, got %d", view.Progress.GoalML)
	}
	if view.Policy.Mode != goal.ModeManual {
		t.Fatalf("expected manual mode retained, got %v", view.Policy.Mode)
	}
}

func TestSwitchingPolicyModeRecomputesGoal(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	got, err := s.SetAgeBracket(ctx, goal.BracketTeen)
	if err != nil {
		t.Fatalf("set bracket: %v", err)
	}
	if got != 1700 {
		t.Fatalf("expected teen goal 1700, got %d", got)
	}

	got, err = s.SetWeight(ctx, 80)
	if err != nil {
		t.Fatalf("set weight: %v", err)
	}
	if got != 2800 {
		t.Fatalf("expected 80kg goal 2800, got %d", got)
	}

	// Invalid weight falls back to the bracket value.
	got, err = s.SetWeight(ctx, -3)
	if err != nil {
		t.Fatalf("set invalid weight: %v", err)
	}
	if got != 1700 {
		t.Fatalf("expected bracket fallback 1700, got %d", got)
	}

	rec, err := s.store.LoadDay(ctx, s.profile, s.today.Day)
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if rec == nil || rec.GoalML != 1700 {
		t.Fatalf("expected goal persisted immediately, got %#v", rec)
	}
}

func TestBuyCosmetic(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	// 1500 ml -> 150 xp, exactly the bandana cost.
	if _, err := s.AddWater(ctx, 1500); err != nil {
		t.Fatalf("add water: %v", err)
	}
	item, err := s.BuyCosmetic(ctx, "bandana")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if item.ID != "bandana" {
		t.Fatalf("unexpected item: %#v", item)
	}

	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.XP != 0 {
		t.Fatalf("expected xp 0 after purchase, got %d", view.XP)
	}
	var bandana ShopItem
	for _, entry := range view.Shop {
		if entry.ID == "bandana" {
			bandana = entry
		}
	}
	if !bandana.Owned {
		t.Fatalf("expected bandana owned in shop view")
	}

	if _, err := s.BuyCosmetic(ctx, "crown"); err != xp.ErrInsufficientXP {
		t.Fatalf("expected ErrInsufficientXP, got %v", err)
	}
}

func TestSwitchProfileInvalidatesCaches(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	if _, err := s.AddWater(ctx, 900); err != nil {
		t.Fatalf("add water: %v", err)
	}
	if err := s.SwitchProfile(ctx, "guest"); err != nil {
		t.Fatalf("switch profile: %v", err)
	}

	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Profile != "guest" {
		t.Fatalf("expected guest profile, got %s", view.Profile)
	}
	if view.Progress.TotalML != 0 || view.XP != 0 {
		t.Fatalf("expected fresh state for guest, got total=%d xp=%d", view.Progress.TotalML, view.XP)
	}

	// Back to the original profile, its state is still on disk.
	if err := s.SwitchProfile(ctx, "default"); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	view, err = s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Progress.TotalML != 900 || view.XP != 90 {
		t.Fatalf("expected restored state, got total=%d xp=%d", view.Progress.TotalML, view.XP)
	}

	if err := s.SwitchProfile(ctx, ""); err != state.ErrProfileRequired {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}
}

func TestDayRollover(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	if _, err := s.AddWater(ctx, 600); err != nil {
		t.Fatalf("add water: %v", err)
	}

	s.now = func() time.Time {
		return time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)
	}
	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Day != "2024-03-11" {
		t.Fatalf("expected rollover to 2024-03-11, got %s", view.Day)
	}
	if view.Progress.TotalML != 0 {
		t.Fatalf("expected fresh day total 0, got %d", view.Progress.TotalML)
	}
	if view.Stats.TotalDays != 1 {
		t.Fatalf("expected yesterday kept in history, got %d days", view.Stats.TotalDays)
	}
}

func TestSetQuickAddsValidation(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	ctx := context.Background()

	if err := s.SetQuickAdds(ctx, [3]int{150, 300, 600}); err != nil {
		t.Fatalf("set presets: %v", err)
	}
	if err := s.SetQuickAdds(ctx, [3]int{150, 0, 600}); err == nil {
		t.Fatalf("expected error for non-positive preset")
	}
	view, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.QuickAdds != [3]int{150, 300, 600} {
		t.Fatalf("expected valid presets retained, got %v", view.QuickAdds)
	}
}

func TestSnapshotIncludesTipAndMascot(t *testing.T) {
	s := newTestSession(t, t.TempDir())
	view, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if view.Tip == "" {
		t.Fatalf("expected a hydration tip")
	}
	if len(view.Mascot) < 2 {
		t.Fatalf("expected mascot instructions, got %#v", view.Mascot)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{DataDir: t.TempDir(), Storage: "bolt"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid storage backend error")
	}

	cfg = Config{DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Storage != "file" || cfg.Profile != "default" || cfg.HTTPAddr == "" {
		t.Fatalf("expected defaults filled, got %#v", cfg)
	}
}
