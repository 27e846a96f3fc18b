package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"waterbuddy/internal/goal"
	"waterbuddy/internal/mascot"
	"waterbuddy/internal/progress"
	"waterbuddy/internal/state"
	"waterbuddy/internal/stats"
	"waterbuddy/internal/tips"
	"waterbuddy/internal/xp"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// Session is the explicit state object threaded through every operation.
// It caches today's record and the profile metadata for the active profile;
// switching profiles drops both caches.
type Session struct {
	cfg    Config
	logger *log.Logger
	store  state.Store
	tips   *tips.Pack

	sessionID string
	now       func() time.Time

	profile state.ProfileID
	policy  goal.Policy
	today   *state.DayRecord
	meta    *state.ProfileMeta
}

func New(cfg Config, logger *log.Logger) (*Session, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	pack, err := tips.Load(cfg.TipsPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load tips: %w", err)
	}
	s := &Session{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		tips:      pack,
		sessionID: uuid.NewString(),
		now:       time.Now,
		profile:   state.ProfileID(cfg.Profile),
		policy:    goal.Policy{Mode: goal.ModeAgeBracket, Bracket: goal.BracketAdult},
	}
	logger.Info("app.start", "session", s.sessionID, "profile", cfg.Profile, "storage", cfg.Storage)
	return s, nil
}

func openStore(cfg Config) (state.Store, error) {
	switch cfg.Storage {
	case "sqlite":
		store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "waterbuddy.db"))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(context.Background()); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return state.NewFlatFile(cfg.DataDir)
	}
}

func (s *Session) Close() error {
	return s.store.Close()
}

// Profile returns the active profile id.
func (s *Session) Profile() state.ProfileID { return s.profile }

// ensureLoaded rehydrates today's record and the profile metadata from the
// store at most once per profile activation. It also rolls the cached record
// over when the calendar day has changed since the last operation.
func (s *Session) ensureLoaded(ctx context.Context) error {
	day := s.now().Format(dayLayout)

	if s.meta == nil {
		meta, err := s.store.LoadProfileMeta(ctx, s.profile)
		if err != nil {
			return fmt.Errorf("load profile meta: %w", err)
		}
		if meta == nil {
			m := state.DefaultMeta()
			meta = &m
		}
		// Level is a pure function of XP; the stored value is only a cache.
		meta.Level = xp.LevelFor(meta.XP)
		s.meta = meta
	}

	if s.today != nil && s.today.Day != day {
		s.today = nil
	}
	if s.today == nil {
		rec, err := s.store.LoadDay(ctx, s.profile, day)
		if err != nil {
			return fmt.Errorf("load today: %w", err)
		}
		if rec == nil {
			goalML, err := s.policy.Resolve()
			if err != nil {
				goalML = goal.BracketAdult.GoalML()
			}
			rec = &state.DayRecord{Day: day, GoalML: goalML}
		}
		s.today = rec
	}
	return nil
}

// AddWater logs a drink, awards XP and persists both files. Non-positive
// amounts are a silent no-op.
func (s *Session) AddWater(ctx context.Context, amountML int) (AddResult, error) {
	if amountML <= 0 {
		return AddResult{}, nil
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return AddResult{}, err
	}

	s.today.IntakeML += amountML
	s.meta.LastDrink = s.now()
	gained, leveledUp := xp.Award(s.meta, amountML)

	if err := s.persist(ctx); err != nil {
		return AddResult{}, err
	}

	p := progress.Compute(s.today.GoalML, s.today.IntakeML)
	s.logger.Info("water.add",
		"profile", s.profile, "amount_ml", amountML,
		"total_ml", s.today.IntakeML, "xp_gained", gained, "level_up", leveledUp)
	return AddResult{
		AmountML:  amountML,
		GainedXP:  gained,
		Level:     s.meta.Level,
		LeveledUp: leveledUp,
		Progress:  p,
	}, nil
}

// ResetDay zeroes today's intake and the last-drink timestamp. Historical
// records and XP already earned are untouched.
func (s *Session) ResetDay(ctx context.Context) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.today.IntakeML = 0
	s.meta.LastDrink = time.Time{}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.Info("day.reset", "profile", s.profile, "day", s.today.Day)
	return nil
}

// SetAgeBracket switches to age-bracket mode and immediately persists the
// recomputed goal for today.
func (s *Session) SetAgeBracket(ctx context.Context, bracket goal.AgeBracket) (int, error) {
	return s.applyPolicy(ctx, goal.Policy{Mode: goal.ModeAgeBracket, Bracket: bracket})
}

// SetWeight switches to weight-based mode. An invalid weight resolves to the
// current bracket's value rather than failing.
func (s *Session) SetWeight(ctx context.Context, weightKG float64) (int, error) {
	return s.applyPolicy(ctx, goal.Policy{
		Mode:     goal.ModeWeightBased,
		Bracket:  s.policy.Bracket,
		WeightKG: weightKG,
	})
}

// SetManualGoal parses a user-entered goal. On validation failure the prior
// goal and policy are retained and the error is surfaced.
func (s *Session) SetManualGoal(ctx context.Context, raw string) (int, error) {
	ml, err := goal.ParseManual(raw)
	if err != nil {
		return 0, err
	}
	return s.applyPolicy(ctx, goal.Policy{
		Mode:     goal.ModeManual,
		Bracket:  s.policy.Bracket,
		ManualML: ml,
	})
}

func (s *Session) applyPolicy(ctx context.Context, policy goal.Policy) (int, error) {
	goalML, err := policy.Resolve()
	if err != nil {
		return 0, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	s.policy = policy
	s.today.GoalML = goalML
	if err := s.store.SaveDay(ctx, s.profile, *s.today); err != nil {
		return 0, fmt.Errorf("save today: %w", err)
	}
	s.logger.Info("goal.set", "profile", s.profile, "mode", policy.Mode.String(), "goal_ml", goalML)
	return goalML, nil
}

// BuyCosmetic debits XP and marks the item owned. The purchase is rejected
// without state change when XP is short, the item is unknown, or it is
// already owned.
func (s *Session) BuyCosmetic(ctx context.Context, itemID string) (xp.Item, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return xp.Item{}, err
	}
	item, err := xp.Buy(s.meta, itemID)
	if err != nil {
		return xp.Item{}, err
	}
	if err := s.store.SaveProfileMeta(ctx, s.profile, *s.meta); err != nil {
		return xp.Item{}, fmt.Errorf("save profile meta: %w", err)
	}
	s.logger.Info("shop.buy", "profile", s.profile, "item", item.ID, "cost_xp", item.CostXP, "xp_left", s.meta.XP)
	return item, nil
}

// SwitchProfile changes the active namespace and invalidates both caches so
// the next access reloads from the store.
func (s *Session) SwitchProfile(ctx context.Context, profile state.ProfileID) error {
	if profile == "" {
		return state.ErrProfileRequired
	}
	if profile == s.profile {
		return nil
	}
	s.profile = profile
	s.today = nil
	s.meta = nil
	s.policy = goal.Policy{Mode: goal.ModeAgeBracket, Bracket: goal.BracketAdult}
	s.logger.Info("profile.switch", "profile", profile)
	return nil
}

// SetQuickAdds replaces the quick-add presets. All three must be positive.
func (s *Session) SetQuickAdds(ctx context.Context, presets [3]int) error {
	for _, ml := range presets {
		if ml <= 0 {
			return fmt.Errorf("quick-add preset must be positive, got %d", ml)
		}
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.meta.QuickAdds = presets
	if err := s.store.SaveProfileMeta(ctx, s.profile, *s.meta); err != nil {
		return fmt.Errorf("save profile meta: %w", err)
	}
	return nil
}

// SetDarkMode stores the display preference for the active profile.
func (s *Session) SetDarkMode(ctx context.Context, dark bool) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.meta.DarkMode = dark
	if err := s.store.SaveProfileMeta(ctx, s.profile, *s.meta); err != nil {
		return fmt.Errorf("save profile meta: %w", err)
	}
	return nil
}

// Snapshot recomputes the full render view: progress, history stats, weekly
// summary, badges, shop state and a hydration tip.
func (s *Session) Snapshot(ctx context.Context) (View, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return View{}, err
	}
	history, err := s.store.LoadHistory(ctx, s.profile)
	if err != nil {
		return View{}, fmt.Errorf("load history: %w", err)
	}

	p := progress.Compute(s.today.GoalML, s.today.IntakeML)
	stage := p.Stage()
	theme := mascot.ThemeLight
	if s.meta.DarkMode {
		theme = mascot.ThemeDark
	}

	shop := make([]ShopItem, 0, len(xp.Catalog()))
	for _, item := range xp.Catalog() {
		shop = append(shop, ShopItem{
			Item:       item,
			Owned:      s.meta.Cosmetics[item.ID],
			Affordable: s.meta.XP >= item.CostXP,
		})
	}

	return View{
		Profile:   s.profile,
		Day:       s.today.Day,
		Progress:  p,
		Stage:     stage,
		Message:   stage.Message(),
		Stats:     stats.Compute(history),
		Weekly:    stats.Weekly(history, s.now()),
		Badges:    stats.Badges(history),
		XP:        s.meta.XP,
		Level:     s.meta.Level,
		QuickAdds: s.meta.QuickAdds,
		DarkMode:  s.meta.DarkMode,
		Policy:    s.policy,
		Shop:      shop,
		Tip:       s.tips.Random(nil),
		Mascot:    mascot.Render(stage, s.meta.Cosmetics, theme),
	}, nil
}

// History returns every logged day for the active profile, newest first.
func (s *Session) History(ctx context.Context) ([]state.DayRecord, error) {
	history, err := s.store.LoadHistory(ctx, s.profile)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := make([]state.DayRecord, 0, len(history))
	for _, rec := range history {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out, nil
}

func (s *Session) persist(ctx context.Context) error {
	if err := s.store.SaveDay(ctx, s.profile, *s.today); err != nil {
		return fmt.Errorf("save today: %w", err)
	}
	if err := s.store.SaveProfileMeta(ctx, s.profile, *s.meta); err != nil {
		return fmt.Errorf("save profile meta: %w", err)
	}
	return nil
}
