// Package web is the thin HTTP surface over the session. All validation
// happens in the core; handlers only translate form values and render
// templates.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"waterbuddy/internal/app"
	"waterbuddy/internal/goal"
	"waterbuddy/internal/state"
	"waterbuddy/internal/xp"

	"github.com/charmbracelet/log"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	session   *app.Session
	logger    *log.Logger
	templates *template.Template
}

func NewHandler(session *app.Session, logger *log.Logger) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{session: session, logger: logger, templates: templates}, nil
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /history", h.history)
	mux.HandleFunc("POST /add", h.addWater)
	mux.HandleFunc("POST /goal", h.setGoal)
	mux.HandleFunc("POST /reset", h.resetDay)
	mux.HandleFunc("POST /shop/buy", h.buyCosmetic)
	mux.HandleFunc("POST /profile", h.switchProfile)
	mux.HandleFunc("POST /presets", h.setPresets)
	mux.HandleFunc("POST /darkmode", h.setDarkMode)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

type homeData struct {
	app.View
	Flash string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, "snapshot", err)
		return
	}
	data := homeData{View: view, Flash: r.URL.Query().Get("msg")}
	if err := h.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		h.serverError(w, "render home", err)
	}
}

type historyData struct {
	Profile state.ProfileID
	Days    []state.DayRecord
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	days, err := h.session.History(r.Context())
	if err != nil {
		h.serverError(w, "history", err)
		return
	}
	data := historyData{Profile: h.session.Profile(), Days: days}
	if err := h.templates.ExecuteTemplate(w, "history.html", data); err != nil {
		h.serverError(w, "render history", err)
	}
}

func (h *Handler) addWater(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.Atoi(r.FormValue("amount"))
	if err != nil {
		h.redirectFlash(w, r, "Enter a whole number of millilitres.")
		return
	}
	res, err := h.session.AddWater(r.Context(), amount)
	if err != nil {
		h.serverError(w, "add water", err)
		return
	}
	if res.LeveledUp {
		h.redirectFlash(w, r, "Level up! You reached level "+strconv.Itoa(res.Level)+".")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) setGoal(w http.ResponseWriter, r *http.Request) {
	var err error
	switch r.FormValue("mode") {
	case "age":
		bracket, ok := goal.BracketByLabel(r.FormValue("bracket"))
		if !ok {
			h.redirectFlash(w, r, "Unknown age group.")
			return
		}
		_, err = h.session.SetAgeBracket(r.Context(), bracket)
	case "weight":
		kg, parseErr := strconv.ParseFloat(r.FormValue("weight_kg"), 64)
		if parseErr != nil {
			kg = 0
		}
		_, err = h.session.SetWeight(r.Context(), kg)
	default:
		_, err = h.session.SetManualGoal(r.Context(), r.FormValue("goal_ml"))
		if errors.Is(err, goal.ErrInvalidGoal) {
			h.redirectFlash(w, r, "Enter a positive integer for goal (ml).")
			return
		}
	}
	if err != nil {
		h.serverError(w, "set goal", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) resetDay(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ResetDay(r.Context()); err != nil {
		h.serverError(w, "reset day", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) buyCosmetic(w http.ResponseWriter, r *http.Request) {
	item, err := h.session.BuyCosmetic(r.Context(), r.FormValue("item"))
	switch {
	case errors.Is(err, xp.ErrInsufficientXP):
		h.redirectFlash(w, r, "Not enough XP for that yet. Keep drinking water!")
	case errors.Is(err, xp.ErrAlreadyOwned):
		h.redirectFlash(w, r, "Already owned.")
	case errors.Is(err, xp.ErrUnknownItem):
		http.Error(w, "unknown cosmetic", http.StatusBadRequest)
	case err != nil:
		h.serverError(w, "buy cosmetic", err)
	default:
		h.redirectFlash(w, r, item.Name+" unlocked!")
	}
}

func (h *Handler) switchProfile(w http.ResponseWriter, r *http.Request) {
	err := h.session.SwitchProfile(r.Context(), state.ProfileID(r.FormValue("profile")))
	if errors.Is(err, state.ErrProfileRequired) {
		h.redirectFlash(w, r, "Profile name is required.")
		return
	}
	if err != nil {
		h.serverError(w, "switch profile", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) setPresets(w http.ResponseWriter, r *http.Request) {
	var presets [3]int
	for i, field := range []string{"quick1", "quick2", "quick3"} {
		v, err := strconv.Atoi(r.FormValue(field))
		if err != nil {
			h.redirectFlash(w, r, "Presets must be whole numbers of millilitres.")
			return
		}
		presets[i] = v
	}
	if err := h.session.SetQuickAdds(r.Context(), presets); err != nil {
		h.redirectFlash(w, r, "Presets must be positive.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) setDarkMode(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SetDarkMode(r.Context(), r.FormValue("dark") == "on"); err != nil {
		h.serverError(w, "set dark mode", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) redirectFlash(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?msg="+template.URLQueryEscaper(msg), http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("http."+op, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
