package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"mlb-scoreboard-service/internal/app/viewstate"
	"mlb-scoreboard-service/internal/domain/boxscore"
	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/domain/standings"
	domainteams "mlb-scoreboard-service/internal/domain/teams"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/poller"
	"mlb-scoreboard-service/internal/timeutil"
)

// ScoresService serves the scoreboard and box score views.
type ScoresService interface {
	Scoreboard(ctx context.Context, date string) domaingames.Scoreboard
	BoxScore(ctx context.Context, gamePk int) boxscore.BoxScore
}

// StandingsService serves standings tables.
type StandingsService interface {
	CurrentSeason() int
	Table(ctx context.Context, season int, view standings.View) (standings.Table, error)
}

// TeamsService serves team pages and logos.
type TeamsService interface {
	Page(ctx context.Context, teamID int) domainteams.Page
	Logo(ctx context.Context, teamID int) domainteams.Logo
}

// Config wires a Handler.
type Config struct {
	Scores    ScoresService
	Standings StandingsService
	Teams     TeamsService
	Status    func() poller.Status
	Logger    *slog.Logger
	Clock     clockwork.Clock
	Location  *time.Location
}

// Handler wires HTTP routes to the view services.
type Handler struct {
	scores    ScoresService
	standings StandingsService
	teams     TeamsService
	statusFn  func() poller.Status
	logger    *slog.Logger
	clock     clockwork.Clock
	loc       *time.Location
}

// NewHandler constructs a Handler with defaults.
func NewHandler(cfg Config) *Handler {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		scores:    cfg.Scores,
		standings: cfg.Standings,
		teams:     cfg.Teams,
		statusFn:  cfg.Status,
		logger:    cfg.Logger,
		clock:     clock,
		loc:       loc,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Scores returns the scoreboard for ?date=, defaulting to today.
func (h *Handler) Scores(w nethttp.ResponseWriter, r *nethttp.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = timeutil.Today(h.clock, h.loc)
	} else if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}

	board := h.scores.Scoreboard(r.Context(), date)
	logging.Info(loggerFromContext(r, h.logger), "served scoreboard",
		logging.FieldDate, board.Date,
		logging.FieldCount, len(board.Games),
	)
	writeJSON(w, nethttp.StatusOK, board, h.logger)
}

// BoxScore returns the box score overlay for one game.
func (h *Handler) BoxScore(w nethttp.ResponseWriter, r *nethttp.Request) {
	gamePk, ok := positiveParam(r, "gamePk")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.scores.BoxScore(r.Context(), gamePk), h.logger)
}

// Standings returns one standings table for ?view= and ?season=.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	query := r.URL.Query()
	view, ok := standings.ParseView(query.Get("view"))
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid view (expected division, league or mlb)", h.logger)
		return
	}
	season := h.standings.CurrentSeason()
	if raw := query.Get("season"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
			return
		}
		season = parsed
	}

	table, err := h.standings.Table(r.Context(), season, view)
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "standings unavailable", err, logging.FieldSeason, season)
		writeError(w, r, nethttp.StatusBadGateway, "standings unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, table, h.logger)
}

// Team returns the team page.
func (h *Handler) Team(w nethttp.ResponseWriter, r *nethttp.Request) {
	teamID, ok := positiveParam(r, "teamId")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.teams.Page(r.Context(), teamID), h.logger)
}

// TeamLogo returns the ordered logo candidates and text badge.
func (h *Handler) TeamLogo(w nethttp.ResponseWriter, r *nethttp.Request) {
	teamID, ok := positiveParam(r, "teamId")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.teams.Logo(r.Context(), teamID), h.logger)
}

type routeResponse struct {
	viewstate.Route
	Hash string `json:"hash"`
}

// ResolveRoute maps ?hash= to a view. Unknown hashes resolve to scores.
func (h *Handler) ResolveRoute(w nethttp.ResponseWriter, r *nethttp.Request) {
	route := viewstate.ResolveRoute(r.URL.Query().Get("hash"))
	writeJSON(w, nethttp.StatusOK, routeResponse{Route: route, Hash: route.Hash()}, h.logger)
}

func positiveParam(r *nethttp.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
