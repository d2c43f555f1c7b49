package normalize

import (
	"strconv"
	"strings"

	"mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const (
	probableUnknown       = "TBD"
	defaultDetailedState  = "Scheduled"
	defaultAbstractStatus = "Preview"
)

// Schedule maps the first date of a schedule payload into games, keeping upstream order.
func Schedule(payload *statsapi.SchedulePayload) []games.Game {
	if payload == nil || len(payload.Dates) == 0 {
		return []games.Game{}
	}
	raw := payload.Dates[0].Games
	out := make([]games.Game, 0, len(raw))
	for _, g := range raw {
		out = append(out, Game(g))
	}
	return out
}

// Game maps one schedule entry.
func Game(g statsapi.ScheduleGame) games.Game {
	status := Status(g.Status)
	return games.Game{
		ID:          strconv.Itoa(g.GamePk),
		GamePk:      g.GamePk,
		Status:      status,
		StatusLabel: status.Label(),
		Start:       g.GameDate,
		Venue:       g.Venue.Name,
		Away:        teamRef(g.Teams.Away.Team),
		Home:        teamRef(g.Teams.Home.Team),
		Probable: games.Probable{
			Away: probableName(g.Teams.Away.ProbablePitcher),
			Home: probableName(g.Teams.Home.ProbablePitcher),
		},
	}
}

// Status is FINAL when the detailed state mentions "final", otherwise the
// upper-cased abstract state.
func Status(s statsapi.GameStatus) games.GameStatus {
	detailed := s.DetailedState
	if detailed == "" {
		detailed = defaultDetailedState
	}
	if IsFinalText(detailed) {
		return games.StatusFinal
	}
	abstract := s.AbstractGameState
	if abstract == "" {
		abstract = defaultAbstractStatus
	}
	return games.GameStatus(strings.ToUpper(abstract))
}

// StatusText is the free-text live status: detailed state, else abstract state.
func StatusText(s statsapi.GameStatus) string {
	if s.DetailedState != "" {
		return s.DetailedState
	}
	return s.AbstractGameState
}

// IsFinalText reports whether a status text contains "final" in any case.
func IsFinalText(text string) bool {
	return strings.Contains(strings.ToLower(text), "final")
}

func teamRef(t statsapi.TeamRef) games.TeamRef {
	return games.TeamRef{ID: t.Abbreviation, Name: t.Name, TeamID: t.ID}
}

func probableName(p *statsapi.PersonRef) string {
	if p == nil || p.FullName == "" {
		return probableUnknown
	}
	return p.FullName
}
