package games

import "mlb-scoreboard-service/internal/domain/media"

// GameStatus is the case-normalized lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusPreview    GameStatus = "PREVIEW"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusLive       GameStatus = "LIVE"
	StatusFinal      GameStatus = "FINAL"
)

// Label is the short card label for a status.
func (s GameStatus) Label() string {
	switch s {
	case StatusFinal:
		return "Final"
	case StatusInProgress, StatusLive:
		return "Live"
	default:
		return "Scheduled"
	}
}

// TeamRef is a club reference: ID is the abbreviation used for short display,
// TeamID the numeric id used for logo and roster lookups.
type TeamRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID int    `json:"teamId"`
}

// Probable holds the probable starting pitchers, "TBD" when unknown.
type Probable struct {
	Away string `json:"away"`
	Home string `json:"home"`
}

// Inning is one inning's runs per side.
type Inning struct {
	Num  int `json:"num"`
	Away int `json:"away"`
	Home int `json:"home"`
}

// Totals are the game run totals per side.
type Totals struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

// Linescore always carries exactly nine innings.
type Linescore struct {
	Innings []Inning `json:"innings"`
	Totals  Totals   `json:"totals"`
}

// Game is one scheduled, live or final contest.
type Game struct {
	ID          string       `json:"id"`
	GamePk      int          `json:"gamePk"`
	Status      GameStatus   `json:"status"`
	StatusLabel string       `json:"statusLabel"`
	Start       string       `json:"start"`
	Venue       string       `json:"venue"`
	Away        TeamRef      `json:"away"`
	Home        TeamRef      `json:"home"`
	Probable    Probable     `json:"probable"`
	Linescore   *Linescore   `json:"linescore,omitempty"`
	LiveStatus  string       `json:"liveStatus,omitempty"`
	Recap       *media.Recap `json:"recap,omitempty"`
}

// Matchup is the "Away @ Home" title used by overlays.
func (g Game) Matchup() string {
	return g.Away.Name + " @ " + g.Home.Name
}

// Scoreboard is the payload returned by /api/scores?date=YYYY-MM-DD.
type Scoreboard struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Games []Game `json:"games"`
}

// NewScoreboard builds a Scoreboard, never with a nil games list.
func NewScoreboard(date, label string, games []Game) Scoreboard {
	if games == nil {
		games = []Game{}
	}
	return Scoreboard{
		Date:  date,
		Label: label,
		Games: games,
	}
}
