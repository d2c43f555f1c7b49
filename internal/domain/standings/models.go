package standings

import (
	"strconv"
	"strings"
)

// GamesBackLeader is shown on a group leader's row.
const GamesBackLeader = "—"

// Row is one team's season record. GB is only set on rows returned by WithGamesBack.
type Row struct {
	TeamID       int     `json:"teamId"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Division     string  `json:"division"`
	League       string  `json:"league"`
	Wins         int     `json:"w"`
	Losses       int     `json:"l"`
	Pct          float64 `json:"pct"`
	PctDisplay   string  `json:"pctDisplay"`
	GB           string  `json:"gb,omitempty"`
	GBAPI        string  `json:"gbApi"`
	RunsScored   int     `json:"rs"`
	RunsAllowed  int     `json:"ra"`
}

// Standings is the normalized, immutable set of rows for a season. Each
// grouping is sorted by pct descending; group names keep first-seen order.
type Standings struct {
	Season        int              `json:"season"`
	All           []Row            `json:"all"`
	ByDivision    map[string][]Row `json:"byDivision"`
	ByLeague      map[string][]Row `json:"byLeague"`
	DivisionOrder []string         `json:"divisionOrder"`
	LeagueOrder   []string         `json:"leagueOrder"`
}

// View selects a standings presentation.
type View string

const (
	ViewDivision View = "division"
	ViewLeague   View = "league"
	ViewMLB      View = "mlb"
)

// ParseView maps a query value to a View, defaulting to divisions.
func ParseView(raw string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ViewDivision:
		return ViewDivision, true
	case ViewLeague:
		return ViewLeague, true
	case ViewMLB:
		return ViewMLB, true
	default:
		return "", false
	}
}

// Group is one presentation table.
type Group struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Table is the payload returned by /api/standings.
type Table struct {
	Season int     `json:"season"`
	View   View    `json:"view"`
	Groups []Group `json:"groups"`
}

// OverallGroupName heads the single all-teams table.
const OverallGroupName = "Overall MLB"

// Table derives a presentation view with games back computed per group.
func (s Standings) Table(view View) Table {
	out := Table{Season: s.Season, View: view, Groups: []Group{}}
	switch view {
	case ViewLeague:
		for _, name := range s.LeagueOrder {
			out.Groups = append(out.Groups, Group{Name: name, Rows: WithGamesBack(s.ByLeague[name])})
		}
	case ViewMLB:
		out.Groups = append(out.Groups, Group{Name: OverallGroupName, Rows: WithGamesBack(s.All)})
	default:
		for _, name := range s.DivisionOrder {
			out.Groups = append(out.Groups, Group{Name: name, Rows: WithGamesBack(s.ByDivision[name])})
		}
	}
	return out
}

// WithGamesBack returns copies of rows annotated with games back relative to
// rows[0]. The input is not modified.
func WithGamesBack(rows []Row) []Row {
	out := make([]Row, len(rows))
	if len(rows) == 0 {
		return out
	}
	leader := rows[0]
	for i, r := range rows {
		if i == 0 {
			r.GB = GamesBackLeader
		} else {
			diff := float64((leader.Wins-r.Wins)+(r.Losses-leader.Losses)) / 2
			r.GB = strconv.FormatFloat(diff, 'f', 1, 64)
		}
		out[i] = r
	}
	return out
}

// FormatPct renders a winning percentage to three places without a leading zero.
func FormatPct(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 3, 64)
	return strings.TrimPrefix(s, "0")
}
