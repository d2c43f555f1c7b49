package normalize

import (
	"sort"
	"strconv"
	"strings"

	"mlb-scoreboard-service/internal/domain/standings"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const (
	defaultDivisionName = "Division"
	defaultLeagueName   = "League"
)

// Standings flattens every division record into rows, then groups them by
// division and league. Each list is sorted by pct descending with ties kept
// in upstream order. Games back is left for presentation.
func Standings(season int, payload *statsapi.StandingsPayload) standings.Standings {
	out := standings.Standings{
		Season:        season,
		All:           []standings.Row{},
		ByDivision:    map[string][]standings.Row{},
		ByLeague:      map[string][]standings.Row{},
		DivisionOrder: []string{},
		LeagueOrder:   []string{},
	}
	if payload == nil {
		return out
	}

	for _, rec := range payload.Records {
		for _, tr := range rec.TeamRecords {
			out.All = append(out.All, standingsRow(rec, tr))
		}
	}
	sortByPct(out.All)

	for _, r := range out.All {
		if _, seen := out.ByDivision[r.Division]; !seen {
			out.DivisionOrder = append(out.DivisionOrder, r.Division)
		}
		out.ByDivision[r.Division] = append(out.ByDivision[r.Division], r)

		if _, seen := out.ByLeague[r.League]; !seen {
			out.LeagueOrder = append(out.LeagueOrder, r.League)
		}
		out.ByLeague[r.League] = append(out.ByLeague[r.League], r)
	}
	return out
}

func standingsRow(rec statsapi.StandingsRecord, tr statsapi.TeamRecord) standings.Row {
	wins, losses := int(tr.Wins), int(tr.Losses)
	pct := winningPct(tr.WinningPercentage.String(), wins, losses)
	gbAPI := tr.GamesBack.String()
	if gbAPI == "" {
		gbAPI = standings.GamesBackLeader
	}
	return standings.Row{
		TeamID:       tr.Team.ID,
		Name:         tr.Team.Name,
		Abbreviation: tr.Team.Abbreviation,
		Division:     firstName(defaultDivisionName, tr.Team.Division, rec.Division),
		League:       firstName(defaultLeagueName, tr.Team.League, rec.League),
		Wins:         wins,
		Losses:       losses,
		Pct:          pct,
		PctDisplay:   standings.FormatPct(pct),
		GBAPI:        gbAPI,
		RunsScored:   int(tr.RunsScored),
		RunsAllowed:  int(tr.RunsAllowed),
	}
}

func winningPct(raw string, wins, losses int) float64 {
	if raw = strings.TrimSpace(raw); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	if wins+losses == 0 {
		return 0
	}
	return float64(wins) / float64(wins+losses)
}

func firstName(fallback string, refs ...*statsapi.NamedRef) string {
	for _, ref := range refs {
		if ref != nil && ref.Name != "" {
			return ref.Name
		}
	}
	return fallback
}

func sortByPct(rows []standings.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pct > rows[j].Pct
	})
}
