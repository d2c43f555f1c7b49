package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"mlb-scoreboard-service/internal/domain/standings"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const standingsFixture = `{"records": [
	{
		"division": {"id": 201, "name": "American League East"},
		"league": {"id": 103, "name": "American League"},
		"teamRecords": [
			{"team": {"id": 110, "name": "Baltimore Orioles", "abbreviation": "BAL"}, "wins": 8, "losses": 7, "gamesBack": "2.0", "runsScored": 70, "runsAllowed": 65},
			{"team": {"id": 147, "name": "New York Yankees", "abbreviation": "NYY", "division": {"name": "AL East"}}, "wins": 10, "losses": 5, "winningPercentage": ".667", "gamesBack": "-"}
		]
	},
	{
		"teamRecords": [
			{"team": {"id": 119, "name": "Los Angeles Dodgers", "league": {"name": "National League"}}, "wins": 0, "losses": 0}
		]
	}
]}`

func decodeStandings(t *testing.T) *statsapi.StandingsPayload {
	t.Helper()
	var payload statsapi.StandingsPayload
	if err := json.Unmarshal([]byte(standingsFixture), &payload); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &payload
}

func TestStandingsFlattensAndSorts(t *testing.T) {
	got := Standings(2024, decodeStandings(t))

	if len(got.All) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got.All))
	}
	if got.All[0].Name != "New York Yankees" || got.All[1].Name != "Baltimore Orioles" {
		t.Fatalf("expected pct-descending order, got %s, %s", got.All[0].Name, got.All[1].Name)
	}

	nyy := got.All[0]
	if nyy.Pct != 0.667 || nyy.PctDisplay != ".667" {
		t.Fatalf("expected upstream pct, got %v %q", nyy.Pct, nyy.PctDisplay)
	}
	if nyy.Division != "AL East" || nyy.League != "American League" {
		t.Fatalf("expected team hydrate before record names, got %q / %q", nyy.Division, nyy.League)
	}

	bal := got.All[1]
	if bal.Pct != 8.0/15 || bal.PctDisplay != ".533" {
		t.Fatalf("expected derived pct, got %v %q", bal.Pct, bal.PctDisplay)
	}
	if bal.GBAPI != "2.0" || bal.RunsScored != 70 || bal.RunsAllowed != 65 {
		t.Fatalf("unexpected upstream fields %+v", bal)
	}

	lad := got.All[2]
	if lad.Pct != 0 || lad.Division != "Division" || lad.League != "National League" || lad.GBAPI != "—" {
		t.Fatalf("unexpected defaults %+v", lad)
	}
}

func TestStandingsGroupingKeepsFirstSeenOrder(t *testing.T) {
	got := Standings(2024, decodeStandings(t))

	wantDivisions := []string{"AL East", "American League East", "Division"}
	if !reflect.DeepEqual(got.DivisionOrder, wantDivisions) {
		t.Fatalf("expected divisions %v, got %v", wantDivisions, got.DivisionOrder)
	}
	if len(got.ByLeague["American League"]) != 2 {
		t.Fatalf("expected 2 AL rows, got %+v", got.ByLeague)
	}
	for _, r := range got.All {
		if r.GB != "" {
			t.Fatalf("expected games back to be left for presentation, got %q", r.GB)
		}
	}
}

func TestStandingsLeagueTableGamesBack(t *testing.T) {
	table := Standings(2024, decodeStandings(t)).Table(standings.ViewLeague)
	if len(table.Groups) != 2 || table.Groups[0].Name != "American League" {
		t.Fatalf("unexpected league groups %+v", table.Groups)
	}
	rows := table.Groups[0].Rows
	if rows[0].GB != "—" || rows[1].GB != "2.0" {
		t.Fatalf("expected — and 2.0, got %q and %q", rows[0].GB, rows[1].GB)
	}
}

func TestStandingsIsIdempotent(t *testing.T) {
	payload := decodeStandings(t)
	if !reflect.DeepEqual(Standings(2024, payload), Standings(2024, payload)) {
		t.Fatalf("expected repeated normalization to be equal")
	}
}

func TestStandingsNilPayload(t *testing.T) {
	got := Standings(2024, nil)
	if got.All == nil || len(got.All) != 0 || got.Season != 2024 {
		t.Fatalf("expected empty standings, got %+v", got)
	}
}
