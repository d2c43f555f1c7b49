package teams

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"mlb-scoreboard-service/internal/providers"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/teststubs"
	"mlb-scoreboard-service/internal/testutil"
)

const teamID = 147

func entry(id int, name, pos string) statsapi.RosterEntry {
	return statsapi.RosterEntry{
		Person:   statsapi.PersonRef{ID: id, FullName: name},
		Position: statsapi.Position{Abbreviation: pos},
	}
}

func newStub() *teststubs.StubStatsAPI {
	feed := testutil.SampleFeed("Final", 5, 3)
	feed.LiveData.Boxscore = &statsapi.Boxscore{Teams: statsapi.BoxscoreTeams{
		Away: statsapi.BoxscoreTeam{Players: map[string]statsapi.BoxscorePlayer{
			"ID2": {Person: statsapi.PersonRef{ID: 2}, BattingOrder: 100},
			"ID1": {Person: statsapi.PersonRef{ID: 1}, BattingOrder: 200},
		}},
	}}

	return &teststubs.StubStatsAPI{
		Teams: map[int]*statsapi.TeamsPayload{
			teamID: {Teams: []statsapi.TeamRef{testutil.SampleTeamRef(teamID, "New York Yankees", "NYY")}},
		},
		Rosters: map[int]*statsapi.RosterPayload{
			teamID: {Roster: []statsapi.RosterEntry{
				entry(1, "Catcher", "C"),
				entry(2, "Shortstop", "SS"),
				entry(3, "Starter", "P"),
			}},
		},
		People: &statsapi.PeoplePayload{People: []statsapi.Person{{
			ID: 3,
			Stats: []statsapi.StatGroup{{
				Group:  statsapi.DisplayName{DisplayName: "pitching"},
				Splits: []statsapi.StatSplit{{Stat: statsapi.SeasonStat{GamesStarted: 20}}},
			}},
		}}},
		TeamSchedules: map[int]*statsapi.SchedulePayload{
			teamID: testutil.SampleSchedule("2024-07-03", testutil.SampleScheduleGame(99, "Final")),
		},
		Feeds: map[int]*statsapi.LiveFeed{99: feed},
	}
}

func newService(stub *teststubs.StubStatsAPI) *Service {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC))
	return NewService(Config{Source: stub, Clock: clock})
}

func TestPageOrdersStartersByLineup(t *testing.T) {
	stub := newStub()
	page := newService(stub).Page(context.Background(), teamID)

	if page.Unavailable {
		t.Fatalf("expected available page, got %+v", page)
	}
	if page.Team.Name != "New York Yankees" || page.Team.Logo.Badge != "NYY" {
		t.Fatalf("unexpected header %+v", page.Team)
	}
	if len(page.Starters) != 2 || page.Starters[0].Name != "Shortstop" || page.Starters[0].Slot != 1 {
		t.Fatalf("expected lineup order, got %+v", page.Starters)
	}
	if len(page.StartingPitchers) != 1 {
		t.Fatalf("expected starting pitcher classification, got %+v", page)
	}
	if page.LineupDate != "Thu, Jul 4" {
		t.Fatalf("unexpected lineup date %q", page.LineupDate)
	}

	windows := stub.Windows()
	if len(windows) != 1 || windows[0][0] != "2024-06-24" || windows[0][1] != "2024-07-04" {
		t.Fatalf("expected 10-day lookback window, got %v", windows)
	}
}

func TestPageUnavailableOnRosterFailure(t *testing.T) {
	stub := newStub()
	stub.RosterErr = errors.New("boom")

	page := newService(stub).Page(context.Background(), teamID)
	if !page.Unavailable || page.Message != "Team page unavailable right now." {
		t.Fatalf("expected unavailable page, got %+v", page)
	}
	if page.Starters == nil {
		t.Fatalf("expected empty, non-nil groups")
	}
}

func TestPageToleratesStatsFailure(t *testing.T) {
	stub := newStub()
	stub.PeopleErr = errors.New("boom")

	page := newService(stub).Page(context.Background(), teamID)
	if page.Unavailable {
		t.Fatalf("expected page despite stats failure")
	}
	if len(page.Relievers) != 1 {
		t.Fatalf("expected pitcher without stats to be a reliever, got %+v", page)
	}
}

func TestPageToleratesLineupFailure(t *testing.T) {
	stub := newStub()
	stub.TeamScheduleErr = errors.New("boom")

	page := newService(stub).Page(context.Background(), teamID)
	if page.Unavailable || len(page.Starters) != 2 {
		t.Fatalf("expected unordered page, got %+v", page)
	}
	if page.Starters[0].Name != "Catcher" || page.LineupDate != "" {
		t.Fatalf("expected roster order without lineup, got %+v", page.Starters)
	}
}

func TestLineupWithoutFinalGame(t *testing.T) {
	stub := newStub()
	stub.TeamSchedules = nil

	_, err := newService(stub).Lineup(context.Background(), teamID)
	if !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLogoFallsBackWithoutMeta(t *testing.T) {
	stub := newStub()
	svc := newService(stub)

	logo := svc.Logo(context.Background(), teamID)
	if logo.Badge != "NYY" || len(logo.Candidates) != 4 {
		t.Fatalf("unexpected logo %+v", logo)
	}

	stub.TeamErr = errors.New("boom")
	fallback := svc.Logo(context.Background(), teamID)
	if fallback.Badge != "" || len(fallback.Candidates) != 4 {
		t.Fatalf("expected candidates without badge, got %+v", fallback)
	}
}
