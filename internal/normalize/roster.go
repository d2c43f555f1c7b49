package normalize

import (
	"sort"
	"strings"

	"mlb-scoreboard-service/internal/domain/teams"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const pitcherPosition = "P"

// StarterPositions are filled by one hitter each, in this order.
var StarterPositions = []string{"C", "1B", "2B", "3B", "SS", "LF", "CF", "RF", "DH"}

const (
	closerSaves         = 15
	closerGamesFinished = 35
	starterGamesStarted = 8
	absentSlotRank      = 999
)

// RosterPlayer is one roster entry joined with its season splits.
type RosterPlayer struct {
	ID       int
	Name     string
	Position string
	Hitting  statsapi.SeasonStat
	Pitching statsapi.SeasonStat
}

// SeasonSplits holds a player's first hitting and pitching splits.
type SeasonSplits struct {
	Hitting  statsapi.SeasonStat
	Pitching statsapi.SeasonStat
}

// RosterPlayers maps roster entries, dropping any without an id. Position is
// the abbreviation, else the code.
func RosterPlayers(roster *statsapi.RosterPayload, splits map[int]SeasonSplits) []RosterPlayer {
	if roster == nil {
		return nil
	}
	out := make([]RosterPlayer, 0, len(roster.Roster))
	for _, entry := range roster.Roster {
		if entry.Person.ID == 0 {
			continue
		}
		pos := entry.Position.Abbreviation
		if pos == "" {
			pos = entry.Position.Code
		}
		s := splits[entry.Person.ID]
		out = append(out, RosterPlayer{
			ID:       entry.Person.ID,
			Name:     entry.Person.FullName,
			Position: pos,
			Hitting:  s.Hitting,
			Pitching: s.Pitching,
		})
	}
	return out
}

// RosterIDs lists the ids of roster entries that have one, in roster order.
func RosterIDs(roster *statsapi.RosterPayload) []int {
	if roster == nil {
		return nil
	}
	ids := make([]int, 0, len(roster.Roster))
	for _, entry := range roster.Roster {
		if entry.Person.ID != 0 {
			ids = append(ids, entry.Person.ID)
		}
	}
	return ids
}

// SplitsByPlayer indexes season splits by player id, matching stat groups by
// display name.
func SplitsByPlayer(people *statsapi.PeoplePayload) map[int]SeasonSplits {
	out := map[int]SeasonSplits{}
	if people == nil {
		return out
	}
	for _, person := range people.People {
		var s SeasonSplits
		for _, group := range person.Stats {
			if len(group.Splits) == 0 {
				continue
			}
			switch strings.ToLower(group.Group.DisplayName) {
			case "hitting":
				s.Hitting = group.Splits[0].Stat
			case "pitching":
				s.Pitching = group.Splits[0].Stat
			}
		}
		out[person.ID] = s
	}
	return out
}

// Roster is the partitioned team roster.
type Roster struct {
	Starters         []teams.Hitter
	Bench            []teams.Hitter
	StartingPitchers []teams.Pitcher
	Relievers        []teams.Pitcher
	Closers          []teams.Pitcher
}

// PartitionRoster splits players into hitters and pitchers by position "P",
// picks the most-used hitter at each starter position and classifies pitchers.
func PartitionRoster(players []RosterPlayer) Roster {
	out := Roster{
		Starters:         []teams.Hitter{},
		Bench:            []teams.Hitter{},
		StartingPitchers: []teams.Pitcher{},
		Relievers:        []teams.Pitcher{},
		Closers:          []teams.Pitcher{},
	}

	var hitters []teams.Hitter
	for _, p := range players {
		if p.Position == pitcherPosition {
			pitcher := pitcherFrom(p)
			switch pitcher.Role {
			case teams.RoleCloser:
				out.Closers = append(out.Closers, pitcher)
			case teams.RoleStarter:
				out.StartingPitchers = append(out.StartingPitchers, pitcher)
			default:
				out.Relievers = append(out.Relievers, pitcher)
			}
			continue
		}
		hitters = append(hitters, hitterFrom(p))
	}

	known := make(map[string]bool, len(StarterPositions))
	for _, pos := range StarterPositions {
		known[pos] = true
		var atPos []teams.Hitter
		for _, h := range hitters {
			if h.Position == pos {
				atPos = append(atPos, h)
			}
		}
		if len(atPos) == 0 {
			continue
		}
		sort.SliceStable(atPos, func(i, j int) bool {
			return atPos[i].Stats.G > atPos[j].Stats.G
		})
		out.Starters = append(out.Starters, atPos[0])
		out.Bench = append(out.Bench, atPos[1:]...)
	}
	for _, h := range hitters {
		if !known[h.Position] {
			out.Bench = append(out.Bench, h)
		}
	}
	return out
}

// ClassifyPitcher applies closer, then starter, then reliever thresholds.
func ClassifyPitcher(saves, gamesFinished, gamesStarted int) teams.PitcherRole {
	switch {
	case saves >= closerSaves || gamesFinished >= closerGamesFinished:
		return teams.RoleCloser
	case gamesStarted >= starterGamesStarted:
		return teams.RoleStarter
	default:
		return teams.RoleReliever
	}
}

// OrderStarters stable-sorts starters by lineup slot; players missing from the
// lineup go last. An empty lineup leaves the order unchanged.
func OrderStarters(starters []teams.Hitter, lineup teams.Lineup) []teams.Hitter {
	out := make([]teams.Hitter, len(starters))
	copy(out, starters)
	if len(lineup.Slots) == 0 {
		return out
	}
	for i := range out {
		out[i].Slot = lineup.Slots[out[i].ID]
	}
	rank := func(h teams.Hitter) int {
		if slot, ok := lineup.Slots[h.ID]; ok {
			return slot
		}
		return absentSlotRank
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// TeamHeader maps team metadata into the page header with logo candidates.
func TeamHeader(teamID int, meta *statsapi.TeamsPayload) teams.Team {
	t := teams.Team{ID: teamID}
	if meta != nil && len(meta.Teams) > 0 {
		raw := meta.Teams[0]
		t.Name = raw.Name
		t.Abbreviation = raw.Abbreviation
		if raw.ID != 0 {
			t.ID = raw.ID
		}
	}
	if t.Name == "" {
		t.Name = "Team"
	}
	t.Logo = Logo(t.ID, t.Abbreviation)
	return t
}

// Logo returns the image candidates and text badge for a team.
func Logo(teamID int, abbreviation string) teams.Logo {
	return teams.Logo{
		Candidates: statsapi.LogoURLs(teamID),
		Badge:      teams.Badge(abbreviation),
	}
}

// TeamPage assembles the full page from its parts.
func TeamPage(header teams.Team, players []RosterPlayer, lineup teams.Lineup) teams.Page {
	roster := PartitionRoster(players)
	return teams.Page{
		Team:             header,
		Starters:         OrderStarters(roster.Starters, lineup),
		Bench:            roster.Bench,
		StartingPitchers: roster.StartingPitchers,
		Relievers:        roster.Relievers,
		Closers:          roster.Closers,
		LineupDate:       lineup.DateLabel,
	}
}

func hitterFrom(p RosterPlayer) teams.Hitter {
	s := p.Hitting
	return teams.Hitter{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Headshot: statsapi.HeadshotURL(p.ID),
		Stats: teams.HittingStats{
			G:   gamesOf(s),
			AB:  int(s.AtBats),
			R:   int(s.Runs),
			H:   int(s.Hits),
			HR:  int(s.HomeRuns),
			AVG: FormatAverage(s.Avg.String()),
		},
	}
}

func pitcherFrom(p RosterPlayer) teams.Pitcher {
	s := p.Pitching
	return teams.Pitcher{
		ID:       p.ID,
		Name:     p.Name,
		Headshot: statsapi.HeadshotURL(p.ID),
		Role:     ClassifyPitcher(int(s.Saves), int(s.GamesFinished), int(s.GamesStarted)),
		Stats: teams.PitchingStats{
			G:   gamesOf(s),
			GS:  int(s.GamesStarted),
			GF:  int(s.GamesFinished),
			IP:  s.InningsPitched.String(),
			H:   int(s.Hits),
			ER:  int(s.EarnedRuns),
			BB:  int(s.BaseOnBalls),
			SO:  int(s.StrikeOuts),
			SV:  int(s.Saves),
			ERA: s.Era.String(),
		},
	}
}

// gamesOf prefers "games" and falls back to "gamesPlayed".
func gamesOf(s statsapi.SeasonStat) int {
	if s.Games > 0 {
		return int(s.Games)
	}
	return int(s.GamesPlayed)
}
