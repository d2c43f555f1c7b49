package normalize

import (
	"sort"

	"mlb-scoreboard-service/internal/domain/boxscore"
	"mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/domain/media"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

const defaultPlayerName = "Player"

// BattingAppeared reports whether a batting line shows the player took part.
func BattingAppeared(b *statsapi.BattingStats) bool {
	if b == nil {
		return false
	}
	if b.PlateAppearances > 0 {
		return true
	}
	for _, v := range []statsapi.FlexInt{b.AtBats, b.Runs, b.Hits, b.RBI, b.BaseOnBalls, b.StrikeOuts, b.HomeRuns, b.StolenBases} {
		if v > 0 {
			return true
		}
	}
	return false
}

// PitchingAppeared reports whether a pitching line shows the player took part.
func PitchingAppeared(p *statsapi.PitchingStats) bool {
	if p == nil {
		return false
	}
	if ip := p.InningsPitched.String(); ip != "" && ip != "0" && ip != "0.0" {
		return true
	}
	for _, v := range []statsapi.FlexInt{p.Hits, p.Runs, p.EarnedRuns, p.BaseOnBalls, p.StrikeOuts, p.HomeRuns, p.BattersFaced} {
		if v > 0 {
			return true
		}
	}
	return p.Decision != "" || bool(p.Save) || bool(p.Hold)
}

// PlayersFromBox builds batting and pitching rows for players who appeared.
// Batters with a batting order come first by that order; everything else is
// ordered by the upstream player key.
func PlayersFromBox(players map[string]statsapi.BoxscorePlayer) ([]boxscore.BattingRow, []boxscore.PitchingRow) {
	keys := make([]string, 0, len(players))
	for k := range players {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batting := []boxscore.BattingRow{}
	pitching := []boxscore.PitchingRow{}
	for _, key := range keys {
		p := players[key]
		name := p.Person.FullName
		if name == "" {
			name = defaultPlayerName
		}
		headshot := statsapi.HeadshotURL(p.Person.ID)

		if bat := p.Stats.Batting; BattingAppeared(bat) {
			batting = append(batting, boxscore.BattingRow{
				PlayerID: p.Person.ID,
				Name:     name,
				Position: p.Position.Abbreviation,
				Headshot: headshot,
				Order:    int(p.BattingOrder),
				Stats: boxscore.BattingLine{
					AB:  int(bat.AtBats),
					R:   int(bat.Runs),
					H:   int(bat.Hits),
					RBI: int(bat.RBI),
					BB:  int(bat.BaseOnBalls),
					SO:  int(bat.StrikeOuts),
					HR:  int(bat.HomeRuns),
					AVG: BattingAverage(bat, p.SeasonStats.Batting),
				},
			})
		}

		if pit := p.Stats.Pitching; PitchingAppeared(pit) {
			pitching = append(pitching, boxscore.PitchingRow{
				PlayerID: p.Person.ID,
				Name:     name,
				Note:     pitchingNote(p),
				Headshot: headshot,
				Stats: boxscore.PitchingLine{
					IP:  pit.InningsPitched.String(),
					H:   int(pit.Hits),
					R:   int(pit.Runs),
					ER:  int(pit.EarnedRuns),
					BB:  int(pit.BaseOnBalls),
					SO:  int(pit.StrikeOuts),
					HR:  int(pit.HomeRuns),
					ERA: EarnedRunAverage(pit, p.SeasonStats.Pitching),
				},
			})
		}
	}

	sort.SliceStable(batting, func(i, j int) bool {
		oi, oj := batting[i].Order, batting[j].Order
		if (oi > 0) != (oj > 0) {
			return oi > 0
		}
		return oi < oj
	})
	return batting, pitching
}

func pitchingNote(p statsapi.BoxscorePlayer) string {
	switch {
	case p.Note != "":
		return p.Note
	case p.Stats.Pitching.Note != "":
		return p.Stats.Pitching.Note
	default:
		return p.Stats.Pitching.Decision
	}
}

// BoxScore assembles the overlay view for a game from its live feed and
// content. Highlights are attached only for final games with a recap.
func BoxScore(game games.Game, feed *statsapi.LiveFeed, content *statsapi.ContentPayload) boxscore.BoxScore {
	if feed == nil {
		return boxscore.Unavailable(game.GamePk, game.Matchup())
	}

	statusText := StatusText(feed.GameData.Status)
	out := boxscore.BoxScore{
		GamePk:    game.GamePk,
		Title:     game.Matchup(),
		Status:    statusText,
		Linescore: Linescore(feed.LiveData.Linescore),
		Away:      boxscore.TeamBox{Name: game.Away.Name, Batting: []boxscore.BattingRow{}, Pitching: []boxscore.PitchingRow{}},
		Home:      boxscore.TeamBox{Name: game.Home.Name, Batting: []boxscore.BattingRow{}, Pitching: []boxscore.PitchingRow{}},
	}

	if box := feed.LiveData.Boxscore; box != nil {
		out.Away.Batting, out.Away.Pitching = PlayersFromBox(box.Teams.Away.Players)
		out.Home.Batting, out.Home.Pitching = PlayersFromBox(box.Teams.Home.Players)
	}

	out.Highlights = GatedRecap(statusText, content)
	return out
}

// GatedRecap returns the recap only when statusText marks the game final.
func GatedRecap(statusText string, content *statsapi.ContentPayload) *media.Recap {
	if !IsFinalText(statusText) {
		return nil
	}
	recap, ok := FindRecap(content)
	if !ok {
		return nil
	}
	return &recap
}

// GameFromFeed derives the minimal game reference a box score needs when only
// the feed is at hand.
func GameFromFeed(gamePk int, feed *statsapi.LiveFeed) games.Game {
	g := games.Game{GamePk: gamePk}
	if feed != nil {
		g.Away = teamRef(feed.GameData.Teams.Away)
		g.Home = teamRef(feed.GameData.Teams.Home)
		g.Status = Status(feed.GameData.Status)
		g.StatusLabel = g.Status.Label()
	}
	return g
}
