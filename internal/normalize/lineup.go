package normalize

import (
	"time"

	"mlb-scoreboard-service/internal/domain/teams"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/timeutil"
)

// LatestFinalGame returns the last final game in schedule order.
func LatestFinalGame(schedule *statsapi.SchedulePayload) (int, bool) {
	if schedule == nil {
		return 0, false
	}
	latest := 0
	for _, d := range schedule.Dates {
		for _, g := range d.Games {
			if IsFinalText(g.Status.DetailedState) && g.GamePk != 0 {
				latest = g.GamePk
			}
		}
	}
	return latest, latest != 0
}

// LineupFromFeed extracts batting order slots for the team's side of a game.
// The side is home when the home team id matches, otherwise away.
func LineupFromFeed(feed *statsapi.LiveFeed, teamID int) (teams.Lineup, bool) {
	if feed == nil || feed.LiveData.Boxscore == nil {
		return teams.Lineup{}, false
	}
	side := feed.LiveData.Boxscore.Teams.Away
	if feed.GameData.Teams.Home.ID == teamID {
		side = feed.LiveData.Boxscore.Teams.Home
	}

	slots := map[int]int{}
	for _, p := range side.Players {
		order := int(p.BattingOrder)
		if p.Person.ID != 0 && order != 0 {
			slots[p.Person.ID] = order / 100
		}
	}
	return teams.Lineup{
		Slots:     slots,
		DateLabel: lineupDateLabel(feed.GameData.Datetime),
	}, true
}

func lineupDateLabel(dt statsapi.FeedDatetime) string {
	if dt.OriginalDate != "" {
		if label := timeutil.DateKeyLabel(dt.OriginalDate); label != "" {
			return label
		}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return timeutil.DayLabel(t)
		}
	}
	return ""
}
