package testutil

import (
	"mlb-scoreboard-service/internal/providers/statsapi"
)

func intPtr(v int) *int { return &v }

// SampleTeamRef returns an upstream team reference.
func SampleTeamRef(id int, name, abbr string) statsapi.TeamRef {
	return statsapi.TeamRef{ID: id, Name: name, Abbreviation: abbr}
}

// SampleScheduleGame returns a schedule entry between NYY (away) and BOS (home).
func SampleScheduleGame(gamePk int, detailed string) statsapi.ScheduleGame {
	return statsapi.ScheduleGame{
		GamePk:   gamePk,
		GameDate: "2024-07-04T17:05:00Z",
		Status:   statsapi.GameStatus{AbstractGameState: "Live", DetailedState: detailed},
		Venue:    statsapi.NamedRef{Name: "Fenway Park"},
		Teams: statsapi.ScheduleTeams{
			Away: statsapi.ScheduleSide{Team: SampleTeamRef(147, "New York Yankees", "NYY")},
			Home: statsapi.ScheduleSide{Team: SampleTeamRef(111, "Boston Red Sox", "BOS")},
		},
	}
}

// SampleSchedule wraps games into a single-date schedule payload.
func SampleSchedule(date string, games ...statsapi.ScheduleGame) *statsapi.SchedulePayload {
	return &statsapi.SchedulePayload{Dates: []statsapi.ScheduleDate{{Date: date, Games: games}}}
}

// SampleFeed returns a live feed with a first-inning linescore and final runs.
func SampleFeed(detailed string, awayRuns, homeRuns int) *statsapi.LiveFeed {
	return &statsapi.LiveFeed{
		GameData: statsapi.GameData{
			Status: statsapi.GameStatus{AbstractGameState: "Live", DetailedState: detailed},
			Teams: statsapi.FeedTeams{
				Away: SampleTeamRef(147, "New York Yankees", "NYY"),
				Home: SampleTeamRef(111, "Boston Red Sox", "BOS"),
			},
			Datetime: statsapi.FeedDatetime{DateTime: "2024-07-04T17:05:00Z", OriginalDate: "2024-07-04"},
		},
		LiveData: statsapi.LiveData{
			Linescore: &statsapi.Linescore{
				Innings: []statsapi.LinescoreInning{{
					Num:  1,
					Away: statsapi.LinescoreTallies{Runs: intPtr(awayRuns)},
					Home: statsapi.LinescoreTallies{Runs: intPtr(homeRuns)},
				}},
				Teams: statsapi.LinescoreTeams{
					Away: statsapi.LinescoreTallies{Runs: intPtr(awayRuns)},
					Home: statsapi.LinescoreTallies{Runs: intPtr(homeRuns)},
				},
			},
		},
	}
}

// SampleRecapContent returns content with a single recap carrying a 720p playback.
func SampleRecapContent(title string) *statsapi.ContentPayload {
	return &statsapi.ContentPayload{
		Highlights: &statsapi.ContentHighlights{
			Highlights: &statsapi.ItemBucket{Items: []statsapi.ContentItem{{
				Headline: title,
				Playbacks: []statsapi.Playback{
					{Name: "HTTP_CLOUD_WIRED_720", URL: "https://cdn.example/recap.mp4"},
				},
			}}},
		},
	}
}
