package statsapi

import "time"

const (
	defaultBaseURL     = "https://statsapi.mlb.com"
	defaultHTTPTimeout = 12 * time.Second
	sportID            = 1
	americanLeagueID   = 103
	nationalLeagueID   = 104

	headshotTemplate = "https://img.mlbstatic.com/mlb-photos/image/upload/w_56,q_auto:best/v1/people/%d/headshot/67/current"
	logoBase         = "https://www.mlbstatic.com/team-logos/"
)

// LineupLookbackDays is how many trailing days are searched for a completed game.
const LineupLookbackDays = 10

// Endpoint names label logs and metrics per upstream resource.
const (
	EndpointSchedule     = "schedule"
	EndpointTeamSchedule = "team_schedule"
	EndpointLiveFeed     = "live_feed"
	EndpointContent      = "content"
	EndpointStandings    = "standings"
	EndpointTeam         = "team"
	EndpointRoster       = "roster"
	EndpointPeople       = "people_stats"
)

// logoVariants are tried in order before falling back to a text badge.
var logoVariants = []string{
	"",
	"team-primary-on-light/",
	"team-primary-on-dark/",
	"team-cap-on-light/",
}
