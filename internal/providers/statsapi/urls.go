package statsapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URLs builds upstream resource locations against a base host.
type URLs struct {
	base string
}

// NewURLs returns a URL builder; an empty base selects the public stats API.
func NewURLs(base string) URLs {
	return URLs{base: normalizeBaseURL(base)}
}

func (u URLs) Schedule(date string) string {
	return fmt.Sprintf("%s/api/v1/schedule?sportId=%d&date=%s", u.base, sportID, url.QueryEscape(date))
}

func (u URLs) TeamSchedule(teamID int, startDate, endDate string) string {
	return fmt.Sprintf("%s/api/v1/schedule?sportId=%d&teamId=%d&startDate=%s&endDate=%s",
		u.base, sportID, teamID, url.QueryEscape(startDate), url.QueryEscape(endDate))
}

func (u URLs) LiveFeed(gamePk int) string {
	return fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", u.base, gamePk)
}

func (u URLs) Content(gamePk int) string {
	return fmt.Sprintf("%s/api/v1/game/%d/content", u.base, gamePk)
}

func (u URLs) Standings(season int) string {
	return fmt.Sprintf("%s/api/v1/standings?leagueId=%d,%d&season=%d&standingsTypes=regularSeason&hydrate=team(division,league)",
		u.base, americanLeagueID, nationalLeagueID, season)
}

func (u URLs) Team(teamID int) string {
	return fmt.Sprintf("%s/api/v1/teams/%d", u.base, teamID)
}

func (u URLs) ActiveRoster(teamID int) string {
	return fmt.Sprintf("%s/api/v1/teams/%d/roster?rosterType=active", u.base, teamID)
}

func (u URLs) PeopleStats(ids []int, season int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s/api/v1/people?personIds=%s&hydrate=stats(group=[hitting,pitching],type=[season],season=%d)",
		u.base, strings.Join(parts, ","), season)
}

// HeadshotURL returns the player headshot image, or "" without an id.
func HeadshotURL(personID int) string {
	if personID <= 0 {
		return ""
	}
	return fmt.Sprintf(headshotTemplate, personID)
}

// LogoURLs returns the team logo candidates in the order a client should try them.
func LogoURLs(teamID int) []string {
	out := make([]string, 0, len(logoVariants))
	for _, variant := range logoVariants {
		out = append(out, fmt.Sprintf("%s%s%d.svg", logoBase, variant, teamID))
	}
	return out
}
