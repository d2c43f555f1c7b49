package statsapi

import (
	"context"
	"fmt"

	"mlb-scoreboard-service/internal/providers"
)

// Client fetches raw stats API payloads through a Fetcher.
type Client struct {
	fetcher providers.Fetcher
	urls    URLs
}

// NewClient constructs a Client against the given base URL.
func NewClient(fetcher providers.Fetcher, baseURL string) *Client {
	return &Client{fetcher: fetcher, urls: NewURLs(baseURL)}
}

// URLs exposes the builder so callers can render image and logo links.
func (c *Client) URLs() URLs {
	return c.urls
}

// Schedule returns the day schedule for a YYYY-MM-DD date.
func (c *Client) Schedule(ctx context.Context, date string) (*SchedulePayload, error) {
	var payload SchedulePayload
	if err := c.fetcher.FetchJSON(ctx, EndpointSchedule, c.urls.Schedule(date), &payload); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", date, err)
	}
	return &payload, nil
}

// TeamSchedule returns one team's games between two inclusive dates.
func (c *Client) TeamSchedule(ctx context.Context, teamID int, startDate, endDate string) (*SchedulePayload, error) {
	var payload SchedulePayload
	if err := c.fetcher.FetchJSON(ctx, EndpointTeamSchedule, c.urls.TeamSchedule(teamID, startDate, endDate), &payload); err != nil {
		return nil, fmt.Errorf("team %d schedule: %w", teamID, err)
	}
	return &payload, nil
}

// LiveFeed returns the live feed (status, linescore, boxscore) for a game.
func (c *Client) LiveFeed(ctx context.Context, gamePk int) (*LiveFeed, error) {
	var payload LiveFeed
	if err := c.fetcher.FetchJSON(ctx, EndpointLiveFeed, c.urls.LiveFeed(gamePk), &payload); err != nil {
		return nil, fmt.Errorf("game %d feed: %w", gamePk, err)
	}
	return &payload, nil
}

// Content returns the highlight and editorial content for a game.
func (c *Client) Content(ctx context.Context, gamePk int) (*ContentPayload, error) {
	var payload ContentPayload
	if err := c.fetcher.FetchJSON(ctx, EndpointContent, c.urls.Content(gamePk), &payload); err != nil {
		return nil, fmt.Errorf("game %d content: %w", gamePk, err)
	}
	return &payload, nil
}

// Standings returns regular-season records for both leagues.
func (c *Client) Standings(ctx context.Context, season int) (*StandingsPayload, error) {
	var payload StandingsPayload
	if err := c.fetcher.FetchJSON(ctx, EndpointStandings, c.urls.Standings(season), &payload); err != nil {
		return nil, fmt.Errorf("standings %d: %w", season, err)
	}
	return &payload, nil
}

// Team returns team metadata.
func (c *Client) Team(ctx context.Context, teamID int) (*TeamsPayload, error) {
	var payload TeamsPayload
	if err := c.fetcher.FetchJSON(ctx, EndpointTeam, c.urls.Team(teamID), &payload); err != nil {
		return nil, fmt.Errorf("team %d: %w", teamID, err)
	}
	return &payload, nil
}

// ActiveRoster returns the active roster for a team.
func (c *Client) ActiveRoster(ctx context.Context, teamID int) (*RosterPayload, error) {
	var payload RosterPayload
	if err := c.fetcher.FetchJSON(ctx, EndpointRoster, c.urls.ActiveRoster(teamID), &payload); err != nil {
		return nil, fmt.Errorf("team %d roster: %w", teamID, err)
	}
	return &payload, nil
}

// PeopleStats returns season hitting and pitching splits for the given players.
// An empty id list returns an empty payload without a request.
func (c *Client) PeopleStats(ctx context.Context, ids []int, season int) (*PeoplePayload, error) {
	if len(ids) == 0 {
		return &PeoplePayload{}, nil
	}
	var payload PeoplePayload
	if err := c.fetcher.FetchJSON(ctx, EndpointPeople, c.urls.PeopleStats(ids, season), &payload); err != nil {
		return nil, fmt.Errorf("people stats: %w", err)
	}
	return &payload, nil
}
