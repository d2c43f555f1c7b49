package viewstate

import (
	"strconv"
	"strings"
)

// View names a top-level destination.
type View string

const (
	ViewScores    View = "scores"
	ViewStandings View = "standings"
	ViewTeam      View = "team"
)

// Route is a resolved hash location.
type Route struct {
	View   View `json:"view"`
	TeamID int  `json:"teamId,omitempty"`
}

// Hash renders the route back to its canonical hash.
func (r Route) Hash() string {
	switch r.View {
	case ViewStandings:
		return "#/standings"
	case ViewTeam:
		return "#/team/" + strconv.Itoa(r.TeamID)
	default:
		return "#/scores"
	}
}

// ResolveRoute maps a location hash to a Route. Anything unrecognized,
// including a team path without a positive numeric id, resolves to scores.
func ResolveRoute(hash string) Route {
	path := strings.TrimPrefix(strings.TrimSpace(hash), "#")
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")

	switch View(parts[0]) {
	case ViewStandings:
		return Route{View: ViewStandings}
	case ViewTeam:
		if len(parts) == 2 {
			if id, err := strconv.Atoi(parts[1]); err == nil && id > 0 {
				return Route{View: ViewTeam, TeamID: id}
			}
		}
	}
	return Route{View: ViewScores}
}
