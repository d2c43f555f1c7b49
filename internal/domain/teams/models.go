package teams

import "strings"

// UnavailableMessage is shown when team meta or roster cannot be loaded.
const UnavailableMessage = "Team page unavailable right now."

// Logo lists image candidates to try in order and the text badge used when all fail.
type Logo struct {
	Candidates []string `json:"candidates"`
	Badge      string   `json:"badge"`
}

// Badge is the first three letters of the abbreviation, upper-cased.
func Badge(abbreviation string) string {
	runes := []rune(abbreviation)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Team is the header of a team page.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Logo         Logo   `json:"logo"`
}

// HittingStats is a hitter's season split.
type HittingStats struct {
	G   int    `json:"g"`
	AB  int    `json:"ab"`
	R   int    `json:"r"`
	H   int    `json:"h"`
	HR  int    `json:"hr"`
	AVG string `json:"avg"`
}

// PitchingStats is a pitcher's season split.
type PitchingStats struct {
	G   int    `json:"g"`
	GS  int    `json:"gs"`
	GF  int    `json:"gf"`
	IP  string `json:"ip"`
	H   int    `json:"h"`
	ER  int    `json:"er"`
	BB  int    `json:"bb"`
	SO  int    `json:"so"`
	SV  int    `json:"sv"`
	ERA string `json:"era"`
}

// Hitter is a non-pitcher roster entry.
type Hitter struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Position string       `json:"position"`
	Headshot string       `json:"headshot"`
	Slot     int          `json:"slot,omitempty"`
	Stats    HittingStats `json:"stats"`
}

// PitcherRole is the bullpen classification.
type PitcherRole string

const (
	RoleStarter  PitcherRole = "starter"
	RoleReliever PitcherRole = "reliever"
	RoleCloser   PitcherRole = "closer"
)

// Pitcher is a roster entry with position "P".
type Pitcher struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Headshot string        `json:"headshot"`
	Role     PitcherRole   `json:"role"`
	Stats    PitchingStats `json:"stats"`
}

// Lineup maps player ids to batting order slots from one recent game.
type Lineup struct {
	Slots     map[int]int `json:"slots"`
	DateLabel string      `json:"dateLabel"`
}

// Page is the payload returned by /api/teams/{teamId}.
type Page struct {
	Team             Team      `json:"team"`
	Starters         []Hitter  `json:"starters"`
	Bench            []Hitter  `json:"bench"`
	StartingPitchers []Pitcher `json:"startingPitchers"`
	Relievers        []Pitcher `json:"relievers"`
	Closers          []Pitcher `json:"closers"`
	LineupDate       string    `json:"lineupDate,omitempty"`
	Unavailable      bool      `json:"unavailable,omitempty"`
	Message          string    `json:"message,omitempty"`
}

// UnavailablePage returns the degraded team page.
func UnavailablePage(teamID int) Page {
	return Page{
		Team:             Team{ID: teamID},
		Starters:         []Hitter{},
		Bench:            []Hitter{},
		StartingPitchers: []Pitcher{},
		Relievers:        []Pitcher{},
		Closers:          []Pitcher{},
		Unavailable:      true,
		Message:          UnavailableMessage,
	}
}
