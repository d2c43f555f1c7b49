package statsapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string or number into its textual form.
// Rate stats (avg, era, inningsPitched) arrive as either.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexInt decodes a JSON number or numeric string. Unparseable strings decode as 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(int(n))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(int(n))
	return nil
}

// Truthy records whether a loosely typed JSON value is set: true, a non-zero
// number, a non-empty string or any object.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = false
	case bytes.Equal(data, []byte("true")):
		*t = true
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Truthy(s != "")
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		*t = true
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Truthy(n != 0)
	}
	return nil
}

// NamedRef is any {id,name} reference (venue, division, league).
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PersonRef identifies a player.
type PersonRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// TeamRef is the team shape shared by schedule, feed and standings payloads.
type TeamRef struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	TeamName     string    `json:"teamName"`
	LocationName string    `json:"locationName"`
	Division     *NamedRef `json:"division"`
	League       *NamedRef `json:"league"`
	Venue        *NamedRef `json:"venue"`
}

// GameStatus mirrors the upstream status block.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// SchedulePayload is the day (or window) schedule response.
type SchedulePayload struct {
	Dates []ScheduleDate `json:"dates"`
}

type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

type ScheduleGame struct {
	GamePk   int           `json:"gamePk"`
	GameDate string        `json:"gameDate"`
	Status   GameStatus    `json:"status"`
	Venue    NamedRef      `json:"venue"`
	Teams    ScheduleTeams `json:"teams"`
}

type ScheduleTeams struct {
	Away ScheduleSide `json:"away"`
	Home ScheduleSide `json:"home"`
}

type ScheduleSide struct {
	Team            TeamRef    `json:"team"`
	Score           *int       `json:"score"`
	ProbablePitcher *PersonRef `json:"probablePitcher"`
}

// LiveFeed is the v1.1 live game feed.
type LiveFeed struct {
	GamePk   int      `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

type GameData struct {
	Status   GameStatus   `json:"status"`
	Teams    FeedTeams    `json:"teams"`
	Datetime FeedDatetime `json:"datetime"`
}

type FeedTeams struct {
	Away TeamRef `json:"away"`
	Home TeamRef `json:"home"`
}

type FeedDatetime struct {
	DateTime     string `json:"dateTime"`
	OriginalDate string `json:"originalDate"`
}

type LiveData struct {
	Linescore *Linescore `json:"linescore"`
	Boxscore  *Boxscore  `json:"boxscore"`
}

type Linescore struct {
	Innings []LinescoreInning `json:"innings"`
	Teams   LinescoreTeams    `json:"teams"`
}

type LinescoreInning struct {
	Num  int              `json:"num"`
	Away LinescoreTallies `json:"away"`
	Home LinescoreTallies `json:"home"`
}

type LinescoreTeams struct {
	Away LinescoreTallies `json:"away"`
	Home LinescoreTallies `json:"home"`
}

type LinescoreTallies struct {
	Runs *int `json:"runs"`
	Hits *int `json:"hits"`
}

type Boxscore struct {
	Teams BoxscoreTeams `json:"teams"`
}

type BoxscoreTeams struct {
	Away BoxscoreTeam `json:"away"`
	Home BoxscoreTeam `json:"home"`
}

type BoxscoreTeam struct {
	Team    TeamRef                   `json:"team"`
	Players map[string]BoxscorePlayer `json:"players"`
}

type BoxscorePlayer struct {
	Person       PersonRef   `json:"person"`
	Position     Position    `json:"position"`
	BattingOrder FlexInt     `json:"battingOrder"`
	Note         string      `json:"note"`
	Stats        PlayerStats `json:"stats"`
	SeasonStats  PlayerStats `json:"seasonStats"`
}

type Position struct {
	Code         string `json:"code"`
	Abbreviation string `json:"abbreviation"`
	Type         string `json:"type"`
}

type PlayerStats struct {
	Batting  *BattingStats  `json:"batting"`
	Pitching *PitchingStats `json:"pitching"`
}

type BattingStats struct {
	PlateAppearances FlexInt    `json:"plateAppearances"`
	AtBats           FlexInt    `json:"atBats"`
	Runs             FlexInt    `json:"runs"`
	Hits             FlexInt    `json:"hits"`
	RBI              FlexInt    `json:"rbi"`
	BaseOnBalls      FlexInt    `json:"baseOnBalls"`
	StrikeOuts       FlexInt    `json:"strikeOuts"`
	HomeRuns         FlexInt    `json:"homeRuns"`
	StolenBases      FlexInt    `json:"stolenBases"`
	Avg              FlexString `json:"avg"`
}

type PitchingStats struct {
	InningsPitched FlexString `json:"inningsPitched"`
	Hits           FlexInt    `json:"hits"`
	Runs           FlexInt    `json:"runs"`
	EarnedRuns     FlexInt    `json:"earnedRuns"`
	BaseOnBalls    FlexInt    `json:"baseOnBalls"`
	StrikeOuts     FlexInt    `json:"strikeOuts"`
	HomeRuns       FlexInt    `json:"homeRuns"`
	BattersFaced   FlexInt    `json:"battersFaced"`
	Era            FlexString `json:"era"`
	Note           string     `json:"note"`
	Decision       string     `json:"decision"`
	Save           Truthy     `json:"save"`
	Hold           Truthy     `json:"hold"`
}

// ContentPayload is the game content response with highlight buckets.
type ContentPayload struct {
	Highlights *ContentHighlights `json:"highlights"`
	Editorial  *ContentEditorial  `json:"editorial"`
}

type ContentHighlights struct {
	Highlights *ItemBucket `json:"highlights"`
	Live       *ItemBucket `json:"live"`
}

type ContentEditorial struct {
	Recap *EditorialRecap `json:"recap"`
}

type EditorialRecap struct {
	MLB *ItemBucket `json:"mlb"`
}

type ItemBucket struct {
	Items []ContentItem `json:"items"`
}

type ContentItem struct {
	Headline  string        `json:"headline"`
	Title     string        `json:"title"`
	Playbacks []Playback    `json:"playbacks"`
	Media     *ContentMedia `json:"media"`
}

type ContentMedia struct {
	Playbacks []Playback `json:"playbacks"`
}

type Playback struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StandingsPayload is the regular-season standings response.
type StandingsPayload struct {
	Records []StandingsRecord `json:"records"`
}

type StandingsRecord struct {
	Division    *NamedRef    `json:"division"`
	League      *NamedRef    `json:"league"`
	TeamRecords []TeamRecord `json:"teamRecords"`
}

type TeamRecord struct {
	Team              TeamRef    `json:"team"`
	Wins              FlexInt    `json:"wins"`
	Losses            FlexInt    `json:"losses"`
	WinningPercentage FlexString `json:"winningPercentage"`
	GamesBack         FlexString `json:"gamesBack"`
	RunsScored        FlexInt    `json:"runsScored"`
	RunsAllowed       FlexInt    `json:"runsAllowed"`
}

// TeamsPayload is the team metadata response.
type TeamsPayload struct {
	Teams []TeamRef `json:"teams"`
}

// RosterPayload is the active roster response.
type RosterPayload struct {
	Roster []RosterEntry `json:"roster"`
}

type RosterEntry struct {
	Person       PersonRef `json:"person"`
	JerseyNumber string    `json:"jerseyNumber"`
	Position     Position  `json:"position"`
}

// PeoplePayload is the bulk people-with-stats response.
type PeoplePayload struct {
	People []Person `json:"people"`
}

type Person struct {
	ID       int         `json:"id"`
	FullName string      `json:"fullName"`
	Stats    []StatGroup `json:"stats"`
}

type StatGroup struct {
	Group  DisplayName `json:"group"`
	Splits []StatSplit `json:"splits"`
}

type DisplayName struct {
	DisplayName string `json:"displayName"`
}

type StatSplit struct {
	Stat SeasonStat `json:"stat"`
}

// SeasonStat holds the union of hitting and pitching season fields.
type SeasonStat struct {
	GamesPlayed    FlexInt    `json:"gamesPlayed"`
	Games          FlexInt    `json:"games"`
	AtBats         FlexInt    `json:"atBats"`
	Runs           FlexInt    `json:"runs"`
	Hits           FlexInt    `json:"hits"`
	HomeRuns       FlexInt    `json:"homeRuns"`
	RBI            FlexInt    `json:"rbi"`
	StolenBases    FlexInt    `json:"stolenBases"`
	Avg            FlexString `json:"avg"`
	OPS            FlexString `json:"ops"`
	GamesStarted   FlexInt    `json:"gamesStarted"`
	GamesFinished  FlexInt    `json:"gamesFinished"`
	Saves          FlexInt    `json:"saves"`
	InningsPitched FlexString `json:"inningsPitched"`
	EarnedRuns     FlexInt    `json:"earnedRuns"`
	BaseOnBalls    FlexInt    `json:"baseOnBalls"`
	StrikeOuts     FlexInt    `json:"strikeOuts"`
	Era            FlexString `json:"era"`
}
