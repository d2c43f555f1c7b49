package boxscore

import (
	"mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/domain/media"
)

// UnavailableMessage is shown when the live feed cannot be loaded.
const UnavailableMessage = "Live data unavailable right now."

// BattingLine holds one batter's game counting stats and average.
type BattingLine struct {
	AB  int    `json:"ab"`
	R   int    `json:"r"`
	H   int    `json:"h"`
	RBI int    `json:"rbi"`
	BB  int    `json:"bb"`
	SO  int    `json:"so"`
	HR  int    `json:"hr"`
	AVG string `json:"avg"`
}

// BattingRow is one batter who appeared in the game.
type BattingRow struct {
	PlayerID int         `json:"playerId,omitempty"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Headshot string      `json:"headshot,omitempty"`
	Order    int         `json:"battingOrder,omitempty"`
	Stats    BattingLine `json:"stats"`
}

// PitchingLine holds one pitcher's game line and ERA.
type PitchingLine struct {
	IP  string `json:"ip"`
	H   int    `json:"h"`
	R   int    `json:"r"`
	ER  int    `json:"er"`
	BB  int    `json:"bb"`
	SO  int    `json:"so"`
	HR  int    `json:"hr"`
	ERA string `json:"era"`
}

// PitchingRow is one pitcher who appeared in the game.
type PitchingRow struct {
	PlayerID int          `json:"playerId,omitempty"`
	Name     string       `json:"name"`
	Note     string       `json:"note"`
	Headshot string       `json:"headshot,omitempty"`
	Stats    PitchingLine `json:"stats"`
}

// TeamBox groups one side's batting and pitching rows.
type TeamBox struct {
	Name     string        `json:"name"`
	Batting  []BattingRow  `json:"batting"`
	Pitching []PitchingRow `json:"pitching"`
}

// BoxScore is the overlay view model for a single game.
type BoxScore struct {
	GamePk      int              `json:"gamePk"`
	Title       string           `json:"title"`
	Status      string           `json:"status,omitempty"`
	Linescore   *games.Linescore `json:"linescore,omitempty"`
	Away        TeamBox          `json:"away"`
	Home        TeamBox          `json:"home"`
	Highlights  *media.Recap     `json:"highlights,omitempty"`
	Unavailable bool             `json:"unavailable,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Unavailable returns the degraded view shown when the feed fetch fails.
func Unavailable(gamePk int, title string) BoxScore {
	return BoxScore{
		GamePk:      gamePk,
		Title:       title,
		Away:        TeamBox{Batting: []BattingRow{}, Pitching: []PitchingRow{}},
		Home:        TeamBox{Batting: []BattingRow{}, Pitching: []PitchingRow{}},
		Unavailable: true,
		Message:     UnavailableMessage,
	}
}
