package normalize

import (
	"mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

// RegulationInnings is the fixed number of linescore slots.
const RegulationInnings = 9

// Linescore always yields nine innings; missing runs count as zero and extra
// innings are dropped. Totals come from the upstream team run totals.
func Linescore(ls *statsapi.Linescore) *games.Linescore {
	if ls == nil {
		return nil
	}
	innings := make([]games.Inning, RegulationInnings)
	for i := range innings {
		innings[i] = games.Inning{Num: i + 1}
		if i < len(ls.Innings) {
			innings[i].Away = runs(ls.Innings[i].Away)
			innings[i].Home = runs(ls.Innings[i].Home)
		}
	}
	return &games.Linescore{
		Innings: innings,
		Totals: games.Totals{
			Away: runs(ls.Teams.Away),
			Home: runs(ls.Teams.Home),
		},
	}
}

func runs(t statsapi.LinescoreTallies) int {
	if t.Runs == nil {
		return 0
	}
	return *t.Runs
}
