package normalize

import (
	"strconv"
	"strings"

	"mlb-scoreboard-service/internal/providers/statsapi"
)

// InningsFromIP converts the W.F innings-pitched notation into innings, where
// F counts outs: 1 is a third and 2 is two thirds. Any other fraction counts as 0.
func InningsFromIP(ip string) float64 {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return 0
	}
	whole, frac, _ := strings.Cut(ip, ".")
	w, err := strconv.Atoi(whole)
	if err != nil && whole != "" {
		return 0
	}
	thirds := 0
	switch frac {
	case "1":
		thirds = 1
	case "2":
		thirds = 2
	}
	return float64(w) + float64(thirds)/3
}

// DeriveAverage computes hits/atBats to three places without the leading zero.
// It returns "" when there are no at-bats.
func DeriveAverage(hits, atBats int) string {
	if atBats <= 0 {
		return ""
	}
	return stripLeadingZero(strconv.FormatFloat(float64(hits)/float64(atBats), 'f', 3, 64))
}

// DeriveERA computes earnedRuns*9/innings to two places. It returns "" when no
// innings were recorded.
func DeriveERA(earnedRuns int, inningsPitched string) string {
	innings := InningsFromIP(inningsPitched)
	if innings <= 0 {
		return ""
	}
	return strconv.FormatFloat(float64(earnedRuns)*9/innings, 'f', 2, 64)
}

// BattingAverage prefers the game avg, then the season avg, then a derived value.
func BattingAverage(game *statsapi.BattingStats, season *statsapi.BattingStats) string {
	if game == nil {
		return ""
	}
	if game.Avg != "" {
		return game.Avg.String()
	}
	if season != nil && season.Avg != "" {
		return season.Avg.String()
	}
	return DeriveAverage(int(game.Hits), int(game.AtBats))
}

// EarnedRunAverage prefers the game era, then the season era, then a derived value.
func EarnedRunAverage(game *statsapi.PitchingStats, season *statsapi.PitchingStats) string {
	if game == nil {
		return ""
	}
	if game.Era != "" {
		return game.Era.String()
	}
	if season != nil && season.Era != "" {
		return season.Era.String()
	}
	return DeriveERA(int(game.EarnedRuns), game.InningsPitched.String())
}

// FormatAverage trims a leading zero from an upstream rate ("0.275" -> ".275").
func FormatAverage(raw string) string {
	return stripLeadingZero(raw)
}

func stripLeadingZero(s string) string {
	if strings.HasPrefix(s, "0") {
		return s[1:]
	}
	return s
}
