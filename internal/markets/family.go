package markets

import "github.com/mselser95/betslip-validator/pkg/types"

//nolint:gochecknoglobals // static lookup data
var (
	lineMarkets = map[types.Market]bool{
		types.MarketOverUnder:              true,
		types.MarketHTOverUnder:            true,
		types.Market2HOverUnder:            true,
		types.MarketTeamOverUnder:          true,
		types.MarketBothHalvesOverUnder:    true,
		types.MarketAsianHandicap:          true,
		types.MarketHTAsianHandicap:        true,
		types.MarketHandicapResult:         true,
		types.MarketResultOverUnder:        true,
		types.MarketCornersOverUnder:       true,
		types.MarketTeamCornersOverUnder:   true,
		types.MarketCardsOverUnder:         true,
		types.MarketTeamCardsOverUnder:     true,
		types.MarketShotsOverUnder:         true,
		types.MarketShotsOnTargetOverUnder: true,
		types.MarketFoulsOverUnder:         true,
		types.MarketOffsidesOverUnder:      true,
	}

	teamMarkets = map[types.Market]bool{
		types.MarketTeamOverUnder:        true,
		types.MarketTeamCornersOverUnder: true,
		types.MarketTeamCardsOverUnder:   true,
		types.MarketCleanSheet:           true,
		types.MarketTeamExactGoals:       true,
		types.MarketScoreInBothHalves:    true,
	}

	statisticsMarkets = map[types.Market]bool{
		types.MarketCornersOverUnder:       true,
		types.MarketTeamCornersOverUnder:   true,
		types.MarketCardsOverUnder:         true,
		types.MarketTeamCardsOverUnder:     true,
		types.MarketShotsOverUnder:         true,
		types.MarketShotsOnTargetOverUnder: true,
		types.MarketFoulsOverUnder:         true,
		types.MarketOffsidesOverUnder:      true,
		types.MarketMostCorners:            true,
		types.MarketMostCards:              true,
		types.MarketMostOffsides:           true,
		types.MarketMostFouls:              true,
		types.MarketMostShots:              true,
		types.MarketMostShotsOnTarget:      true,
	}
)

// RequiresLine reports whether selections on m must carry a line.
func RequiresLine(m types.Market) bool {
	return lineMarkets[m]
}

// RequiresTeam reports whether selections on m must name HOME or AWAY.
func RequiresTeam(m types.Market) bool {
	return teamMarkets[m]
}

// IsStatistics reports whether m settles on match statistics rather than goals.
func IsStatistics(m types.Market) bool {
	return statisticsMarkets[m]
}
