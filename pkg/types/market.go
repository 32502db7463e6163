package types

// Market is a canonical betting market identifier.
type Market string

// Sentinel for labels that matched no alias.
const MarketUnrecognized Market = "UNRECOGNIZED"

// Full-time result and goals markets.
const (
	MarketMatchWinner     Market = "MATCH_WINNER"
	MarketDoubleChance    Market = "DOUBLE_CHANCE"
	MarketDrawNoBet       Market = "DRAW_NO_BET"
	MarketOverUnder       Market = "OVER_UNDER"
	MarketBTTS            Market = "BTTS"
	MarketTeamOverUnder   Market = "TEAM_OVER_UNDER"
	MarketExactGoals      Market = "EXACT_GOALS"
	MarketTeamExactGoals  Market = "TEAM_EXACT_GOALS"
	MarketMultiGoals      Market = "MULTI_GOALS"
	MarketOddEven         Market = "ODD_EVEN"
	MarketCorrectScore    Market = "CORRECT_SCORE"
	MarketAsianHandicap   Market = "ASIAN_HANDICAP"
	MarketHandicapResult  Market = "HANDICAP_RESULT"
	MarketCleanSheet      Market = "CLEAN_SHEET"
	MarketWinToNil        Market = "WIN_TO_NIL"
	MarketFirstTeamScore  Market = "FIRST_TEAM_TO_SCORE"
	MarketLastTeamScore   Market = "LAST_TEAM_TO_SCORE"
	MarketResultBTTS      Market = "RESULT_BTTS"
	MarketResultOverUnder Market = "RESULT_OVER_UNDER"
	MarketMarginOfVictory Market = "MARGIN_OF_VICTORY"
)

// Half-time mirrors.
const (
	MarketHTMatchWinner   Market = "HT_MATCH_WINNER"
	MarketHTOverUnder     Market = "HT_OVER_UNDER"
	MarketHTBTTS          Market = "HT_BTTS"
	MarketHTDoubleChance  Market = "HT_DOUBLE_CHANCE"
	MarketHTDrawNoBet     Market = "HT_DRAW_NO_BET"
	MarketHTOddEven       Market = "HT_ODD_EVEN"
	MarketHTCorrectScore  Market = "HT_CORRECT_SCORE"
	MarketHTAsianHandicap Market = "HT_ASIAN_HANDICAP"
)

// Second-half mirrors.
const (
	Market2HMatchWinner  Market = "SECOND_HALF_MATCH_WINNER"
	Market2HOverUnder    Market = "SECOND_HALF_OVER_UNDER"
	Market2HBTTS         Market = "SECOND_HALF_BTTS"
	Market2HDoubleChance Market = "SECOND_HALF_DOUBLE_CHANCE"
	Market2HDrawNoBet    Market = "SECOND_HALF_DRAW_NO_BET"
	Market2HOddEven      Market = "SECOND_HALF_ODD_EVEN"
	Market2HCorrectScore Market = "SECOND_HALF_CORRECT_SCORE"
)

// HT/FT combo and cross-half markets.
const (
	MarketHTFT                Market = "HT_FT"
	MarketScoreInBothHalves   Market = "TO_SCORE_IN_BOTH_HALVES"
	MarketWinEitherHalf       Market = "TO_WIN_EITHER_HALF"
	MarketWinBothHalves       Market = "TO_WIN_BOTH_HALVES"
	MarketHighestScoringHalf  Market = "HIGHEST_SCORING_HALF"
	MarketBothHalvesOverUnder Market = "BOTH_HALVES_OVER_UNDER"
)

// Statistics markets.
const (
	MarketCornersOverUnder       Market = "CORNERS_OVER_UNDER"
	MarketTeamCornersOverUnder   Market = "TEAM_CORNERS_OVER_UNDER"
	MarketCardsOverUnder         Market = "CARDS_OVER_UNDER"
	MarketTeamCardsOverUnder     Market = "TEAM_CARDS_OVER_UNDER"
	MarketShotsOverUnder         Market = "SHOTS_OVER_UNDER"
	MarketShotsOnTargetOverUnder Market = "SHOTS_ON_TARGET_OVER_UNDER"
	MarketFoulsOverUnder         Market = "FOULS_OVER_UNDER"
	MarketOffsidesOverUnder      Market = "OFFSIDES_OVER_UNDER"

	// Comparison markets are part of the vocabulary but have no settlement rule.
	MarketMostCorners       Market = "MOST_CORNERS"
	MarketMostCards         Market = "MOST_CARDS"
	MarketMostOffsides      Market = "MOST_OFFSIDES"
	MarketMostFouls         Market = "MOST_FOULS"
	MarketMostShots         Market = "MOST_SHOTS"
	MarketMostShotsOnTarget Market = "MOST_SHOTS_ON_TARGET"
)

// AllMarkets returns every canonical market in declaration order, excluding
// MarketUnrecognized.
func AllMarkets() []Market {
	return []Market{
		MarketMatchWinner, MarketDoubleChance, MarketDrawNoBet,
		MarketOverUnder, MarketBTTS, MarketTeamOverUnder,
		MarketExactGoals, MarketTeamExactGoals, MarketMultiGoals, MarketOddEven,
		MarketCorrectScore,
		MarketAsianHandicap, MarketHandicapResult,
		MarketCleanSheet, MarketWinToNil, MarketFirstTeamScore, MarketLastTeamScore,
		MarketResultBTTS, MarketResultOverUnder, MarketMarginOfVictory,
		MarketHTMatchWinner, MarketHTOverUnder, MarketHTBTTS, MarketHTDoubleChance,
		MarketHTDrawNoBet, MarketHTOddEven, MarketHTCorrectScore, MarketHTAsianHandicap,
		Market2HMatchWinner, Market2HOverUnder, Market2HBTTS, Market2HDoubleChance,
		Market2HDrawNoBet, Market2HOddEven, Market2HCorrectScore,
		MarketHTFT,
		MarketScoreInBothHalves, MarketWinEitherHalf, MarketWinBothHalves,
		MarketHighestScoringHalf, MarketBothHalvesOverUnder,
		MarketCornersOverUnder, MarketTeamCornersOverUnder,
		MarketCardsOverUnder, MarketTeamCardsOverUnder,
		MarketShotsOverUnder, MarketShotsOnTargetOverUnder,
		MarketFoulsOverUnder, MarketOffsidesOverUnder,
		MarketMostCorners, MarketMostCards, MarketMostOffsides,
		MarketMostFouls, MarketMostShots, MarketMostShotsOnTarget,
	}
}

// IsKnown reports whether m is part of the canonical taxonomy.
func (m Market) IsKnown() bool {
	for _, known := range AllMarkets() {
		if m == known {
			return true
		}
	}
	return false
}

// Side identifies a team in a fixture. SideNone is only meaningful for
// first/last scorer data and means no goal was scored.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
	SideNone Side = "NONE"
)

// Opposite swaps HOME and AWAY. Any other value is returned unchanged.
func (s Side) Opposite() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	default:
		return s
	}
}

// Valid reports whether s is HOME or AWAY.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}
