package markets

import (
	"strings"

	"github.com/mselser95/betslip-validator/pkg/types"
)

// keyReplacer maps the punctuation accepted in market labels onto underscores.
//
//nolint:gochecknoglobals // static lookup data
var keyReplacer = strings.NewReplacer(
	"-", "_", "/", "_", " ", "_", "(", "_", ")", "_",
	".", "_", ",", "_", "?", "_", "'", "_",
)

// NormalizeKey turns a free-text market label into its alias lookup key:
// uppercase, punctuation folded to underscores, repeats collapsed and edges
// trimmed. "Goals Over/Under (1st Half)" becomes GOALS_OVER_UNDER_1ST_HALF.
func NormalizeKey(label string) string {
	key := keyReplacer.Replace(strings.ToUpper(strings.TrimSpace(label)))
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}

	return strings.Trim(key, "_")
}

// Resolve maps a market label onto the canonical taxonomy. Labels that match
// no alias resolve to types.MarketUnrecognized; callers keep the original
// text for diagnostics.
func Resolve(label string) types.Market {
	m := lookup(NormalizeKey(label))
	if m == types.MarketUnrecognized {
		UnrecognizedMarketsTotal.Inc()
	}

	return m
}

func lookup(key string) types.Market {
	if m := types.Market(key); m.IsKnown() {
		return m
	}
	if m, ok := marketAliases[key]; ok {
		return m
	}

	return types.MarketUnrecognized
}

// ImpliedTeam returns the side encoded in a team-scoped label such as
// HOME_TEAM_OVER_UNDER or CLEAN_SHEET_AWAY, or an empty Side when the label
// names no side or its market is not team-scoped.
func ImpliedTeam(label string) types.Side {
	key := NormalizeKey(label)
	if !RequiresTeam(lookup(key)) {
		return ""
	}

	switch {
	case strings.HasPrefix(key, "HOME_"), strings.HasSuffix(key, "_HOME"):
		return types.SideHome
	case strings.HasPrefix(key, "AWAY_"), strings.HasSuffix(key, "_AWAY"):
		return types.SideAway
	default:
		return ""
	}
}

//nolint:gochecknoglobals // static lookup data
var marketAliases = map[string]types.Market{
	// 1X2
	"1X2":              types.MarketMatchWinner,
	"MONEYLINE":        types.MarketMatchWinner,
	"HOME_AWAY":        types.MarketMatchWinner,
	"FULL_TIME_RESULT": types.MarketMatchWinner,
	"FT_RESULT":        types.MarketMatchWinner,
	"MATCH_RESULT":     types.MarketMatchWinner,

	"DC":  types.MarketDoubleChance,
	"DNB": types.MarketDrawNoBet,

	// Goals
	"GOALS_OVER_UNDER":             types.MarketOverUnder,
	"OU":                           types.MarketOverUnder,
	"O_U":                          types.MarketOverUnder,
	"TOTAL_GOALS":                  types.MarketOverUnder,
	"GOALS_OVER_UNDER_ALTERNATIVE": types.MarketOverUnder,

	"BOTH_TEAMS_SCORE":    types.MarketBTTS,
	"BOTH_TEAMS_TO_SCORE": types.MarketBTTS,
	"GGNG":                types.MarketBTTS,
	"GG_NG":               types.MarketBTTS,

	"TEAM_TOTAL_GOALS":     types.MarketTeamOverUnder,
	"TOTAL_HOME":           types.MarketTeamOverUnder,
	"TOTAL_AWAY":           types.MarketTeamOverUnder,
	"HOME_TEAM_GOALS":      types.MarketTeamOverUnder,
	"AWAY_TEAM_GOALS":      types.MarketTeamOverUnder,
	"HOME_TEAM_OVER_UNDER": types.MarketTeamOverUnder,
	"AWAY_TEAM_OVER_UNDER": types.MarketTeamOverUnder,

	"EXACT_GOALS_NUMBER": types.MarketExactGoals,
	"TOTAL_GOALS_EXACT":  types.MarketExactGoals,

	"HOME_TEAM_EXACT_GOALS": types.MarketTeamExactGoals,
	"AWAY_TEAM_EXACT_GOALS": types.MarketTeamExactGoals,

	"MULTIGOALS":        types.MarketMultiGoals,
	"TOTAL_GOALS_RANGE": types.MarketMultiGoals,

	"EXACT_SCORE": types.MarketCorrectScore,
	"CS":          types.MarketCorrectScore,

	// Handicaps
	"HANDICAP":                   types.MarketAsianHandicap,
	"AH":                         types.MarketAsianHandicap,
	"ASIAN_HANDICAP_ALTERNATIVE": types.MarketAsianHandicap,

	"EUROPEAN_HANDICAP": types.MarketHandicapResult,
	"3_WAY_HANDICAP":    types.MarketHandicapResult,

	// Clean sheet, win to nil, scorers
	"CLEAN_SHEET_HOME": types.MarketCleanSheet,
	"CLEAN_SHEET_AWAY": types.MarketCleanSheet,
	"HOME_CLEAN_SHEET": types.MarketCleanSheet,
	"AWAY_CLEAN_SHEET": types.MarketCleanSheet,

	"HOME_WIN_TO_NIL": types.MarketWinToNil,
	"AWAY_WIN_TO_NIL": types.MarketWinToNil,
	"WIN_TO_NIL_HOME": types.MarketWinToNil,
	"WIN_TO_NIL_AWAY": types.MarketWinToNil,

	"FIRST_GOAL": types.MarketFirstTeamScore,
	"LAST_GOAL":  types.MarketLastTeamScore,

	// Combos
	"RESULT_BOTH_TEAMS_SCORE":    types.MarketResultBTTS,
	"RESULT_BOTH_TEAMS_TO_SCORE": types.MarketResultBTTS,
	"MATCH_RESULT_AND_BTTS":      types.MarketResultBTTS,

	"RESULT_TOTAL_GOALS":     types.MarketResultOverUnder,
	"HOME_AWAY_TOTAL":        types.MarketResultOverUnder,
	"MATCH_RESULT_AND_TOTAL": types.MarketResultOverUnder,

	"WINNING_MARGIN": types.MarketMarginOfVictory,

	// First half
	"HT_1X2":            types.MarketHTMatchWinner,
	"1H_1X2":            types.MarketHTMatchWinner,
	"FIRST_HALF_WINNER": types.MarketHTMatchWinner,
	"1ST_HALF_RESULT":   types.MarketHTMatchWinner,

	"HT_OU":                       types.MarketHTOverUnder,
	"HT_O_U":                      types.MarketHTOverUnder,
	"GOALS_OVER_UNDER_FIRST_HALF": types.MarketHTOverUnder,
	"FIRST_HALF_OVER_UNDER":       types.MarketHTOverUnder,

	"BOTH_TEAMS_SCORE_FIRST_HALF":    types.MarketHTBTTS,
	"BOTH_TEAMS_TO_SCORE_FIRST_HALF": types.MarketHTBTTS,
	"BTTS_FIRST_HALF":                types.MarketHTBTTS,
	"1H_BTTS":                        types.MarketHTBTTS,

	"DOUBLE_CHANCE_FIRST_HALF": types.MarketHTDoubleChance,
	"1H_DOUBLE_CHANCE":         types.MarketHTDoubleChance,

	"DRAW_NO_BET_1ST_HALF": types.MarketHTDrawNoBet,
	"DNB_1ST_HALF":         types.MarketHTDrawNoBet,
	"1H_DNB":               types.MarketHTDrawNoBet,

	"ODD_EVEN_FIRST_HALF": types.MarketHTOddEven,
	"1H_ODD_EVEN":         types.MarketHTOddEven,

	"CORRECT_SCORE_FIRST_HALF": types.MarketHTCorrectScore,
	"EXACT_SCORE_FIRST_HALF":   types.MarketHTCorrectScore,

	"ASIAN_HANDICAP_FIRST_HALF": types.MarketHTAsianHandicap,
	"1H_ASIAN_HANDICAP":         types.MarketHTAsianHandicap,

	// Second half
	"2H_1X2":             types.Market2HMatchWinner,
	"2H_MATCH_WINNER":    types.Market2HMatchWinner,
	"SECOND_HALF_WINNER": types.Market2HMatchWinner,
	"2ND_HALF_RESULT":    types.Market2HMatchWinner,

	"2H_OU":                        types.Market2HOverUnder,
	"2H_OVER_UNDER":                types.Market2HOverUnder,
	"2H_O_U":                       types.Market2HOverUnder,
	"GOALS_OVER_UNDER_SECOND_HALF": types.Market2HOverUnder,

	"2H_BTTS":                         types.Market2HBTTS,
	"BOTH_TEAMS_SCORE_SECOND_HALF":    types.Market2HBTTS,
	"BOTH_TEAMS_TO_SCORE_SECOND_HALF": types.Market2HBTTS,
	"BTTS_SECOND_HALF":                types.Market2HBTTS,

	"2H_DOUBLE_CHANCE":          types.Market2HDoubleChance,
	"DOUBLE_CHANCE_SECOND_HALF": types.Market2HDoubleChance,

	"2H_DNB":               types.Market2HDrawNoBet,
	"DRAW_NO_BET_2ND_HALF": types.Market2HDrawNoBet,
	"DNB_2ND_HALF":         types.Market2HDrawNoBet,

	"2H_ODD_EVEN":          types.Market2HOddEven,
	"ODD_EVEN_SECOND_HALF": types.Market2HOddEven,

	"2H_CORRECT_SCORE":          types.Market2HCorrectScore,
	"CORRECT_SCORE_SECOND_HALF": types.Market2HCorrectScore,
	"EXACT_SCORE_SECOND_HALF":   types.Market2HCorrectScore,

	// HT/FT and cross-half
	"HTFT":                types.MarketHTFT,
	"HT_FT_DOUBLE":        types.MarketHTFT,
	"HALF_TIME_FULL_TIME": types.MarketHTFT,

	"SCORE_BOTH_HALVES_BY_TEAMS":   types.MarketScoreInBothHalves,
	"TEAM_TO_SCORE_IN_BOTH_HALVES": types.MarketScoreInBothHalves,
	"SCORE_IN_BOTH_HALVES":         types.MarketScoreInBothHalves,

	"WIN_EITHER_HALF": types.MarketWinEitherHalf,
	"WIN_BOTH_HALVES": types.MarketWinBothHalves,

	"HIGHEST_SCORING_HALF_HOME": types.MarketHighestScoringHalf,
	"HIGHEST_SCORING_HALF_AWAY": types.MarketHighestScoringHalf,

	"BOTH_HALVES_OVER":  types.MarketBothHalvesOverUnder,
	"BOTH_HALVES_UNDER": types.MarketBothHalvesOverUnder,

	// Statistics
	"TOTAL_CORNERS":                 types.MarketCornersOverUnder,
	"CORNERS_OU":                    types.MarketCornersOverUnder,
	"CORNERS_OVER_UNDER_FIRST_HALF": types.MarketCornersOverUnder,

	"TEAM_CORNERS_OU":         types.MarketTeamCornersOverUnder,
	"HOME_CORNERS_OVER_UNDER": types.MarketTeamCornersOverUnder,
	"AWAY_CORNERS_OVER_UNDER": types.MarketTeamCornersOverUnder,
	"HOME_TOTAL_CORNERS":      types.MarketTeamCornersOverUnder,
	"AWAY_TOTAL_CORNERS":      types.MarketTeamCornersOverUnder,
	"HOME_TEAM_TOTAL_CORNERS": types.MarketTeamCornersOverUnder,
	"AWAY_TEAM_TOTAL_CORNERS": types.MarketTeamCornersOverUnder,

	"CARDS_OU":             types.MarketCardsOverUnder,
	"YELLOW_OVER_UNDER":    types.MarketCardsOverUnder,
	"RED_CARDS_OVER_UNDER": types.MarketCardsOverUnder,
	"TOTAL_CARDS":          types.MarketCardsOverUnder,

	"TEAM_CARDS_OU":          types.MarketTeamCardsOverUnder,
	"HOME_TEAM_TOTAL_CARDS":  types.MarketTeamCardsOverUnder,
	"AWAY_TEAM_TOTAL_CARDS":  types.MarketTeamCardsOverUnder,
	"HOME_TEAM_YELLOW_CARDS": types.MarketTeamCardsOverUnder,
	"AWAY_TEAM_YELLOW_CARDS": types.MarketTeamCardsOverUnder,

	"TOTAL_SHOTS": types.MarketShotsOverUnder,
	"SHOTS_OU":    types.MarketShotsOverUnder,

	"SHOTS_ON_TARGET":       types.MarketShotsOnTargetOverUnder,
	"TOTAL_SHOTS_ON_TARGET": types.MarketShotsOnTargetOverUnder,

	"TOTAL_FOULS": types.MarketFoulsOverUnder,
	"FOULS_OU":    types.MarketFoulsOverUnder,

	"TOTAL_OFFSIDES": types.MarketOffsidesOverUnder,
	"OFFSIDES_OU":    types.MarketOffsidesOverUnder,
}
