package settlement

import (
	"github.com/mselser95/betslip-validator/pkg/types"
)

// evaluator settles one normalized selection. Score evaluators read the
// outcome; statistics evaluators read stats, which may be nil.
type evaluator func(sel types.Selection, outcome *types.MatchOutcome, stats *types.MatchStatistics) types.SelectionResult

func periodRule(fn func(types.Selection, *types.MatchOutcome, types.Period) types.SelectionResult, p types.Period) evaluator {
	return func(sel types.Selection, outcome *types.MatchOutcome, _ *types.MatchStatistics) types.SelectionResult {
		return fn(sel, outcome, p)
	}
}

func scoreRule(fn func(types.Selection, *types.MatchOutcome) types.SelectionResult) evaluator {
	return func(sel types.Selection, outcome *types.MatchOutcome, _ *types.MatchStatistics) types.SelectionResult {
		return fn(sel, outcome)
	}
}

func statisticsRule(fn func(types.Selection, *types.MatchStatistics) types.SelectionResult) evaluator {
	return func(sel types.Selection, _ *types.MatchOutcome, stats *types.MatchStatistics) types.SelectionResult {
		if stats == nil {
			return types.NewResult(sel, types.StatusPending, "Missing fixture statistics")
		}
		return fn(sel, stats)
	}
}

// evaluatorFor returns the settlement rule of m, or nil when the market has
// none. Every market of the taxonomy is listed so that a new one must be
// decided here.
//
//nolint:gocyclo,funlen // flat dispatch table
func evaluatorFor(m types.Market) evaluator {
	switch m {
	// Full time
	case types.MarketMatchWinner:
		return periodRule(matchWinner, types.PeriodFullTime)
	case types.MarketDoubleChance:
		return periodRule(doubleChance, types.PeriodFullTime)
	case types.MarketDrawNoBet:
		return periodRule(drawNoBet, types.PeriodFullTime)
	case types.MarketOverUnder:
		return periodRule(overUnder, types.PeriodFullTime)
	case types.MarketBTTS:
		return periodRule(bothTeamsToScore, types.PeriodFullTime)
	case types.MarketOddEven:
		return periodRule(oddEven, types.PeriodFullTime)
	case types.MarketCorrectScore:
		return periodRule(correctScore, types.PeriodFullTime)
	case types.MarketAsianHandicap:
		return periodRule(asianHandicap, types.PeriodFullTime)
	case types.MarketTeamOverUnder:
		return scoreRule(teamOverUnder)
	case types.MarketExactGoals:
		return scoreRule(exactGoals)
	case types.MarketTeamExactGoals:
		return scoreRule(teamExactGoals)
	case types.MarketMultiGoals:
		return scoreRule(multiGoals)
	case types.MarketHandicapResult:
		return scoreRule(handicapResult)
	case types.MarketCleanSheet:
		return scoreRule(cleanSheet)
	case types.MarketWinToNil:
		return scoreRule(winToNil)
	case types.MarketFirstTeamScore:
		return scoreRule(firstTeamToScore)
	case types.MarketLastTeamScore:
		return scoreRule(lastTeamToScore)
	case types.MarketResultBTTS:
		return scoreRule(resultBothTeamsToScore)
	case types.MarketResultOverUnder:
		return scoreRule(resultOverUnder)
	case types.MarketMarginOfVictory:
		return scoreRule(marginOfVictory)

	// Half time
	case types.MarketHTMatchWinner:
		return periodRule(matchWinner, types.PeriodHalfTime)
	case types.MarketHTOverUnder:
		return periodRule(overUnder, types.PeriodHalfTime)
	case types.MarketHTBTTS:
		return periodRule(bothTeamsToScore, types.PeriodHalfTime)
	case types.MarketHTDoubleChance:
		return periodRule(doubleChance, types.PeriodHalfTime)
	case types.MarketHTDrawNoBet:
		return periodRule(drawNoBet, types.PeriodHalfTime)
	case types.MarketHTOddEven:
		return periodRule(oddEven, types.PeriodHalfTime)
	case types.MarketHTCorrectScore:
		return periodRule(correctScore, types.PeriodHalfTime)
	case types.MarketHTAsianHandicap:
		return periodRule(asianHandicap, types.PeriodHalfTime)

	// Second half
	case types.Market2HMatchWinner:
		return periodRule(matchWinner, types.PeriodSecondHalf)
	case types.Market2HOverUnder:
		return periodRule(overUnder, types.PeriodSecondHalf)
	case types.Market2HBTTS:
		return periodRule(bothTeamsToScore, types.PeriodSecondHalf)
	case types.Market2HDoubleChance:
		return periodRule(doubleChance, types.PeriodSecondHalf)
	case types.Market2HDrawNoBet:
		return periodRule(drawNoBet, types.PeriodSecondHalf)
	case types.Market2HOddEven:
		return periodRule(oddEven, types.PeriodSecondHalf)
	case types.Market2HCorrectScore:
		return periodRule(correctScore, types.PeriodSecondHalf)

	// HT/FT and cross-half
	case types.MarketHTFT:
		return scoreRule(halfTimeFullTime)
	case types.MarketScoreInBothHalves:
		return scoreRule(scoreInBothHalves)
	case types.MarketWinEitherHalf:
		return scoreRule(winEitherHalf)
	case types.MarketWinBothHalves:
		return scoreRule(winBothHalves)
	case types.MarketHighestScoringHalf:
		return scoreRule(highestScoringHalf)
	case types.MarketBothHalvesOverUnder:
		return scoreRule(bothHalvesOverUnder)

	// Statistics
	case types.MarketCornersOverUnder:
		return statisticsRule(totalStatistic(corners, "Total corners"))
	case types.MarketTeamCornersOverUnder:
		return statisticsRule(teamStatistic(corners, "corners"))
	case types.MarketCardsOverUnder:
		return statisticsRule(totalStatistic(cards, "Total cards"))
	case types.MarketTeamCardsOverUnder:
		return statisticsRule(teamStatistic(cards, "cards"))
	case types.MarketShotsOverUnder:
		return statisticsRule(totalStatistic(shots, "Total shots"))
	case types.MarketShotsOnTargetOverUnder:
		return statisticsRule(totalStatistic(shotsOnTarget, "Shots on target"))
	case types.MarketFoulsOverUnder:
		return statisticsRule(totalStatistic(fouls, "Total fouls"))
	case types.MarketOffsidesOverUnder:
		return statisticsRule(totalStatistic(offsides, "Total offsides"))

	// Comparison markets have no settlement rule yet.
	case types.MarketMostCorners, types.MarketMostCards, types.MarketMostOffsides,
		types.MarketMostFouls, types.MarketMostShots, types.MarketMostShotsOnTarget:
		return nil

	case types.MarketUnrecognized:
		return nil
	}

	return nil
}

// Supported reports whether selections on m can be settled.
func Supported(m types.Market) bool {
	return evaluatorFor(m) != nil
}

// SupportedMarkets returns every settleable market in taxonomy order.
func SupportedMarkets() []types.Market {
	var supported []types.Market
	for _, m := range types.AllMarkets() {
		if Supported(m) {
			supported = append(supported, m)
		}
	}
	return supported
}
