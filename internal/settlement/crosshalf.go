package settlement

import (
	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// halves returns the first-half and derived second-half scores.
func halves(o *types.MatchOutcome) (first, second types.Score, ok bool) {
	first, okFirst := o.ScoreFor(types.PeriodHalfTime)
	second, okSecond := o.ScoreFor(types.PeriodSecondHalf)
	return first, second, okFirst && okSecond
}

func missingHalves(sel types.Selection) types.SelectionResult {
	return types.NewResult(sel, types.StatusPending, "Missing period score data")
}

func scoreInBothHalves(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	first, second, ok := halves(o)
	if !ok {
		return missingHalves(sel)
	}
	if res, ok := requireTeam(sel); !ok {
		return res
	}
	scoredBoth := first.For(sel.Team) > 0 && second.For(sel.Team) > 0

	switch sel.Pick {
	case markets.PickYes:
		return types.NewResult(sel, outcomeStatus(scoredBoth), "HT=%s, 2H=%s", first, second)
	case markets.PickNo:
		return types.NewResult(sel, outcomeStatus(!scoredBoth), "HT=%s, 2H=%s", first, second)
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be YES or NO")
	}
}

func winEitherHalf(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	first, second, ok := halves(o)
	if !ok {
		return missingHalves(sel)
	}
	side := types.Side(sel.Pick)
	if !side.Valid() {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME or AWAY")
	}
	won := first.Winner() == side || second.Winner() == side

	return types.NewResult(sel, outcomeStatus(won), "HT=%s, 2H=%s", first, second)
}

func winBothHalves(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	first, second, ok := halves(o)
	if !ok {
		return missingHalves(sel)
	}
	side := types.Side(sel.Pick)
	if !side.Valid() {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME or AWAY")
	}
	won := first.Winner() == side && second.Winner() == side

	return types.NewResult(sel, outcomeStatus(won), "HT=%s, 2H=%s", first, second)
}

func highestScoringHalf(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	first, second, ok := halves(o)
	if !ok {
		return missingHalves(sel)
	}

	actual := markets.PickEqual
	switch {
	case first.Total() > second.Total():
		actual = markets.PickFirst
	case second.Total() > first.Total():
		actual = markets.PickSecond
	}

	switch sel.Pick {
	case markets.PickFirst, markets.PickSecond, markets.PickEqual:
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be FIRST, SECOND, or EQUAL")
	}

	return types.NewResult(sel, outcomeStatus(sel.Pick == actual), "HT total=%d, 2H total=%d",
		first.Total(), second.Total())
}

// bothHalvesOverUnder needs each half's total strictly on the picked side of
// the line. There is no push.
func bothHalvesOverUnder(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	first, second, ok := halves(o)
	if !ok {
		return missingHalves(sel)
	}
	if sel.Line == nil {
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	}
	line := *sel.Line
	a, b := float64(first.Total()), float64(second.Total())

	var won bool
	switch sel.Pick {
	case markets.PickOver:
		won = a > line && b > line
	case markets.PickUnder:
		won = a < line && b < line
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be OVER or UNDER")
	}

	return types.NewResult(sel, outcomeStatus(won), "HT total=%d, 2H total=%d, line=%s",
		first.Total(), second.Total(), types.FormatLine(line))
}
