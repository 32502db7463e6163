package settlement

import (
	"errors"
	"fmt"

	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// Validate normalizes the pick of sel and checks the line and team its market
// requires. Errors are *types.ValidationError.
func Validate(sel types.Selection) (types.Selection, error) {
	pick, err := markets.NormalizePick(sel.Market, sel.Pick)
	if err != nil {
		return sel, fmt.Errorf("normalize pick: %w", err)
	}
	sel.Pick = pick

	if markets.RequiresLine(sel.Market) && sel.Line == nil {
		return sel, &types.ValidationError{Market: sel.Market, Field: "line", Reason: "is required"}
	}
	if markets.RequiresTeam(sel.Market) && !sel.Team.Valid() {
		return sel, &types.ValidationError{
			Market: sel.Market,
			Field:  "team",
			Value:  string(sel.Team),
			Reason: "must be HOME or AWAY",
		}
	}

	return sel, nil
}

// rejection converts a validation failure into the NOT_SUPPORTED result
// reported for the selection as submitted.
func rejection(sel types.Selection, err error) types.SelectionResult {
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		return types.NewResult(sel, types.StatusNotSupported, "%v", err)
	}

	switch verr.Field {
	case "line":
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	case "team":
		return types.NewResult(sel, types.StatusNotSupported, "Requires team=HOME or team=AWAY")
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Invalid pick '%s' for %s: %s",
			verr.Value, verr.Market, verr.Reason)
	}
}

func unsupported(sel types.Selection) types.SelectionResult {
	return types.NewResult(sel, types.StatusNotSupported, "Market '%s' is not yet implemented", sel.MarketLabel())
}

// Evaluate settles one selection against a fixture's outcome and, for
// statistics markets, its statistics. It never fails: unknown markets and
// invalid selections are NOT_SUPPORTED, missing data is PENDING.
func Evaluate(sel types.Selection, outcome *types.MatchOutcome, stats *types.MatchStatistics) types.SelectionResult {
	eval := evaluatorFor(sel.Market)
	if eval == nil {
		return unsupported(sel)
	}

	normalized, err := Validate(sel)
	if err != nil {
		return rejection(sel, err)
	}

	if !markets.IsStatistics(sel.Market) {
		if outcome == nil {
			return types.NewResult(normalized, types.StatusPending, "Missing goals data (status=unknown)")
		}
		if outcome.FullTime == nil {
			return types.NewResult(normalized, types.StatusPending, "Missing goals data (status=%s)", outcome.Status)
		}
	}

	return eval(normalized, outcome, stats)
}
