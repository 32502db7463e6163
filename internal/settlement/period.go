package settlement

import (
	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// Result categories of a period. A draw is reported as DRAW rather than the
// empty Side returned by types.Score.Winner.
const (
	categoryHome = markets.PickHome
	categoryDraw = markets.PickDraw
	categoryAway = markets.PickAway
)

// statusPenalties is the fixture status of a match decided by a shootout.
const statusPenalties = "PEN"

//nolint:gochecknoglobals // static lookup data
var doubleChanceSets = map[string][2]string{
	"1X": {categoryHome, categoryDraw},
	"X2": {categoryDraw, categoryAway},
	"12": {categoryHome, categoryAway},
}

func category(s types.Score) string {
	switch s.Winner() {
	case types.SideHome:
		return categoryHome
	case types.SideAway:
		return categoryAway
	default:
		return categoryDraw
	}
}

// shootoutCategory returns the full-time category with a level score broken by
// the penalty shootout when the fixture went to one. decided reports whether
// the shootout changed the answer.
func shootoutCategory(o *types.MatchOutcome, p types.Period, s types.Score) (cat string, decided bool) {
	cat = category(s)
	if p != types.PeriodFullTime || cat != categoryDraw || !wentToShootout(o) {
		return cat, false
	}
	if pens := category(*o.Penalties); pens != categoryDraw {
		return pens, true
	}

	return cat, false
}

func wentToShootout(o *types.MatchOutcome) bool {
	return o.Status == statusPenalties && o.Penalties != nil
}

func missingPeriod(sel types.Selection, p types.Period) types.SelectionResult {
	return types.NewResult(sel, types.StatusPending, "Missing %s score data", p)
}

func outcomeStatus(won bool) types.Status {
	if won {
		return types.StatusWon
	}
	return types.StatusLost
}

func matchWinner(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	actual, decided := shootoutCategory(o, p, s)

	switch sel.Pick {
	case categoryHome, categoryDraw, categoryAway:
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME, DRAW, or AWAY")
	}

	if decided {
		return types.NewResult(sel, outcomeStatus(sel.Pick == actual),
			"%s score=%s, penalties=%s", p.Label(), s, o.Penalties)
	}
	return types.NewResult(sel, outcomeStatus(sel.Pick == actual), "%s score=%s", p.Label(), s)
}

func doubleChance(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	set, ok := doubleChanceSets[sel.Pick]
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported,
			"Invalid DOUBLE_CHANCE pick '%s'. Use 1X, X2, 12.", sel.Pick)
	}
	actual, _ := shootoutCategory(o, p, s)

	return types.NewResult(sel, outcomeStatus(set[0] == actual || set[1] == actual), "%s result: %s", p, actual)
}

func drawNoBet(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	if sel.Pick != categoryHome && sel.Pick != categoryAway {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME or AWAY")
	}

	actual, _ := shootoutCategory(o, p, s)
	if actual == categoryDraw {
		return types.NewResult(sel, types.StatusPush, "%s draw %s: stake returned", p, s)
	}

	return types.NewResult(sel, outcomeStatus(sel.Pick == actual), "%s result: %s", p, actual)
}

func overUnder(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}

	return settleLine(sel, s.Total(), string(p)+" total")
}

func bothTeamsToScore(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	btts := s.Home > 0 && s.Away > 0

	switch sel.Pick {
	case markets.PickYes:
		return types.NewResult(sel, outcomeStatus(btts), "%s goals=%s", p, s)
	case markets.PickNo:
		return types.NewResult(sel, outcomeStatus(!btts), "%s goals=%s", p, s)
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be YES or NO")
	}
}

func oddEven(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	actual := markets.PickEven
	if s.Total()%2 != 0 {
		actual = markets.PickOdd
	}
	if sel.Pick != markets.PickOdd && sel.Pick != markets.PickEven {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be ODD or EVEN")
	}

	return types.NewResult(sel, outcomeStatus(sel.Pick == actual), "%s total=%d (%s)", p, s.Total(), actual)
}

func correctScore(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	want, ok := parseScore(sel.Pick)
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be in H:A format, e.g. 2:1")
	}

	return types.NewResult(sel, outcomeStatus(want == s), "%s score=%s", p, s)
}

// asianHandicap adds the line to the picked side only; the other side is
// compared as scored.
func asianHandicap(sel types.Selection, o *types.MatchOutcome, p types.Period) types.SelectionResult {
	s, ok := o.ScoreFor(p)
	if !ok {
		return missingPeriod(sel, p)
	}
	if sel.Line == nil {
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	}

	home, away := float64(s.Home), float64(s.Away)
	switch sel.Pick {
	case categoryHome:
		home += *sel.Line
	case categoryAway:
		away += *sel.Line
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME or AWAY")
	}

	if home == away {
		return types.NewResult(sel, types.StatusPush, "Adjusted score tied (%s-%s)",
			types.FormatLine(home), types.FormatLine(away))
	}
	won := home > away
	if sel.Pick == categoryAway {
		won = away > home
	}

	return types.NewResult(sel, outcomeStatus(won), "Adjusted score home=%s, away=%s",
		types.FormatLine(home), types.FormatLine(away))
}
