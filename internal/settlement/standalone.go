package settlement

import (
	"strconv"
	"strings"

	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// settleLine settles an over/under pick on value. A value equal to the line
// is a push whatever the pick.
func settleLine(sel types.Selection, value int, label string) types.SelectionResult {
	if sel.Line == nil {
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	}
	v, line := float64(value), *sel.Line

	if v == line {
		return types.NewResult(sel, types.StatusPush, "%s=%d matched line=%s", label, value, types.FormatLine(line))
	}

	var won bool
	switch sel.Pick {
	case markets.PickOver:
		won = v > line
	case markets.PickUnder:
		won = v < line
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be OVER or UNDER")
	}

	return types.NewResult(sel, outcomeStatus(won), "%s=%d, line=%s", label, value, types.FormatLine(line))
}

func requireTeam(sel types.Selection) (types.SelectionResult, bool) {
	if !sel.Team.Valid() {
		return types.NewResult(sel, types.StatusNotSupported, "Requires team=HOME or team=AWAY"), false
	}
	return types.SelectionResult{}, true
}

func parseScore(pick string) (types.Score, bool) {
	home, away, ok := strings.Cut(strings.ReplaceAll(strings.TrimSpace(pick), "-", ":"), ":")
	if !ok {
		return types.Score{}, false
	}
	h, errHome := parseCount(home)
	a, errAway := parseCount(away)
	if errHome != nil || errAway != nil {
		return types.Score{}, false
	}

	return types.Score{Home: h, Away: a}, true
}

// parseCount parses a non-negative integer.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || strings.HasPrefix(s, "+") {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

// countPredicate parses "N" (exactly N) or "N+" (at least N).
func countPredicate(pick string) (func(int) bool, bool) {
	pick = strings.TrimSpace(pick)
	if threshold, ok := strings.CutSuffix(pick, "+"); ok {
		n, err := parseCount(threshold)
		if err != nil {
			return nil, false
		}
		return func(v int) bool { return v >= n }, true
	}

	n, err := parseCount(pick)
	if err != nil {
		return nil, false
	}
	return func(v int) bool { return v == n }, true
}

func teamOverUnder(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	if res, ok := requireTeam(sel); !ok {
		return res
	}

	return settleLine(sel, o.FullTime.For(sel.Team), "Team="+string(sel.Team)+" goals")
}

// cleanSheet: the named team conceded nothing.
func cleanSheet(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	if res, ok := requireTeam(sel); !ok {
		return res
	}
	clean := o.FullTime.Against(sel.Team) == 0

	switch sel.Pick {
	case markets.PickYes:
		return types.NewResult(sel, outcomeStatus(clean), "Score=%s", o.FullTime)
	case markets.PickNo:
		return types.NewResult(sel, outcomeStatus(!clean), "Score=%s", o.FullTime)
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be YES or NO")
	}
}

func winToNil(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	side := types.Side(sel.Pick)
	if !side.Valid() {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME or AWAY")
	}
	s := *o.FullTime
	won := s.For(side) > 0 && s.Against(side) == 0

	return types.NewResult(sel, outcomeStatus(won), "Score=%s", s)
}

func exactGoals(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	matches, ok := countPredicate(sel.Pick)
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Cannot parse pick '%s'", sel.Pick)
	}
	total := o.FullTime.Total()

	return types.NewResult(sel, outcomeStatus(matches(total)), "Total goals=%d", total)
}

func teamExactGoals(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	if res, ok := requireTeam(sel); !ok {
		return res
	}
	matches, ok := countPredicate(sel.Pick)
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Cannot parse pick '%s'", sel.Pick)
	}
	goals := o.FullTime.For(sel.Team)

	return types.NewResult(sel, outcomeStatus(matches(goals)), "Team=%s, goals=%d", sel.Team, goals)
}

// multiGoals accepts "N-M" (inclusive range) or "N+".
func multiGoals(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	total := o.FullTime.Total()
	pick := strings.TrimSpace(sel.Pick)

	if strings.HasSuffix(pick, "+") {
		matches, ok := countPredicate(pick)
		if !ok {
			return types.NewResult(sel, types.StatusNotSupported, "Cannot parse pick '%s'", sel.Pick)
		}
		return types.NewResult(sel, outcomeStatus(matches(total)), "Total goals=%d", total)
	}

	lowText, highText, ok := strings.Cut(pick, "-")
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported,
			"Cannot parse pick '%s'. Use range (e.g. 2-3) or threshold (e.g. 4+)", sel.Pick)
	}
	low, errLow := parseCount(lowText)
	high, errHigh := parseCount(highText)
	if errLow != nil || errHigh != nil || low > high {
		return types.NewResult(sel, types.StatusNotSupported, "Cannot parse pick '%s'", sel.Pick)
	}

	return types.NewResult(sel, outcomeStatus(total >= low && total <= high), "Total goals=%d", total)
}

// handicapResult is the three-way handicap: the line goes to the home side
// and a draw after adjustment is a valid outcome, not a push.
func handicapResult(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	if sel.Line == nil {
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	}
	switch sel.Pick {
	case categoryHome, categoryDraw, categoryAway:
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME, DRAW, or AWAY")
	}

	home := float64(o.FullTime.Home) + *sel.Line
	away := float64(o.FullTime.Away)
	actual := categoryDraw
	switch {
	case home > away:
		actual = categoryHome
	case away > home:
		actual = categoryAway
	}

	return types.NewResult(sel, outcomeStatus(sel.Pick == actual), "Adjusted home=%s, away=%d",
		types.FormatLine(home), o.FullTime.Away)
}

func halfTimeFullTime(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	ht, okHT := o.ScoreFor(types.PeriodHalfTime)
	ft, okFT := o.ScoreFor(types.PeriodFullTime)
	if !okHT || !okFT {
		return types.NewResult(sel, types.StatusPending, "Missing halftime/fulltime score data")
	}
	htPick, ftPick, ok := strings.Cut(sel.Pick, "/")
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "HT_FT pick must be in HT/FT form, e.g. HOME/DRAW")
	}
	actual := category(ht) + "/" + category(ft)

	return types.NewResult(sel, outcomeStatus(htPick+"/"+ftPick == actual), "Actual HT/FT=%s", actual)
}

func resultBothTeamsToScore(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	result, btts, ok := strings.Cut(sel.Pick, "/")
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be RESULT/BTTS, e.g. HOME/YES")
	}
	s := *o.FullTime
	actual := category(s)
	scored := s.Home > 0 && s.Away > 0

	var bttsOK bool
	switch btts {
	case markets.PickYes:
		bttsOK = scored
	case markets.PickNo:
		bttsOK = !scored
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Unknown BTTS token '%s'", btts)
	}

	answer := "No"
	if scored {
		answer = "Yes"
	}
	return types.NewResult(sel, outcomeStatus(result == actual && bttsOK), "Result=%s, BTTS=%s", actual, answer)
}

// resultOverUnder has no push: a total equal to the line fails the
// over/under leg.
func resultOverUnder(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	if sel.Line == nil {
		return types.NewResult(sel, types.StatusNotSupported, "Requires line")
	}
	result, ou, ok := strings.Cut(sel.Pick, "/")
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be RESULT/OU, e.g. HOME/OVER")
	}
	s := *o.FullTime
	total, line := float64(s.Total()), *sel.Line

	var ouOK bool
	switch ou {
	case markets.PickOver:
		ouOK = total > line
	case markets.PickUnder:
		ouOK = total < line
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Cannot parse pick '%s'", sel.Pick)
	}
	actual := category(s)

	return types.NewResult(sel, outcomeStatus(result == actual && ouOK), "Result=%s, Total=%d, line=%s",
		actual, s.Total(), types.FormatLine(line))
}

// marginOfVictory accepts DRAW, SIDE:N or SIDE:N+.
func marginOfVictory(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	s := *o.FullTime
	if sel.Pick == categoryDraw {
		return types.NewResult(sel, outcomeStatus(s.Home == s.Away), "Score=%s", s)
	}

	team, margin, ok := strings.Cut(sel.Pick, ":")
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be DRAW or TEAM:N (e.g. HOME:2, AWAY:3+)")
	}
	side := types.Side(team)
	if !side.Valid() {
		return types.NewResult(sel, types.StatusNotSupported, "Team token must be HOME or AWAY")
	}
	matches, ok := countPredicate(margin)
	if !ok {
		return types.NewResult(sel, types.StatusNotSupported, "Cannot parse margin '%s'", margin)
	}
	actual := s.For(side) - s.Against(side)

	return types.NewResult(sel, outcomeStatus(matches(actual)), "Score=%s, margin=%d", s, actual)
}

func firstTeamToScore(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	return scorer(sel, o.FirstToScore, "First")
}

func lastTeamToScore(sel types.Selection, o *types.MatchOutcome) types.SelectionResult {
	return scorer(sel, o.LastToScore, "Last")
}

func scorer(sel types.Selection, actual types.Side, label string) types.SelectionResult {
	switch sel.Pick {
	case markets.PickHome, markets.PickAway, markets.PickNone:
	default:
		return types.NewResult(sel, types.StatusNotSupported, "Pick must be HOME, AWAY, or NONE")
	}
	if actual == "" {
		return types.NewResult(sel, types.StatusPending, "Missing goal-event data")
	}

	return types.NewResult(sel, outcomeStatus(sel.Pick == string(actual)), "%s scorer: %s", label, actual)
}
