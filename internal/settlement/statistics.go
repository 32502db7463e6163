package settlement

import (
	"github.com/mselser95/betslip-validator/pkg/types"
)

// counter picks one figure out of a team's statistics.
type counter func(types.TeamStatistics) *int

func corners(t types.TeamStatistics) *int       { return t.Corners }
func shots(t types.TeamStatistics) *int         { return t.Shots }
func shotsOnTarget(t types.TeamStatistics) *int { return t.ShotsOnTarget }
func fouls(t types.TeamStatistics) *int         { return t.Fouls }
func offsides(t types.TeamStatistics) *int      { return t.Offsides }

// cards counts yellow and red cards together; either being unknown makes the
// sum unknown.
func cards(t types.TeamStatistics) *int {
	if t.YellowCards == nil || t.RedCards == nil {
		return nil
	}
	return types.Int(*t.YellowCards + *t.RedCards)
}

func matchTotal(stats *types.MatchStatistics, c counter) *int {
	home, away := c(stats.Home), c(stats.Away)
	if home == nil || away == nil {
		return nil
	}
	return types.Int(*home + *away)
}

func settleStatistic(sel types.Selection, value *int, label string) types.SelectionResult {
	if value == nil {
		return types.NewResult(sel, types.StatusPending, "Missing statistics for %s", label)
	}
	return settleLine(sel, *value, label)
}

// totalStatistic settles an over/under on the sum of both teams' figures.
func totalStatistic(c counter, label string) func(types.Selection, *types.MatchStatistics) types.SelectionResult {
	return func(sel types.Selection, stats *types.MatchStatistics) types.SelectionResult {
		return settleStatistic(sel, matchTotal(stats, c), label)
	}
}

// teamStatistic settles an over/under on the selected team's figure.
func teamStatistic(c counter, label string) func(types.Selection, *types.MatchStatistics) types.SelectionResult {
	return func(sel types.Selection, stats *types.MatchStatistics) types.SelectionResult {
		if res, ok := requireTeam(sel); !ok {
			return res
		}
		return settleStatistic(sel, c(stats.Side(sel.Team)), string(sel.Team)+" "+label)
	}
}
