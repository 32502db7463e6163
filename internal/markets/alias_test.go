package markets

import (
	"testing"

	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "already-normalized", label: "MATCH_WINNER", want: "MATCH_WINNER"},
		{name: "lowercase-spaces", label: "both teams to score", want: "BOTH_TEAMS_TO_SCORE"},
		{name: "slash-and-parens", label: "Goals Over/Under (1st Half)", want: "GOALS_OVER_UNDER_1ST_HALF"},
		{name: "repeated-punctuation", label: "  HT -- FT ", want: "HT_FT"},
		{name: "apostrophe-and-question", label: "Who'll win?", want: "WHO_LL_WIN"},
		{name: "dots-and-commas", label: "Team.Total,Goals", want: "TEAM_TOTAL_GOALS"},
		{name: "empty", label: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.label))
		})
	}
}

func TestResolve_Aliases(t *testing.T) {
	tests := []struct {
		label string
		want  types.Market
	}{
		{label: "1X2", want: types.MarketMatchWinner},
		{label: "Moneyline", want: types.MarketMatchWinner},
		{label: "Home/Away", want: types.MarketMatchWinner},
		{label: "DC", want: types.MarketDoubleChance},
		{label: "dnb", want: types.MarketDrawNoBet},
		{label: "Goals Over/Under", want: types.MarketOverUnder},
		{label: "GG/NG", want: types.MarketBTTS},
		{label: "Total - Home", want: types.MarketTeamOverUnder},
		{label: "HT 1X2", want: types.MarketHTMatchWinner},
		{label: "2H O/U", want: types.Market2HOverUnder},
		{label: "HT/FT Double", want: types.MarketHTFT},
		{label: "CORNERS_OU", want: types.MarketCornersOverUnder},
		{label: "Home Team Yellow Cards", want: types.MarketTeamCardsOverUnder},
		{label: "3-Way Handicap", want: types.MarketHandicapResult},
		{label: "Asian Handicap First Half", want: types.MarketHTAsianHandicap},
		{label: "Result/Total Goals", want: types.MarketResultOverUnder},
		{label: "Winning Margin", want: types.MarketMarginOfVictory},
		{label: "Shots On Target", want: types.MarketShotsOnTargetOverUnder},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.label))
		})
	}
}

func TestResolve_CanonicalIsIdempotent(t *testing.T) {
	for _, m := range types.AllMarkets() {
		assert.Equal(t, m, Resolve(string(m)), "resolving %s", m)
		assert.Equal(t, m, Resolve(string(Resolve(string(m)))))
	}
}

func TestResolve_Unrecognized(t *testing.T) {
	assert.Equal(t, types.MarketUnrecognized, Resolve("EXOTIC_SUPER_MARKET"))
	assert.Equal(t, types.MarketUnrecognized, Resolve(""))
	assert.Equal(t, types.MarketUnrecognized, Resolve("player to be booked"))
}

func TestImpliedTeam(t *testing.T) {
	tests := []struct {
		label string
		want  types.Side
	}{
		{label: "HOME_TEAM_OVER_UNDER", want: types.SideHome},
		{label: "Total Away", want: types.SideAway},
		{label: "Clean Sheet - Home", want: types.SideHome},
		{label: "AWAY_CLEAN_SHEET", want: types.SideAway},
		{label: "Away Team Total Corners", want: types.SideAway},
		{label: "TEAM_OVER_UNDER", want: ""},
		// Not team-scoped: the HOME token is part of the market name.
		{label: "Home/Away", want: ""},
		{label: "HOME_WIN_TO_NIL", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ImpliedTeam(tt.label))
		})
	}
}

func TestAliasTable_TargetsAreCanonical(t *testing.T) {
	for alias, m := range marketAliases {
		assert.True(t, m.IsKnown(), "alias %s points at unknown market %s", alias, m)
		assert.Equal(t, alias, NormalizeKey(alias), "alias %s is not a normalized key", alias)
	}
}
