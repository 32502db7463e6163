package markets

import (
	"testing"

	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		market types.Market
		pick   string
		line   *float64
		team   types.Side
	}{
		// Prefixed over/under
		{name: "ht-over", text: "HT OVER 1.5", market: types.MarketHTOverUnder, pick: "OVER", line: types.Float(1.5)},
		{name: "2h-under", text: "2H UNDER 1.5", market: types.Market2HOverUnder, pick: "UNDER", line: types.Float(1.5)},
		{name: "corner-over", text: "CORNER OVER 9.5", market: types.MarketCornersOverUnder, pick: "OVER", line: types.Float(9.5)},
		{name: "cards-short", text: "cards u4.5", market: types.MarketCardsOverUnder, pick: "UNDER", line: types.Float(4.5)},
		{name: "sot", text: "SOT OVER 8.5", market: types.MarketShotsOnTargetOverUnder, pick: "OVER", line: types.Float(8.5)},
		{name: "team-goals", text: "HOME OVER 1.5", market: types.MarketTeamOverUnder, pick: "OVER", line: types.Float(1.5), team: types.SideHome},
		{name: "team-corners", text: "2 CORNERS OVER 4.5", market: types.MarketTeamCornersOverUnder, pick: "OVER", line: types.Float(4.5), team: types.SideAway},
		{name: "team-corner-unsided", text: "TEAM CORNER OVER 5.5", market: types.MarketTeamCornersOverUnder, pick: "OVER", line: types.Float(5.5)},
		{name: "team1-cards", text: "TEAM1 CARDS UNDER 2.5", market: types.MarketTeamCardsOverUnder, pick: "UNDER", line: types.Float(2.5), team: types.SideHome},
		{name: "both-halves", text: "BOTH HALVES UNDER 1.5", market: types.MarketBothHalvesOverUnder, pick: "UNDER", line: types.Float(1.5)},

		// Combos
		{name: "result-over", text: "1/OVER 2.5", market: types.MarketResultOverUnder, pick: "HOME/OVER", line: types.Float(2.5)},
		{name: "result-under-amp", text: "X & U 2.5", market: types.MarketResultOverUnder, pick: "DRAW/UNDER", line: types.Float(2.5)},
		{name: "result-gg", text: "1&GG", market: types.MarketResultBTTS, pick: "HOME/YES"},
		{name: "result-ng", text: "2/NG", market: types.MarketResultBTTS, pick: "AWAY/NO"},

		// Handicaps
		{name: "ah-prefixed", text: "AH HOME -1.5", market: types.MarketAsianHandicap, pick: "HOME", line: types.Float(-1.5)},
		{name: "hc-digits", text: "HC 1 -1", market: types.MarketAsianHandicap, pick: "HOME", line: types.Float(-1)},
		{name: "bare-handicap", text: "HOME -1.5", market: types.MarketAsianHandicap, pick: "HOME", line: types.Float(-1.5)},
		{name: "bare-handicap-plus", text: "2 +0.5", market: types.MarketAsianHandicap, pick: "AWAY", line: types.Float(0.5)},
		{name: "ht-ah", text: "HT AH 2 +1", market: types.MarketHTAsianHandicap, pick: "AWAY", line: types.Float(1)},
		{name: "european", text: "EH X -1", market: types.MarketHandicapResult, pick: "DRAW", line: types.Float(-1)},

		// Half-scoped
		{name: "ht-result", text: "HT 1", market: types.MarketHTMatchWinner, pick: "HOME"},
		{name: "2h-draw", text: "2H X", market: types.Market2HMatchWinner, pick: "DRAW"},
		{name: "ht-score", text: "HT 2:1", market: types.MarketHTCorrectScore, pick: "2:1"},
		{name: "ht-gg", text: "HT GG", market: types.MarketHTBTTS, pick: "YES"},
		{name: "2h-btts-no", text: "2H BTTS NO", market: types.Market2HBTTS, pick: "NO"},
		{name: "ht-double-chance", text: "HT 1X", market: types.MarketHTDoubleChance, pick: "1X"},
		{name: "2h-even", text: "2H EVEN", market: types.Market2HOddEven, pick: "EVEN"},
		{name: "ht-dnb", text: "HT DNB 2", market: types.MarketHTDrawNoBet, pick: "AWAY"},

		// Bare forms
		{name: "bare-over", text: "OVER 2.5", market: types.MarketOverUnder, pick: "OVER", line: types.Float(2.5)},
		{name: "bare-over-glued", text: "O2.5", market: types.MarketOverUnder, pick: "OVER", line: types.Float(2.5)},
		{name: "bare-over-comma", text: "u 3,5", market: types.MarketOverUnder, pick: "UNDER", line: types.Float(3.5)},
		{name: "bare-score", text: "2:1", market: types.MarketCorrectScore, pick: "2:1"},
		{name: "cs-prefixed", text: "CS 2-2", market: types.MarketCorrectScore, pick: "2:2"},
		{name: "exact", text: "EXACT 3", market: types.MarketExactGoals, pick: "3"},
		{name: "exact-plus", text: "exact goals 4+", market: types.MarketExactGoals, pick: "4+"},
		{name: "team-exact", text: "AWAY EXACT 2", market: types.MarketTeamExactGoals, pick: "2", team: types.SideAway},
		{name: "multi", text: "2-4", market: types.MarketMultiGoals, pick: "2-4"},
		{name: "margin", text: "HOME BY 2", market: types.MarketMarginOfVictory, pick: "HOME:2"},
		{name: "margin-plus", text: "1 BY 3+", market: types.MarketMarginOfVictory, pick: "HOME:3+"},
		{name: "ht-ft", text: "1/X", market: types.MarketHTFT, pick: "HOME/DRAW"},
		{name: "ht-ft-prefixed", text: "HT/FT 2-2", market: types.MarketHTFT, pick: "AWAY/AWAY"},

		// Literals
		{name: "literal-home", text: "1", market: types.MarketMatchWinner, pick: "HOME"},
		{name: "literal-draw", text: "draw", market: types.MarketMatchWinner, pick: "DRAW"},
		{name: "literal-double-chance", text: "12", market: types.MarketDoubleChance, pick: "12"},
		{name: "literal-gg", text: "GG", market: types.MarketBTTS, pick: "YES"},
		{name: "literal-odd", text: "odd", market: types.MarketOddEven, pick: "ODD"},
		{name: "literal-dnb", text: "DNB 1", market: types.MarketDrawNoBet, pick: "HOME"},
		{name: "literal-win-to-nil", text: "Away Win To Nil", market: types.MarketWinToNil, pick: "AWAY"},
		{name: "literal-clean-sheet", text: "HOME CLEAN SHEET", market: types.MarketCleanSheet, pick: "YES", team: types.SideHome},
		{name: "literal-first-goal", text: "FIRST GOAL AWAY", market: types.MarketFirstTeamScore, pick: "AWAY"},
		{name: "literal-highest-half", text: "HIGHEST HALF 2ND", market: types.MarketHighestScoringHalf, pick: "SECOND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := Parse(tt.text)
			assert.Equal(t, tt.market, frag.Market, "matcher %s", frag.Matcher)
			assert.Equal(t, tt.pick, frag.Pick)
			assert.Equal(t, tt.team, frag.Team)
			if tt.line == nil {
				assert.Nil(t, frag.Line)
				return
			}
			require.NotNil(t, frag.Line)
			assert.InDelta(t, *tt.line, *frag.Line, 1e-9)
		})
	}
}

// "HT OVER 1.5" must never be read as a full-time over/under.
func TestParse_PrefixedOverUnderBeatsBare(t *testing.T) {
	frag := Parse("HT OVER 1.5")
	assert.Equal(t, types.MarketHTOverUnder, frag.Market)
	assert.Equal(t, "prefixed-over-under", frag.Matcher)
	require.NotNil(t, frag.Line)
	assert.Equal(t, 1.5, *frag.Line)
}

func TestParse_Unrecognized(t *testing.T) {
	tests := []string{
		"",
		"PLAYER TO SCORE ANYTIME",
		"3-1",          // descending range is neither multi-goals nor a colon score
		"XYZ OVER 2.5", // unknown prefix
		"OVER",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			frag := Parse(text)
			assert.Equal(t, types.MarketUnrecognized, frag.Market)
			assert.Equal(t, "unrecognized", frag.Matcher)
		})
	}
}

func TestParse_UnrecognizedKeepsOriginalText(t *testing.T) {
	frag := Parse("  Anytime Scorer Messi ")
	assert.Equal(t, "Anytime Scorer Messi", frag.Pick)
}

// Every parsed fragment must be a selection the pick normalizer accepts.
func TestParse_FragmentsNormalize(t *testing.T) {
	inputs := []string{
		"HT OVER 1.5", "1/OVER 2.5", "1&GG", "AH HOME -1.5", "EH 1 -1", "HT 2:1",
		"2H X", "O2.5", "2:1", "EXACT 3", "2-4", "HOME BY 2", "1/X", "12", "NG",
		"HOME CLEAN SHEET", "HIGHEST HALF TIE", "HOME WIN BOTH HALVES",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			frag := Parse(text)
			require.NotEqual(t, types.MarketUnrecognized, frag.Market)

			pick, err := NormalizePick(frag.Market, frag.Pick)
			require.NoError(t, err)
			assert.Equal(t, frag.Pick, pick)
		})
	}
}

func TestCascade_PrefixedBeforeShadowed(t *testing.T) {
	index := make(map[string]int, len(cascade))
	for i, m := range cascade {
		_, dup := index[m.name]
		require.False(t, dup, "duplicate matcher name %s", m.name)
		index[m.name] = i
	}

	for i, m := range cascade {
		for _, shadowed := range m.shadows {
			j, ok := index[shadowed]
			require.True(t, ok, "%s shadows unknown matcher %s", m.name, shadowed)
			assert.Less(t, i, j, "%s must be tried before %s", m.name, shadowed)
		}
	}
}

// Each half prefix combined with a bare form must be claimed by a prefixed
// matcher, never by the bare one it shadows.
func TestCascade_HalfPrefixesNeverFallToBareMatchers(t *testing.T) {
	bare := map[string]bool{
		"bare-over-under": true, "bare-correct-score": true, "literal": true,
		"bare-handicap": true, "multi-goals": true, "bare-ht-ft": true,
	}
	suffixes := []string{"OVER 1.5", "U0.5", "1", "X", "2:0", "GG", "1X", "ODD"}

	for _, prefix := range []string{"HT", "1H", "2H", "FIRST HALF", "SECOND HALF"} {
		for _, suffix := range suffixes {
			frag := Parse(prefix + " " + suffix)
			assert.False(t, bare[frag.Matcher], "%s %s matched %s", prefix, suffix, frag.Matcher)
			assert.NotEqual(t, types.MarketUnrecognized, frag.Market, "%s %s", prefix, suffix)
		}
	}
}
