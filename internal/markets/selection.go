package markets

import (
	"strings"

	"github.com/mselser95/betslip-validator/pkg/types"
)

// Row is one wager as submitted by a client, before normalization.
type Row struct {
	FixtureID int64    `json:"fixture_id"`
	Market    string   `json:"market"`
	Pick      string   `json:"pick"`
	Line      *float64 `json:"line,omitempty"`
	Team      string   `json:"team,omitempty"`
}

// BuildSelection resolves a row's market label and team. The pick is left as
// submitted; settlement normalizes and validates it so that a bad pick is
// reported on its own selection instead of rejecting the slip.
func BuildSelection(row Row) types.Selection {
	market := Resolve(row.Market)

	sel := types.Selection{
		FixtureID: row.FixtureID,
		Market:    market,
		Pick:      strings.ToUpper(strings.TrimSpace(row.Pick)),
		Line:      row.Line,
		Team:      ParseSide(row.Team),
	}
	if market == types.MarketUnrecognized {
		sel.RawMarket = row.Market
		return sel
	}
	if sel.Team == "" {
		sel.Team = ImpliedTeam(row.Market)
	}

	return sel
}

// FromFragment turns a freeform parse result into a selection. The team
// argument only fills in a side the bet text did not name.
func FromFragment(fixtureID int64, text string, frag Fragment, team string) types.Selection {
	sel := types.Selection{
		FixtureID: fixtureID,
		Market:    frag.Market,
		Pick:      frag.Pick,
		Line:      frag.Line,
		Team:      frag.Team,
	}
	if frag.Market == types.MarketUnrecognized {
		sel.RawMarket = strings.TrimSpace(text)
	}
	if sel.Team == "" {
		sel.Team = ParseSide(team)
	}

	return sel
}

// ParseSide reads a team field: HOME/AWAY, H/A or 1/2. Anything else is kept
// uppercased so validation can report it.
func ParseSide(raw string) types.Side {
	switch key := strings.ToUpper(strings.TrimSpace(raw)); key {
	case "":
		return ""
	case "HOME", "H", "1":
		return types.SideHome
	case "AWAY", "A", "2":
		return types.SideAway
	default:
		return types.Side(key)
	}
}

// FlipSides rewrites a selection placed against a fixture whose home and away
// teams were submitted in reverse order. Team, side tokens in the pick and
// score orientation are swapped; the handicap line follows the chosen side,
// except for the three-way handicap where it is always applied to home.
func FlipSides(sel types.Selection) types.Selection {
	if sel.Market == types.MarketUnrecognized {
		return sel
	}
	if canonical, err := NormalizePick(sel.Market, sel.Pick); err == nil {
		sel.Pick = canonical
	}

	sel.Team = sel.Team.Opposite()

	switch sel.Market {
	case types.MarketCorrectScore, types.MarketHTCorrectScore, types.Market2HCorrectScore:
		if home, away, ok := splitScore(sel.Pick); ok {
			sel.Pick = away + ":" + home
		}
	case types.MarketDoubleChance, types.MarketHTDoubleChance, types.Market2HDoubleChance:
		switch sel.Pick {
		case "1X":
			sel.Pick = "X2"
		case "X2":
			sel.Pick = "1X"
		}
	case types.MarketHandicapResult:
		sel.Pick = flipTokens(sel.Pick)
		if sel.Line != nil {
			sel.Line = types.Float(-*sel.Line)
		}
	default:
		sel.Pick = flipTokens(sel.Pick)
	}

	return sel
}

// flipTokens swaps HOME and AWAY inside a pick such as "HOME/DRAW" or "AWAY:2".
func flipTokens(pick string) string {
	var b strings.Builder
	token := strings.Builder{}
	flush := func() {
		switch t := token.String(); t {
		case PickHome:
			b.WriteString(PickAway)
		case PickAway:
			b.WriteString(PickHome)
		default:
			b.WriteString(t)
		}
		token.Reset()
	}

	for _, r := range pick {
		if r == '/' || r == ':' {
			flush()
			b.WriteRune(r)
			continue
		}
		token.WriteRune(r)
	}
	flush()

	return b.String()
}
