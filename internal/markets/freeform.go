package markets

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mselser95/betslip-validator/pkg/types"
)

// Fragment is what the freeform parser infers from a single bet string.
type Fragment struct {
	Market types.Market `json:"market"`
	Pick   string       `json:"pick"`
	Line   *float64     `json:"line,omitempty"`
	Team   types.Side   `json:"team,omitempty"`

	// Matcher names the cascade entry that produced the fragment, or
	// "unrecognized" for the fallback.
	Matcher string `json:"matcher"`
}

// matcher is one entry of the parse cascade. A prefixed matcher lists the
// bare matchers that would also accept its input once the prefix is
// dropped; it must come before all of them.
type matcher struct {
	name    string
	shadows []string
	match   func(text string) (Fragment, bool)
}

const (
	numberPattern = `(\d+(?:\.\d+)?)`
	signedPattern = `([+-]?\d+(?:\.\d+)?)`
	ouPattern     = `(OVER|UNDER|O|U)`
	resultPattern = `(1|X|2|HOME|DRAW|AWAY)`
	sidePattern   = `(1|2|HOME|AWAY)`
	halfPattern   = `(HT|1H|FIRST HALF|1ST HALF|2H|SECOND HALF|2ND HALF)`
)

//nolint:gochecknoglobals // compiled once
var (
	prefixedOURe   = regexp.MustCompile(`^(.+?) ` + ouPattern + ` ?` + numberPattern + `$`)
	resultOURe     = regexp.MustCompile(`^` + resultPattern + ` ?[/&+] ?` + ouPattern + ` ?` + numberPattern + `$`)
	resultBTTSRe   = regexp.MustCompile(`^` + resultPattern + ` ?[/&+] ?(GG|NG|YES|NO|BTTS)$`)
	asianHCRe      = regexp.MustCompile(`^(?:AH|HC|HANDICAP|ASIAN HANDICAP) ` + sidePattern + ` ?` + signedPattern + `$`)
	htAsianHCRe    = regexp.MustCompile(`^(?:HT|1H) (?:AH|HC) ` + sidePattern + ` ?` + signedPattern + `$`)
	europeanHCRe   = regexp.MustCompile(`^(?:EH|EURO HC|3W HC) ` + resultPattern + ` ?` + signedPattern + `$`)
	bareHCRe       = regexp.MustCompile(`^` + sidePattern + ` ([+-]\d+(?:\.\d+)?)$`)
	halfResultRe   = regexp.MustCompile(`^` + halfPattern + ` ` + resultPattern + `$`)
	halfScoreRe    = regexp.MustCompile(`^` + halfPattern + ` (\d+)[:-](\d+)$`)
	halfBTTSRe     = regexp.MustCompile(`^` + halfPattern + ` (GG|NG|BTTS|BTTS YES|BTTS NO)$`)
	halfDCRe       = regexp.MustCompile(`^` + halfPattern + ` (1X|X2|12)$`)
	halfOddEvenRe  = regexp.MustCompile(`^` + halfPattern + ` (ODD|EVEN)$`)
	halfDNBRe      = regexp.MustCompile(`^` + halfPattern + ` DNB ` + sidePattern + `$`)
	bareOURe       = regexp.MustCompile(`^` + ouPattern + ` ?` + numberPattern + `$`)
	prefixedCSRe   = regexp.MustCompile(`^(?:CS|CORRECT SCORE) (\d+)[:-](\d+)$`)
	bareCSRe       = regexp.MustCompile(`^(\d+):(\d+)$`)
	teamExactRe    = regexp.MustCompile(`^` + sidePattern + ` EXACT (\d+\+?)$`)
	exactRe        = regexp.MustCompile(`^(?:EXACT|EXACTLY|EXACT GOALS) (\d+\+?)$`)
	multiRe        = regexp.MustCompile(`^(?:MULTI |MULTIGOALS |MULTI GOALS )?(\d+)-(\d+)$`)
	marginRe       = regexp.MustCompile(`^` + sidePattern + ` BY (\d+\+?)$`)
	prefixedHTFTRe = regexp.MustCompile(`^(?:HT ?/ ?FT|HTFT) ` + resultPattern + ` ?[/-] ?` + resultPattern + `$`)
	bareHTFTRe     = regexp.MustCompile(`^` + resultPattern + ` ?/ ?` + resultPattern + `$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ouTarget is where a prefix in front of OVER/UNDER sends the bet.
type ouTarget struct {
	market types.Market
	team   types.Side
}

//nolint:gochecknoglobals // static lookup data
var overUnderPrefixes = map[string]ouTarget{
	"HT":          {market: types.MarketHTOverUnder},
	"1H":          {market: types.MarketHTOverUnder},
	"FIRST HALF":  {market: types.MarketHTOverUnder},
	"1ST HALF":    {market: types.MarketHTOverUnder},
	"2H":          {market: types.Market2HOverUnder},
	"SECOND HALF": {market: types.Market2HOverUnder},
	"2ND HALF":    {market: types.Market2HOverUnder},
	"BOTH HALVES": {market: types.MarketBothHalvesOverUnder},

	"CORNER":          {market: types.MarketCornersOverUnder},
	"CORNERS":         {market: types.MarketCornersOverUnder},
	"TOTAL CORNERS":   {market: types.MarketCornersOverUnder},
	"CARD":            {market: types.MarketCardsOverUnder},
	"CARDS":           {market: types.MarketCardsOverUnder},
	"BOOKINGS":        {market: types.MarketCardsOverUnder},
	"SHOTS":           {market: types.MarketShotsOverUnder},
	"SOT":             {market: types.MarketShotsOnTargetOverUnder},
	"SHOTS ON TARGET": {market: types.MarketShotsOnTargetOverUnder},
	"FOULS":           {market: types.MarketFoulsOverUnder},
	"OFFSIDES":        {market: types.MarketOffsidesOverUnder},

	"TEAM CORNER":  {market: types.MarketTeamCornersOverUnder},
	"TEAM CORNERS": {market: types.MarketTeamCornersOverUnder},
	"TEAM CARDS":   {market: types.MarketTeamCardsOverUnder},
}

//nolint:gochecknoinits // derived lookup data
func init() {
	sides := map[string]types.Side{
		"HOME": types.SideHome, "1": types.SideHome, "TEAM1": types.SideHome, "TEAM 1": types.SideHome,
		"AWAY": types.SideAway, "2": types.SideAway, "TEAM2": types.SideAway, "TEAM 2": types.SideAway,
	}
	for token, side := range sides {
		overUnderPrefixes[token] = ouTarget{market: types.MarketTeamOverUnder, team: side}
		for _, suffix := range []string{"CORNER", "CORNERS"} {
			overUnderPrefixes[token+" "+suffix] = ouTarget{market: types.MarketTeamCornersOverUnder, team: side}
		}
		for _, suffix := range []string{"CARD", "CARDS"} {
			overUnderPrefixes[token+" "+suffix] = ouTarget{market: types.MarketTeamCardsOverUnder, team: side}
		}
	}
}

// literal is a single-token bet resolved by table lookup.
type literal struct {
	market types.Market
	pick   string
	team   types.Side
}

//nolint:gochecknoglobals // static lookup data
var literalBets = map[string]literal{
	"1":    {market: types.MarketMatchWinner, pick: PickHome},
	"HOME": {market: types.MarketMatchWinner, pick: PickHome},
	"X":    {market: types.MarketMatchWinner, pick: PickDraw},
	"DRAW": {market: types.MarketMatchWinner, pick: PickDraw},
	"2":    {market: types.MarketMatchWinner, pick: PickAway},
	"AWAY": {market: types.MarketMatchWinner, pick: PickAway},

	"1X": {market: types.MarketDoubleChance, pick: "1X"},
	"X2": {market: types.MarketDoubleChance, pick: "X2"},
	"12": {market: types.MarketDoubleChance, pick: "12"},

	"GG":       {market: types.MarketBTTS, pick: PickYes},
	"BTTS":     {market: types.MarketBTTS, pick: PickYes},
	"BTTS YES": {market: types.MarketBTTS, pick: PickYes},
	"NG":       {market: types.MarketBTTS, pick: PickNo},
	"BTTS NO":  {market: types.MarketBTTS, pick: PickNo},

	"ODD":  {market: types.MarketOddEven, pick: PickOdd},
	"EVEN": {market: types.MarketOddEven, pick: PickEven},

	"DNB 1":    {market: types.MarketDrawNoBet, pick: PickHome},
	"DNB HOME": {market: types.MarketDrawNoBet, pick: PickHome},
	"1 DNB":    {market: types.MarketDrawNoBet, pick: PickHome},
	"DNB 2":    {market: types.MarketDrawNoBet, pick: PickAway},
	"DNB AWAY": {market: types.MarketDrawNoBet, pick: PickAway},
	"2 DNB":    {market: types.MarketDrawNoBet, pick: PickAway},

	"HOME WIN TO NIL": {market: types.MarketWinToNil, pick: PickHome},
	"1 WTN":           {market: types.MarketWinToNil, pick: PickHome},
	"AWAY WIN TO NIL": {market: types.MarketWinToNil, pick: PickAway},
	"2 WTN":           {market: types.MarketWinToNil, pick: PickAway},

	"HOME CLEAN SHEET": {market: types.MarketCleanSheet, pick: PickYes, team: types.SideHome},
	"CLEAN SHEET HOME": {market: types.MarketCleanSheet, pick: PickYes, team: types.SideHome},
	"AWAY CLEAN SHEET": {market: types.MarketCleanSheet, pick: PickYes, team: types.SideAway},
	"CLEAN SHEET AWAY": {market: types.MarketCleanSheet, pick: PickYes, team: types.SideAway},

	"FIRST GOAL HOME":   {market: types.MarketFirstTeamScore, pick: PickHome},
	"HOME SCORES FIRST": {market: types.MarketFirstTeamScore, pick: PickHome},
	"FIRST GOAL AWAY":   {market: types.MarketFirstTeamScore, pick: PickAway},
	"AWAY SCORES FIRST": {market: types.MarketFirstTeamScore, pick: PickAway},
	"FIRST GOAL NONE":   {market: types.MarketFirstTeamScore, pick: PickNone},
	"NO GOAL":           {market: types.MarketFirstTeamScore, pick: PickNone},
	"LAST GOAL HOME":    {market: types.MarketLastTeamScore, pick: PickHome},
	"HOME SCORES LAST":  {market: types.MarketLastTeamScore, pick: PickHome},
	"LAST GOAL AWAY":    {market: types.MarketLastTeamScore, pick: PickAway},
	"AWAY SCORES LAST":  {market: types.MarketLastTeamScore, pick: PickAway},
	"LAST GOAL NONE":    {market: types.MarketLastTeamScore, pick: PickNone},

	"HIGHEST HALF 1ST":    {market: types.MarketHighestScoringHalf, pick: PickFirst},
	"HIGHEST HALF FIRST":  {market: types.MarketHighestScoringHalf, pick: PickFirst},
	"1ST HALF HIGHEST":    {market: types.MarketHighestScoringHalf, pick: PickFirst},
	"HIGHEST HALF 2ND":    {market: types.MarketHighestScoringHalf, pick: PickSecond},
	"HIGHEST HALF SECOND": {market: types.MarketHighestScoringHalf, pick: PickSecond},
	"2ND HALF HIGHEST":    {market: types.MarketHighestScoringHalf, pick: PickSecond},
	"HIGHEST HALF EQUAL":  {market: types.MarketHighestScoringHalf, pick: PickEqual},
	"HIGHEST HALF TIE":    {market: types.MarketHighestScoringHalf, pick: PickEqual},

	"HOME WIN EITHER HALF":   {market: types.MarketWinEitherHalf, pick: PickHome},
	"AWAY WIN EITHER HALF":   {market: types.MarketWinEitherHalf, pick: PickAway},
	"HOME WIN BOTH HALVES":   {market: types.MarketWinBothHalves, pick: PickHome},
	"AWAY WIN BOTH HALVES":   {market: types.MarketWinBothHalves, pick: PickAway},
	"HOME SCORE BOTH HALVES": {market: types.MarketScoreInBothHalves, pick: PickYes, team: types.SideHome},
	"AWAY SCORE BOTH HALVES": {market: types.MarketScoreInBothHalves, pick: PickYes, team: types.SideAway},
}

// cascade is tried top to bottom; the first match wins.
//
//nolint:gochecknoglobals // static parser definition
var cascade = []matcher{
	{name: "prefixed-over-under", shadows: []string{"bare-over-under"}, match: matchPrefixedOverUnder},
	{name: "result-over-under", shadows: []string{"bare-over-under"}, match: matchResultOverUnder},
	{name: "result-btts", shadows: []string{"literal"}, match: matchResultBTTS},
	{name: "half-asian-handicap", shadows: []string{"asian-handicap", "bare-handicap"}, match: matchHalfAsianHandicap},
	{name: "asian-handicap", shadows: []string{"bare-handicap"}, match: matchAsianHandicap},
	{name: "european-handicap", match: matchEuropeanHandicap},
	{name: "bare-handicap", match: matchBareHandicap},
	{name: "half-result", shadows: []string{"literal"}, match: matchHalfResult},
	{name: "half-correct-score", shadows: []string{"bare-correct-score", "multi-goals"}, match: matchHalfCorrectScore},
	{name: "half-btts", shadows: []string{"literal"}, match: matchHalfBTTS},
	{name: "half-double-chance", shadows: []string{"literal"}, match: matchHalfDoubleChance},
	{name: "half-odd-even", shadows: []string{"literal"}, match: matchHalfOddEven},
	{name: "half-draw-no-bet", shadows: []string{"literal"}, match: matchHalfDrawNoBet},
	{name: "bare-over-under", match: matchBareOverUnder},
	{name: "prefixed-correct-score", shadows: []string{"bare-correct-score", "multi-goals"}, match: matchPrefixedCorrectScore},
	{name: "bare-correct-score", match: matchBareCorrectScore},
	{name: "team-exact-goals", shadows: []string{"exact-goals"}, match: matchTeamExactGoals},
	{name: "exact-goals", match: matchExactGoals},
	{name: "multi-goals", match: matchMultiGoals},
	{name: "margin", match: matchMargin},
	{name: "prefixed-ht-ft", shadows: []string{"bare-ht-ft"}, match: matchPrefixedHTFT},
	{name: "bare-ht-ft", match: matchBareHTFT},
	{name: "literal", match: matchLiteral},
}

// Parse infers market, pick, line and team from a bookmaker-style bet string
// such as "CORNER OVER 9.5", "HT 2:1" or "1/OVER 2.5". Input that no matcher
// accepts yields MarketUnrecognized with the original text as the pick.
func Parse(text string) Fragment {
	normalized := normalizeBetText(text)
	for _, m := range cascade {
		if frag, ok := m.match(normalized); ok {
			frag.Matcher = m.name
			return frag
		}
	}

	FreeformFallbacksTotal.Inc()
	return Fragment{
		Market:  types.MarketUnrecognized,
		Pick:    strings.TrimSpace(text),
		Matcher: "unrecognized",
	}
}

func normalizeBetText(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, " ")
	// Decimal commas: "O2,5".
	return strings.ReplaceAll(s, ",", ".")
}

func parseLine(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func ouPick(token string) string {
	return overUnderPicks[token]
}

func resultPick(token string) string {
	return resultPicks[token]
}

func sidePick(token string) string {
	return homeAwayPicks[token]
}

func halfMarket(token string, ht, sh types.Market) types.Market {
	switch token {
	case "2H", "SECOND HALF", "2ND HALF":
		return sh
	default:
		return ht
	}
}

func matchPrefixedOverUnder(s string) (Fragment, bool) {
	m := prefixedOURe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}
	target, ok := overUnderPrefixes[m[1]]
	if !ok {
		return Fragment{}, false
	}

	return Fragment{Market: target.market, Pick: ouPick(m[2]), Line: parseLine(m[3]), Team: target.team}, true
}

func matchResultOverUnder(s string) (Fragment, bool) {
	m := resultOURe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{
		Market: types.MarketResultOverUnder,
		Pick:   resultPick(m[1]) + "/" + ouPick(m[2]),
		Line:   parseLine(m[3]),
	}, true
}

func matchResultBTTS(s string) (Fragment, bool) {
	m := resultBTTSRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}
	btts := PickYes
	if m[2] == "NG" || m[2] == "NO" {
		btts = PickNo
	}

	return Fragment{Market: types.MarketResultBTTS, Pick: resultPick(m[1]) + "/" + btts}, true
}

func matchHalfAsianHandicap(s string) (Fragment, bool) {
	m := htAsianHCRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketHTAsianHandicap, Pick: sidePick(m[1]), Line: parseLine(m[2])}, true
}

func matchAsianHandicap(s string) (Fragment, bool) {
	m := asianHCRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketAsianHandicap, Pick: sidePick(m[1]), Line: parseLine(m[2])}, true
}

func matchEuropeanHandicap(s string) (Fragment, bool) {
	m := europeanHCRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketHandicapResult, Pick: resultPick(m[1]), Line: parseLine(m[2])}, true
}

// matchBareHandicap needs an explicit sign after a space so that ranges like
// "2-4" stay with the multi-goals matcher.
func matchBareHandicap(s string) (Fragment, bool) {
	m := bareHCRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketAsianHandicap, Pick: sidePick(m[1]), Line: parseLine(m[2])}, true
}

func matchHalfResult(s string) (Fragment, bool) {
	m := halfResultRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	market := halfMarket(m[1], types.MarketHTMatchWinner, types.Market2HMatchWinner)
	return Fragment{Market: market, Pick: resultPick(m[2])}, true
}

func matchHalfCorrectScore(s string) (Fragment, bool) {
	m := halfScoreRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	market := halfMarket(m[1], types.MarketHTCorrectScore, types.Market2HCorrectScore)
	return Fragment{Market: market, Pick: m[2] + ":" + m[3]}, true
}

func matchHalfBTTS(s string) (Fragment, bool) {
	m := halfBTTSRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}
	pick := PickYes
	if m[2] == "NG" || m[2] == "BTTS NO" {
		pick = PickNo
	}

	market := halfMarket(m[1], types.MarketHTBTTS, types.Market2HBTTS)
	return Fragment{Market: market, Pick: pick}, true
}

func matchHalfDoubleChance(s string) (Fragment, bool) {
	m := halfDCRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	market := halfMarket(m[1], types.MarketHTDoubleChance, types.Market2HDoubleChance)
	return Fragment{Market: market, Pick: m[2]}, true
}

func matchHalfOddEven(s string) (Fragment, bool) {
	m := halfOddEvenRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	market := halfMarket(m[1], types.MarketHTOddEven, types.Market2HOddEven)
	return Fragment{Market: market, Pick: m[2]}, true
}

func matchHalfDrawNoBet(s string) (Fragment, bool) {
	m := halfDNBRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	market := halfMarket(m[1], types.MarketHTDrawNoBet, types.Market2HDrawNoBet)
	return Fragment{Market: market, Pick: sidePick(m[2])}, true
}

func matchBareOverUnder(s string) (Fragment, bool) {
	m := bareOURe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketOverUnder, Pick: ouPick(m[1]), Line: parseLine(m[2])}, true
}

func matchPrefixedCorrectScore(s string) (Fragment, bool) {
	m := prefixedCSRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketCorrectScore, Pick: m[1] + ":" + m[2]}, true
}

func matchBareCorrectScore(s string) (Fragment, bool) {
	m := bareCSRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketCorrectScore, Pick: m[1] + ":" + m[2]}, true
}

func matchTeamExactGoals(s string) (Fragment, bool) {
	m := teamExactRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketTeamExactGoals, Pick: m[2], Team: types.Side(sidePick(m[1]))}, true
}

func matchExactGoals(s string) (Fragment, bool) {
	m := exactRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketExactGoals, Pick: m[1]}, true
}

// matchMultiGoals accepts "N-M" only as an ascending range; "2-1" reads as a
// score and is left unrecognized rather than guessed.
func matchMultiGoals(s string) (Fragment, bool) {
	m := multiRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}
	low, errLow := strconv.Atoi(m[1])
	high, errHigh := strconv.Atoi(m[2])
	if errLow != nil || errHigh != nil || low > high {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketMultiGoals, Pick: m[1] + "-" + m[2]}, true
}

func matchMargin(s string) (Fragment, bool) {
	m := marginRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketMarginOfVictory, Pick: sidePick(m[1]) + ":" + m[2]}, true
}

func matchPrefixedHTFT(s string) (Fragment, bool) {
	m := prefixedHTFTRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketHTFT, Pick: resultPick(m[1]) + "/" + resultPick(m[2])}, true
}

func matchBareHTFT(s string) (Fragment, bool) {
	m := bareHTFTRe.FindStringSubmatch(s)
	if m == nil {
		return Fragment{}, false
	}

	return Fragment{Market: types.MarketHTFT, Pick: resultPick(m[1]) + "/" + resultPick(m[2])}, true
}

func matchLiteral(s string) (Fragment, bool) {
	lit, ok := literalBets[s]
	if !ok {
		return Fragment{}, false
	}

	return Fragment{Market: lit.market, Pick: lit.pick, Team: lit.team}, true
}
