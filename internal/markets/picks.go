package markets

import (
	"sort"
	"strings"

	"github.com/mselser95/betslip-validator/pkg/types"
)

// Canonical pick tokens.
const (
	PickHome   = "HOME"
	PickDraw   = "DRAW"
	PickAway   = "AWAY"
	PickOver   = "OVER"
	PickUnder  = "UNDER"
	PickYes    = "YES"
	PickNo     = "NO"
	PickOdd    = "ODD"
	PickEven   = "EVEN"
	PickNone   = "NONE"
	PickFirst  = "FIRST"
	PickSecond = "SECOND"
	PickEqual  = "EQUAL"
)

//nolint:gochecknoglobals // static lookup data
var (
	resultPicks = map[string]string{
		"1": PickHome, "H": PickHome, PickHome: PickHome,
		"X": PickDraw, "D": PickDraw, PickDraw: PickDraw,
		"2": PickAway, "A": PickAway, PickAway: PickAway,
	}

	overUnderPicks = map[string]string{
		PickOver: PickOver, "O": PickOver,
		PickUnder: PickUnder, "U": PickUnder,
	}

	yesNoPicks = map[string]string{
		PickYes: PickYes, "Y": PickYes, "GG": PickYes,
		PickNo: PickNo, "N": PickNo, "NG": PickNo,
	}

	homeAwayPicks = map[string]string{
		"1": PickHome, PickHome: PickHome,
		"2": PickAway, PickAway: PickAway,
	}

	scorerPicks = map[string]string{
		"1": PickHome, PickHome: PickHome,
		"2": PickAway, PickAway: PickAway,
		PickNone: PickNone, "NO_GOAL": PickNone, "NOGOAL": PickNone,
	}

	oddEvenPicks = map[string]string{PickOdd: PickOdd, PickEven: PickEven}

	doubleChancePicks = map[string]string{"1X": "1X", "X2": "X2", "12": "12"}

	halfPicks = map[string]string{
		PickFirst: PickFirst, "1ST": PickFirst, "1": PickFirst,
		PickSecond: PickSecond, "2ND": PickSecond, "2": PickSecond,
		PickEqual: PickEqual, "TIE": PickEqual, "X": PickEqual,
	}
)

// NormalizePick maps a free-text pick onto the canonical token for market m.
// The returned error is a *types.ValidationError naming the offending token.
// Picks that are already canonical are returned unchanged.
func NormalizePick(m types.Market, pick string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(pick))

	switch m {
	case types.MarketMatchWinner, types.MarketHTMatchWinner, types.Market2HMatchWinner,
		types.MarketHandicapResult,
		types.MarketMostCorners, types.MarketMostCards, types.MarketMostOffsides,
		types.MarketMostFouls, types.MarketMostShots, types.MarketMostShotsOnTarget:
		return lookupPick(m, pick, compact(key), resultPicks)

	case types.MarketDoubleChance, types.MarketHTDoubleChance, types.Market2HDoubleChance:
		return lookupPick(m, pick, compact(key), doubleChancePicks)

	case types.MarketDrawNoBet, types.MarketHTDrawNoBet, types.Market2HDrawNoBet,
		types.MarketWinToNil, types.MarketAsianHandicap, types.MarketHTAsianHandicap,
		types.MarketWinEitherHalf, types.MarketWinBothHalves:
		return lookupPick(m, pick, compact(key), homeAwayPicks)

	case types.MarketOverUnder, types.MarketHTOverUnder, types.Market2HOverUnder,
		types.MarketTeamOverUnder, types.MarketBothHalvesOverUnder,
		types.MarketCornersOverUnder, types.MarketTeamCornersOverUnder,
		types.MarketCardsOverUnder, types.MarketTeamCardsOverUnder,
		types.MarketShotsOverUnder, types.MarketShotsOnTargetOverUnder,
		types.MarketFoulsOverUnder, types.MarketOffsidesOverUnder:
		return lookupPick(m, pick, compact(key), overUnderPicks)

	case types.MarketBTTS, types.MarketHTBTTS, types.Market2HBTTS,
		types.MarketCleanSheet, types.MarketScoreInBothHalves:
		return lookupPick(m, pick, compact(key), yesNoPicks)

	case types.MarketOddEven, types.MarketHTOddEven, types.Market2HOddEven:
		return lookupPick(m, pick, compact(key), oddEvenPicks)

	case types.MarketFirstTeamScore, types.MarketLastTeamScore:
		return lookupPick(m, pick, compact(key), scorerPicks)

	case types.MarketHighestScoringHalf:
		return lookupPick(m, pick, compact(key), halfPicks)

	case types.MarketCorrectScore, types.MarketHTCorrectScore, types.Market2HCorrectScore:
		return normalizeScorePick(m, pick, compact(key))

	case types.MarketHTFT:
		return normalizePairPick(m, pick, compact(key), resultPicks, resultPicks)

	case types.MarketResultBTTS:
		return normalizePairPick(m, pick, compact(key), resultPicks, yesNoPicks)

	case types.MarketResultOverUnder:
		return normalizePairPick(m, pick, compact(key), resultPicks, overUnderPicks)

	case types.MarketMarginOfVictory:
		// "HOME 2" and "HOME:2" are the same pick.
		return strings.Join(strings.Fields(key), ":"), nil

	case types.MarketExactGoals, types.MarketTeamExactGoals, types.MarketMultiGoals:
		return compact(key), nil

	default:
		return key, nil
	}
}

func compact(key string) string {
	return strings.ReplaceAll(key, " ", "")
}

func lookupPick(m types.Market, raw string, key string, vocabulary map[string]string) (string, error) {
	canonical, ok := vocabulary[key]
	if !ok {
		return "", &types.ValidationError{
			Market: m,
			Field:  "pick",
			Value:  raw,
			Reason: vocabularyHint(vocabulary),
		}
	}

	return canonical, nil
}

// vocabularyHint lists the canonical picks of a vocabulary, e.g.
// "must be one of AWAY, DRAW, HOME".
func vocabularyHint(vocabulary map[string]string) string {
	seen := make(map[string]bool, len(vocabulary))
	picks := make([]string, 0, len(vocabulary))
	for _, canonical := range vocabulary {
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		picks = append(picks, canonical)
	}
	sort.Strings(picks)

	return "must be one of " + strings.Join(picks, ", ")
}

func normalizeScorePick(m types.Market, raw string, key string) (string, error) {
	home, away, ok := splitScore(strings.ReplaceAll(key, "-", ":"))
	if !ok {
		return "", &types.ValidationError{
			Market: m,
			Field:  "pick",
			Value:  raw,
			Reason: "score must be H:A with non-negative integers",
		}
	}

	return home + ":" + away, nil
}

// splitScore splits "H:A" into two digit-only components.
func splitScore(s string) (home string, away string, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return "", "", false
	}

	return parts[0], parts[1], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizePairPick validates a two-part pick such as "1/X" or "HOME-YES",
// each half against its own vocabulary, and re-joins it with "/".
func normalizePairPick(m types.Market, raw string, key string, first, second map[string]string) (string, error) {
	parts := strings.Split(strings.ReplaceAll(key, "-", "/"), "/")
	if len(parts) != 2 {
		return "", &types.ValidationError{
			Market: m,
			Field:  "pick",
			Value:  raw,
			Reason: "expected two tokens separated by / or -",
		}
	}

	left, ok := first[parts[0]]
	if !ok {
		return "", &types.ValidationError{Market: m, Field: "pick", Value: raw, Reason: "unknown token " + parts[0]}
	}
	right, ok := second[parts[1]]
	if !ok {
		return "", &types.ValidationError{Market: m, Field: "pick", Value: raw, Reason: "unknown token " + parts[1]}
	}

	return left + "/" + right, nil
}
