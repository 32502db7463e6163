package types

import "fmt"

// Period selects which score pair a market settles on.
type Period string

const (
	PeriodFullTime   Period = "FT"
	PeriodHalfTime   Period = "HT"
	PeriodSecondHalf Period = "2H"
)

// Label is the human form used in settlement reasons.
func (p Period) Label() string {
	switch p {
	case PeriodHalfTime:
		return "Halftime"
	case PeriodSecondHalf:
		return "2nd-half"
	default:
		return "Final"
	}
}

// Score is a home/away goal pair.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns the combined goals.
func (s Score) Total() int {
	return s.Home + s.Away
}

// For returns the goals of one side.
func (s Score) For(side Side) int {
	if side == SideAway {
		return s.Away
	}
	return s.Home
}

// Against returns the goals conceded by one side.
func (s Score) Against(side Side) int {
	return s.For(side.Opposite())
}

// Winner returns HOME, AWAY or an empty Side for a draw.
func (s Score) Winner() Side {
	switch {
	case s.Home > s.Away:
		return SideHome
	case s.Away > s.Home:
		return SideAway
	default:
		return ""
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%d:%d", s.Home, s.Away)
}

// MatchOutcome is the result record for one fixture as reported by the
// results provider. Nil scores mean the data is not available yet.
type MatchOutcome struct {
	FixtureID int64  `json:"fixture_id"`
	Status    string `json:"status"`

	FullTime  *Score `json:"full_time,omitempty"`
	HalfTime  *Score `json:"half_time,omitempty"`
	Penalties *Score `json:"penalties,omitempty"`

	// Empty when goal events are unavailable.
	FirstToScore Side `json:"first_to_score,omitempty"`
	LastToScore  Side `json:"last_to_score,omitempty"`
}

// ScoreFor returns the score pair of a period. The second half is derived
// from full time minus half time and needs both.
func (o *MatchOutcome) ScoreFor(p Period) (Score, bool) {
	switch p {
	case PeriodFullTime:
		if o.FullTime == nil {
			return Score{}, false
		}
		return *o.FullTime, true
	case PeriodHalfTime:
		if o.HalfTime == nil {
			return Score{}, false
		}
		return *o.HalfTime, true
	case PeriodSecondHalf:
		if o.FullTime == nil || o.HalfTime == nil {
			return Score{}, false
		}
		return Score{
			Home: o.FullTime.Home - o.HalfTime.Home,
			Away: o.FullTime.Away - o.HalfTime.Away,
		}, true
	default:
		return Score{}, false
	}
}

// Validate checks that the full-time score never trails the half-time score.
func (o *MatchOutcome) Validate() error {
	if o.FullTime == nil || o.HalfTime == nil {
		return nil
	}
	if o.FullTime.Home < o.HalfTime.Home || o.FullTime.Away < o.HalfTime.Away {
		return fmt.Errorf("full-time score %s below half-time score %s", o.FullTime, o.HalfTime)
	}
	return nil
}

// TeamStatistics holds per-side match counters. Nil means unavailable.
type TeamStatistics struct {
	Corners       *int `json:"corners,omitempty"`
	YellowCards   *int `json:"yellow_cards,omitempty"`
	RedCards      *int `json:"red_cards,omitempty"`
	Shots         *int `json:"shots,omitempty"`
	ShotsOnTarget *int `json:"shots_on_target,omitempty"`
	Fouls         *int `json:"fouls,omitempty"`
	Offsides      *int `json:"offsides,omitempty"`
}

// MatchStatistics holds both sides' counters for a fixture.
type MatchStatistics struct {
	FixtureID int64          `json:"fixture_id"`
	Home      TeamStatistics `json:"home"`
	Away      TeamStatistics `json:"away"`
}

// Side returns the counters of one team.
func (m *MatchStatistics) Side(side Side) TeamStatistics {
	if side == SideAway {
		return m.Away
	}
	return m.Home
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
