package testutil

import (
	"github.com/mselser95/betslip-validator/pkg/types"
)

// OutcomeBuilder builds MatchOutcome values for settlement tests.
type OutcomeBuilder struct {
	o types.MatchOutcome
}

// NewOutcome starts an outcome for a fixture with status FT.
func NewOutcome(fixtureID int64) *OutcomeBuilder {
	return &OutcomeBuilder{o: types.MatchOutcome{FixtureID: fixtureID, Status: "FT"}}
}

// Status sets the fixture status short code.
func (b *OutcomeBuilder) Status(status string) *OutcomeBuilder {
	b.o.Status = status
	return b
}

// FullTime sets the full-time score.
func (b *OutcomeBuilder) FullTime(home, away int) *OutcomeBuilder {
	b.o.FullTime = &types.Score{Home: home, Away: away}
	return b
}

// HalfTime sets the half-time score.
func (b *OutcomeBuilder) HalfTime(home, away int) *OutcomeBuilder {
	b.o.HalfTime = &types.Score{Home: home, Away: away}
	return b
}

// Penalties sets the shootout score.
func (b *OutcomeBuilder) Penalties(home, away int) *OutcomeBuilder {
	b.o.Penalties = &types.Score{Home: home, Away: away}
	return b
}

// Scorers sets the first and last scoring sides.
func (b *OutcomeBuilder) Scorers(first, last types.Side) *OutcomeBuilder {
	b.o.FirstToScore = first
	b.o.LastToScore = last
	return b
}

// Build returns a copy of the outcome.
func (b *OutcomeBuilder) Build() *types.MatchOutcome {
	o := b.o
	return &o
}

// Finished returns an FT outcome with both period scores.
func Finished(fixtureID int64, ftHome, ftAway, htHome, htAway int) *types.MatchOutcome {
	return NewOutcome(fixtureID).FullTime(ftHome, ftAway).HalfTime(htHome, htAway).Build()
}

// Counters builds team statistics where every counter is set.
func Counters(corners, yellow, red, shots, onTarget, fouls, offsides int) types.TeamStatistics {
	return types.TeamStatistics{
		Corners:       types.Int(corners),
		YellowCards:   types.Int(yellow),
		RedCards:      types.Int(red),
		Shots:         types.Int(shots),
		ShotsOnTarget: types.Int(onTarget),
		Fouls:         types.Int(fouls),
		Offsides:      types.Int(offsides),
	}
}

// Statistics builds match statistics for a fixture.
func Statistics(fixtureID int64, home, away types.TeamStatistics) *types.MatchStatistics {
	return &types.MatchStatistics{FixtureID: fixtureID, Home: home, Away: away}
}

// FixtureBuilder builds fixture rows in the results API wire format.
type FixtureBuilder struct {
	id       int64
	date     string
	status   string
	home     string
	away     string
	goals    map[string]interface{}
	score    map[string]interface{}
	events   []map[string]interface{}
	noEvents bool
}

// NewFixture starts a fixture row. date is an RFC 3339 kickoff time.
func NewFixture(id int64, date, home, away string) *FixtureBuilder {
	return &FixtureBuilder{
		id:     id,
		date:   date,
		status: "NS",
		home:   home,
		away:   away,
		goals:  pair(nil, nil),
		score: map[string]interface{}{
			"halftime":  pair(nil, nil),
			"fulltime":  pair(nil, nil),
			"extratime": pair(nil, nil),
			"penalty":   pair(nil, nil),
		},
	}
}

func pair(home, away interface{}) map[string]interface{} {
	return map[string]interface{}{"home": home, "away": away}
}

// HomeTeamID returns the home team id of a built fixture.
func HomeTeamID(fixtureID int64) int64 { return fixtureID*10 + 1 }

// AwayTeamID returns the away team id of a built fixture.
func AwayTeamID(fixtureID int64) int64 { return fixtureID*10 + 2 }

// Status sets the status short code.
func (b *FixtureBuilder) Status(status string) *FixtureBuilder {
	b.status = status
	return b
}

// Goals sets the live goals counter.
func (b *FixtureBuilder) Goals(home, away int) *FixtureBuilder {
	b.goals = pair(home, away)
	return b
}

// FullTime sets score.fulltime and the goals counter.
func (b *FixtureBuilder) FullTime(home, away int) *FixtureBuilder {
	b.score["fulltime"] = pair(home, away)
	b.goals = pair(home, away)
	return b
}

// HalfTime sets score.halftime.
func (b *FixtureBuilder) HalfTime(home, away int) *FixtureBuilder {
	b.score["halftime"] = pair(home, away)
	return b
}

// Penalties sets score.penalty.
func (b *FixtureBuilder) Penalties(home, away int) *FixtureBuilder {
	b.score["penalty"] = pair(home, away)
	return b
}

// Event appends a match event for one side.
func (b *FixtureBuilder) Event(minute int, side types.Side, eventType, detail string) *FixtureBuilder {
	teamID, name := HomeTeamID(b.id), b.home
	if side == types.SideAway {
		teamID, name = AwayTeamID(b.id), b.away
	}
	b.events = append(b.events, map[string]interface{}{
		"time":     map[string]interface{}{"elapsed": minute, "extra": nil},
		"team":     map[string]interface{}{"id": teamID, "name": name},
		"type":     eventType,
		"detail":   detail,
		"comments": nil,
	})
	return b
}

// StoppageGoal appends a normal goal scored in added time after minute.
func (b *FixtureBuilder) StoppageGoal(minute, extra int, side types.Side) *FixtureBuilder {
	b.Goal(minute, side)
	b.events[len(b.events)-1]["time"] = map[string]interface{}{"elapsed": minute, "extra": extra}
	return b
}

// Goal appends a normal goal event.
func (b *FixtureBuilder) Goal(minute int, side types.Side) *FixtureBuilder {
	return b.Event(minute, side, "Goal", "Normal Goal")
}

// WithoutEvents omits the events field, as list endpoints do.
func (b *FixtureBuilder) WithoutEvents() *FixtureBuilder {
	b.noEvents = true
	return b
}

// Build returns the wire row.
func (b *FixtureBuilder) Build() map[string]interface{} {
	row := map[string]interface{}{
		"fixture": map[string]interface{}{
			"id":   b.id,
			"date": b.date,
			"status": map[string]interface{}{
				"short": b.status,
				"long":  b.status,
			},
		},
		"teams": map[string]interface{}{
			"home": map[string]interface{}{"id": HomeTeamID(b.id), "name": b.home},
			"away": map[string]interface{}{"id": AwayTeamID(b.id), "name": b.away},
		},
		"goals": b.goals,
		"score": b.score,
	}
	if !b.noEvents {
		events := b.events
		if events == nil {
			events = make([]map[string]interface{}, 0)
		}
		row["events"] = events
	}
	return row
}

// StatisticsRow builds one team's statistics row. Values are sent as given,
// so callers can mix numbers, "55%" strings and nil.
func StatisticsRow(teamID int64, values map[string]interface{}) map[string]interface{} {
	stats := make([]map[string]interface{}, 0, len(values))
	for k, v := range values {
		stats = append(stats, map[string]interface{}{"type": k, "value": v})
	}
	return map[string]interface{}{
		"team":       map[string]interface{}{"id": teamID},
		"statistics": stats,
	}
}

// Bet builds one odds bet catalog entry.
func Bet(id int64, name string) map[string]interface{} {
	return map[string]interface{}{"id": id, "name": name}
}
