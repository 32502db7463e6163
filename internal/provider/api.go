package provider

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// envelope is the wrapper every API-Sports v3 response uses. Errors is an
// empty array on success and an object keyed by cause otherwise.
type envelope struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

// apiError returns the provider-reported error text, or "" when none.
func (e *envelope) apiError() string {
	raw := strings.TrimSpace(string(e.Errors))
	switch raw {
	case "", "null", "[]", "{}":
		return ""
	}

	var byCause map[string]string
	if err := json.Unmarshal(e.Errors, &byCause); err == nil {
		keys := make([]string, 0, len(byCause))
		for k := range byCause {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+byCause[k])
		}
		return strings.Join(parts, "; ")
	}

	return raw
}

type apiGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func (g apiGoals) score() *types.Score {
	if g.Home == nil || g.Away == nil {
		return nil
	}
	return &types.Score{Home: *g.Home, Away: *g.Away}
}

type apiTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type apiEvent struct {
	Time struct {
		Elapsed int  `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team     apiTeam `json:"team"`
	Type     string  `json:"type"`
	Detail   string  `json:"detail"`
	Comments *string `json:"comments"`
}

// before orders events by clock minute, then by added time within it, so
// 45+3 precedes 47.
func (e apiEvent) before(other apiEvent) bool {
	if e.Time.Elapsed != other.Time.Elapsed {
		return e.Time.Elapsed < other.Time.Elapsed
	}
	return e.extra() < other.extra()
}

func (e apiEvent) extra() int {
	if e.Time.Extra == nil {
		return 0
	}
	return *e.Time.Extra
}

type apiFixture struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
			Long  string `json:"long"`
		} `json:"status"`
	} `json:"fixture"`
	Teams struct {
		Home apiTeam `json:"home"`
		Away apiTeam `json:"away"`
	} `json:"teams"`
	Goals apiGoals `json:"goals"`
	Score struct {
		HalfTime  apiGoals `json:"halftime"`
		FullTime  apiGoals `json:"fulltime"`
		ExtraTime apiGoals `json:"extratime"`
		Penalty   apiGoals `json:"penalty"`
	} `json:"score"`
	Events []apiEvent `json:"events"`
}

// outcome converts a fixture row. Full time prefers score.fulltime and falls
// back to the live goals counter.
func (f *apiFixture) outcome() *types.MatchOutcome {
	o := &types.MatchOutcome{
		FixtureID: f.Fixture.ID,
		Status:    f.Fixture.Status.Short,
		FullTime:  f.Score.FullTime.score(),
		HalfTime:  f.Score.HalfTime.score(),
		Penalties: f.Score.Penalty.score(),
	}
	if o.FullTime == nil {
		o.FullTime = f.Goals.score()
	}
	o.FirstToScore, o.LastToScore = f.scorers(o.FullTime)

	return o
}

// scorers derives the first and last scoring sides from goal events. Both
// are empty when the score is unknown or a scored match lists no goal events.
func (f *apiFixture) scorers(ft *types.Score) (first, last types.Side) {
	if ft == nil {
		return "", ""
	}
	if ft.Total() == 0 {
		return types.SideNone, types.SideNone
	}

	goals := f.goalEvents()
	if len(goals) == 0 {
		return "", ""
	}

	sideOf := func(e apiEvent) types.Side {
		switch e.Team.ID {
		case f.Teams.Home.ID:
			return types.SideHome
		case f.Teams.Away.ID:
			return types.SideAway
		default:
			return ""
		}
	}

	return sideOf(goals[0]), sideOf(goals[len(goals)-1])
}

// goalEvents returns goals in match order, dropping own goals, missed
// penalties, shootout kicks and goals cancelled by VAR.
func (f *apiFixture) goalEvents() []apiEvent {
	var goals []apiEvent
	for _, e := range f.Events {
		switch {
		case strings.EqualFold(e.Type, "Var") && strings.HasPrefix(strings.ToLower(e.Detail), "goal cancelled"):
			for i := len(goals) - 1; i >= 0; i-- {
				if goals[i].Team.ID == e.Team.ID {
					goals = append(goals[:i], goals[i+1:]...)
					break
				}
			}
		case !strings.EqualFold(e.Type, "Goal"):
		case e.Detail == "Own Goal", e.Detail == "Missed Penalty":
		case e.Comments != nil && strings.EqualFold(*e.Comments, "Penalty Shootout"):
		default:
			goals = append(goals, e)
		}
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].before(goals[j])
	})
	return goals
}

type apiStatistic struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

type apiTeamStatistics struct {
	Team       apiTeam        `json:"team"`
	Statistics []apiStatistic `json:"statistics"`
}

func (s *apiTeamStatistics) counters() types.TeamStatistics {
	byType := make(map[string]*int, len(s.Statistics))
	for _, st := range s.Statistics {
		byType[strings.ToUpper(strings.TrimSpace(st.Type))] = toInt(st.Value)
	}

	return types.TeamStatistics{
		Corners:       byType["CORNER KICKS"],
		YellowCards:   byType["YELLOW CARDS"],
		RedCards:      byType["RED CARDS"],
		Shots:         byType["TOTAL SHOTS"],
		ShotsOnTarget: byType["SHOTS ON GOAL"],
		Fouls:         byType["FOULS"],
		Offsides:      byType["OFFSIDES"],
	}
}

// toInt reads a statistic value, which the API sends as a number, a string
// such as "55%", or null.
func toInt(v interface{}) *int {
	switch val := v.(type) {
	case float64:
		return types.Int(int(val))
	case int64:
		return types.Int(int(val))
	case int:
		return types.Int(val)
	case string:
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if err != nil {
			return nil
		}
		return types.Int(n)
	default:
		return nil
	}
}

// FixtureSummary is a scheduled or played fixture as listed by date.
type FixtureSummary struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

func (f *apiFixture) summary() FixtureSummary {
	return FixtureSummary{
		ID:       f.Fixture.ID,
		Date:     f.Fixture.Date,
		Status:   f.Fixture.Status.Short,
		HomeTeam: f.Teams.Home.Name,
		AwayTeam: f.Teams.Away.Name,
	}
}

// BetType is one entry of the provider's odds bet catalog.
type BetType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
