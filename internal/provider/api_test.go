package provider

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/internal/testutil"
	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFixture(t *testing.T, b *testutil.FixtureBuilder) *apiFixture {
	t.Helper()

	data, err := json.Marshal(b.Build())
	require.NoError(t, err)

	var f apiFixture
	require.NoError(t, json.Unmarshal(data, &f))
	return &f
}

func TestScorers(t *testing.T) {
	const date = "2024-03-02T15:00:00+00:00"

	tests := []struct {
		name      string
		fixture   *testutil.FixtureBuilder
		wantFirst types.Side
		wantLast  types.Side
	}{
		{
			name:      "goalless",
			fixture:   testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(0, 0),
			wantFirst: types.SideNone,
			wantLast:  types.SideNone,
		},
		{
			name: "ordered-by-minute",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(1, 2).
				Goal(80, types.SideAway).Goal(10, types.SideHome).Goal(45, types.SideAway),
			wantFirst: types.SideHome,
			wantLast:  types.SideAway,
		},
		{
			name: "own-goal-and-missed-penalty-ignored",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(1, 1).
				Event(5, types.SideHome, "Goal", "Missed Penalty").
				Event(20, types.SideHome, "Goal", "Own Goal").
				Goal(60, types.SideAway).
				Event(70, types.SideHome, "Goal", "Penalty"),
			wantFirst: types.SideAway,
			wantLast:  types.SideHome,
		},
		{
			name: "var-cancelled-goal-removed",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(0, 1).
				Goal(10, types.SideHome).
				Event(12, types.SideHome, "Var", "Goal cancelled").
				Goal(50, types.SideAway),
			wantFirst: types.SideAway,
			wantLast:  types.SideAway,
		},
		{
			name: "first-half-stoppage-before-second-half",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(1, 1).
				Goal(47, types.SideAway).StoppageGoal(45, 3, types.SideHome),
			wantFirst: types.SideHome,
			wantLast:  types.SideAway,
		},
		{
			name: "second-half-stoppage-before-extra-time",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("AET").FullTime(1, 1).
				Goal(94, types.SideHome).StoppageGoal(90, 5, types.SideAway),
			wantFirst: types.SideAway,
			wantLast:  types.SideHome,
		},
		{
			name:    "goals-without-events",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(2, 0),
		},
		{
			name: "cards-are-not-goals",
			fixture: testutil.NewFixture(1, date, "A", "B").Status("FT").FullTime(1, 0).
				Event(3, types.SideAway, "Card", "Yellow Card").
				Goal(30, types.SideHome),
			wantFirst: types.SideHome,
			wantLast:  types.SideHome,
		},
		{
			name:    "no-score-yet",
			fixture: testutil.NewFixture(1, date, "A", "B"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := decodeFixture(t, tt.fixture).outcome()
			assert.Equal(t, tt.wantFirst, o.FirstToScore)
			assert.Equal(t, tt.wantLast, o.LastToScore)
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *int
	}{
		{name: "number", value: float64(7), want: types.Int(7)},
		{name: "numeric-string", value: "12", want: types.Int(12)},
		{name: "percentage", value: "55%", want: types.Int(55)},
		{name: "padded", value: " 3 ", want: types.Int(3)},
		{name: "null", value: nil, want: nil},
		{name: "garbage", value: "n/a", want: nil},
		{name: "bool", value: true, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toInt(tt.value))
		})
	}
}

func TestEnvelope_APIError(t *testing.T) {
	tests := []struct {
		name   string
		errors string
		want   string
	}{
		{name: "empty-array", errors: `[]`, want: ""},
		{name: "empty-object", errors: `{}`, want: ""},
		{name: "null", errors: `null`, want: ""},
		{name: "keyed", errors: `{"token":"bad key","plan":"upgrade"}`, want: "plan: upgrade; token: bad key"},
		{name: "array-of-strings", errors: `["boom"]`, want: `["boom"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := envelope{Errors: json.RawMessage(tt.errors)}
			assert.Equal(t, tt.want, env.apiError())
		})
	}
}
