package markets

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_UnrecognizedMarketCounted(t *testing.T) {
	before := testutil.ToFloat64(UnrecognizedMarketsTotal)
	Resolve("definitely not a market")
	Resolve("1X2")
	assert.Equal(t, before+1, testutil.ToFloat64(UnrecognizedMarketsTotal))
}

func TestMetrics_ImpliedTeamDoesNotCount(t *testing.T) {
	before := testutil.ToFloat64(UnrecognizedMarketsTotal)
	ImpliedTeam("no such market")
	assert.Equal(t, before, testutil.ToFloat64(UnrecognizedMarketsTotal))
}

func TestMetrics_FreeformFallbackCounted(t *testing.T) {
	before := testutil.ToFloat64(FreeformFallbacksTotal)
	Parse("anytime scorer")
	Parse("OVER 2.5")
	assert.Equal(t, before+1, testutil.ToFloat64(FreeformFallbacksTotal))
}
