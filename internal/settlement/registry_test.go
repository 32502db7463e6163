package settlement

import (
	"strings"
	"testing"

	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	for _, m := range types.AllMarkets() {
		comparison := strings.HasPrefix(string(m), "MOST_")
		assert.Equal(t, !comparison, Supported(m), string(m))
	}

	assert.False(t, Supported(types.MarketUnrecognized))
	assert.False(t, Supported(types.Market("NOT_A_MARKET")))
}

func TestSupportedMarkets(t *testing.T) {
	supported := SupportedMarkets()

	assert.Len(t, supported, len(types.AllMarkets())-6)
	assert.Equal(t, types.MarketMatchWinner, supported[0])
	assert.NotContains(t, supported, types.MarketMostCorners)
}
