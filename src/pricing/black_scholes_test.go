package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-pricer/src/models"
)

const equalityThreshold = 1e-3

func testContract(optionType models.OptionType) models.OptionContract {
	return models.OptionContract{
		Underlying:   "SPX",
		Spot:         100.0,
		Strike:       105.0,
		TimeToExpiry: 1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		OptionType:   optionType,
	}
}

func TestBlackScholes(t *testing.T) {
	t.Run("matches published call value", func(t *testing.T) {
		// S=100, K=105, T=1, r=5%, sigma=20% => call = 8.0214
		price := BlackScholes(testContract(models.Call))
		assert.InDelta(t, 8.0214, price, equalityThreshold)
	})

	t.Run("matches published put value", func(t *testing.T) {
		// same inputs => put = 7.9004
		price := BlackScholes(testContract(models.Put))
		assert.InDelta(t, 7.9004, price, equalityThreshold)
	})

	t.Run("put-call parity holds", func(t *testing.T) {
		c := testContract(models.Call)
		p := testContract(models.Put)

		lhs := BlackScholes(c) - BlackScholes(p)
		rhs := c.Spot - c.Strike*math.Exp(-c.RiskFreeRate*c.TimeToExpiry)

		assert.InDelta(t, rhs, lhs, equalityThreshold)
	})

	t.Run("expired contract returns intrinsic value", func(t *testing.T) {
		c := testContract(models.Call)
		c.TimeToExpiry = 0
		c.Spot = 110.0

		assert.Equal(t, 5.0, BlackScholes(c))
	})

	t.Run("zero volatility returns discounted forward intrinsic", func(t *testing.T) {
		c := testContract(models.Call)
		c.Volatility = 0

		expected := c.Spot - c.Strike*math.Exp(-c.RiskFreeRate*c.TimeToExpiry)
		price := BlackScholes(c)

		require.False(t, math.IsNaN(price))
		assert.InDelta(t, expected, price, equalityThreshold)
	})

	t.Run("deep out of the money zero volatility put is worthless", func(t *testing.T) {
		c := testContract(models.Put)
		c.Volatility = 0
		c.Spot = 200.0

		assert.Equal(t, 0.0, BlackScholes(c))
	})

	t.Run("dividend yield lowers call value", func(t *testing.T) {
		plain := testContract(models.Call)

		withDividend := plain
		withDividend.DividendYield = 0.03

		assert.Less(t, BlackScholes(withDividend), BlackScholes(plain))
	})
}

func TestGreeks(t *testing.T) {
	t.Run("call delta is between zero and one", func(t *testing.T) {
		greeks := Greeks(testContract(models.Call))

		assert.Greater(t, greeks.Delta, 0.0)
		assert.Less(t, greeks.Delta, 1.0)
	})

	t.Run("put delta is between minus one and zero", func(t *testing.T) {
		greeks := Greeks(testContract(models.Put))

		assert.Greater(t, greeks.Delta, -1.0)
		assert.Less(t, greeks.Delta, 0.0)
	})

	t.Run("call and put share gamma and vega", func(t *testing.T) {
		callGreeks := Greeks(testContract(models.Call))
		putGreeks := Greeks(testContract(models.Put))

		assert.InDelta(t, callGreeks.Gamma, putGreeks.Gamma, equalityThreshold)
		assert.InDelta(t, callGreeks.Vega, putGreeks.Vega, equalityThreshold)
	})

	t.Run("vega matches the standalone function", func(t *testing.T) {
		c := testContract(models.Call)

		assert.InDelta(t, Vega(c), Greeks(c).Vega, equalityThreshold)
	})

	t.Run("expired contract has zero greeks", func(t *testing.T) {
		c := testContract(models.Call)
		c.TimeToExpiry = 0

		assert.Equal(t, models.Greeks{}, Greeks(c))
	})
}

func TestImpliedVolatility(t *testing.T) {
	t.Run("inverts a black-scholes price", func(t *testing.T) {
		c := testContract(models.Call)
		marketPrice := BlackScholes(c)

		iv, err := ImpliedVolatility(c, marketPrice)
		require.NoError(t, err)

		assert.InDelta(t, c.Volatility, iv, 1e-4)
	})

	t.Run("inverts a put price away from the initial guess", func(t *testing.T) {
		c := testContract(models.Put)
		c.Volatility = 0.35
		marketPrice := BlackScholes(c)

		iv, err := ImpliedVolatility(c, marketPrice)
		require.NoError(t, err)

		assert.InDelta(t, 0.35, iv, 1e-4)
	})

	t.Run("rejects non-positive market price", func(t *testing.T) {
		_, err := ImpliedVolatility(testContract(models.Call), 0)
		assert.Error(t, err)
	})
}

func TestNormCDF(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.InDelta(t, 0.5, NormCDF(0), 1e-9)
		assert.InDelta(t, 0.8413, NormCDF(1), 1e-4)
		assert.InDelta(t, 0.0228, NormCDF(-2), 1e-4)
	})

	t.Run("pdf integrates against cdf slope", func(t *testing.T) {
		h := 1e-6
		slope := (NormCDF(0.5+h) - NormCDF(0.5-h)) / (2 * h)

		assert.InDelta(t, NormPDF(0.5), slope, 1e-4)
	})
}
