package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuropeanPayoff(t *testing.T) {
	t.Run("call pays terminal minus strike when in the money", func(t *testing.T) {
		p := EuropeanPayoff{Strike: 100, OptionType: Call}

		assert.Equal(t, 10.0, p.Value([]float64{95, 102, 110}))
		assert.Equal(t, 0.0, p.Value([]float64{95, 102, 90}))
	})

	t.Run("put pays strike minus terminal when in the money", func(t *testing.T) {
		p := EuropeanPayoff{Strike: 100, OptionType: Put}

		assert.Equal(t, 10.0, p.Value([]float64{105, 98, 90}))
		assert.Equal(t, 0.0, p.Value([]float64{105, 98, 110}))
	})

	t.Run("is not path dependent", func(t *testing.T) {
		assert.False(t, EuropeanPayoff{Strike: 100, OptionType: Call}.PathDependent())
	})
}

func TestAsianPayoff(t *testing.T) {
	t.Run("arithmetic call settles against the path average", func(t *testing.T) {
		p := AsianPayoff{Strike: 100, OptionType: Call}

		// average of (100, 110, 120) = 110
		assert.InDelta(t, 10.0, p.Value([]float64{100, 110, 120}), 1e-9)
	})

	t.Run("geometric average is below the arithmetic average", func(t *testing.T) {
		path := []float64{100, 110, 120}

		arithmetic := AsianPayoff{Strike: 100, OptionType: Call}
		geometric := AsianPayoff{Strike: 100, OptionType: Call, Geometric: true}

		assert.Less(t, geometric.Value(path), arithmetic.Value(path))
		assert.Greater(t, geometric.Value(path), 0.0)
	})

	t.Run("is path dependent", func(t *testing.T) {
		assert.True(t, AsianPayoff{Strike: 100, OptionType: Call}.PathDependent())
	})
}

func TestBarrierPayoff(t *testing.T) {
	t.Run("up-and-out call pays zero once the barrier is touched", func(t *testing.T) {
		p := BarrierPayoff{Strike: 100, Barrier: 120, OptionType: Call, Direction: BarrierUp}

		assert.Equal(t, 0.0, p.Value([]float64{100, 121, 110}))
		assert.Equal(t, 10.0, p.Value([]float64{100, 115, 110}))
	})

	t.Run("up-and-in call pays only when the barrier is touched", func(t *testing.T) {
		p := BarrierPayoff{Strike: 100, Barrier: 120, OptionType: Call, Direction: BarrierUp, KnockIn: true}

		assert.Equal(t, 10.0, p.Value([]float64{100, 121, 110}))
		assert.Equal(t, 0.0, p.Value([]float64{100, 115, 110}))
	})

	t.Run("down-and-out put knocks out on the low side", func(t *testing.T) {
		p := BarrierPayoff{Strike: 100, Barrier: 80, OptionType: Put, Direction: BarrierDown}

		assert.Equal(t, 0.0, p.Value([]float64{100, 79, 90}))
		assert.Equal(t, 10.0, p.Value([]float64{100, 85, 90}))
	})
}

func TestDigitalPayoff(t *testing.T) {
	t.Run("pays the cash amount in the money and nothing otherwise", func(t *testing.T) {
		p := DigitalPayoff{Strike: 100, CashAmount: 5, OptionType: Call}

		assert.Equal(t, 5.0, p.Value([]float64{90, 101}))
		assert.Equal(t, 0.0, p.Value([]float64{90, 99}))
		assert.Equal(t, 0.0, p.Value([]float64{90, 100}))
	})
}

func TestLookbackPayoff(t *testing.T) {
	t.Run("call settles against the path maximum", func(t *testing.T) {
		p := LookbackPayoff{Strike: 100, OptionType: Call}

		assert.Equal(t, 25.0, p.Value([]float64{100, 125, 110}))
	})

	t.Run("put settles against the path minimum", func(t *testing.T) {
		p := LookbackPayoff{Strike: 100, OptionType: Put}

		assert.Equal(t, 15.0, p.Value([]float64{100, 85, 110}))
	})
}

func TestOptionContract(t *testing.T) {
	t.Run("validates a complete contract", func(t *testing.T) {
		c := OptionContract{
			Underlying:   "SPX",
			Spot:         100,
			Strike:       105,
			TimeToExpiry: 1,
			RiskFreeRate: 0.05,
			Volatility:   0.2,
			OptionType:   Call,
		}

		require.NoError(t, c.Validate())
	})

	t.Run("rejects invalid option type", func(t *testing.T) {
		c := OptionContract{Spot: 100, Strike: 105, TimeToExpiry: 1, Volatility: 0.2, OptionType: "straddle"}

		assert.Error(t, c.Validate())
	})

	t.Run("rejects non-positive spot", func(t *testing.T) {
		c := OptionContract{Spot: 0, Strike: 105, TimeToExpiry: 1, Volatility: 0.2, OptionType: Call}

		assert.Error(t, c.Validate())
	})

	t.Run("rejects negative expiry", func(t *testing.T) {
		c := OptionContract{Spot: 100, Strike: 105, TimeToExpiry: -1, Volatility: 0.2, OptionType: Put}

		assert.Error(t, c.Validate())
	})

	t.Run("intrinsic value", func(t *testing.T) {
		call := OptionContract{Spot: 110, Strike: 100, OptionType: Call}
		put := OptionContract{Spot: 110, Strike: 100, OptionType: Put}

		assert.Equal(t, 10.0, call.IntrinsicValue())
		assert.Equal(t, 0.0, put.IntrinsicValue())
	})
}
