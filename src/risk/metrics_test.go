package risk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-pricer/src/engine"
	"github.com/jiaming2012/option-pricer/src/simulation"
)

func TestReport(t *testing.T) {
	t.Run("var and es on a known loss vector", func(t *testing.T) {
		// returns sorted: worst loss 10%, then 5%, 2%, rest small gains
		returns := []float64{-0.10, -0.05, -0.02, 0.01, 0.01, 0.02, 0.02, 0.03, 0.03, 0.04}

		report, err := Report(returns, 0.90)
		require.NoError(t, err)

		assert.Greater(t, report.ValueAtRisk, 0.0)
		assert.GreaterOrEqual(t, report.ExpectedShortfall, report.ValueAtRisk)
		assert.Equal(t, 10, report.NumPaths)
	})

	t.Run("es exceeds var at every confidence level", func(t *testing.T) {
		returns := make([]float64, 0, 1000)
		rng := simulation.NewRand(42, 1)
		for i := 0; i < 1000; i++ {
			returns = append(returns, 0.05*rng.NormFloat64())
		}

		for _, confidence := range []float64{0.90, 0.95, 0.99} {
			report, err := Report(returns, confidence)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, report.ExpectedShortfall, report.ValueAtRisk, "confidence %v", confidence)
		}
	})

	t.Run("higher confidence gives higher var", func(t *testing.T) {
		returns := make([]float64, 0, 5000)
		rng := simulation.NewRand(42, 1)
		for i := 0; i < 5000; i++ {
			returns = append(returns, 0.05*rng.NormFloat64())
		}

		low, err := Report(returns, 0.90)
		require.NoError(t, err)

		high, err := Report(returns, 0.99)
		require.NoError(t, err)

		assert.Greater(t, high.ValueAtRisk, low.ValueAtRisk)
	})

	t.Run("rejects empty returns", func(t *testing.T) {
		_, err := Report(nil, 0.95)
		assert.Error(t, err)
	})

	t.Run("rejects out of range confidence", func(t *testing.T) {
		_, err := Report([]float64{0.01}, 1.5)
		assert.Error(t, err)
	})
}

func TestReportFromSimulation(t *testing.T) {
	t.Run("simulated gbm var scales with volatility", func(t *testing.T) {
		e := engine.NewEngine(engine.Config{NumPaths: 20000, Seed: 42})
		horizon := 10.0 / 252.0

		calm, err := e.SimulateTerminalReturns(context.Background(), simulation.NewGBM(100, 0.05, 0.10, horizon), 10)
		require.NoError(t, err)

		stressed, err := e.SimulateTerminalReturns(context.Background(), simulation.NewGBM(100, 0.05, 0.40, horizon), 10)
		require.NoError(t, err)

		calmReport, err := Report(calm, 0.95)
		require.NoError(t, err)

		stressedReport, err := Report(stressed, 0.95)
		require.NoError(t, err)

		assert.Greater(t, stressedReport.ValueAtRisk, calmReport.ValueAtRisk)
		assert.Greater(t, stressedReport.ExpectedShortfall, calmReport.ExpectedShortfall)
	})
}
