package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/simulation"
)

func TestSimulatePaths(t *testing.T) {
	t.Run("matrix has the configured shape and starts at the spot", func(t *testing.T) {
		contract := testContract(models.Call)
		e := NewEngine(Config{NumPaths: 100, NumSteps: 10, Seed: 42})

		paths, err := e.SimulatePaths(context.Background(), contract)
		require.NoError(t, err)

		require.Len(t, paths, 100)
		for _, path := range paths {
			require.Len(t, path, 11)
			assert.Equal(t, contract.Spot, path[0])
		}
	})

	t.Run("matrix is reproducible for a seed regardless of worker count", func(t *testing.T) {
		contract := testContract(models.Call)

		p1, err := NewEngine(Config{NumPaths: 50, NumSteps: 10, Seed: 9, Workers: 4}).SimulatePaths(context.Background(), contract)
		require.NoError(t, err)

		p2, err := NewEngine(Config{NumPaths: 50, NumSteps: 10, Seed: 9, Workers: 1}).SimulatePaths(context.Background(), contract)
		require.NoError(t, err)

		assert.Equal(t, p1, p2)
	})

	t.Run("terminal returns center on the horizon drift", func(t *testing.T) {
		contract := testContract(models.Call)
		e := NewEngine(Config{NumPaths: 50000, Seed: 42})

		returns, err := e.SimulateTerminalReturns(context.Background(), simulation.NewGBMFromContract(contract), 1)
		require.NoError(t, err)

		sum := 0.0
		for _, r := range returns {
			sum += r
		}
		mean := sum / float64(len(returns))

		expected := math.Exp(contract.RiskFreeRate*contract.TimeToExpiry) - 1
		assert.InDelta(t, expected, mean, 0.01)
	})

	t.Run("cancelled context aborts path generation", func(t *testing.T) {
		contract := testContract(models.Call)
		e := NewEngine(Config{NumPaths: 1000, NumSteps: 10, Seed: 42})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.SimulatePaths(ctx, contract)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
