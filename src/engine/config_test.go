package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("zero values fall back to defaults", func(t *testing.T) {
		cfg := Config{}.withDefaults()

		assert.Equal(t, 10000, cfg.NumPaths)
		assert.Equal(t, 252, cfg.NumSteps)
		assert.Equal(t, uint64(42), cfg.Seed)
		assert.Equal(t, FiniteDifference, cfg.GreeksMethod)
		assert.Greater(t, cfg.Workers, 0)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		cfg := Config{NumPaths: 500, Seed: 7, Workers: 2}.withDefaults()

		assert.Equal(t, 500, cfg.NumPaths)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("env overrides apply", func(t *testing.T) {
		t.Setenv("MC_NUM_PATHS", "2500")
		t.Setenv("MC_SEED", "99")

		cfg, err := DefaultConfig().ApplyEnvOverrides()
		require.NoError(t, err)

		assert.Equal(t, 2500, cfg.NumPaths)
		assert.Equal(t, uint64(99), cfg.Seed)
	})

	t.Run("invalid env value errors", func(t *testing.T) {
		t.Setenv("MC_NUM_PATHS", "lots")

		_, err := DefaultConfig().ApplyEnvOverrides()
		assert.Error(t, err)
	})
}
