package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBM(t *testing.T) {
	t.Run("path starts at the spot and stays positive", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0.2, 1.0)
		rng := NewRand(42, 1)

		path := gbm.Path(rng, 252, nil)

		require.Len(t, path, 253)
		assert.Equal(t, 100.0, path[0])

		for _, s := range path {
			assert.Greater(t, s, 0.0)
		}
	})

	t.Run("terminal mean approximates the forward", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0.2, 1.0)
		rng := NewRand(42, 1)

		n := 50000
		sum := 0.0
		buf := make([]float64, 2)
		for i := 0; i < n; i++ {
			path := gbm.Path(rng, 1, buf)
			sum += path[len(path)-1]
		}

		forward := 100 * math.Exp(0.05)
		assert.InDelta(t, forward, sum/float64(n), forward*0.01)
	})

	t.Run("same seed reproduces the path", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0.2, 1.0)

		p1 := gbm.Path(NewRand(7, 3), 50, nil)
		p2 := gbm.Path(NewRand(7, 3), 50, nil)

		assert.Equal(t, p1, p2)
	})

	t.Run("zero volatility path is the deterministic forward curve", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0, 1.0)
		rng := NewRand(42, 1)

		path := gbm.Path(rng, 4, nil)

		for i, s := range path {
			expected := 100 * math.Exp(0.05*float64(i)/4)
			assert.InDelta(t, expected, s, 1e-9)
		}
	})

	t.Run("reuses the provided buffer", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0.2, 1.0)
		rng := NewRand(42, 1)

		buf := make([]float64, 11)
		path := gbm.Path(rng, 10, buf)

		assert.Equal(t, &buf[0], &path[0])
	})
}

func TestMertonJumpDiffusion(t *testing.T) {
	t.Run("reduces to gbm when lambda is zero", func(t *testing.T) {
		gbm := NewGBM(100, 0.05, 0.2, 1.0)
		merton := NewMertonJumpDiffusion(100, 0.05, 0.2, 1.0, 0, 0, 0)

		p1 := gbm.Path(NewRand(42, 1), 100, nil)
		p2 := merton.Path(NewRand(42, 1), 100, nil)

		for i := range p1 {
			assert.InDelta(t, p1[i], p2[i], 1e-9)
		}
	})

	t.Run("terminal mean stays near the forward under the compensated drift", func(t *testing.T) {
		merton := NewMertonJumpDiffusion(100, 0.05, 0.2, 1.0, 1.0, -0.05, 0.1)
		rng := NewRand(42, 1)

		n := 50000
		sum := 0.0
		buf := make([]float64, 13)
		for i := 0; i < n; i++ {
			path := merton.Path(rng, 12, buf)
			sum += path[len(path)-1]
		}

		forward := 100 * math.Exp(0.05)
		assert.InDelta(t, forward, sum/float64(n), forward*0.02)
	})

	t.Run("path stays positive with jumps", func(t *testing.T) {
		merton := NewMertonJumpDiffusion(100, 0.05, 0.3, 1.0, 5.0, -0.1, 0.2)
		rng := NewRand(99, 1)

		path := merton.Path(rng, 252, nil)

		for _, s := range path {
			assert.Greater(t, s, 0.0)
		}
	})
}

func TestRecordingSampler(t *testing.T) {
	t.Run("antithetic replay negates normals and preserves uniforms", func(t *testing.T) {
		rec := NewRecordingSampler(NewRand(42, 1))

		z1 := rec.NormFloat64()
		u1 := rec.Float64()
		z2 := rec.NormFloat64()

		mirror := rec.Antithetic()

		assert.Equal(t, -z1, mirror.NormFloat64())
		assert.Equal(t, u1, mirror.Float64())
		assert.Equal(t, -z2, mirror.NormFloat64())
	})

	t.Run("reset clears the tape", func(t *testing.T) {
		rec := NewRecordingSampler(NewRand(42, 1))

		rec.NormFloat64()
		rec.Reset()
		z := rec.NormFloat64()

		mirror := rec.Antithetic()
		assert.Equal(t, -z, mirror.NormFloat64())
	})

	t.Run("antithetic gbm path mirrors the diffusion", func(t *testing.T) {
		gbm := NewGBM(100, 0.0, 0.2, 1.0)

		rec := NewRecordingSampler(NewRand(42, 1))
		path := gbm.Path(rec, 1, nil)
		mirror := gbm.Path(rec.Antithetic(), 1, nil)

		// log returns around the drift term should be exact mirrors
		driftTerm := -0.5 * 0.2 * 0.2
		logUp := math.Log(path[1]/100) - driftTerm
		logDown := math.Log(mirror[1]/100) - driftTerm

		assert.InDelta(t, logUp, -logDown, 1e-9)
	})
}

func TestNewRand(t *testing.T) {
	t.Run("different streams are independent", func(t *testing.T) {
		r1 := NewRand(42, 1)
		r2 := NewRand(42, 2)

		assert.NotEqual(t, r1.NormFloat64(), r2.NormFloat64())
	})

	t.Run("same stream repeats", func(t *testing.T) {
		assert.Equal(t, NewRand(42, 1).NormFloat64(), NewRand(42, 1).NormFloat64())
	})
}
