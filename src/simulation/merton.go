package simulation

import (
	"fmt"
	"math"

	"github.com/jiaming2012/option-pricer/src/models"
)

// MertonJumpDiffusion layers compound Poisson lognormal jumps on top of
// GBM. The drift carries the jump compensator lambda*kappa so the process
// stays risk-neutral; with Lambda == 0 it degenerates to plain GBM.
type MertonJumpDiffusion struct {
	Spot       float64
	Drift      float64
	Volatility float64
	Horizon    float64
	Lambda     float64 // jump intensity per year
	MuJump     float64 // mean log jump size
	DeltaJump  float64 // log jump size volatility
}

func NewMertonJumpDiffusion(spot, drift, volatility, horizon, lambda, muJump, deltaJump float64) *MertonJumpDiffusion {
	return &MertonJumpDiffusion{
		Spot:       spot,
		Drift:      drift,
		Volatility: volatility,
		Horizon:    horizon,
		Lambda:     lambda,
		MuJump:     muJump,
		DeltaJump:  deltaJump,
	}
}

func NewMertonFromContract(c models.OptionContract, lambda, muJump, deltaJump float64) *MertonJumpDiffusion {
	return NewMertonJumpDiffusion(c.Spot, c.RiskFreeRate-c.DividendYield, c.Volatility, c.TimeToExpiry, lambda, muJump, deltaJump)
}

func (m *MertonJumpDiffusion) Path(src Sampler, steps int, buf []float64) []float64 {
	prices := pathBuf(steps, buf)
	prices[0] = m.Spot

	dt := m.Horizon / float64(steps)
	kappa := math.Exp(m.MuJump+0.5*m.DeltaJump*m.DeltaJump) - 1
	driftTerm := (m.Drift - m.Lambda*kappa - 0.5*m.Volatility*m.Volatility) * dt
	volTerm := m.Volatility * math.Sqrt(dt)

	for i := 1; i <= steps; i++ {
		z := src.NormFloat64()
		diffusion := math.Exp(driftTerm + volTerm*z)

		if m.Lambda > 0 && src.Float64() < m.Lambda*dt {
			y := src.NormFloat64()
			jump := math.Exp(m.MuJump + m.DeltaJump*y)
			prices[i] = prices[i-1] * diffusion * jump
		} else {
			prices[i] = prices[i-1] * diffusion
		}
	}

	return prices
}

func (m *MertonJumpDiffusion) Describe() string {
	return fmt.Sprintf("merton(spot=%.2f, drift=%.4f, vol=%.4f, lambda=%.2f, horizon=%.2fy)", m.Spot, m.Drift, m.Volatility, m.Lambda, m.Horizon)
}
