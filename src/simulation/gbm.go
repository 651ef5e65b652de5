package simulation

import (
	"fmt"
	"math"

	"github.com/jiaming2012/option-pricer/src/models"
)

// GBM simulates geometric Brownian motion under the risk-neutral measure
// with the exact log-Euler scheme, so step count affects only path
// resolution, not terminal accuracy.
type GBM struct {
	Spot       float64
	Drift      float64 // risk-free rate less dividend yield
	Volatility float64
	Horizon    float64 // in years
}

func NewGBM(spot, drift, volatility, horizon float64) *GBM {
	return &GBM{
		Spot:       spot,
		Drift:      drift,
		Volatility: volatility,
		Horizon:    horizon,
	}
}

func NewGBMFromContract(c models.OptionContract) *GBM {
	return NewGBM(c.Spot, c.RiskFreeRate-c.DividendYield, c.Volatility, c.TimeToExpiry)
}

func (g *GBM) Path(src Sampler, steps int, buf []float64) []float64 {
	prices := pathBuf(steps, buf)
	prices[0] = g.Spot

	dt := g.Horizon / float64(steps)
	driftTerm := (g.Drift - 0.5*g.Volatility*g.Volatility) * dt
	volTerm := g.Volatility * math.Sqrt(dt)

	for i := 1; i <= steps; i++ {
		z := src.NormFloat64()
		prices[i] = prices[i-1] * math.Exp(driftTerm+volTerm*z)
	}

	return prices
}

func (g *GBM) Describe() string {
	return fmt.Sprintf("gbm(spot=%.2f, drift=%.4f, vol=%.4f, horizon=%.2fy)", g.Spot, g.Drift, g.Volatility, g.Horizon)
}
