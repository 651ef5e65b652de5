package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/option-pricer/src/models"
)

// NormCDF is the standard normal cumulative distribution function.
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// NormPDF is the standard normal probability density function.
func NormPDF(x float64) float64 {
	return (1.0 / math.Sqrt(2*math.Pi)) * math.Exp(-0.5*x*x)
}

func d1d2(c models.OptionContract) (float64, float64) {
	sqrtT := math.Sqrt(c.TimeToExpiry)
	d1 := (math.Log(c.Spot/c.Strike) + (c.RiskFreeRate-c.DividendYield+0.5*c.Volatility*c.Volatility)*c.TimeToExpiry) / (c.Volatility * sqrtT)
	d2 := d1 - c.Volatility*sqrtT

	return d1, d2
}

// BlackScholes prices a European option with the Black-Scholes-Merton
// closed form. Expired or zero-volatility contracts collapse to their
// (discounted) intrinsic value rather than producing NaN.
func BlackScholes(c models.OptionContract) float64 {
	if c.TimeToExpiry <= 0 {
		return c.IntrinsicValue()
	}

	discountedSpot := c.Spot * math.Exp(-c.DividendYield*c.TimeToExpiry)
	discountedStrike := c.Strike * math.Exp(-c.RiskFreeRate*c.TimeToExpiry)

	if c.Volatility <= 0 {
		if c.OptionType.IsCall() {
			return math.Max(discountedSpot-discountedStrike, 0)
		}
		return math.Max(discountedStrike-discountedSpot, 0)
	}

	d1, d2 := d1d2(c)

	if c.OptionType.IsCall() {
		return discountedSpot*NormCDF(d1) - discountedStrike*NormCDF(d2)
	}

	return discountedStrike*NormCDF(-d2) - discountedSpot*NormCDF(-d1)
}

// Vega is the price sensitivity to a one-point change in volatility.
func Vega(c models.OptionContract) float64 {
	if c.TimeToExpiry <= 0 || c.Volatility <= 0 || c.Spot <= 0 {
		return 0
	}

	d1, _ := d1d2(c)

	return c.Spot * math.Exp(-c.DividendYield*c.TimeToExpiry) * NormPDF(d1) * math.Sqrt(c.TimeToExpiry)
}

// Greeks returns the full set of closed-form sensitivities. Theta is
// reported per year; divide by 365 for a daily decay figure.
func Greeks(c models.OptionContract) models.Greeks {
	if c.TimeToExpiry <= 0 || c.Volatility <= 0 {
		return models.Greeks{}
	}

	d1, d2 := d1d2(c)
	sqrtT := math.Sqrt(c.TimeToExpiry)
	qDisc := math.Exp(-c.DividendYield * c.TimeToExpiry)
	rDisc := math.Exp(-c.RiskFreeRate * c.TimeToExpiry)

	gamma := qDisc * NormPDF(d1) / (c.Spot * c.Volatility * sqrtT)
	vega := c.Spot * qDisc * NormPDF(d1) * sqrtT

	var delta, theta, rho float64
	if c.OptionType.IsCall() {
		delta = qDisc * NormCDF(d1)
		theta = -c.Spot*qDisc*NormPDF(d1)*c.Volatility/(2*sqrtT) -
			c.RiskFreeRate*c.Strike*rDisc*NormCDF(d2) +
			c.DividendYield*c.Spot*qDisc*NormCDF(d1)
		rho = c.Strike * c.TimeToExpiry * rDisc * NormCDF(d2)
	} else {
		delta = -qDisc * NormCDF(-d1)
		theta = -c.Spot*qDisc*NormPDF(d1)*c.Volatility/(2*sqrtT) +
			c.RiskFreeRate*c.Strike*rDisc*NormCDF(-d2) -
			c.DividendYield*c.Spot*qDisc*NormCDF(-d1)
		rho = -c.Strike * c.TimeToExpiry * rDisc * NormCDF(-d2)
	}

	return models.Greeks{
		Delta: delta,
		Gamma: gamma,
		Vega:  vega,
		Theta: theta,
		Rho:   rho,
	}
}

// ImpliedVolatility inverts the Black-Scholes price with Newton-Raphson
// on vega.
func ImpliedVolatility(c models.OptionContract, marketPrice float64) (float64, error) {
	if marketPrice <= 0 {
		return 0, fmt.Errorf("ImpliedVolatility: market price must be positive, got %v", marketPrice)
	}

	sigma := 0.2 // initial guess
	tol := 1e-6

	for i := 0; i < 100; i++ {
		c.Volatility = sigma

		price := BlackScholes(c)
		vega := Vega(c)

		diff := price - marketPrice
		if math.Abs(diff) < tol {
			return sigma, nil
		}

		if vega == 0 {
			return 0, fmt.Errorf("ImpliedVolatility: zero vega at sigma %v", sigma)
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = tol
		}
	}

	return 0, fmt.Errorf("ImpliedVolatility: did not converge for market price %v", marketPrice)
}
