package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/simulation"
)

const (
	spotBumpRel = 0.01        // 1% of spot for delta/gamma
	volBumpAbs  = 0.01        // one volatility point for vega
	thetaBump   = 1.0 / 365.0 // one calendar day
	rateBumpAbs = 0.001       // 10bp for rho
)

// Greeks estimates sensitivities by Monte Carlo. Finite differences use
// common random numbers: both legs of every bump re-run the engine with
// the same seed, so the noise largely cancels in the difference. The
// pathwise method replaces the delta and vega estimates with per-path
// derivatives and is only defined for European payoffs.
func (e *Engine) Greeks(ctx context.Context, contract models.OptionContract, payoff models.Payoff) (models.Greeks, error) {
	if err := contract.Validate(); err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: Greeks: %w", err)
	}

	if contract.TimeToExpiry <= 0 {
		return models.Greeks{}, nil
	}

	greeks, err := e.finiteDifferenceGreeks(ctx, contract, payoff)
	if err != nil {
		return models.Greeks{}, err
	}

	if e.cfg.GreeksMethod == Pathwise {
		european, ok := payoff.(models.EuropeanPayoff)
		if !ok {
			return models.Greeks{}, fmt.Errorf("Engine: Greeks: pathwise method requires a european payoff, got %s", payoff.Description())
		}

		delta, vega, pwErr := e.pathwiseDeltaVega(ctx, contract, european)
		if pwErr != nil {
			return models.Greeks{}, pwErr
		}

		greeks.Delta = delta
		greeks.Vega = vega
	}

	return greeks, nil
}

func (e *Engine) finiteDifferenceGreeks(ctx context.Context, contract models.OptionContract, payoff models.Payoff) (models.Greeks, error) {
	base, err := e.Price(ctx, contract, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: base run: %w", err)
	}

	h := contract.Spot * spotBumpRel

	spotUp := contract
	spotUp.Spot += h
	up, err := e.Price(ctx, spotUp, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: spot up run: %w", err)
	}

	spotDown := contract
	spotDown.Spot -= h
	down, err := e.Price(ctx, spotDown, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: spot down run: %w", err)
	}

	volUp := contract
	volUp.Volatility += volBumpAbs
	vUp, err := e.Price(ctx, volUp, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: vol up run: %w", err)
	}

	volDown := contract
	volDown.Volatility = math.Max(volDown.Volatility-volBumpAbs, 0)
	vDown, err := e.Price(ctx, volDown, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: vol down run: %w", err)
	}

	decayed := contract
	decayed.TimeToExpiry = math.Max(decayed.TimeToExpiry-thetaBump, 0)
	tDown, err := e.Price(ctx, decayed, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: theta run: %w", err)
	}

	rateUp := contract
	rateUp.RiskFreeRate += rateBumpAbs
	rUp, err := e.Price(ctx, rateUp, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: rate up run: %w", err)
	}

	rateDown := contract
	rateDown.RiskFreeRate -= rateBumpAbs
	rDown, err := e.Price(ctx, rateDown, payoff)
	if err != nil {
		return models.Greeks{}, fmt.Errorf("Engine: finiteDifferenceGreeks: rate down run: %w", err)
	}

	volSpread := volUp.Volatility - volDown.Volatility

	return models.Greeks{
		Delta: (up.Price - down.Price) / (2 * h),
		Gamma: (up.Price - 2*base.Price + down.Price) / (h * h),
		Vega:  (vUp.Price - vDown.Price) / volSpread,
		Theta: (tDown.Price - base.Price) / thetaBump,
		Rho:   (rUp.Price - rDown.Price) / (2 * rateBumpAbs),
	}, nil
}

// pathwiseDeltaVega differentiates the discounted payoff along each GBM
// path. For a call, dS_T/dS_0 = S_T/S_0 and the indicator 1{S_T > K}
// survives the expectation; vega uses dS_T/dsigma in closed form.
func (e *Engine) pathwiseDeltaVega(ctx context.Context, contract models.OptionContract, payoff models.EuropeanPayoff) (float64, float64, error) {
	model := simulation.NewGBMFromContract(contract)

	df := math.Exp(-contract.RiskFreeRate * contract.TimeToExpiry)
	sigma := contract.Volatility
	t := contract.TimeToExpiry
	drift := contract.RiskFreeRate - contract.DividendYield

	var sumDelta, sumVega float64
	n := e.cfg.NumPaths
	buf := make([]float64, 2)

	rng := simulation.NewRand(e.cfg.Seed, 1)

	for i := 0; i < n; i++ {
		if i%e.cfg.BatchSize == 0 && ctx.Err() != nil {
			return 0, 0, fmt.Errorf("Engine: pathwiseDeltaVega: simulation aborted: %w", ctx.Err())
		}

		path := model.Path(rng, 1, buf)
		terminal := path[len(path)-1]

		inTheMoney := terminal > payoff.Strike
		sign := 1.0
		if !payoff.OptionType.IsCall() {
			inTheMoney = terminal < payoff.Strike
			sign = -1.0
		}

		if !inTheMoney {
			continue
		}

		// dS_T/dsigma = S_T * ((ln(S_T/S_0) - (r - q + sigma^2/2) T) / sigma)
		dVega := terminal * ((math.Log(terminal/contract.Spot) - (drift+0.5*sigma*sigma)*t) / sigma)

		sumDelta += sign * terminal / contract.Spot
		sumVega += sign * dVega
	}

	delta := df * sumDelta / float64(n)
	vega := df * sumVega / float64(n)

	return delta, vega, nil
}
