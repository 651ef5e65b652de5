package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/simulation"
)

// Engine prices options by Monte Carlo simulation over a worker pool.
// An Engine is stateless apart from its config and safe for concurrent
// use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Price runs the simulation for a contract under GBM dynamics. The
// analytic Black-Scholes price is not filled in here; callers that want
// the comparison set PriceResult.AnalyticPrice themselves.
func (e *Engine) Price(ctx context.Context, contract models.OptionContract, payoff models.Payoff) (models.PriceResult, error) {
	result, _, err := e.PriceDetailed(ctx, contract, payoff)
	return result, err
}

// PriceDetailed additionally returns the per-batch convergence trace.
func (e *Engine) PriceDetailed(ctx context.Context, contract models.OptionContract, payoff models.Payoff) (models.PriceResult, []models.ConvergencePointDTO, error) {
	if err := contract.Validate(); err != nil {
		return models.PriceResult{}, nil, fmt.Errorf("Engine: Price: %w", err)
	}

	if contract.TimeToExpiry <= 0 {
		// Expired contract: the payoff is deterministic at the spot.
		return models.PriceResult{
			RunID:    uuid.New(),
			Price:    payoff.Value([]float64{contract.Spot}),
			NumPaths: 1,
			NumSteps: 0,
		}, nil, nil
	}

	model := simulation.NewGBMFromContract(contract)

	if contract.Volatility == 0 {
		return e.priceDeterministic(contract, payoff, model)
	}

	return e.priceWithModel(ctx, model, contract, payoff, e.stepsFor(payoff))
}

// PriceWithModel prices a payoff under an alternative stochastic model,
// e.g. Merton jump diffusion. The contract still supplies the discount
// rate and maturity.
func (e *Engine) PriceWithModel(ctx context.Context, model simulation.Model, contract models.OptionContract, payoff models.Payoff) (models.PriceResult, error) {
	if err := contract.Validate(); err != nil {
		return models.PriceResult{}, fmt.Errorf("Engine: PriceWithModel: %w", err)
	}

	if contract.TimeToExpiry <= 0 {
		return models.PriceResult{
			RunID:    uuid.New(),
			Price:    payoff.Value([]float64{contract.Spot}),
			NumPaths: 1,
			NumSteps: 0,
		}, nil
	}

	// The one-step shortcut for terminal-only payoffs relies on the
	// exactness of the GBM scheme, which alternative models do not
	// guarantee, so the full step count is always used here.
	result, _, err := e.priceWithModel(ctx, model, contract, payoff, e.cfg.NumSteps)
	return result, err
}

// priceDeterministic handles zero volatility, where every path is the
// same forward curve and a single simulation suffices.
func (e *Engine) priceDeterministic(contract models.OptionContract, payoff models.Payoff, model simulation.Model) (models.PriceResult, []models.ConvergencePointDTO, error) {
	rng := simulation.NewRand(e.cfg.Seed, 0)
	path := model.Path(rng, e.stepsFor(payoff), nil)

	df := math.Exp(-contract.RiskFreeRate * contract.TimeToExpiry)
	price := df * payoff.Value(path)

	return models.PriceResult{
		RunID:    uuid.New(),
		Price:    price,
		CILower:  price,
		CIUpper:  price,
		NumPaths: 1,
		NumSteps: len(path) - 1,
	}, nil, nil
}

func (e *Engine) stepsFor(payoff models.Payoff) int {
	// Terminal-only payoffs do not need intermediate steps under an
	// exact scheme.
	if !payoff.PathDependent() {
		return 1
	}

	return e.cfg.NumSteps
}

func (e *Engine) priceWithModel(ctx context.Context, model simulation.Model, contract models.OptionContract, payoff models.Payoff, steps int) (models.PriceResult, []models.ConvergencePointDTO, error) {
	start := time.Now()
	df := math.Exp(-contract.RiskFreeRate * contract.TimeToExpiry)

	// The control variate is the undiscounted terminal price, whose
	// risk-neutral mean is the forward. Path-dependent payoffs still
	// correlate with the terminal price, so the control stays useful.
	useControl := e.cfg.ControlVariate
	controlMean := contract.Spot * math.Exp((contract.RiskFreeRate-contract.DividendYield)*contract.TimeToExpiry)

	// With antithetic sampling each sample is the average of a mirrored
	// pair, so the sample budget is half the path budget, rounded down
	// so the reported path count never exceeds the configured one.
	sampleBudget := e.cfg.NumPaths
	pathsPerSample := 1
	if e.cfg.Antithetic {
		pathsPerSample = 2
		sampleBudget = e.cfg.NumPaths / 2
		if sampleBudget < 1 {
			sampleBudget = 1
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Every batch draws from its own PCG stream keyed by batch index, so
	// the simulated sample set does not depend on how the scheduler
	// spreads batches across workers. Stream 0 is reserved for
	// deterministic single-path runs.
	numBatches := (sampleBudget + e.cfg.BatchSize - 1) / e.cfg.BatchSize

	type batchJob struct {
		idx int
		n   int
	}

	type batchOut struct {
		idx int
		agg aggregate
	}

	jobs := make(chan batchJob)
	results := make(chan batchOut, e.cfg.Workers)

	go func() {
		defer close(jobs)

		remaining := sampleBudget
		for idx := 0; remaining > 0; idx++ {
			n := e.cfg.BatchSize
			if n > remaining {
				n = remaining
			}

			select {
			case jobs <- batchJob{idx: idx, n: n}:
				remaining -= n
			case <-runCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			buf := make([]float64, steps+1)

			for job := range jobs {
				rng := simulation.NewRand(e.cfg.Seed, uint64(job.idx)+1)
				rec := simulation.NewRecordingSampler(rng)

				agg := e.runBatch(model, payoff, rng, rec, buf, job.n, steps)

				select {
				case results <- batchOut{idx: job.idx, agg: agg}:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// The running total tracks arrival order for the convergence check;
	// the final estimate re-merges in batch order so a full run is
	// bit-for-bit reproducible.
	batches := make([]aggregate, numBatches)
	var running aggregate
	var trace []models.ConvergencePointDTO

	for out := range results {
		batches[out.idx] = out.agg
		running.merge(out.agg)

		mean, stdErr := running.estimate(useControl, controlMean)
		trace = append(trace, models.ConvergencePointDTO{
			NumPaths: running.n * pathsPerSample,
			Price:    df * mean,
			StdError: df * stdErr,
		})

		if e.cfg.TargetStdError > 0 && df*stdErr <= e.cfg.TargetStdError {
			cancel()
		}
	}

	if err := ctx.Err(); err != nil {
		return models.PriceResult{}, nil, fmt.Errorf("Engine: priceWithModel: simulation aborted: %w", err)
	}

	var total aggregate
	for _, agg := range batches {
		total.merge(agg)
	}

	mean, stdErr := total.estimate(useControl, controlMean)
	price := df * mean
	ci := zScore95 * df * stdErr

	result := models.PriceResult{
		RunID:    uuid.New(),
		Price:    price,
		StdError: df * stdErr,
		CILower:  price - ci,
		CIUpper:  price + ci,
		NumPaths: total.n * pathsPerSample,
		NumSteps: steps,
		Elapsed:  time.Since(start),
	}

	log.WithFields(log.Fields{
		"run_id":    result.RunID,
		"model":     model.Describe(),
		"payoff":    payoff.Description(),
		"num_paths": result.NumPaths,
		"std_error": result.StdError,
		"elapsed":   result.Elapsed,
	}).Debug("Engine: pricing run complete")

	return result, trace, nil
}

func (e *Engine) runBatch(model simulation.Model, payoff models.Payoff, rng simulation.Sampler, rec *simulation.RecordingSampler, buf []float64, n, steps int) aggregate {
	var agg aggregate

	for i := 0; i < n; i++ {
		if e.cfg.Antithetic {
			rec.Reset()

			path := model.Path(rec, steps, buf)
			y1 := payoff.Value(path)
			x1 := path[len(path)-1]

			mirror := model.Path(rec.Antithetic(), steps, buf)
			y2 := payoff.Value(mirror)
			x2 := mirror[len(mirror)-1]

			agg.add((y1+y2)/2, (x1+x2)/2)
			continue
		}

		path := model.Path(rng, steps, buf)
		agg.add(payoff.Value(path), path[len(path)-1])
	}

	return agg
}
