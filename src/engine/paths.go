package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/simulation"
)

// SimulatePaths materializes the full path matrix for a contract under
// GBM dynamics: NumPaths rows of NumSteps+1 prices, each row starting at
// the spot. Every path draws from its own PCG stream derived from the
// base seed, so the matrix does not depend on scheduling order.
func (e *Engine) SimulatePaths(ctx context.Context, contract models.OptionContract) ([][]float64, error) {
	if err := contract.Validate(); err != nil {
		return nil, fmt.Errorf("Engine: SimulatePaths: %w", err)
	}

	return e.SimulateModelPaths(ctx, simulation.NewGBMFromContract(contract), e.cfg.NumPaths, e.cfg.NumSteps)
}

// SimulateModelPaths is the model-agnostic variant of SimulatePaths.
func (e *Engine) SimulateModelPaths(ctx context.Context, model simulation.Model, numPaths, numSteps int) ([][]float64, error) {
	allPaths := make([][]float64, numPaths)

	var wg sync.WaitGroup
	wg.Add(numPaths)

	// Bound concurrency with a semaphore rather than spawning an
	// unbounded goroutine per path.
	sem := make(chan struct{}, e.cfg.Workers)

	for i := 0; i < numPaths; i++ {
		go func(pathIdx int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			rng := simulation.NewRand(e.cfg.Seed, uint64(pathIdx)+1)
			allPaths[pathIdx] = model.Path(rng, numSteps, nil)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Engine: SimulateModelPaths: simulation aborted: %w", err)
	}

	return allPaths, nil
}

// SimulateTerminalReturns simulates horizon returns (S_T - S_0) / S_0 of
// the underlying, the input for tail-risk metrics.
func (e *Engine) SimulateTerminalReturns(ctx context.Context, model simulation.Model, numSteps int) ([]float64, error) {
	paths, err := e.SimulateModelPaths(ctx, model, e.cfg.NumPaths, numSteps)
	if err != nil {
		return nil, fmt.Errorf("Engine: SimulateTerminalReturns: %w", err)
	}

	returns := make([]float64, len(paths))
	for i, path := range paths {
		initial := path[0]
		terminal := path[len(path)-1]
		returns[i] = (terminal - initial) / initial
	}

	return returns, nil
}
