package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jiaming2012/option-pricer/src/models"
)

// lsmDegree is the order of the polynomial basis used to regress
// continuation values. Quadratic is the standard Longstaff-Schwartz
// choice.
const lsmDegree = 2

// LongstaffSchwartz prices an American option by least-squares Monte
// Carlo: simulate GBM paths forward, then walk backwards comparing the
// immediate exercise value against a regression estimate of the
// continuation value on the in-the-money paths.
func (e *Engine) LongstaffSchwartz(ctx context.Context, contract models.OptionContract) (models.PriceResult, error) {
	if err := contract.Validate(); err != nil {
		return models.PriceResult{}, fmt.Errorf("Engine: LongstaffSchwartz: %w", err)
	}

	if contract.TimeToExpiry <= 0 {
		return models.PriceResult{
			RunID:    uuid.New(),
			Price:    contract.IntrinsicValue(),
			NumPaths: 1,
		}, nil
	}

	paths, err := e.SimulatePaths(ctx, contract)
	if err != nil {
		return models.PriceResult{}, fmt.Errorf("Engine: LongstaffSchwartz: %w", err)
	}

	steps := e.cfg.NumSteps
	dt := contract.TimeToExpiry / float64(steps)
	df := math.Exp(-contract.RiskFreeRate * dt)

	exercise := func(s float64) float64 {
		if contract.OptionType.IsCall() {
			return math.Max(s-contract.Strike, 0)
		}
		return math.Max(contract.Strike-s, 0)
	}

	cashFlows := make([]float64, len(paths))
	for i := range cashFlows {
		cashFlows[i] = exercise(paths[i][steps])
	}

	for t := steps - 1; t > 0; t-- {
		if ctx.Err() != nil {
			return models.PriceResult{}, fmt.Errorf("Engine: LongstaffSchwartz: simulation aborted: %w", ctx.Err())
		}

		var xData, yData []float64
		var indices []int

		for i := range paths {
			s := paths[i][t]
			if exercise(s) > 0 {
				xData = append(xData, s)
				yData = append(yData, cashFlows[i]*df)
				indices = append(indices, i)
			} else {
				cashFlows[i] *= df
			}
		}

		if len(indices) <= lsmDegree+1 {
			for _, i := range indices {
				cashFlows[i] *= df
			}
			continue
		}

		coeffs, err := polyFit(xData, yData, lsmDegree)
		if err != nil {
			return models.PriceResult{}, fmt.Errorf("Engine: LongstaffSchwartz: regression at step %d: %w", t, err)
		}

		for idx, i := range indices {
			s := xData[idx]
			immediate := exercise(s)

			continuation := 0.0
			for d := 0; d <= lsmDegree; d++ {
				continuation += coeffs[d] * math.Pow(s, float64(d))
			}

			if immediate >= continuation {
				cashFlows[i] = immediate
			} else {
				cashFlows[i] *= df
			}
		}
	}

	var sum, sumSq float64
	for _, cf := range cashFlows {
		v := cf * df
		sum += v
		sumSq += v * v
	}

	n := float64(len(cashFlows))
	mean := sum / n
	variance := math.Max(sumSq/n-mean*mean, 0)
	stdErr := math.Sqrt(variance / n)
	ci := zScore95 * stdErr

	// The time-zero exercise decision: exercising immediately is always
	// available, so the continuation estimate is floored at the
	// deterministic exercise value.
	price := math.Max(mean, contract.IntrinsicValue())

	return models.PriceResult{
		RunID:    uuid.New(),
		Price:    price,
		StdError: stdErr,
		CILower:  price - ci,
		CIUpper:  price + ci,
		NumPaths: len(paths),
		NumSteps: steps,
	}, nil
}

// polyFit solves the least-squares polynomial fit via the normal
// equations. The system is (degree+1) x (degree+1), small enough for
// straight Gaussian elimination with partial pivoting.
func polyFit(x, y []float64, degree int) ([]float64, error) {
	m := degree + 1

	// Build A^T*A and A^T*y for the Vandermonde matrix A.
	ata := make([][]float64, m)
	aty := make([]float64, m)
	for i := range ata {
		ata[i] = make([]float64, m)
	}

	for k := range x {
		powers := make([]float64, m)
		p := 1.0
		for d := 0; d < m; d++ {
			powers[d] = p
			p *= x[k]
		}

		for i := 0; i < m; i++ {
			aty[i] += powers[i] * y[k]
			for j := 0; j < m; j++ {
				ata[i][j] += powers[i] * powers[j]
			}
		}
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < m; col++ {
		pivot := col
		for row := col + 1; row < m; row++ {
			if math.Abs(ata[row][col]) > math.Abs(ata[pivot][col]) {
				pivot = row
			}
		}

		if math.Abs(ata[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("polyFit: singular normal equations at column %d", col)
		}

		ata[col], ata[pivot] = ata[pivot], ata[col]
		aty[col], aty[pivot] = aty[pivot], aty[col]

		for row := col + 1; row < m; row++ {
			factor := ata[row][col] / ata[col][col]
			for j := col; j < m; j++ {
				ata[row][j] -= factor * ata[col][j]
			}
			aty[row] -= factor * aty[col]
		}
	}

	coeffs := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		sum := aty[i]
		for j := i + 1; j < m; j++ {
			sum -= ata[i][j] * coeffs[j]
		}
		coeffs[i] = sum / ata[i][i]
	}

	return coeffs, nil
}
