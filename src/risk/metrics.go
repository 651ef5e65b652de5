package risk

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/option-pricer/src/models"
)

// Report computes Value at Risk and Expected Shortfall from a set of
// simulated horizon returns. VaR is the loss quantile at the confidence
// level; ES is the mean loss beyond it, so ES >= VaR always holds.
func Report(returns []float64, confidence float64) (models.RiskReport, error) {
	if len(returns) == 0 {
		return models.RiskReport{}, fmt.Errorf("Report: no returns provided")
	}

	if confidence <= 0 || confidence >= 1 {
		return models.RiskReport{}, fmt.Errorf("Report: confidence must be in (0, 1), got %v", confidence)
	}

	losses := make([]float64, len(returns))
	for i, r := range returns {
		losses[i] = -r
	}

	valueAtRisk, err := stats.Percentile(losses, confidence*100)
	if err != nil {
		return models.RiskReport{}, fmt.Errorf("Report: failed to calculate VaR percentile: %v", err)
	}

	var tail []float64
	for _, loss := range losses {
		if loss >= valueAtRisk {
			tail = append(tail, loss)
		}
	}

	expectedShortfall, err := stats.Mean(tail)
	if err != nil {
		return models.RiskReport{}, fmt.Errorf("Report: failed to calculate expected shortfall: %v", err)
	}

	meanReturn, err := stats.Mean(returns)
	if err != nil {
		return models.RiskReport{}, fmt.Errorf("Report: failed to calculate mean return: %v", err)
	}

	stdDevReturn, err := stats.StandardDeviation(returns)
	if err != nil {
		return models.RiskReport{}, fmt.Errorf("Report: failed to calculate the standard deviation: %v", err)
	}

	return models.RiskReport{
		Confidence:        confidence,
		ValueAtRisk:       valueAtRisk,
		ExpectedShortfall: expectedShortfall,
		MeanReturn:        meanReturn,
		StdDevReturn:      stdDevReturn,
		NumPaths:          len(returns),
	}, nil
}
