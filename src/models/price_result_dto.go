package models

type PriceResultDTO struct {
	RunID         string  `csv:"run_id"`
	Scenario      string  `csv:"scenario"`
	Price         float64 `csv:"price"`
	StdError      float64 `csv:"std_error"`
	CILower       float64 `csv:"ci_lower"`
	CIUpper       float64 `csv:"ci_upper"`
	NumPaths      int     `csv:"num_paths"`
	NumSteps      int     `csv:"num_steps"`
	AnalyticPrice float64 `csv:"analytic_price"`
	ElapsedMs     int64   `csv:"elapsed_ms"`
}

func (r PriceResult) ToDTO(scenario string) *PriceResultDTO {
	return &PriceResultDTO{
		RunID:         r.RunID.String(),
		Scenario:      scenario,
		Price:         r.Price,
		StdError:      r.StdError,
		CILower:       r.CILower,
		CIUpper:       r.CIUpper,
		NumPaths:      r.NumPaths,
		NumSteps:      r.NumSteps,
		AnalyticPrice: r.AnalyticPrice,
		ElapsedMs:     r.Elapsed.Milliseconds(),
	}
}

// ConvergencePointDTO records the running estimate after each batch round,
// exported so convergence can be inspected offline.
type ConvergencePointDTO struct {
	NumPaths int     `csv:"num_paths"`
	Price    float64 `csv:"price"`
	StdError float64 `csv:"std_error"`
}
