package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceResult is the output of a single Monte Carlo pricing run.
type PriceResult struct {
	RunID         uuid.UUID     `json:"run_id"`
	Price         float64       `json:"price"`
	StdError      float64       `json:"std_error"`
	CILower       float64       `json:"ci_lower"`
	CIUpper       float64       `json:"ci_upper"`
	NumPaths      int           `json:"num_paths"`
	NumSteps      int           `json:"num_steps"`
	AnalyticPrice float64       `json:"analytic_price,omitempty"`
	Elapsed       time.Duration `json:"elapsed"`
}

func (r PriceResult) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{"price", "std error", "95% ci", "paths"})

	price := fmt.Sprintf("$%s", p.Sprintf("%.4f", r.Price))
	stdError := fmt.Sprintf("$%.4f", r.StdError)
	ci := fmt.Sprintf("[$%.4f, $%.4f]", r.CILower, r.CIUpper)
	paths := p.Sprintf("%d", r.NumPaths)

	table.Append([]string{price, stdError, ci, paths})
	table.Render()

	return display.String()
}

type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// RiskReport summarizes tail risk of the simulated terminal return
// distribution at a given confidence level.
type RiskReport struct {
	Confidence        float64 `json:"confidence"`
	ValueAtRisk       float64 `json:"value_at_risk"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
	MeanReturn        float64 `json:"mean_return"`
	StdDevReturn      float64 `json:"std_dev_return"`
	NumPaths          int     `json:"num_paths"`
}
