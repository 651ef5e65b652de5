package models

import (
	"fmt"
	"math"
)

// OptionContract holds the market and contract terms needed to price a
// single vanilla or exotic option.
type OptionContract struct {
	Underlying    string     `json:"underlying"`
	Spot          float64    `json:"spot"`
	Strike        float64    `json:"strike"`
	TimeToExpiry  float64    `json:"time_to_expiry"` // in years
	RiskFreeRate  float64    `json:"risk_free_rate"`
	Volatility    float64    `json:"volatility"`
	DividendYield float64    `json:"dividend_yield"`
	OptionType    OptionType `json:"option_type"`
}

func (c OptionContract) Validate() error {
	if err := c.OptionType.Validate(); err != nil {
		return fmt.Errorf("OptionContract: Validate: %w", err)
	}

	if c.Spot <= 0 {
		return fmt.Errorf("OptionContract: Validate: spot must be positive, got %v", c.Spot)
	}

	if c.Strike <= 0 {
		return fmt.Errorf("OptionContract: Validate: strike must be positive, got %v", c.Strike)
	}

	if c.TimeToExpiry < 0 {
		return fmt.Errorf("OptionContract: Validate: time to expiry cannot be negative, got %v", c.TimeToExpiry)
	}

	if c.Volatility < 0 {
		return fmt.Errorf("OptionContract: Validate: volatility cannot be negative, got %v", c.Volatility)
	}

	if math.IsNaN(c.Spot) || math.IsNaN(c.Strike) || math.IsNaN(c.TimeToExpiry) || math.IsNaN(c.RiskFreeRate) || math.IsNaN(c.Volatility) || math.IsNaN(c.DividendYield) {
		return fmt.Errorf("OptionContract: Validate: contract contains NaN inputs")
	}

	return nil
}

// IntrinsicValue is the exercise value at the current spot.
func (c OptionContract) IntrinsicValue() float64 {
	if c.OptionType.IsCall() {
		return math.Max(c.Spot-c.Strike, 0)
	}

	return math.Max(c.Strike-c.Spot, 0)
}
