package models

import (
	"fmt"
	"strings"
)

type ScenarioConfigYAML struct {
	Scenarios []ScenarioYAML `yaml:"scenarios"`
}

type ScenarioYAML struct {
	Name          string  `yaml:"name"`
	Underlying    string  `yaml:"underlying"`
	Spot          float64 `yaml:"spot"`
	Strike        float64 `yaml:"strike"`
	TimeToExpiry  float64 `yaml:"time_to_expiry"`
	RiskFreeRate  float64 `yaml:"risk_free_rate"`
	Volatility    float64 `yaml:"volatility"`
	DividendYield float64 `yaml:"dividend_yield"`
	OptionType    string  `yaml:"option_type"`
}

func (s *ScenarioConfigYAML) GetScenario(name string) (*ScenarioYAML, error) {
	n1 := strings.ToLower(name)
	for _, scenario := range s.Scenarios {
		n2 := strings.ToLower(scenario.Name)
		if n1 == n2 {
			return &scenario, nil
		}
	}

	return nil, fmt.Errorf("ScenarioConfigYAML: scenario not found")
}

func (s ScenarioYAML) ToContract() (OptionContract, error) {
	contract := OptionContract{
		Underlying:    s.Underlying,
		Spot:          s.Spot,
		Strike:        s.Strike,
		TimeToExpiry:  s.TimeToExpiry,
		RiskFreeRate:  s.RiskFreeRate,
		Volatility:    s.Volatility,
		DividendYield: s.DividendYield,
		OptionType:    OptionType(s.OptionType),
	}

	if err := contract.Validate(); err != nil {
		return OptionContract{}, fmt.Errorf("ScenarioYAML: ToContract: %w", err)
	}

	return contract, nil
}
