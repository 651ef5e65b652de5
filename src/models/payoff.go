package models

import (
	"fmt"
	"math"
)

// Payoff maps a simulated price path to the option's payout at expiry. The
// path always starts at the spot price, so terminal-only payoffs read the
// last element. Payoffs that report PathDependent() == false allow the
// engine to skip intermediate time steps and sample the terminal price
// directly.
type Payoff interface {
	Value(path []float64) float64
	PathDependent() bool
	Description() string
}

type EuropeanPayoff struct {
	Strike     float64
	OptionType OptionType
}

func (p EuropeanPayoff) Value(path []float64) float64 {
	return vanillaPayoff(path[len(path)-1], p.Strike, p.OptionType)
}

func (p EuropeanPayoff) PathDependent() bool {
	return false
}

func (p EuropeanPayoff) Description() string {
	return fmt.Sprintf("european %s @ %.2f", p.OptionType, p.Strike)
}

// AsianPayoff settles against the average price over the path. Geometric
// averaging uses the mean of log prices.
type AsianPayoff struct {
	Strike     float64
	OptionType OptionType
	Geometric  bool
}

func (p AsianPayoff) Value(path []float64) float64 {
	var avg float64
	if p.Geometric {
		sumLog := 0.0
		for _, s := range path {
			sumLog += math.Log(s)
		}
		avg = math.Exp(sumLog / float64(len(path)))
	} else {
		sum := 0.0
		for _, s := range path {
			sum += s
		}
		avg = sum / float64(len(path))
	}

	return vanillaPayoff(avg, p.Strike, p.OptionType)
}

func (p AsianPayoff) PathDependent() bool {
	return true
}

func (p AsianPayoff) Description() string {
	kind := "arithmetic"
	if p.Geometric {
		kind = "geometric"
	}
	return fmt.Sprintf("%s asian %s @ %.2f", kind, p.OptionType, p.Strike)
}

type BarrierDirection string

const (
	BarrierUp   BarrierDirection = "up"
	BarrierDown BarrierDirection = "down"
)

// BarrierPayoff is a knock-in or knock-out vanilla option. Monitoring is
// discrete at the simulated time steps.
type BarrierPayoff struct {
	Strike     float64
	Barrier    float64
	OptionType OptionType
	Direction  BarrierDirection
	KnockIn    bool
}

func (p BarrierPayoff) Value(path []float64) float64 {
	hit := false
	for _, s := range path {
		if p.Direction == BarrierUp && s >= p.Barrier {
			hit = true
			break
		}
		if p.Direction == BarrierDown && s <= p.Barrier {
			hit = true
			break
		}
	}

	if p.KnockIn != hit {
		return 0
	}

	return vanillaPayoff(path[len(path)-1], p.Strike, p.OptionType)
}

func (p BarrierPayoff) PathDependent() bool {
	return true
}

func (p BarrierPayoff) Description() string {
	kind := "out"
	if p.KnockIn {
		kind = "in"
	}
	return fmt.Sprintf("%s-and-%s barrier %s @ %.2f, barrier %.2f", p.Direction, kind, p.OptionType, p.Strike, p.Barrier)
}

// DigitalPayoff pays a fixed cash amount when it finishes in the money.
type DigitalPayoff struct {
	Strike     float64
	CashAmount float64
	OptionType OptionType
}

func (p DigitalPayoff) Value(path []float64) float64 {
	terminal := path[len(path)-1]

	if p.OptionType.IsCall() {
		if terminal > p.Strike {
			return p.CashAmount
		}
		return 0
	}

	if terminal < p.Strike {
		return p.CashAmount
	}
	return 0
}

func (p DigitalPayoff) PathDependent() bool {
	return false
}

func (p DigitalPayoff) Description() string {
	return fmt.Sprintf("digital %s @ %.2f paying %.2f", p.OptionType, p.Strike, p.CashAmount)
}

// LookbackPayoff settles against the path extreme: the maximum for calls,
// the minimum for puts (fixed strike).
type LookbackPayoff struct {
	Strike     float64
	OptionType OptionType
}

func (p LookbackPayoff) Value(path []float64) float64 {
	if p.OptionType.IsCall() {
		best := path[0]
		for _, s := range path[1:] {
			if s > best {
				best = s
			}
		}
		return math.Max(best-p.Strike, 0)
	}

	worst := path[0]
	for _, s := range path[1:] {
		if s < worst {
			worst = s
		}
	}
	return math.Max(p.Strike-worst, 0)
}

func (p LookbackPayoff) PathDependent() bool {
	return true
}

func (p LookbackPayoff) Description() string {
	return fmt.Sprintf("fixed-strike lookback %s @ %.2f", p.OptionType, p.Strike)
}

func vanillaPayoff(price, strike float64, optionType OptionType) float64 {
	if optionType.IsCall() {
		return math.Max(price-strike, 0)
	}

	return math.Max(strike-price, 0)
}
