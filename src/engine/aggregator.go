package engine

import "math"

// zScore95 is the two-sided critical value for a 95% confidence interval.
const zScore95 = 1.96

// aggregate accumulates undiscounted payoff samples (y) and terminal
// control samples (x) so batches can be merged without retaining
// individual paths.
type aggregate struct {
	n     int
	sumY  float64
	sumY2 float64
	sumX  float64
	sumX2 float64
	sumXY float64
}

func (a *aggregate) add(y, x float64) {
	a.n++
	a.sumY += y
	a.sumY2 += y * y
	a.sumX += x
	a.sumX2 += x * x
	a.sumXY += x * y
}

func (a *aggregate) merge(b aggregate) {
	a.n += b.n
	a.sumY += b.sumY
	a.sumY2 += b.sumY2
	a.sumX += b.sumX
	a.sumX2 += b.sumX2
	a.sumXY += b.sumXY
}

func (a *aggregate) meanY() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sumY / float64(a.n)
}

func (a *aggregate) varY() float64 {
	if a.n == 0 {
		return 0
	}
	m := a.meanY()
	v := a.sumY2/float64(a.n) - m*m
	return math.Max(v, 0)
}

func (a *aggregate) meanX() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sumX / float64(a.n)
}

func (a *aggregate) varX() float64 {
	if a.n == 0 {
		return 0
	}
	m := a.meanX()
	v := a.sumX2/float64(a.n) - m*m
	return math.Max(v, 0)
}

func (a *aggregate) covXY() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sumXY/float64(a.n) - a.meanX()*a.meanY()
}

// estimate returns the undiscounted mean payoff and its standard error.
// When a control mean is supplied (controlMean > 0), the control-variate
// adjustment Y - beta*(X - E[X]) is applied analytically from the
// accumulated cross moments.
func (a *aggregate) estimate(useControl bool, controlMean float64) (mean, stdErr float64) {
	if a.n == 0 {
		return 0, 0
	}

	mean = a.meanY()
	variance := a.varY()

	if useControl {
		if vx := a.varX(); vx > 0 {
			cov := a.covXY()
			beta := cov / vx
			mean -= beta * (a.meanX() - controlMean)
			variance = math.Max(variance-cov*cov/vx, 0)
		}
	}

	stdErr = math.Sqrt(variance / float64(a.n))
	return mean, stdErr
}
