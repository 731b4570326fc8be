package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Decomposition is an additive split observed = trend + seasonal + residual.
// Trend and Residual are NaN where the centred moving average is undefined.
type Decomposition struct {
	Period   int
	Observed []float64
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Decompose applies a classical additive decomposition with the given period.
// The trend is a centred moving average (2xperiod for even periods), the
// seasonal component the per-phase mean of the detrended series shifted to
// zero mean. At least two full periods are required.
func Decompose(observed []float64, period int) (*Decomposition, error) {
	if period < 2 {
		return nil, fmt.Errorf("period must be at least 2, got %d", period)
	}
	n := len(observed)
	if n < 2*period {
		return nil, fmt.Errorf("%w: %d observations, need %d for period %d",
			ErrInsufficientHistory, n, 2*period, period)
	}

	trend := centredMovingAverage(observed, period)

	detrended := make([]float64, n)
	floats.SubTo(detrended, observed, trend)

	phaseMeans := make([]float64, period)
	for phase := 0; phase < period; phase++ {
		var vals []float64
		for i := phase; i < n; i += period {
			if !math.IsNaN(detrended[i]) {
				vals = append(vals, detrended[i])
			}
		}
		if len(vals) == 0 {
			phaseMeans[phase] = math.NaN()
			continue
		}
		phaseMeans[phase] = stat.Mean(vals, nil)
	}
	floats.AddConst(-stat.Mean(phaseMeans, nil), phaseMeans)

	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = phaseMeans[i%period]
	}

	residual := make([]float64, n)
	floats.SubTo(residual, detrended, seasonal)

	obs := make([]float64, n)
	copy(obs, observed)

	return &Decomposition{
		Period:   period,
		Observed: obs,
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}, nil
}

// centredMovingAverage filters x with a symmetric window of width period
// (odd) or period+1 with half weights at both ends (even). Positions the
// window does not fully cover are NaN.
func centredMovingAverage(x []float64, period int) []float64 {
	var weights []float64
	if period%2 == 0 {
		weights = make([]float64, period+1)
		for i := range weights {
			weights[i] = 1
		}
		weights[0], weights[period] = 0.5, 0.5
	} else {
		weights = make([]float64, period)
		for i := range weights {
			weights[i] = 1
		}
	}
	floats.Scale(1/float64(period), weights)

	half := len(weights) / 2
	out := make([]float64, len(x))
	for i := range x {
		if i < half || i+half >= len(x) {
			out[i] = math.NaN()
			continue
		}
		out[i] = floats.Dot(weights, x[i-half:i+half+1])
	}
	return out
}
