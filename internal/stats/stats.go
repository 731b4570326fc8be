// Package stats holds the aggregations and statistical transforms behind the
// dashboard charts. Everything here is a thin layer over gonum.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientHistory is returned when a series is shorter than two
	// full seasonal periods
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrDegenerateCorrelation is returned for fewer than two variables
	ErrDegenerateCorrelation = errors.New("degenerate correlation")
)

// CorrelationMatrix returns the Pearson correlation of every pair of columns.
// The result is symmetric. A column with zero variance correlates as NaN with
// everything, including itself; every other diagonal entry is exactly 1.
func CorrelationMatrix(columns [][]float64) (*mat.SymDense, error) {
	k := len(columns)
	if k < 2 {
		return nil, fmt.Errorf("%w: %d variable(s)", ErrDegenerateCorrelation, k)
	}
	n := len(columns[0])
	for i, c := range columns {
		if len(c) != n {
			return nil, fmt.Errorf("column %d has %d values, expected %d", i, len(c), n)
		}
	}

	constant := make([]bool, k)
	for i, c := range columns {
		constant[i] = n < 2 || floats.Max(c) == floats.Min(c)
	}

	corr := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			switch {
			case constant[i] || constant[j]:
				corr.SetSym(i, j, math.NaN())
			case i == j:
				corr.SetSym(i, j, 1)
			default:
				corr.SetSym(i, j, stat.Correlation(columns[i], columns[j], nil))
			}
		}
	}
	return corr, nil
}

// MeanByKey averages values per integer key and returns keys ascending
func MeanByKey(keys []int, values []float64) ([]int, []float64) {
	groups := GroupByKey(keys, values)
	sorted := sortedKeys(groups)
	means := make([]float64, len(sorted))
	for i, k := range sorted {
		means[i] = stat.Mean(groups[k], nil)
	}
	return sorted, means
}

// GroupByKey collects values per integer key, preserving row order within a
// group
func GroupByKey(keys []int, values []float64) map[int][]float64 {
	groups := make(map[int][]float64)
	for i, k := range keys {
		groups[k] = append(groups[k], values[i])
	}
	return groups
}

func sortedKeys(groups map[int][]float64) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MeanByDate averages values per calendar date, dates ascending
func MeanByDate(dates []time.Time, values []float64) ([]time.Time, []float64) {
	return reduceByDate(dates, values, func(v []float64) float64 { return stat.Mean(v, nil) })
}

// SumByDate totals values per calendar date, dates ascending
func SumByDate(dates []time.Time, values []float64) ([]time.Time, []float64) {
	return reduceByDate(dates, values, floats.Sum)
}

func reduceByDate(dates []time.Time, values []float64, reduce func([]float64) float64) ([]time.Time, []float64) {
	groups := make(map[time.Time][]float64)
	for i, d := range dates {
		groups[d] = append(groups[d], values[i])
	}
	keys := make([]time.Time, 0, len(groups))
	for d := range groups {
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]float64, len(keys))
	for i, d := range keys {
		out[i] = reduce(groups[d])
	}
	return keys, out
}
