package chart

import (
	"math"
	"sort"
)

// silverman computes the Silverman rule-of-thumb bandwidth for a
// Gaussian kernel
func silverman(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 1
	}

	var (
		sd  = stdDev(values)
		iqr = interquartile(values)
	)

	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}

	if spread <= 0 {
		// degenerate sample, constant values
		return 1
	}

	return 0.9 * spread * math.Pow(n, -0.2)
}

// kde evaluates a Gaussian kernel density estimate of the sample
// at each of the given points
func kde(values, points []float64) []float64 {
	var (
		n = float64(len(values))
		h = silverman(values)

		norm = 1 / (n * h * math.Sqrt(2*math.Pi))

		out = make([]float64, len(points))
	)

	for i, p := range points {
		var sum float64

		for _, v := range values {
			u := (p - v) / h
			sum += math.Exp(-0.5 * u * u)
		}

		out[i] = norm * sum
	}

	return out
}

func stdDev(values []float64) float64 {
	n := float64(len(values))

	var mean float64
	for _, v := range values {
		mean += v
	}

	mean /= n

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}

	return math.Sqrt(ss / (n - 1))
}

// interquartile computes Q3 - Q1 using linear interpolation
func interquartile(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return quantile(sorted, 0.75) - quantile(sorted, 0.25)
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)

	var (
		lo   = int(math.Floor(pos))
		hi   = int(math.Ceil(pos))
		frac = pos - float64(lo)
	)

	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
