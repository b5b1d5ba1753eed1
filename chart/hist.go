package chart

import "math"

// binCount applies Sturges' formula
func binCount(n int) int {
	if n <= 1 {
		return 1
	}

	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// binEdges splits [min, max] into count equal-width bins.
// A degenerate range is widened so every bin has a non-zero width
func binEdges(minVal, maxVal float64, count int) []float64 {
	if minVal == maxVal {
		minVal -= 0.5
		maxVal += 0.5
	}

	var (
		width = (maxVal - minVal) / float64(count)
		edges = make([]float64, count+1)
	)

	for i := range edges {
		edges[i] = minVal + float64(i)*width
	}

	// avoid excluding the max value through float drift
	edges[count] = maxVal

	return edges
}

// binCenters returns the midpoint of every bin
func binCenters(edges []float64) []float64 {
	centers := make([]float64, len(edges)-1)

	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}

	return centers
}

// densities assigns the sample to the given bins and normalizes the
// counts so the histogram integrates to one over the sample alone.
// Each variable is therefore normalized independently of the others
func densities(values, edges []float64) []float64 {
	var (
		bins = len(edges) - 1
		out  = make([]float64, bins)
	)

	if len(values) == 0 || bins == 0 {
		return out
	}

	for _, v := range values {
		idx := locateBin(v, edges)
		if idx >= 0 {
			out[idx]++
		}
	}

	n := float64(len(values))

	for i := range out {
		width := edges[i+1] - edges[i]
		if width > 0 {
			out[i] /= n * width
		}
	}

	return out
}

// locateBin finds the bin holding v; the final bin is right-closed
func locateBin(v float64, edges []float64) int {
	if v < edges[0] || v > edges[len(edges)-1] {
		return -1
	}

	for i := 1; i < len(edges); i++ {
		if v < edges[i] {
			return i - 1
		}
	}

	return len(edges) - 2
}
