package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sig-0/ratescope/frame"
)

// Histogram builds the bid/ask distribution chart: one density-normalized
// histogram per variable with a Gaussian KDE curve overlaid on each.
// The spread column is excluded before melting.
//
// Variables are normalized independently, not jointly, so each
// histogram integrates to one on its own
func Histogram(t *frame.Table, width, height int) (Figure, error) {
	if !frame.IsCanonical(t) {
		return nil, frame.ErrTableShape
	}

	var (
		melted = frame.Melt(t, frame.ColumnSpread)

		order   = make([]string, 0, 2)
		samples = make(map[string][]float64, 2)
	)

	// Group the melted rows by variable, keeping the melt group order
	for _, row := range melted {
		if _, ok := samples[row.Variable]; !ok {
			order = append(order, row.Variable)
		}

		samples[row.Variable] = append(
			samples[row.Variable],
			row.Value.InexactFloat64(),
		)
	}

	// Shared bin edges keep both variables on one axis
	var (
		lo, hi = sampleRange(melted)
		edges  = binEdges(lo, hi, binCount(t.Len()))

		centers = binCenters(edges)
		labels  = make([]string, len(centers))
	)

	for i, c := range centers {
		labels[i] = fmt.Sprintf("%.4f", c)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           fmt.Sprintf("%dpx", width),
			Height:          fmt.Sprintf("%dpx", height),
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Histogram of Rates",
			TitleStyle: &opts.TextStyle{
				Color: textColor,
			},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			TextStyle: &opts.TextStyle{
				Color: textColor,
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "density",
		}),
	)

	bar.SetXAxis(labels)

	colors := map[string]string{
		frame.ColumnBid: bidColor,
		frame.ColumnAsk: askColor,
	}

	for _, variable := range order {
		density := densities(samples[variable], edges)

		data := make([]opts.BarData, len(density))
		for i, d := range density {
			data[i] = opts.BarData{Value: d}
		}

		bar.AddSeries(
			variable,
			data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   colors[variable],
				Opacity: 0.45,
			}),
			charts.WithBarChartOpts(opts.BarChart{
				// overlay variables instead of placing them side by side
				BarGap: "-100%",
			}),
		)
	}

	// KDE curves share the histogram bin centers as their x axis
	kdeLine := charts.NewLine()
	kdeLine.SetXAxis(labels)

	for _, variable := range order {
		estimate := kde(samples[variable], centers)

		data := make([]opts.LineData, len(estimate))
		for i, d := range estimate {
			data[i] = opts.LineData{Value: d}
		}

		kdeLine.AddSeries(
			variable+" kde",
			data,
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: colors[variable],
				Width: 2,
			}),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(false),
			}),
		)
	}

	bar.Overlap(kdeLine)

	return bar, nil
}

// sampleRange finds the global value range of the melted rows
func sampleRange(melted []frame.MeltedRow) (float64, float64) {
	var (
		lo = melted[0].Value.InexactFloat64()
		hi = lo
	)

	for _, row := range melted[1:] {
		v := row.Value.InexactFloat64()

		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return lo, hi
}
