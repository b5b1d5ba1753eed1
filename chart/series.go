package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sig-0/ratescope/frame"
)

// Series builds the bid/ask time-series chart: two overlaid line traces
// over the effective date axis, composed on a dark background.
// No interactive range control is attached
func Series(t *frame.Table) (Figure, error) {
	if !frame.IsCanonical(t) {
		return nil, frame.ErrTableShape
	}

	dates := make([]string, t.Len())
	for i, d := range t.Dates {
		dates[i] = d.Format("2006-01-02")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Time Series of Rates",
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
			// rates sit far from zero, don't anchor the axis there
			Scale: opts.Bool(true),
		}),
	)

	line.SetXAxis(dates)

	traces := []struct {
		name  string
		color string
	}{
		{frame.ColumnBid, bidColor},
		{frame.ColumnAsk, askColor},
	}

	for _, trace := range traces {
		column, _ := t.Column(trace.name)

		data := make([]opts.LineData, len(column.Values))
		for i, v := range column.Values {
			data[i] = opts.LineData{Value: v.InexactFloat64()}
		}

		line.AddSeries(
			trace.name,
			data,
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: trace.color,
				Width: 1,
			}),
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(false),
			}),
		)
	}

	return line, nil
}
