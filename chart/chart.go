// Package chart builds the two chart representations of a canonical
// bid/ask table: a density histogram with kernel-density overlays and a
// dark-themed time-series line chart.
//
// The package computes the shaped data (bins, densities, KDE samples,
// traces) and hands it to go-echarts for drawing; rasterization and
// display are the caller's concern
package chart

import "io"

// Figure is an opaque, renderable chart handle
type Figure interface {
	// Render writes the chart as a standalone HTML document
	Render(w io.Writer) error
}

// Dashboard surface palette
const (
	backgroundColor = "#0e1117"
	textColor       = "#fafafa"

	bidColor = "lightblue"
	askColor = "orange"
)
