package frame

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Stats is the per-variable aggregate of a summary
type Stats struct {
	Variable string          `json:"variable"`
	Min      decimal.Decimal `json:"min"`
	Mean     decimal.Decimal `json:"mean"`
	Max      decimal.Decimal `json:"max"`
}

// Summary holds per-variable aggregates, in ascending
// lexicographic variable order
type Summary []Stats

// Summarize aggregates the canonical table into per-variable
// min / mean / max.
//
// The grouping key is the melted variable name; the emitted order is
// lexicographic regardless of the table's column order. The input is
// never modified
func Summarize(t *Table) (Summary, error) {
	if !IsCanonical(t) {
		return nil, ErrTableShape
	}

	groups := make(map[string][]decimal.Decimal)

	for _, row := range Melt(t) {
		groups[row.Variable] = append(groups[row.Variable], row.Value)
	}

	summary := make(Summary, 0, len(groups))

	for variable, values := range groups {
		summary = append(summary, Stats{
			Variable: variable,
			Min:      decimal.Min(values[0], values[1:]...),
			Mean:     decimal.Avg(values[0], values[1:]...),
			Max:      decimal.Max(values[0], values[1:]...),
		})
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Variable < summary[j].Variable
	})

	return summary, nil
}
