package frame

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// MeltedRow is a single (date, variable, value) observation
type MeltedRow struct {
	Date     time.Time
	Variable string
	Value    decimal.Decimal
}

// Melt reshapes the table from one-row-per-date into one row per
// (date, variable) pair, skipping the date axis and any excluded columns.
//
// Rows are grouped by column in the table's column order; dates within a
// group keep their original order. Downstream consumers depend on this
// exact sequence
func Melt(t *Table, exclude ...string) []MeltedRow {
	melted := make([]MeltedRow, 0, len(t.Columns)*t.Len())

	for _, c := range t.Columns {
		if slices.Contains(exclude, c.Name) {
			continue
		}

		for i, v := range c.Values {
			melted = append(melted, MeltedRow{
				Date:     t.Dates[i],
				Variable: c.Name,
				Value:    v,
			})
		}
	}

	return melted
}
