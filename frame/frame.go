// Package frame holds the canonical bid/ask table and its transforms.
//
// A canonical table has a calendar-date axis and exactly the bid, ask and
// spread value columns, with spread = ask - bid on every row. Tables are
// never mutated after creation; every transform returns a fresh value
package frame

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrTableShape = errors.New("incorrect table shape")

// Canonical value column names
const (
	ColumnBid    = "bid"
	ColumnAsk    = "ask"
	ColumnSpread = "spread"
)

// Column is a single named value column
type Column struct {
	Name   string
	Values []decimal.Decimal
}

// Table is an ordered date-indexed collection of value columns.
// IDs holds promoted row keys (NBP document numbers like "173/C/NBP/2024"),
// and is nil when identifiers were dropped during shaping
type Table struct {
	Dates   []time.Time
	IDs     []string
	Columns []Column
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Dates)
}

// Column fetches a value column by name
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// IsCanonical reports whether the table has exactly the canonical
// value column set {bid, ask, spread} and at least one row.
//
// The comparison is an order-independent set check: a table carrying the
// canonical columns in a different order is still considered canonical
func IsCanonical(t *Table) bool {
	if t == nil || t.Len() == 0 {
		return false
	}

	if len(t.Columns) != 3 {
		return false
	}

	seen := make(map[string]bool, 3)

	for _, c := range t.Columns {
		switch c.Name {
		case ColumnBid, ColumnAsk, ColumnSpread:
			seen[c.Name] = true
		default:
			return false
		}
	}

	return len(seen) == 3
}
