package frame

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sig-0/ratescope/nbp"
)

const dateLayout = "2006-01-02"

// Shape converts raw API rate records into the canonical table.
//
// Row order is preserved exactly as received. When dropID is false the
// record identifier is promoted to the row key; when true it is discarded
// entirely. An empty record collection is rejected as a fetch failure,
// even though the transport itself succeeded
func Shape(rates []nbp.Rate, dropID bool) (*Table, error) {
	if len(rates) == 0 {
		return nil, nbp.ErrNoData
	}

	n := len(rates)

	var (
		dates   = make([]time.Time, 0, n)
		bids    = make([]decimal.Decimal, 0, n)
		asks    = make([]decimal.Decimal, 0, n)
		spreads = make([]decimal.Decimal, 0, n)

		ids []string
	)

	if !dropID {
		ids = make([]string, 0, n)
	}

	for _, r := range rates {
		date, err := time.Parse(dateLayout, r.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: invalid effective date %q: %w",
				nbp.ErrFetch, r.EffectiveDate, err,
			)
		}

		dates = append(dates, date)
		bids = append(bids, r.Bid)
		asks = append(asks, r.Ask)
		spreads = append(spreads, r.Ask.Sub(r.Bid))

		if !dropID {
			ids = append(ids, r.No)
		}
	}

	return &Table{
		Dates: dates,
		IDs:   ids,
		Columns: []Column{
			{Name: ColumnBid, Values: bids},
			{Name: ColumnAsk, Values: asks},
			{Name: ColumnSpread, Values: spreads},
		},
	}, nil
}
