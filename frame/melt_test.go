package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelt_Melt(t *testing.T) {
	t.Parallel()

	t.Run("full melt", func(t *testing.T) {
		t.Parallel()

		table := testTable(t)

		melted := Melt(table)

		require.Len(t, melted, 9)

		// Groups follow the table column order, dates keep their
		// original order within each group
		expectedVariables := []string{
			ColumnBid, ColumnBid, ColumnBid,
			ColumnAsk, ColumnAsk, ColumnAsk,
			ColumnSpread, ColumnSpread, ColumnSpread,
		}

		for i, row := range melted {
			assert.Equal(t, expectedVariables[i], row.Variable)
			assert.Equal(t, table.Dates[i%3], row.Date)
		}

		// Values pair up with their source column
		bid, _ := table.Column(ColumnBid)
		for i := range 3 {
			assert.True(t, melted[i].Value.Equal(bid.Values[i]))
		}
	})

	t.Run("excluded column", func(t *testing.T) {
		t.Parallel()

		melted := Melt(testTable(t), ColumnSpread)

		require.Len(t, melted, 6)

		for _, row := range melted {
			assert.NotEqual(t, ColumnSpread, row.Variable)
		}
	})

	t.Run("melt group order follows column order", func(t *testing.T) {
		t.Parallel()

		table := testTable(t)
		table.Columns[0], table.Columns[1] = table.Columns[1], table.Columns[0]

		melted := Melt(table)

		assert.Equal(t, ColumnAsk, melted[0].Variable)
		assert.Equal(t, ColumnBid, melted[3].Variable)
	})
}
