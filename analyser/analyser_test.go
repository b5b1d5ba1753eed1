package analyser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/ratescope/frame"
	"github.com/sig-0/ratescope/nbp"
)

var testPayload = []byte(
	`{"table":"C","currency":"dolar amerykański","code":"USD",` +
		`"rates":[{"no":"173/C/NBP/2024","effectiveDate":"2024-10-01",` +
		`"bid":4.05,"ask":4.06},` +
		`{"no":"174/C/NBP/2024","effectiveDate":"2024-10-02",` +
		`"bid":4.09,"ask":4.10},` +
		`{"no":"175/C/NBP/2024","effectiveDate":"2024-10-03",` +
		`"bid":4.08,"ask":4.11}]}`,
)

func TestAnalyser_New(t *testing.T) {
	t.Parallel()

	t.Run("default analyser", func(t *testing.T) {
		t.Parallel()

		a, err := New()
		require.NoError(t, err)

		assert.False(t, a.DropID())
		assert.Equal(t, DefaultTimeout, a.Timeout())
		assert.NotNil(t, a.downloader)
	})

	t.Run("custom configuration", func(t *testing.T) {
		t.Parallel()

		a, err := New(
			WithDropID(true),
			WithTimeout(time.Second*20),
		)
		require.NoError(t, err)

		assert.True(t, a.DropID())
		assert.Equal(t, time.Second*20, a.Timeout())
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Parallel()

		_, err := New(WithTimeout(0))

		assert.ErrorIs(t, err, ErrNonPositiveTimeout)
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Parallel()

		_, err := New(WithTimeout(-time.Second * 5))

		assert.ErrorIs(t, err, ErrNonPositiveTimeout)
	})
}

func TestAnalyser_Setters(t *testing.T) {
	t.Parallel()

	t.Run("drop ID toggled", func(t *testing.T) {
		t.Parallel()

		a, err := New()
		require.NoError(t, err)

		a.SetDropID(true)

		assert.True(t, a.DropID())
	})

	t.Run("timeout updated", func(t *testing.T) {
		t.Parallel()

		a, err := New()
		require.NoError(t, err)

		require.NoError(t, a.SetTimeout(time.Second*20))

		assert.Equal(t, time.Second*20, a.Timeout())
	})

	t.Run("zero timeout rejected", func(t *testing.T) {
		t.Parallel()

		a, err := New()
		require.NoError(t, err)

		assert.ErrorIs(t, a.SetTimeout(0), ErrNonPositiveTimeout)
		assert.Equal(t, DefaultTimeout, a.Timeout())
	})

	t.Run("negative timeout rejected", func(t *testing.T) {
		t.Parallel()

		a, err := New()
		require.NoError(t, err)

		assert.ErrorIs(t, a.SetTimeout(-time.Second*5), ErrNonPositiveTimeout)
	})
}

func TestAnalyser_Download(t *testing.T) {
	t.Parallel()

	var (
		start = time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)
		end   = time.Date(2024, 10, 6, 0, 0, 0, 0, time.UTC)
	)

	t.Run("invalid date range", func(t *testing.T) {
		t.Parallel()

		var called bool

		downloader := &mockDownloader{
			fetchFn: func(_ context.Context, _ string) ([]byte, error) {
				called = true

				return nil, nil
			},
		}

		a, err := New(WithDownloader(downloader))
		require.NoError(t, err)

		_, err = a.Download(context.Background(), "USD", end, start)

		assert.ErrorIs(t, err, nbp.ErrEndBeforeStart)
		assert.False(t, called)
	})

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()

		downloader := &mockDownloader{
			fetchFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, nbp.ErrFetch
			},
		}

		a, err := New(WithDownloader(downloader))
		require.NoError(t, err)

		_, err = a.Download(context.Background(), "USD", start, end)

		assert.ErrorIs(t, err, nbp.ErrFetch)
	})

	t.Run("zero-row payload", func(t *testing.T) {
		t.Parallel()

		downloader := &mockDownloader{
			fetchFn: func(_ context.Context, _ string) ([]byte, error) {
				return []byte(`{"table":"C","code":"USD","rates":[]}`), nil
			},
		}

		a, err := New(WithDownloader(downloader))
		require.NoError(t, err)

		_, err = a.Download(context.Background(), "USD", start, end)

		assert.ErrorIs(t, err, nbp.ErrNoData)
	})

	t.Run("valid download", func(t *testing.T) {
		t.Parallel()

		var capturedExtension string

		downloader := &mockDownloader{
			fetchFn: func(_ context.Context, extension string) ([]byte, error) {
				capturedExtension = extension

				return testPayload, nil
			},
		}

		a, err := New(WithDownloader(downloader))
		require.NoError(t, err)

		table, err := a.Download(context.Background(), " uSd ", start, end)
		require.NoError(t, err)

		assert.Equal(t, "USD/2024-09-05/2024-10-06?format=json", capturedExtension)
		assert.Equal(t, 3, table.Len())
		assert.True(t, frame.IsCanonical(table))
		assert.NotNil(t, table.IDs)
	})

	t.Run("identifiers dropped", func(t *testing.T) {
		t.Parallel()

		downloader := &mockDownloader{
			fetchFn: func(_ context.Context, _ string) ([]byte, error) {
				return testPayload, nil
			},
		}

		a, err := New(
			WithDownloader(downloader),
			WithDropID(true),
		)
		require.NoError(t, err)

		table, err := a.Download(context.Background(), "USD", start, end)
		require.NoError(t, err)

		assert.Nil(t, table.IDs)
	})
}

func TestAnalyser_Operations(t *testing.T) {
	t.Parallel()

	downloader := &mockDownloader{
		fetchFn: func(_ context.Context, _ string) ([]byte, error) {
			return testPayload, nil
		},
	}

	a, err := New(WithDownloader(downloader))
	require.NoError(t, err)

	table, err := a.Download(
		context.Background(),
		"USD",
		time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 10, 6, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		summary, err := a.Summary(table)
		require.NoError(t, err)

		require.Len(t, summary, 3)
		assert.Equal(t, "ask", summary[0].Variable)
	})

	t.Run("histogram", func(t *testing.T) {
		t.Parallel()

		figure, err := a.Histogram(table, 900, 500)
		require.NoError(t, err)

		assert.NotNil(t, figure)
	})

	t.Run("series", func(t *testing.T) {
		t.Parallel()

		figure, err := a.Series(table)
		require.NoError(t, err)

		assert.NotNil(t, figure)
	})

	t.Run("operations reject a non-canonical table", func(t *testing.T) {
		t.Parallel()

		bad := &frame.Table{}

		_, err := a.Summary(bad)
		assert.ErrorIs(t, err, frame.ErrTableShape)

		_, err = a.Histogram(bad, 900, 500)
		assert.ErrorIs(t, err, frame.ErrTableShape)

		_, err = a.Series(bad)
		assert.ErrorIs(t, err, frame.ErrTableShape)
	})
}
