package nbp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExtension = "USD/2024-09-05/2024-10-06?format=json"

var testResponse = []byte(
	`{"table":"C","currency":"dolar amerykański","code":"USD",` +
		`"rates":[{"no":"173/C/NBP/2024","effectiveDate":"2024-10-01",` +
		`"bid":4.05,"ask":4.06},` +
		`{"no":"174/C/NBP/2024","effectiveDate":"2024-10-02",` +
		`"bid":4.09,"ask":4.10},` +
		`{"no":"175/C/NBP/2024","effectiveDate":"2024-10-03",` +
		`"bid":4.08,"ask":4.11}]}`,
)

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()

		var capturedPath string

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedPath = r.URL.RequestURI()

				_, _ = w.Write(testResponse)
			}),
		)
		defer srv.Close()

		c := NewClient(srv.URL+"/", time.Second*10)

		body, err := c.Fetch(context.Background(), testExtension)
		require.NoError(t, err)

		assert.Equal(t, testResponse, body)
		assert.Equal(t, "/"+testExtension, capturedPath)
	})

	t.Run("invalid status code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}),
		)
		defer srv.Close()

		c := NewClient(srv.URL+"/", time.Second*10)

		_, err := c.Fetch(context.Background(), testExtension)

		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("timeout elapses", func(t *testing.T) {
		t.Parallel()

		blockCh := make(chan struct{})

		srv := httptest.NewServer(
			http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				<-blockCh
			}),
		)
		defer srv.Close()
		defer close(blockCh)

		c := NewClient(srv.URL+"/", time.Millisecond*50)

		_, err := c.Fetch(context.Background(), testExtension)

		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()

		// grab an address nothing listens on
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		c := NewClient(srv.URL+"/", time.Second)

		_, err := c.Fetch(context.Background(), testExtension)

		assert.ErrorIs(t, err, ErrFetch)
	})
}

func TestClient_ParseRates(t *testing.T) {
	t.Parallel()

	t.Run("valid payload", func(t *testing.T) {
		t.Parallel()

		rates, err := ParseRates(testResponse)
		require.NoError(t, err)

		require.Len(t, rates, 3)

		assert.Equal(t, "173/C/NBP/2024", rates[0].No)
		assert.Equal(t, "2024-10-01", rates[0].EffectiveDate)
		assert.True(t, rates[0].Bid.Equal(decimal.RequireFromString("4.05")))
		assert.True(t, rates[0].Ask.Equal(decimal.RequireFromString("4.06")))

		assert.Equal(t, "175/C/NBP/2024", rates[2].No)
		assert.True(t, rates[2].Ask.Equal(decimal.RequireFromString("4.11")))
	})

	t.Run("empty rates array", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"table":"C","code":"USD","rates":[]}`)

		rates, err := ParseRates(payload)
		require.NoError(t, err)

		assert.Empty(t, rates)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRates([]byte("not json"))

		assert.ErrorIs(t, err, ErrFetch)
	})
}
