// Package analyser wires the NBP client, the canonical frame transforms
// and the chart builders behind a single configured entry point
package analyser

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/sig-0/ratescope/chart"
	"github.com/sig-0/ratescope/frame"
	"github.com/sig-0/ratescope/nbp"
)

// DefaultTimeout bounds a single rate download
const DefaultTimeout = 30 * time.Second

var ErrNonPositiveTimeout = errors.New("timeout must be positive")

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Analyser downloads NBP bid/ask observations and derives summaries
// and charts from them.
//
// Its two configuration fields (identifier dropping and the fetch
// timeout) are read at the start of each operation; the analyser is
// meant for single-threaded, one-request-at-a-time use and does no
// locking around them
type Analyser struct {
	logger     *slog.Logger
	downloader nbp.Downloader

	// client is the owned HTTP client, nil when a custom
	// downloader was supplied
	client *nbp.Client

	baseURL string
	dropID  bool
	timeout time.Duration
}

// New creates a new analyser instance
func New(opts ...Option) (*Analyser, error) {
	a := &Analyser{
		logger:  noopLogger,
		baseURL: nbp.DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	// Apply the options
	for _, opt := range opts {
		opt(a)
	}

	if a.timeout <= 0 {
		return nil, ErrNonPositiveTimeout
	}

	if a.downloader == nil {
		a.client = nbp.NewClient(a.baseURL, a.timeout)
		a.downloader = a.client
	}

	return a, nil
}

// DropID reports whether record identifiers are discarded during shaping
func (a *Analyser) DropID() bool {
	return a.dropID
}

// SetDropID toggles discarding of record identifiers
func (a *Analyser) SetDropID(drop bool) {
	a.dropID = drop
}

// Timeout returns the configured fetch timeout
func (a *Analyser) Timeout() time.Duration {
	return a.timeout
}

// SetTimeout updates the fetch timeout.
// Non-positive values are rejected at this point, not at fetch time
func (a *Analyser) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return ErrNonPositiveTimeout
	}

	a.timeout = timeout

	if a.client != nil {
		a.client.SetTimeout(timeout)
	}

	return nil
}

// Download fetches the bid/ask observations for the currency code over
// the given date range, and shapes them into the canonical table
func (a *Analyser) Download(
	ctx context.Context,
	code string,
	start, end time.Time,
) (*frame.Table, error) {
	extension, err := nbp.BuildExtension(start, end, code)
	if err != nil {
		return nil, err
	}

	a.logger.Debug(
		"downloading rates",
		"extension", extension,
	)

	body, err := a.downloader.Fetch(ctx, extension)
	if err != nil {
		return nil, err
	}

	rates, err := nbp.ParseRates(body)
	if err != nil {
		return nil, err
	}

	table, err := frame.Shape(rates, a.dropID)
	if err != nil {
		return nil, err
	}

	a.logger.Info(
		"downloaded rates",
		"code", nbp.FormatCode(code),
		"rows", table.Len(),
	)

	return table, nil
}

// Summary aggregates the canonical table into per-variable min / mean / max
func (a *Analyser) Summary(t *frame.Table) (frame.Summary, error) {
	return frame.Summarize(t)
}

// Histogram builds the bid/ask distribution chart for the table
func (a *Analyser) Histogram(t *frame.Table, width, height int) (chart.Figure, error) {
	return chart.Histogram(t, width, height)
}

// Series builds the bid/ask time-series chart for the table
func (a *Analyser) Series(t *frame.Table) (chart.Figure, error) {
	return chart.Series(t)
}
