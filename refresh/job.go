package refresh

import (
	"context"
	"time"

	"github.com/sig-0/ratescope/frame"
	"github.com/sig-0/ratescope/nbp"
)

// Job is a single tracked currency refresh definition
type Job interface {
	// Code returns the currency code the job tracks
	Code() string

	// Interval returns the interval at which the job should be re-run
	Interval() time.Duration

	// Range returns the date range to download, relative to now
	Range(now time.Time) (start, end time.Time)
}

// Fetcher downloads and shapes the rate table for a currency over
// a date range
type Fetcher interface {
	Download(ctx context.Context, code string, start, end time.Time) (*frame.Table, error)
}

// Sink receives freshly refreshed tables
type Sink interface {
	Publish(code string, t *frame.Table)
}

// WindowJob refreshes a currency over a sliding trailing window of
// whole months, ending today
type WindowJob struct {
	code     string
	months   int
	interval time.Duration
}

// NewWindowJob creates a sliding-window refresh job for the given
// currency code
func NewWindowJob(code string, months int, interval time.Duration) *WindowJob {
	return &WindowJob{
		code:     nbp.FormatCode(code),
		months:   months,
		interval: interval,
	}
}

func (j *WindowJob) Code() string {
	return j.code
}

func (j *WindowJob) Interval() time.Duration {
	return j.interval
}

func (j *WindowJob) Range(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, -j.months, 0), now
}
