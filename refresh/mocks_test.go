package refresh

import (
	"context"
	"time"

	"github.com/sig-0/ratescope/frame"
)

type (
	codeDelegate     func() string
	intervalDelegate func() time.Duration
	rangeDelegate    func(time.Time) (time.Time, time.Time)
)

type mockJob struct {
	codeFn     codeDelegate
	intervalFn intervalDelegate
	rangeFn    rangeDelegate
}

func (m *mockJob) Code() string {
	if m.codeFn != nil {
		return m.codeFn()
	}

	return ""
}

func (m *mockJob) Interval() time.Duration {
	if m.intervalFn != nil {
		return m.intervalFn()
	}

	return 0
}

func (m *mockJob) Range(now time.Time) (time.Time, time.Time) {
	if m.rangeFn != nil {
		return m.rangeFn(now)
	}

	return now, now
}

type downloadDelegate func(context.Context, string, time.Time, time.Time) (*frame.Table, error)

type mockFetcher struct {
	downloadFn downloadDelegate
}

func (m *mockFetcher) Download(
	ctx context.Context,
	code string,
	start, end time.Time,
) (*frame.Table, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, code, start, end)
	}

	return nil, nil
}

type publishDelegate func(string, *frame.Table)

type mockSink struct {
	publishFn publishDelegate
}

func (m *mockSink) Publish(code string, t *frame.Table) {
	if m.publishFn != nil {
		m.publishFn(code, t)
	}
}
