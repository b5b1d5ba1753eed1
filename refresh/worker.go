package refresh

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/sig-0/ratescope/frame"
)

// scheduledRefresh is a single scheduled job run
type scheduledRefresh struct {
	at    time.Time
	job   Job
	jobID xid.ID
}

// Less is utilized to sort scheduled runs by their due-time (latest == first)
func (a scheduledRefresh) Less(b scheduledRefresh) bool {
	return a.at.Before(b.at)
}

// workerInfo is the work context for the refresh routine
type workerInfo struct {
	job     Job
	fetcher Fetcher
	resCh   chan<- *workerResponse
	jobID   xid.ID
}

// workerResponse is the refresh routine response
type workerResponse struct {
	error error        // encountered error, if any
	table *frame.Table // the refreshed rate table
	jobID xid.ID       // the job ID
}

// handleJob downloads the job's window using the fetcher
func handleJob(
	ctx context.Context,
	info *workerInfo,
) {
	start, end := info.job.Range(time.Now().UTC())

	table, err := info.fetcher.Download(ctx, info.job.Code(), start, end)

	response := &workerResponse{
		error: err,
		table: table,
		jobID: info.jobID,
	}

	select {
	case <-ctx.Done():
	case info.resCh <- response:
	}
}
