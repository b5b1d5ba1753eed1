// Package refresh keeps tracked currencies fresh by periodically
// re-downloading their rate tables and publishing them to a sink
package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// Orchestrator is the scheduler for registered refresh jobs
type Orchestrator struct {
	fetcher Fetcher
	sink    Sink
	logger  *slog.Logger

	registeredJobs sync.Map

	q             iq.Queue[scheduledRefresh]
	queryInterval time.Duration
	qMux          sync.Mutex
}

// New creates a new Orchestrator instance
func New(fetcher Fetcher, sink Sink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		fetcher:       fetcher,
		sink:          sink,
		q:             iq.NewQueue[scheduledRefresh](),
		queryInterval: time.Second, // every second
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Register registers a new refresh job with the orchestrator.
// The job is immediately queued up for execution
func (o *Orchestrator) Register(j Job) error {
	if j == nil || j.Code() == "" {
		return errInvalidJob
	}

	if j.Interval() <= 0 {
		return errInvalidInterval
	}

	// Register the job
	id := xid.New()
	o.registeredJobs.Store(id, j)

	o.logger.Info(
		"registered refresh job",
		"code", j.Code(),
	)

	// Schedule the job
	o.scheduleRefresh(
		time.Now().UTC(),
		id,
		j,
	)

	return nil
}

// Start starts the refresh orchestration service loop [BLOCKING]
func (o *Orchestrator) Start(ctx context.Context) error {
	collectorCh := make(chan *workerResponse, 100)

	// Start a listener for monitoring jobs
	ticker := time.NewTicker(o.queryInterval)
	defer ticker.Stop()

	// handleRefresh initializes all jobs that are executable (due)
	handleRefresh := func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				nextSR := o.nextRefresh()
				if nextSR == nil {
					return // nothing to schedule anymore
				}

				o.logger.Info(
					"scheduling refresh",
					"code", nextSR.job.Code(),
				)

				// Spawn worker
				info := &workerInfo{
					job:     nextSR.job,
					jobID:   nextSR.jobID,
					fetcher: o.fetcher,
					resCh:   collectorCh,
				}

				go handleJob(ctx, info)
			}
		}
	}

	// Initialize the first set of due jobs (on boot)
	handleRefresh()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("refresh orchestrator shut down")
			close(collectorCh)

			return nil
		case <-ticker.C:
			handleRefresh()
		case response := <-collectorCh:
			now := time.Now().UTC()

			rjRaw, ok := o.registeredJobs.Load(response.jobID)

			if !ok {
				o.logger.Error(
					"unable to load registered job",
					"id", response.jobID.String(),
				)

				continue
			}

			rj, _ := rjRaw.(Job)

			if response.error != nil {
				o.logger.Error(
					"error encountered during refresh",
					"code", rj.Code(),
					"err", response.error.Error(),
				)

				// Retry the refresh soon, keeping the last
				// published table visible in the meantime
				o.scheduleRefresh(
					now.Add(time.Second*10),
					response.jobID,
					rj,
				)

				continue
			}

			// Publish the refreshed table
			o.sink.Publish(rj.Code(), response.table)

			o.logger.Info(
				"published refreshed rates",
				"code", rj.Code(),
				"rows", response.table.Len(),
			)

			// Schedule a new refresh for this job
			o.scheduleRefresh(
				now.Add(rj.Interval()),
				response.jobID,
				rj,
			)
		}
	}
}

// scheduleRefresh schedules a new job run
func (o *Orchestrator) scheduleRefresh(
	at time.Time,
	jobID xid.ID,
	job Job,
) {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	futureSR := scheduledRefresh{
		at:    at,
		jobID: jobID,
		job:   job,
	}

	o.q.Push(futureSR)
}

// nextRefresh fetches the next due refresh job, as of the moment of calling
func (o *Orchestrator) nextRefresh() *scheduledRefresh {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	now := time.Now().UTC()

	// Check if anything needs to be scheduled
	if o.q.Len() == 0 {
		return nil // nothing to schedule, all jobs are running
	}

	// Check if the top element is due
	if o.q.Index(0).at.After(now) {
		return nil // nothing to schedule, latest job is in the future
	}

	// Grab the next job
	nextSR := o.q.PopFront()

	return nextSR
}
