package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Job is a unit of background work executed off the request path.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes enqueued jobs on a single worker goroutine and records each
// run in the job_runs table. Scheduled jobs re-enqueue themselves on a ticker.
type Runner struct {
	DB    *pgxpool.Pool
	queue chan Job
	wg    sync.WaitGroup
}

func NewRunner(db *pgxpool.Pool) *Runner {
	return &Runner{DB: db, queue: make(chan Job, 64)}
}

// Enqueue schedules a job for execution. It never blocks the caller; when the
// queue is full the job is dropped with a warning.
func (r *Runner) Enqueue(job Job) {
	select {
	case r.queue <- job:
	default:
		slog.Warn("job queue full, dropping job", "job", job.Name)
	}
}

// Every enqueues job immediately and then again on each tick until ctx is
// cancelled.
func (r *Runner) Every(ctx context.Context, interval time.Duration, job Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Enqueue(job)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Enqueue(job)
			}
		}
	}()
}

// Start launches the worker. It returns immediately; call Wait during shutdown
// after cancelling ctx.
func (r *Runner) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-r.queue:
				r.execute(job)
			}
		}
	}()
}

func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) execute(job Job) {
	// Jobs run with their own timeout, detached from any request context.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	runID := r.recordStart(ctx, job.Name)
	start := time.Now()
	err := job.Run(ctx)
	duration := time.Since(start)

	if err != nil {
		slog.Error("job failed", "job", job.Name, "duration", duration, "err", err)
		r.recordFinish(ctx, runID, "failed", map[string]string{"error": err.Error()})
		return
	}
	slog.Info("job finished", "job", job.Name, "duration", duration)
	r.recordFinish(ctx, runID, "succeeded", nil)
}

func (r *Runner) recordStart(ctx context.Context, name string) string {
	var id string
	err := r.DB.QueryRow(ctx,
		"INSERT INTO job_runs (job_type, status) VALUES ($1, 'running') RETURNING id", name).Scan(&id)
	if err != nil {
		slog.Warn("job run bookkeeping failed", "job", name, "err", err)
		return ""
	}
	return id
}

func (r *Runner) recordFinish(ctx context.Context, runID, status string, details any) {
	if runID == "" {
		return
	}
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err == nil {
			detailsJSON = payload
		}
	}
	_, err := r.DB.Exec(ctx,
		"UPDATE job_runs SET status = $2, details_json = $3, completed_at = now() WHERE id = $1",
		runID, status, detailsJSON)
	if err != nil {
		slog.Warn("job run bookkeeping failed", "runId", runID, "err", err)
	}
}
