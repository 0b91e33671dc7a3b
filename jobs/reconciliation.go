package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-ledger/core"
	glog "github.com/goliatone/go-logger/glog"
)

const JobIDReconcilePending = "ledger.reconciliation.run"

const defaultReconcileLimit = 100

// ReconciliationService is the slice of the ledger engine the runner drives.
type ReconciliationService interface {
	ReconcilePendingEntries(ctx context.Context, limit int) (core.ReconciliationReport, error)
}

// RetryPolicy bounds requeue behavior so a poisoned message cannot spin the
// queue forever.
type RetryPolicy struct {
	MaxAttempts     int
	RetryDelay      time.Duration
	MaxDelay        time.Duration
	DeadLetterOnMax bool
}

func (p RetryPolicy) nackOptions(attempt int, cause error) queue.NackOptions {
	opts := queue.NackOptions{
		Disposition: queue.NackDispositionRetry,
		Delay:       p.RetryDelay,
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if p.MaxDelay > 0 && opts.Delay > p.MaxDelay {
		opts.Delay = p.MaxDelay
	}
	if cause != nil {
		opts.Reason = strings.TrimSpace(cause.Error())
	}
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		opts.Delay = 0
		opts.Disposition = queue.NackDispositionFailed
		if p.DeadLetterOnMax {
			opts.Disposition = queue.NackDispositionDeadLetter
		}
	}
	return opts
}

// Scheduler enqueues reconciliation sweeps. The idempotency key is derived
// from the schedule bucket so overlapping schedulers collapse to one message.
type Scheduler struct {
	enqueuer queue.Enqueuer
	interval time.Duration
	now      func() time.Time
}

func NewScheduler(enqueuer queue.Enqueuer, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		enqueuer: enqueuer,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Scheduler) Schedule(ctx context.Context, limit int) error {
	if s == nil || s.enqueuer == nil {
		return fmt.Errorf("jobs: enqueuer is not configured")
	}
	if limit <= 0 {
		limit = defaultReconcileLimit
	}
	bucket := s.now().Truncate(s.interval).Format(time.RFC3339)
	if _, err := s.enqueuer.Enqueue(ctx, &job.ExecutionMessage{
		JobID:          JobIDReconcilePending,
		Parameters:     map[string]any{"limit": limit},
		IdempotencyKey: JobIDReconcilePending + ":" + bucket,
	}); err != nil {
		return fmt.Errorf("jobs: enqueue reconciliation sweep: %w", err)
	}
	return nil
}

// Worker drains reconciliation messages and applies pending reversals.
type Worker struct {
	service  ReconciliationService
	dequeuer queue.Dequeuer
	policy   RetryPolicy
	logger   core.Logger
}

func NewWorker(service ReconciliationService, dequeuer queue.Dequeuer, policy RetryPolicy, logger core.Logger) (*Worker, error) {
	if service == nil {
		return nil, fmt.Errorf("jobs: reconciliation service is required")
	}
	if dequeuer == nil {
		return nil, fmt.Errorf("jobs: dequeuer is required")
	}
	return &Worker{
		service:  service,
		dequeuer: dequeuer,
		policy:   policy,
		logger:   glog.Ensure(logger),
	}, nil
}

// Run drains deliveries until the context is canceled or the dequeuer is
// exhausted. Each delivery is acked on success and nacked with the bounded
// retry policy on failure.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.dequeuer == nil {
		return fmt.Errorf("jobs: worker is not initialized")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		delivery, err := w.dequeuer.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("jobs: dequeue reconciliation message: %w", err)
		}
		if delivery == nil {
			return nil
		}
		if err := w.Process(ctx, delivery, 1); err != nil {
			w.logger.Error("reconciliation delivery failed", "error", err)
		}
	}
}

// Process handles a single delivery. The attempt number feeds the retry
// policy so exhausted messages stop requeueing.
func (w *Worker) Process(ctx context.Context, delivery queue.Delivery, attempt int) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("jobs: worker is not initialized")
	}
	if delivery == nil {
		return fmt.Errorf("jobs: delivery is required")
	}

	msg := delivery.Message()
	if msg == nil || strings.TrimSpace(msg.JobID) != JobIDReconcilePending {
		jobID := ""
		if msg != nil {
			jobID = msg.JobID
		}
		cause := fmt.Errorf("jobs: unexpected job id %q", jobID)
		if nackErr := delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionDeadLetter,
			Reason:      cause.Error(),
		}); nackErr != nil {
			return fmt.Errorf("jobs: nack unexpected message: %w", nackErr)
		}
		return cause
	}

	limit := limitParameter(msg.Parameters)
	report, err := w.service.ReconcilePendingEntries(ctx, limit)
	if err != nil {
		if nackErr := delivery.Nack(ctx, w.policy.nackOptions(attempt, err)); nackErr != nil {
			return fmt.Errorf("jobs: nack reconciliation message: %w", nackErr)
		}
		return err
	}

	w.logger.Info("reconciliation sweep finished",
		"scanned", report.Scanned,
		"resolved", report.Resolved,
		"remaining", report.Remaining,
	)
	return delivery.Ack(ctx)
}

func limitParameter(params map[string]any) int {
	raw, ok := params["limit"]
	if !ok {
		return defaultReconcileLimit
	}
	switch value := raw.(type) {
	case int:
		if value > 0 {
			return value
		}
	case int64:
		if value > 0 {
			return int(value)
		}
	case float64:
		if value > 0 {
			return int(value)
		}
	}
	return defaultReconcileLimit
}
