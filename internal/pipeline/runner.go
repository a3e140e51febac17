package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"streamsift/internal/logging"
	"streamsift/internal/runlog"
	"streamsift/internal/services"
)

// LockFile is the lockfile's name inside the output directory.
const LockFile = "streamsift.lock"

// ErrAlreadyRunning signals that another pipeline holds the lock.
var ErrAlreadyRunning = errors.New("another pipeline run is already active")

// StageResult carries a stage's headline counters into the run ledger.
type StageResult struct {
	Counters map[string]int
}

// Stage is one pipeline step.
type Stage interface {
	Name() string
	Run(ctx context.Context) (StageResult, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Func      func(ctx context.Context) (StageResult, error)
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Run(ctx context.Context) (StageResult, error) { return s.Func(ctx) }

// Summary describes a finished pipeline run.
type Summary struct {
	RunID    string
	Status   string
	Started  time.Time
	Finished time.Time
	Stages   map[string]runlog.StageOutcome
	Order    []string
}

// Runner executes stages sequentially under a lockfile, recording each run
// in the ledger when one is attached.
type Runner struct {
	stages   []Stage
	lockPath string
	dataDir  string
	ledger   *runlog.Store

	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewRunner builds a runner over the given stages. The ledger may be nil;
// runs are then executed without being recorded.
func NewRunner(stages []Stage, lockPath, dataDir string, ledger *runlog.Store, logger *slog.Logger) *Runner {
	return &Runner{
		stages:   stages,
		lockPath: lockPath,
		dataDir:  dataDir,
		ledger:   ledger,
		logger:   logging.WithComponent(logger, "pipeline"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run executes every stage in order. A failing stage marks the run failed
// but later stages still execute; only cancellation and configuration
// errors abort immediately. The returned error aggregates stage failures.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	lock := flock.New(r.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire pipeline lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, r.lockPath)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release pipeline lock", slog.Any("error", unlockErr))
		}
	}()

	summary := Summary{
		RunID:   r.newID(),
		Started: r.now(),
		Stages:  map[string]runlog.StageOutcome{},
	}
	ctx = services.WithRunID(ctx, summary.RunID)
	r.logger.Info("pipeline run started",
		slog.String("run_id", summary.RunID),
		slog.Int("stages", len(r.stages)))

	if r.ledger != nil {
		if err := r.ledger.StartRun(ctx, summary.RunID, r.dataDir, summary.Started); err != nil {
			r.logger.Warn("could not record run start", slog.Any("error", err))
		}
	}

	var failures []error
	for _, stage := range r.stages {
		summary.Order = append(summary.Order, stage.Name())
		stageCtx := services.WithStage(ctx, stage.Name())

		if err := ctx.Err(); err != nil {
			summary.Stages[stage.Name()] = runlog.StageOutcome{
				Status: "skipped",
				Error:  err.Error(),
			}
			failures = append(failures, err)
			break
		}

		r.logger.Info("stage started", slog.String("stage", stage.Name()))
		result, err := stage.Run(stageCtx)
		if err != nil {
			summary.Stages[stage.Name()] = runlog.StageOutcome{
				Status:   "failed",
				Counters: result.Counters,
				Error:    err.Error(),
			}
			failures = append(failures, fmt.Errorf("stage %s: %w", stage.Name(), err))
			r.logger.Error("stage failed",
				slog.String("stage", stage.Name()), slog.Any("error", err))
			if services.IsFatal(err) || ctx.Err() != nil {
				break
			}
			continue
		}
		summary.Stages[stage.Name()] = runlog.StageOutcome{
			Status:   "completed",
			Counters: result.Counters,
		}
		r.logger.Info("stage completed", slog.String("stage", stage.Name()))
	}

	summary.Finished = r.now()
	summary.Status = runlog.StatusCompleted
	if len(failures) > 0 {
		summary.Status = runlog.StatusFailed
	}

	if r.ledger != nil {
		if err := r.ledger.FinishRun(ctx, summary.RunID, summary.Status, summary.Finished, summary.Stages); err != nil {
			r.logger.Warn("could not record run finish", slog.Any("error", err))
		}
	}

	r.logger.Info("pipeline run finished",
		slog.String("run_id", summary.RunID),
		slog.String("status", summary.Status),
		slog.Duration("elapsed", summary.Finished.Sub(summary.Started)))
	return summary, errors.Join(failures...)
}
