// Package pipeline sequences a full mvvideos run: argument validation,
// destination preflight, discovery, verification, planning, confirmation,
// and move execution.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mvvideos/internal/config"
	"mvvideos/internal/discovery"
	"mvvideos/internal/history"
	"mvvideos/internal/logging"
	"mvvideos/internal/mover"
	"mvvideos/internal/plan"
	"mvvideos/internal/preflight"
	"mvvideos/internal/selection"
)

var (
	// ErrFilesVanished means discovery reported paths that no longer exist.
	ErrFilesVanished = errors.New("files vanished between discovery and verification")
	// ErrDestinationBusy means another run holds the destination lock.
	ErrDestinationBusy = errors.New("destination locked by another run")
	// ErrCancelled is the neutral outcome of a declined confirmation.
	ErrCancelled = errors.New("cancelled")
)

const lockFileName = ".mvvideos.lock"

// Request describes one run.
type Request struct {
	Sources      []string
	Destination  string
	Size         string
	Extensions   string
	DryRun       bool
	AssumeYes    bool
	ShowProgress bool
}

// ConfirmFunc asks the user to approve the move batch.
type ConfirmFunc func(prompt string) (bool, error)

// Runner owns the collaborators of the pipeline. The zero collaborators are
// all usable defaults: a real shell executor, no history, no confirmation.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	exec    discovery.Executor
	store   *history.Store
	confirm ConfirmFunc
}

// New constructs a runner with the default shell executor.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	return NewWithDependencies(cfg, logger, nil, nil, nil)
}

// NewWithDependencies allows injecting collaborators (used by the CLI and
// in tests). Nil exec falls back to the shell executor; nil store disables
// history; nil confirm skips the confirmation gate.
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, exec discovery.Executor, store *history.Store, confirm ConfirmFunc) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if exec == nil {
		exec = discovery.ShellExecutor{Timeout: time.Duration(cfg.Discovery.TimeoutSeconds) * time.Second}
	}
	return &Runner{
		cfg:     cfg,
		logger:  logger.With(logging.String("component", "pipeline")),
		exec:    exec,
		store:   store,
		confirm: confirm,
	}
}

// Run executes the pipeline once. Validation and planning failures abort
// before any external process or filesystem mutation; per-move failures do
// not abort and are reported in the returned Report.
func (r *Runner) Run(ctx context.Context, req Request) (*mover.Report, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))
	startedAt := time.Now()

	threshold, err := selection.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}
	extensions, err := selection.ParseExtensions(req.Extensions)
	if err != nil {
		return nil, err
	}

	if err := preflight.CheckDestination(req.Destination); err != nil {
		return nil, err
	}
	if err := preflight.CheckFindBinary(r.cfg.Discovery.FindBinary); err != nil {
		return nil, err
	}
	if free, err := preflight.FreeSpace(req.Destination); err == nil {
		logger.Debug("destination preflight passed",
			logging.String("destination", req.Destination),
			logging.Uint64("free_bytes", free),
		)
	}

	command, err := discovery.BuildCommandWith(r.cfg.Discovery.FindBinary, req.Sources, threshold, extensions)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovery command built", logging.String("command", command))

	if !req.DryRun {
		lock := flock.New(filepath.Join(req.Destination, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire destination lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", ErrDestinationBusy, req.Destination)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	output, err := r.exec.Run(ctx, command)
	if err != nil {
		return nil, err
	}

	candidates := discovery.ParseOutput(output)
	logger.Info("discovery finished", logging.Int("candidates", len(candidates)))

	verified, missing := plan.VerifyExists(candidates)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrFilesVanished, strings.Join(missing, ", "))
	}

	moves, err := plan.Plan(verified, req.Destination)
	if err != nil {
		return nil, err
	}

	if len(moves) > 0 && !req.DryRun && !req.AssumeYes && r.confirm != nil {
		prompt := fmt.Sprintf("Move %d file(s) into %s? Type 'yes' to continue: ", len(moves), req.Destination)
		ok, err := r.confirm(prompt)
		if err != nil {
			return nil, fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			return nil, ErrCancelled
		}
	}

	report := mover.Execute(moves, mover.Options{
		DryRun:       req.DryRun,
		Logger:       logger,
		ShowProgress: req.ShowProgress,
	})

	r.record(ctx, logger, runID, startedAt, req, report)
	return report, nil
}

// record journals the run. History failures are reported but never fail a
// run whose moves already happened.
func (r *Runner) record(ctx context.Context, logger *slog.Logger, runID string, startedAt time.Time, req Request, report *mover.Report) {
	if r.store == nil {
		return
	}

	run := history.Run{
		ID:          runID,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		DryRun:      req.DryRun,
		Sources:     req.Sources,
		Destination: req.Destination,
		Planned:     len(report.Results),
		Moved:       report.Moved(),
		Failed:      report.Failed(),
	}
	moves := make([]history.MoveRecord, 0, len(report.Results))
	for _, result := range report.Results {
		record := history.MoveRecord{
			RunID:       runID,
			Source:      result.Source,
			Destination: result.Destination,
			Status:      string(result.Status),
		}
		if result.Err != nil {
			record.Error = result.Err.Error()
		}
		moves = append(moves, record)
	}

	if err := r.store.RecordRun(ctx, run, moves); err != nil {
		logger.Warn("failed to record run history", logging.Error(err))
	}
}
