// Package mover executes a move plan, or merely reports it in dry-run mode.
package mover

import (
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"mvvideos/internal/fileutil"
	"mvvideos/internal/logging"
	"mvvideos/internal/plan"
)

// Status classifies the outcome of a single plan entry.
type Status string

const (
	StatusMoved     Status = "moved"
	StatusWouldMove Status = "would-move"
	StatusFailed    Status = "failed"
)

// Result records what happened to one plan entry.
type Result struct {
	Source      string
	Destination string
	Status      Status
	Bytes       int64
	Err         error
}

// Report summarizes an executed (or dry-run) move batch.
type Report struct {
	DryRun  bool
	Results []Result
}

// Moved counts entries that were actually relocated.
func (r *Report) Moved() int { return r.count(StatusMoved) }

// WouldMove counts entries a dry run would have relocated.
func (r *Report) WouldMove() int { return r.count(StatusWouldMove) }

// Failed counts entries whose move failed.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// BytesMoved totals the sizes of successfully moved files.
func (r *Report) BytesMoved() int64 {
	var total int64
	for _, result := range r.Results {
		if result.Status == StatusMoved {
			total += result.Bytes
		}
	}
	return total
}

func (r *Report) count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Options controls plan execution.
type Options struct {
	DryRun       bool
	Logger       *slog.Logger
	ShowProgress bool
}

// Execute processes the plan in order. A dry run mutates nothing. In a real
// run a failed entry is recorded and the batch continues; completed moves are
// never rolled back.
func Execute(moves []plan.Move, opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String("component", "mover"))

	report := &Report{DryRun: opts.DryRun, Results: make([]Result, 0, len(moves))}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress && !opts.DryRun && len(moves) > 0 {
		bar = progressbar.NewOptions(len(moves),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("moving"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, move := range moves {
		result := Result{Source: move.Source, Destination: move.Destination}

		if opts.DryRun {
			result.Status = StatusWouldMove
			logger.Info("would move",
				logging.String("source", move.Source),
				logging.String("destination", move.Destination),
			)
			report.Results = append(report.Results, result)
			continue
		}

		if info, err := os.Stat(move.Source); err == nil {
			result.Bytes = info.Size()
		}

		if err := fileutil.MoveFile(move.Source, move.Destination); err != nil {
			result.Status = StatusFailed
			result.Err = err
			logger.Error("move failed",
				logging.String("source", move.Source),
				logging.String("destination", move.Destination),
				logging.Error(err),
			)
		} else {
			result.Status = StatusMoved
			logger.Info("moved",
				logging.String("source", move.Source),
				logging.String("destination", move.Destination),
				logging.Int64("bytes", result.Bytes),
			)
		}
		report.Results = append(report.Results, result)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return report
}
