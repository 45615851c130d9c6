package discovery

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	ErrSpawnFailed = errors.New("discovery process could not be started")
	ErrFailed      = errors.New("discovery process failed")
	ErrTimeout     = errors.New("discovery timed out")
)

// Executor abstracts running the discovery command (primarily for tests).
type Executor interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellExecutor runs discovery commands through `sh -c`, merging stderr into
// the captured output so the tool's diagnostics survive into error messages.
type ShellExecutor struct {
	// Timeout bounds a single discovery run. Zero disables the bound.
	Timeout time.Duration
}

func (e ShellExecutor) Run(ctx context.Context, command string) (string, error) {
	runCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	// Without WaitDelay, CombinedOutput blocks until the output pipe reaches
	// EOF even after the context kills sh, so a hung find would outlive the
	// deadline by its full natural runtime.
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	captured := string(output)
	if err == nil {
		return captured, nil
	}

	if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return captured, fmt.Errorf("%w after %s: %s", ErrTimeout, e.Timeout, command)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return captured, fmt.Errorf("%w: %s (exit status %d): %s",
			ErrFailed, command, exitErr.ExitCode(), strings.TrimSpace(captured))
	}
	return captured, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, command, err)
}
