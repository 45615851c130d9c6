package discovery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mvvideos/internal/discovery"
)

func TestShellExecutorCapturesStdout(t *testing.T) {
	exec := discovery.ShellExecutor{}
	out, err := exec.Run(context.Background(), "printf 'a\\nb\\n'")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out != "a\nb\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShellExecutorReportsNonZeroExitWithDiagnostics(t *testing.T) {
	exec := discovery.ShellExecutor{}
	_, err := exec.Run(context.Background(), "echo broken-disk >&2; exit 3")
	if !errors.Is(err, discovery.ErrFailed) {
		t.Fatalf("Run error = %v, want ErrFailed", err)
	}
	if !strings.Contains(err.Error(), "broken-disk") {
		t.Fatalf("error should carry captured diagnostics, got: %v", err)
	}
	if !strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("error should carry the exit status, got: %v", err)
	}
}

func TestShellExecutorTimesOut(t *testing.T) {
	exec := discovery.ShellExecutor{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := exec.Run(context.Background(), "sleep 5")
	if !errors.Is(err, discovery.ErrTimeout) {
		t.Fatalf("Run error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout took too long: %s", elapsed)
	}
}

func TestShellExecutorTimeoutAbandonsInheritedPipe(t *testing.T) {
	// A backgrounded child inherits the output pipe and holds it open after
	// the shell itself is killed; the run must still return near the deadline.
	exec := discovery.ShellExecutor{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := exec.Run(context.Background(), "sleep 5 & sleep 5")
	if !errors.Is(err, discovery.ErrTimeout) {
		t.Fatalf("Run error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout took too long: %s", elapsed)
	}
}

func TestParseOutputSplitsNonEmptyLines(t *testing.T) {
	got := discovery.ParseOutput("/a/b.mkv\n\n/c/d.avi\n")
	if len(got) != 2 || got[0] != "/a/b.mkv" || got[1] != "/c/d.avi" {
		t.Fatalf("ParseOutput = %v", got)
	}
}

func TestParseOutputEmptyIsZeroCandidates(t *testing.T) {
	if got := discovery.ParseOutput(""); len(got) != 0 {
		t.Fatalf("ParseOutput(\"\") = %v, want empty", got)
	}
	if got := discovery.ParseOutput("\n\n"); len(got) != 0 {
		t.Fatalf("ParseOutput(blank lines) = %v, want empty", got)
	}
}

func TestParseOutputPreservesDuplicates(t *testing.T) {
	got := discovery.ParseOutput("/x\n/x\n")
	if len(got) != 2 {
		t.Fatalf("ParseOutput should not deduplicate, got %v", got)
	}
}
