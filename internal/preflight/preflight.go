// Package preflight runs the fail-fast checks that must pass before any
// discovery work or filesystem mutation starts.
package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"mvvideos/internal/discovery"
)

var ErrDestinationMissing = errors.New("destination directory missing")

// CheckDestination verifies the destination exists, is a directory, and is
// writable. It runs before discovery so a bad destination never costs a
// filesystem walk.
func CheckDestination(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDestinationMissing, path)
		}
		return fmt.Errorf("stat destination %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDestinationMissing, path)
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return fmt.Errorf("destination %s is not writable: %w", path, err)
	}
	return nil
}

// CheckFindBinary confirms the discovery tool is on PATH. A missing binary
// is the spawn-failure case caught early.
func CheckFindBinary(binary string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w: %q not found in PATH", discovery.ErrSpawnFailed, binary)
	}
	return nil
}

// FreeSpace reports the bytes available to unprivileged users on the
// filesystem holding path.
func FreeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
