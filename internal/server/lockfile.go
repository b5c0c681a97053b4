package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/recovr/internal/constants"
)

var findProcessFunc = ps.FindProcess

// ErrNotRunning is returned when no live server owns the lockfile.
var ErrNotRunning = errors.New("recovr server is not running")

// Lock is the content of the server lockfile.
type Lock struct {
	Port int
	PID  int
}

// LockfilePath returns the lockfile location inside configDir.
func LockfilePath(configDir string) string {
	return filepath.Join(configDir, constants.ServerLockfileName)
}

// WriteLockfile records port and the current process id as "port|pid".
func WriteLockfile(path string, port int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create lockfile dir: %w", err)
	}
	content := fmt.Sprintf("%d|%d", port, os.Getpid())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// RemoveLockfile deletes the lockfile. A missing file is not an error.
func RemoveLockfile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// ReadLockfile parses a lockfile without checking the process.
func ReadLockfile(path string) (Lock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Lock{}, ErrNotRunning
		}
		return Lock{}, fmt.Errorf("failed to read lockfile: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Lock{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Lock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Lock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || pid <= 0 {
		return Lock{}, errors.New("invalid process ID in lockfile")
	}

	return Lock{Port: port, PID: pid}, nil
}

// CheckLockfile reads the lockfile and verifies that its process is a live
// recovr server. A stale lockfile yields ErrNotRunning.
func CheckLockfile(path string) (Lock, error) {
	lock, err := ReadLockfile(path)
	if err != nil {
		return Lock{}, err
	}

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return lock, fmt.Errorf("%w: process %d not found (stale lockfile)", ErrNotRunning, lock.PID)
	}
	if !strings.HasPrefix(process.Executable(), constants.ServerExecutableName) {
		return lock, fmt.Errorf("%w: process with PID %d is not recovr (is %s)", ErrNotRunning, lock.PID, process.Executable())
	}

	return lock, nil
}
