package server

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func stubFindProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func TestWriteAndReadLockfile(t *testing.T) {
	path := LockfilePath(filepath.Join(t.TempDir(), "nested"))

	if err := WriteLockfile(path, 7465); err != nil {
		t.Fatalf("WriteLockfile failed: %v", err)
	}
	lock, err := ReadLockfile(path)
	if err != nil {
		t.Fatalf("ReadLockfile failed: %v", err)
	}
	if lock.Port != 7465 || lock.PID != os.Getpid() {
		t.Errorf("unexpected lock: %+v", lock)
	}

	if err := RemoveLockfile(path); err != nil {
		t.Fatalf("RemoveLockfile failed: %v", err)
	}
	if err := RemoveLockfile(path); err != nil {
		t.Errorf("removing a missing lockfile should succeed, got %v", err)
	}
	if _, err := ReadLockfile(path); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning for missing lockfile, got %v", err)
	}
}

func TestReadLockfileMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing pid", "7465"},
		{"extra field", "7465|123|secret"},
		{"bad port", "abc|123"},
		{"port out of range", "70000|123"},
		{"bad pid", "7465|abc"},
		{"zero pid", "7465|0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lock")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadLockfile(path); err == nil {
				t.Errorf("expected error for %q", tt.content)
			}
		})
	}
}

func TestCheckLockfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock")
	if err := os.WriteFile(path, []byte("7465|4242"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		find    func(int) (ps.Process, error)
		wantErr bool
	}{
		{
			name: "running",
			find: func(pid int) (ps.Process, error) {
				return &mockProcess{pid: pid, executable: "recovr"}, nil
			},
		},
		{
			name:    "stale",
			find:    func(int) (ps.Process, error) { return nil, nil },
			wantErr: true,
		},
		{
			name: "pid reused by another program",
			find: func(pid int) (ps.Process, error) {
				return &mockProcess{pid: pid, executable: "bash"}, nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubFindProcess(t, tt.find)
			lock, err := CheckLockfile(path)
			if tt.wantErr {
				if !errors.Is(err, ErrNotRunning) {
					t.Errorf("expected ErrNotRunning, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lock.Port != 7465 || lock.PID != 4242 {
				t.Errorf("unexpected lock: %+v", lock)
			}
		})
	}
}
