package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/pkm/internal/constants"
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

func mockProcesses(t *testing.T, running map[int]bool) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if running[pid] {
			return &mockProcess{pid: pid, executable: "pkm"}, nil
		}
		return nil, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	path := PathFor(filepath.Join(t.TempDir(), "pkm.db"))
	if !strings.HasSuffix(path, ".db.lock") {
		t.Errorf("PathFor() = %q", path)
	}

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if strings.TrimSpace(string(content)) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lockfile content = %q, want our pid", content)
	}

	if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
		t.Errorf("second Acquire() error = %v, want ErrLocked", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release()")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquire_LiveProcess(t *testing.T) {
	mockProcesses(t, map[int]bool{4242: true})
	path := filepath.Join(t.TempDir(), "pkm.db.lock")
	if err := os.WriteFile(path, []byte("4242\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(path)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire() error = %v, want ErrLocked", err)
	}
	if !strings.Contains(err.Error(), "4242") {
		t.Errorf("error %q should name the holding pid", err)
	}
}

func TestAcquire_ReclaimsStaleLock(t *testing.T) {
	old := time.Now().Add(-2 * constants.LockUnreadableGrace)
	tests := []struct {
		name    string
		content string
	}{
		{name: "dead process", content: "4242\n"},
		{name: "garbage", content: "not a pid"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProcesses(t, map[int]bool{})
			path := filepath.Join(t.TempDir(), "pkm.db.lock")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if err := os.Chtimes(path, old, old); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(path)
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			defer l.Release()

			if l.Path() != path {
				t.Errorf("Path() = %q, want %q", l.Path(), path)
			}
		})
	}
}

func TestAcquire_FreshUnreadableLockIsHeld(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "newline only", content: "\n"},
		{name: "garbage", content: "not a pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProcesses(t, map[int]bool{})
			path := filepath.Join(t.TempDir(), "pkm.db.lock")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
				t.Fatalf("Acquire() error = %v, want ErrLocked", err)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("lockfile removed: %v", err)
			}
			if string(content) != tt.content {
				t.Errorf("lockfile content = %q, want %q", content, tt.content)
			}
		})
	}
}

func TestRelease_NilLock(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("Release() on nil lock error = %v", err)
	}
}
