package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/logger"
)

// ErrLocked is returned when a live process holds the lock
var ErrLocked = errors.New("store is locked by another pkm process")

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid
)

// Lock is an advisory PID lockfile
type Lock struct {
	path string
}

// PathFor returns the lockfile path guarding target.
func PathFor(target string) string {
	return target + constants.LockFileSuffix
}

// Acquire takes the lock at path. A lockfile left by a process that is no
// longer running is reclaimed, as is one that has held no valid PID for
// longer than constants.LockUnreadableGrace.
func Acquire(path string) (*Lock, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired lock", "path", path)
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, err := readPID(path)
		if err == nil && isRunning(pid) {
			return nil, fmt.Errorf("%w (pid %d, lockfile %s)", ErrLocked, pid, path)
		}
		if err != nil {
			info, serr := os.Stat(path)
			if serr == nil && time.Since(info.ModTime()) < constants.LockUnreadableGrace {
				return nil, fmt.Errorf("%w (lockfile %s is being written)", ErrLocked, path)
			}
		}

		logger.Warn("Removing stale lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lockfile %s keeps reappearing", ErrLocked, path)
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("Released lock", "path", l.path)
	return nil
}

// Path returns the lockfile path.
func (l *Lock) Path() string { return l.path }

func readPID(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func isRunning(pid int) bool {
	if pid == getpid() {
		return true
	}
	process, err := findProcessFunc(pid)
	return err == nil && process != nil
}
