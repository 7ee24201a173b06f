package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile enforces a single running daemon per pid file path
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the pid file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire records the current process. A file left behind by a dead process
// is replaced; a live owner makes Acquire fail.
func (p *PIDFile) Acquire() error {
	if pid, running := p.Running(); running {
		return fmt.Errorf("daemon is already running (PID %d)", pid)
	}
	_ = os.Remove(p.path)

	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the pid file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Read returns the recorded pid
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Running reports the recorded pid and whether that process is alive
func (p *PIDFile) Running() (int, bool) {
	pid, err := p.Read()
	if err != nil {
		return 0, false
	}
	return pid, isProcessRunning(pid)
}

// isProcessRunning probes a pid with signal 0
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by someone else
		return true
	default:
		return false
	}
}
