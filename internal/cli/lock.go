package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// lockTimeout bounds how long a command waits for the project lock.
const lockTimeout = 5 * time.Second

const lockFilePerms = 0o600

var errLockTimeout = errors.New("another bkl command holds the project lock")

// projectLock serializes read-modify-write cycles per project. Detection
// plus merge must run against the currently stored TypeConfig; without the
// lock two concurrent syncs could both read a stale config and append the
// same type twice.
type projectLock struct {
	file *os.File
}

// acquireProjectLock flocks <dataDir>/sync.lock, polling until the timeout.
func acquireProjectLock(dataDir string) (*projectLock, error) {
	err := os.MkdirAll(dataDir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	lockPath := filepath.Join(dataDir, "sync.lock")

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockFilePerms) //nolint:gosec // path derives from config
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	deadline := time.Now().Add(lockTimeout)

	const retryInterval = 10 * time.Millisecond

	for {
		flockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if flockErr == nil {
			return &projectLock{file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()

			return nil, errLockTimeout
		}

		time.Sleep(retryInterval)
	}
}

// release drops the lock.
func (l *projectLock) release() {
	if l.file != nil {
		_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
		_ = l.file.Close()
	}
}
