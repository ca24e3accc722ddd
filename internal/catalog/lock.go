package catalog

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another scribe run holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another scribe run")

// Lock is an advisory lock next to the catalog database.
type Lock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for the catalog at dbPath.
func LockPath(dbPath string) string {
	return dbPath + ".scribe.lock"
}

// AcquireLock takes the run lock for the catalog at dbPath without waiting.
func AcquireLock(dbPath string) (*Lock, error) {
	path := LockPath(dbPath)
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return l, nil
}

// Release unlocks. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
