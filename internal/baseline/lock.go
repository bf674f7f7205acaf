package baseline

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// lockRetryInterval and lockTimeout bound how long withLock waits for a
// concurrent writer to release the sentinel file before giving up.
const (
	lockRetryInterval = 20 * time.Millisecond
	lockTimeout       = 2 * time.Second
)

// withLock runs fn while holding an exclusive advisory lock on path+".lock",
// the same begin/run/release-on-error shape the teacher uses for its
// database transactions, adapted here to a plain sentinel file since the
// store has no transaction to roll back (spec.md §5: "guarded by a file
// lock during save/remove").
func withLock(path string, fn func() error) error {
	lockPath := path + ".lock"
	deadline := time.Now().Add(lockTimeout)

	var f *os.File
	for {
		var err error
		f, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("acquiring baseline lock %s: %w", lockPath, err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("acquiring baseline lock %s: timed out after %s", lockPath, lockTimeout)
		}
		time.Sleep(lockRetryInterval)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(lockPath)
	}()

	if err := fn(); err != nil {
		return err
	}
	return nil
}
