//go:build windows

package archive

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// lockExclusive takes an exclusive byte-range lock on the first byte of f.
// LockFileEx without LOCKFILE_FAIL_IMMEDIATELY parks the whole OS thread,
// which starves the scheduler, so we poll with the non-blocking variant.
func lockExclusive(f *os.File) error {
	for {
		err := windows.LockFileEx(
			windows.Handle(f.Fd()),
			windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
			0, 1, 0,
			new(windows.Overlapped),
		)
		if err == nil {
			return nil
		}
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		time.Sleep(time.Millisecond)
	}
}

func unlockExclusive(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, new(windows.Overlapped))
}
