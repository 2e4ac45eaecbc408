package archive

import "os"

// writeLock guards a record file against concurrent writers from other
// boardwatch processes. It is advisory: both sides must take it.
type writeLock struct {
	f *os.File
}

// acquireWriteLock blocks until the exclusive lock on path is held,
// creating the lock file if needed. Release when the write is done.
func acquireWriteLock(path string) (*writeLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // path is inside the config dir
	if err != nil {
		return nil, err
	}
	if err := lockExclusive(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &writeLock{f: f}, nil
}

func (l *writeLock) Release() error {
	unlockErr := unlockExclusive(l.f)
	if closeErr := l.f.Close(); unlockErr == nil {
		return closeErr
	}
	return unlockErr
}
