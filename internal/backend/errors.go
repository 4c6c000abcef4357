package backend

import "errors"

var (
	// errIdle marks a poll skipped because nothing is being watched.
	errIdle = errors.New("backend: no path to watch")
	// errUnchanged marks a poll whose result was already reported.
	errUnchanged = errors.New("backend: listing unchanged")
)

func skipped(err error) bool {
	return errors.Is(err, errIdle) || errors.Is(err, errUnchanged)
}
