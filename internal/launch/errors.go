package launch

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoWindow is returned by a Conn when no matching window appeared before
// the deadline. The orchestrator promotes it to a TimeoutError.
var ErrNoWindow = errors.New("no matching window")

// SpawnError means the program could not be started at all.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ConnectionError means the X server could not be reached, or died under us.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("display connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError means the spawned program never presented a matching
// top-level window within the wait budget. The child is left running.
type TimeoutError struct {
	Matcher string
	Wait    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no window matching %s within %s", e.Matcher, e.Wait)
}

// Exit codes. 1 is left to cobra for usage errors.
const (
	ExitOK               = 0
	ExitSpawnFailed      = 2
	ExitConnectionFailed = 3
	ExitTimedOut         = 4
)

// ExitCode maps a Run error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var spawnErr *SpawnError
	var connErr *ConnectionError
	var timeoutErr *TimeoutError
	switch {
	case errors.As(err, &spawnErr):
		return ExitSpawnFailed
	case errors.As(err, &connErr):
		return ExitConnectionFailed
	case errors.As(err, &timeoutErr):
		return ExitTimedOut
	}
	return 1
}
