package launch

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// WindowID is the windowing system's opaque handle for a top-level window.
// It is only meaningful for the lifetime of the connection that found it.
type WindowID uint32

// HintResult records the outcome of one independently-applied hint.
type HintResult struct {
	Hint  string `yaml:"hint"            json:"hint"`
	Kind  string `yaml:"kind"            json:"kind"`
	OK    bool   `yaml:"ok"              json:"ok"`
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Conn is the orchestrator's view of the display connection. The real
// implementation lives in internal/x11; tests substitute a fake.
type Conn interface {
	// FindWindow polls for a top-level window owned by pid that satisfies
	// the matcher, returning ErrNoWindow once timeout elapses.
	FindWindow(pid int, m *Matcher, timeout, interval time.Duration) (WindowID, error)
	// ApplyHints applies every hint the request enables, best effort.
	ApplyHints(win WindowID, req *Request) []HintResult
	Close()
}

// Connector opens the display connection for one run.
type Connector func() (Conn, error)

// SpawnFunc starts the program and returns its pid.
type SpawnFunc func(command string, args []string) (int, error)

// Run states, in transition order. Terminal failure states carry the same
// names as the error kinds they map to.
const (
	StateIdle             = "idle"
	StateSpawned          = "spawned"
	StateSearching        = "searching"
	StateFound            = "found"
	StateHintsApplied     = "hints-applied"
	StateDone             = "done"
	StateSpawnFailed      = "spawn-failed"
	StateConnectionFailed = "connection-failed"
	StateTimedOut         = "timed-out"
)

// Report is the printed outcome of a run.
type Report struct {
	OK      bool         `yaml:"ok"               json:"ok"`
	State   string       `yaml:"state"            json:"state"`
	PID     int          `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Window  string       `yaml:"window,omitempty" json:"window,omitempty"`
	Elapsed string       `yaml:"elapsed"          json:"elapsed"`
	Hints   []HintResult `yaml:"hints,omitempty"  json:"hints,omitempty"`
}

// How often hints are re-applied when reassert is on.
const reassertInterval = 500 * time.Millisecond

// Run drives one launch: spawn the program, open the display connection,
// poll for the matching window, apply hints, report. Per-hint failures
// never fail the run; spawn, connection and timeout failures do. The
// connection is closed on every path out.
func Run(req *Request, spawn SpawnFunc, connect Connector) (*Report, error) {
	start := time.Now()
	rep := &Report{State: StateIdle}
	finish := func(state string, err error) (*Report, error) {
		rep.State = state
		rep.OK = err == nil
		rep.Elapsed = time.Since(start).Round(time.Millisecond).String()
		return rep, err
	}

	pid, err := spawn(req.Command, req.Args)
	if err != nil {
		return finish(StateSpawnFailed, &SpawnError{Command: req.Command, Err: err})
	}
	rep.State = StateSpawned
	rep.PID = pid
	log.Debug().Int("pid", pid).Str("command", req.Command).Msg("spawned")

	conn, err := connect()
	if err != nil {
		return finish(StateConnectionFailed, &ConnectionError{Err: err})
	}
	defer conn.Close()

	rep.State = StateSearching
	deadline := start.Add(req.Wait)
	win, err := conn.FindWindow(pid, req.Matcher, time.Until(deadline), req.Interval)
	if err != nil {
		if errors.Is(err, ErrNoWindow) {
			return finish(StateTimedOut, &TimeoutError{Matcher: req.Matcher.String(), Wait: req.Wait})
		}
		// Enumeration failures mid-poll mean the connection went away.
		return finish(StateConnectionFailed, &ConnectionError{Err: err})
	}
	rep.State = StateFound
	rep.Window = fmt.Sprintf("0x%x", uint32(win))
	log.Debug().Str("window", rep.Window).Msg("window found")

	rep.Hints = conn.ApplyHints(win, req)
	rep.State = StateHintsApplied

	// The launched program may rewrite its own hints while it settles;
	// with reassert on we keep re-applying until the wait window closes.
	if req.Reassert {
		for time.Now().Before(deadline) {
			remaining := time.Until(deadline)
			if remaining > reassertInterval {
				remaining = reassertInterval
			}
			time.Sleep(remaining)
			rep.Hints = conn.ApplyHints(win, req)
		}
	}

	return finish(StateDone, nil)
}
