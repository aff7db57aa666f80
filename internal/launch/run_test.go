package launch

import (
	"errors"
	"testing"
	"time"
)

// fakeConn stands in for the display connection.
type fakeConn struct {
	win        WindowID
	findErr    error
	hints      []HintResult
	applyCalls int
	closed     bool
}

func (c *fakeConn) FindWindow(pid int, m *Matcher, timeout, interval time.Duration) (WindowID, error) {
	if c.findErr != nil {
		return 0, c.findErr
	}
	return c.win, nil
}

func (c *fakeConn) ApplyHints(win WindowID, req *Request) []HintResult {
	c.applyCalls++
	return c.hints
}

func (c *fakeConn) Close() { c.closed = true }

func testRequest() *Request {
	return &Request{
		Command:  "xterm",
		Wait:     time.Second,
		Interval: time.Millisecond,
	}
}

func spawnOK(command string, args []string) (int, error) { return 4242, nil }

func TestRun_Success(t *testing.T) {
	conn := &fakeConn{
		win:   0x2a,
		hints: []HintResult{{Hint: "above", Kind: "message", OK: true}},
	}
	rep, err := Run(testRequest(), spawnOK, func() (Conn, error) { return conn, nil })
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK || rep.State != StateDone {
		t.Errorf("report = %+v, want ok in state %s", rep, StateDone)
	}
	if rep.PID != 4242 {
		t.Errorf("pid = %d, want 4242", rep.PID)
	}
	if rep.Window != "0x2a" {
		t.Errorf("window = %q, want 0x2a", rep.Window)
	}
	if len(rep.Hints) != 1 || conn.applyCalls != 1 {
		t.Errorf("hints = %v, applyCalls = %d", rep.Hints, conn.applyCalls)
	}
	if !conn.closed {
		t.Error("connection must be closed on the success path")
	}
	if ExitCode(err) != ExitOK {
		t.Errorf("exit = %d, want %d", ExitCode(err), ExitOK)
	}
}

func TestRun_SpawnFailed(t *testing.T) {
	spawn := func(command string, args []string) (int, error) {
		return 0, errors.New("no such file")
	}
	connected := false
	rep, err := Run(testRequest(), spawn, func() (Conn, error) {
		connected = true
		return &fakeConn{}, nil
	})
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v, want SpawnError", err)
	}
	if rep.State != StateSpawnFailed || rep.OK {
		t.Errorf("report = %+v", rep)
	}
	if connected {
		t.Error("must not connect after a failed spawn")
	}
	if ExitCode(err) != ExitSpawnFailed {
		t.Errorf("exit = %d, want %d", ExitCode(err), ExitSpawnFailed)
	}
}

func TestRun_ConnectionFailed(t *testing.T) {
	rep, err := Run(testRequest(), spawnOK, func() (Conn, error) {
		return nil, errors.New("cannot open display")
	})
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("err = %v, want ConnectionError", err)
	}
	if rep.State != StateConnectionFailed {
		t.Errorf("state = %s", rep.State)
	}
	if ExitCode(err) != ExitConnectionFailed {
		t.Errorf("exit = %d, want %d", ExitCode(err), ExitConnectionFailed)
	}
}

// A timed-out search fails the run but never touches the child: the report
// still carries the pid of the process we leave running.
func TestRun_TimedOut(t *testing.T) {
	conn := &fakeConn{findErr: ErrNoWindow}
	req := testRequest()
	req.Matcher = &Matcher{Kind: MatchName, Value: "foo"}
	rep, err := Run(req, spawnOK, func() (Conn, error) { return conn, nil })
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if timeoutErr.Matcher != "name=foo" {
		t.Errorf("matcher in error = %q", timeoutErr.Matcher)
	}
	if rep.State != StateTimedOut {
		t.Errorf("state = %s", rep.State)
	}
	if rep.PID != 4242 {
		t.Errorf("pid = %d; the child must stay reported even on timeout", rep.PID)
	}
	if conn.applyCalls != 0 {
		t.Error("no hints may be applied without a window")
	}
	if !conn.closed {
		t.Error("connection must be closed on the timeout path")
	}
	if ExitCode(err) != ExitTimedOut {
		t.Errorf("exit = %d, want %d", ExitCode(err), ExitTimedOut)
	}
}

// A finder error that is not the timeout sentinel means the connection died.
func TestRun_EnumerationErrorIsConnectionError(t *testing.T) {
	conn := &fakeConn{findErr: errors.New("broken pipe")}
	_, err := Run(testRequest(), spawnOK, func() (Conn, error) { return conn, nil })
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("err = %v, want ConnectionError", err)
	}
}

func TestRun_ReassertReappliesUntilDeadline(t *testing.T) {
	conn := &fakeConn{win: 1}
	req := testRequest()
	req.Wait = 20 * time.Millisecond
	req.Reassert = true
	rep, err := Run(req, spawnOK, func() (Conn, error) { return conn, nil })
	if err != nil {
		t.Fatal(err)
	}
	if conn.applyCalls < 2 {
		t.Errorf("applyCalls = %d, want at least the initial apply plus one reassert", conn.applyCalls)
	}
	if rep.State != StateDone {
		t.Errorf("state = %s", rep.State)
	}
}

func TestExitCode_Unknown(t *testing.T) {
	if ExitCode(errors.New("whatever")) != 1 {
		t.Error("unclassified errors map to exit 1")
	}
}
