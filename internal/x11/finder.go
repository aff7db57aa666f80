package x11

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/pkg/errors"

	"github.com/xlaunch/xlaunch/internal/launch"
)

// Enumerator is the window-enumeration source the finder polls. The live
// implementation reads the window manager's client list; tests inject a
// fake. Property lookups return ok=false when the window does not carry
// the property, which the finder treats as a non-match.
type Enumerator interface {
	Windows() ([]xproto.Window, error)
	Pid(w xproto.Window) (int, bool)
	// Class returns both WM_CLASS fields, instance then class.
	Class(w xproto.Window) (string, string, bool)
	Name(w xproto.Window) (string, bool)
}

// Find polls the enumeration source for a top-level window owned by pid
// that satisfies the matcher. Several windows matching in the same poll is
// settled deterministically: the first in client-list order wins, which
// EWMH defines as the earliest-mapped. Returns launch.ErrNoWindow once
// timeout elapses; enumeration failures abort immediately.
func Find(enum Enumerator, pid int, m *launch.Matcher, timeout, interval time.Duration) (xproto.Window, error) {
	deadline := time.Now().Add(timeout)
	for {
		wins, err := enum.Windows()
		if err != nil {
			return 0, errors.Wrap(err, "enumerate windows")
		}
		for _, w := range wins {
			p, ok := enum.Pid(w)
			if !ok || p != pid {
				continue
			}
			if matches(enum, w, m) {
				return w, nil
			}
		}
		if !time.Now().Add(interval).Before(deadline) {
			return 0, launch.ErrNoWindow
		}
		time.Sleep(interval)
	}
}

// matches tests one window against the matcher, case-sensitive and exact.
// A nil matcher accepts any window of the process.
func matches(enum Enumerator, w xproto.Window, m *launch.Matcher) bool {
	if m == nil {
		return true
	}
	switch m.Kind {
	case launch.MatchClass:
		instance, class, ok := enum.Class(w)
		return ok && (instance == m.Value || class == m.Value)
	case launch.MatchName:
		name, ok := enum.Name(w)
		return ok && name == m.Value
	}
	return false
}

// FindWindow implements launch.Conn.
func (c *Conn) FindWindow(pid int, m *launch.Matcher, timeout, interval time.Duration) (launch.WindowID, error) {
	w, err := Find(c.enum, pid, m, timeout, interval)
	if err != nil {
		return 0, err
	}
	return launch.WindowID(w), nil
}

// xuEnumerator reads windows and their properties from the live connection.
type xuEnumerator struct {
	xu *xgbutil.XUtil
}

func (e *xuEnumerator) Windows() ([]xproto.Window, error) {
	return ewmh.ClientListGet(e.xu)
}

func (e *xuEnumerator) Pid(w xproto.Window) (int, bool) {
	pid, err := ewmh.WmPidGet(e.xu, w)
	if err != nil {
		return 0, false
	}
	return int(pid), true
}

func (e *xuEnumerator) Class(w xproto.Window) (string, string, bool) {
	class, err := icccm.WmClassGet(e.xu, w)
	if err != nil || class == nil {
		return "", "", false
	}
	return class.Instance, class.Class, true
}

func (e *xuEnumerator) Name(w xproto.Window) (string, bool) {
	if name, err := ewmh.WmNameGet(e.xu, w); err == nil && name != "" {
		return name, true
	}
	name, err := icccm.WmNameGet(e.xu, w)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}
