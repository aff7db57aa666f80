package launch

import (
	"fmt"
	"strings"
	"time"
)

// MatchKind selects which window property a Matcher compares against.
type MatchKind string

const (
	MatchClass MatchKind = "class"
	MatchName  MatchKind = "name"
)

// Matcher identifies which of possibly several windows belongs to the
// spawned process. Comparison is a case-sensitive exact match.
type Matcher struct {
	Kind  MatchKind
	Value string
}

func (m *Matcher) String() string {
	if m == nil {
		return "any"
	}
	return fmt.Sprintf("%s=%s", m.Kind, m.Value)
}

// ParseMatcher parses a "class=<value>" or "name=<value>" flag value.
func ParseMatcher(s string) (*Matcher, error) {
	kind, value, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("invalid property %q (expected class=<value> or name=<value>)", s)
	}
	switch MatchKind(kind) {
	case MatchClass, MatchName:
	default:
		return nil, fmt.Errorf("invalid property kind %q (expected class or name)", kind)
	}
	if value == "" {
		return nil, fmt.Errorf("empty property value in %q", s)
	}
	return &Matcher{Kind: MatchKind(kind), Value: value}, nil
}

// SizeMode is a window-manager state request, as opposed to explicit
// geometry. The empty string means no size request.
type SizeMode string

const (
	SizeMax        SizeMode = "max"
	SizeMin        SizeMode = "min"
	SizeFullscreen SizeMode = "fullscreen"
)

func ParseSizeMode(s string) (SizeMode, error) {
	switch SizeMode(s) {
	case SizeMax, SizeMin, SizeFullscreen:
		return SizeMode(s), nil
	}
	return "", fmt.Errorf("invalid size %q (expected max, min or fullscreen)", s)
}

// WindowType is an EWMH window type classification. The empty string means
// the type is left to the launched program.
type WindowType string

const (
	TypeDesktop WindowType = "desktop"
	TypeDock    WindowType = "dock"
	TypeToolbar WindowType = "toolbar"
	TypeMenu    WindowType = "menu"
	TypeUtility WindowType = "utility"
	TypeSplash  WindowType = "splash"
	TypeDialog  WindowType = "dialog"
	TypeNormal  WindowType = "normal"
)

func ParseWindowType(s string) (WindowType, error) {
	switch WindowType(s) {
	case TypeDesktop, TypeDock, TypeToolbar, TypeMenu,
		TypeUtility, TypeSplash, TypeDialog, TypeNormal:
		return WindowType(s), nil
	}
	return "", fmt.Errorf("invalid window type %q", s)
}

// Request describes one launch: the program to spawn and the presentation
// hints to force onto its top-level window. Built once from validated
// input and never mutated afterwards.
type Request struct {
	Command string
	Args    []string

	Matcher      *Matcher
	IconPath     string
	Size         SizeMode
	Geometry     *Geometry
	Type         WindowType
	Above        bool
	NoDecoration bool
	NoTaskbar    bool

	Wait     time.Duration
	Interval time.Duration
	Reassert bool
}

// Validate checks the parts of a Request that can fail before anything is
// spawned. The icon path is deliberately not checked here: an unreadable or
// malformed icon only fails the icon hint, never the run.
func (r *Request) Validate() error {
	if r.Command == "" {
		return fmt.Errorf("no command to launch")
	}
	if r.Wait <= 0 {
		return fmt.Errorf("wait must be positive, got %s", r.Wait)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", r.Interval)
	}
	return nil
}
