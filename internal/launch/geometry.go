package launch

import (
	"fmt"
	"strconv"
	"strings"
)

// Geometry is a parsed [WxH][+-]X[+-]Y specification. Size and position are
// independently optional, but within each pair both values are required.
// Offsets keep the sign they were written with; the anchor records which
// screen edge they are measured from, so "+0" and "-0" stay distinct.
type Geometry struct {
	HasSize bool
	Width   int
	Height  int

	HasPosition bool
	X           int
	Y           int
	XFromRight  bool
	YFromBottom bool
}

// ParseGeometry parses the X-style geometry string, e.g. "150x30-250+0":
// 150x30 pixels, 250 from the right edge, flush with the top edge.
func ParseGeometry(s string) (*Geometry, error) {
	if s == "" {
		return nil, fmt.Errorf("empty geometry")
	}
	g := &Geometry{}
	rest := s

	if !strings.HasPrefix(rest, "+") && !strings.HasPrefix(rest, "-") {
		wstr, tail, ok := strings.Cut(rest, "x")
		if !ok {
			return nil, fmt.Errorf("invalid geometry %q (expected [WxH][+-]X[+-]Y)", s)
		}
		w, err := strconv.Atoi(wstr)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid geometry width in %q", s)
		}
		hstr := tail
		if i := strings.IndexAny(tail, "+-"); i >= 0 {
			hstr, rest = tail[:i], tail[i:]
		} else {
			rest = ""
		}
		h, err := strconv.Atoi(hstr)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid geometry height in %q", s)
		}
		g.HasSize, g.Width, g.Height = true, w, h
	}

	if rest != "" {
		x, fromRight, tail, err := parseOffset(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid geometry x offset in %q", s)
		}
		y, fromBottom, tail, err := parseOffset(tail)
		if err != nil || tail != "" {
			return nil, fmt.Errorf("invalid geometry y offset in %q", s)
		}
		g.HasPosition = true
		g.X, g.XFromRight = x, fromRight
		g.Y, g.YFromBottom = y, fromBottom
	}

	if !g.HasSize && !g.HasPosition {
		return nil, fmt.Errorf("invalid geometry %q", s)
	}
	return g, nil
}

// parseOffset consumes one signed offset from the front of s. The sign
// doubles as the anchor: "-" measures from the right or bottom edge.
func parseOffset(s string) (value int, fromFar bool, rest string, err error) {
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return 0, false, "", fmt.Errorf("missing offset sign")
	}
	fromFar = s[0] == '-'
	rest = s[1:]
	end := len(rest)
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		end = i
	}
	value, err = strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false, "", err
	}
	if fromFar {
		value = -value
	}
	return value, fromFar, rest[end:], nil
}

// Resolve turns the anchored offsets into absolute top-left coordinates for
// a window of winW x winH on a screen of screenW x screenH. A right anchor
// of -250 places the window 250 pixels short of the right edge.
func (g *Geometry) Resolve(screenW, screenH, winW, winH int) (x, y int) {
	if g.HasSize {
		winW, winH = g.Width, g.Height
	}
	x, y = g.X, g.Y
	if g.XFromRight {
		x = screenW - winW + g.X
	}
	if g.YFromBottom {
		y = screenH - winH + g.Y
	}
	return x, y
}
