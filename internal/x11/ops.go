package x11

import (
	"github.com/xlaunch/xlaunch/internal/launch"
)

// OpKind is the protocol mechanism a hint travels by. Compliant window
// managers ignore direct property writes for window state, so state hints
// must go as client messages to the root window; explicit geometry uses a
// configure request instead.
type OpKind string

const (
	OpProperty  OpKind = "property"  // direct property write on the window
	OpMessage   OpKind = "message"   // state-change client message to the root
	OpConfigure OpKind = "configure" // configure request
)

// Datum is one 32-bit word of an op payload. Atom names are carried
// symbolically and only resolved against the live connection at apply time,
// keeping op construction pure.
type Datum struct {
	Atom  string
	Value uint
}

func val(v uint) Datum       { return Datum{Value: v} }
func atom(name string) Datum { return Datum{Atom: name} }

// Op is one encoded hint, ready to issue against a window.
type Op struct {
	Hint string
	Kind OpKind

	// Prop is the property name for OpProperty, or the message type for
	// OpMessage. Type is the property's value type (OpProperty only).
	Prop string
	Type string
	Data []Datum

	Geometry *launch.Geometry
}

// _NET_WM_STATE client message action and source, per EWMH.
const (
	netWMStateAdd = 1
	sourceNormal  = 1
)

// WM_CHANGE_STATE payload for iconification, per ICCCM.
const iconicState = 3

// Motif hints: flags word with the decorations bit, then functions,
// decorations, input mode, status.
const motifHintDecorations = 1 << 1

var windowTypeAtoms = map[launch.WindowType]string{
	launch.TypeDesktop: "_NET_WM_WINDOW_TYPE_DESKTOP",
	launch.TypeDock:    "_NET_WM_WINDOW_TYPE_DOCK",
	launch.TypeToolbar: "_NET_WM_WINDOW_TYPE_TOOLBAR",
	launch.TypeMenu:    "_NET_WM_WINDOW_TYPE_MENU",
	launch.TypeUtility: "_NET_WM_WINDOW_TYPE_UTILITY",
	launch.TypeSplash:  "_NET_WM_WINDOW_TYPE_SPLASH",
	launch.TypeDialog:  "_NET_WM_WINDOW_TYPE_DIALOG",
	launch.TypeNormal:  "_NET_WM_WINDOW_TYPE_NORMAL",
}

// stateMessage builds a _NET_WM_STATE add request for one or two states.
func stateMessage(hint, first, second string) Op {
	secondDatum := val(0)
	if second != "" {
		secondDatum = atom(second)
	}
	return Op{
		Hint: hint,
		Kind: OpMessage,
		Prop: "_NET_WM_STATE",
		Data: []Datum{val(netWMStateAdd), atom(first), secondDatum, val(sourceNormal), val(0)},
	}
}

// IconOp wraps an already-encoded _NET_WM_ICON payload.
func IconOp(payload []uint) Op {
	data := make([]Datum, len(payload))
	for i, v := range payload {
		data[i] = val(v)
	}
	return Op{Hint: "icon", Kind: OpProperty, Prop: "_NET_WM_ICON", Type: "CARDINAL", Data: data}
}

// BuildOps translates every enabled hint except the icon (which needs file
// I/O first) into ops, in a fixed order. Pure: no connection required.
func BuildOps(req *launch.Request) []Op {
	var ops []Op

	if req.Type != "" {
		ops = append(ops, Op{
			Hint: "type",
			Kind: OpProperty,
			Prop: "_NET_WM_WINDOW_TYPE",
			Type: "ATOM",
			Data: []Datum{atom(windowTypeAtoms[req.Type])},
		})
	}
	if req.NoDecoration {
		ops = append(ops, Op{
			Hint: "no-decoration",
			Kind: OpProperty,
			Prop: "_MOTIF_WM_HINTS",
			Type: "_MOTIF_WM_HINTS",
			Data: []Datum{val(motifHintDecorations), val(0), val(0), val(0), val(0)},
		})
	}
	if req.Geometry != nil {
		ops = append(ops, Op{Hint: "geometry", Kind: OpConfigure, Geometry: req.Geometry})
	}
	switch req.Size {
	case launch.SizeMax:
		ops = append(ops, stateMessage("size", "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"))
	case launch.SizeFullscreen:
		ops = append(ops, stateMessage("size", "_NET_WM_STATE_FULLSCREEN", ""))
	case launch.SizeMin:
		ops = append(ops, Op{
			Hint: "size",
			Kind: OpMessage,
			Prop: "WM_CHANGE_STATE",
			Data: []Datum{val(iconicState), val(0), val(0), val(0), val(0)},
		})
	}
	if req.Above {
		ops = append(ops, stateMessage("above", "_NET_WM_STATE_ABOVE", ""))
	}
	if req.NoTaskbar {
		ops = append(ops, stateMessage("no-taskbar", "_NET_WM_STATE_SKIP_TASKBAR", "_NET_WM_STATE_SKIP_PAGER"))
	}

	return ops
}
