package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xlaunch/xlaunch/internal/icon"
	"github.com/xlaunch/xlaunch/internal/launch"
)

// opExecutor issues a single op against the display. Split out so the
// best-effort apply loop can be tested without a server.
type opExecutor interface {
	exec(op Op) error
}

// ApplyHints implements launch.Conn. Each hint is applied independently;
// one failing encode or write is recorded and the rest still go out.
func (c *Conn) ApplyHints(win launch.WindowID, req *launch.Request) []launch.HintResult {
	ops, results := c.icons.assembleOps(req)
	exec := &xuExecutor{xu: c.xu, win: xproto.Window(win)}
	return append(results, applyOps(exec, ops)...)
}

// iconCache holds the decoded icon op for the lifetime of the connection,
// so re-applying hints does not re-read and re-decode the file.
type iconCache struct {
	loaded bool
	op     *Op
	fail   *launch.HintResult
}

// assembleOps builds the full op list for a request. The icon hint is the
// only one that can fail before reaching the wire (file read or decode);
// such a failure is returned as an already-failed result. The icon file
// is decoded at most once; subsequent calls reuse the cached outcome.
func (ic *iconCache) assembleOps(req *launch.Request) ([]Op, []launch.HintResult) {
	var ops []Op
	var results []launch.HintResult
	if req.IconPath != "" {
		ic.load(req.IconPath)
		if ic.fail != nil {
			results = append(results, *ic.fail)
		} else {
			ops = append(ops, *ic.op)
		}
	}
	return append(ops, BuildOps(req)...), results
}

func (ic *iconCache) load(path string) {
	if ic.loaded {
		return
	}
	ic.loaded = true
	payload, err := iconPayload(path)
	if err != nil {
		log.Error().Err(err).Msg("icon hint skipped")
		ic.fail = &launch.HintResult{
			Hint: "icon", Kind: string(OpProperty), Error: err.Error(),
		}
		return
	}
	op := IconOp(payload)
	ic.op = &op
}

func iconPayload(path string) ([]uint, error) {
	img, err := icon.Decode(path)
	if err != nil {
		return nil, err
	}
	return img.Payload()
}

// applyOps runs every op, never stopping on failure.
func applyOps(exec opExecutor, ops []Op) []launch.HintResult {
	results := make([]launch.HintResult, 0, len(ops))
	for _, op := range ops {
		res := launch.HintResult{Hint: op.Hint, Kind: string(op.Kind), OK: true}
		if err := exec.exec(op); err != nil {
			res.OK = false
			res.Error = err.Error()
			log.Warn().Str("hint", op.Hint).Err(err).Msg("hint write failed")
		}
		results = append(results, res)
	}
	return results
}

// xuExecutor issues ops against a live window.
type xuExecutor struct {
	xu  *xgbutil.XUtil
	win xproto.Window
}

func (x *xuExecutor) exec(op Op) error {
	switch op.Kind {
	case OpProperty:
		data, err := x.resolve(op.Data)
		if err != nil {
			return err
		}
		return xprop.ChangeProp32(x.xu, x.win, op.Prop, op.Type, data...)
	case OpMessage:
		data, err := x.resolve(op.Data)
		if err != nil {
			return err
		}
		words := make([]interface{}, len(data))
		for i, v := range data {
			words[i] = int(v)
		}
		return ewmh.ClientEvent(x.xu, x.win, op.Prop, words...)
	case OpConfigure:
		return x.configure(op.Geometry)
	}
	return errors.Errorf("unknown op kind %q", op.Kind)
}

// resolve replaces symbolic atom names with interned atom values.
func (x *xuExecutor) resolve(data []Datum) ([]uint, error) {
	out := make([]uint, len(data))
	for i, d := range data {
		if d.Atom == "" {
			out[i] = d.Value
			continue
		}
		a, err := xprop.Atm(x.xu, d.Atom)
		if err != nil {
			return nil, errors.Wrapf(err, "intern %s", d.Atom)
		}
		out[i] = uint(a)
	}
	return out, nil
}

// configure issues a direct configure request for explicit geometry.
func (x *xuExecutor) configure(g *launch.Geometry) error {
	var mask uint16
	var values []uint32

	if g.HasPosition {
		winW, winH := g.Width, g.Height
		if !g.HasSize && (g.XFromRight || g.YFromBottom) {
			// Far-edge anchors need the window's current size.
			geom, err := xwindow.New(x.xu, x.win).Geometry()
			if err != nil {
				return errors.Wrap(err, "query geometry")
			}
			winW, winH = geom.Width(), geom.Height()
		}
		screen := x.xu.Screen()
		px, py := g.Resolve(int(screen.WidthInPixels), int(screen.HeightInPixels), winW, winH)
		mask |= xproto.ConfigWindowX | xproto.ConfigWindowY
		values = append(values, uint32(int32(px)), uint32(int32(py)))
	}
	if g.HasSize {
		mask |= xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
		values = append(values, uint32(g.Width), uint32(g.Height))
	}
	return xproto.ConfigureWindowChecked(x.xu.Conn(), x.win, mask, values).Check()
}
