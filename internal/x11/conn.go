// Package x11 is the display-server side of the launcher: finding the
// spawned program's top-level window and rewriting its window-manager
// hints over a single owned connection.
package x11

import (
	"github.com/BurntSushi/xgbutil"
	"github.com/pkg/errors"

	"github.com/xlaunch/xlaunch/internal/launch"
)

// Conn owns one X connection for the duration of a run. It satisfies
// launch.Conn; nothing outside this package touches the raw connection.
type Conn struct {
	xu    *xgbutil.XUtil
	enum  Enumerator
	icons iconCache
}

// Connect opens a connection to the display named by the DISPLAY
// environment variable.
func Connect() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to display")
	}
	return &Conn{xu: xu, enum: &xuEnumerator{xu: xu}}, nil
}

// Connector adapts Connect to the orchestrator's injection point.
func Connector() (launch.Conn, error) {
	c, err := Connect()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Conn) Close() {
	c.xu.Conn().Close()
}
