package cmd

import (
	"testing"
	"time"

	"github.com/xlaunch/xlaunch/internal/config"
	"github.com/xlaunch/xlaunch/internal/launch"
)

// resetFlags puts the shared root command's flags back to their defaults so
// tests do not leak state into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"command", "property", "icon", "size", "geometry", "type",
		"above", "no-decoration", "no-taskbar-icon", "wait", "interval", "reassert",
	} {
		f := rootCmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag %s not registered", name)
		}
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatal(err)
		}
		f.Changed = false
	}
}

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	if err := rootCmd.Flags().Set(name, value); err != nil {
		t.Fatal(err)
	}
}

func TestBuildRequest_Defaults(t *testing.T) {
	resetFlags(t)
	setFlag(t, "command", "xterm")

	req, err := buildRequest(rootCmd, []string{"-e", "top"}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if req.Command != "xterm" {
		t.Errorf("command = %q", req.Command)
	}
	if len(req.Args) != 2 || req.Args[0] != "-e" {
		t.Errorf("args = %v", req.Args)
	}
	if req.Wait != 10*time.Second {
		t.Errorf("wait = %s, want config default 10s", req.Wait)
	}
	if req.Interval != 50*time.Millisecond {
		t.Errorf("interval = %s, want config default 50ms", req.Interval)
	}
	if req.Matcher != nil || req.Size != "" || req.Type != "" || req.Geometry != nil {
		t.Errorf("unset hints must stay unset: %+v", req)
	}
}

func TestBuildRequest_PositionalCommand(t *testing.T) {
	resetFlags(t)
	req, err := buildRequest(rootCmd, []string{"mpv", "video.mkv"}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if req.Command != "mpv" || len(req.Args) != 1 || req.Args[0] != "video.mkv" {
		t.Errorf("req = %+v", req)
	}
}

func TestBuildRequest_AllHints(t *testing.T) {
	resetFlags(t)
	setFlag(t, "command", "mpv")
	setFlag(t, "property", "class=mpv")
	setFlag(t, "size", "fullscreen")
	setFlag(t, "type", "dialog")
	setFlag(t, "geometry", "150x30-250+0")
	setFlag(t, "above", "true")
	setFlag(t, "no-decoration", "true")
	setFlag(t, "no-taskbar-icon", "true")
	setFlag(t, "wait", "5")
	setFlag(t, "interval", "20")

	req, err := buildRequest(rootCmd, nil, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if req.Matcher == nil || req.Matcher.Kind != launch.MatchClass || req.Matcher.Value != "mpv" {
		t.Errorf("matcher = %+v", req.Matcher)
	}
	if req.Size != launch.SizeFullscreen || req.Type != launch.TypeDialog {
		t.Errorf("size = %s, type = %s", req.Size, req.Type)
	}
	if req.Geometry == nil || !req.Geometry.XFromRight {
		t.Errorf("geometry = %+v", req.Geometry)
	}
	if !req.Above || !req.NoDecoration || !req.NoTaskbar {
		t.Errorf("booleans = %+v", req)
	}
	if req.Wait != 5*time.Second || req.Interval != 20*time.Millisecond {
		t.Errorf("wait = %s, interval = %s", req.Wait, req.Interval)
	}
}

func TestBuildRequest_FlagBeatsConfig(t *testing.T) {
	resetFlags(t)
	setFlag(t, "command", "xterm")
	setFlag(t, "wait", "2")

	cfg := config.Default()
	cfg.Wait = 30
	cfg.Reassert = true

	req, err := buildRequest(rootCmd, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if req.Wait != 2*time.Second {
		t.Errorf("wait = %s, explicit flag must win", req.Wait)
	}
	if !req.Reassert {
		t.Error("reassert not set on the command line falls back to config")
	}
}

func TestBuildRequest_InvalidValues(t *testing.T) {
	for flag, value := range map[string]string{
		"property": "title=x",
		"size":     "huge",
		"type":     "panel",
		"geometry": "bogus",
	} {
		resetFlags(t)
		setFlag(t, "command", "xterm")
		setFlag(t, flag, value)
		if _, err := buildRequest(rootCmd, nil, config.Default()); err == nil {
			t.Errorf("%s=%s must be rejected", flag, value)
		}
	}
}

// An explicit non-positive wait or interval is a usage error, never
// silently replaced by the config default.
func TestBuildRequest_ExplicitNonPositiveTimings(t *testing.T) {
	for flag, value := range map[string]string{
		"wait":     "-1",
		"interval": "-5",
	} {
		resetFlags(t)
		setFlag(t, "command", "xterm")
		setFlag(t, flag, value)
		if _, err := buildRequest(rootCmd, nil, config.Default()); err == nil {
			t.Errorf("%s=%s must be rejected", flag, value)
		}
	}

	resetFlags(t)
	setFlag(t, "command", "xterm")
	setFlag(t, "wait", "0")
	if _, err := buildRequest(rootCmd, nil, config.Default()); err == nil {
		t.Error("wait=0 must be rejected")
	}
}

func TestBuildRequest_NoCommand(t *testing.T) {
	resetFlags(t)
	if _, err := buildRequest(rootCmd, nil, config.Default()); err == nil {
		t.Error("a request without a command must be rejected")
	}
}
