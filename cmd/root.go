package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xlaunch/xlaunch/internal/config"
	"github.com/xlaunch/xlaunch/internal/launch"
	"github.com/xlaunch/xlaunch/internal/output"
	"github.com/xlaunch/xlaunch/internal/version"
	"github.com/xlaunch/xlaunch/internal/x11"
)

var rootCmd = &cobra.Command{
	Use:   "xlaunch [flags] --command <program> [-- args...]",
	Short: "Launch an X11 program and rewrite its window's WM hints",
	Long: `Launch a graphical program and, as soon as its top-level window appears,
rewrite the window-manager hints the caller asked for: icon, size state,
geometry, stacking, decoration, taskbar visibility and window type.

The window is identified by the spawned process id, optionally narrowed by
a class or name property match. Positional arguments (use -- before any
that start with a dash) are passed to the launched program.

Examples:
  xlaunch --icon app.png --command firefox
  xlaunch --property class=mpv --size fullscreen --command mpv -- video.mkv
  xlaunch --type dialog --geometry 640x480-0+0 --no-taskbar-icon --command xterm`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runLaunch,
}

// Execute runs the root command and exits with the launcher's exit code:
// 0 success, 2 spawn failed, 3 connection failed, 4 timed out, 1 otherwise.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(launch.ExitCode(err))
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	rootCmd.Flags().String("command", "", "Program to launch (first positional argument if omitted)")
	rootCmd.Flags().String("property", "", "Window match predicate: class=<value> or name=<value>")
	rootCmd.Flags().String("icon", "", "Icon image file (png, jpeg, gif, bmp, tiff, webp)")
	rootCmd.Flags().String("size", "", "Window size state: max, min or fullscreen")
	rootCmd.Flags().String("geometry", "", "Explicit geometry [WxH][+-]X[+-]Y (negative anchors measure from right/bottom)")
	rootCmd.Flags().String("type", "", "Window type: desktop, dock, toolbar, menu, utility, splash, dialog, normal")
	rootCmd.Flags().Bool("above", false, "Keep the window above others")
	rootCmd.Flags().Bool("no-decoration", false, "Ask the window manager not to decorate the window")
	rootCmd.Flags().Bool("no-taskbar-icon", false, "Hide the window from the taskbar and pager")
	rootCmd.Flags().Int("wait", 0, "Max seconds to wait for the window (default from config, 10)")
	rootCmd.Flags().Int("interval", 0, "Poll interval in milliseconds (default from config, 50)")
	rootCmd.Flags().Bool("reassert", false, "Re-apply hints until the wait window closes")

	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// setupLogging configures the global zerolog logger from the config file
// level, with --verbose forcing debug.
func setupLogging(cmd *cobra.Command, cfg config.Config) {
	zlog.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// setupFormat picks the report format: flag, then config file, then yaml.
func setupFormat(cmd *cobra.Command, cfg config.Config) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Format
	}
	switch format {
	case "yaml", "":
		output.OutputFormat = output.FormatYAML
	case "json":
		output.OutputFormat = output.FormatJSON
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
	return nil
}

// buildRequest assembles and validates a LaunchRequest from flags, config
// defaults and positional arguments.
func buildRequest(cmd *cobra.Command, args []string, cfg config.Config) (*launch.Request, error) {
	req := &launch.Request{}

	req.Command, _ = cmd.Flags().GetString("command")
	req.Args = args
	if req.Command == "" && len(args) > 0 {
		req.Command, req.Args = args[0], args[1:]
	}

	if s, _ := cmd.Flags().GetString("property"); s != "" {
		m, err := launch.ParseMatcher(s)
		if err != nil {
			return nil, err
		}
		req.Matcher = m
	}
	if s, _ := cmd.Flags().GetString("size"); s != "" {
		mode, err := launch.ParseSizeMode(s)
		if err != nil {
			return nil, err
		}
		req.Size = mode
	}
	if s, _ := cmd.Flags().GetString("type"); s != "" {
		wt, err := launch.ParseWindowType(s)
		if err != nil {
			return nil, err
		}
		req.Type = wt
	}
	if s, _ := cmd.Flags().GetString("geometry"); s != "" {
		g, err := launch.ParseGeometry(s)
		if err != nil {
			return nil, err
		}
		req.Geometry = g
	}
	req.IconPath, _ = cmd.Flags().GetString("icon")
	req.Above, _ = cmd.Flags().GetBool("above")
	req.NoDecoration, _ = cmd.Flags().GetBool("no-decoration")
	req.NoTaskbar, _ = cmd.Flags().GetBool("no-taskbar-icon")

	// Fall back to config only when the flag was not given at all; an
	// explicit zero or negative value is a usage error caught by Validate.
	waitSec, _ := cmd.Flags().GetInt("wait")
	if !cmd.Flags().Changed("wait") {
		waitSec = cfg.Wait
	}
	req.Wait = time.Duration(waitSec) * time.Second

	intervalMs, _ := cmd.Flags().GetInt("interval")
	if !cmd.Flags().Changed("interval") {
		intervalMs = cfg.IntervalMs
	}
	req.Interval = time.Duration(intervalMs) * time.Millisecond

	req.Reassert, _ = cmd.Flags().GetBool("reassert")
	if !cmd.Flags().Changed("reassert") {
		req.Reassert = cfg.Reassert
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	setupLogging(cmd, cfg)
	if err := setupFormat(cmd, cfg); err != nil {
		return err
	}

	req, err := buildRequest(cmd, args, cfg)
	if err != nil {
		return err
	}

	report, err := launch.Run(req, launch.Spawn, x11.Connector)
	if report != nil {
		if perr := output.Print(report); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}
