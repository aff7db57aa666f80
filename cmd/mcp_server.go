package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xlaunch/xlaunch/internal/config"
	"github.com/xlaunch/xlaunch/internal/launch"
	"github.com/xlaunch/xlaunch/internal/version"
	"github.com/xlaunch/xlaunch/internal/x11"
)

// mcpServer wraps the MCP server with the launch tool.
type mcpServer struct {
	mcp *mcpserver.MCPServer
}

func newMCPServer() *mcpServer {
	s := &mcpServer{}
	s.mcp = mcpserver.NewMCPServer("xlaunch", version.Version)
	s.registerTools()
	return s
}

func (s *mcpServer) serveStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *mcpServer) serveHTTP(port int) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	return httpServer.Start(fmt.Sprintf(":%d", port))
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("launch",
			mcp.WithDescription("Launch an X11 program and rewrite its top-level window's WM hints (icon, size state, geometry, stacking, decoration, taskbar visibility, window type). Returns a report of which hints were applied."),
			mcp.WithString("command", mcp.Description("Program to launch"), mcp.Required()),
			mcp.WithArray("args", mcp.Description("Arguments passed to the program")),
			mcp.WithString("property", mcp.Description("Window match predicate: class=<value> or name=<value>")),
			mcp.WithString("icon", mcp.Description("Icon image file path")),
			mcp.WithString("size", mcp.Description("Size state: max, min, fullscreen")),
			mcp.WithString("geometry", mcp.Description("Explicit geometry [WxH][+-]X[+-]Y")),
			mcp.WithString("type", mcp.Description("Window type: desktop, dock, toolbar, menu, utility, splash, dialog, normal")),
			mcp.WithBoolean("above", mcp.Description("Keep the window above others")),
			mcp.WithBoolean("no-decoration", mcp.Description("Suppress window decoration")),
			mcp.WithBoolean("no-taskbar-icon", mcp.Description("Hide from taskbar and pager")),
			mcp.WithNumber("wait", mcp.Description("Max seconds to wait for the window (default 10)")),
			mcp.WithBoolean("reassert", mcp.Description("Re-apply hints until the wait window closes")),
		),
		s.handleLaunch,
	)
}

// launchRequestFromArgs maps tool arguments onto the same LaunchRequest the
// CLI builds.
func launchRequestFromArgs(request mcp.CallToolRequest, cfg config.Config) (*launch.Request, error) {
	req := &launch.Request{
		Command:  request.GetString("command", ""),
		Args:     request.GetStringSlice("args", nil),
		IconPath: request.GetString("icon", ""),
	}

	if s := request.GetString("property", ""); s != "" {
		m, err := launch.ParseMatcher(s)
		if err != nil {
			return nil, err
		}
		req.Matcher = m
	}
	if s := request.GetString("size", ""); s != "" {
		mode, err := launch.ParseSizeMode(s)
		if err != nil {
			return nil, err
		}
		req.Size = mode
	}
	if s := request.GetString("type", ""); s != "" {
		wt, err := launch.ParseWindowType(s)
		if err != nil {
			return nil, err
		}
		req.Type = wt
	}
	if s := request.GetString("geometry", ""); s != "" {
		g, err := launch.ParseGeometry(s)
		if err != nil {
			return nil, err
		}
		req.Geometry = g
	}
	req.Above = request.GetBool("above", false)
	req.NoDecoration = request.GetBool("no-decoration", false)
	req.NoTaskbar = request.GetBool("no-taskbar-icon", false)
	req.Reassert = request.GetBool("reassert", cfg.Reassert)
	req.Wait = time.Duration(request.GetInt("wait", cfg.Wait)) * time.Second
	req.Interval = time.Duration(cfg.IntervalMs) * time.Millisecond

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *mcpServer) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("config: %v", err)), nil
	}
	req, err := launchRequestFromArgs(request, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := launch.Run(req, launch.Spawn, x11.Connector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
