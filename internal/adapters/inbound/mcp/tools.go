package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/config"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/gitinfo"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/parser"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/resolver"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/scanner"
	"github.com/yamlvalidator/yamlvalidator/internal/application"
	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// registerTools registers the yamlvalidator MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("yaml_validate",
			mcplib.WithDescription("Validate the project's YAML files for syntax errors and duplicate mapping keys. Stops at the first invalid file and returns the run report with its event log as JSON."),
			mcplib.WithString("paths", mcplib.Description("Comma-separated search paths relative to the project root (default: configured search paths)")),
			mcplib.WithBoolean("recursive", mcplib.Description("Descend into subdirectories of directory search paths")),
			mcplib.WithBoolean("allow_duplicate_keys", mcplib.Description("Accept mappings that repeat a key")),
			mcplib.WithBoolean("follow_symlinks", mcplib.Description("Follow symlinked directories during recursive discovery")),
		),
		handleValidate(projectPath),
	)
}

// effectiveConfig loads .yamlvalidator.yaml from projectPath and layers the
// environment over it.
func effectiveConfig(projectPath string) (domain.ProjectConfig, error) {
	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	return config.Overlay(cfg, nil)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		absPath, err := filepath.Abs(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving path: %v", err)), nil
		}

		cfg, err := effectiveConfig(absPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		args := request.GetArguments()
		if paths, ok := args["paths"].(string); ok && paths != "" {
			cfg.SearchPaths = splitPaths(paths)
		}
		if v, ok := args["recursive"].(bool); ok {
			cfg.Recursive = &v
		}
		if v, ok := args["allow_duplicate_keys"].(bool); ok {
			cfg.AllowDuplicateKeys = &v
		}
		if v, ok := args["follow_symlinks"].(bool); ok {
			cfg.FollowSymlinks = &v
		}
		if err := cfg.Validate(); err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		recorder := &domain.EventRecorder{}
		sc := scanner.New(scanner.WithFollowSymlinks(cfg.FollowsSymlinks()))
		svc := application.NewValidateService(resolver.New(absPath), sc, sc, parser.New(), recorder)

		report := application.NewReport(svc.Validate(cfg.ValidationConfig()))
		report.Events = recorder.Messages()
		report.AttachRevision(gitinfo.New(), absPath)
		return jsonResult(report)
	}
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// jsonResult marshals v to indented JSON and returns it as text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
