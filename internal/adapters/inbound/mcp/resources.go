package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configResourceURI = "yamlvalidator://config"

type configView struct {
	SearchPaths        []string `json:"search_paths"`
	AllowDuplicateKeys bool     `json:"allow_duplicate_keys"`
	Recursive          bool     `json:"recursive"`
	FollowSymlinks     bool     `json:"follow_symlinks"`
}

// registerResources registers the yamlvalidator MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	s.AddResource(
		mcplib.NewResource(
			configResourceURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective validation configuration: .yamlvalidator.yaml over defaults, with YAMLVALIDATOR_* overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := effectiveConfig(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		vc := cfg.ValidationConfig()
		data, err := json.MarshalIndent(configView{
			SearchPaths:        vc.SearchPaths,
			AllowDuplicateKeys: vc.AllowDuplicateKeys,
			Recursive:          vc.Recursive,
			FollowSymlinks:     cfg.FollowsSymlinks(),
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
