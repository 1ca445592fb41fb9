package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewYAMLValidatorMCPServer creates a new MCP server with the yamlvalidator
// tools and resources registered. Relative search paths resolve against
// projectPath.
func NewYAMLValidatorMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"yamlvalidator",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
