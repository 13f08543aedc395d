package watch

import (
	"fmt"
	"strings"
)

// Target is one repository to watch: its "owner/name" identifier and a short
// human-readable description used in status output.
type Target struct {
	Repo        string
	Description string
}

// DefaultTargets returns the fixed set of MCP server repositories this tool
// keeps an eye on. The slice order is the iteration and reporting order.
func DefaultTargets() []Target {
	return []Target{
		{Repo: "modelcontextprotocol/servers", Description: "Reference MCP servers"},
		{Repo: "modelcontextprotocol/typescript-sdk", Description: "Official TypeScript SDK"},
		{Repo: "modelcontextprotocol/python-sdk", Description: "Official Python SDK"},
		{Repo: "modelcontextprotocol/inspector", Description: "MCP Inspector debugging tool"},
		{Repo: "github/github-mcp-server", Description: "GitHub's official MCP server"},
		{Repo: "mark3labs/mcp-go", Description: "Go SDK for MCP servers"},
	}
}

// SplitRepo splits an "owner/name" identifier into its parts.
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", repo)
	}
	return parts[0], parts[1], nil
}
