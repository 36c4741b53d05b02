// Package tools exposes directive runs over MCP (Model Context Protocol).
//
// It is organized into sub-packages:
//   - [github.com/germanamz/directive/pkg/tools/toolbox] - Tool type and a name-keyed ToolBox
//   - [github.com/germanamz/directive/pkg/tools/runtool] - the run_directive tool wrapping one orchestrator run
//   - [github.com/germanamz/directive/pkg/tools/mcpserver] - MCP server built on the official MCP Go SDK
//
// toolbox is the foundation layer; mcpserver only depends on it for the Tool
// type.
package tools
