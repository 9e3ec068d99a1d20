// Package driving defines the interfaces through which adapters (CLI,
// TUI, MCP server, directory watcher) drive the engine core.
package driving
