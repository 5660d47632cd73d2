// Package style renders command output: lipgloss styles, pterm tables,
// glamour markdown, and plain text or YAML when output is not a terminal.
package style
