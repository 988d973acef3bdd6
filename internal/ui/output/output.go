// Package output renders CLI output, styled when stdout is a
// terminal and plain when piped.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Header renders a section header.
func Header(s string) string {
	if !IsTerminal() {
		return s
	}
	return headerStyle.Render(s)
}

// Dim renders de-emphasized text.
func Dim(s string) string {
	if !IsTerminal() {
		return s
	}
	return dimStyle.Render(s)
}
