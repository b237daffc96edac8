// Package ui provides consistent styling for the protocheck CLI
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("86")  // Cyan
	ColorSubtle  = lipgloss.Color("241") // Medium gray
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Diff styles for mismatch reporting
	ExpectedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	GotStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
