package tui

import "charm.land/lipgloss/v2"

// Color palette — calm, exam-like.
var (
	colorPrimary = lipgloss.Color("#6366F1") // Indigo
	colorSuccess = lipgloss.Color("#22C55E") // Green
	colorError   = lipgloss.Color("#F43F5E") // Rose
	colorText    = lipgloss.Color("#F8FAFC") // White
	colorTextDim = lipgloss.Color("#94A3B8") // Slate
	colorBorder  = lipgloss.Color("#334155") // Slate
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleQuestion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	styleDim = lipgloss.NewStyle().
			Foreground(colorTextDim)

	styleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleOption = lipgloss.NewStyle().
			Foreground(colorText)

	styleCorrect = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	styleWrong = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	styleHint = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)
)
