package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout both TUIs.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles shared by the time and progress screens.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	RunningDotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	StoppedDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ElapsedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	HashStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarnTextStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	StatusTextStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
