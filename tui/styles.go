package tui

import "github.com/charmbracelet/lipgloss"

// theme collects every lipgloss style the shell renders with.
type theme struct {
	root        lipgloss.Style
	header      lipgloss.Style
	headerTitle lipgloss.Style
	headerSub   lipgloss.Style

	panel        lipgloss.Style
	panelFocused lipgloss.Style
	panelTitle   lipgloss.Style

	pickerLabel lipgloss.Style
	pickerValue lipgloss.Style

	userLabel      lipgloss.Style
	assistantLabel lipgloss.Style
	userBody       lipgloss.Style

	status     lipgloss.Style
	warnStatus lipgloss.Style
	helpText   lipgloss.Style
}

func newTheme() theme {
	blue := lipgloss.Color("#7aa2f7")
	green := lipgloss.Color("#9ece6a")
	yellow := lipgloss.Color("#e0af68")
	text := lipgloss.Color("#c0caf5")
	muted := lipgloss.Color("#565f89")

	return theme{
		root: lipgloss.NewStyle().
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Padding(0, 1),
		headerTitle: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		headerSub: lipgloss.NewStyle().
			Foreground(muted),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		panelFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),
		pickerLabel: lipgloss.NewStyle().
			Foreground(muted),
		pickerValue: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),
		userLabel: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),
		assistantLabel: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		userBody: lipgloss.NewStyle().
			Foreground(text),
		status: lipgloss.NewStyle().
			Foreground(blue),
		warnStatus: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),
		helpText: lipgloss.NewStyle().
			Foreground(muted),
	}
}
