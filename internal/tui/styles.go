package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#6366F1")
	muted       = lipgloss.Color("#6B7280")
	border      = lipgloss.Color("#374151")
	destructive = lipgloss.Color("#EF4444")
	success     = lipgloss.Color("#22C55E")
)

// Styles groups every style the views use.
type Styles struct {
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Title       lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	FieldError  lipgloss.Style
	Button      lipgloss.Style
	ButtonOff   lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Avatar      lipgloss.Style
	Confirm     lipgloss.Style
	ToastOK     lipgloss.Style
	ToastError  lipgloss.Style
}

func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Pane:        pane,
		FocusedPane: pane.BorderForeground(primary),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Label:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		FieldError:  lipgloss.NewStyle().Foreground(destructive),
		Button:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary).Padding(0, 2),
		ButtonOff:   lipgloss.NewStyle().Foreground(muted).Background(border).Padding(0, 2),
		Row:         lipgloss.NewStyle().PaddingLeft(1),
		SelectedRow: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(primary),
		Avatar:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary).Width(4).Align(lipgloss.Center),
		Confirm:     lipgloss.NewStyle().Bold(true).Foreground(destructive),
		ToastOK:     lipgloss.NewStyle().Bold(true).Foreground(success).Border(lipgloss.NormalBorder()).BorderForeground(success).Padding(0, 1),
		ToastError:  lipgloss.NewStyle().Bold(true).Foreground(destructive).Border(lipgloss.NormalBorder()).BorderForeground(destructive).Padding(0, 1),
	}
}
