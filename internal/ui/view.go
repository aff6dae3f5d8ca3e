package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a page or modal of the detail screen. It follows Bubble Tea's
// Init/Update/View shape but returns itself from Update so the host can keep
// concrete types.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
