package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"nftview/internal/session"
)

// OverflowModal lists the visible toolbar actions that are not shown
// inline. Enter triggers the highlighted action.
type OverflowModal struct {
	list  list.Model
	items []list.Item
}

type menuItem struct {
	id    session.MenuItemID
	label string
}

func (m menuItem) FilterValue() string { return m.label }
func (m menuItem) Title() string       { return m.label }
func (m menuItem) Description() string { return "" }

// Ensure OverflowModal implements View.
var _ View = (*OverflowModal)(nil)

// NewOverflowModal builds the menu from the overflow entries of the toolbar.
func NewOverflowModal(entries []session.MenuItemState) *OverflowModal {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = menuItem{id: e.ID, label: menuLabel(e.ID)}
	}
	l := list.New(items, NewCompactListDelegate(), 32, len(items)+4)
	l.Title = "More"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &OverflowModal{list: l, items: items}
}

// Init implements View.
func (m *OverflowModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *OverflowModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "m":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if sel, ok := m.list.SelectedItem().(menuItem); ok {
				return m, func() tea.Msg { return MenuActionMsg{Item: sel.id} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *OverflowModal) View() string {
	help := "Enter: select  Esc: close"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
