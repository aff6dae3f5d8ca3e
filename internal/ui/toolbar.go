package ui

import (
	"github.com/charmbracelet/lipgloss"

	"nftview/internal/session"
)

var menuLabels = map[session.MenuItemID]string{
	session.ItemSendMultiple: "Send multiple",
	session.ItemSwitchToGrid: "Grid view",
	session.ItemSwitchToList: "List view",
}

// menuKeys are the single-key shortcuts bound to each toolbar action.
var menuKeys = map[session.MenuItemID]string{
	session.ItemSendMultiple: "s",
	session.ItemSwitchToGrid: "g",
	session.ItemSwitchToList: "l",
}

func menuLabel(id session.MenuItemID) string {
	if l, ok := menuLabels[id]; ok {
		return l
	}
	return string(id)
}

// renderToolbar draws the inline actions followed by the overflow marker
// when some visible actions live only in the overflow menu. An empty menu
// renders nothing.
func renderToolbar(m session.Menu) string {
	if !m.Shown() {
		return ""
	}
	var parts []string
	for _, it := range m.Inline() {
		parts = append(parts, Styles.ToolbarItem.Render("["+menuKeys[it.ID]+"] "+menuLabel(it.ID)))
	}
	if len(m.Overflow()) > 0 {
		parts = append(parts, Styles.ToolbarItem.Render("[m] ⋮"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderTabBar draws the page titles with the selected one highlighted.
func renderTabBar(current session.Tab) string {
	parts := make([]string, 0, len(session.Tabs))
	for i, t := range session.Tabs {
		label := string(rune('1'+i)) + " " + t.String()
		if t == current {
			parts = append(parts, Styles.TabActive.Render(label))
		} else {
			parts = append(parts, Styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
