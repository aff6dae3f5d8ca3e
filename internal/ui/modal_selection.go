package ui

import (
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"nftview/internal/selection"
	"nftview/internal/token"
	"nftview/internal/ui/textutil"
)

const selectionRows = 10

// SelectionModal picks the assets to send in one batch transfer. Space
// toggles the highlighted asset, a toggles all, Enter continues and Esc
// ends the request without a transaction.
type SelectionModal struct {
	RequestID string
	Assets    []token.Asset
	Cursor    int
	chosen    map[int]bool
}

// Ensure SelectionModal implements View.
var _ View = (*SelectionModal)(nil)

func NewSelectionModal(requestID string, assets []token.Asset) *SelectionModal {
	return &SelectionModal{
		RequestID: requestID,
		Assets:    assets,
		chosen:    make(map[int]bool),
	}
}

// Chosen returns the selected token ids in list order.
func (m *SelectionModal) Chosen() []*big.Int {
	var ids []*big.Int
	for i, a := range m.Assets {
		if m.chosen[i] && a.TokenID != nil {
			ids = append(ids, a.TokenID)
		}
	}
	return ids
}

// Init implements View.
func (m *SelectionModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *SelectionModal) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "esc":
		id := m.RequestID
		return m, func() tea.Msg { return selection.Cancelled(id) }
	case "j", "down":
		if m.Cursor < len(m.Assets)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case " ", "x":
		if len(m.Assets) > 0 {
			m.chosen[m.Cursor] = !m.chosen[m.Cursor]
		}
	case "a":
		all := len(m.chosen) < len(m.Assets) || containsFalse(m.chosen)
		for i := range m.Assets {
			m.chosen[i] = all
		}
	case "enter":
		ids := m.Chosen()
		if len(ids) == 0 {
			return m, nil
		}
		id := m.RequestID
		return m, func() tea.Msg { return selectionChosenMsg{RequestID: id, TokenIDs: ids} }
	}
	return m, nil
}

func containsFalse(m map[int]bool) bool {
	for _, v := range m {
		if !v {
			return true
		}
	}
	return false
}

// View implements View.
func (m *SelectionModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Send multiple") + "\n\n")
	if len(m.Assets) == 0 {
		b.WriteString(Styles.Empty.Render("No assets to send"))
	}

	start := 0
	if m.Cursor >= selectionRows {
		start = m.Cursor - selectionRows + 1
	}
	end := start + selectionRows
	if end > len(m.Assets) {
		end = len(m.Assets)
	}
	for i := start; i < end; i++ {
		box := "[ ]"
		if m.chosen[i] {
			box = "[x]"
		}
		line := box + " " + textutil.Truncate(assetLabel(m.Assets[i]), 36)
		if i == m.Cursor {
			b.WriteString(Styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString(Styles.Normal.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + Styles.Status.Render(fmt.Sprintf("%d selected", len(m.Chosen()))))
	b.WriteString("\n" + Styles.Hint.Render("Space: toggle  a: all  Enter: continue  Esc: cancel"))
	return Styles.BoxCompact.Render(b.String())
}
