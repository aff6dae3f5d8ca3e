package ui

import (
	"fmt"
	"math/big"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"nftview/internal/selection"
	"nftview/internal/token"
)

// ConfirmModal is a generic confirmation modal.
// Enter or y confirms; Esc or n cancels.
type ConfirmModal struct {
	Title       string
	Label       string
	Details     string // Optional warning details
	OnConfirm   func() tea.Msg
	OnCancel    func() tea.Msg // defaults to DismissModalMsg
	boxStyle    lipgloss.Style
	titleStyle  lipgloss.Style
	detailStyle lipgloss.Style
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:       title,
		Label:       label,
		OnConfirm:   onConfirm,
		OnCancel:    func() tea.Msg { return DismissModalMsg{} },
		boxStyle:    Styles.BoxDanger,
		titleStyle:  Styles.TitleWarning,
		detailStyle: Styles.Details,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewSendConfirmModal asks before sending the selected assets. Cancelling
// ends the selection request without a transaction.
func NewSendConfirmModal(tok *token.Token, requestID string, ids []*big.Int) *ConfirmModal {
	name := "assets"
	if tok != nil && tok.Name != "" {
		name = tok.Name
	}
	modal := NewConfirmModal(
		"Send assets?",
		fmt.Sprintf("%s %s from %s", humanize.Comma(int64(len(ids))), pluralAsset(len(ids)), name),
		func() tea.Msg { return sendSelectionMsg{RequestID: requestID, TokenIDs: ids} },
	)
	modal.OnCancel = func() tea.Msg { return selection.Cancelled(requestID) }
	return modal.WithDetails("\nThe transfer is signed by the current account")
}

func pluralAsset(n int) string {
	if n == 1 {
		return "asset"
	}
	return "assets"
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, m.OnCancel
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := m.titleStyle.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + m.detailStyle.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  n/Esc: cancel")
	return m.boxStyle.Render(content)
}
