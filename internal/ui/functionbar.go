package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nftview/internal/session"
	"nftview/internal/token"
	"nftview/internal/wallet"
)

// FunctionBarView is the row of token functions shown under the Info page.
// It is built once per screen, on the first visit to Info when the build
// and account allow it.
type FunctionBarView struct {
	Token     *token.Token
	Wallet    wallet.Wallet
	Functions []string
	Visible   bool
	// Disabled renders every button inert; set for watch-only accounts,
	// which only get a bar in debug builds.
	Disabled bool
	Cursor   int
}

// NewFunctionBarView binds the bar to the token, account and function list.
func NewFunctionBarView(tok *token.Token, w wallet.Wallet, functions []string) *FunctionBarView {
	fb := &FunctionBarView{
		Token:    tok,
		Wallet:   w,
		Disabled: w.IsWatchOnly(),
	}
	fb.SetFunctions(functions)
	return fb
}

// SetFunctions replaces the buttons: the standard functions first, then
// the ones from asset definitions.
func (f *FunctionBarView) SetFunctions(functions []string) {
	f.Functions = append([]string(nil), token.StandardFunctions...)
	for _, name := range functions {
		if !slices.Contains(f.Functions, name) {
			f.Functions = append(f.Functions, name)
		}
	}
	if f.Cursor >= len(f.Functions) {
		f.Cursor = 0
	}
}

// Update moves between buttons with [ and ] and presses one with enter.
func (f *FunctionBarView) Update(msg tea.KeyMsg) tea.Cmd {
	if f == nil || !f.Visible || len(f.Functions) == 0 {
		return nil
	}
	switch msg.String() {
	case "[":
		f.Cursor = (f.Cursor + len(f.Functions) - 1) % len(f.Functions)
	case "]":
		f.Cursor = (f.Cursor + 1) % len(f.Functions)
	case "enter":
		if f.Disabled {
			return nil
		}
		name := f.Functions[f.Cursor]
		return func() tea.Msg { return InvokeFunctionMsg{Name: name} }
	}
	return nil
}

// View renders the buttons, or nothing when hidden.
func (f *FunctionBarView) View() string {
	if f == nil || !f.Visible {
		return ""
	}
	buttons := make([]string, len(f.Functions))
	for i, name := range f.Functions {
		style := Styles.Button
		switch {
		case f.Disabled:
			style = Styles.ButtonDisabled
		case i == f.Cursor:
			style = style.BorderForeground(lipgloss.Color(ColorHighlight)).Bold(true)
		}
		buttons[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// applyFunctionBar carries out a function-bar directive against bar,
// building it on ConstructFunctionBar.
func (m *AppModel) applyFunctionBar(d session.Directive) {
	switch d.(type) {
	case session.ConstructFunctionBar:
		m.FunctionBar = NewFunctionBarView(m.Token, m.Wallet, m.functions)
	case session.ShowFunctionBar:
		if m.FunctionBar != nil {
			m.FunctionBar.Visible = true
		}
	case session.HideFunctionBar:
		if m.FunctionBar != nil {
			m.FunctionBar.Visible = false
		}
	}
}
