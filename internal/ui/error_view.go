package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"nftview/internal/token"
)

// ErrorModel replaces the detail screen when the token cannot be opened.
// Any key closes it.
type ErrorModel struct {
	Err error
}

// Ensure ErrorModel is a tea.Model.
var _ tea.Model = ErrorModel{}

func NewErrorModel(err error) ErrorModel {
	return ErrorModel{Err: err}
}

// Init implements tea.Model.
func (m ErrorModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ErrorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ErrorModel) View() string {
	title := "Cannot open token"
	detail := "unknown error"
	if m.Err != nil {
		detail = m.Err.Error()
	}
	if errors.Is(m.Err, token.ErrNotFound) {
		title = "Token not found"
	}
	content := Styles.TitleWarning.Render(title) + "\n\n" +
		Styles.Details.Render(detail) + "\n\n" +
		Styles.Hint.Render("Press any key to exit")
	return Styles.BoxDanger.Render(content)
}
