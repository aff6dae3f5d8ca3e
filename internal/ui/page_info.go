package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"nftview/internal/token"
	"nftview/internal/wallet"
)

// InfoPage describes the collection and the account viewing it.
type InfoPage struct {
	Token  *token.Token
	Wallet wallet.Wallet
}

// Ensure InfoPage implements View.
var _ View = (*InfoPage)(nil)

func NewInfoPage(tok *token.Token, w wallet.Wallet) *InfoPage {
	return &InfoPage{Token: tok, Wallet: w}
}

// Init implements View.
func (p *InfoPage) Init() tea.Cmd { return nil }

// Update implements View.
func (p *InfoPage) Update(tea.Msg) (View, tea.Cmd) { return p, nil }

// View implements View.
func (p *InfoPage) View() string {
	if p.Token == nil {
		return Styles.Empty.Render("No token")
	}
	owner := p.Wallet.Short()
	if p.Wallet.IsWatchOnly() {
		owner += Styles.Muted.Render(" (watch only)")
	}
	rows := [][2]string{
		{"Name", p.Token.Name},
		{"Symbol", p.Token.Symbol},
		{"Standard", string(p.Token.Standard)},
		{"Contract", p.Token.Address.Hex()},
		{"Network", fmt.Sprintf("%s (%d)", p.Token.ChainID, int64(p.Token.ChainID))},
		{"Balance", humanize.Comma(int64(p.Token.Balance)) + " " + pluralAsset(p.Token.Balance)},
		{"Owner", owner},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("%-9s", r[0])) + " " + Styles.Normal.Render(r[1]))
	}
	return b.String()
}
