package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"

	"nftview/internal/token"
	"nftview/internal/ui/textutil"
)

// ActivityPage lists transfers of the collection, newest first.
type ActivityPage struct {
	Activity []token.Activity
	Owner    common.Address
	Width    int
	Loading  bool
	Offset   int
	now      func() time.Time
}

// Ensure ActivityPage implements View.
var _ View = (*ActivityPage)(nil)

func NewActivityPage(owner common.Address) *ActivityPage {
	return &ActivityPage{Owner: owner, Width: 80, Loading: true, now: time.Now}
}

// SetActivity replaces the transfer list.
func (p *ActivityPage) SetActivity(acts []token.Activity) {
	p.Activity = acts
	p.Loading = false
	p.Offset = 0
}

// Init implements View.
func (p *ActivityPage) Init() tea.Cmd { return nil }

// Update implements View. j/k scroll.
func (p *ActivityPage) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "j", "down":
			if p.Offset < len(p.Activity)-1 {
				p.Offset++
			}
		case "k", "up":
			if p.Offset > 0 {
				p.Offset--
			}
		}
	}
	return p, nil
}

// View implements View.
func (p *ActivityPage) View() string {
	if p.Loading {
		return Styles.Empty.Render("Loading activity…")
	}
	if len(p.Activity) == 0 {
		return Styles.Empty.Render("No activity yet")
	}
	lines := make([]string, 0, len(p.Activity)-p.Offset)
	for _, a := range p.Activity[p.Offset:] {
		lines = append(lines, p.renderRow(a))
	}
	return strings.Join(lines, "\n")
}

func (p *ActivityPage) renderRow(a token.Activity) string {
	dir, counterparty := "  ", a.From
	switch {
	case a.To == p.Owner && a.From == (common.Address{}):
		dir = "✦ " // mint
	case a.To == p.Owner:
		dir = "↓ "
	case a.From == p.Owner:
		dir, counterparty = "↑ ", a.To
	}
	when := humanize.RelTime(a.Timestamp, p.now(), "ago", "from now")
	asset := token.Asset{TokenID: a.TokenID, Amount: a.Amount}
	row := dir +
		textutil.PadRightVisual(when, 16) + " " +
		textutil.PadRightVisual(idAndAmount(asset), 14) + " " +
		textutil.PadRightVisual(shortAddress(counterparty), 14) + " " +
		Styles.Muted.Render(textutil.Truncate(a.TxHash, 14))
	return textutil.TruncateStyled(row, p.Width)
}

func shortAddress(a common.Address) string {
	h := a.Hex()
	return h[:6] + "…" + h[len(h)-4:]
}
