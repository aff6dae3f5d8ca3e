package ui

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"nftview/internal/session"
	"nftview/internal/token"
	"nftview/internal/ui/textutil"
)

const (
	cardWidth  = 20 // including border and padding
	cardInner  = cardWidth - 4
	listIDCol  = 10
	listAmtCol = 8
)

var bigOne = big.NewInt(1)

// AssetsPage shows the owned assets as a grid of cards or as a list.
// "/" starts a fuzzy filter; j/k move the cursor.
type AssetsPage struct {
	Assets  []token.Asset
	Layout  session.ViewMode
	Cursor  int
	Width   int
	Loading bool

	filter    textinput.Model
	Filtering bool
}

// Ensure AssetsPage implements View.
var _ View = (*AssetsPage)(nil)

func NewAssetsPage() *AssetsPage {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter assets"
	ti.CharLimit = 64
	ti.Width = 30
	return &AssetsPage{Layout: session.ViewGrid, Width: 80, Loading: true, filter: ti}
}

// SetAssets replaces the asset list and clamps the cursor.
func (p *AssetsPage) SetAssets(assets []token.Asset) {
	p.Assets = assets
	p.Loading = false
	p.clamp()
}

// SetLayout switches between the grid and list renderers.
func (p *AssetsPage) SetLayout(mode session.ViewMode) {
	p.Layout = mode
}

// Query is the current filter text.
func (p *AssetsPage) Query() string {
	return p.filter.Value()
}

// Visible returns the assets matching the filter, in original order.
func (p *AssetsPage) Visible() []token.Asset {
	q := strings.TrimSpace(p.filter.Value())
	if q == "" {
		return p.Assets
	}
	labels := make([]string, len(p.Assets))
	for i, a := range p.Assets {
		labels[i] = assetLabel(a)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, labels)
	matched := make(map[int]struct{}, len(ranks))
	for _, r := range ranks {
		matched[r.OriginalIndex] = struct{}{}
	}
	out := make([]token.Asset, 0, len(matched))
	for i, a := range p.Assets {
		if _, ok := matched[i]; ok {
			out = append(out, a)
		}
	}
	return out
}

func assetLabel(a token.Asset) string {
	if a.TokenID == nil {
		return a.DisplayName()
	}
	return a.DisplayName() + " #" + a.TokenID.String()
}

// Init implements View.
func (p *AssetsPage) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *AssetsPage) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.Filtering {
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	if p.Filtering {
		switch km.String() {
		case "esc":
			p.filter.SetValue("")
			p.stopFilter()
			return p, nil
		case "enter":
			p.stopFilter()
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		p.clamp()
		return p, cmd
	}

	switch km.String() {
	case "/":
		p.Filtering = true
		return p, p.filter.Focus()
	case "j", "down":
		p.move(p.step())
	case "k", "up":
		p.move(-p.step())
	case "right":
		p.move(1)
	case "left":
		p.move(-1)
	}
	return p, nil
}

func (p *AssetsPage) stopFilter() {
	p.Filtering = false
	p.filter.Blur()
	p.clamp()
}

// step is the cursor distance of one row: a full grid row or one line.
func (p *AssetsPage) step() int {
	if p.Layout == session.ViewGrid {
		return p.columns()
	}
	return 1
}

func (p *AssetsPage) move(delta int) {
	p.Cursor += delta
	p.clamp()
}

func (p *AssetsPage) clamp() {
	n := len(p.Visible())
	if p.Cursor >= n {
		p.Cursor = n - 1
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
}

func (p *AssetsPage) columns() int {
	cols := p.Width / cardWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// View implements View.
func (p *AssetsPage) View() string {
	var b strings.Builder
	if p.Filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View() + "\n")
	}
	if p.Loading {
		b.WriteString(Styles.Empty.Render("Loading assets…"))
		return b.String()
	}
	visible := p.Visible()
	if len(visible) == 0 {
		if len(p.Assets) == 0 {
			b.WriteString(Styles.Empty.Render("No assets held"))
		} else {
			b.WriteString(Styles.Empty.Render("No assets match the filter"))
		}
		return b.String()
	}
	if p.Layout == session.ViewList {
		b.WriteString(p.renderList(visible))
	} else {
		b.WriteString(p.renderGrid(visible))
	}
	return b.String()
}

func (p *AssetsPage) renderGrid(assets []token.Asset) string {
	cols := p.columns()
	var rows []string
	for start := 0; start < len(assets); start += cols {
		end := start + cols
		if end > len(assets) {
			end = len(assets)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(assets[i], i == p.Cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(a token.Asset, selected bool) string {
	style := Styles.Card
	name := Styles.Normal.Render(a.DisplayName())
	if selected {
		style = Styles.CardSelected
		name = Styles.Selected.Render(a.DisplayName())
	}
	meta := Styles.Muted.Render(idAndAmount(a))
	body := textutil.TruncateStyled(name, cardInner) + "\n" + textutil.TruncateStyled(meta, cardInner)
	return style.Width(cardInner + 2).Render(body) // width includes padding
}

func (p *AssetsPage) renderList(assets []token.Asset) string {
	nameCol := p.Width - listIDCol - listAmtCol - 4
	if nameCol < 10 {
		nameCol = 10
	}
	lines := make([]string, len(assets))
	for i, a := range assets {
		id := "#?"
		if a.TokenID != nil {
			id = "#" + a.TokenID.String()
		}
		line := fmt.Sprintf("%s %s %s",
			textutil.PadRightVisual(id, listIDCol),
			textutil.PadRightVisual(a.DisplayName(), nameCol),
			textutil.PadLeftVisual(amountString(a), listAmtCol))
		if i == p.Cursor {
			lines[i] = Styles.Selected.Render("> " + line)
		} else {
			lines[i] = Styles.Normal.Render("  " + line)
		}
	}
	return strings.Join(lines, "\n")
}

func idAndAmount(a token.Asset) string {
	id := "#?"
	if a.TokenID != nil {
		id = "#" + a.TokenID.String()
	}
	if a.Amount != nil && a.Amount.Sign() > 0 && a.Amount.Cmp(bigOne) != 0 {
		return id + " ×" + humanize.BigComma(a.Amount)
	}
	return id
}

func amountString(a token.Asset) string {
	if a.Amount == nil {
		return "×1"
	}
	return "×" + humanize.BigComma(a.Amount)
}
