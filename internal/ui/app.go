package ui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"nftview/internal/logging"
	"nftview/internal/selection"
	"nftview/internal/session"
	"nftview/internal/token"
	"nftview/internal/trace"
	"nftview/internal/wallet"
)

// Deps are the collaborators of the detail screen.
type Deps struct {
	Tokens      token.Service
	Definitions token.Definitions // optional; nil means standard functions only
	Sender      selection.Sender
	Recorder    *trace.Recorder // optional
}

// Options select what the screen shows.
type Options struct {
	SessionID string // generated when empty
	ChainID   token.ChainID
	Address   string
	Wallet    wallet.Wallet
	Debug     bool
}

// AppModel is the root model of the token detail screen. Every user input
// becomes a session.Event; the resulting directives drive the views.
type AppModel struct {
	Session     session.Session
	Token       *token.Token
	Wallet      wallet.Wallet
	Deps        Deps
	KeyHandler  *KeyHandler
	Focus       *FocusManager
	Overlays    OverlayStack
	Info        *InfoPage
	Assets      *AssetsPage
	Activity    *ActivityPage
	FunctionBar *FunctionBarView // nil until constructed

	// Result is the transaction hash once the screen finished with one.
	Result string
	Status string
	Err    error

	ctx       context.Context
	functions []string
	spinner   spinner.Model
	loading   bool
	width     int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel resolves the token and prepares the screen. A token that
// cannot be resolved is returned as an error; the caller shows ErrorModel
// instead of the screen.
func NewAppModel(ctx context.Context, deps Deps, opts Options) (*AppModel, error) {
	if deps.Tokens == nil {
		return nil, errors.New("no token service")
	}
	tok, err := deps.Tokens.GetToken(ctx, opts.ChainID, opts.Address)
	if err != nil {
		return nil, err
	}
	if deps.Sender == nil {
		deps.Sender = &selection.StubSender{}
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	caps := session.Capabilities{
		BatchTransferAvailable: tok.IsBatchTransferAvailable(),
		WatchOnlyAccount:       opts.Wallet.IsWatchOnly(),
		DebugBuild:             opts.Debug,
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	m := &AppModel{
		Session:  session.New(id, caps),
		Token:    tok,
		Wallet:   opts.Wallet,
		Deps:     deps,
		Focus:    NewFocusManager(),
		Info:     NewInfoPage(tok, opts.Wallet),
		Assets:   NewAssetsPage(),
		Activity: NewActivityPage(opts.Wallet.Address),
		ctx:      ctx,
		spinner:  s,
		loading:  true,
		width:    80,
	}
	m.KeyHandler = NewKeyHandler(m.newKeybindRegistry())

	logging.L.Info().
		Str("session", id).
		Str("token", tok.Address.Hex()).
		Int64("chain", int64(tok.ChainID)).
		Bool("batch", caps.BatchTransferAvailable).
		Bool("watch_only", caps.WatchOnlyAccount).
		Bool("debug", caps.DebugBuild).
		Msg("open token detail")
	return m, nil
}

// tabKeys are the leader shortcuts for pages (SPC t <key>).
var tabKeys = map[session.Tab]string{
	session.TabInfo:     "i",
	session.TabAssets:   "a",
	session.TabActivity: "h",
}

func (m *AppModel) newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	for i, t := range session.Tabs {
		tab := t
		sel := func() tea.Msg { return SelectTabMsg{Tab: tab} }
		reg.Bind(fmt.Sprintf("%d", i+1), sel)
		reg.BindWithDesc("SPC t "+tabKeys[tab], sel, tab.String())
	}
	reg.Bind("tab", func() tea.Msg { return CycleTabMsg{Delta: 1} })
	reg.Bind("shift+tab", func() tea.Msg { return CycleTabMsg{Delta: -1} })

	assets := []session.Tab{session.TabAssets}
	for id, k := range menuKeys {
		item := id
		act := func() tea.Msg { return MenuActionMsg{Item: item} }
		reg.BindWithDescForTabs(k, act, menuLabel(item), assets)
	}
	reg.BindWithDescForTabs("SPC v g", func() tea.Msg { return MenuActionMsg{Item: session.ItemSwitchToGrid} }, "Grid view", assets)
	reg.BindWithDescForTabs("SPC v l", func() tea.Msg { return MenuActionMsg{Item: session.ItemSwitchToList} }, "List view", assets)
	reg.BindWithDescForTabs("SPC s", func() tea.Msg { return MenuActionMsg{Item: session.ItemSendMultiple} }, "Send multiple", assets)
	reg.BindWithDescForTabs("m", func() tea.Msg { return ShowOverflowMsg{} }, "More", assets)
	reg.BindWithDescForTabs("r", m.refreshAssets(), "Refresh", assets)
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Dispatch runs ev through the session reducer and applies the directives.
func (m *AppModel) Dispatch(ev session.Event) tea.Cmd {
	next, dirs := session.Reduce(m.Session, ev)
	m.Session = next
	m.Deps.Recorder.Record(m.ctx, ev, next, dirs)
	logging.L.Debug().
		Str("session", next.ID).
		Str("event", ev.Name()).
		Stringer("tab", next.Tab).
		Stringer("view_mode", next.ViewMode).
		Strs("directives", session.Kinds(dirs)).
		Msg("reduce")

	var cmds []tea.Cmd
	for _, d := range dirs {
		switch d := d.(type) {
		case session.RenderGrid:
			m.Assets.SetLayout(session.ViewGrid)
		case session.RenderList:
			m.Assets.SetLayout(session.ViewList)
		case session.ConstructFunctionBar, session.ShowFunctionBar, session.HideFunctionBar:
			m.applyFunctionBar(d)
		case session.LaunchSelection:
			m.Overlays.Push(Overlay{View: NewSelectionModal(d.RequestID, m.Assets.Assets)})
		case session.Finish:
			m.Result = d.TxHash
			m.Overlays.Clear()
			logging.L.Info().Str("session", next.ID).Str("tx", d.TxHash).Msg("finished")
			cmds = append(cmds, tea.Quit)
		}
	}
	return tea.Batch(cmds...)
}

// loadData reads the collection contents in the background.
func (m *AppModel) loadData() tea.Cmd {
	ctx, tok, deps := m.ctx, m.Token, m.Deps
	return func() tea.Msg {
		var msg dataLoadedMsg
		var errs []error
		var err error
		if msg.Assets, err = deps.Tokens.Assets(ctx, tok); err != nil {
			errs = append(errs, err)
		}
		if msg.Activity, err = deps.Tokens.Activity(ctx, tok); err != nil {
			errs = append(errs, err)
		}
		if deps.Definitions != nil {
			if msg.Functions, err = deps.Definitions.Functions(ctx, tok); err != nil {
				errs = append(errs, err)
			}
		}
		msg.Err = errors.Join(errs...)
		return msg
	}
}

// StoreAsset caches metadata for one asset through the token service and
// then re-reads the asset list for the Assets page.
func (m *AppModel) StoreAsset(tokenID *big.Int, a token.Asset) tea.Cmd {
	ctx, tok, tokens := m.ctx, m.Token, m.Deps.Tokens
	return func() tea.Msg {
		if err := tokens.StoreAsset(ctx, tok, tokenID, a); err != nil {
			return assetsRefreshedMsg{Err: err}
		}
		return m.refreshAssets()()
	}
}

// refreshAssets re-reads the asset list.
func (m *AppModel) refreshAssets() tea.Cmd {
	ctx, tok, tokens := m.ctx, m.Token, m.Deps.Tokens
	return func() tea.Msg {
		assets, err := tokens.Assets(ctx, tok)
		return assetsRefreshedMsg{Assets: assets, Err: err}
	}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadData())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.Assets.Width = msg.Width - 2
		a.Activity.Width = msg.Width - 2
		return a, nil
	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case dataLoadedMsg:
		return a, a.handleDataLoaded(msg)
	case StoreAssetMsg:
		return a, a.StoreAsset(msg.TokenID, msg.Asset)
	case assetsRefreshedMsg:
		if msg.Err != nil {
			a.Err = msg.Err
			logging.L.Error().Err(msg.Err).Msg("refresh assets")
			return a, nil
		}
		a.Err = nil
		a.Assets.SetAssets(msg.Assets)
		return a, nil
	case SelectTabMsg:
		return a, a.Dispatch(session.TabSelected{Tab: msg.Tab})
	case CycleTabMsg:
		next := a.Focus.Next(a.Session.Tab)
		if msg.Delta < 0 {
			next = a.Focus.Prev(a.Session.Tab)
		}
		return a, a.Dispatch(session.TabSelected{Tab: next})
	case MenuActionMsg:
		if _, ok := a.topOverlay().(*OverflowModal); ok {
			a.Overlays.Pop()
		}
		return a, a.Dispatch(session.MenuAction{Item: msg.Item})
	case ShowOverflowMsg:
		if entries := a.Session.Menu.Overflow(); len(entries) > 0 && a.Session.Tab == session.TabAssets {
			a.Overlays.Push(Overlay{View: NewOverflowModal(entries), Dismiss: "esc"})
		}
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case selectionChosenMsg:
		a.Overlays.Pop()
		a.Overlays.Push(Overlay{View: NewSendConfirmModal(a.Token, msg.RequestID, msg.TokenIDs)})
		return a, nil
	case sendSelectionMsg:
		a.Overlays.Pop()
		a.Status = "Sending…"
		return a, a.Deps.Sender.Send(a.ctx, selection.Request{
			ID:       msg.RequestID,
			Token:    a.Token,
			Wallet:   a.Wallet,
			TokenIDs: msg.TokenIDs,
		})
	case selection.Result:
		return a, a.handleSelectionResult(msg)
	case InvokeFunctionMsg:
		a.Status = msg.Name + " is not available yet"
		logging.L.Info().Str("function", msg.Name).Msg("function bar pressed")
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *appModelAdapter) handleDataLoaded(msg dataLoadedMsg) tea.Cmd {
	a.loading = false
	if msg.Err != nil {
		a.Err = msg.Err
		logging.L.Error().Err(msg.Err).Msg("load token contents")
	}
	a.Assets.SetAssets(msg.Assets)
	a.Activity.SetActivity(msg.Activity)
	a.functions = msg.Functions
	if a.FunctionBar != nil {
		a.FunctionBar.SetFunctions(msg.Functions)
	}
	return nil
}

func (a *appModelAdapter) handleSelectionResult(msg selection.Result) tea.Cmd {
	a.Overlays.Clear()
	a.Status = ""
	if msg.Err != nil {
		a.Status = "Send failed: " + msg.Err.Error()
		logging.L.Warn().Err(msg.Err).Str("request", msg.RequestID).Msg("selection failed")
	}
	return a.Dispatch(session.FlowCompleted{RequestID: msg.RequestID, TxHash: msg.TxHash})
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlays take all input while open.
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	// A focused filter owns the keyboard.
	if a.Session.Tab == session.TabAssets && a.Assets.Filtering {
		_, cmd := a.Assets.Update(msg)
		return cmd
	}
	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Session.Tab); consumed {
			return cmd
		}
	}
	if a.Session.Tab == session.TabInfo && a.FunctionBar != nil {
		if cmd := a.FunctionBar.Update(msg); cmd != nil {
			return cmd
		}
	}
	_, cmd := a.currentPage().Update(msg)
	return cmd
}

func (a *AppModel) topOverlay() View {
	top, ok := a.Overlays.Peek()
	if !ok {
		return nil
	}
	return top.View
}

func (a *AppModel) currentPage() View {
	switch a.Session.Tab {
	case session.TabInfo:
		return a.Info
	case session.TabAssets:
		return a.Assets
	default:
		return a.Activity
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder

	title := Styles.Title.Render(a.Token.Name)
	if a.Token.Name == "" {
		title = Styles.Title.Render(a.Token.Address.Hex())
	}
	if a.loading {
		title += " " + a.spinner.View()
	}
	b.WriteString(title + "  " + Styles.Muted.Render(a.Wallet.Short()) + "\n")
	b.WriteString(renderTabBar(a.Session.Tab) + "\n")
	if tb := renderToolbar(a.Session.Menu); tb != "" {
		b.WriteString(tb + "\n")
	}
	b.WriteString("\n")

	if top := a.topOverlay(); top != nil {
		b.WriteString(top.View())
	} else {
		b.WriteString(a.currentPage().View())
	}

	if bar := a.FunctionBar.View(); bar != "" {
		b.WriteString("\n\n" + bar)
	}
	if a.Err != nil {
		b.WriteString("\n" + Styles.Error.Render(a.Err.Error()))
	}
	if a.Status != "" {
		b.WriteString("\n" + Styles.Status.Render(a.Status))
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Session.Tab))
	} else {
		b.WriteString("\n" + Styles.Hint.Render(a.footerHint()))
	}
	return lipgloss.NewStyle().MaxWidth(max(a.width, 20)).Render(b.String())
}

func (a *AppModel) footerHint() string {
	hint := "1-3/tab: page  SPC: commands  q: quit"
	switch a.Session.Tab {
	case session.TabAssets:
		hint = "/: filter  j/k: move  r: refresh  " + hint
	case session.TabInfo:
		if a.FunctionBar.View() != "" {
			hint = "[/]: function  enter: run  " + hint
		}
	}
	return hint
}
