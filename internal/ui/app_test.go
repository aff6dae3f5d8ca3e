package ui

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"

	"nftview/internal/selection"
	"nftview/internal/session"
	"nftview/internal/token"
	"nftview/internal/wallet"
)

const (
	testContract = "0x495f947276749ce646f68ac8c248420045cb7b5e"
	testOwner    = "0x52908400098527886E0F7030069857D2E4169EE7"
)

type appOpts struct {
	standard   token.Standard
	walletType string
	debug      bool
}

// newTestApp opens the screen on an in-memory store holding two assets,
// one transfer and one extra function, with contents already loaded.
func newTestApp(t *testing.T, o appOpts) *appModelAdapter {
	t.Helper()
	ctx := context.Background()
	store, err := token.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	info := token.Info{
		ChainID:  token.MainnetID,
		Address:  common.HexToAddress(testContract),
		Name:     "OpenStore",
		Symbol:   "OPENSTORE",
		Standard: o.standard,
	}
	if err := store.PutToken(ctx, info); err != nil {
		t.Fatalf("PutToken: %v", err)
	}
	tok := &token.Token{Info: info}
	if err := store.StoreAsset(ctx, tok, big.NewInt(1), token.Asset{Name: "Sword", Amount: big.NewInt(3)}); err != nil {
		t.Fatalf("StoreAsset: %v", err)
	}
	if err := store.StoreAsset(ctx, tok, big.NewInt(2), token.Asset{Name: "Shield"}); err != nil {
		t.Fatalf("StoreAsset: %v", err)
	}
	if err := store.PutActivity(ctx, tok, []token.Activity{{
		TxHash:    "0xfeed",
		To:        common.HexToAddress(testOwner),
		TokenID:   big.NewInt(1),
		Timestamp: time.Now().Add(-2 * time.Hour),
	}}); err != nil {
		t.Fatalf("PutActivity: %v", err)
	}
	if err := store.SetFunctions(ctx, tok, []string{"Redeem"}); err != nil {
		t.Fatalf("SetFunctions: %v", err)
	}

	if o.walletType == "" {
		o.walletType = "hdkey"
	}
	w, err := wallet.New(testOwner, o.walletType)
	if err != nil {
		t.Fatalf("wallet.New: %v", err)
	}
	m, err := NewAppModel(ctx, Deps{
		Tokens:      store,
		Definitions: store,
		Sender:      &selection.StubSender{},
	}, Options{
		SessionID: "test",
		ChainID:   token.MainnetID,
		Address:   testContract,
		Wallet:    w,
		Debug:     o.debug,
	})
	if err != nil {
		t.Fatalf("NewAppModel: %v", err)
	}
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(m.loadData()())
	return a
}

// drain runs cmd and feeds the resulting messages back into the model
// until nothing is left. Reports whether the program was asked to quit.
func drain(a *appModelAdapter, cmd tea.Cmd) bool {
	quit := false
	for depth := 0; cmd != nil && depth < 16; depth++ {
		switch msg := cmd().(type) {
		case nil:
			return quit
		case tea.QuitMsg:
			return true
		case tea.BatchMsg:
			for _, c := range msg {
				if drain(a, c) {
					quit = true
				}
			}
			return quit
		default:
			_, cmd = a.Update(msg)
		}
	}
	return quit
}

// press sends keys one at a time, running every resulting command.
func press(a *appModelAdapter, keys ...string) bool {
	quit := false
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		if drain(a, cmd) {
			quit = true
		}
	}
	return quit
}

// typeKeys sends keys without running the returned commands. The filter
// input answers focus with a cursor blink tick that would otherwise sleep.
func typeKeys(a *appModelAdapter, keys ...string) {
	for _, k := range keys {
		a.Update(keyMsg(k))
	}
}

func TestNewAppModel_TokenNotFound(t *testing.T) {
	store, err := token.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	w, _ := wallet.New(testOwner, "hdkey")
	_, err = NewAppModel(context.Background(), Deps{Tokens: store}, Options{
		ChainID: token.MainnetID, Address: testContract, Wallet: w,
	})
	if !errors.Is(err, token.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	em := NewErrorModel(err)
	if !strings.Contains(em.View(), "Token not found") {
		t.Errorf("error view = %q", em.View())
	}
	_, cmd := em.Update(keyMsg("x"))
	if cmd == nil {
		t.Fatal("any key should quit the error screen")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_InitialState(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	if a.Session.Tab != session.TabAssets {
		t.Errorf("initial tab = %v, want Assets", a.Session.Tab)
	}
	if a.Assets.Layout != session.ViewGrid {
		t.Errorf("initial layout = %v, want grid", a.Assets.Layout)
	}
	if a.FunctionBar != nil {
		t.Error("function bar should not exist before Info is visited")
	}
	if len(a.Assets.Assets) != 2 || len(a.Activity.Activity) != 1 {
		t.Errorf("loaded %d assets, %d transfers", len(a.Assets.Assets), len(a.Activity.Activity))
	}
	view := a.View()
	for _, want := range []string{"OpenStore", "Send multiple", "⋮", "Sword"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestApp_BatchToolbarSwitchesLayout(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	press(a, "l")
	if a.Assets.Layout != session.ViewList {
		t.Fatalf("layout = %v after l, want list", a.Assets.Layout)
	}
	if a.Session.Menu.Item(session.ItemSwitchToList).Visible {
		t.Error("list switch should hide once list is active")
	}
	if !a.Session.Menu.Item(session.ItemSwitchToGrid).Visible {
		t.Error("grid switch should show once list is active")
	}

	// The hidden list switch does nothing.
	press(a, "l")
	if a.Assets.Layout != session.ViewList {
		t.Error("layout changed on hidden action")
	}
	press(a, "g")
	if a.Assets.Layout != session.ViewGrid {
		t.Errorf("layout = %v after g, want grid", a.Assets.Layout)
	}
}

func TestApp_NoBatchHidesSend(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})

	view := a.View()
	if strings.Contains(view, "Send multiple") {
		t.Error("send action should be hidden without batch transfer")
	}
	if !strings.Contains(view, "List view") {
		t.Error("list switch should be inline without batch transfer")
	}
	if strings.Contains(view, "⋮") {
		t.Error("no overflow marker expected without batch transfer")
	}

	press(a, "s")
	if a.Overlays.Len() != 0 || a.Session.Flow.State != session.FlowIdle {
		t.Error("send should be ignored while hidden")
	}
}

func TestApp_InfoTabBuildsFunctionBarOnce(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})

	press(a, "1")
	if a.Session.Tab != session.TabInfo {
		t.Fatalf("tab = %v, want Info", a.Session.Tab)
	}
	if a.Session.Menu.Shown() {
		t.Error("toolbar should be empty on Info")
	}
	bar := a.FunctionBar
	if bar == nil || !bar.Visible {
		t.Fatal("function bar should be constructed and visible on Info")
	}
	view := a.View()
	if !strings.Contains(view, "Transfer") || !strings.Contains(view, "Redeem") {
		t.Errorf("function bar missing buttons: %q", view)
	}

	press(a, "3")
	if a.FunctionBar == nil || a.FunctionBar.Visible {
		t.Error("function bar should be hidden, not destroyed, on Activity")
	}
	press(a, "1")
	if a.FunctionBar != bar {
		t.Error("function bar must be built only once")
	}
	if !a.FunctionBar.Visible {
		t.Error("function bar should be visible again on Info")
	}
}

func TestApp_WatchOnlyFunctionBar(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721, walletType: "watch"})
	press(a, "1")
	if a.FunctionBar != nil {
		t.Error("release build must not build a function bar for a watch-only account")
	}

	a = newTestApp(t, appOpts{standard: token.StandardERC721, walletType: "watch", debug: true})
	press(a, "1")
	if a.FunctionBar == nil || !a.FunctionBar.Visible {
		t.Fatal("debug build should show the function bar for a watch-only account")
	}
	if !a.FunctionBar.Disabled {
		t.Error("watch-only buttons should be disabled")
	}
	press(a, "enter")
	if a.Status != "" {
		t.Errorf("disabled button produced status %q", a.Status)
	}
}

func TestApp_FunctionBarInvoke(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})
	press(a, "1", "]", "enter")
	if !strings.Contains(a.Status, "Redeem") {
		t.Errorf("status = %q, want Redeem invoked", a.Status)
	}
}

func TestApp_SendMultipleCompletes(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	press(a, "s")
	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("expected selection modal")
	}
	if _, ok := top.View.(*SelectionModal); !ok {
		t.Fatalf("top overlay = %T, want *SelectionModal", top.View)
	}
	if a.Session.Flow.RequestID != "test-1" {
		t.Errorf("request id = %q, want test-1", a.Session.Flow.RequestID)
	}

	press(a, " ", "enter")
	top, _ = a.Overlays.Peek()
	if _, ok := top.View.(*ConfirmModal); !ok {
		t.Fatalf("top overlay = %T, want *ConfirmModal", top.View)
	}

	if quit := press(a, "y"); !quit {
		t.Error("expected the screen to quit after the transfer")
	}
	want := selection.Hash(selection.Request{
		Token:    a.Token,
		Wallet:   a.Wallet,
		TokenIDs: []*big.Int{big.NewInt(1)},
	}).Hex()
	if a.Result != want {
		t.Errorf("result = %q, want %q", a.Result, want)
	}
	if !a.Session.Closed || a.Overlays.Len() != 0 {
		t.Error("session should be closed with no overlays")
	}

	// Late input is ignored once closed.
	press(a, "1")
	if a.Session.Tab != session.TabAssets {
		t.Error("closed session changed tab")
	}
}

func TestApp_SendMultipleCancel(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	press(a, "s", "esc")
	if a.Overlays.Len() != 0 {
		t.Errorf("overlays = %d after cancel", a.Overlays.Len())
	}
	if a.Session.Flow.State != session.FlowIdle || a.Result != "" {
		t.Error("cancel should return to idle without a result")
	}

	// Cancelling at the confirmation step also ends the request.
	press(a, "s", " ", "enter", "n")
	if a.Session.Flow.State != session.FlowIdle || a.Overlays.Len() != 0 {
		t.Error("declining the confirmation should return to idle")
	}
	if a.Session.Flow.RequestID != "" {
		t.Errorf("request id = %q after cancel", a.Session.Flow.RequestID)
	}

	press(a, "s")
	if a.Session.Flow.RequestID != "test-3" {
		t.Errorf("request id = %q, want test-3", a.Session.Flow.RequestID)
	}
}

func TestApp_EmptySelectionStaysOpen(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})
	press(a, "s", "enter")
	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("selection modal closed on empty selection")
	}
	if _, ok := top.View.(*SelectionModal); !ok {
		t.Errorf("top overlay = %T", top.View)
	}
}

func TestApp_OverflowMenu(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	press(a, "m")
	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("expected overflow menu")
	}
	if _, ok := top.View.(*OverflowModal); !ok {
		t.Fatalf("top overlay = %T", top.View)
	}
	if !strings.Contains(a.View(), "List view") {
		t.Error("overflow should list the list switch")
	}

	press(a, "enter")
	if a.Overlays.Len() != 0 {
		t.Error("overflow should close after an action")
	}
	if a.Assets.Layout != session.ViewList {
		t.Errorf("layout = %v, want list", a.Assets.Layout)
	}

	// No overflow without batch transfer.
	b := newTestApp(t, appOpts{standard: token.StandardERC721})
	press(b, "m")
	if b.Overlays.Len() != 0 {
		t.Error("overflow menu should not open when empty")
	}
}

func TestApp_AssetFilterOwnsKeyboard(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})

	typeKeys(a, "/", "s", "l")
	if !a.Assets.Filtering {
		t.Fatal("filter should be active")
	}
	if a.Assets.Layout != session.ViewGrid {
		t.Error("typing l in the filter must not switch layout")
	}
	typeKeys(a, "esc")
	if a.Assets.Filtering || a.Assets.Query() != "" {
		t.Error("esc should clear and close the filter")
	}

	typeKeys(a, "/", "s", "w", "enter")
	vis := a.Assets.Visible()
	if len(vis) != 1 || vis[0].Name != "Sword" {
		t.Errorf("filtered = %v", vis)
	}
}

func TestApp_TabCycling(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})

	press(a, "tab")
	if a.Session.Tab != session.TabActivity {
		t.Errorf("tab = %v, want Activity", a.Session.Tab)
	}
	if !strings.Contains(a.View(), "ago") {
		t.Error("activity page should show relative times")
	}
	press(a, "tab")
	if a.Session.Tab != session.TabInfo {
		t.Errorf("tab = %v, want Info", a.Session.Tab)
	}
	press(a, "shift+tab")
	if a.Session.Tab != session.TabActivity {
		t.Errorf("tab = %v after shift+tab, want Activity", a.Session.Tab)
	}
	press(a, "shift+tab")
	if a.Session.Tab != session.TabAssets {
		t.Errorf("tab = %v after second shift+tab, want Assets", a.Session.Tab)
	}
	press(a, " ", "t", "i", " ", "t", "a")
	if a.Session.Tab != session.TabAssets {
		t.Errorf("tab = %v after SPC t a, want Assets", a.Session.Tab)
	}
}

func TestApp_LeaderHelpShown(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})
	press(a, " ")
	if !strings.Contains(a.View(), "View") {
		t.Error("leader help should list the View submenu on Assets")
	}
	press(a, "esc")
	if a.KeyHandler.LeaderWaiting {
		t.Error("esc should leave leader mode")
	}
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})
	if !press(a, "q") {
		t.Error("q should quit")
	}
	if a.Result != "" {
		t.Error("quitting must not produce a result")
	}
}

func TestApp_StaleSelectionResultIgnored(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})
	press(a, "s")
	hash := "0xabc"
	a.Update(selection.Result{RequestID: "other-1", TxHash: &hash})
	if a.Session.Closed || a.Session.Flow.State != session.FlowAwaiting {
		t.Error("result for another request must not finish the screen")
	}
}

func TestApp_StoreAssetRefreshesAssets(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC1155})

	drain(a, a.StoreAsset(big.NewInt(3), token.Asset{Name: "Helmet"}))
	if len(a.Assets.Assets) != 3 {
		t.Fatalf("assets = %d after StoreAsset, want 3", len(a.Assets.Assets))
	}
	if !strings.Contains(a.View(), "Helmet") {
		t.Error("stored asset should be drawn on the Assets page")
	}

	// Metadata delivered as a message takes the same path.
	_, cmd := a.Update(StoreAssetMsg{TokenID: big.NewInt(1), Asset: token.Asset{Name: "Great Sword", Amount: big.NewInt(3)}})
	drain(a, cmd)
	if got := a.Assets.Assets[0].Name; got != "Great Sword" {
		t.Errorf("asset #1 name = %q, want updated name", got)
	}

	drain(a, a.StoreAsset(nil, token.Asset{Name: "Broken"}))
	if a.Err == nil {
		t.Error("a failed store should surface an error")
	}
	if len(a.Assets.Assets) != 3 {
		t.Errorf("assets = %d after failed store, want 3", len(a.Assets.Assets))
	}
}

func TestApp_RefreshKeyRereadsAssets(t *testing.T) {
	a := newTestApp(t, appOpts{standard: token.StandardERC721})

	if err := a.Deps.Tokens.StoreAsset(context.Background(), a.Token, big.NewInt(5), token.Asset{Name: "Bow"}); err != nil {
		t.Fatalf("StoreAsset: %v", err)
	}
	if len(a.Assets.Assets) != 2 {
		t.Fatal("page should not change before a refresh")
	}
	press(a, "r")
	if len(a.Assets.Assets) != 3 {
		t.Errorf("assets = %d after r, want 3", len(a.Assets.Assets))
	}

	// r is an Assets key only.
	press(a, "3")
	if err := a.Deps.Tokens.StoreAsset(context.Background(), a.Token, big.NewInt(6), token.Asset{Name: "Arrow"}); err != nil {
		t.Fatalf("StoreAsset: %v", err)
	}
	press(a, "r")
	if len(a.Assets.Assets) != 3 {
		t.Errorf("r refreshed assets on Activity")
	}
}
