package ui

import (
	"math/big"

	"nftview/internal/session"
	"nftview/internal/token"
)

// SelectTabMsg is sent when the user picks a page (1/2/3, SPC t …).
type SelectTabMsg struct {
	Tab session.Tab
}

// CycleTabMsg moves to the next (Delta=1) or previous (Delta=-1) page.
type CycleTabMsg struct {
	Delta int
}

// MenuActionMsg triggers a toolbar action (g, l, s, or the overflow menu).
type MenuActionMsg struct {
	Item session.MenuItemID
}

// ShowOverflowMsg opens the overflow menu (m).
type ShowOverflowMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// InvokeFunctionMsg is sent when a function-bar button is pressed.
type InvokeFunctionMsg struct {
	Name string
}

// StoreAssetMsg hands fresh metadata for one asset to the screen, which
// caches it and redraws the Assets page.
type StoreAssetMsg struct {
	TokenID *big.Int
	Asset   token.Asset
}

// assetsRefreshedMsg carries the asset list re-read after a change.
type assetsRefreshedMsg struct {
	Assets []token.Asset
	Err    error
}

// dataLoadedMsg carries the collection contents read when the screen opens.
type dataLoadedMsg struct {
	Assets    []token.Asset
	Activity  []token.Activity
	Functions []string
	Err       error
}

// selectionChosenMsg is sent by SelectionModal when the user confirms a
// non-empty selection; the app asks for confirmation before sending.
type selectionChosenMsg struct {
	RequestID string
	TokenIDs  []*big.Int
}

// sendSelectionMsg is sent when the user confirms the transfer.
type sendSelectionMsg struct {
	RequestID string
	TokenIDs  []*big.Int
}
