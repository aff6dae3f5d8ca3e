// Package ui is the Bubble Tea front end of the token detail screen.
//
// Building blocks:
//   - AppModel: root model; turns input into session events and applies the
//     returned directives to the views
//   - View: a page or modal with its own update and render
//   - InfoPage, AssetsPage, ActivityPage: the three tabs
//   - FunctionBarView: token functions under the Info page
//   - OverlayStack: modals (overflow menu, selection, confirmation)
//   - KeybindRegistry/KeyHandler: single keys and SPC leader sequences
//   - FocusManager: tab rotation order
package ui
