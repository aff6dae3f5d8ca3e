// Package session holds the per-screen coordination state of the asset
// detail screen: the selected tab, the display mode, the three toolbar
// actions and the gated function bar.
//
// All mutation goes through Reduce, which maps (Session, Event) to a new
// Session plus the directives the host must carry out (render grid, show
// the function bar, launch the batch-selection flow, finish the screen).
// The host owns rendering; this package never touches the terminal.
//
// Components:
//   - TabController: SelectTab and the per-tab transition table
//   - MenuVisibilityController: Menu (Create, Recompute, HideAll)
//   - ViewModeController: SelectGrid / SelectList
//   - FunctionBarGate: FunctionBarSlot.Show
//   - batch-selection flow: Flow plus the FlowCompleted event
package session
