package ui

import "nftview/internal/session"

// FocusManager rotates through the pages of the detail screen. The session
// owns the current tab; FocusManager only answers "which tab is next".
type FocusManager struct {
	Order []session.Tab // Tab order for rotation
}

// NewFocusManager uses the display order of the pages.
func NewFocusManager() *FocusManager {
	return &FocusManager{Order: session.Tabs}
}

// Next returns the tab after current, wrapping around.
// Returns current unchanged when the order is empty.
func (f *FocusManager) Next(current session.Tab) session.Tab {
	if len(f.Order) == 0 {
		return current
	}
	idx := f.index(current)
	return f.Order[(idx+1)%len(f.Order)]
}

// Prev returns the tab before current, wrapping around.
func (f *FocusManager) Prev(current session.Tab) session.Tab {
	if len(f.Order) == 0 {
		return current
	}
	idx := f.index(current) - 1
	if idx < 0 {
		idx = len(f.Order) - 1
	}
	return f.Order[idx]
}

// ByNumber maps the 1-based page number shown in the tab bar to a tab.
func (f *FocusManager) ByNumber(n int) (session.Tab, bool) {
	if n < 1 || n > len(f.Order) {
		return 0, false
	}
	return f.Order[n-1], true
}

// index returns the position of tab in Order, or -1 for an unknown tab so
// Next lands on the first page.
func (f *FocusManager) index(tab session.Tab) int {
	for i, t := range f.Order {
		if t == tab {
			return i
		}
	}
	return -1
}
