package session

// MenuItemID is the fixed identifier of a toolbar action.
type MenuItemID string

const (
	ItemSwitchToGrid MenuItemID = "switch-to-grid-view"
	ItemSwitchToList MenuItemID = "switch-to-list-view"
	ItemSendMultiple MenuItemID = "send-multiple-tokens"
)

// MenuItems lists the toolbar actions in render order.
var MenuItems = []MenuItemID{ItemSendMultiple, ItemSwitchToGrid, ItemSwitchToList}

// Placement controls where a visible action is rendered.
type Placement int

const (
	// PlacementAlways renders the action inline in the toolbar.
	PlacementAlways Placement = iota
	// PlacementNever keeps the action in the overflow menu only.
	PlacementNever
)

func (p Placement) String() string {
	if p == PlacementNever {
		return "never"
	}
	return "always"
}

// MenuItemState is the visible/placement state of one toolbar action.
type MenuItemState struct {
	ID        MenuItemID
	Visible   bool
	Placement Placement
}

// Menu is the MenuVisibilityController. It is a value type so a Session
// copy carries an independent menu.
type Menu struct {
	items [3]MenuItemState
}

// NewMenu returns a menu with all three actions hidden.
func NewMenu() Menu {
	var m Menu
	for i, id := range MenuItems {
		m.items[i] = MenuItemState{ID: id}
	}
	return m
}

// Item returns the state of one action. Unknown ids return a hidden zero
// state carrying the id.
func (m Menu) Item(id MenuItemID) MenuItemState {
	if p := m.find(id); p >= 0 {
		return m.items[p]
	}
	return MenuItemState{ID: id}
}

// Items returns all three states in render order.
func (m Menu) Items() []MenuItemState {
	out := make([]MenuItemState, len(m.items))
	copy(out, m.items[:])
	return out
}

// Inline returns the visible actions placed in the toolbar.
func (m Menu) Inline() []MenuItemState {
	return m.filter(PlacementAlways)
}

// Overflow returns the visible actions reachable only from the overflow menu.
func (m Menu) Overflow() []MenuItemState {
	return m.filter(PlacementNever)
}

// Shown reports whether any action is visible.
func (m Menu) Shown() bool {
	for _, it := range m.items {
		if it.Visible {
			return true
		}
	}
	return false
}

func (m Menu) filter(p Placement) []MenuItemState {
	var out []MenuItemState
	for _, it := range m.items {
		if it.Visible && it.Placement == p {
			out = append(out, it)
		}
	}
	return out
}

func (m Menu) find(id MenuItemID) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (m *Menu) set(id MenuItemID, visible bool) {
	if p := m.find(id); p >= 0 {
		m.items[p].Visible = visible
	}
}

func (m *Menu) place(id MenuItemID, p Placement) {
	if i := m.find(id); i >= 0 {
		m.items[i].Placement = p
	}
}

// Create runs once when the toolbar is built. It is the only place that
// assigns placement: with batch transfer the send action is inline and the
// mode switches move to the overflow; without it the send action is hidden
// and the mode switches are inline. Visibility of the mode pair is then
// prepared from mode.
func (m *Menu) Create(batch bool, mode ViewMode) {
	if batch {
		m.set(ItemSendMultiple, true)
		m.place(ItemSendMultiple, PlacementAlways)
		m.place(ItemSwitchToGrid, PlacementNever)
		m.place(ItemSwitchToList, PlacementNever)
	} else {
		m.set(ItemSendMultiple, false)
		m.place(ItemSwitchToGrid, PlacementAlways)
		m.place(ItemSwitchToList, PlacementAlways)
	}
	m.showModePair(mode)
}

// Recompute recalculates visibility on Assets entry. Placement is left as
// Create set it.
func (m *Menu) Recompute(mode ViewMode, batch bool) {
	m.showModePair(mode)
	m.set(ItemSendMultiple, batch)
}

// HideAll hides every action regardless of prior state.
func (m *Menu) HideAll() {
	for i := range m.items {
		m.items[i].Visible = false
	}
}

// showModePair makes the switch to the other mode visible and hides the
// switch to the current one.
func (m *Menu) showModePair(mode ViewMode) {
	m.set(ItemSwitchToList, mode == ViewGrid)
	m.set(ItemSwitchToGrid, mode == ViewList)
}
