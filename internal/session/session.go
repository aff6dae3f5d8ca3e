package session

// Capabilities are read-only facts supplied by collaborators when the
// screen opens.
type Capabilities struct {
	BatchTransferAvailable bool // property of the displayed collection
	WatchOnlyAccount       bool
	DebugBuild             bool
}

// Session is the whole coordination state of one screen instance. It is a
// plain value: Reduce returns a modified copy and never aliases the input.
type Session struct {
	ID          string
	Caps        Capabilities
	Tab         Tab
	ViewMode    ViewMode
	Menu        Menu
	FunctionBar FunctionBarSlot
	Flow        Flow

	// Closed is set once the screen finished; later events are ignored.
	Closed bool
	TxHash string
}

// New creates the session for a freshly opened screen: Assets page, grid
// layout, toolbar created for caps, function bar absent.
func New(id string, caps Capabilities) Session {
	s := Session{
		ID:          id,
		Caps:        caps,
		Tab:         InitialTab,
		ViewMode:    ViewGrid,
		Menu:        NewMenu(),
		FunctionBar: NewFunctionBarSlot(PolicyFor(caps)),
	}
	s.Menu.Create(caps.BatchTransferAvailable, s.ViewMode)
	return s
}

// Reduce applies ev to s and returns the new state together with the
// directives the host must carry out, in order.
//
// A menu action only fires for an action that is currently visible, in the
// same way a hidden toolbar entry cannot be clicked.
func Reduce(s Session, ev Event) (Session, []Directive) {
	if s.Closed {
		return s, nil
	}
	var out []Directive
	switch ev := ev.(type) {
	case TabSelected:
		out = s.SelectTab(ev.Tab)
	case MenuAction:
		if !s.Menu.Item(ev.Item).Visible {
			return s, nil
		}
		switch ev.Item {
		case ItemSwitchToGrid:
			out = s.SelectGrid()
		case ItemSwitchToList:
			out = s.SelectList()
		case ItemSendMultiple:
			out = s.sendMultiple()
		}
	case FlowCompleted:
		out = s.completeFlow(ev)
	}
	return s, out
}
