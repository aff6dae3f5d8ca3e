package session

// Tab identifies a page of the detail screen by its ordinal.
type Tab int

const (
	TabInfo Tab = iota
	TabAssets
	TabActivity
)

// InitialTab is selected when the screen opens. It is Assets, not the
// first page.
const InitialTab = TabAssets

// Tabs lists the pages in display order.
var Tabs = []Tab{TabInfo, TabAssets, TabActivity}

func (t Tab) String() string {
	switch t {
	case TabInfo:
		return "Info"
	case TabAssets:
		return "Assets"
	case TabActivity:
		return "Activity"
	default:
		return "Unknown"
	}
}

// SelectTab is the TabController. It is the only mutator of s.Tab and is
// total over all ordinals: anything other than Info and Assets follows the
// Activity row of the transition table. Selecting the current tab again
// replays the same side effects.
func (s *Session) SelectTab(tab Tab) []Directive {
	s.Tab = tab
	switch tab {
	case TabInfo:
		out := s.FunctionBar.Show(true)
		s.Menu.HideAll()
		return out
	case TabAssets:
		out := s.FunctionBar.Show(false)
		s.Menu.Recompute(s.ViewMode, s.Caps.BatchTransferAvailable)
		return out
	default:
		out := s.FunctionBar.Show(false)
		s.Menu.HideAll()
		return out
	}
}
