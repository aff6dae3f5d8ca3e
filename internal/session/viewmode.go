package session

// ViewMode is the layout applied to the asset collection.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "list"
	}
	return "grid"
}

// SelectGrid switches to the grid layout.
func (s *Session) SelectGrid() []Directive {
	return s.selectViewMode(ViewGrid)
}

// SelectList switches to the list layout.
func (s *Session) SelectList() []Directive {
	return s.selectViewMode(ViewList)
}

// selectViewMode is the ViewModeController. Repeating the current mode
// leaves the menu unchanged and skips the render directive.
func (s *Session) selectViewMode(mode ViewMode) []Directive {
	repeat := s.ViewMode == mode
	s.ViewMode = mode
	s.Menu.showModePair(mode)
	if repeat {
		return nil
	}
	if mode == ViewList {
		return []Directive{RenderList{}}
	}
	return []Directive{RenderGrid{}}
}
