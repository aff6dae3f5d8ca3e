package session

// Event is the closed set of inputs the session reacts to: TabSelected,
// MenuAction and FlowCompleted.
type Event interface {
	// Name is a stable label for logs and spans.
	Name() string
	event()
}

// TabSelected is sent when the user selects a page.
type TabSelected struct {
	Tab Tab
}

// MenuAction is sent when the user triggers a toolbar action.
type MenuAction struct {
	Item MenuItemID
}

// FlowCompleted is the single completion of a batch-selection request.
// TxHash is nil when the flow returned no payload.
type FlowCompleted struct {
	RequestID string
	TxHash    *string
}

func (TabSelected) Name() string   { return "tab_selected" }
func (MenuAction) Name() string    { return "menu_action" }
func (FlowCompleted) Name() string { return "flow_completed" }

func (TabSelected) event()   {}
func (MenuAction) event()    {}
func (FlowCompleted) event() {}

// Directive is a side effect the host must perform after a reduction.
type Directive interface {
	Kind() string
	directive()
}

// RenderGrid asks the asset renderer to show the grid layout.
type RenderGrid struct{}

// RenderList asks the asset renderer to show the list layout.
type RenderList struct{}

// ConstructFunctionBar asks the host to build the function bar and bind it
// to the current token, account and asset definitions. Sent at most once
// per session.
type ConstructFunctionBar struct{}

// ShowFunctionBar makes the constructed function bar visible.
type ShowFunctionBar struct{}

// HideFunctionBar hides the constructed function bar.
type HideFunctionBar struct{}

// LaunchSelection hands off to the batch-selection flow. The completion
// must carry RequestID.
type LaunchSelection struct {
	RequestID string
}

// Finish closes the screen with a transaction hash for the caller.
type Finish struct {
	TxHash string
}

func (RenderGrid) Kind() string           { return "render_grid" }
func (RenderList) Kind() string           { return "render_list" }
func (ConstructFunctionBar) Kind() string { return "construct_function_bar" }
func (ShowFunctionBar) Kind() string      { return "show_function_bar" }
func (HideFunctionBar) Kind() string      { return "hide_function_bar" }
func (LaunchSelection) Kind() string      { return "launch_selection" }
func (Finish) Kind() string               { return "finish" }

func (RenderGrid) directive()           {}
func (RenderList) directive()           {}
func (ConstructFunctionBar) directive() {}
func (ShowFunctionBar) directive()      {}
func (HideFunctionBar) directive()      {}
func (LaunchSelection) directive()      {}
func (Finish) directive()               {}

// Kinds returns the Kind of each directive, for logging.
func Kinds(ds []Directive) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Kind()
	}
	return out
}
