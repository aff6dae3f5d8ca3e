package session

// ConstructPolicy decides whether the function bar may ever be built.
type ConstructPolicy int

const (
	PolicyDeny ConstructPolicy = iota
	PolicyAllow
)

// PolicyFor evaluates the gate predicate: debug builds always get the bar,
// release builds only for accounts that can sign.
func PolicyFor(c Capabilities) ConstructPolicy {
	if c.DebugBuild || !c.WatchOnlyAccount {
		return PolicyAllow
	}
	return PolicyDeny
}

// FunctionBarSlot is an optional function bar with a construction policy.
// The bar is absent until the first allowed show(true); once built it is
// only toggled.
type FunctionBarSlot struct {
	policy  ConstructPolicy
	built   bool
	visible bool
}

// NewFunctionBarSlot returns an empty slot governed by policy.
func NewFunctionBarSlot(policy ConstructPolicy) FunctionBarSlot {
	return FunctionBarSlot{policy: policy}
}

// Constructed reports whether the bar has been built.
func (f FunctionBarSlot) Constructed() bool { return f.built }

// Visible reports whether the bar is built and shown.
func (f FunctionBarSlot) Visible() bool { return f.built && f.visible }

// Denied reports whether the policy forbids the bar for this session.
func (f FunctionBarSlot) Denied() bool { return f.policy == PolicyDeny }

// Show is the FunctionBarGate. Hiding a bar that was never built is a
// no-op, and a denied slot ignores every request.
func (f *FunctionBarSlot) Show(visible bool) []Directive {
	if !visible && !f.built {
		return nil
	}
	if f.policy == PolicyDeny {
		return nil
	}
	var out []Directive
	if !f.built {
		f.built = true
		out = append(out, ConstructFunctionBar{})
	}
	f.visible = visible
	if visible {
		return append(out, ShowFunctionBar{})
	}
	return append(out, HideFunctionBar{})
}
