package session

import "fmt"

// FlowState is the state of the batch-selection hand-off.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowAwaiting
	FlowDone
)

func (f FlowState) String() string {
	switch f {
	case FlowIdle:
		return "idle"
	case FlowAwaiting:
		return "awaiting"
	case FlowDone:
		return "completed"
	default:
		return "unknown"
	}
}

// Flow tracks the one outstanding batch-selection request.
type Flow struct {
	State     FlowState
	RequestID string
	seq       int
}

// sendMultiple hands off to the external selection flow. Only one request
// may be outstanding.
func (s *Session) sendMultiple() []Directive {
	if s.Flow.State == FlowAwaiting {
		return nil
	}
	s.Flow.seq++
	s.Flow.State = FlowAwaiting
	s.Flow.RequestID = fmt.Sprintf("%s-%d", s.ID, s.Flow.seq)
	return []Directive{LaunchSelection{RequestID: s.Flow.RequestID}}
}

// completeFlow consumes the one-shot completion of the selection flow. A
// result for another request, or with no request outstanding, is dropped.
// An empty hash is a cancellation and returns the flow to idle.
func (s *Session) completeFlow(ev FlowCompleted) []Directive {
	if s.Flow.State != FlowAwaiting || ev.RequestID != s.Flow.RequestID {
		return nil
	}
	if ev.TxHash == nil || *ev.TxHash == "" {
		s.Flow.State = FlowIdle
		s.Flow.RequestID = ""
		return nil
	}
	s.Flow.State = FlowDone
	s.Closed = true
	s.TxHash = *ev.TxHash
	return []Directive{Finish{TxHash: s.TxHash}}
}
