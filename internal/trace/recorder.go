// Package trace records each session reduction as an OpenTelemetry span.
package trace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"nftview/internal/session"
)

const instrumentation = "nftview/session"

// Attribute keys set on reduction spans.
const (
	KeySessionID  = attribute.Key("nftview.session.id")
	KeyEvent      = attribute.Key("nftview.event")
	KeyTab        = attribute.Key("nftview.tab")
	KeyViewMode   = attribute.Key("nftview.view_mode")
	KeyFlowState  = attribute.Key("nftview.flow.state")
	KeyDirectives = attribute.Key("nftview.directives")
	KeyMenuItem   = attribute.Key("nftview.menu.item")
	KeyRequestID  = attribute.Key("nftview.request.id")
	KeyClosed     = attribute.Key("nftview.closed")
)

// Recorder turns reductions into spans named "session.<event>".
type Recorder struct {
	tracer oteltrace.Tracer
}

func NewRecorder(tp oteltrace.TracerProvider) *Recorder {
	return &Recorder{tracer: tp.Tracer(instrumentation)}
}

// Record emits one span describing ev and the state it produced. A nil
// Recorder does nothing.
func (r *Recorder) Record(ctx context.Context, ev session.Event, after session.Session, dirs []session.Directive) {
	if r == nil {
		return
	}
	_, span := r.tracer.Start(ctx, "session."+ev.Name())
	defer span.End()

	attrs := []attribute.KeyValue{
		KeySessionID.String(after.ID),
		KeyEvent.String(ev.Name()),
		KeyTab.String(after.Tab.String()),
		KeyViewMode.String(after.ViewMode.String()),
		KeyFlowState.String(after.Flow.State.String()),
		KeyDirectives.StringSlice(session.Kinds(dirs)),
		KeyClosed.Bool(after.Closed),
	}
	switch ev := ev.(type) {
	case session.MenuAction:
		attrs = append(attrs, KeyMenuItem.String(string(ev.Item)))
	case session.FlowCompleted:
		attrs = append(attrs, KeyRequestID.String(ev.RequestID))
	}
	span.SetAttributes(attrs...)
}
