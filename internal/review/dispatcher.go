package review

import "strings"

// Intent is the semantic action derived from a raw key event.
type Intent int

const (
	IntentNone Intent = iota
	IntentPrev
	IntentNext
	IntentKeep
	IntentRemove
	IntentSkip
	IntentUndo
)

func (i Intent) String() string {
	switch i {
	case IntentPrev:
		return "prev"
	case IntentNext:
		return "next"
	case IntentKeep:
		return "keep"
	case IntentRemove:
		return "remove"
	case IntentSkip:
		return "skip"
	case IntentUndo:
		return "undo"
	default:
		return "none"
	}
}

// KeyEvent is a normalized key press as seen by the dispatcher. The
// host UI is responsible for filling TextInputFocused from its focus
// state.
type KeyEvent struct {
	Key              string
	CtrlOrCmd        bool
	Alt              bool
	Shift            bool
	TextInputFocused bool
}

// Handlers binds one callback per semantic intent. Nil callbacks are
// allowed; the matching event is still consumed.
type Handlers struct {
	Prev   func()
	Next   func()
	Keep   func()
	Remove func()
	Skip   func()
	Undo   func()
}

// Resolve maps a key event to an intent. The bool result reports
// whether the event is consumed (default behavior suppressed).
//
// Suppression rules, in order: events from a focused text input never
// produce intents; ctrl/cmd+z is undo regardless of alt/shift; any
// other ctrl/cmd chord is reserved for the host; alt or shift suppress
// the remaining single-key bindings.
func Resolve(ev KeyEvent) (Intent, bool) {
	if ev.TextInputFocused {
		return IntentNone, false
	}
	if ev.CtrlOrCmd && strings.EqualFold(ev.Key, "z") {
		return IntentUndo, true
	}
	if ev.CtrlOrCmd || ev.Alt || ev.Shift {
		return IntentNone, false
	}
	switch strings.ToLower(ev.Key) {
	case "a", "arrowleft":
		return IntentPrev, true
	case "d", "arrowright":
		return IntentNext, true
	case "y":
		return IntentKeep, true
	case "n":
		return IntentRemove, true
	case "s":
		return IntentSkip, true
	}
	return IntentNone, false
}

// Dispatcher routes key events to at most one registered callback.
// It is single-owner state for the host event loop; Attach replaces
// any previous handler set so re-attaching on callback identity
// changes never leaves duplicates behind.
type Dispatcher struct {
	handlers Handlers
	attached bool
	enabled  bool
}

// NewDispatcher returns a detached, enabled dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{enabled: true}
}

// Attach registers the handler set, replacing any existing one.
func (d *Dispatcher) Attach(h Handlers) {
	d.handlers = h
	d.attached = true
}

// Detach removes the handler set. Subsequent events produce no
// intents and are not consumed.
func (d *Dispatcher) Detach() {
	d.handlers = Handlers{}
	d.attached = false
}

// SetEnabled toggles the session-level gate. While disabled the
// dispatcher produces no intents and consumes no events.
func (d *Dispatcher) SetEnabled(enabled bool) { d.enabled = enabled }

// Enabled reports the gate state.
func (d *Dispatcher) Enabled() bool { return d.enabled }

// Dispatch resolves the event and invokes the matching callback.
// It reports whether the event was consumed.
func (d *Dispatcher) Dispatch(ev KeyEvent) bool {
	if !d.attached || !d.enabled {
		return false
	}
	intent, consumed := Resolve(ev)
	if !consumed {
		return false
	}
	switch intent {
	case IntentPrev:
		if d.handlers.Prev != nil {
			d.handlers.Prev()
		}
	case IntentNext:
		if d.handlers.Next != nil {
			d.handlers.Next()
		}
	case IntentKeep:
		if d.handlers.Keep != nil {
			d.handlers.Keep()
		}
	case IntentRemove:
		if d.handlers.Remove != nil {
			d.handlers.Remove()
		}
	case IntentSkip:
		if d.handlers.Skip != nil {
			d.handlers.Skip()
		}
	case IntentUndo:
		if d.handlers.Undo != nil {
			d.handlers.Undo()
		}
	}
	return true
}
