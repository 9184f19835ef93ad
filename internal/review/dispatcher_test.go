package review

import "testing"

func TestResolveKeyTable(t *testing.T) {
	tests := []struct {
		name     string
		ev       KeyEvent
		intent   Intent
		consumed bool
	}{
		{"prev a", KeyEvent{Key: "a"}, IntentPrev, true},
		{"prev uppercase", KeyEvent{Key: "A"}, IntentPrev, true},
		{"prev arrow", KeyEvent{Key: "arrowleft"}, IntentPrev, true},
		{"next d", KeyEvent{Key: "d"}, IntentNext, true},
		{"next arrow", KeyEvent{Key: "ArrowRight"}, IntentNext, true},
		{"keep", KeyEvent{Key: "y"}, IntentKeep, true},
		{"remove", KeyEvent{Key: "n"}, IntentRemove, true},
		{"skip", KeyEvent{Key: "s"}, IntentSkip, true},
		{"unmatched", KeyEvent{Key: "x"}, IntentNone, false},
		{"undo lower", KeyEvent{Key: "z", CtrlOrCmd: true}, IntentUndo, true},
		{"undo upper", KeyEvent{Key: "Z", CtrlOrCmd: true}, IntentUndo, true},
		{"undo with shift held", KeyEvent{Key: "z", CtrlOrCmd: true, Shift: true}, IntentUndo, true},
		{"undo with alt held", KeyEvent{Key: "z", CtrlOrCmd: true, Alt: true}, IntentUndo, true},
		{"reserved chord", KeyEvent{Key: "c", CtrlOrCmd: true}, IntentNone, false},
		{"shift suppresses", KeyEvent{Key: "y", Shift: true}, IntentNone, false},
		{"alt suppresses", KeyEvent{Key: "d", Alt: true}, IntentNone, false},
		{"text input suppresses", KeyEvent{Key: "y", TextInputFocused: true}, IntentNone, false},
		{"text input suppresses undo", KeyEvent{Key: "z", CtrlOrCmd: true, TextInputFocused: true}, IntentNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, consumed := Resolve(tt.ev)
			if intent != tt.intent {
				t.Errorf("intent: expected %v, got %v", tt.intent, intent)
			}
			if consumed != tt.consumed {
				t.Errorf("consumed: expected %v, got %v", tt.consumed, consumed)
			}
		})
	}
}

func TestDispatcherInvokesOneCallback(t *testing.T) {
	d := NewDispatcher()

	var calls []string
	d.Attach(Handlers{
		Keep:   func() { calls = append(calls, "keep") },
		Remove: func() { calls = append(calls, "remove") },
		Undo:   func() { calls = append(calls, "undo") },
	})

	if !d.Dispatch(KeyEvent{Key: "y"}) {
		t.Error("expected keep event to be consumed")
	}
	if !d.Dispatch(KeyEvent{Key: "z", CtrlOrCmd: true, Shift: true}) {
		t.Error("expected ctrl+shift+z to be consumed")
	}
	d.Dispatch(KeyEvent{Key: "x"})

	want := []string{"keep", "undo"}
	if len(calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], calls[i])
		}
	}
}

func TestDispatcherDisabled(t *testing.T) {
	d := NewDispatcher()

	fired := false
	d.Attach(Handlers{Keep: func() { fired = true }})
	d.SetEnabled(false)

	if d.Dispatch(KeyEvent{Key: "y"}) {
		t.Error("disabled dispatcher must not consume events")
	}
	if fired {
		t.Error("disabled dispatcher must not invoke callbacks")
	}

	d.SetEnabled(true)
	if !d.Dispatch(KeyEvent{Key: "y"}) || !fired {
		t.Error("re-enabled dispatcher should dispatch again")
	}
}

func TestDispatcherReattachReplaces(t *testing.T) {
	d := NewDispatcher()

	first, second := 0, 0
	d.Attach(Handlers{Keep: func() { first++ }})
	d.Attach(Handlers{Keep: func() { second++ }})

	d.Dispatch(KeyEvent{Key: "y"})
	if first != 0 || second != 1 {
		t.Errorf("re-attach must replace handlers: first=%d second=%d", first, second)
	}

	d.Detach()
	if d.Dispatch(KeyEvent{Key: "y"}) {
		t.Error("detached dispatcher must not consume events")
	}
	if second != 1 {
		t.Errorf("detached dispatcher invoked a callback: second=%d", second)
	}
}
