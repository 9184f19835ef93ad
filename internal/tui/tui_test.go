package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/review"
)

type stubRemote struct{}

func (stubRemote) Apply(context.Context, review.ItemID, review.DecisionKind) error  { return nil }
func (stubRemote) Revert(context.Context, review.ItemID, review.DecisionKind) error { return nil }

type stubSource struct{}

func (stubSource) GetSample(_ context.Context, id string) (*model.Sample, error) {
	return &model.Sample{ID: id, FileName: id + ".jpg"}, nil
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m, err := New(context.Background(), model.Dataset{Name: "test"},
		[]review.ItemID{"s1", "s2", "s3"}, stubRemote{}, stubSource{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.Msg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "ctrl+z":
			msg = tea.KeyMsg{Type: tea.KeyCtrlZ}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		newM, _ := m.Update(msg)
		m = newM.(Model)
	}
	return m
}

func TestNavigationKeys(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "d")
	if m.session.Pos() != 1 {
		t.Errorf("expected pos 1 after d, got %d", m.session.Pos())
	}

	m = press(t, m, "right", "right")
	if m.session.Pos() != 2 {
		t.Errorf("expected pos clamped at 2, got %d", m.session.Pos())
	}

	m = press(t, m, "a", "left", "left")
	if m.session.Pos() != 0 {
		t.Errorf("expected pos clamped at 0, got %d", m.session.Pos())
	}
}

func TestDecisionKeysAdvanceAndLog(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "y", "n")
	if m.session.Pos() != 2 {
		t.Errorf("expected pos 2 after two decisions, got %d", m.session.Pos())
	}

	log := m.session.Decisions()
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	if log[0].Kind != review.DecisionKeep || log[1].Kind != review.DecisionRemove {
		t.Errorf("unexpected decisions: %+v", log)
	}

	m = press(t, m, "ctrl+z")
	if m.session.Pos() != 1 || m.session.LogLen() != 1 {
		t.Errorf("undo: expected pos 1 log 1, got pos %d log %d", m.session.Pos(), m.session.LogLen())
	}
	m.session.Wait()
}

func TestSearchFocusSuppressesShortcuts(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "/")
	if !m.search.Focused() {
		t.Fatal("expected search input focused after /")
	}

	// These are review shortcuts when unfocused; here they must type.
	m = press(t, m, "y", "n", "s")
	if m.session.LogLen() != 0 {
		t.Errorf("typing in search triggered decisions: %d", m.session.LogLen())
	}
	if m.session.Pos() != 0 {
		t.Errorf("typing in search moved cursor to %d", m.session.Pos())
	}

	m = press(t, m, "esc")
	if m.search.Focused() {
		t.Error("expected search blurred after esc")
	}
}

func TestSearchJumps(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "/", "s", "3", "enter")
	if m.session.Pos() != 2 {
		t.Errorf("expected jump to index 2, got %d", m.session.Pos())
	}
}

func TestHelpPausesDispatcher(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatal("expected help shown")
	}

	m = press(t, m, "y")
	if m.session.LogLen() != 0 {
		t.Error("decision fired while help open")
	}

	m = press(t, m, "?", "y")
	if m.session.LogLen() != 1 {
		t.Error("decision did not fire after closing help")
	}
	m.session.Wait()
}

func TestQuitDetaches(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = newM.(Model)
	if !m.quitting {
		t.Error("expected quitting state")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}

	// Keys after detach must be inert.
	m = press(t, m, "y")
	if m.session.LogLen() != 0 {
		t.Error("decision fired after detach")
	}
}
