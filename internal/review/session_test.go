package review

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// fakeRemote records Apply/Revert calls and can be told to fail.
type fakeRemote struct {
	mu      sync.Mutex
	applies []Decision
	reverts []Decision
	fail    error
}

func (r *fakeRemote) Apply(_ context.Context, item ItemID, kind DecisionKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applies = append(r.applies, Decision{Item: item, Kind: kind})
	return r.fail
}

func (r *fakeRemote) Revert(_ context.Context, item ItemID, kind DecisionKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reverts = append(r.reverts, Decision{Item: item, Kind: kind})
	return r.fail
}

type fakeNotifier struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

func (n *fakeNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *fakeNotifier) NotifyError(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func newTestSession(t *testing.T, items ...ItemID) (*Session, *fakeRemote, *fakeNotifier) {
	t.Helper()
	remote := &fakeRemote{}
	notify := &fakeNotifier{}
	s, err := NewSession(context.Background(), items, remote, notify)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, remote, notify
}

func TestNewSessionEmptyList(t *testing.T) {
	_, err := NewSession(context.Background(), nil, &fakeRemote{}, &fakeNotifier{})
	if !errors.Is(err, ErrEmptyList) {
		t.Errorf("expected ErrEmptyList, got %v", err)
	}
}

func TestDecideAdvancesAndLogs(t *testing.T) {
	s, remote, _ := newTestSession(t, "s1", "s2", "s3")

	if err := s.Decide(DecisionKeep); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	s.Wait()

	if s.Pos() != 1 {
		t.Errorf("expected cursor 1, got %d", s.Pos())
	}
	log := s.Decisions()
	if len(log) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log))
	}
	want := Decision{Item: "s1", Kind: DecisionKeep, PriorCursor: 0}
	if log[0] != want {
		t.Errorf("expected %+v, got %+v", want, log[0])
	}
	if len(remote.applies) != 1 || remote.applies[0].Item != "s1" {
		t.Errorf("expected one apply for s1, got %+v", remote.applies)
	}
}

func TestUndoRestoresCursorAndLog(t *testing.T) {
	s, remote, notify := newTestSession(t, "s1", "s2", "s3")

	if err := s.Decide(DecisionRemove); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	s.Undo()
	s.Wait()

	if s.Pos() != 0 {
		t.Errorf("expected cursor restored to 0, got %d", s.Pos())
	}
	if s.LogLen() != 0 {
		t.Errorf("expected empty log after undo, got %d entries", s.LogLen())
	}
	if len(remote.reverts) != 1 || remote.reverts[0].Item != "s1" || remote.reverts[0].Kind != DecisionRemove {
		t.Errorf("expected one compensating call for s1 remove, got %+v", remote.reverts)
	}
	if len(notify.infos) != 1 || notify.infos[0] != "undid remove on s1" {
		t.Errorf("expected an undo toast, got %v", notify.infos)
	}
}

func TestUndoOnFreshSessionIsNoop(t *testing.T) {
	s, remote, notify := newTestSession(t, "s1", "s2")

	s.Undo()
	s.Undo()
	s.Wait()

	if s.Pos() != 0 || s.LogLen() != 0 {
		t.Errorf("undo on empty log changed state: pos=%d log=%d", s.Pos(), s.LogLen())
	}
	if len(remote.reverts) != 0 {
		t.Errorf("undo on empty log issued remote calls: %+v", remote.reverts)
	}
	if len(notify.errors) != 0 || len(notify.infos) != 0 {
		t.Errorf("undo on empty log raised notifications: %v %v", notify.errors, notify.infos)
	}
}

// Full scenario: decide, decide, undo, decide against a three item list,
// including the clamp at the final index.
func TestSessionEndToEnd(t *testing.T) {
	s, _, _ := newTestSession(t, "s1", "s2", "s3")

	if err := s.Decide(DecisionKeep); err != nil {
		t.Fatalf("decide keep: %v", err)
	}
	if s.Pos() != 1 || s.LogLen() != 1 {
		t.Fatalf("after keep: pos=%d log=%d", s.Pos(), s.LogLen())
	}

	if err := s.Decide(DecisionRemove); err != nil {
		t.Fatalf("decide remove: %v", err)
	}
	if s.Pos() != 2 || s.LogLen() != 2 {
		t.Fatalf("after remove: pos=%d log=%d", s.Pos(), s.LogLen())
	}

	s.Undo()
	if s.Pos() != 1 || s.LogLen() != 1 {
		t.Fatalf("after undo: pos=%d log=%d", s.Pos(), s.LogLen())
	}

	if err := s.Decide(DecisionSkip); err != nil {
		t.Fatalf("decide skip: %v", err)
	}
	s.Wait()

	if s.Pos() != 2 {
		t.Errorf("expected final cursor 2 (clamped), got %d", s.Pos())
	}
	if !s.AtEnd() {
		t.Error("expected AtEnd")
	}

	log := s.Decisions()
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	if log[0] != (Decision{Item: "s1", Kind: DecisionKeep, PriorCursor: 0}) {
		t.Errorf("unexpected first entry: %+v", log[0])
	}
	if log[1] != (Decision{Item: "s2", Kind: DecisionSkip, PriorCursor: 1}) {
		t.Errorf("unexpected second entry: %+v", log[1])
	}
}

// A failed remote mutation leaves the optimistic local state intact and
// only surfaces a notification.
func TestDecideRemoteFailureIsOptimistic(t *testing.T) {
	s, remote, notify := newTestSession(t, "s1", "s2")
	remote.fail = errors.New("backend unavailable")

	if err := s.Decide(DecisionRemove); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	s.Wait()

	if s.Pos() != 1 {
		t.Errorf("expected cursor advanced despite failure, got %d", s.Pos())
	}
	if s.LogLen() != 1 {
		t.Errorf("expected log entry despite failure, got %d", s.LogLen())
	}
	notify.mu.Lock()
	defer notify.mu.Unlock()
	if len(notify.errors) != 1 {
		t.Errorf("expected one failure toast, got %v", notify.errors)
	}
}

// Undo immediately after any decide restores the pre-decide cursor and
// removes the matching log entry, from any starting position.
func TestUndoInverseProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "len")
		items := make([]ItemID, n)
		for i := range items {
			items[i] = ItemID(rune('a' + i%26))
		}
		s, err := NewSession(context.Background(), items, &fakeRemote{}, &fakeNotifier{})
		if err != nil {
			rt.Fatalf("NewSession: %v", err)
		}

		// Random walk to an arbitrary position with some decisions made.
		steps := rapid.IntRange(0, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				s.Next()
			case 1:
				s.Prev()
			case 2:
				_ = s.Decide(DecisionKeep)
			case 3:
				s.Undo()
			}
		}

		pos := s.Pos()
		logLen := s.LogLen()
		kind := DecisionKind(rapid.IntRange(0, 2).Draw(rt, "kind"))

		if err := s.Decide(kind); err != nil {
			rt.Fatalf("Decide: %v", err)
		}
		s.Undo()

		if s.Pos() != pos {
			rt.Fatalf("undo did not restore cursor: expected %d, got %d", pos, s.Pos())
		}
		if s.LogLen() != logLen {
			rt.Fatalf("undo did not restore log: expected %d entries, got %d", logLen, s.LogLen())
		}
		s.Wait()
	})
}
