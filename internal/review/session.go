package review

import (
	"context"
	"fmt"
	"sync"
)

// Remote issues the backend mutations behind review decisions.
// Implementations must key every call by the item ID passed in, never
// by session-current state: calls for different items may complete out
// of order and a late response must still land on its original item.
type Remote interface {
	// Apply records the decision for item on the backend.
	Apply(ctx context.Context, item ItemID, kind DecisionKind) error
	// Revert is the compensating call for an undone decision.
	Revert(ctx context.Context, item ItemID, kind DecisionKind) error
}

// Notifier surfaces transient, non-blocking user messages (toasts).
// Implementations must be safe for concurrent use: failure
// notifications arrive from remote-call goroutines.
type Notifier interface {
	Notify(msg string)
	NotifyError(msg string)
}

// Session composes the cursor and decision log and drives remote
// mutations. Navigation is optimistic: the cursor advances and the log
// grows as soon as a decision is made, and a later remote failure is
// surfaced as a toast without rolling either back. Reconciliation is
// manual (undo or retry).
//
// The cursor and log are owned exclusively by the session; callers
// read them through the accessor methods only.
type Session struct {
	cursor *Cursor
	log    Log
	remote Remote
	notify Notifier

	ctx      context.Context
	inflight sync.WaitGroup
}

// NewSession starts a review session over items. The list must be
// non-empty; ErrEmptyList is returned otherwise. ctx bounds all remote
// calls issued by the session.
func NewSession(ctx context.Context, items []ItemID, remote Remote, notify Notifier) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyList
	}
	return &Session{
		cursor: NewCursor(items),
		remote: remote,
		notify: notify,
		ctx:    ctx,
	}, nil
}

// Decide records a verdict for the current item, fires the remote
// mutation, and advances the cursor. The cursor moves regardless of
// the remote outcome.
func (s *Session) Decide(kind DecisionKind) error {
	item, err := s.cursor.Current()
	if err != nil {
		return err
	}
	prior := s.cursor.Pos()
	s.log.Record(item, kind, prior)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.remote.Apply(s.ctx, item, kind); err != nil {
			s.notify.NotifyError(fmt.Sprintf("%s %s failed: %v", kind, item, err))
		}
	}()

	s.cursor.Next()
	return nil
}

// Undo pops the last decision, restores the cursor to the position it
// had when that decision was made, posts a confirmation toast, and
// fires the compensating remote call. With an empty log it is a no-op; repeated undo presses are
// harmless. A failed compensating call is surfaced as a toast while
// the local restoration stands.
func (s *Session) Undo() {
	d, ok := s.log.PopLast()
	if !ok {
		return
	}
	// PriorCursor was a valid index of this same fixed list.
	if err := s.cursor.JumpTo(d.PriorCursor); err != nil {
		s.notify.NotifyError(fmt.Sprintf("undo: %v", err))
		return
	}
	s.notify.Notify(fmt.Sprintf("undid %s on %s", d.Kind, d.Item))

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.remote.Revert(s.ctx, d.Item, d.Kind); err != nil {
			s.notify.NotifyError(fmt.Sprintf("undo %s %s failed: %v", d.Kind, d.Item, err))
		}
	}()
}

// Next advances the cursor, clamped at the last item.
func (s *Session) Next() int { return s.cursor.Next() }

// Prev retreats the cursor, clamped at index 0.
func (s *Session) Prev() int { return s.cursor.Prev() }

// JumpTo moves the cursor to index; OutOfRangeError is recoverable.
func (s *Session) JumpTo(index int) error { return s.cursor.JumpTo(index) }

// Current returns the item under the cursor.
func (s *Session) Current() (ItemID, error) { return s.cursor.Current() }

// Pos returns the cursor index.
func (s *Session) Pos() int { return s.cursor.Pos() }

// Len returns the number of items under review.
func (s *Session) Len() int { return s.cursor.Len() }

// AtEnd reports whether the cursor cannot advance further. The caller
// decides what to show; the session forces no transition.
func (s *Session) AtEnd() bool { return s.cursor.AtEnd() }

// Items returns the fixed review list.
func (s *Session) Items() []ItemID { return s.cursor.Items() }

// LogLen returns the number of recorded decisions.
func (s *Session) LogLen() int { return s.log.Len() }

// Decisions returns the recorded decisions in order.
func (s *Session) Decisions() []Decision { return s.log.Entries() }

// Verdicts returns the effective verdict per item for display.
func (s *Session) Verdicts() map[ItemID]DecisionKind { return s.log.Verdicts() }

// Wait blocks until all in-flight remote calls have completed. Used
// on teardown and by tests; the interactive path never calls it.
func (s *Session) Wait() { s.inflight.Wait() }
