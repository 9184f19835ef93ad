package review

// DecisionKind is a triage verdict for one sample.
type DecisionKind int

const (
	DecisionKeep DecisionKind = iota
	DecisionRemove
	DecisionSkip
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionKeep:
		return "keep"
	case DecisionRemove:
		return "remove"
	case DecisionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Decision is one recorded verdict, tagged with the item it applied to
// and the cursor position at the time it was made. Immutable once
// recorded; removed from the log only by undo.
type Decision struct {
	Item        ItemID
	Kind        DecisionKind
	PriorCursor int
}

// Log is an append-only record of decisions. The only removal path is
// PopLast, which backs single-level undo. The log is not capped within
// a session.
type Log struct {
	entries []Decision
}

// Record appends a decision. Always succeeds.
func (l *Log) Record(item ItemID, kind DecisionKind, priorCursor int) {
	l.entries = append(l.entries, Decision{Item: item, Kind: kind, PriorCursor: priorCursor})
}

// PopLast removes and returns the most recently recorded decision.
// The second return is false when the log is empty; popping an empty
// log is not an error.
func (l *Log) PopLast() (Decision, bool) {
	if len(l.entries) == 0 {
		return Decision{}, false
	}
	d := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return d, true
}

// Len returns the number of recorded decisions.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of the recorded decisions in order.
func (l *Log) Entries() []Decision {
	out := make([]Decision, len(l.entries))
	copy(out, l.entries)
	return out
}

// Verdicts returns the effective decision per item, later entries
// winning. Undone decisions are absent because PopLast removed them.
func (l *Log) Verdicts() map[ItemID]DecisionKind {
	m := make(map[ItemID]DecisionKind, len(l.entries))
	for _, d := range l.entries {
		m[d.Item] = d.Kind
	}
	return m
}
