package api

import (
	"context"
	"fmt"

	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/review"
)

// SessionRemote adapts the client to the review session's Remote
// interface. Every call is keyed by the item ID it receives; a late
// response never touches any other sample.
type SessionRemote struct {
	c *Client
}

// NewSessionRemote wraps the client for use by a review session.
func NewSessionRemote(c *Client) *SessionRemote {
	return &SessionRemote{c: c}
}

// Apply records a decision on the backend: keep and skip store a
// verdict, remove soft-deletes the sample.
func (r *SessionRemote) Apply(ctx context.Context, item review.ItemID, kind review.DecisionKind) error {
	id := string(item)
	switch kind {
	case review.DecisionKeep:
		return r.c.ReviewSample(ctx, id, model.VerdictKept)
	case review.DecisionSkip:
		return r.c.ReviewSample(ctx, id, model.VerdictSkipped)
	case review.DecisionRemove:
		return r.c.DeleteSample(ctx, id)
	default:
		return fmt.Errorf("unknown decision kind %v", kind)
	}
}

// Revert compensates an undone decision: verdicts are cleared, soft
// deletes are restored.
func (r *SessionRemote) Revert(ctx context.Context, item review.ItemID, kind review.DecisionKind) error {
	id := string(item)
	switch kind {
	case review.DecisionKeep, review.DecisionSkip:
		return r.c.ClearReview(ctx, id)
	case review.DecisionRemove:
		return r.c.RestoreSample(ctx, id)
	default:
		return fmt.Errorf("unknown decision kind %v", kind)
	}
}
