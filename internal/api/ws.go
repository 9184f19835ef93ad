package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tessellate-ai/samplerev/internal/model"
)

// Event types published on the import-task stream.
const (
	wsMsgProgress  = "progress"
	wsMsgCompleted = "completed"
	wsMsgFailed    = "failed"
	wsMsgError     = "error"
)

// wsMessage is the envelope for stream messages.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ImportEvent is one update from the import-task stream. Err is set
// for error events; Task is set for progress and terminal events.
type ImportEvent struct {
	Type string
	Task model.ImportTask
	Err  string
}

// Terminal reports whether no further events will follow.
func (e ImportEvent) Terminal() bool {
	return e.Type == wsMsgCompleted || e.Type == wsMsgFailed || e.Type == wsMsgError
}

// WatchImportTask subscribes to live progress for an import task. The
// returned channel is closed after a terminal event, on read error, or
// when ctx is done. Callers that cannot establish the socket should
// fall back to polling GetImportTask.
func (c *Client) WatchImportTask(ctx context.Context, taskID string) (<-chan ImportEvent, error) {
	u := *c.base
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/ws/import-tasks/" + url.PathEscape(taskID)

	header := make(map[string][]string)
	if c.token != "" {
		header["Authorization"] = []string{"Bearer " + c.token}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return nil, fmt.Errorf("dialing import task stream: %w", err)
	}

	events := make(chan ImportEvent)
	go func() {
		defer close(events)
		defer conn.Close()

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					events <- ImportEvent{Type: wsMsgError, Err: err.Error()}
				}
				return
			}

			var msg wsMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				events <- ImportEvent{Type: wsMsgError, Err: "malformed stream message: " + err.Error()}
				return
			}

			ev := ImportEvent{Type: msg.Type}
			switch msg.Type {
			case wsMsgProgress, wsMsgCompleted, wsMsgFailed:
				if err := json.Unmarshal(msg.Data, &ev.Task); err != nil {
					ev = ImportEvent{Type: wsMsgError, Err: "malformed task payload: " + err.Error()}
				}
			case wsMsgError:
				var e apiError
				_ = json.Unmarshal(msg.Data, &e)
				ev.Err = e.Detail
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.Terminal() {
				return
			}
		}
	}()
	return events, nil
}
