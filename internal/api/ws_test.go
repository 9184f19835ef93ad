package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-ai/samplerev/internal/model"
)

func TestWatchImportTask(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/ws/import-tasks/t1", r.URL.Path)

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		send := func(typ string, task model.ImportTask) {
			data, _ := json.Marshal(task)
			_ = conn.WriteJSON(wsMessage{Type: typ, Data: data})
		}
		send(wsMsgProgress, model.ImportTask{ID: "t1", Status: model.ImportRunning, Progress: 10, TotalRows: 20})
		send(wsMsgProgress, model.ImportTask{ID: "t1", Status: model.ImportRunning, Progress: 20, TotalRows: 20})
		send(wsMsgCompleted, model.ImportTask{ID: "t1", Status: model.ImportCompleted, Created: 18, Skipped: 2})
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := c.WatchImportTask(ctx, "t1")
	require.NoError(t, err)

	var got []ImportEvent
	for ev := range events {
		got = append(got, ev)
	}

	require.Len(t, got, 3)
	assert.Equal(t, wsMsgProgress, got[0].Type)
	assert.Equal(t, 10, got[0].Task.Progress)
	assert.Equal(t, wsMsgCompleted, got[2].Type)
	assert.True(t, got[2].Terminal())
	assert.Equal(t, 18, got[2].Task.Created)
}
