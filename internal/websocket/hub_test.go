package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(ServeWS(hub, slog.New(slog.NewJSONHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestClientReceivesConnectionMessage(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, hub)

	msg := readMessage(t, conn)
	assert.Equal(t, TypeConnection, msg["type"])
}

func TestBroadcastDataUpdateReachesClients(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, hub)
	readMessage(t, conn) // connection greeting

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.BroadcastDataUpdate([]string{"qa", "refunds"}, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	msg := readMessage(t, conn)
	assert.Equal(t, TypeDataUpdate, msg["type"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"qa", "refunds"}, data["sections"])
	assert.Equal(t, "2024-03-01T12:00:00Z", data["loaded_at"])
}

func TestClientCountDropsOnDisconnect(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, hub)
	readMessage(t, conn)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestServeWSRejectsPlainGet(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(ServeWS(hub, slog.New(slog.NewJSONHandler(io.Discard, nil))))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
