package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
	"github.com/preston-bernstein/matches-service/internal/metrics"
	"github.com/preston-bernstein/matches-service/internal/testutil"
)

func startServer(t *testing.T, hub *Hub, snapshot func() matchstore.State) string {
	t.Helper()
	srv := httptest.NewServer(hub.Handler(snapshot))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func stateWith(ids ...string) matchstore.State {
	st := matchstore.State{Matches: []matches.Match{}, IsAPIAvailable: true}
	for _, id := range ids {
		st.Matches = append(st.Matches, matches.Match{ID: id, HomeTeam: "Home", AwayTeam: "Away"})
	}
	return st
}

func TestHandlerSendsCurrentStateOnConnect(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	hub := NewHub(0, nil, nil)
	hub.now = testutil.NowAt(at)
	url := startServer(t, hub, func() matchstore.State { return stateWith("m1") })

	conn := dial(t, url)
	msg := readMessage(t, conn)

	assert.Equal(t, MessageTypeState, msg.Type)
	assert.True(t, msg.Timestamp.Equal(at))
	require.Len(t, msg.Data.Matches, 1)
	assert.Equal(t, "m1", msg.Data.Matches[0].ID)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestPublishReachesEveryClient(t *testing.T) {
	hub := NewHub(0, nil, nil)
	url := startServer(t, hub, func() matchstore.State { return stateWith() })

	a := dial(t, url)
	b := dial(t, url)
	readMessage(t, a)
	readMessage(t, b)

	advisory := stateWith("m2")
	advisory.IsAPIAvailable = false
	advisory.Error = matchstore.AdvisoryMessage
	hub.Publish(advisory)

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.False(t, msg.Data.IsAPIAvailable)
		assert.Equal(t, matchstore.AdvisoryMessage, msg.Data.Error)
		require.Len(t, msg.Data.Matches, 1)
	}
}

func TestSnapshotRequestResendsState(t *testing.T) {
	hub := NewHub(0, nil, nil)
	url := startServer(t, hub, func() matchstore.State { return stateWith("m1", "m2") })

	conn := dial(t, url)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": MessageTypeSnapshot}))
	msg := readMessage(t, conn)
	assert.Len(t, msg.Data.Matches, 2)
}

func TestHandlerRejectsOverCapacity(t *testing.T) {
	hub := NewHub(1, nil, nil)
	url := startServer(t, hub, func() matchstore.State { return stateWith() })

	first := dial(t, url)
	readMessage(t, first)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCloseDisconnectsClients(t *testing.T) {
	rec := metrics.NewRecorder()
	hub := NewHub(0, nil, rec)
	url := startServer(t, hub, func() matchstore.State { return stateWith() })

	conn := dial(t, url)
	readMessage(t, conn)
	assert.Equal(t, 1, rec.StoreSnapshot().StreamClients)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, rec.StoreSnapshot().StreamClients)
	assert.False(t, hub.CanAccept())
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub(0, nil, nil)
	url := startServer(t, hub, func() matchstore.State { return stateWith() })

	conn := dial(t, url)
	readMessage(t, conn)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestPublishWithoutClientsIsNoop(t *testing.T) {
	hub := NewHub(0, nil, nil)
	hub.Publish(stateWith("m1"))
	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, hub.CanAccept())
}

func TestPublishWaitsForInFlightSnapshot(t *testing.T) {
	hub := NewHub(0, nil, nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	c := &Client{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
		snapshot: func() matchstore.State {
			close(entered)
			<-release
			return stateWith("old")
		},
	}
	require.True(t, hub.register(c))

	queued := make(chan struct{})
	go func() {
		c.queueSnapshot()
		close(queued)
	}()
	<-entered

	published := make(chan struct{})
	go func() {
		hub.Publish(stateWith("old", "new"))
		close(published)
	}()

	select {
	case <-published:
		t.Fatalf("publish overtook an in-flight snapshot")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-queued
	<-published

	var ids [][]string
	for i := 0; i < 2; i++ {
		var msg Message
		require.NoError(t, json.Unmarshal(<-c.send, &msg))
		var got []string
		for _, m := range msg.Data.Matches {
			got = append(got, m.ID)
		}
		ids = append(ids, got)
	}
	assert.Equal(t, [][]string{{"old"}, {"old", "new"}}, ids)
}
