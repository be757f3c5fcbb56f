package logs_stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"
	test_utils "extlog/internal/util/testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	mu       sync.Mutex
	payloads [][]byte
	sendErr  error
	closed   bool
	received chan struct{}
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{received: make(chan struct{}, 16)}
}

func (s *fakeSubscriber) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendErr != nil {
		return s.sendErr
	}
	s.payloads = append(s.payloads, payload)
	s.received <- struct{}{}
	return nil
}

func (s *fakeSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *fakeSubscriber) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]string, len(s.payloads))
	for i, payload := range s.payloads {
		var entry logs_core.LogEntry
		_ = json.Unmarshal(payload, &entry)
		messages[i] = entry.Message
	}
	return messages
}

func (s *fakeSubscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func waitForMessages(t *testing.T, subscriber *fakeSubscriber, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		select {
		case <-subscriber.received:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d", i+1)
		}
	}
}

func Test_Hub_StoredEntry_IsSentToMatchingSubscribers(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	defer hub.Close()

	store, _ := logs_core.CreateTestLogStore(10)
	store.AddListener(hub)

	everything := newFakeSubscriber()
	errorsOnly := newFakeSubscriber()
	hub.Register("", everything)
	hub.Register(logs_core.LogLevelError, errorsOnly)

	ctx := context.Background()
	store.Info(ctx, "info entry", nil)
	store.Error(ctx, "error entry", nil)

	waitForMessages(t, everything, 2)
	waitForMessages(t, errorsOnly, 1)

	assert.Equal(t, []string{"info entry", "error entry"}, everything.messages())
	assert.Equal(t, []string{"error entry"}, errorsOnly.messages())
}

func Test_Hub_FilteredEntry_IsNotStreamed(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	defer hub.Close()

	store, _ := logs_core.CreateTestLogStore(10)
	store.AddListener(hub)

	subscriber := newFakeSubscriber()
	hub.Register("", subscriber)

	ctx := context.Background()
	store.Debug(ctx, "filtered", nil)
	store.Info(ctx, "stored", nil)

	waitForMessages(t, subscriber, 1)
	assert.Equal(t, []string{"stored"}, subscriber.messages())
}

func Test_Hub_FailingSubscriber_IsClosedAndRemoved(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	defer hub.Close()

	broken := newFakeSubscriber()
	broken.sendErr = errors.New("broken pipe")
	healthy := newFakeSubscriber()
	hub.Register("", broken)
	hub.Register("", healthy)

	hub.OnLogStored(&logs_core.LogEntry{Level: logs_core.LogLevelInfo, Message: "first"})
	hub.OnLogStored(&logs_core.LogEntry{Level: logs_core.LogLevelInfo, Message: "second"})

	waitForMessages(t, healthy, 2)
	assert.True(t, broken.isClosed())
}

func Test_Hub_Close_DisconnectsSubscribers(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	subscriber := newFakeSubscriber()
	hub.Register("", subscriber)

	hub.Close()
	hub.Close()

	assert.True(t, subscriber.isClosed())
	assert.NotPanics(t, func() {
		hub.OnLogStored(&logs_core.LogEntry{Level: logs_core.LogLevelInfo})
		hub.Unregister("", subscriber)
	})
}

func Test_StreamLogs_WebsocketClient_ReceivesStoredEntries(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	defer hub.Close()

	store, _ := logs_core.CreateTestLogStore(10)
	store.AddListener(hub)

	router := test_utils.CreateTestRouter(nil, NewStreamController(hub, logger.GetLogger()))
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/logs/stream?level=warn"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the hub registers the client asynchronously after the upgrade
	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, 5*time.Second, 10*time.Millisecond)

	store.Info(context.Background(), "not streamed", nil)
	store.Warn(context.Background(), "captcha detected", nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var entry logs_core.LogEntry
	require.NoError(t, json.Unmarshal(payload, &entry))
	assert.Equal(t, "captcha detected", entry.Message)
	assert.Equal(t, logs_core.LogLevelWarn, entry.Level)
}

func Test_StreamLogs_InvalidLevel_ReturnsBadRequest(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	defer hub.Close()

	router := test_utils.CreateTestRouter(nil, NewStreamController(hub, logger.GetLogger()))

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/logs/stream?level=loud", "", http.StatusBadRequest)

	assert.Contains(t, string(resp.Body), "Invalid log level")
}
