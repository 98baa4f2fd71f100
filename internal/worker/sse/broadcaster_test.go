package sse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/thebtf/moodline/pkg/models"
)

// BroadcasterSuite is a test suite for Broadcaster operations.
type BroadcasterSuite struct {
	suite.Suite
	broadcaster *Broadcaster
}

func (s *BroadcasterSuite) SetupTest() {
	s.broadcaster = NewBroadcaster()
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

// mockResponseWriter implements http.ResponseWriter and http.Flusher for testing.
type mockResponseWriter struct {
	header   http.Header
	body     []byte
	failNext bool
	mu       sync.Mutex
}

func newMockResponseWriter() *mockResponseWriter {
	return &mockResponseWriter{header: make(http.Header)}
}

func (m *mockResponseWriter) Header() http.Header { return m.header }

func (m *mockResponseWriter) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		return 0, errors.New("broken pipe")
	}
	m.body = append(m.body, data...)
	return len(data), nil
}

func (m *mockResponseWriter) WriteHeader(int) {}

func (m *mockResponseWriter) Flush() {}

func (m *mockResponseWriter) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.body)
}

// TestAddRemoveClient tests the client lifecycle.
func (s *BroadcasterSuite) TestAddRemoveClient() {
	client, err := s.broadcaster.AddClient(newMockResponseWriter())
	s.Require().NoError(err)
	s.Len(client.ID, 36)
	s.Equal(1, s.broadcaster.ClientCount())

	s.broadcaster.RemoveClient(client)
	s.broadcaster.RemoveClient(client)
	s.Equal(0, s.broadcaster.ClientCount())

	select {
	case <-client.Done:
	default:
		s.Fail("Done channel should be closed")
	}
}

// TestPublishEntry tests that every client receives the entry event.
func (s *BroadcasterSuite) TestPublishEntry() {
	writers := make([]*mockResponseWriter, 3)
	for i := range writers {
		writers[i] = newMockResponseWriter()
		_, err := s.broadcaster.AddClient(writers[i])
		s.Require().NoError(err)
	}

	mood := 4
	s.broadcaster.PublishEntry(&models.Entry{ID: "e1", RawText: "4, M", Channel: "sms", Mood: &mood})

	for i, w := range writers {
		body := w.String()
		s.True(strings.HasPrefix(body, "data: "), "client %d", i)
		s.True(strings.HasSuffix(body, "\n\n"), "client %d", i)
		s.Contains(body, `"type":"entry"`)
		s.Contains(body, `"id":"e1"`)
		s.Contains(body, `"mood":4`)
	}
}

// TestBroadcastNoClients tests broadcasting with no clients.
func (s *BroadcasterSuite) TestBroadcastNoClients() {
	s.NotPanics(func() { s.broadcaster.PublishEntry(&models.Entry{ID: "e1"}) })
}

// TestDeadClientRemoved tests that a failing writer is dropped.
func (s *BroadcasterSuite) TestDeadClientRemoved() {
	healthy := newMockResponseWriter()
	broken := newMockResponseWriter()
	broken.failNext = true

	_, err := s.broadcaster.AddClient(healthy)
	s.Require().NoError(err)
	_, err = s.broadcaster.AddClient(broken)
	s.Require().NoError(err)

	s.broadcaster.Broadcast(Event{Type: EventEntry})

	s.Equal(1, s.broadcaster.ClientCount())
	s.Contains(healthy.String(), `"type":"entry"`)
}

type nonFlusher struct{ http.ResponseWriter }

func TestAddClient_RequiresFlusher(t *testing.T) {
	b := NewBroadcaster()
	_, err := b.AddClient(nonFlusher{httptest.NewRecorder()})
	assert.Error(t, err)
	assert.Equal(t, 0, b.ClientCount())
}

func TestHandleSSE(t *testing.T) {
	b := NewBroadcaster()
	rec := httptest.NewRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		b.HandleSSE(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("HandleSSE did not return after cancel")
	}

	assert.Equal(t, 0, b.ClientCount())
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"type":"connected"`)
}

func TestConcurrentBroadcast(t *testing.T) {
	b := NewBroadcaster()
	for i := 0; i < 10; i++ {
		_, err := b.AddClient(newMockResponseWriter())
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Broadcast(Event{Type: EventEntry})
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, b.ClientCount())
}
