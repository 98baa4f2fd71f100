// Package sse streams newly stored check-ins to dashboard clients.
package sse

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/moodline/pkg/models"
)

const (
	// WriteTimeout bounds a single write to one client.
	WriteTimeout = 2 * time.Second

	// HeartbeatInterval keeps idle connections open through proxies.
	HeartbeatInterval = 25 * time.Second
)

// Event types.
const (
	EventConnected = "connected"
	EventEntry     = "entry"
)

// Event is one message on the stream.
type Event struct {
	Type     string        `json:"type"`
	ClientID string        `json:"clientId,omitempty"`
	Entry    *models.Entry `json:"entry,omitempty"`
}

// Client represents a connected SSE client.
type Client struct {
	Writer  http.ResponseWriter
	Flusher http.Flusher
	Done    chan struct{}
	ID      string

	writeMu  sync.Mutex
	doneOnce sync.Once
}

func (c *Client) close() {
	c.doneOnce.Do(func() { close(c.Done) })
}

func (c *Client) write(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.Writer.Write(message); err != nil {
		return err
	}
	c.Flusher.Flush()
	return nil
}

// Broadcaster manages SSE client connections and message broadcasting.
type Broadcaster struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]*Client),
	}
}

// AddClient adds a new SSE client connection.
func (b *Broadcaster) AddClient(w http.ResponseWriter) (*Client, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	client := &Client{
		ID:      uuid.NewString(),
		Writer:  w,
		Flusher: flusher,
		Done:    make(chan struct{}),
	}

	b.mu.Lock()
	b.clients[client.ID] = client
	clientCount := len(b.clients)
	b.mu.Unlock()

	log.Debug().
		Str("clientId", client.ID).
		Int("totalClients", clientCount).
		Msg("SSE client connected")

	return client, nil
}

// RemoveClient removes a client connection. It is safe to call more than once.
func (b *Broadcaster) RemoveClient(client *Client) {
	b.mu.Lock()
	delete(b.clients, client.ID)
	clientCount := len(b.clients)
	b.mu.Unlock()

	client.close()

	log.Debug().
		Str("clientId", client.ID).
		Int("totalClients", clientCount).
		Msg("SSE client disconnected")
}

// PublishEntry announces a newly stored entry.
func (b *Broadcaster) PublishEntry(entry *models.Entry) {
	b.Broadcast(Event{Type: EventEntry, Entry: entry})
}

// Broadcast sends an event to all connected clients.
// Stale clients are dropped after WriteTimeout.
func (b *Broadcaster) Broadcast(event Event) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	b.broadcastRaw([]byte(fmt.Sprintf("data: %s\n\n", jsonData)))
}

func (b *Broadcaster) broadcastRaw(message []byte) {
	b.mu.RLock()
	clients := make([]*Client, 0, len(b.clients))
	for _, client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	deadClientsCh := make(chan *Client, len(clients))
	var wg sync.WaitGroup

	for _, client := range clients {
		select {
		case <-client.Done:
			continue
		default:
		}
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			b.writeToClient(c, message, deadClientsCh)
		}(client)
	}

	wg.Wait()
	close(deadClientsCh)

	for client := range deadClientsCh {
		log.Debug().Str("clientId", client.ID).Msg("Dead SSE client removed")
		b.RemoveClient(client)
	}
}

// writeToClient writes a message to a single client with timeout.
func (b *Broadcaster) writeToClient(client *Client, message []byte, deadCh chan<- *Client) {
	done := make(chan error, 1)
	go func() {
		done <- client.write(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Debug().Str("clientId", client.ID).Err(err).Msg("Failed to write to SSE client")
			deadCh <- client
		}
	case <-time.After(WriteTimeout):
		log.Warn().
			Str("clientId", client.ID).
			Dur("timeout", WriteTimeout).
			Msg("SSE write timed out, marking client for removal")
		deadCh <- client
	case <-client.Done:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// HandleSSE streams events until the request context ends.
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	client, err := b.AddClient(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer b.RemoveClient(client)

	hello, _ := json.Marshal(Event{Type: EventConnected, ClientID: client.ID})
	if err := client.write([]byte(fmt.Sprintf("data: %s\n\n", hello))); err != nil {
		return
	}

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.Done:
			return
		case <-ticker.C:
			if err := client.write([]byte(": ping\n\n")); err != nil {
				return
			}
		}
	}
}
