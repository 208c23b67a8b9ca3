package observer

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/blobcaller/ecs"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// Message is one world event as sent to observers.
type Message struct {
	Tick    uint64 `json:"tick"`
	Kind    string `json:"kind"`
	Subject uint64 `json:"subject"`
	Other   uint64 `json:"other,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Encode converts drained world events into observer messages.
func Encode(tick uint64, events []ecs.Event) []Message {
	out := make([]Message, 0, len(events))
	for _, evt := range events {
		out = append(out, Message{
			Tick:    tick,
			Kind:    string(evt.Kind),
			Subject: uint64(evt.Subject),
			Other:   uint64(evt.Other),
			Detail:  evt.Detail,
		})
	}
	return out
}

// Server streams world events to websocket observers. Broadcast is called
// from the tick goroutine; slow clients drop messages rather than stall it.
type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[chan []byte]struct{}
	latest  []byte
}

func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[chan []byte]struct{}),
	}
}

// ClientCount reports connected observers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends the events of one tick to every observer.
func (s *Server) Broadcast(tick uint64, events []ecs.Event) {
	if s == nil || len(events) == 0 {
		return
	}
	b, err := json.Marshal(Encode(tick, events))
	if err != nil {
		s.log.Printf("observer: encode tick %d: %v", tick, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.clients {
		select {
		case ch <- b:
		default:
			// Drop under load; observers are best effort.
		}
	}
}

// Publish stores the snapshot served by SnapshotHandler.
func (s *Server) Publish(snap Snapshot) {
	if s == nil {
		return
	}
	b, err := json.Marshal(snap)
	if err != nil {
		s.log.Printf("observer: encode snapshot %d: %v", snap.Tick, err)
		return
	}
	s.mu.Lock()
	s.latest = b
	s.mu.Unlock()
}

// SnapshotHandler serves the most recently published snapshot as JSON.
func (s *Server) SnapshotHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		b := s.latest
		s.mu.Unlock()
		if b == nil {
			http.Error(rw, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(b)
	}
}

func (s *Server) register() chan []byte {
	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unregister(ch chan []byte) {
	s.mu.Lock()
	delete(s.clients, ch)
	s.mu.Unlock()
}

// WSHandler upgrades the request and streams messages until the peer leaves.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Printf("observer: upgrade: %v", err)
			return
		}
		defer conn.Close()

		out := s.register()
		defer s.unregister(out)

		// Reader: only used to notice the peer closing.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}
