package logs_stream

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	logs_core "extlog/internal/features/logs/core"
)

const broadcastBufferSize = 256

// allLevelsTopic receives every stored entry regardless of its level.
const allLevelsTopic = ""

type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub fans stored entries out to stream subscribers, grouped by the level
// they asked for.
type Hub struct {
	clients   map[logs_core.LogLevel]map[Subscriber]struct{}
	register  chan subscription
	unreg     chan subscription
	broadcast chan message
	stop      chan struct{}
	done      chan struct{}

	dropped     atomic.Int64
	subscribers atomic.Int64
	logger      *slog.Logger
}

type message struct {
	level   logs_core.LogLevel
	payload []byte
}

type subscription struct {
	level  logs_core.LogLevel
	client Subscriber
}

func NewHub(logger *slog.Logger) *Hub {
	h := &Hub{
		clients:   make(map[logs_core.LogLevel]map[Subscriber]struct{}),
		register:  make(chan subscription),
		unreg:     make(chan subscription),
		broadcast: make(chan message, broadcastBufferSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case sub := <-h.register:
			if _, ok := h.clients[sub.level]; !ok {
				h.clients[sub.level] = make(map[Subscriber]struct{})
			}
			h.clients[sub.level][sub.client] = struct{}{}
			h.countSubscribers()
		case sub := <-h.unreg:
			h.remove(sub.level, sub.client)
			h.countSubscribers()
		case msg := <-h.broadcast:
			h.deliver(allLevelsTopic, msg.payload)
			h.deliver(msg.level, msg.payload)
			h.countSubscribers()
		case <-h.stop:
			for _, clients := range h.clients {
				for client := range clients {
					client.Close()
				}
			}
			h.clients = make(map[logs_core.LogLevel]map[Subscriber]struct{})
			h.subscribers.Store(0)
			return
		}
	}
}

func (h *Hub) deliver(level logs_core.LogLevel, payload []byte) {
	clients, ok := h.clients[level]
	if !ok {
		return
	}

	for client := range clients {
		if err := client.Send(payload); err != nil {
			client.Close()
			delete(clients, client)
		}
	}

	if len(clients) == 0 {
		delete(h.clients, level)
	}
}

func (h *Hub) remove(level logs_core.LogLevel, client Subscriber) {
	clients, ok := h.clients[level]
	if !ok {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(h.clients, level)
	}
}

// Register subscribes client to entries of level, or to every entry when
// level is empty.
func (h *Hub) Register(level logs_core.LogLevel, client Subscriber) {
	select {
	case h.register <- subscription{level: level, client: client}:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(level logs_core.LogLevel, client Subscriber) {
	select {
	case h.unreg <- subscription{level: level, client: client}:
	case <-h.done:
	}
}

// Close disconnects every subscriber and stops the hub.
func (h *Hub) Close() {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.stop <- struct{}{}:
	case <-h.done:
	}
	<-h.done
}

func (h *Hub) countSubscribers() {
	var count int64
	for _, clients := range h.clients {
		count += int64(len(clients))
	}
	h.subscribers.Store(count)
}

// Subscribers returns the number of connected stream clients.
func (h *Hub) Subscribers() int64 {
	return h.subscribers.Load()
}

// Dropped returns how many entries were not streamed because the hub lagged.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

func (h *Hub) OnLogStored(entry *logs_core.LogEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		h.logger.Warn("failed to encode streamed log entry", "error", err)
		return
	}

	// never block the writer on slow subscribers
	select {
	case h.broadcast <- message{level: entry.Level, payload: payload}:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) OnLogRejected(_ logs_core.LogLevel, _ logs_core.RejectReason) {}
