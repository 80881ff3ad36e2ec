package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// clientSendBuffer is the per-connection outbound queue. A client that
	// falls this far behind is dropped rather than backpressuring the hub.
	clientSendBuffer = 32

	writeWait = 10 * time.Second
)

// Client is one websocket connection with its subscribed topic set.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	topics []Topic
}

// NewClient wraps an upgraded connection with the topics the authorizer
// admitted. Callers must pass the client to Hub.Register and then run
// WritePump and ReadPump.
func NewClient(conn *websocket.Conn, topics []Topic) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, clientSendBuffer),
		topics: topics,
	}
}

// Topics returns the topics the client is attached to.
func (c *Client) Topics() []Topic {
	return append([]Topic(nil), c.topics...)
}

// subscription pairs a client with the hub channel operations.
type subscription struct {
	client *Client
}

// message is one serialized event headed for every subscriber of a topic.
type message struct {
	topic   Topic
	payload []byte
}

// Hub fans serialized events out to websocket subscribers grouped by topic.
// A single goroutine owns the topic map; register, unregister and broadcast
// all flow through channels.
type Hub struct {
	topics map[Topic]map[*Client]bool

	register   chan subscription
	unregister chan subscription
	broadcast  chan message

	done chan struct{}
	once sync.Once

	logger *slog.Logger
}

// NewHub creates a hub. Run must be started on its own goroutine.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics:     make(map[Topic]map[*Client]bool),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "broadcast_hub"),
	}
}

// Run owns the topic map until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			for _, topic := range sub.client.topics {
				if h.topics[topic] == nil {
					h.topics[topic] = make(map[*Client]bool)
				}
				h.topics[topic][sub.client] = true
			}

		case sub := <-h.unregister:
			h.drop(sub.client)

		case msg := <-h.broadcast:
			for client := range h.topics[msg.topic] {
				select {
				case client.send <- msg.payload:
				default:
					// Subscriber is not keeping up. At-most-once
					// delivery: drop the connection, not the hub.
					h.logger.Warn("Dropping slow subscriber",
						"topic", msg.topic.String())
					h.drop(client)
				}
			}

		case <-h.done:
			for topic := range h.topics {
				for client := range h.topics[topic] {
					h.drop(client)
				}
			}
			return
		}
	}
}

// Stop shuts the hub down and closes every connection.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// Register attaches a client to its topics.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- subscription{client: client}:
	case <-h.done:
	}
}

// Unregister detaches a client and closes its connection.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- subscription{client: client}:
	case <-h.done:
	}
}

// Broadcast queues one serialized payload for every subscriber of the topic.
func (h *Hub) Broadcast(ctx context.Context, topic Topic, payload []byte) {
	select {
	case h.broadcast <- message{topic: topic, payload: payload}:
	case <-h.done:
	case <-ctx.Done():
	}
}

// drop removes the client from every topic and closes its send channel.
// Runs on the hub goroutine only.
func (h *Hub) drop(client *Client) {
	dropped := false
	for _, topic := range client.topics {
		if _, ok := h.topics[topic][client]; ok {
			delete(h.topics[topic], client)
			dropped = true
			if len(h.topics[topic]) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if dropped {
		close(client.send)
	}
}

// WritePump drains the client's send queue onto the connection. Exits when
// the hub closes the send channel or a write fails; either way the
// connection is closed.
func (c *Client) WritePump(hub *Hub) {
	defer c.conn.Close()

	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			hub.Unregister(c)
			// Drain until the hub closes the channel.
			for range c.send {
			}
			return
		}
	}
}

// ReadPump discards inbound frames and unregisters the client when the
// connection drops. Subscriptions are fixed at upgrade time; clients do not
// talk back.
func (c *Client) ReadPump(hub *Hub) {
	defer hub.Unregister(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
