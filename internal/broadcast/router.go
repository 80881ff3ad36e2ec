package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"pizzeria/internal/core/domain/events"
)

// routerQueueSize bounds the number of committed events waiting for fan-out.
// When the queue is full the event is dropped and logged; publication never
// blocks or fails the business operation that produced the event.
const routerQueueSize = 256

// Envelope is the wire frame around every broadcast event payload.
type Envelope struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Router maps committed domain events onto broadcast topics and hands the
// serialized payload to the hub. Implements ports.EventPublisher.
//
// Routing is fixed per event type. Order-level events reach the admin
// dashboard, the order topic and the customer topic; location reports stay
// off the admin dashboard and reach only the parties tracking that order.
type Router struct {
	hub    *Hub
	queue  chan events.Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewRouter creates a router over the hub and starts its delivery goroutine.
func NewRouter(hub *Hub, logger *slog.Logger) *Router {
	ctx, cancel := context.WithCancel(context.Background())

	r := &Router{
		hub:    hub,
		queue:  make(chan events.Event, routerQueueSize),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("component", "broadcast_router"),
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Publish queues the event for fan-out. Never blocks: when the queue is
// full the event is logged and dropped.
func (r *Router) Publish(ctx context.Context, event events.Event) {
	select {
	case r.queue <- event:
	case <-r.ctx.Done():
	default:
		r.logger.WarnContext(ctx, "Broadcast queue full, dropping event",
			"event", event.Name())
	}
}

// Stop drains nothing and stops the delivery goroutine. Queued events that
// were not yet fanned out are lost, consistent with at-most-once delivery.
func (r *Router) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Router) run() {
	defer r.wg.Done()

	for {
		select {
		case event := <-r.queue:
			r.dispatch(event)
		case <-r.ctx.Done():
			return
		}
	}
}

// dispatch serializes the event once and hands it to every target topic.
func (r *Router) dispatch(event events.Event) {
	topics := TopicsFor(event)
	if len(topics) == 0 {
		r.logger.Warn("No broadcast topics for event", "event", event.Name())
		return
	}

	payload, err := json.Marshal(Envelope{
		Event:     event.Name(),
		Data:      event,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		r.logger.Error("Failed to serialize event", "event", event.Name(), "error", err)
		return
	}

	for _, topic := range topics {
		r.hub.Broadcast(r.ctx, topic, payload)
	}
}

// TopicsFor returns the broadcast targets for an event. Routing metadata
// (customer and driver ids) comes from the event's unexported-from-payload
// fields, so a topic never receives another party's identity in the body.
func TopicsFor(event events.Event) []Topic {
	switch e := event.(type) {
	case events.OrderPlaced:
		return []Topic{
			TopicAdminDashboard,
			OrderTopic(e.OrderID),
		}
	case events.OrderStatusUpdated:
		return []Topic{
			TopicAdminDashboard,
			OrderTopic(e.OrderID),
			UserTopic(e.CustomerID),
		}
	case events.DeliveryAssigned:
		return []Topic{
			TopicAdminDashboard,
			OrderTopic(e.OrderID),
			UserTopic(e.CustomerID),
			DriverTopic(e.DriverID),
		}
	case events.DeliveryLocationUpdated:
		return []Topic{
			OrderTopic(e.OrderID),
			UserTopic(e.CustomerID),
		}
	default:
		return nil
	}
}
