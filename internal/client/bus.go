package client

import (
	"encoding/json"
	"sync"
)

// EventBus fans session events out to any number of subscribers. The
// firmware's original dashboard kept a single replaceable callback per
// event kind, which silently dropped earlier handlers; this is the
// multi-subscriber replacement. Subscribers for one kind are invoked in
// subscription order, synchronously, from whichever goroutine publishes —
// for channel events that is the client's single reader goroutine, so one
// event's dispatch completes before the next is processed.
type EventBus struct {
	mu     sync.Mutex
	nextID int

	connectivity []subscriber[bool]
	telemetry    []subscriber[json.RawMessage]
	ack          []subscriber[string]
	logs         []subscriber[string]
}

type subscriber[T any] struct {
	id Subscription
	fn func(T)
}

// Subscription identifies one registered handler for later removal.
type Subscription int

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// OnConnectivity registers a handler for connected/disconnected flips.
func (b *EventBus) OnConnectivity(fn func(connected bool)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := Subscription(b.nextID)
	b.connectivity = append(b.connectivity, subscriber[bool]{id, fn})
	return id
}

// OnTelemetry registers a handler for raw telemetry data. Handlers receive
// the payload's data field exactly as it arrived; use ReconcileTelemetry to
// resolve it into typed fields.
func (b *EventBus) OnTelemetry(fn func(data json.RawMessage)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := Subscription(b.nextID)
	b.telemetry = append(b.telemetry, subscriber[json.RawMessage]{id, fn})
	return id
}

// OnAck registers a handler for command acknowledgements.
func (b *EventBus) OnAck(fn func(ack string)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := Subscription(b.nextID)
	b.ack = append(b.ack, subscriber[string]{id, fn})
	return id
}

// OnLog registers a handler for log lines. Every line starts with one of
// the TX:/RX:/SYS: prefixes.
func (b *EventBus) OnLog(fn func(line string)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := Subscription(b.nextID)
	b.logs = append(b.logs, subscriber[string]{id, fn})
	return id
}

// Unsubscribe removes a previously registered handler. Unknown ids are
// ignored.
func (b *EventBus) Unsubscribe(id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connectivity = removeSub(b.connectivity, id)
	b.telemetry = removeSub(b.telemetry, id)
	b.ack = removeSub(b.ack, id)
	b.logs = removeSub(b.logs, id)
}

func removeSub[T any](subs []subscriber[T], id Subscription) []subscriber[T] {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

func (b *EventBus) publishConnectivity(connected bool) {
	b.mu.Lock()
	subs := append([]subscriber[bool](nil), b.connectivity...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(connected)
	}
}

func (b *EventBus) publishTelemetry(data json.RawMessage) {
	b.mu.Lock()
	subs := append([]subscriber[json.RawMessage](nil), b.telemetry...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(data)
	}
}

func (b *EventBus) publishAck(ack string) {
	b.mu.Lock()
	subs := append([]subscriber[string](nil), b.ack...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(ack)
	}
}

func (b *EventBus) publishLog(line string) {
	b.mu.Lock()
	subs := append([]subscriber[string](nil), b.logs...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(line)
	}
}
