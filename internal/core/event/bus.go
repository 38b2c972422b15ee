package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are delivered
// in tick N+1, when EventDispatchSystem swaps the buffers and dispatches.
type Bus struct {
	mu     sync.Mutex // guards subscription only; emit and dispatch are loop-only
	topics map[reflect.Type]*topic
	order  []*topic // dispatch order, by first subscription
}

// topic holds the buffers and handlers of one event type.
type topic struct {
	front      []any
	back       []any
	handlers   []func(any)
	subscribed bool
}

func NewBus() *Bus {
	return &Bus{topics: make(map[reflect.Type]*topic)}
}

func keyOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (b *Bus) topicFor(t reflect.Type) *topic {
	tp, ok := b.topics[t]
	if !ok {
		tp = &topic{}
		b.topics[t] = tp
	}
	return tp
}

// Emit queues an event for the next dispatch.
func Emit[T any](b *Bus, event T) {
	tp := b.topicFor(keyOf[T]())
	tp.back = append(tp.back, event)
}

// Subscribe registers fn for events of type T. Handlers of one type run in
// subscription order.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tp := b.topicFor(keyOf[T]())
	if !tp.subscribed {
		tp.subscribed = true
		b.order = append(b.order, tp)
	}
	tp.handlers = append(tp.handlers, func(ev any) { fn(ev.(T)) })
}

// Pending returns the number of events of type T waiting for the next swap.
func Pending[T any](b *Bus) int {
	tp, ok := b.topics[keyOf[T]()]
	if !ok {
		return 0
	}
	return len(tp.back)
}

// SwapBuffers makes the queued events deliverable and starts a fresh queue.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	for _, tp := range b.topics {
		tp.front, tp.back = tp.back, tp.front[:0]
	}
}

// DispatchAll delivers the swapped events. Event types are visited in
// subscription order, events in emit order. Events nobody subscribed to are
// dropped at the next swap.
func (b *Bus) DispatchAll() {
	for _, tp := range b.order {
		for _, ev := range tp.front {
			for _, h := range tp.handlers {
				h(ev)
			}
		}
	}
}
