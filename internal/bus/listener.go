package bus

import "fmt"

// Listener is the default Bus: synchronous, in-order dispatch.
// It is created per inspection and is not safe for concurrent use.
type Listener struct {
	handlers map[EventType][]Handler
}

// NewListener returns a Listener with no subscriptions.
func NewListener() *Listener {
	return &Listener{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers h for events of type t. Handlers run in
// subscription order. A nil handler is ignored.
func (l *Listener) Subscribe(t EventType, h Handler) {
	if h == nil {
		return
	}
	l.handlers[t] = append(l.handlers[t], h)
}

// Emit calls each handler subscribed to e.Type. The first handler error
// stops dispatch and is returned.
func (l *Listener) Emit(e Event) error {
	for _, h := range l.handlers[e.Type] {
		if err := h(e); err != nil {
			return fmt.Errorf("%s handler: %w", e.Type, err)
		}
	}
	return nil
}

// Subscriptions returns how many handlers are registered for t.
func (l *Listener) Subscriptions(t EventType) int {
	return len(l.handlers[t])
}
