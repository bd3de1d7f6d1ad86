package catalog

import (
	"context"
	"sync"
)

type EventType string

const (
	EventSubmit EventType = "submit"
	EventInput  EventType = "input"
	EventChange EventType = "change"
	EventClick  EventType = "click"
)

type Event struct {
	Type    EventType
	Target  Element
	MovieID int
}

type HandlerFunc func(ctx context.Context, v View, e Event)

// EventSource accepts subscriptions for events fired on view elements.
type EventSource interface {
	On(t EventType, target Element, h HandlerFunc)
}

type eventKey struct {
	t      EventType
	target Element
}

// Dispatcher is an EventSource driven by the transport.
type Dispatcher struct {
	mux      sync.RWMutex
	handlers map[eventKey][]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[eventKey][]HandlerFunc{},
	}
}

func (s *Dispatcher) On(t EventType, target Element, h HandlerFunc) {
	s.mux.Lock()
	defer s.mux.Unlock()
	k := eventKey{t: t, target: target}
	s.handlers[k] = append(s.handlers[k], h)
}

// Dispatch runs handlers subscribed to the event and reports whether there were any.
func (s *Dispatcher) Dispatch(ctx context.Context, v View, e Event) bool {
	s.mux.RLock()
	hs := s.handlers[eventKey{t: e.Type, target: e.Target}]
	s.mux.RUnlock()
	for _, h := range hs {
		h(ctx, v, e)
	}
	return len(hs) > 0
}
