package events

import (
	"fmt"
	"sync"
)

// InMemoryEventDispatcher is an in-memory implementation of EventDispatcher.
// Complaint events are buffered on a channel and fanned out to subscribers
// (currently the email notifier) from a single background goroutine; handlers
// run in their own goroutines so a slow SMTP server never blocks a complaint
// mutation.
type InMemoryEventDispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	eventCh  chan DomainEvent
	wg       sync.WaitGroup
}

// NewInMemoryEventDispatcher creates a dispatcher with the given buffer.
// A full buffer rejects publishes rather than blocking the caller.
func NewInMemoryEventDispatcher(bufferSize int) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		stopCh:   make(chan struct{}),
		eventCh:  make(chan DomainEvent, bufferSize),
	}
}

// Publish enqueues one event for delivery.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	if !d.running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full")
	}
}

// PublishAll enqueues a batch, typically everything one aggregate recorded.
func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	if !d.running {
		return fmt.Errorf("event dispatcher is not running")
	}

	for _, event := range events {
		if err := d.Publish(event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.GetEventType(), err)
		}
	}

	return nil
}

// Subscribe registers a handler for an event type such as complaint.assigned.
func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes a previously registered handler.
func (d *InMemoryEventDispatcher) Unsubscribe(eventType string, handler EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers, exists := d.handlers[eventType]
	if !exists {
		return nil
	}

	newHandlers := make([]EventHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != handler {
			newHandlers = append(newHandlers, h)
		}
	}

	if len(newHandlers) == 0 {
		delete(d.handlers, eventType)
	} else {
		d.handlers[eventType] = newHandlers
	}

	return nil
}

// Start launches the delivery goroutine. Call it before the HTTP server
// starts accepting requests.
func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}

	d.running = true
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()
		d.processEvents()
	}()

	return nil
}

// Stop stops the event dispatcher and drains remaining events
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()

	return nil
}

func (d *InMemoryEventDispatcher) processEvents() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.handleEvent(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.handleEvent(event)
		}
	}
}

func (d *InMemoryEventDispatcher) handleEvent(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, handler := range handlers {
		if handler.CanHandle(event.GetEventType()) {
			go func(h EventHandler, e DomainEvent) {
				_ = h.Handle(e)
			}(handler, event)
		}
	}
}

// SimpleEventHandler adapts a plain function to the EventHandler interface.
// Useful in tests and for one-off subscriptions.
type SimpleEventHandler struct {
	eventType string
	handler   func(DomainEvent) error
}

// NewSimpleEventHandler wraps fn-style handling of a single event type.
func NewSimpleEventHandler(eventType string, handler func(DomainEvent) error) *SimpleEventHandler {
	return &SimpleEventHandler{
		eventType: eventType,
		handler:   handler,
	}
}

// Handle invokes the wrapped function.
func (h *SimpleEventHandler) Handle(event DomainEvent) error {
	if h.handler != nil {
		return h.handler(event)
	}
	return nil
}

// CanHandle reports whether the wrapped function covers eventType.
func (h *SimpleEventHandler) CanHandle(eventType string) bool {
	return h.eventType == eventType
}
