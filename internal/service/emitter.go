package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from wailsRuntime
// ─────────────────────────────────────────────────────────────

// EventEmitter pushes events to the frontend. The App struct implements
// it over wailsRuntime.EventsEmit; services take the interface so they
// stay testable without a running window.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter records every emission for test assertions.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent is one recorded emission.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Has reports whether an event with the given name was emitted.
func (m *MockEmitter) Has(event string) bool {
	for _, e := range m.Events {
		if e.Event == event {
			return true
		}
	}
	return false
}
