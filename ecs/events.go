package ecs

// EventType identifies an event payload.
type EventType string

const (
	// EventCameraReset asks the orbit camera to return to its spawn orbit.
	EventCameraReset EventType = "camera_reset"
	// EventPrefabReloaded carries the name of a prefab that changed on disk.
	EventPrefabReloaded EventType = "prefab_reloaded"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue collects events raised during a frame. Every system sees the
// whole frame's events; the scheduler clears them once all systems ran.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Of returns the pending events of one type without consuming them.
func (q *EventQueue) Of(typ EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
