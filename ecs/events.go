package ecs

// EventKind identifies world event types.
type EventKind string

const (
	EventSiteStarted      EventKind = "site_started"
	EventSiteStopped      EventKind = "site_stopped"
	EventSiteCompleted    EventKind = "site_completed"
	EventFollowerClaimed  EventKind = "follower_claimed"
	EventFollowerThrown   EventKind = "follower_thrown"
	EventFollowerAssigned EventKind = "follower_assigned"
	EventFollowerConsumed EventKind = "follower_consumed"
	EventActionStarted    EventKind = "action_started"
	EventActionEnded      EventKind = "action_ended"
	EventBulletFired      EventKind = "bullet_fired"
	EventBulletImpact     EventKind = "bullet_impact"
	EventDestroyed        EventKind = "destroyed"
)

// Event is a world event payload. Subject is the entity the event is about,
// Other the counterpart (site, actor, tube) when there is one.
type Event struct {
	Kind    EventKind
	Subject Entity
	Other   Entity
	Detail  string
}

// EventQueue is a simple FIFO queue.
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

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
