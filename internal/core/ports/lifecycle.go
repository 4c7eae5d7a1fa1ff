package ports

import "context"

// LifecycleKind names a change whose side effects run in the background.
type LifecycleKind string

const (
	PropertyDeleted LifecycleKind = "property_deleted"
	UserDeleted     LifecycleKind = "user_deleted"
)

// LifecycleEvent is the unit of work routed by the lifecycle dispatcher. Events
// for the same EntityID are processed in order.
type LifecycleEvent struct {
	Kind     LifecycleKind
	EntityID string
}

// LifecyclePublisher hands events to the background workers.
type LifecyclePublisher interface {
	Enqueue(event LifecycleEvent)
}

// LifecycleService performs the cleanup for one event.
type LifecycleService interface {
	Process(ctx context.Context, event LifecycleEvent) error
}
