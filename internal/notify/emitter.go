// Package notify stores per-user notifications and fans sync events out to
// subscribers.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// Subscriber receives a sync event after every mutating service operation.
// Delivery is synchronous, once per change batch, in registration order.
// There is no retry and no backpressure.
type Subscriber func(types.SyncEvent)

// Emitter owns the notification collection and the subscriber set
type Emitter struct {
	notifications []types.Notification
	subscribers   map[int]Subscriber
	nextSubID     int
	subOrder      []int
	logger        zerolog.Logger
	mu            sync.RWMutex
}

// NewEmitter creates an empty emitter
func NewEmitter(logger zerolog.Logger) *Emitter {
	return &Emitter{
		subscribers: make(map[int]Subscriber),
		logger:      logger.With().Str("component", "notify").Logger(),
	}
}

// Create stores a notification for the target user and returns it. The
// notification is visible to List immediately.
func (e *Emitter) Create(userID string, notifType types.NotificationType, title, message string, metadata map[string]string) types.Notification {
	n := types.Notification{
		ID:        types.NewID("notif"),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	e.mu.Lock()
	e.notifications = append(e.notifications, n)
	e.mu.Unlock()

	return n
}

// List returns the user's notifications, newest first
func (e *Emitter) List(userID string) []types.Notification {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Notification, 0)
	for i := len(e.notifications) - 1; i >= 0; i-- {
		if e.notifications[i].UserID == userID {
			out = append(out, e.notifications[i])
		}
	}
	return out
}

// MarkRead flips a single notification's read flag. Returns false when the
// id is unknown.
func (e *Emitter) MarkRead(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.notifications {
		if e.notifications[i].ID == id {
			e.notifications[i].IsRead = true
			return true
		}
	}
	return false
}

// MarkAllRead flips every unread notification of a user and returns how many
// were flipped
func (e *Emitter) MarkAllRead(userID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for i := range e.notifications {
		if e.notifications[i].UserID == userID && !e.notifications[i].IsRead {
			e.notifications[i].IsRead = true
			count++
		}
	}
	return count
}

// UnreadCount returns the number of unread notifications for a user
func (e *Emitter) UnreadCount(userID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, n := range e.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count
}

// Subscribe registers a callback and returns a function that removes exactly
// this registration
func (e *Emitter) Subscribe(fn Subscriber) func() {
	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	e.subOrder = append(e.subOrder, id)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
		for i, sid := range e.subOrder {
			if sid == id {
				e.subOrder = append(e.subOrder[:i], e.subOrder[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to every subscriber in registration order,
// synchronously on the caller's goroutine
func (e *Emitter) Publish(event types.SyncEvent) {
	e.mu.RLock()
	order := make([]int, len(e.subOrder))
	copy(order, e.subOrder)
	subs := make(map[int]Subscriber, len(e.subscribers))
	for id, fn := range e.subscribers {
		subs[id] = fn
	}
	e.mu.RUnlock()

	for _, id := range order {
		if fn, ok := subs[id]; ok {
			fn(event)
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (e *Emitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}
