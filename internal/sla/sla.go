// Package sla derives response and resolution due times for conversations
// from a static priority table. Due times are computed once when the tracker
// is initialized; nothing in the process re-checks them on a timer.
package sla

import (
	"sync"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// target holds the allowed response and resolution windows for a priority
type target struct {
	response   time.Duration
	resolution time.Duration
}

var targets = map[types.Priority]target{
	types.PriorityUrgent: {response: 5 * time.Minute, resolution: 2 * time.Hour},
	types.PriorityHigh:   {response: 15 * time.Minute, resolution: 4 * time.Hour},
	types.PriorityNormal: {response: 30 * time.Minute, resolution: 8 * time.Hour},
	types.PriorityLow:    {response: 1 * time.Hour, resolution: 24 * time.Hour},
}

// Tracker holds per-conversation SLA records
type Tracker struct {
	records map[string]types.SLARecord // conversationID -> record
	mu      sync.RWMutex
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{records: make(map[string]types.SLARecord)}
}

// Init computes due times for every conversation, anchored at each
// conversation's creation time
func (t *Tracker) Init(conversations []types.Conversation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, conv := range conversations {
		tg, ok := targets[conv.Priority]
		if !ok {
			tg = targets[types.PriorityNormal]
		}
		t.records[conv.ID] = types.SLARecord{
			ID:              types.NewID("sla"),
			ConversationID:  conv.ID,
			Priority:        conv.Priority,
			ResponseDueAt:   conv.CreatedAt.Add(tg.response),
			ResolutionDueAt: conv.CreatedAt.Add(tg.resolution),
		}
	}
}

// Track adds a record for a single conversation created after Init
func (t *Tracker) Track(conv types.Conversation) types.SLARecord {
	tg, ok := targets[conv.Priority]
	if !ok {
		tg = targets[types.PriorityNormal]
	}
	rec := types.SLARecord{
		ID:              types.NewID("sla"),
		ConversationID:  conv.ID,
		Priority:        conv.Priority,
		ResponseDueAt:   conv.CreatedAt.Add(tg.response),
		ResolutionDueAt: conv.CreatedAt.Add(tg.resolution),
	}

	t.mu.Lock()
	t.records[conv.ID] = rec
	t.mu.Unlock()
	return rec
}

// Get returns the record for a conversation
func (t *Tracker) Get(conversationID string) (types.SLARecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[conversationID]
	return rec, ok
}

// CheckNow compares a conversation's due times against the given clock and
// returns the record with breach flags set. Callers ask explicitly; no
// background loop calls this.
func (t *Tracker) CheckNow(conversationID string, now time.Time) (types.SLARecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[conversationID]
	if !ok {
		return types.SLARecord{}, false
	}
	rec.ResponseBreached = now.After(rec.ResponseDueAt)
	rec.ResolutionBreach = now.After(rec.ResolutionDueAt)
	t.records[conversationID] = rec
	return rec, true
}
