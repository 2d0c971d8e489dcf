// Package audit keeps an append-only, capped, in-memory log of every
// state-changing operation. Newest entries come back first; when the cap is
// exceeded the oldest entries are dropped silently.
package audit

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/storage"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// DefaultCap bounds the in-memory log when no explicit cap is configured
const DefaultCap = 10000

// Log is the in-memory audit log. Entries are optionally mirrored to an
// archive store; archive failures are logged, never surfaced.
type Log struct {
	events  []types.AuditEvent
	cap     int
	archive storage.Store
	logger  zerolog.Logger
	mu      sync.RWMutex
}

// NewLog creates an audit log with the given cap. A cap of zero or less
// falls back to DefaultCap.
func NewLog(cap int, archive storage.Store, logger zerolog.Logger) *Log {
	if cap <= 0 {
		cap = DefaultCap
	}
	if archive == nil {
		archive = storage.NewNoopStore()
	}
	return &Log{
		events:  make([]types.AuditEvent, 0, 256),
		cap:     cap,
		archive: archive,
		logger:  logger.With().Str("component", "audit").Logger(),
	}
}

// Record appends a new audit event and returns it
func (l *Log) Record(actionType types.ActionType, actor string, targets types.AuditTargets, metadata map[string]string) types.AuditEvent {
	event := types.AuditEvent{
		ID:             types.NewID("audit"),
		ActionType:     actionType,
		PerformedBy:    actor,
		PerformedAt:    time.Now(),
		ConversationID: targets.ConversationID,
		TaskID:         targets.TaskID,
		ReportID:       targets.ReportID,
		EscalationID:   targets.EscalationID,
		AgentID:        targets.AgentID,
		Metadata:       metadata,
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
	l.mu.Unlock()

	if err := l.archive.SaveAuditEvent(event); err != nil {
		l.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to archive audit event")
	}

	return event
}

// Query returns events matching the filter, newest first, at most limit
// entries. A limit of zero or less means no limit. Querying never errors; an
// empty filter returns the whole (possibly capped) log.
func (l *Log) Query(filter types.AuditFilter, limit int) []types.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := make([]types.AuditEvent, 0, len(l.events))
	for i := len(l.events) - 1; i >= 0; i-- {
		event := l.events[i]
		if filter.ActionType != "" && event.ActionType != filter.ActionType {
			continue
		}
		if filter.PerformedBy != "" && event.PerformedBy != filter.PerformedBy {
			continue
		}
		if filter.ConversationID != "" && event.ConversationID != filter.ConversationID {
			continue
		}
		if !filter.Since.IsZero() && event.PerformedAt.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && event.PerformedAt.After(filter.Until) {
			continue
		}
		matched = append(matched, event)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched
}

// Size returns the current number of retained events
func (l *Log) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
