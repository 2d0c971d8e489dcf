package storage

import "github.com/denderemichael/WhatsApp-business-call-center/internal/types"

// Store archives audit events outside process memory. The in-memory audit
// log is the source of truth; the archive is best-effort.
type Store interface {
	SaveAuditEvent(event types.AuditEvent) error
	GetAuditEvents(dateKey string) ([]types.AuditEvent, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveAuditEvent(_ types.AuditEvent) error             { return nil }
func (s *NoopStore) GetAuditEvents(_ string) ([]types.AuditEvent, error) { return nil, nil }
func (s *NoopStore) TruncateAll() error                                  { return nil }
