package types

import "time"

// AuditEvent is one append-only record of a state-changing operation
type AuditEvent struct {
	ID             string            `json:"id"`
	ActionType     ActionType        `json:"actionType"`
	PerformedBy    string            `json:"performedBy"`
	PerformedAt    time.Time         `json:"performedAt"`
	ConversationID string            `json:"conversationId,omitempty"`
	TaskID         string            `json:"taskId,omitempty"`
	ReportID       string            `json:"reportId,omitempty"`
	EscalationID   string            `json:"escalationId,omitempty"`
	AgentID        string            `json:"agentId,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// AuditTargets names the entities an audit event touched
type AuditTargets struct {
	ConversationID string
	TaskID         string
	ReportID       string
	EscalationID   string
	AgentID        string
}

// AuditFilter narrows an audit query; zero values match everything
type AuditFilter struct {
	ActionType     ActionType `json:"actionType,omitempty"`
	PerformedBy    string     `json:"performedBy,omitempty"`
	ConversationID string     `json:"conversationId,omitempty"`
	Since          time.Time  `json:"since,omitempty"`
	Until          time.Time  `json:"until,omitempty"`
}
