package types

import "time"

// Escalation is created only by an explicit escalate operation. Resolving it
// moves the linked conversation back to in_progress regardless of the status
// it had before escalation.
type Escalation struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversationId"`
	Level          EscalationLevel  `json:"level"`
	Status         EscalationStatus `json:"status"`
	Reason         string           `json:"reason"`
	Description    string           `json:"description,omitempty"`
	CreatedBy      string           `json:"createdBy"`
	CreatedAt      time.Time        `json:"createdAt"`
	Resolution     string           `json:"resolution,omitempty"`
	ResolvedBy     string           `json:"resolvedBy,omitempty"`
	ResolvedAt     *time.Time       `json:"resolvedAt,omitempty"`
}

// Notification alerts a single user. IsRead flips only through explicit
// mark-read calls.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	IsRead    bool              `json:"isRead"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SLARecord holds the due times computed for a conversation from the static
// priority table. Computed once at service start; no timer re-checks them.
type SLARecord struct {
	ID               string    `json:"id"`
	ConversationID   string    `json:"conversationId"`
	Priority         Priority  `json:"priority"`
	ResponseDueAt    time.Time `json:"responseDueAt"`
	ResolutionDueAt  time.Time `json:"resolutionDueAt"`
	ResponseBreached bool      `json:"responseBreached"`
	ResolutionBreach bool      `json:"resolutionBreached"`
}
