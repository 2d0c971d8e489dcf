package types

// Role represents a user's role in the call center
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBranchManager Role = "branch_manager"
	RoleAgent         Role = "agent"
)

// UserStatus represents whether a user account is usable
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// AgentStatus represents the availability of an agent
type AgentStatus string

const (
	AgentOnline  AgentStatus = "online"
	AgentBusy    AgentStatus = "busy"
	AgentOffline AgentStatus = "offline"
)

// ConversationStatus represents the lifecycle stage of a conversation
type ConversationStatus string

const (
	ConversationNew        ConversationStatus = "new"
	ConversationAssigned   ConversationStatus = "assigned"
	ConversationInProgress ConversationStatus = "in_progress"
	ConversationEscalated  ConversationStatus = "escalated"
	ConversationResolved   ConversationStatus = "resolved"
	ConversationClosed     ConversationStatus = "closed"
)

// IsTerminal reports whether the conversation no longer counts against an
// agent's capacity.
func (s ConversationStatus) IsTerminal() bool {
	return s == ConversationResolved || s == ConversationClosed
}

// SenderType identifies who authored a message
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAgent    SenderType = "agent"
	SenderSystem   SenderType = "system"
)

// TaskStatus represents the state of a task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Priority represents the urgency of a task or conversation
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank returns a sortable weight for the priority, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ReportStatus represents the review state of a report
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// EscalationLevel represents how far an escalation has been raised
type EscalationLevel string

const (
	EscalationLevel1     EscalationLevel = "level1"
	EscalationLevel2     EscalationLevel = "level2"
	EscalationLevel3     EscalationLevel = "level3"
	EscalationLevelAdmin EscalationLevel = "admin"
)

// EscalationStatus represents the state of an escalation
type EscalationStatus string

const (
	EscalationPending    EscalationStatus = "pending"
	EscalationInProgress EscalationStatus = "in_progress"
	EscalationResolved   EscalationStatus = "resolved"
	EscalationClosed     EscalationStatus = "closed"
)

// NotificationType classifies notifications for the UI
type NotificationType string

const (
	NotifyConversationAssigned    NotificationType = "conversation_assigned"
	NotifyConversationTransferred NotificationType = "conversation_transferred"
	NotifyEscalationCreated       NotificationType = "escalation_created"
	NotifyEscalationResolved      NotificationType = "escalation_resolved"
	NotifyTaskAssigned            NotificationType = "task_assigned"
	NotifyTaskUpdated             NotificationType = "task_updated"
	NotifyReportReviewed          NotificationType = "report_reviewed"
	NotifyAgentStatusChanged      NotificationType = "agent_status_changed"
)

// ActionType identifies an audited operation
type ActionType string

const (
	ActionLogin               ActionType = "login"
	ActionLogout              ActionType = "logout"
	ActionConversationUpdated ActionType = "conversation_updated"
	ActionConversationAssign  ActionType = "conversation_assigned"
	ActionConversationXfer    ActionType = "conversation_transferred"
	ActionEscalationCreated   ActionType = "escalation_created"
	ActionEscalationResolved  ActionType = "escalation_resolved"
	ActionMessageSent         ActionType = "message_sent"
	ActionTaskCreated         ActionType = "task_created"
	ActionTaskUpdated         ActionType = "task_updated"
	ActionReportCreated       ActionType = "report_created"
	ActionReportSubmitted     ActionType = "report_submitted"
	ActionReportReviewed      ActionType = "report_reviewed"
	ActionAgentUpdated        ActionType = "agent_updated"
	ActionAgentReassigned     ActionType = "agent_reassigned"
	ActionNotificationRead    ActionType = "notification_read"
)

// ErrorCode is the machine-readable code carried in a failed envelope
type ErrorCode string

const (
	ErrInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrNoSession            ErrorCode = "NO_SESSION"
	ErrPermissionDenied     ErrorCode = "PERMISSION_DENIED"
	ErrUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrBranchNotFound       ErrorCode = "BRANCH_NOT_FOUND"
	ErrAgentNotFound        ErrorCode = "AGENT_NOT_FOUND"
	ErrConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"
	ErrTaskNotFound         ErrorCode = "TASK_NOT_FOUND"
	ErrReportNotFound       ErrorCode = "REPORT_NOT_FOUND"
	ErrEscalationNotFound   ErrorCode = "ESCALATION_NOT_FOUND"
	ErrNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrAgentAtCapacity      ErrorCode = "AGENT_AT_CAPACITY"
	ErrValidation           ErrorCode = "VALIDATION_ERROR"
	ErrUnknown              ErrorCode = "UNKNOWN_ERROR"
)

// Resource is the closed set of permission-checked resource kinds
type Resource string

const (
	ResourceAny           Resource = "*"
	ResourceConversations Resource = "conversations"
	ResourceMessages      Resource = "messages"
	ResourceEscalations   Resource = "escalations"
	ResourceTasks         Resource = "tasks"
	ResourceReports       Resource = "reports"
	ResourceAgents        Resource = "agents"
	ResourceBranches      Resource = "branches"
	ResourceAudit         Resource = "audit"
	ResourceNotifications Resource = "notifications"
)

// Action is the closed set of permission-checked actions
type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionAssign   Action = "assign"
	ActionTransfer Action = "transfer"
	ActionEscalate Action = "escalate"
	ActionResolve  Action = "resolve"
	ActionApprove  Action = "approve"
)
