package types

import "time"

// User is a dashboard account. Role is fixed at creation; branchID is
// required for every role except admin.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	BranchID  string     `json:"branchId,omitempty"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Branch is a physical call-center location. The chat counters are derived
// from the conversation collection on every read, never stored.
type Branch struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ActiveChats     int    `json:"activeChats"`
	PendingChats    int    `json:"pendingChats"`
	UnassignedChats int    `json:"unassignedChats"`
}

// Agent is the routing-facing view of an agent user. ActiveChats must not
// exceed MaxChats when new conversations are assigned.
type Agent struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	BranchID    string      `json:"branchId"`
	Status      AgentStatus `json:"status"`
	ActiveChats int         `json:"activeChats"`
	MaxChats    int         `json:"maxChats"`
	LastSeenAt  time.Time   `json:"lastSeenAt"`
}
