package types

import "time"

// Conversation is a WhatsApp chat with a customer. Messages are append-only;
// ordering is append order. Status transitions are not enforced as a state
// machine: any update a permitted caller requests is accepted.
type Conversation struct {
	ID              string             `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	BranchID        string             `json:"branchId"`
	AssignedAgentID string             `json:"assignedAgentId,omitempty"`
	Status          ConversationStatus `json:"status"`
	Priority        Priority           `json:"priority"`
	Tags            []string           `json:"tags,omitempty"`
	Messages        []Message          `json:"messages"`
	LastMessage     string             `json:"lastMessage,omitempty"`
	LastMessageTime time.Time          `json:"lastMessageTime"`
	UnreadCount     int                `json:"unreadCount"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// Message is a single chat message inside a conversation
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderType     SenderType `json:"senderType"`
	SenderID       string     `json:"senderId,omitempty"`
	Content        string     `json:"content"`
	Timestamp      time.Time  `json:"timestamp"`
}

// ConversationFilter narrows a conversation listing. Zero values match
// everything; role scoping is applied before the filter.
type ConversationFilter struct {
	BranchID string             `json:"branchId,omitempty"`
	AgentID  string             `json:"agentId,omitempty"`
	Status   ConversationStatus `json:"status,omitempty"`
}
