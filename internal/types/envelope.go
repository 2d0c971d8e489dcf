package types

import "time"

// ErrorInfo describes a failed operation in a Response envelope
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// PageMeta carries pagination info for list responses
type PageMeta struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// Response is the uniform envelope every service operation returns. Callers
// must check Success before touching Data.
type Response struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Metadata *PageMeta  `json:"metadata,omitempty"`
}

// OK builds a success envelope
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKPage builds a success envelope with pagination metadata
func OKPage(data any, meta PageMeta) Response {
	return Response{Success: true, Data: data, Metadata: &meta}
}

// Fail builds a failure envelope
func Fail(code ErrorCode, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// SyncChanges lists the ids touched since the last sync event
type SyncChanges struct {
	Conversations []string `json:"conversations"`
	Tasks         []string `json:"tasks"`
	Escalations   []string `json:"escalations"`
	Notifications []string `json:"notifications"`
}

// SyncEvent is the payload pushed to subscribers after every mutating
// operation
type SyncEvent struct {
	LastSyncAt  time.Time   `json:"lastSyncAt"`
	Changes     SyncChanges `json:"changes"`
	OnlineUsers []string    `json:"onlineUsers"`
}

// LoginResult is the payload of a successful login
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
