package types

import "time"

// Task is a unit of branch work assigned to an agent. CompletedAt is set
// exactly when status is completed.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	BranchID    string     `json:"branchId"`
	AssignedTo  string     `json:"assignedTo"`
	AssignedBy  string     `json:"assignedBy"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     time.Time  `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ReportMetrics is the numeric payload of a branch report
type ReportMetrics struct {
	TotalChats        int     `json:"totalChats"`
	ResolvedChats     int     `json:"resolvedChats"`
	EscalatedChats    int     `json:"escalatedChats"`
	AvgResponseTime   float64 `json:"avgResponseTime"` // seconds
	AvgResolutionTime float64 `json:"avgResolutionTime"`
	CustomerRating    float64 `json:"customerRating"` // 1-5
}

// Report is a branch performance report. Reviewer fields are set only when
// the status moves to approved or rejected.
type Report struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	BranchID    string        `json:"branchId"`
	SubmittedBy string        `json:"submittedBy"`
	Status      ReportStatus  `json:"status"`
	Metrics     ReportMetrics `json:"metrics"`
	AdminNotes  string        `json:"adminNotes,omitempty"`
	ReviewedBy  string        `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time    `json:"reviewedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	SubmittedAt *time.Time    `json:"submittedAt,omitempty"`
}
