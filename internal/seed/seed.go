// Package seed builds the fixed demo dataset every service instance starts
// from. Ids are stable strings so the dashboard and the tests can reference
// entities directly.
package seed

import (
	"fmt"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// SentinelPassword lets an unregistered email log in as a transient demo
// agent
const SentinelPassword = "demo123"

// AdminUserID is the fallback recipient for branch notifications when a
// branch has no manager
const AdminUserID = "user-admin"

// DefaultBranchID hosts transient sentinel logins
const DefaultBranchID = "branch-cbd"

// Dataset is the complete initial state of the service
type Dataset struct {
	Users         []types.User
	Branches      []types.Branch
	Agents        []types.Agent
	Conversations []types.Conversation
	Tasks         []types.Task
	Reports       []types.Report
	Escalations   []types.Escalation
}

// Data returns a fresh copy of the demo dataset. Timestamps are anchored to
// the supplied now so relative ordering is deterministic.
func Data(now time.Time) Dataset {
	var ds Dataset

	ds.Branches = []types.Branch{
		{ID: "branch-cbd", Name: "CBD Branch", Address: "Kimathi Street, Nairobi", Phone: "+254700111000"},
		{ID: "branch-westlands", Name: "Westlands Branch", Address: "Waiyaki Way, Nairobi", Phone: "+254700222000"},
		{ID: "branch-mombasa", Name: "Mombasa Road Branch", Address: "Mombasa Road, Nairobi", Phone: "+254700333000"},
	}

	ds.Users = []types.User{
		{ID: AdminUserID, Email: "admin@callcenter.co.ke", Name: "Grace Wanjiru", Role: types.RoleAdmin, Status: types.UserActive, CreatedAt: now.Add(-90 * 24 * time.Hour)},
		{ID: "user-mgr-cbd", Email: "manager.cbd@callcenter.co.ke", Name: "David Omondi", Role: types.RoleBranchManager, BranchID: "branch-cbd", Status: types.UserActive, CreatedAt: now.Add(-80 * 24 * time.Hour)},
		{ID: "user-mgr-westlands", Email: "manager.westlands@callcenter.co.ke", Name: "Faith Njeri", Role: types.RoleBranchManager, BranchID: "branch-westlands", Status: types.UserActive, CreatedAt: now.Add(-75 * 24 * time.Hour)},
		{ID: "user-agent-1", Email: "brian.kip@callcenter.co.ke", Name: "Brian Kipchoge", Role: types.RoleAgent, BranchID: "branch-cbd", Status: types.UserActive, CreatedAt: now.Add(-60 * 24 * time.Hour)},
		{ID: "user-agent-2", Email: "mary.akinyi@callcenter.co.ke", Name: "Mary Akinyi", Role: types.RoleAgent, BranchID: "branch-cbd", Status: types.UserActive, CreatedAt: now.Add(-55 * 24 * time.Hour)},
		{ID: "user-agent-3", Email: "john.mwangi@callcenter.co.ke", Name: "John Mwangi", Role: types.RoleAgent, BranchID: "branch-westlands", Status: types.UserActive, CreatedAt: now.Add(-50 * 24 * time.Hour)},
		{ID: "user-agent-4", Email: "susan.chebet@callcenter.co.ke", Name: "Susan Chebet", Role: types.RoleAgent, BranchID: "branch-mombasa", Status: types.UserActive, CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{ID: "user-agent-5", Email: "peter.otieno@callcenter.co.ke", Name: "Peter Otieno", Role: types.RoleAgent, BranchID: "branch-cbd", Status: types.UserActive, CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}

	ds.Agents = []types.Agent{
		{ID: "agent-1", UserID: "user-agent-1", Name: "Brian Kipchoge", BranchID: "branch-cbd", Status: types.AgentOnline, ActiveChats: 3, MaxChats: 5, LastSeenAt: now},
		{ID: "agent-2", UserID: "user-agent-2", Name: "Mary Akinyi", BranchID: "branch-cbd", Status: types.AgentBusy, ActiveChats: 2, MaxChats: 5, LastSeenAt: now},
		{ID: "agent-3", UserID: "user-agent-3", Name: "John Mwangi", BranchID: "branch-westlands", Status: types.AgentOnline, ActiveChats: 2, MaxChats: 4, LastSeenAt: now},
		{ID: "agent-4", UserID: "user-agent-4", Name: "Susan Chebet", BranchID: "branch-mombasa", Status: types.AgentOffline, ActiveChats: 0, MaxChats: 4, LastSeenAt: now.Add(-3 * time.Hour)},
		// Trainee with a deliberately small capacity
		{ID: "agent-5", UserID: "user-agent-5", Name: "Peter Otieno", BranchID: "branch-cbd", Status: types.AgentOnline, ActiveChats: 0, MaxChats: 2, LastSeenAt: now},
	}

	customers := []struct {
		name  string
		phone string
	}{
		{"Kevin Maina", "+254711000001"},
		{"Alice Wambui", "+254711000002"},
		{"Samuel Kariuki", "+254711000003"},
		{"Esther Atieno", "+254711000004"},
		{"James Ndungu", "+254711000005"},
		{"Lucy Muthoni", "+254711000006"},
		{"Daniel Kimani", "+254711000007"},
		{"Ruth Adhiambo", "+254711000008"},
		{"Michael Barasa", "+254711000009"},
		{"Janet Wairimu", "+254711000010"},
		{"Paul Onyango", "+254711000011"},
		{"Nancy Chepkoech", "+254711000012"},
		{"George Kamau", "+254711000013"},
		{"Violet Nafula", "+254711000014"},
	}

	branchFor := func(i int) string {
		switch i % 3 {
		case 0:
			return "branch-cbd"
		case 1:
			return "branch-westlands"
		default:
			return "branch-mombasa"
		}
	}
	statuses := []types.ConversationStatus{
		types.ConversationNew, types.ConversationAssigned, types.ConversationInProgress,
		types.ConversationNew, types.ConversationAssigned, types.ConversationResolved,
		types.ConversationInProgress, types.ConversationNew, types.ConversationClosed,
		types.ConversationAssigned, types.ConversationEscalated, types.ConversationNew,
		types.ConversationInProgress, types.ConversationNew,
	}
	priorities := []types.Priority{
		types.PriorityNormal, types.PriorityHigh, types.PriorityNormal, types.PriorityUrgent,
		types.PriorityLow, types.PriorityNormal, types.PriorityHigh, types.PriorityNormal,
		types.PriorityLow, types.PriorityNormal, types.PriorityUrgent, types.PriorityNormal,
		types.PriorityHigh, types.PriorityNormal,
	}
	assignees := map[int]string{
		1: "agent-1", 2: "agent-1", 4: "agent-3", 5: "agent-2",
		6: "agent-2", 8: "agent-4", 9: "agent-3", 10: "agent-2", 12: "agent-1",
	}

	for i, c := range customers {
		id := convID(i)
		created := now.Add(-time.Duration(36-i) * time.Hour)
		lastMsg := now.Add(-time.Duration(len(customers)-i) * 10 * time.Minute)

		conv := types.Conversation{
			ID:            id,
			CustomerName:  c.name,
			CustomerPhone: c.phone,
			BranchID:      branchFor(i),
			Status:        statuses[i],
			Priority:      priorities[i],
			CreatedAt:     created,
			Messages: []types.Message{
				{
					ID:             id + "-m1",
					ConversationID: id,
					SenderType:     types.SenderCustomer,
					Content:        "Habari, I need help with my order.",
					Timestamp:      created,
				},
			},
			LastMessage:     "Habari, I need help with my order.",
			LastMessageTime: lastMsg,
			UnreadCount:     1,
		}
		if agentID, ok := assignees[i]; ok {
			conv.AssignedAgentID = agentID
		}
		ds.Conversations = append(ds.Conversations, conv)
	}

	ds.Tasks = []types.Task{
		{ID: "task-1", Title: "Follow up on delivery complaints", BranchID: "branch-cbd", AssignedTo: "user-agent-1", AssignedBy: "user-mgr-cbd", Status: types.TaskPending, Priority: types.PriorityHigh, DueDate: now.Add(24 * time.Hour), CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "task-2", Title: "Update customer FAQ responses", BranchID: "branch-cbd", AssignedTo: "user-agent-2", AssignedBy: "user-mgr-cbd", Status: types.TaskInProgress, Priority: types.PriorityNormal, DueDate: now.Add(48 * time.Hour), CreatedAt: now.Add(-26 * time.Hour)},
		{ID: "task-3", Title: "Escalation debrief with supervisor", BranchID: "branch-westlands", AssignedTo: "user-agent-3", AssignedBy: "user-mgr-westlands", Status: types.TaskPending, Priority: types.PriorityUrgent, DueDate: now.Add(4 * time.Hour), CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "task-4", Title: "Weekly chat quality review", BranchID: "branch-mombasa", AssignedTo: "user-agent-4", AssignedBy: AdminUserID, Status: types.TaskPending, Priority: types.PriorityLow, DueDate: now.Add(96 * time.Hour), CreatedAt: now.Add(-50 * time.Hour)},
	}

	ds.Reports = []types.Report{
		{
			ID: "report-1", Title: "CBD weekly performance", BranchID: "branch-cbd",
			SubmittedBy: "user-mgr-cbd", Status: types.ReportDraft,
			Metrics:   types.ReportMetrics{TotalChats: 120, ResolvedChats: 98, EscalatedChats: 6, AvgResponseTime: 95, AvgResolutionTime: 3600, CustomerRating: 4.2},
			CreatedAt: now.Add(-30 * time.Hour),
		},
		{
			ID: "report-2", Title: "Westlands weekly performance", BranchID: "branch-westlands",
			SubmittedBy: "user-mgr-westlands", Status: types.ReportSubmitted,
			Metrics:     types.ReportMetrics{TotalChats: 84, ResolvedChats: 70, EscalatedChats: 3, AvgResponseTime: 110, AvgResolutionTime: 4100, CustomerRating: 4.5},
			CreatedAt:   now.Add(-52 * time.Hour),
			SubmittedAt: timePtr(now.Add(-28 * time.Hour)),
		},
	}

	// conv-1011 is seeded as escalated; this is its open escalation
	ds.Escalations = []types.Escalation{
		{
			ID: "esc-1", ConversationID: convID(10), Level: types.EscalationLevel2,
			Status: types.EscalationPending, Reason: "Customer threatening chargeback",
			CreatedBy: "user-agent-2", CreatedAt: now.Add(-90 * time.Minute),
		},
	}

	return ds
}

func convID(i int) string {
	return fmt.Sprintf("conv-%d", 1001+i)
}

func timePtr(t time.Time) *time.Time { return &t }
