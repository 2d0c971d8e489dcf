package service

import (
	"context"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// AgentUpdate carries the optional fields UpdateAgent may set
type AgentUpdate struct {
	Status   *types.AgentStatus `json:"status,omitempty"`
	MaxChats *int               `json:"maxChats,omitempty"`
	Name     *string            `json:"name,omitempty"`
}

// ListAgents returns agents visible to the session role
func (s *Service) ListAgents(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requirePermission(types.ResourceAgents, types.ActionRead)
	if fail != nil {
		return *fail
	}

	out := make([]types.Agent, 0)
	for _, a := range s.agents {
		if sess.Role == types.RoleBranchManager && a.BranchID != sess.BranchID {
			continue
		}
		out = append(out, a)
	}
	return types.OK(out)
}

// UpdateAgent changes an agent's fields. A status change additionally
// notifies the agent's branch manager.
func (s *Service) UpdateAgent(ctx context.Context, agentID string, update AgentUpdate) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceAgents, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findAgent(agentID)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrAgentNotFound, "agent "+agentID+" not found")
	}

	meta := map[string]string{}
	statusChanged := false
	if update.Status != nil && *update.Status != s.agents[idx].Status {
		meta["oldStatus"] = string(s.agents[idx].Status)
		meta["newStatus"] = string(*update.Status)
		s.agents[idx].Status = *update.Status
		s.agents[idx].LastSeenAt = time.Now()
		statusChanged = true
	}
	if update.MaxChats != nil && *update.MaxChats > 0 {
		s.agents[idx].MaxChats = *update.MaxChats
	}
	if update.Name != nil && *update.Name != "" {
		s.agents[idx].Name = *update.Name
	}

	s.auditLog.Record(types.ActionAgentUpdated, sess.UserID,
		types.AuditTargets{AgentID: agentID}, meta)

	ch := changes{}
	if statusChanged {
		s.notifyUser(&ch, s.branchManagerID(s.agents[idx].BranchID), types.NotifyAgentStatusChanged,
			"Agent status changed",
			s.agents[idx].Name+" is now "+string(s.agents[idx].Status),
			map[string]string{"agentId": agentID})
	}

	agent := s.agents[idx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(agent)
}

// ReassignAgent moves an agent to another branch
func (s *Service) ReassignAgent(ctx context.Context, agentID, newBranchID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceAgents, types.ActionAssign)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findAgent(agentID)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrAgentNotFound, "agent "+agentID+" not found")
	}
	if s.findBranch(newBranchID) == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrBranchNotFound, "branch "+newBranchID+" not found")
	}

	oldBranchID := s.agents[idx].BranchID
	s.agents[idx].BranchID = newBranchID
	if userIdx := s.findUser(s.agents[idx].UserID); userIdx >= 0 {
		s.users[userIdx].BranchID = newBranchID
	}

	s.auditLog.Record(types.ActionAgentReassigned, sess.UserID,
		types.AuditTargets{AgentID: agentID},
		map[string]string{"oldBranchId": oldBranchID, "newBranchId": newBranchID})

	agent := s.agents[idx]
	s.mu.Unlock()

	s.publish(changes{})
	return types.OK(agent)
}

// ListBranches returns branches with chat counters derived from the
// conversation collection at read time
func (s *Service) ListBranches(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, fail := s.requirePermission(types.ResourceBranches, types.ActionRead); fail != nil {
		return *fail
	}

	out := make([]types.Branch, 0, len(s.branches))
	for _, b := range s.branches {
		branch := b
		branch.ActiveChats = 0
		branch.PendingChats = 0
		branch.UnassignedChats = 0
		for _, c := range s.conversations {
			if c.BranchID != b.ID || c.Status.IsTerminal() {
				continue
			}
			if c.AssignedAgentID == "" {
				branch.UnassignedChats++
			} else {
				branch.ActiveChats++
			}
			if c.Status == types.ConversationNew {
				branch.PendingChats++
			}
		}
		out = append(out, branch)
	}
	return types.OK(out)
}
