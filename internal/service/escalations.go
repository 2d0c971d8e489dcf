package service

import (
	"context"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// EscalationInput describes a new escalation
type EscalationInput struct {
	ConversationID string                `json:"conversationId"`
	Level          types.EscalationLevel `json:"level"`
	Reason         string                `json:"reason"`
	Description    string                `json:"description,omitempty"`
}

// EscalateConversation raises an escalation and marks the conversation
// escalated. The assignee is notified, or the branch manager when the
// conversation has no assignee.
func (s *Service) EscalateConversation(ctx context.Context, input EscalationInput) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceEscalations, types.ActionCreate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	convIdx := s.findConversation(input.ConversationID)
	if convIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrConversationNotFound, "conversation "+input.ConversationID+" not found")
	}
	if input.Reason == "" {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "escalation reason is required")
	}
	if input.Level == "" {
		input.Level = types.EscalationLevel1
	}

	esc := types.Escalation{
		ID:             types.NewID("esc"),
		ConversationID: input.ConversationID,
		Level:          input.Level,
		Status:         types.EscalationPending,
		Reason:         input.Reason,
		Description:    input.Description,
		CreatedBy:      sess.UserID,
		CreatedAt:      time.Now(),
	}
	s.escalations = append(s.escalations, esc)
	s.conversations[convIdx].Status = types.ConversationEscalated

	s.auditLog.Record(types.ActionEscalationCreated, sess.UserID,
		types.AuditTargets{ConversationID: input.ConversationID, EscalationID: esc.ID},
		map[string]string{"level": string(input.Level), "reason": input.Reason})

	// Route the alert to whoever owns the conversation
	targetUser := ""
	if agentIdx := s.findAgent(s.conversations[convIdx].AssignedAgentID); agentIdx >= 0 {
		targetUser = s.agents[agentIdx].UserID
	} else {
		targetUser = s.branchManagerID(s.conversations[convIdx].BranchID)
	}

	ch := changes{
		conversations: []string{input.ConversationID},
		escalations:   []string{esc.ID},
	}
	s.notifyUser(&ch, targetUser, types.NotifyEscalationCreated,
		"Conversation escalated",
		"The chat with "+s.conversations[convIdx].CustomerName+" was escalated: "+input.Reason,
		map[string]string{"conversationId": input.ConversationID, "escalationId": esc.ID})

	s.mu.Unlock()

	s.publish(ch)
	return types.OK(esc)
}

// ResolveEscalation closes out an escalation. The linked conversation always
// moves to in_progress; its pre-escalation status is not preserved.
func (s *Service) ResolveEscalation(ctx context.Context, escalationID, resolution string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceEscalations, types.ActionResolve)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	escIdx := s.findEscalation(escalationID)
	if escIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrEscalationNotFound, "escalation "+escalationID+" not found")
	}

	now := time.Now()
	s.escalations[escIdx].Status = types.EscalationResolved
	s.escalations[escIdx].Resolution = resolution
	s.escalations[escIdx].ResolvedBy = sess.UserID
	s.escalations[escIdx].ResolvedAt = &now

	ch := changes{escalations: []string{escalationID}}
	if convIdx := s.findConversation(s.escalations[escIdx].ConversationID); convIdx >= 0 {
		s.conversations[convIdx].Status = types.ConversationInProgress
		ch.conversations = append(ch.conversations, s.conversations[convIdx].ID)
	}

	s.auditLog.Record(types.ActionEscalationResolved, sess.UserID,
		types.AuditTargets{ConversationID: s.escalations[escIdx].ConversationID, EscalationID: escalationID},
		map[string]string{"resolution": resolution})

	s.notifyUser(&ch, s.escalations[escIdx].CreatedBy, types.NotifyEscalationResolved,
		"Escalation resolved", resolution,
		map[string]string{"escalationId": escalationID})

	esc := s.escalations[escIdx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(esc)
}

// ListEscalations returns escalations, admins and managers only see what
// their scope allows
func (s *Service) ListEscalations(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requirePermission(types.ResourceEscalations, types.ActionRead)
	if fail != nil {
		return *fail
	}

	out := make([]types.Escalation, 0)
	for _, esc := range s.escalations {
		if sess.Role == types.RoleBranchManager {
			if convIdx := s.findConversation(esc.ConversationID); convIdx >= 0 && s.conversations[convIdx].BranchID != sess.BranchID {
				continue
			}
		}
		if sess.Role == types.RoleAgent && esc.CreatedBy != sess.UserID {
			continue
		}
		out = append(out, esc)
	}
	return types.OK(out)
}
